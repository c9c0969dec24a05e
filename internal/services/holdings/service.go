package holdings

import (
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// Service wraps the holdings aggregation functions with structured logging.
// All underlying calculations are pure; the service holds no state beyond
// its logger.
type Service struct {
	logger *common.Logger
}

// NewService creates a new holdings service
func NewService(logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{logger: logger}
}

// ComputeHoldings aggregates the ledger into current per-portfolio holdings.
func (s *Service) ComputeHoldings(transactions []models.Transaction, securities map[string]models.Security, priceLookup PriceLookup) []models.Holding {
	result := CalculateHoldings(transactions, securities, priceLookup)

	s.logger.Debug().
		Int("transactions", len(transactions)).
		Int("holdings", len(result)).
		Msg("Computed holdings")

	return result
}

// ComputeGroupedHoldings aggregates the ledger and collapses the result by
// security identity across portfolios.
func (s *Service) ComputeGroupedHoldings(transactions []models.Transaction, securities map[string]models.Security, priceLookup PriceLookup) []models.GroupedHolding {
	grouped := GroupBySecurity(CalculateHoldings(transactions, securities, priceLookup))

	s.logger.Debug().
		Int("transactions", len(transactions)).
		Int("groups", len(grouped)).
		Msg("Computed grouped holdings")

	return grouped
}

// RenderCostBasisHistory replays one position through the FIFO lot chain and
// renders the cost-basis chart PNG.
func (s *Service) RenderCostBasisHistory(transactions []models.Transaction, securityRef, ownerKey string, latestPrice float64) ([]byte, error) {
	points := CostBasisHistory(transactions, securityRef, ownerKey)

	png, err := RenderCostBasisChart(points, latestPrice)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("security", securityRef).
			Str("owner", ownerKey).
			Msg("Cost basis chart render failed")
		return nil, err
	}

	s.logger.Debug().
		Str("security", securityRef).
		Str("owner", ownerKey).
		Int("points", len(points)).
		Msg("Rendered cost basis chart")

	return png, nil
}
