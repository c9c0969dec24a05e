package performance

import (
	"sort"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// Service composes the cash-flow extractor and the return calculators into
// portfolio-level performance results. The service carries only a logger and
// solver options; the calculations themselves are pure functions of their
// inputs and safe to invoke concurrently.
type Service struct {
	logger *common.Logger
	irr    IRROptions
}

// NewService creates a new performance service
func NewService(calc common.CalculationConfig, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		logger: logger,
		irr: IRROptions{
			MaxIterations: calc.IRRMaxIterations,
			Tolerance:     calc.IRRTolerance,
		},
	}
}

// ComputePerformance derives the full performance result for a portfolio from
// its transaction ledger and valuation checkpoint series. The terminal value
// and date for the IRR come from the latest valuation; with no valuations at
// all, both return calculators fall back to their degenerate-case zeros and
// the result carries the flow totals only.
func (s *Service) ComputePerformance(transactions []models.Transaction, valuations []models.Valuation) *models.PerformanceResult {
	flows := ExtractCashFlows(transactions)

	var finalValue float64
	var finalDate time.Time
	if len(valuations) > 0 {
		sorted := make([]models.Valuation, len(valuations))
		copy(sorted, valuations)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
		last := sorted[len(sorted)-1]
		finalValue = last.Value
		finalDate = last.Date
	}

	ttwror := CalculateTTWROR(flows, valuations)
	irr := SolveIRR(flows, finalValue, finalDate, s.irr)

	invested := TotalContributed(flows)
	withdrawn := TotalWithdrawn(flows)

	result := &models.PerformanceResult{
		TTWRORPct:      ttwror,
		IRRPct:         irr.Rate * 100,
		AbsoluteGain:   finalValue + withdrawn - invested,
		TotalInvested:  invested,
		TotalWithdrawn: withdrawn,
		CurrentValue:   finalValue,
	}

	s.logger.Debug().
		Int("transactions", len(transactions)).
		Int("cash_flows", len(flows)).
		Int("valuations", len(valuations)).
		Float64("ttwror_pct", result.TTWRORPct).
		Float64("irr_pct", result.IRRPct).
		Bool("irr_converged", irr.Converged).
		Msg("Computed portfolio performance")

	return result
}
