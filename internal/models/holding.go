package models

import "time"

// ClosedPositionEpsilon is the share-count threshold below which a position
// is considered closed. Absorbs floating-point drift from fractional-share
// arithmetic; a holding with fewer shares than this is dropped from output.
const ClosedPositionEpsilon = 1e-4

// Lot is a discrete acquisition record used by the FIFO cost-basis path:
// shares and cost acquired together, consumed earliest-first by sells.
type Lot struct {
	SecurityRef string    `json:"security_ref"`
	OwnerKey    string    `json:"owner_key"`
	Date        time.Time `json:"date"`
	Shares      float64   `json:"shares"`
	CostBasis   float64   `json:"cost_basis"`
}

// Open returns true while the lot still holds a meaningful number of shares.
func (l Lot) Open() bool {
	return l.Shares > ClosedPositionEpsilon
}

// Holding is the output aggregate for one (security, owner) position.
type Holding struct {
	SecurityRef     string  `json:"security_ref"`
	OwnerKey        string  `json:"owner_key"`
	Name            string  `json:"name,omitempty"`
	ISIN            string  `json:"isin,omitempty"`
	TotalShares     float64 `json:"total_shares"`
	TotalCostBasis  float64 `json:"total_cost_basis"`
	CurrentPrice    float64 `json:"current_price"`
	CurrentValue    float64 `json:"current_value"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
	Currency        string  `json:"currency,omitempty"`
}

// GroupedHolding aggregates the same security across all owners — the
// "total position in X across all portfolios" view. Keyed by ISIN, falling
// back to security name.
type GroupedHolding struct {
	SecurityKey    string   `json:"security_key"`
	Name           string   `json:"name,omitempty"`
	OwnerKeys      []string `json:"owner_keys"`
	TotalShares    float64  `json:"total_shares"`
	TotalCostBasis float64  `json:"total_cost_basis"`
	TotalValue     float64  `json:"total_value"`
	GainLoss       float64  `json:"gain_loss"`
	Currency       string   `json:"currency,omitempty"`
}

// CostBasisPoint is one step of the FIFO cost-basis-over-time series used for
// charting: the running cost basis and market exposure after each
// position-affecting transaction.
type CostBasisPoint struct {
	Date      time.Time `json:"date"`
	Shares    float64   `json:"shares"`
	CostBasis float64   `json:"cost_basis"`
}
