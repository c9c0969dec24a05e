package models

import "time"

// CashFlow is a derived (date, signed amount) pair from the investor's
// perspective: positive for money contributed to the portfolio, negative for
// money withdrawn. Constructed per calculation call, never persisted.
type CashFlow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Valuation is a checkpoint of total portfolio worth at a point in time,
// supplied by the caller (typically a daily or monthly snapshot series).
type Valuation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// PerformanceResult bundles the headline performance numbers for a portfolio.
// Computed fresh on every call; nothing here is cached.
type PerformanceResult struct {
	TTWRORPct      float64 `json:"ttwror_pct"`
	IRRPct         float64 `json:"irr_pct"`
	AbsoluteGain   float64 `json:"absolute_gain"`
	TotalInvested  float64 `json:"total_invested"`
	TotalWithdrawn float64 `json:"total_withdrawn"`
	CurrentValue   float64 `json:"current_value"`
}

// IRRResult is the tagged result of the Newton-Raphson IRR solve. Rate is a
// decimal (0.10 for 10%). Converged reports whether |NPV| fell below the
// tolerance before the iteration budget ran out; an unconverged Rate is still
// the best value obtained and is usable, just not trustworthy to the
// configured precision.
type IRRResult struct {
	Rate       float64 `json:"rate"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
}
