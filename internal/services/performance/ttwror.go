package performance

import (
	"sort"

	"github.com/bobmcallan/folio/internal/models"
)

// CalculateTTWROR computes the true time-weighted rate of return over a
// series of valuation checkpoints, neutralising the effect of external
// contributions and withdrawals on the measured return. A single simple
// return over the whole window would conflate market performance with the
// investor's deposit timing; chaining sub-period returns between checkpoints
// removes that distortion.
//
// For each consecutive checkpoint pair the period return is
// V[i] / (V[i-1] + netFlow), where netFlow is the sum of cash flows dated on
// or after the previous checkpoint and strictly before the current one. A
// flow landing exactly on an interior checkpoint date therefore belongs to
// the period that begins there — interior checkpoint valuations are taken
// before same-day flows. The one exception is the opening checkpoint: a flow
// dated exactly on the first valuation date is the funding the opening value
// already reflects, so it is not counted again. Periods with a non-positive
// denominator (bad or noisy snapshot data) are treated as the multiplicative
// identity rather than propagated as errors.
//
// Returns the cumulative TTWROR as a percentage. Fewer than 2 checkpoints
// returns 0 — a degenerate-case policy, not an error.
func CalculateTTWROR(cashFlows []models.CashFlow, valuations []models.Valuation) float64 {
	if len(valuations) < 2 {
		return 0
	}

	vals := make([]models.Valuation, len(valuations))
	copy(vals, valuations)
	sort.SliceStable(vals, func(i, j int) bool { return vals[i].Date.Before(vals[j].Date) })

	flows := make([]models.CashFlow, len(cashFlows))
	copy(flows, cashFlows)
	sort.SliceStable(flows, func(i, j int) bool { return flows[i].Date.Before(flows[j].Date) })

	cumulative := 1.0
	opening := vals[0].Date

	for i := 1; i < len(vals); i++ {
		prev, curr := vals[i-1], vals[i]

		netFlow := 0.0
		for _, f := range flows {
			if f.Date.Before(prev.Date) || !f.Date.Before(curr.Date) {
				continue
			}
			if f.Date.Equal(opening) {
				// Funding on the opening date is already in the opening valuation
				continue
			}
			netFlow += f.Amount
		}

		denominator := prev.Value + netFlow
		if denominator <= 0 {
			// Division-by-zero / negative-denominator guard for anomalous data
			continue
		}

		cumulative *= curr.Value / denominator
	}

	return (cumulative - 1) * 100
}
