package performance

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/bobmcallan/folio/internal/models"
)

// genValuationSeries produces a sorted series of 2..12 positive valuations on
// consecutive month boundaries.
func genValuationSeries() gopter.Gen {
	return gen.SliceOfN(12, gen.Float64Range(1, 1e6)).Map(func(values []float64) []models.Valuation {
		vals := make([]models.Valuation, len(values))
		for i, v := range values {
			vals[i] = models.Valuation{
				Date:  time.Date(2024, time.Month(1), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0),
				Value: v,
			}
		}
		return vals
	})
}

func TestTTWRORProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("no-flow TTWROR equals simple return", prop.ForAll(
		func(vals []models.Valuation) bool {
			result := CalculateTTWROR(nil, vals)
			want := (vals[len(vals)-1].Value/vals[0].Value - 1) * 100
			return approxEqual(result, want, 1e-6)
		},
		genValuationSeries(),
	))

	properties.Property("TTWROR is idempotent", prop.ForAll(
		func(vals []models.Valuation, amount float64) bool {
			flows := []models.CashFlow{{Date: vals[1].Date.AddDate(0, 0, -5), Amount: amount}}
			return CalculateTTWROR(flows, vals) == CalculateTTWROR(flows, vals)
		},
		genValuationSeries(),
		gen.Float64Range(-1e4, 1e4),
	))

	properties.TestingRun(t)
}

func TestIRRProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("IRR rate stays inside clamp bounds", prop.ForAll(
		func(invested, terminal float64) bool {
			flows := []models.CashFlow{
				{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: invested},
			}
			result := SolveIRR(flows, terminal, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), IRROptions{})
			return result.Rate >= -0.99 && result.Rate <= 10.0
		},
		gen.Float64Range(1, 1e6),
		gen.Float64Range(0, 1e7),
	))

	properties.TestingRun(t)
}
