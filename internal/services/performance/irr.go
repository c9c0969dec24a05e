package performance

import (
	"math"
	"sort"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

// IRR solver bounds. The rate is clamped after every Newton step to keep
// (1+r) away from zero/negative-base exponentiation and to stop runaway
// divergence on pathological flow patterns (all-positive or all-negative
// series with no sign-changing root).
const (
	irrInitialGuess = 0.10
	irrMinRate      = -0.99
	irrMaxRate      = 10.0
	irrDaysPerYear  = 365.25
)

// IRROptions bounds the Newton-Raphson iteration. The zero value selects the
// defaults (100 iterations, 1e-4 NPV tolerance).
type IRROptions struct {
	MaxIterations int
	Tolerance     float64
}

func (o IRROptions) withDefaults() IRROptions {
	if o.MaxIterations <= 0 {
		o.MaxIterations = 100
	}
	if o.Tolerance <= 0 {
		o.Tolerance = 1e-4
	}
	return o
}

// CalculateIRR computes the annualised internal rate of return for an
// investor cash-flow series plus a terminal portfolio value, as a percentage.
// It is the always-returns-a-rate convenience wrapper around SolveIRR: the
// caller gets the best rate obtained whether or not the solve converged.
// An empty cash-flow series returns 0 — no contributed capital means no
// meaningful rate.
func CalculateIRR(cashFlows []models.CashFlow, finalValue float64, finalDate time.Time, opts IRROptions) float64 {
	result := SolveIRR(cashFlows, finalValue, finalDate, opts)
	return result.Rate * 100
}

// SolveIRR finds the annualised discount rate r such that the net present
// value of all flows is zero, via Newton-Raphson with an analytic derivative.
//
// Flows are recast from the investor's perspective: each contribution becomes
// a negative flow (money leaving the investor), each withdrawal a positive
// one, and the terminal portfolio value a positive flow on finalDate. Flow
// dates are converted to years since the first flow using a 365.25-day year.
//
// The returned result carries the convergence tag alongside the rate so
// callers can distinguish a precise answer from a clamped or
// iteration-exhausted approximation without re-deriving the NPV themselves.
func SolveIRR(cashFlows []models.CashFlow, finalValue float64, finalDate time.Time, opts IRROptions) models.IRRResult {
	if len(cashFlows) == 0 {
		return models.IRRResult{}
	}
	opts = opts.withDefaults()

	flows := make([]models.CashFlow, 0, len(cashFlows)+1)
	for _, f := range cashFlows {
		// Contributions (positive investor flows) are money out of the
		// investor's pocket, hence negated for NPV purposes.
		flows = append(flows, models.CashFlow{Date: f.Date, Amount: -f.Amount})
	}
	flows = append(flows, models.CashFlow{Date: finalDate, Amount: finalValue})

	sort.SliceStable(flows, func(i, j int) bool { return flows[i].Date.Before(flows[j].Date) })

	baseDate := flows[0].Date
	years := make([]float64, len(flows))
	for i, f := range flows {
		days := f.Date.Sub(baseDate).Hours() / 24
		years[i] = days / irrDaysPerYear
	}

	rate := irrInitialGuess

	for iter := 0; iter < opts.MaxIterations; iter++ {
		npv := 0.0
		dnpv := 0.0

		for i, f := range flows {
			y := years[i]
			discount := math.Pow(1+rate, y)
			if discount == 0 {
				continue
			}
			npv += f.Amount / discount
			dnpv += -y * f.Amount / math.Pow(1+rate, y+1)
		}

		if math.Abs(npv) < opts.Tolerance {
			return models.IRRResult{Rate: rate, Converged: true, Iterations: iter}
		}

		if dnpv == 0 {
			// Flat NPV curve — Newton-Raphson cannot proceed
			return models.IRRResult{Rate: rate, Converged: false, Iterations: iter}
		}

		rate -= npv / dnpv

		if rate < irrMinRate {
			rate = irrMinRate
		}
		if rate > irrMaxRate {
			rate = irrMaxRate
		}
	}

	return models.IRRResult{Rate: rate, Converged: false, Iterations: opts.MaxIterations}
}
