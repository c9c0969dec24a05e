package performance

import (
	"math"
	"testing"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

func TestIRR_SingleFlowClosedForm(t *testing.T) {
	// Invest 1000 at t=0, terminal value 1100 exactly 365.25 days later.
	// NPV(r) = -1000 + 1100/(1+r) = 0  =>  r = 10% exactly.
	start := day(2024, 1, 1)
	final := start.Add(time.Duration(365.25 * 24 * float64(time.Hour)))

	flows := []models.CashFlow{
		{Date: start, Amount: 1000},
	}

	result := CalculateIRR(flows, 1100, final, IRROptions{})

	if !approxEqual(result, 10.0, 0.01) {
		t.Errorf("IRR = %.4f%%, want ~10%% for 1000 -> 1100 over one year", result)
	}
}

func TestIRR_PureLossMatchesTTWROR(t *testing.T) {
	// Invest 1000, terminal value 800 one year later, no intermediate flows.
	// With no intermediate flows cash-flow timing cannot differ in effect, so
	// IRR and TTWROR must both equal -20%.
	start := day(2024, 1, 1)
	final := start.Add(time.Duration(365.25 * 24 * float64(time.Hour)))

	flows := []models.CashFlow{
		{Date: start, Amount: 1000},
	}

	irr := CalculateIRR(flows, 800, final, IRROptions{})

	ttwror := CalculateTTWROR(flows, []models.Valuation{
		{Date: start, Value: 1000},
		{Date: final, Value: 800},
	})

	if !approxEqual(irr, -20.0, 0.05) {
		t.Errorf("IRR = %.4f%%, want ~-20%%", irr)
	}
	if !approxEqual(ttwror, -20.0, 0.05) {
		t.Errorf("TTWROR = %.4f%%, want ~-20%%", ttwror)
	}
	if !approxEqual(irr, ttwror, 0.1) {
		t.Errorf("IRR (%.4f%%) and TTWROR (%.4f%%) disagree for a lump-sum scenario", irr, ttwror)
	}
}

func TestIRR_EmptyFlows(t *testing.T) {
	result := CalculateIRR(nil, 1000, day(2025, 1, 1), IRROptions{})
	if result != 0 {
		t.Errorf("IRR with no cash flows = %.2f, want 0", result)
	}
}

func TestIRR_WithdrawalBetweenFlows(t *testing.T) {
	// Invest 1000, withdraw 600 after one year, terminal value 550 after two.
	// NPV(r) = -1000 + 600/(1+r) + 550/(1+r)^2 = 0  =>  r = 10%.
	start := day(2022, 1, 1)
	year := time.Duration(365.25 * 24 * float64(time.Hour))

	flows := []models.CashFlow{
		{Date: start, Amount: 1000},
		{Date: start.Add(year), Amount: -600},
	}

	result := CalculateIRR(flows, 550, start.Add(2*year), IRROptions{})

	if !approxEqual(result, 10.0, 0.1) {
		t.Errorf("IRR = %.4f%%, want ~10%% for 1000 / -600 / 550 series", result)
	}
}

func TestIRR_ConvergedTag(t *testing.T) {
	start := day(2024, 1, 1)
	final := start.Add(time.Duration(365.25 * 24 * float64(time.Hour)))

	flows := []models.CashFlow{
		{Date: start, Amount: 1000},
	}

	result := SolveIRR(flows, 1100, final, IRROptions{})

	if !result.Converged {
		t.Errorf("SolveIRR did not converge: %+v", result)
	}
	if result.Iterations >= 100 {
		t.Errorf("SolveIRR used %d iterations, expected fast local convergence", result.Iterations)
	}
}

func TestIRR_NoSignChangeStaysClamped(t *testing.T) {
	// All-positive investor flows with a positive terminal value have no
	// sign-changing root. The solver must still terminate and return a finite
	// rate inside the clamp bounds, tagged unconverged.
	flows := []models.CashFlow{
		{Date: day(2024, 1, 1), Amount: -500},
		{Date: day(2024, 6, 1), Amount: -500},
	}

	result := SolveIRR(flows, 2000, day(2025, 1, 1), IRROptions{})

	if math.IsNaN(result.Rate) || math.IsInf(result.Rate, 0) {
		t.Fatalf("SolveIRR rate = %v, want finite", result.Rate)
	}
	if result.Rate < -0.99 || result.Rate > 10.0 {
		t.Errorf("SolveIRR rate %.4f escaped clamp bounds [-0.99, 10.0]", result.Rate)
	}
	if result.Converged {
		t.Error("SolveIRR reported convergence for a rootless flow pattern")
	}
}

func TestIRR_MaxIterationsRespected(t *testing.T) {
	flows := []models.CashFlow{
		{Date: day(2024, 1, 1), Amount: 1000},
	}

	result := SolveIRR(flows, 1500, day(2026, 1, 1), IRROptions{MaxIterations: 1, Tolerance: 1e-12})

	if result.Iterations > 1 {
		t.Errorf("SolveIRR ran %d iterations with a budget of 1", result.Iterations)
	}
}

func TestIRR_HighGrowthClampUpper(t *testing.T) {
	// 100x over a month wants an astronomical annualised rate; the clamp caps
	// the result at 1000%.
	flows := []models.CashFlow{
		{Date: day(2024, 1, 1), Amount: 100},
	}

	result := SolveIRR(flows, 10000, day(2024, 2, 1), IRROptions{})

	if result.Rate > 10.0 {
		t.Errorf("SolveIRR rate %.4f exceeds upper clamp 10.0", result.Rate)
	}
}
