// Package performance computes investor returns from a transaction ledger:
// cash-flow extraction, time-weighted return (TTWROR) and money-weighted
// return (IRR). Every function here is pure and total — degraded inputs
// produce best-effort numeric results, never errors or panics.
package performance

import (
	"github.com/bobmcallan/folio/internal/models"
)

// ExtractCashFlows turns a ledger of dated transactions into the investor
// cash-flow series: positive for money contributed (deposits, inbound
// transfers), negative for money withdrawn (removals, outbound transfers).
// Dividends, interest, fees, taxes and internal buys/sells stay inside the
// account boundary — they move valuation, not contributed capital — and are
// excluded. Unrecognized types are excluded too, silently.
//
// Output order follows input order; both return calculators re-sort by date
// themselves, so no order contract is offered to callers.
func ExtractCashFlows(transactions []models.Transaction) []models.CashFlow {
	flows := make([]models.CashFlow, 0, len(transactions))

	for _, tx := range transactions {
		switch {
		case models.IsContribution(tx.Type):
			flows = append(flows, models.CashFlow{Date: tx.Date, Amount: tx.Amount})
		case models.IsWithdrawal(tx.Type):
			flows = append(flows, models.CashFlow{Date: tx.Date, Amount: -tx.Amount})
		}
	}

	return flows
}

// TotalContributed sums the positive flows — all capital the investor put in.
func TotalContributed(flows []models.CashFlow) float64 {
	total := 0.0
	for _, f := range flows {
		if f.Amount > 0 {
			total += f.Amount
		}
	}
	return total
}

// TotalWithdrawn sums the magnitudes of the negative flows — all capital the
// investor took out.
func TotalWithdrawn(flows []models.CashFlow) float64 {
	total := 0.0
	for _, f := range flows {
		if f.Amount < 0 {
			total -= f.Amount
		}
	}
	return total
}
