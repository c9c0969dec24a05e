// Package holdings aggregates a transaction ledger into current positions:
// per-portfolio holdings with cost basis and unrealized gain, a
// grouped-by-security view across portfolios, and a FIFO cost-basis history
// for charting. Like the performance package, everything here is a pure,
// no-throw function over its inputs.
package holdings

import (
	"sort"

	"github.com/bobmcallan/folio/internal/ledger"
	"github.com/bobmcallan/folio/internal/models"
)

// PriceLookup resolves a security reference to its latest known price in
// currency units. A missing entry must resolve to 0, not an error — the
// resulting zero-value holding with non-zero cost basis is the visible
// "no price data" signal.
type PriceLookup = func(securityRef string) float64

// PriceMap adapts a plain map to a PriceLookup; absent refs resolve to 0.
func PriceMap(prices map[string]float64) PriceLookup {
	return func(securityRef string) float64 {
		return prices[securityRef]
	}
}

// positionKey identifies one independent lot chain: the same security held in
// two portfolios produces two chains.
type positionKey struct {
	securityRef string
	ownerKey    string
}

// CalculateHoldings aggregates position-affecting transactions into current
// holdings per (security, owner). Transactions are processed in explicit
// (date, sequence) order; cost basis is tracked as a running total reduced
// proportionally on sells (average-cost method). Positions whose share count
// has fallen to the closed-position epsilon are dropped. Output is sorted
// descending by current value — a display default, callers needing another
// order re-sort.
func CalculateHoldings(transactions []models.Transaction, securities map[string]models.Security, priceLookup PriceLookup) []models.Holding {
	if priceLookup == nil {
		priceLookup = func(string) float64 { return 0 }
	}

	type position struct {
		shares    float64
		costBasis float64
	}

	positions := make(map[positionKey]*position)
	var order []positionKey

	for _, tx := range ledger.SortTransactions(transactions) {
		if !models.AffectsPosition(tx.Type) || tx.SecurityRef == "" {
			continue
		}

		key := positionKey{securityRef: tx.SecurityRef, ownerKey: tx.OwnerKey}
		pos, ok := positions[key]
		if !ok {
			pos = &position{}
			positions[key] = pos
			order = append(order, key)
		}

		switch {
		case models.IsBuyClass(tx.Type):
			pos.shares += tx.Shares
			pos.costBasis += tx.Amount
		case models.IsSellClass(tx.Type):
			if pos.shares > 0 {
				// Release cost proportionally to the fraction sold
				pos.costBasis -= pos.costBasis / pos.shares * tx.Shares
			}
			pos.shares -= tx.Shares
		}
	}

	result := make([]models.Holding, 0, len(positions))
	for _, key := range order {
		pos := positions[key]
		if pos.shares <= models.ClosedPositionEpsilon {
			continue
		}

		price := priceLookup(key.securityRef)
		value := pos.shares * price

		h := models.Holding{
			SecurityRef:    key.securityRef,
			OwnerKey:       key.ownerKey,
			TotalShares:    pos.shares,
			TotalCostBasis: pos.costBasis,
			CurrentPrice:   price,
			CurrentValue:   value,
			GainLoss:       value - pos.costBasis,
		}
		if pos.costBasis != 0 {
			h.GainLossPercent = h.GainLoss / pos.costBasis * 100
		}
		if sec, ok := securities[key.securityRef]; ok {
			h.Name = sec.Name
			h.ISIN = sec.ISIN
			h.Currency = sec.Currency
		}

		result = append(result, h)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CurrentValue > result[j].CurrentValue
	})

	return result
}
