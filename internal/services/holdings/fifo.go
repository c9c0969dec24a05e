package holdings

import (
	"github.com/bobmcallan/folio/internal/ledger"
	"github.com/bobmcallan/folio/internal/models"
)

// fifoChain tracks the open lots of one (security, owner) position,
// consumed earliest-first by sells.
type fifoChain struct {
	lots []models.Lot
}

func (c *fifoChain) buy(lot models.Lot) {
	c.lots = append(c.lots, lot)
}

// sell consumes sharesToSell from the chain front and returns the cost basis
// released. Selling more shares than the chain holds consumes everything —
// the overage carries no cost, matching the degrade-gracefully policy for
// ledgers with missing acquisition records.
func (c *fifoChain) sell(sharesToSell float64) (costReleased float64) {
	remaining := sharesToSell
	for len(c.lots) > 0 && remaining > models.ClosedPositionEpsilon {
		lot := &c.lots[0]
		if lot.Shares > remaining {
			// Partial consumption of the earliest lot
			released := lot.CostBasis / lot.Shares * remaining
			lot.CostBasis -= released
			lot.Shares -= remaining
			costReleased += released
			return costReleased
		}
		costReleased += lot.CostBasis
		remaining -= lot.Shares
		c.lots = c.lots[1:]
	}
	return costReleased
}

func (c *fifoChain) totals() (shares, costBasis float64) {
	for _, lot := range c.lots {
		shares += lot.Shares
		costBasis += lot.CostBasis
	}
	return shares, costBasis
}

// CostBasisHistory replays position-affecting transactions for one
// (security, owner) position in (date, sequence) order through a strict FIFO
// lot chain, emitting the running share count and cost basis after every
// transaction. This is the series behind the cost-basis-over-time chart; it
// tracks discrete lots rather than the average-cost running total used by
// CalculateHoldings.
func CostBasisHistory(transactions []models.Transaction, securityRef, ownerKey string) []models.CostBasisPoint {
	chain := &fifoChain{}
	var points []models.CostBasisPoint

	for _, tx := range ledger.SortTransactions(transactions) {
		if tx.SecurityRef != securityRef || tx.OwnerKey != ownerKey {
			continue
		}
		if !models.AffectsPosition(tx.Type) {
			continue
		}

		switch {
		case models.IsBuyClass(tx.Type):
			chain.buy(models.Lot{
				SecurityRef: securityRef,
				OwnerKey:    ownerKey,
				Date:        tx.Date,
				Shares:      tx.Shares,
				CostBasis:   tx.Amount,
			})
		case models.IsSellClass(tx.Type):
			chain.sell(tx.Shares)
		}

		shares, costBasis := chain.totals()
		points = append(points, models.CostBasisPoint{
			Date:      tx.Date,
			Shares:    shares,
			CostBasis: costBasis,
		})
	}

	return points
}

// OpenLots returns the surviving FIFO lots for one (security, owner)
// position after replaying the full ledger. Lots consumed down to the
// closed-position epsilon are excluded.
func OpenLots(transactions []models.Transaction, securityRef, ownerKey string) []models.Lot {
	chain := &fifoChain{}

	for _, tx := range ledger.SortTransactions(transactions) {
		if tx.SecurityRef != securityRef || tx.OwnerKey != ownerKey {
			continue
		}

		switch {
		case models.IsBuyClass(tx.Type):
			chain.buy(models.Lot{
				SecurityRef: securityRef,
				OwnerKey:    ownerKey,
				Date:        tx.Date,
				Shares:      tx.Shares,
				CostBasis:   tx.Amount,
			})
		case models.IsSellClass(tx.Type):
			chain.sell(tx.Shares)
		}
	}

	open := make([]models.Lot, 0, len(chain.lots))
	for _, lot := range chain.lots {
		if lot.Open() {
			open = append(open, lot)
		}
	}
	return open
}
