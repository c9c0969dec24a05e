// Package interfaces defines service contracts for Folio
package interfaces

import (
	"github.com/bobmcallan/folio/internal/models"
)

// PerformanceService computes investor returns from a transaction ledger.
type PerformanceService interface {
	// ComputePerformance derives TTWROR, IRR and flow totals from the ledger
	// and valuation checkpoint series.
	ComputePerformance(transactions []models.Transaction, valuations []models.Valuation) *models.PerformanceResult
}

// HoldingsService aggregates a transaction ledger into positions.
type HoldingsService interface {
	// ComputeHoldings aggregates the ledger into per-portfolio holdings.
	ComputeHoldings(transactions []models.Transaction, securities map[string]models.Security, priceLookup PriceLookup) []models.Holding

	// ComputeGroupedHoldings collapses holdings by security identity across portfolios.
	ComputeGroupedHoldings(transactions []models.Transaction, securities map[string]models.Security, priceLookup PriceLookup) []models.GroupedHolding

	// RenderCostBasisHistory renders the FIFO cost-basis chart PNG for one position.
	RenderCostBasisHistory(transactions []models.Transaction, securityRef, ownerKey string, latestPrice float64) ([]byte, error)
}

// PriceLookup resolves a security reference to its latest known price.
// Missing entries resolve to 0, never an error.
type PriceLookup = func(securityRef string) float64
