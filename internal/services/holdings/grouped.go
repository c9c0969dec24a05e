package holdings

import (
	"sort"

	"github.com/bobmcallan/folio/internal/models"
)

// GroupBySecurity collapses per-portfolio holdings into one row per security
// identity — ISIN when known, falling back to the security name, falling back
// to the raw security ref. Shares, cost basis and value sum across owners;
// this is the "total position in X across all portfolios" view. Output is
// sorted descending by total value.
func GroupBySecurity(holdings []models.Holding) []models.GroupedHolding {
	grouped := make(map[string]*models.GroupedHolding)
	var order []string

	for _, h := range holdings {
		key := h.ISIN
		if key == "" {
			key = h.Name
		}
		if key == "" {
			key = h.SecurityRef
		}

		g, ok := grouped[key]
		if !ok {
			g = &models.GroupedHolding{
				SecurityKey: key,
				Name:        h.Name,
				Currency:    h.Currency,
			}
			grouped[key] = g
			order = append(order, key)
		}

		g.OwnerKeys = append(g.OwnerKeys, h.OwnerKey)
		g.TotalShares += h.TotalShares
		g.TotalCostBasis += h.TotalCostBasis
		g.TotalValue += h.CurrentValue
		g.GainLoss += h.GainLoss
	}

	result := make([]models.GroupedHolding, 0, len(grouped))
	for _, key := range order {
		result = append(result, *grouped[key])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalValue > result[j].TotalValue
	})

	return result
}
