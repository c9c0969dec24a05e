package ledger

import (
	"sort"

	"github.com/bobmcallan/folio/internal/models"
)

// SortTransactions returns a copy of txs ordered by (date, sequence).
// The aggregation contract is explicit date order, not whatever order the
// ledger happened to be inserted in; sequence breaks same-day ties so the
// intraday ordering of the source ledger is still honoured.
func SortTransactions(txs []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Sequence < sorted[j].Sequence
	})
	return sorted
}
