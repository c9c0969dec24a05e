// Package ledger decodes wire-format transaction records into in-memory
// models. The Portfolio Performance export encodes shares as fixed-point
// integers with 8 implied decimal digits and monetary amounts with 2; those
// scale factors live here and nowhere else. Internal arithmetic everywhere
// downstream is plain floating-point units of currency and shares.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/folio/internal/models"
)

const (
	// shareScale is the implied denominator of wire share quantities (×1e8).
	shareScale = int32(8)
	// amountScale is the implied denominator of wire monetary amounts (×1e2, cents).
	amountScale = int32(2)

	wireDateLayout = "2006-01-02"
)

// WireTransaction is one ledger record as produced by the import layer:
// ISO-8601 date string, enum type string, fixed-point integer quantities.
type WireTransaction struct {
	ID          string `json:"id,omitempty"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	SecurityRef string `json:"security_ref,omitempty"`
	OwnerKey    string `json:"owner_key,omitempty"`
	Shares      int64  `json:"shares,omitempty"` // ×1e8
	Amount      int64  `json:"amount"`           // ×1e2 (cents)
	Fees        int64  `json:"fees,omitempty"`   // ×1e2
	Taxes       int64  `json:"taxes,omitempty"`  // ×1e2
	Currency    string `json:"currency,omitempty"`
}

// ScaleShares converts a wire share quantity (×1e8) to floating-point shares.
func ScaleShares(v int64) float64 {
	f, _ := decimal.New(v, -shareScale).Float64()
	return f
}

// ScaleAmount converts a wire monetary amount (×1e2, cents) to floating-point
// currency units.
func ScaleAmount(v int64) float64 {
	f, _ := decimal.New(v, -amountScale).Float64()
	return f
}

// DecodeTransaction converts a single wire record into an in-memory
// transaction. seq records the ledger insertion position, used as the
// same-day ordering tiebreak. Unknown types are not an error here — the
// calculation core excludes them itself — but an unparseable date is.
func DecodeTransaction(w WireTransaction, seq int) (models.Transaction, error) {
	date, err := time.Parse(wireDateLayout, w.Date)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %d: invalid date %q: %w", seq, w.Date, err)
	}

	return models.Transaction{
		ID:          w.ID,
		Date:        date,
		Type:        models.TransactionType(w.Type),
		SecurityRef: w.SecurityRef,
		OwnerKey:    w.OwnerKey,
		Shares:      ScaleShares(w.Shares),
		Amount:      ScaleAmount(w.Amount),
		Fees:        ScaleAmount(w.Fees),
		Taxes:       ScaleAmount(w.Taxes),
		Currency:    w.Currency,
		Sequence:    seq,
	}, nil
}

// DecodeTransactions converts a full wire ledger, preserving insertion order
// in each transaction's Sequence field.
func DecodeTransactions(wire []WireTransaction) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0, len(wire))
	for i, w := range wire {
		tx, err := DecodeTransaction(w, i)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WireValuation is one portfolio-worth checkpoint as supplied by the caller.
// Values are fixed-point cents like every other monetary wire field.
type WireValuation struct {
	Date  string `json:"date"`
	Value int64  `json:"value"` // ×1e2 (cents)
}

// DecodeValuations converts wire valuation checkpoints to in-memory valuations.
func DecodeValuations(wire []WireValuation) ([]models.Valuation, error) {
	vals := make([]models.Valuation, 0, len(wire))
	for i, w := range wire {
		date, err := time.Parse(wireDateLayout, w.Date)
		if err != nil {
			return nil, fmt.Errorf("valuation %d: invalid date %q: %w", i, w.Date, err)
		}
		vals = append(vals, models.Valuation{Date: date, Value: ScaleAmount(w.Value)})
	}
	return vals, nil
}
