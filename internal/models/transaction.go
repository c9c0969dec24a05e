// Package models defines data structures for Folio
package models

import "time"

// TransactionType is the closed taxonomy of ledger transaction types,
// matching the type strings used by Portfolio Performance exports.
type TransactionType string

const (
	TxDeposit          TransactionType = "DEPOSIT"
	TxRemoval          TransactionType = "REMOVAL"
	TxBuy              TransactionType = "BUY"
	TxSell             TransactionType = "SELL"
	TxDeliveryInbound  TransactionType = "DELIVERY_INBOUND"
	TxDeliveryOutbound TransactionType = "DELIVERY_OUTBOUND"
	TxTransferIn       TransactionType = "TRANSFER_IN"
	TxTransferOut      TransactionType = "TRANSFER_OUT"
	TxDividend         TransactionType = "DIVIDENDS"
	TxInterest         TransactionType = "INTEREST"
	TxFees             TransactionType = "FEES"
	TxTaxes            TransactionType = "TAXES"
)

// validTransactionTypes lists all accepted transaction types.
var validTransactionTypes = map[TransactionType]bool{
	TxDeposit:          true,
	TxRemoval:          true,
	TxBuy:              true,
	TxSell:             true,
	TxDeliveryInbound:  true,
	TxDeliveryOutbound: true,
	TxTransferIn:       true,
	TxTransferOut:      true,
	TxDividend:         true,
	TxInterest:         true,
	TxFees:             true,
	TxTaxes:            true,
}

// ValidTransactionType returns true if t is a known transaction type.
func ValidTransactionType(t TransactionType) bool {
	return validTransactionTypes[t]
}

// IsContribution returns true for transaction types that move money from the
// investor into the portfolio across the account boundary.
func IsContribution(t TransactionType) bool {
	switch t {
	case TxDeposit, TxDeliveryInbound, TxTransferIn:
		return true
	default:
		return false
	}
}

// IsWithdrawal returns true for transaction types that move money from the
// portfolio back to the investor across the account boundary.
func IsWithdrawal(t TransactionType) bool {
	switch t {
	case TxRemoval, TxDeliveryOutbound, TxTransferOut:
		return true
	default:
		return false
	}
}

// IsBuyClass returns true for transaction types that add shares to a position.
func IsBuyClass(t TransactionType) bool {
	switch t {
	case TxBuy, TxDeliveryInbound, TxTransferIn:
		return true
	default:
		return false
	}
}

// IsSellClass returns true for transaction types that remove shares from a position.
func IsSellClass(t TransactionType) bool {
	switch t {
	case TxSell, TxDeliveryOutbound, TxTransferOut:
		return true
	default:
		return false
	}
}

// AffectsPosition returns true if the transaction type changes a security position.
func AffectsPosition(t TransactionType) bool {
	return IsBuyClass(t) || IsSellClass(t)
}

// Transaction is an immutable, dated economic event affecting either a cash
// account or a security position. Created by the import layer, consumed
// read-only by the calculation core. Shares and Amount are already in
// floating-point units — fixed-point wire scaling happens in the ledger
// package, never here.
type Transaction struct {
	ID          string          `json:"id,omitempty"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	SecurityRef string          `json:"security_ref,omitempty"` // set for position-affecting types
	OwnerKey    string          `json:"owner_key,omitempty"`    // portfolio/account the event belongs to
	Shares      float64         `json:"shares,omitempty"`
	Amount      float64         `json:"amount"`
	Fees        float64         `json:"fees,omitempty"`
	Taxes       float64         `json:"taxes,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	Sequence    int             `json:"sequence,omitempty"` // ledger insertion order, tiebreak for same-day events
}

// Security holds identifying metadata for an instrument referenced by transactions.
type Security struct {
	Ref      string `json:"ref"`
	Name     string `json:"name"`
	ISIN     string `json:"isin,omitempty"`
	Ticker   string `json:"ticker,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// SecurityIdentity returns the grouping key for cross-portfolio aggregation:
// the ISIN when present, otherwise the security name.
func (s Security) SecurityIdentity() string {
	if s.ISIN != "" {
		return s.ISIN
	}
	return s.Name
}
