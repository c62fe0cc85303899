package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction represents a parsed bank statement row.
type BankTransaction struct {
	Index       int // loader-assigned ordinal, stable for the run
	PostingDate time.Time
	Description string
	Amount      decimal.Decimal // negative = debit, positive = credit
	Type        string          // bank transaction type (ACH_DEBIT, etc.)
	ReconTag    string          // manual claim_id override, empty if untagged

	// Keyword flags precomputed by the loader.
	TransferHint bool
	OverpayHint  bool
}

// IsDebit reports whether the transaction is an outgoing amount.
func (t BankTransaction) IsDebit() bool { return t.Amount.IsNegative() }

// IsCredit reports whether the transaction is an incoming amount.
func (t BankTransaction) IsCredit() bool { return t.Amount.IsPositive() }

// AbsAmount returns the unsigned transaction amount.
func (t BankTransaction) AbsAmount() decimal.Decimal { return t.Amount.Abs() }

// Tagged reports whether a ReconTag override is present.
func (t BankTransaction) Tagged() bool { return t.ReconTag != "" }

// DaysBetween returns the absolute whole-day distance between two dates.
// Both are expected to be UTC-midnight values from the loader.
func DaysBetween(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
