package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one repayment-transfer row from the internal system of
// record, prior to bank confirmation. A zero amount means the column was
// missing or unparseable on that row; a zero time means the date was absent.
type LedgerEntry struct {
	Index             int // loader-assigned ordinal, stable for the run
	ACHID             string
	ClaimID           string // business key, required
	Claimant          string
	DealType          string
	ContractDate      time.Time
	TransferInitiated time.Time
	LikelyArrived     time.Time
	RepaymentAmount   decimal.Decimal
	AmountToFunder    decimal.Decimal
	AmountTransferred decimal.Decimal
	Notes             string
	LegacyID          string
}

// WindowDate is the date basis for tolerant matching: the likely arrival
// date when known, else the transfer initiation date.
func (e LedgerEntry) WindowDate() time.Time {
	if !e.LikelyArrived.IsZero() {
		return e.LikelyArrived
	}
	return e.TransferInitiated
}

// HasWindowDate reports whether any matching date basis exists.
func (e LedgerEntry) HasWindowDate() bool {
	return !e.WindowDate().IsZero()
}
