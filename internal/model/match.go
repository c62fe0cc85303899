package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchType identifies which strategy produced a MatchRecord.
type MatchType string

const (
	MatchAmountWindow         MatchType = "amount+window(+hints)"
	MatchAmountExtendedWindow MatchType = "amount+extended_window"
	MatchClaimSum             MatchType = "claim_sum"
	MatchClaimSumPlusOverpay  MatchType = "claim_sum_plus_overpay"
	MatchFedwireName          MatchType = "fedwire_name"
	MatchNotes                MatchType = "notes"
)

// MatchRecord links a ledger entry or claim to a bank transaction. A bank
// transaction is consumed by at most one primary MatchRecord; the overpay
// debit linkage is a separate secondary link.
type MatchRecord struct {
	ClaimID       string
	CorrelationID string
	ACHID         string
	Claimant      string

	LedgerIndex  int // -1 for claim-level (credit) matches
	BankIndex    int
	LedgerAmount decimal.Decimal // amount expected on the ledger side
	LedgerDate   time.Time       // window date (debits) or ref date (credits)
	BankAmount   decimal.Decimal
	BankDate     time.Time
	Description  string

	Type       MatchType
	Confidence float64 // heuristic certainty in [0,1]
	DateDelta  int     // |posting - ledger| in days

	// Overpay linkage, set only on claim_sum_plus_overpay matches.
	OverpayAmount     decimal.Decimal
	OverpayDebitIndex int // -1 when no companion debit was found
	OverpayDebitDate  time.Time
	OverpayDebitDesc  string
}

// HasOverpayDebit reports whether a companion overpay debit was linked.
func (m MatchRecord) HasOverpayDebit() bool { return m.OverpayDebitIndex >= 0 }
