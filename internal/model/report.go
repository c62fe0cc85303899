package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnmatchedCategory tags a row in the combined unmatched report.
type UnmatchedCategory string

const (
	CategoryBankUnmatchedCredit    UnmatchedCategory = "CHASE_Unmatched_Credit"
	CategoryBankUnmatchedDebit     UnmatchedCategory = "CHASE_Unmatched_Debit"
	CategoryLedgerUnmatchedDebit   UnmatchedCategory = "R2D_Unmatched_Debit"
	CategoryClaimUnmatchedCredit   UnmatchedCategory = "Claim_Unmatched_Credit"
	CategoryExpectedOverpayMissing UnmatchedCategory = "Expected_Overpay_Debit_missing"
)

// UnmatchedRow is one entry in the combined unmatched report.
type UnmatchedRow struct {
	Category    UnmatchedCategory
	ClaimID     string
	Claimant    string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Notes       string
}

// TagStatus is the state of a ReconTag report row.
type TagStatus string

const (
	TagMatched   TagStatus = "MATCHED"
	TagSuggested TagStatus = "SUGGESTED"
)

// ReconTagRow is one entry in the ReconTags report: either an applied manual
// tag or a suggested tag derived from note parsing.
type ReconTagRow struct {
	Status      TagStatus
	ClaimID     string
	Claimant    string
	Amount      decimal.Decimal // expected credit amount from the note
	BankIndex   int             // candidate/tagged transaction, -1 if none
	BankDate    time.Time
	BankAmount  decimal.Decimal
	Description string

	// Shared-check detection, carried for proportional-split review.
	SharedCheck  bool
	ClientCount  int
	OtherClients []string
}

// RevenueRow is the per-claim revenue report line.
type RevenueRow struct {
	ClaimID           string
	CorrelationID     string
	Claimant          string
	RepaymentSum      decimal.Decimal
	AmountToFunderSum decimal.Decimal
	BookRevenue       decimal.Decimal // repayment - to-funder
	BankCredits       decimal.Decimal // effective, after overpay and tags
	FunderDebits      decimal.Decimal
	BankRevenue       decimal.Decimal // credits - debits
	Check             decimal.Decimal // bank - book; nonzero flags review
}

// SummaryMetric is one row of the run summary table.
type SummaryMetric struct {
	Metric string
	Value  decimal.Decimal
}
