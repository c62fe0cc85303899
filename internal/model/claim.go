package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim is the rolled-up aggregate of all ledger entries sharing one
// claim_id. Parent fields come from the canonical-parent selection; sums are
// across every row in the group.
type Claim struct {
	ClaimID              string
	CorrelationID        string // display/legacy id, may be empty
	Claimant             string // parent claimant, suffix stripped
	DealType             string // parent deal type
	ContractDate         time.Time
	RepaymentSum         decimal.Decimal
	AmountToFunderSum    decimal.Decimal
	AmountTransferredSum decimal.Decimal
	RefDate              time.Time       // max window date across the group
	Overpaid             decimal.Decimal // parsed from notes
	Notes                string          // all row notes, " | " joined
}

// ACHConflict is an ach_id shared by rows that disagree on claim_id or base
// claimant. Conflicts are reported, never auto-resolved; all rows survive.
type ACHConflict struct {
	ACHID     string
	ClaimIDs  []string
	Claimants []string // distinct base (suffix-stripped) claimant names
	Rows      []LedgerEntry
}
