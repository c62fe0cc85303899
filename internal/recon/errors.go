package recon

import (
	"errors"
	"fmt"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// Fatal input errors. A run aborts before any matching when a required field
// is absent; every other anomaly degrades to an unmatched or flagged row.
var (
	ErrMissingClaimID     = errors.New("ledger entry missing claim_id")
	ErrMissingPostingDate = errors.New("bank transaction missing posting date")
	ErrMissingAmount      = errors.New("bank transaction missing amount")
)

// validateInputs enforces the loader contract: claim_id on every ledger row,
// posting date and a signed amount on every bank row. Ledger rows missing
// amounts or dates are legal and simply end up unmatched.
func validateInputs(ledger []model.LedgerEntry, bank []model.BankTransaction) error {
	for i, e := range ledger {
		if e.ClaimID == "" {
			return fmt.Errorf("ledger row %d (ach_id %q): %w", i, e.ACHID, ErrMissingClaimID)
		}
	}
	for i, t := range bank {
		if t.PostingDate.IsZero() {
			return fmt.Errorf("bank row %d (%q): %w", i, t.Description, ErrMissingPostingDate)
		}
		if t.Amount.IsZero() {
			return fmt.Errorf("bank row %d (%q): %w", i, t.Description, ErrMissingAmount)
		}
	}
	return nil
}
