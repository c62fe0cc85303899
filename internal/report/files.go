package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/recon"
)

// File names written by WriteAll into the output directory.
const (
	FileDebitMatches  = "debit_matches.csv"
	FileCreditMatches = "credit_matches.csv"
	FileNoteDebits    = "note_matched_debits.csv"
	FileReconTags     = "recon_tags.csv"
	FileOverpays      = "overpay_adjustments.csv"
	FileUnmatched     = "unmatched_combined.csv"
	FileRevenue       = "per_claim_revenue.csv"
	FileConflicts     = "ach_conflicts.csv"
	FileSummary       = "summary.csv"
)

// WriteAll writes every report for a run into dir, creating it if needed.
func WriteAll(dir string, res *recon.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{FileDebitMatches, func(w io.Writer) error { return WriteMatches(w, res.DebitMatches) }},
		{FileCreditMatches, func(w io.Writer) error { return WriteMatches(w, res.CreditMatches) }},
		{FileNoteDebits, func(w io.Writer) error { return WriteMatches(w, res.NoteDebitMatches) }},
		{FileReconTags, func(w io.Writer) error { return WriteTags(w, res.ReconTags) }},
		{FileOverpays, func(w io.Writer) error { return WriteOverpays(w, res.OverpayAdjustments) }},
		{FileUnmatched, func(w io.Writer) error { return WriteUnmatched(w, res.UnmatchedCombined) }},
		{FileRevenue, func(w io.Writer) error { return WriteRevenue(w, res.PerClaimRevenue) }},
		{FileConflicts, func(w io.Writer) error { return WriteConflicts(w, res.Conflicts) }},
		{FileSummary, func(w io.Writer) error { return WriteSummary(w, res.Summary) }},
	}

	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), f.write); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
