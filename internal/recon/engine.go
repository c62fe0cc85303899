// Package recon implements the reconciliation engine: a single-threaded,
// deterministic batch pass matching ledger transfer records against a bank
// statement. Consumption state flows through the stages in fixed order:
// dedup, debit match, credit match, notes, tags, aggregate.
package recon

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// Engine runs the reconciliation pipeline with a fixed set of tunables.
type Engine struct {
	params Params
	log    zerolog.Logger
}

// New creates an Engine.
func New(params Params, log zerolog.Logger) *Engine {
	return &Engine{params: params, log: log}
}

// NewDefault creates an Engine with default tunables and no logging.
func NewDefault() *Engine {
	return New(DefaultParams(), zerolog.Nop())
}

// Result is everything one reconciliation run produces.
type Result struct {
	RunID string

	DebitMatches     []model.MatchRecord
	CreditMatches    []model.MatchRecord
	NoteDebitMatches []model.MatchRecord
	ReconTags        []model.ReconTagRow

	Conflicts          []model.ACHConflict
	OverpayAdjustments []OverpayAdjustment

	UnmatchedLedger  []model.LedgerEntry
	UnmatchedClaims  []model.Claim
	UnmatchedCredits []model.BankTransaction
	UnmatchedDebits  []model.BankTransaction

	// ExcludedDebits/ExcludedLedger hold rows dropped by the
	// ignore-debits-before cutoff, kept for audit.
	ExcludedDebits    []model.BankTransaction
	ExcludedLedger    []model.LedgerEntry
	UnmatchedCombined []model.UnmatchedRow

	PerClaimRevenue   []model.RevenueRow
	Summary           []model.SummaryMetric
	DuplicatesRemoved int
}

// Reconcile runs the full pipeline. Fatal input errors abort before any
// matching; data conflicts and unmatched rows degrade to report entries.
func (e *Engine) Reconcile(ledger []model.LedgerEntry, bank []model.BankTransaction) (*Result, error) {
	if err := validateInputs(ledger, bank); err != nil {
		return nil, fmt.Errorf("validating inputs: %w", err)
	}

	res := &Result{RunID: uuid.NewString()}
	log := e.log.With().Str("run_id", res.RunID).Logger()
	log.Info().Int("ledger_rows", len(ledger)).Int("bank_rows", len(bank)).Msg("reconcile start")

	dedup := Dedupe(ledger)
	res.Conflicts = dedup.Conflicts
	res.DuplicatesRemoved = dedup.RemovedCount
	log.Info().
		Int("duplicates_removed", dedup.RemovedCount).
		Int("conflicts", len(dedup.Conflicts)).
		Msg("dedupe done")

	corr := CorrelationMap(dedup.Entries)
	claims := BuildClaims(dedup.Entries, corr)

	tr := NewTracker()
	reserved := reserveTaggedCredits(bank, tr)
	if reserved > 0 {
		log.Info().Int("tagged_credits", reserved).Msg("reserved manually tagged credits")
	}

	debitRes := e.matchDebits(dedup.Entries, bank, tr)
	for i := range debitRes.Matches {
		debitRes.Matches[i].CorrelationID = corr[debitRes.Matches[i].ClaimID]
	}
	res.DebitMatches = debitRes.Matches
	res.UnmatchedLedger = debitRes.UnmatchedEntries
	log.Info().
		Int("matched", len(debitRes.Matches)).
		Int("unmatched_entries", len(debitRes.UnmatchedEntries)).
		Msg("debit matching done")

	creditRes := e.matchCredits(claims, bank, tr)
	res.CreditMatches = creditRes.Matches
	res.OverpayAdjustments = creditRes.OverpayAdjustments
	log.Info().
		Int("matched", len(creditRes.Matches)).
		Int("unmatched_claims", len(creditRes.UnmatchedClaims)).
		Int("overpay_adjustments", len(creditRes.OverpayAdjustments)).
		Msg("credit matching done")

	notesRes := e.matchFromNotes(claims, bank, tr)
	res.NoteDebitMatches = notesRes.DebitMatches
	res.ReconTags = notesRes.TagRows
	log.Info().
		Int("note_debits", len(notesRes.DebitMatches)).
		Int("tag_rows", len(notesRes.TagRows)).
		Msg("notes pass done")

	tags := applyTags(bank, creditRes.OverpayAdjustments)

	res.PerClaimRevenue = aggregateRevenue(
		claims, creditRes.Matches, debitRes.Matches, notesRes.DebitMatches,
		creditRes.OverpayAdjustments, tags)

	e.collectUnmatched(res, creditRes.UnmatchedClaims, bank, tr, tags)
	res.Summary = buildSummary(res)
	log.Info().Msg("reconcile done")
	return res, nil
}

// collectUnmatched derives the leftover views from the tracker state and
// assembles the combined report, applying the optional debit date cutoff.
func (e *Engine) collectUnmatched(res *Result, unmatchedClaims []model.Claim, bank []model.BankTransaction, tr *Tracker, tags TagResult) {
	for _, t := range bank {
		switch {
		case t.IsDebit() && tr.DebitFree(t.Index):
			res.UnmatchedDebits = append(res.UnmatchedDebits, t)
		case t.IsCredit() && tr.CreditAvailable(t.Index):
			res.UnmatchedCredits = append(res.UnmatchedCredits, t)
		}
	}

	// Claims whose credit arrived via a manual tag are reconciled.
	for _, c := range unmatchedClaims {
		if _, ok := tags.CreditAdditions[c.ClaimID]; ok {
			continue
		}
		res.UnmatchedClaims = append(res.UnmatchedClaims, c)
	}

	if cutoff := e.params.IgnoreDebitsBefore; !cutoff.IsZero() {
		kept := res.UnmatchedDebits[:0]
		for _, t := range res.UnmatchedDebits {
			if t.PostingDate.Before(cutoff) {
				res.ExcludedDebits = append(res.ExcludedDebits, t)
				continue
			}
			kept = append(kept, t)
		}
		res.UnmatchedDebits = kept

		keptLedger := res.UnmatchedLedger[:0]
		for _, l := range res.UnmatchedLedger {
			if !l.TransferInitiated.IsZero() && l.TransferInitiated.Before(cutoff) {
				res.ExcludedLedger = append(res.ExcludedLedger, l)
				continue
			}
			keptLedger = append(keptLedger, l)
		}
		res.UnmatchedLedger = keptLedger
	}

	// Ledger entries whose claim got a debit match elsewhere are not
	// reported again as missing transfers.
	debitMatched := make(map[string]bool)
	for _, m := range res.DebitMatches {
		debitMatched[m.ClaimID] = true
	}
	for _, m := range res.NoteDebitMatches {
		debitMatched[m.ClaimID] = true
	}

	for _, t := range res.UnmatchedCredits {
		res.UnmatchedCombined = append(res.UnmatchedCombined, model.UnmatchedRow{
			Category:    model.CategoryBankUnmatchedCredit,
			Date:        t.PostingDate,
			Amount:      t.Amount,
			Description: t.Description,
		})
	}
	for _, t := range res.UnmatchedDebits {
		res.UnmatchedCombined = append(res.UnmatchedCombined, model.UnmatchedRow{
			Category:    model.CategoryBankUnmatchedDebit,
			Date:        t.PostingDate,
			Amount:      t.Amount,
			Description: t.Description,
		})
	}
	for _, l := range res.UnmatchedLedger {
		if debitMatched[l.ClaimID] {
			continue
		}
		res.UnmatchedCombined = append(res.UnmatchedCombined, model.UnmatchedRow{
			Category: model.CategoryLedgerUnmatchedDebit,
			ClaimID:  l.ClaimID,
			Claimant: baseClaimant(l.Claimant),
			Date:     l.TransferInitiated,
			Amount:   l.AmountTransferred,
			Notes:    l.Notes,
		})
	}
	for _, c := range res.UnmatchedClaims {
		res.UnmatchedCombined = append(res.UnmatchedCombined, model.UnmatchedRow{
			Category: model.CategoryClaimUnmatchedCredit,
			ClaimID:  c.ClaimID,
			Claimant: c.Claimant,
			Date:     c.RefDate,
			Amount:   c.RepaymentSum,
			Notes:    c.Notes,
		})
	}
	for _, adj := range res.OverpayAdjustments {
		if adj.DebitIndex >= 0 {
			continue
		}
		res.UnmatchedCombined = append(res.UnmatchedCombined, model.UnmatchedRow{
			Category:    model.CategoryExpectedOverpayMissing,
			ClaimID:     adj.ClaimID,
			Claimant:    adj.Claimant,
			Date:        adj.CreditDate,
			Amount:      adj.Amount,
			Description: "Overpayment debit expected but not found in bank statement",
		})
	}
}

// buildSummary assembles the run metrics table.
func buildSummary(res *Result) []model.SummaryMetric {
	totalDebits := decimal.Zero
	for _, m := range res.DebitMatches {
		totalDebits = totalDebits.Add(m.BankAmount.Abs())
	}
	totalNoteDebits := decimal.Zero
	for _, m := range res.NoteDebitMatches {
		totalNoteDebits = totalNoteDebits.Add(m.BankAmount.Abs())
	}
	totalCredits := decimal.Zero
	for _, m := range res.CreditMatches {
		totalCredits = totalCredits.Add(m.BankAmount)
	}

	count := func(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
	return []model.SummaryMetric{
		{Metric: "Debits matched (count)", Value: count(len(res.DebitMatches))},
		{Metric: "Credits matched (count)", Value: count(len(res.CreditMatches))},
		{Metric: "Note-derived debit matches (count)", Value: count(len(res.NoteDebitMatches))},
		{Metric: "ReconTag rows (count)", Value: count(len(res.ReconTags))},
		{Metric: "ACH conflicts (count)", Value: count(len(res.Conflicts))},
		{Metric: "Duplicates removed (count)", Value: count(res.DuplicatesRemoved)},
		{Metric: "Total debits matched incl. notes (abs)", Value: totalDebits.Add(totalNoteDebits).Round(2)},
		{Metric: "Total credits matched", Value: totalCredits.Round(2)},
		{Metric: "Net diff (debits - credits)", Value: totalDebits.Add(totalNoteDebits).Sub(totalCredits).Round(2)},
		{Metric: "Ledger debits unmatched (count)", Value: count(len(res.UnmatchedLedger))},
		{Metric: "Bank debits unmatched (count)", Value: count(len(res.UnmatchedDebits))},
		{Metric: "Bank credits unmatched (count)", Value: count(len(res.UnmatchedCredits))},
		{Metric: "Claims unmatched (count)", Value: count(len(res.UnmatchedClaims))},
	}
}
