package recon

import (
	"sort"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// DebitResult is the outcome of the ledger-transfer vs bank-debit pass.
type DebitResult struct {
	Matches          []model.MatchRecord
	UnmatchedEntries []model.LedgerEntry
}

// candidatePair is one feasible (ledger entry, bank debit) assignment.
type candidatePair struct {
	entryPos   int // position within entries, not LedgerEntry.Index
	bank       model.BankTransaction
	confidence float64
	dateDelta  int
}

// matchDebits assigns ledger transfer amounts to bank debits in two passes.
//
// Pass 1 is a global greedy assignment: every feasible pair within the
// standard window is collected first, sorted by confidence then date
// proximity, and only then consumed best-first. Collect-then-assign is what
// keeps an early entry from stealing a debit that a later entry matches
// better; a per-entry streaming loop changes outcomes on collisions.
//
// Pass 2 retries the leftovers per entry with the extended window.
func (e *Engine) matchDebits(entries []model.LedgerEntry, bank []model.BankTransaction, tr *Tracker) DebitResult {
	var debits []model.BankTransaction
	for _, t := range bank {
		if t.IsDebit() {
			debits = append(debits, t)
		}
	}

	var pairs []candidatePair
	for pos, entry := range entries {
		if entry.AmountTransferred.IsZero() || !entry.HasWindowDate() {
			continue
		}
		win := entry.WindowDate()
		for _, d := range debits {
			if !e.params.withinTol(d.AbsAmount(), entry.AmountTransferred.Abs()) {
				continue
			}
			delta := model.DaysBetween(d.PostingDate, win)
			if delta > e.params.StandardWindow {
				continue
			}
			pairs = append(pairs, candidatePair{
				entryPos:   pos,
				bank:       d,
				confidence: e.confidence(d.TransferHint, delta),
				dateDelta:  delta,
			})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].confidence != pairs[j].confidence {
			return pairs[i].confidence > pairs[j].confidence
		}
		return pairs[i].dateDelta < pairs[j].dateDelta
	})

	var result DebitResult
	matched := make([]bool, len(entries))
	for _, p := range pairs {
		if matched[p.entryPos] || tr.DebitUsed(p.bank.Index) {
			continue
		}
		matched[p.entryPos] = true
		tr.ConsumeDebit(p.bank.Index)
		result.Matches = append(result.Matches, e.debitRecord(entries[p.entryPos], p, model.MatchAmountWindow))
	}

	// Pass 2: widened window, first unconsumed candidate per entry ordered
	// by transfer hint then date proximity.
	for pos, entry := range entries {
		if matched[pos] {
			continue
		}
		if entry.AmountTransferred.IsZero() || !entry.HasWindowDate() {
			result.UnmatchedEntries = append(result.UnmatchedEntries, entry)
			continue
		}
		win := entry.WindowDate()
		var cands []candidatePair
		for _, d := range debits {
			if tr.DebitUsed(d.Index) {
				continue
			}
			if !e.params.withinTol(d.AbsAmount(), entry.AmountTransferred.Abs()) {
				continue
			}
			delta := model.DaysBetween(d.PostingDate, win)
			if delta > e.params.ExtendedWindow {
				continue
			}
			cands = append(cands, candidatePair{
				entryPos:   pos,
				bank:       d,
				confidence: e.confidence(d.TransferHint, delta),
				dateDelta:  delta,
			})
		}
		if len(cands) == 0 {
			result.UnmatchedEntries = append(result.UnmatchedEntries, entry)
			continue
		}
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].bank.TransferHint != cands[j].bank.TransferHint {
				return cands[i].bank.TransferHint
			}
			return cands[i].dateDelta < cands[j].dateDelta
		})
		chosen := cands[0]
		matched[pos] = true
		tr.ConsumeDebit(chosen.bank.Index)
		result.Matches = append(result.Matches, e.debitRecord(entry, chosen, model.MatchAmountExtendedWindow))
	}

	return result
}

// confidence scores a debit pair from the description hint and date
// proximity, capped below 1.
func (e *Engine) confidence(hint bool, dateDelta int) float64 {
	c := e.params.ConfidenceBase
	if hint {
		c += e.params.ConfidenceHint
	}
	if dateDelta <= 1 {
		c += e.params.ConfidenceNearDate
	}
	if c > e.params.ConfidenceCap {
		c = e.params.ConfidenceCap
	}
	return c
}

func (e *Engine) debitRecord(entry model.LedgerEntry, p candidatePair, typ model.MatchType) model.MatchRecord {
	return model.MatchRecord{
		ClaimID:           entry.ClaimID,
		ACHID:             entry.ACHID,
		Claimant:          baseClaimant(entry.Claimant),
		LedgerIndex:       entry.Index,
		BankIndex:         p.bank.Index,
		LedgerAmount:      entry.AmountTransferred,
		LedgerDate:        entry.WindowDate(),
		BankAmount:        p.bank.Amount,
		BankDate:          p.bank.PostingDate,
		Description:       p.bank.Description,
		Type:              typ,
		Confidence:        p.confidence,
		DateDelta:         p.dateDelta,
		OverpayDebitIndex: -1,
	}
}
