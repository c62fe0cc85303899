package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// NotesResult is the outcome of the note-driven pass. Expected debits are
// auto-matched; expected credits are never auto-matched and only surface as
// ReconTag rows for human confirmation.
type NotesResult struct {
	DebitMatches []model.MatchRecord
	TagRows      []model.ReconTagRow
}

// matchFromNotes applies extracted note events to the bank transactions the
// earlier stages left unconsumed.
func (e *Engine) matchFromNotes(claims []model.Claim, bank []model.BankTransaction, tr *Tracker) NotesResult {
	var credits, debits []model.BankTransaction
	for _, t := range bank {
		if t.IsCredit() {
			credits = append(credits, t)
		} else if t.IsDebit() {
			debits = append(debits, t)
		}
	}

	// Claims already carrying a manual tag on some credit report as MATCHED
	// rather than suggested.
	tagged := make(map[string]bool)
	for _, c := range credits {
		if c.Tagged() {
			tagged[c.ReconTag] = true
		}
	}

	var result NotesResult
	for _, claim := range claims {
		events := ExtractNoteEvents(claim.Notes, claim.RefDate)
		for _, ev := range events {
			switch ev.Kind {
			case NoteCreditExpected:
				row := model.ReconTagRow{
					Status:    model.TagSuggested,
					ClaimID:   claim.ClaimID,
					Claimant:  claim.Claimant,
					Amount:    ev.Amount,
					BankIndex: -1,
				}
				if tagged[claim.ClaimID] {
					row.Status = model.TagMatched
				}
				// Best-effort candidate for the reviewer; never consumed.
				if c := e.noteCandidate(credits, tr, ev.Amount, ev.Anchor, claim.RefDate, false); c != nil {
					row.BankIndex = c.Index
					row.BankDate = c.PostingDate
					row.BankAmount = c.Amount
					row.Description = c.Description
				}
				sc := DetectSharedCheck(claim.Notes)
				row.SharedCheck = sc.Shared
				row.ClientCount = sc.ClientCount
				row.OtherClients = sc.OtherClients
				result.TagRows = append(result.TagRows, row)

			case NoteDebitExpected:
				d := e.noteCandidate(debits, tr, ev.Amount, ev.Anchor, claim.RefDate, true)
				if d == nil {
					continue
				}
				tr.ConsumeDebit(d.Index)
				result.DebitMatches = append(result.DebitMatches, model.MatchRecord{
					ClaimID:           claim.ClaimID,
					CorrelationID:     claim.CorrelationID,
					Claimant:          claim.Claimant,
					LedgerIndex:       -1,
					BankIndex:         d.Index,
					LedgerAmount:      ev.Amount,
					LedgerDate:        ev.Anchor,
					BankAmount:        d.Amount,
					BankDate:          d.PostingDate,
					Description:       d.Description,
					Type:              model.MatchNotes,
					DateDelta:         noteDelta(d.PostingDate, ev.Anchor),
					OverpayDebitIndex: -1,
				})
			}
		}
	}
	return result
}

// noteCandidate searches unconsumed transactions for a note amount: first
// within the note window of the anchor, then within the extended window of
// the claim ref date. Earliest posting date wins.
func (e *Engine) noteCandidate(txns []model.BankTransaction, tr *Tracker, amount decimal.Decimal, anchor, refDate time.Time, isDebit bool) *model.BankTransaction {
	available := func(t model.BankTransaction) bool {
		if isDebit {
			return tr.DebitFree(t.Index)
		}
		return tr.CreditAvailable(t.Index)
	}
	amountOK := func(t model.BankTransaction) bool {
		if isDebit {
			return e.params.withinTol(t.AbsAmount(), amount)
		}
		return e.params.withinTol(t.Amount, amount)
	}
	search := func(center time.Time, winDays int) *model.BankTransaction {
		var best *model.BankTransaction
		for i, t := range txns {
			if !available(t) || !amountOK(t) {
				continue
			}
			if !center.IsZero() && model.DaysBetween(t.PostingDate, center) > winDays {
				continue
			}
			if best == nil || t.PostingDate.Before(best.PostingDate) {
				best = &txns[i]
			}
		}
		return best
	}

	if t := search(anchor, e.params.NoteWindow); t != nil {
		return t
	}
	if !refDate.IsZero() {
		return search(refDate, e.params.NoteExtendedWindow)
	}
	return nil
}

func noteDelta(posting, anchor time.Time) int {
	if anchor.IsZero() {
		return 0
	}
	return model.DaysBetween(posting, anchor)
}
