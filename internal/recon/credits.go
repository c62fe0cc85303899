package recon

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// OverpayAdjustment records an overpay-strategy credit match and the
// companion return debit, if one was found.
type OverpayAdjustment struct {
	ClaimID    string
	Claimant   string
	CreditDate time.Time
	Amount     decimal.Decimal // overpaid amount parsed from notes
	DebitIndex int             // -1 when no companion debit was found
	DebitDate  time.Time
	DebitDesc  string
}

// CreditResult is the outcome of the claim vs bank-credit pass.
type CreditResult struct {
	Matches            []model.MatchRecord
	UnmatchedClaims    []model.Claim
	OverpayAdjustments []OverpayAdjustment
}

// prioritizeClaims orders claims for matching. Claims are grouped by rounded
// repayment sum; within a group the claim whose transferred total sits
// closest to the repayment goes first, so a partial or secondary claim with
// a colliding amount cannot steal the correct credit. Positions outside a
// group keep insertion order.
func prioritizeClaims(claims []model.Claim) []model.Claim {
	key := func(c model.Claim) string { return c.RepaymentSum.Round(2).StringFixed(2) }
	diff := func(c model.Claim) decimal.Decimal {
		return c.RepaymentSum.Sub(c.AmountTransferredSum).Abs()
	}

	members := make(map[string][]int)
	for i, c := range claims {
		k := key(c)
		members[k] = append(members[k], i)
	}
	for _, idxs := range members {
		sort.SliceStable(idxs, func(a, b int) bool {
			return diff(claims[idxs[a]]).LessThan(diff(claims[idxs[b]]))
		})
	}

	out := make([]model.Claim, len(claims))
	cursor := make(map[string]int)
	for i, c := range claims {
		k := key(c)
		out[i] = claims[members[k][cursor[k]]]
		cursor[k]++
	}
	return out
}

// matchCredits assigns claim repayment totals to bank credits in priority
// order, trying the overpay target first, then FEDWIRE name matching, then
// the plain claim sum. Overpay matches also link a companion return debit.
func (e *Engine) matchCredits(claims []model.Claim, bank []model.BankTransaction, tr *Tracker) CreditResult {
	var credits, debits []model.BankTransaction
	for _, t := range bank {
		if t.IsCredit() {
			credits = append(credits, t)
		} else if t.IsDebit() {
			debits = append(debits, t)
		}
	}

	var result CreditResult
	for _, claim := range prioritizeClaims(claims) {
		if claim.RepaymentSum.IsZero() {
			result.UnmatchedClaims = append(result.UnmatchedClaims, claim)
			continue
		}

		overpay := claim.Overpaid
		hasOverpay := overpay.GreaterThan(e.params.AmountTol)
		winDays := e.params.StandardWindow
		if hasOverpay && e.params.OverpayBackfillWindow > winDays {
			winDays = e.params.OverpayBackfillWindow
		}

		var chosen *model.BankTransaction
		var mode model.MatchType

		if hasOverpay {
			target := claim.RepaymentSum.Add(overpay)
			chosen = e.nearestCredit(credits, tr, target, claim.RefDate, winDays)
			mode = model.MatchClaimSumPlusOverpay
		}
		if chosen == nil {
			chosen = e.fedwireCredit(credits, tr, claim)
			mode = model.MatchFedwireName
		}
		if chosen == nil {
			chosen = e.nearestCredit(credits, tr, claim.RepaymentSum, claim.RefDate, winDays)
			mode = model.MatchClaimSum
		}
		if chosen == nil {
			result.UnmatchedClaims = append(result.UnmatchedClaims, claim)
			continue
		}

		tr.ConsumeCredit(chosen.Index)
		rec := model.MatchRecord{
			ClaimID:           claim.ClaimID,
			CorrelationID:     claim.CorrelationID,
			Claimant:          claim.Claimant,
			LedgerIndex:       -1,
			BankIndex:         chosen.Index,
			LedgerAmount:      claim.RepaymentSum,
			LedgerDate:        claim.RefDate,
			BankAmount:        chosen.Amount,
			BankDate:          chosen.PostingDate,
			Description:       chosen.Description,
			Type:              mode,
			OverpayDebitIndex: -1,
		}
		if !claim.RefDate.IsZero() {
			rec.DateDelta = model.DaysBetween(chosen.PostingDate, claim.RefDate)
		}

		if mode == model.MatchClaimSumPlusOverpay {
			rec.OverpayAmount = overpay
			adj := OverpayAdjustment{
				ClaimID:    claim.ClaimID,
				Claimant:   claim.Claimant,
				CreditDate: chosen.PostingDate,
				Amount:     overpay,
				DebitIndex: -1,
			}
			if d := e.overpayDebit(debits, tr, overpay, chosen.PostingDate, claim.RefDate); d != nil {
				tr.ConsumeOverpayDebit(d.Index)
				rec.OverpayDebitIndex = d.Index
				rec.OverpayDebitDate = d.PostingDate
				rec.OverpayDebitDesc = d.Description
				adj.DebitIndex = d.Index
				adj.DebitDate = d.PostingDate
				adj.DebitDesc = d.Description
			}
			result.OverpayAdjustments = append(result.OverpayAdjustments, adj)
		}

		result.Matches = append(result.Matches, rec)
	}
	return result
}

// nearestCredit picks the unconsumed credit closest to target inside the
// window around refDate (any date when refDate is unknown). Ties break by
// date proximity, then posting date, then statement order.
func (e *Engine) nearestCredit(credits []model.BankTransaction, tr *Tracker, target decimal.Decimal, refDate time.Time, winDays int) *model.BankTransaction {
	type cand struct {
		txn       model.BankTransaction
		diff      decimal.Decimal
		dateDelta int
	}
	var cands []cand
	for _, c := range credits {
		if !tr.CreditAvailable(c.Index) {
			continue
		}
		delta := 0
		if !refDate.IsZero() {
			delta = model.DaysBetween(c.PostingDate, refDate)
			if delta > winDays {
				continue
			}
		}
		if !e.params.withinTol(c.Amount, target) {
			continue
		}
		cands = append(cands, cand{txn: c, diff: c.Amount.Sub(target).Abs(), dateDelta: delta})
	}
	if len(cands) == 0 {
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if !cands[i].diff.Equal(cands[j].diff) {
			return cands[i].diff.LessThan(cands[j].diff)
		}
		if cands[i].dateDelta != cands[j].dateDelta {
			return cands[i].dateDelta < cands[j].dateDelta
		}
		return cands[i].txn.PostingDate.Before(cands[j].txn.PostingDate)
	})
	return &cands[0].txn
}

// fedwireCredit searches, with no date restriction, for an unconsumed wire
// credit whose description carries every claimant name token. Requires at
// least two usable name tokens so a lone surname cannot match.
func (e *Engine) fedwireCredit(credits []model.BankTransaction, tr *Tracker, claim model.Claim) *model.BankTransaction {
	var tokens []string
	for _, t := range strings.Fields(claim.Claimant) {
		if len(t) > 2 {
			tokens = append(tokens, strings.ToUpper(t))
		}
	}
	if len(tokens) < 2 {
		return nil
	}

	for _, c := range credits {
		if !tr.CreditAvailable(c.Index) {
			continue
		}
		if !e.params.withinTol(c.Amount, claim.RepaymentSum) {
			continue
		}
		desc := strings.ToUpper(c.Description)
		if !strings.Contains(desc, "FEDWIRE") {
			continue
		}
		ok := true
		for _, tok := range tokens {
			if !strings.Contains(desc, tok) {
				ok = false
				break
			}
		}
		if ok {
			return &c
		}
	}
	return nil
}

// overpayDebit finds the companion return debit for an overpay credit:
// first within the standard window of the credit's date, else within the
// backfill window of the claim ref date. Overpay-hinted descriptions win,
// then the earliest posting date.
func (e *Engine) overpayDebit(debits []model.BankTransaction, tr *Tracker, overpay decimal.Decimal, creditDate, refDate time.Time) *model.BankTransaction {
	pick := func(anchor time.Time, winDays int) *model.BankTransaction {
		var cands []model.BankTransaction
		for _, d := range debits {
			if tr.OverpayDebitUsed(d.Index) {
				continue
			}
			if !e.params.withinTol(d.AbsAmount(), overpay) {
				continue
			}
			if model.DaysBetween(d.PostingDate, anchor) > winDays {
				continue
			}
			cands = append(cands, d)
		}
		if len(cands) == 0 {
			return nil
		}
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].OverpayHint != cands[j].OverpayHint {
				return cands[i].OverpayHint
			}
			return cands[i].PostingDate.Before(cands[j].PostingDate)
		})
		return &cands[0]
	}

	if d := pick(creditDate, e.params.StandardWindow); d != nil {
		return d
	}
	if !refDate.IsZero() {
		return pick(refDate, e.params.OverpayBackfillWindow)
	}
	return nil
}
