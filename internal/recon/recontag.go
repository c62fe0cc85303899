package recon

import (
	"github.com/shopspring/decimal"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// TagResult is the outcome of applying manual ReconTag overrides. A tag is
// set outside this system and is authoritative: tagged credit sums are added
// to the claim's effective bank credit on top of any automatic match, and
// tagged debits are confirmed overpayment returns subtracted from it.
type TagResult struct {
	CreditAdditions   map[string]decimal.Decimal
	DebitSubtractions map[string]decimal.Decimal
}

// reserveTaggedCredits holds every tagged credit out of the automatic credit
// matcher's candidate pool before matching starts.
func reserveTaggedCredits(bank []model.BankTransaction, tr *Tracker) int {
	reserved := 0
	for _, t := range bank {
		if t.IsCredit() && t.Tagged() {
			tr.ReserveCredit(t.Index)
			reserved++
		}
	}
	return reserved
}

// applyTags sums tagged credits and debits per claim. A tagged debit already
// counted as a linked overpay return is excluded, keyed by the linked
// transaction index so tolerance slack between the note-parsed overpay and
// the debit amount cannot let it subtract twice.
func applyTags(bank []model.BankTransaction, adjustments []OverpayAdjustment) TagResult {
	linked := make(map[int]bool)
	for _, adj := range adjustments {
		if adj.DebitIndex >= 0 {
			linked[adj.DebitIndex] = true
		}
	}

	result := TagResult{
		CreditAdditions:   make(map[string]decimal.Decimal),
		DebitSubtractions: make(map[string]decimal.Decimal),
	}
	for _, t := range bank {
		if !t.Tagged() {
			continue
		}
		switch {
		case t.IsCredit():
			result.CreditAdditions[t.ReconTag] = result.CreditAdditions[t.ReconTag].Add(t.Amount)
		case t.IsDebit():
			if linked[t.Index] {
				continue
			}
			result.DebitSubtractions[t.ReconTag] = result.DebitSubtractions[t.ReconTag].Add(t.AbsAmount())
		}
	}
	return result
}
