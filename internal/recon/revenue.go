package recon

import (
	"github.com/shopspring/decimal"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// aggregateRevenue computes per-claim effective bank revenue and the
// bank-vs-book check. Effective credits are matched credit amounts net of
// overpay adjustments (a repayment-plus-overpay credit counts only the
// repayment), plus tagged credit additions, minus tagged debit returns.
// Funder debits are the transfer legs: matched and note-matched debits.
func aggregateRevenue(claims []model.Claim, creditMatches []model.MatchRecord, debitMatches []model.MatchRecord, noteDebits []model.MatchRecord, adjustments []OverpayAdjustment, tags TagResult) []model.RevenueRow {
	creditSum := make(map[string]decimal.Decimal)
	for _, m := range creditMatches {
		creditSum[m.ClaimID] = creditSum[m.ClaimID].Add(m.BankAmount)
	}
	overpaySum := make(map[string]decimal.Decimal)
	for _, adj := range adjustments {
		overpaySum[adj.ClaimID] = overpaySum[adj.ClaimID].Add(adj.Amount)
	}
	debitSum := make(map[string]decimal.Decimal)
	for _, m := range debitMatches {
		debitSum[m.ClaimID] = debitSum[m.ClaimID].Add(m.BankAmount.Abs())
	}
	for _, m := range noteDebits {
		debitSum[m.ClaimID] = debitSum[m.ClaimID].Add(m.BankAmount.Abs())
	}

	rows := make([]model.RevenueRow, 0, len(claims))
	for _, c := range claims {
		credits := creditSum[c.ClaimID].
			Sub(overpaySum[c.ClaimID]).
			Add(tags.CreditAdditions[c.ClaimID]).
			Sub(tags.DebitSubtractions[c.ClaimID]).
			Round(2)
		debits := debitSum[c.ClaimID].Round(2)
		book := c.RepaymentSum.Sub(c.AmountToFunderSum).Round(2)
		bank := credits.Sub(debits).Round(2)
		rows = append(rows, model.RevenueRow{
			ClaimID:           c.ClaimID,
			CorrelationID:     c.CorrelationID,
			Claimant:          c.Claimant,
			RepaymentSum:      c.RepaymentSum,
			AmountToFunderSum: c.AmountToFunderSum,
			BookRevenue:       book,
			BankCredits:       credits,
			FunderDebits:      debits,
			BankRevenue:       bank,
			Check:             bank.Sub(book).Round(2),
		})
	}
	return rows
}
