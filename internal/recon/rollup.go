package recon

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// Matches "overpaid by $X", "overpayment of $X" and looser variants.
var overpaidPattern = regexp.MustCompile(`(?i)(?:overpaid\s*(?:by)?|overpayment\s*(?:of)?)\s*\$?\s*([0-9][0-9,]*\.?[0-9]{0,2})`)

// ParseOverpaidAmount extracts the overpaid dollar amount from a note, or
// zero when the note carries no overpay phrase.
func ParseOverpaidAmount(notes string) decimal.Decimal {
	m := overpaidPattern.FindStringSubmatch(notes)
	if m == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}

// BuildClaims rolls deduplicated ledger entries up to one Claim per
// claim_id: summed amounts, max window date as the reference date, the
// largest overpaid amount found in any row's notes, and parent fields from
// the canonical-parent selection. Claims come out in first-appearance order.
func BuildClaims(entries []model.LedgerEntry, corr map[string]string) []model.Claim {
	var claims []model.Claim
	for _, g := range groupByClaim(entries) {
		parent := canonicalParent(g.rows)
		c := model.Claim{
			ClaimID:       g.id,
			CorrelationID: corr[g.id],
			Claimant:      parent.Claimant,
			DealType:      parent.DealType,
			ContractDate:  parent.ContractDate,
		}
		var notes []string
		for _, r := range g.rows {
			c.RepaymentSum = c.RepaymentSum.Add(r.RepaymentAmount)
			c.AmountToFunderSum = c.AmountToFunderSum.Add(r.AmountToFunder)
			c.AmountTransferredSum = c.AmountTransferredSum.Add(r.AmountTransferred)
			if w := r.WindowDate(); !w.IsZero() && w.After(c.RefDate) {
				c.RefDate = w
			}
			if over := ParseOverpaidAmount(r.Notes); over.GreaterThan(c.Overpaid) {
				c.Overpaid = over
			}
			if s := strings.TrimSpace(r.Notes); s != "" {
				notes = append(notes, s)
			}
		}
		c.Notes = strings.Join(notes, " | ")
		claims = append(claims, c)
	}
	return claims
}
