package recon

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

var (
	afrDealType = regexp.MustCompile(`(?i)\bafr`)
	parenSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
)

// baseClaimant strips trailing parenthetical annotations like "(AFR)" from a
// claimant name.
func baseClaimant(name string) string {
	return strings.TrimSpace(parenSuffix.ReplaceAllString(name, ""))
}

// claimGroup is the rows of one claim_id in first-appearance order.
type claimGroup struct {
	id   string
	rows []model.LedgerEntry
}

func groupByClaim(entries []model.LedgerEntry) []claimGroup {
	pos := make(map[string]int)
	var groups []claimGroup
	for _, e := range entries {
		i, seen := pos[e.ClaimID]
		if !seen {
			i = len(groups)
			pos[e.ClaimID] = i
			groups = append(groups, claimGroup{id: e.ClaimID})
		}
		groups[i].rows = append(groups[i].rows, e)
	}
	return groups
}

// canonicalParent picks the canonical row of a claim group: prefer non-AFR
// deal types; among survivors the earliest contract date wins, tie-broken by
// earliest window date. Groups with no contract date anywhere fall back to
// the window date alone. Missing dates sort last; insertion order breaks
// remaining ties.
func canonicalParent(rows []model.LedgerEntry) model.LedgerEntry {
	candidates := make([]model.LedgerEntry, 0, len(rows))
	for _, r := range rows {
		if !afrDealType.MatchString(r.DealType) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, rows...)
	}

	anyContract := false
	for _, r := range candidates {
		if !r.ContractDate.IsZero() {
			anyContract = true
			break
		}
	}

	sorted := make([]model.LedgerEntry, len(candidates))
	copy(sorted, candidates)
	if anyContract {
		sort.SliceStable(sorted, func(i, j int) bool {
			if c := compareDatesNilLast(sorted[i].ContractDate, sorted[j].ContractDate); c != 0 {
				return c < 0
			}
			return compareDatesNilLast(sorted[i].WindowDate(), sorted[j].WindowDate()) < 0
		})
	} else {
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareDatesNilLast(sorted[i].WindowDate(), sorted[j].WindowDate()) < 0
		})
	}

	parent := sorted[0]
	parent.Claimant = baseClaimant(parent.Claimant)
	return parent
}

// CorrelationMap resolves one display/legacy correlation id per claim: the
// parent's own legacy id when present, else the first non-empty legacy id
// anywhere in the group, else empty. Display enrichment only; never used by
// matching.
func CorrelationMap(entries []model.LedgerEntry) map[string]string {
	corr := make(map[string]string)
	for _, g := range groupByClaim(entries) {
		parent := canonicalParent(g.rows)
		if parent.LegacyID != "" {
			corr[g.id] = parent.LegacyID
			continue
		}
		corr[g.id] = ""
		for _, r := range g.rows {
			if r.LegacyID != "" {
				corr[g.id] = r.LegacyID
				break
			}
		}
	}
	return corr
}

// compareDatesNilLast orders dates ascending with zero values last.
func compareDatesNilLast(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
