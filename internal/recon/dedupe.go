package recon

import (
	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// DedupeResult is the outcome of the duplicate/conflict pass.
type DedupeResult struct {
	Entries      []model.LedgerEntry // original order, duplicates dropped
	RemovedCount int
	Conflicts    []model.ACHConflict
}

// Dedupe partitions ledger entries by ach_id. Rows sharing an ach_id are
// either true duplicates of one transfer (same claim and base claimant), in
// which case all but the first per (ach_id, claim_id) are dropped, or a
// conflict: the id spans distinct claims or claimants, nothing is dropped
// and an ACHConflict is emitted for review.
func Dedupe(entries []model.LedgerEntry) DedupeResult {
	groups := make(map[string][]model.LedgerEntry)
	var order []string
	for _, e := range entries {
		if e.ACHID == "" {
			continue
		}
		if _, seen := groups[e.ACHID]; !seen {
			order = append(order, e.ACHID)
		}
		groups[e.ACHID] = append(groups[e.ACHID], e)
	}

	var conflicts []model.ACHConflict
	conflicted := make(map[string]bool)
	for _, achID := range order {
		rows := groups[achID]
		if len(rows) < 2 {
			continue
		}
		claimIDs := distinct(rows, func(e model.LedgerEntry) string { return e.ClaimID })
		claimants := distinct(rows, func(e model.LedgerEntry) string { return baseClaimant(e.Claimant) })
		if len(claimIDs) > 1 || len(claimants) > 1 {
			conflicted[achID] = true
			conflicts = append(conflicts, model.ACHConflict{
				ACHID:     achID,
				ClaimIDs:  claimIDs,
				Claimants: claimants,
				Rows:      rows,
			})
		}
	}

	result := DedupeResult{Conflicts: conflicts}
	type dupKey struct{ achID, claimID string }
	seen := make(map[dupKey]bool)
	for _, e := range entries {
		if e.ACHID == "" || conflicted[e.ACHID] {
			result.Entries = append(result.Entries, e)
			continue
		}
		key := dupKey{e.ACHID, e.ClaimID}
		if seen[key] {
			result.RemovedCount++
			continue
		}
		seen[key] = true
		result.Entries = append(result.Entries, e)
	}
	return result
}

// distinct collects unique non-empty key values in first-seen order.
func distinct(rows []model.LedgerEntry, key func(model.LedgerEntry) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
