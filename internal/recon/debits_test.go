package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

func TestMatchDebits_HintedNearDate(t *testing.T) {
	e := NewDefault()
	entries := []model.LedgerEntry{entry(0, "CLM-1", "ACH-1", "Nina Brown", "1000.00", date(2025, 1, 10))}
	bank := []model.BankTransaction{debit(0, "1000.00", date(2025, 1, 9), "ORIG CO NAME DWOLLA xfer", true)}

	res := e.matchDebits(entries, bank, NewTracker())
	require.Len(t, res.Matches, 1)
	assert.Empty(t, res.UnmatchedEntries)

	m := res.Matches[0]
	assert.Equal(t, "CLM-1", m.ClaimID)
	assert.Equal(t, model.MatchAmountWindow, m.Type)
	assert.InDelta(t, 0.99, m.Confidence, 1e-9)
	assert.Equal(t, 1, m.DateDelta)
	assert.Equal(t, 0, m.BankIndex)
	assert.True(t, dec("-1000.00").Equal(m.BankAmount))
}

func TestMatchDebits_AmountTolerance(t *testing.T) {
	e := NewDefault()
	entries := []model.LedgerEntry{entry(0, "CLM-1", "", "A", "100.00", date(2025, 1, 10))}

	within := []model.BankTransaction{debit(0, "100.02", date(2025, 1, 10), "x", false)}
	res := e.matchDebits(entries, within, NewTracker())
	assert.Len(t, res.Matches, 1)

	outside := []model.BankTransaction{debit(0, "100.03", date(2025, 1, 10), "x", false)}
	res = e.matchDebits(entries, outside, NewTracker())
	assert.Empty(t, res.Matches)
	assert.Len(t, res.UnmatchedEntries, 1)
}

func TestMatchDebits_GlobalGreedyResolvesCollision(t *testing.T) {
	// Two entries want the same debit. The earlier entry is a worse fit;
	// collect-then-assign must give the debit to the better fit and leave
	// the earlier entry to the fallback debit.
	e := NewDefault()
	entries := []model.LedgerEntry{
		entry(0, "CLM-1", "", "A", "500.00", date(2025, 1, 18)),
		entry(1, "CLM-2", "", "B", "500.00", date(2025, 1, 10)),
	}
	contested := debit(7, "500.00", date(2025, 1, 10), "DWOLLA transfer", true)
	fallback := debit(8, "500.00", date(2025, 1, 20), "misc payment", false)

	res := e.matchDebits(entries, []model.BankTransaction{contested, fallback}, NewTracker())
	require.Len(t, res.Matches, 2)

	byClaim := map[string]model.MatchRecord{}
	for _, m := range res.Matches {
		byClaim[m.ClaimID] = m
	}
	assert.Equal(t, 7, byClaim["CLM-2"].BankIndex)
	assert.Equal(t, 8, byClaim["CLM-1"].BankIndex)
}

func TestMatchDebits_ConfidenceTieBreaksOnDateDelta(t *testing.T) {
	e := NewDefault()
	entries := []model.LedgerEntry{entry(0, "CLM-1", "", "A", "250.00", date(2025, 1, 10))}
	bank := []model.BankTransaction{
		debit(0, "250.00", date(2025, 1, 17), "a", false),
		debit(1, "250.00", date(2025, 1, 13), "b", false),
	}

	res := e.matchDebits(entries, bank, NewTracker())
	require.Len(t, res.Matches, 1)
	assert.Equal(t, 1, res.Matches[0].BankIndex)
}

func TestMatchDebits_ExtendedWindowFallback(t *testing.T) {
	e := NewDefault()
	entries := []model.LedgerEntry{entry(0, "CLM-1", "", "A", "300.00", date(2025, 1, 1))}
	// 20 days out: beyond the standard window, inside the extended one.
	bank := []model.BankTransaction{debit(0, "300.00", date(2025, 1, 21), "x", false)}

	res := e.matchDebits(entries, bank, NewTracker())
	require.Len(t, res.Matches, 1)
	assert.Equal(t, model.MatchAmountExtendedWindow, res.Matches[0].Type)
	assert.Equal(t, 20, res.Matches[0].DateDelta)
}

func TestMatchDebits_ExtendedWindowPrefersHint(t *testing.T) {
	e := NewDefault()
	entries := []model.LedgerEntry{entry(0, "CLM-1", "", "A", "300.00", date(2025, 1, 1))}
	bank := []model.BankTransaction{
		debit(0, "300.00", date(2025, 1, 15), "plain", false),
		debit(1, "300.00", date(2025, 1, 25), "ACH pull", true),
	}

	res := e.matchDebits(entries, bank, NewTracker())
	require.Len(t, res.Matches, 1)
	assert.Equal(t, 1, res.Matches[0].BankIndex)
}

func TestMatchDebits_SkipsEntriesWithoutAmountOrDate(t *testing.T) {
	e := NewDefault()
	noAmount := entry(0, "CLM-1", "", "A", "0", date(2025, 1, 10))
	noDate := model.LedgerEntry{Index: 1, ClaimID: "CLM-2", AmountTransferred: dec("50.00")}

	res := e.matchDebits(
		[]model.LedgerEntry{noAmount, noDate},
		[]model.BankTransaction{debit(0, "50.00", date(2025, 1, 10), "x", false)},
		NewTracker(),
	)
	assert.Empty(t, res.Matches)
	assert.Len(t, res.UnmatchedEntries, 2)
}

func TestMatchDebits_IgnoresCreditsAndUsedDebits(t *testing.T) {
	e := NewDefault()
	entries := []model.LedgerEntry{entry(0, "CLM-1", "", "A", "100.00", date(2025, 1, 10))}
	tr := NewTracker()
	tr.ConsumeDebit(3)
	bank := []model.BankTransaction{
		credit(2, "100.00", date(2025, 1, 10), "deposit"),
		debit(3, "100.00", date(2025, 1, 10), "already taken", false),
	}

	res := e.matchDebits(entries, bank, tr)
	assert.Empty(t, res.Matches)
	assert.Len(t, res.UnmatchedEntries, 1)
}

func TestConfidenceCap(t *testing.T) {
	e := NewDefault()
	assert.InDelta(t, 0.99, e.confidence(true, 0), 1e-9)
	assert.InDelta(t, 0.8, e.confidence(true, 5), 1e-9)
	assert.InDelta(t, 0.7, e.confidence(false, 1), 1e-9)
	assert.InDelta(t, 0.5, e.confidence(false, 9), 1e-9)
}
