package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
	"github.com/loganalters123/r2d-reconciliation-tool/internal/recon"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestWriteMatches(t *testing.T) {
	matches := []model.MatchRecord{{
		ClaimID:           "CLM-1",
		ACHID:             "ACH-1",
		Claimant:          "Nina Brown",
		LedgerIndex:       3,
		BankIndex:         7,
		LedgerAmount:      dec("1000.00"),
		LedgerDate:        date(2025, 1, 10),
		BankAmount:        dec("-1000.00"),
		BankDate:          date(2025, 1, 9),
		Description:       "ORIG CO NAME DWOLLA",
		Type:              model.MatchAmountWindow,
		Confidence:        0.99,
		DateDelta:         1,
		OverpayDebitIndex: -1,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteMatches(&buf, matches))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, MatchHeader, lines[0])
	assert.Contains(t, lines[1], "CLM-1,,ACH-1,Nina Brown,3,7,1000.00,2025-01-10,-1000.00,2025-01-09")
	assert.Contains(t, lines[1], "amount+window(+hints),0.99,1")
	// No overpay debit: the index column stays empty.
	assert.True(t, strings.HasSuffix(lines[1], ",,,"))
}

func TestWriteMatches_ClaimLevelHasEmptyLedgerIndex(t *testing.T) {
	matches := []model.MatchRecord{{
		ClaimID:           "CLM-1",
		LedgerIndex:       -1,
		BankIndex:         2,
		Type:              model.MatchClaimSum,
		OverpayDebitIndex: -1,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteMatches(&buf, matches))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(t, lines[1], "CLM-1,,,,,2,")
}

func TestWriteUnmatched(t *testing.T) {
	rows := []model.UnmatchedRow{{
		Category:    model.CategoryBankUnmatchedCredit,
		Date:        date(2025, 2, 1),
		Amount:      dec("55.55"),
		Description: "stray deposit",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteUnmatched(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "CHASE_Unmatched_Credit,,,2025-02-01,55.55,stray deposit,", lines[1])
}

func TestWriteTags(t *testing.T) {
	rows := []model.ReconTagRow{{
		Status:       model.TagSuggested,
		ClaimID:      "CLM-1",
		Claimant:     "Karis Lane",
		Amount:       dec("30.22"),
		BankIndex:    -1,
		SharedCheck:  true,
		ClientCount:  2,
		OtherClients: []string{"Jane Roe"},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteTags(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "SUGGESTED,CLM-1,Karis Lane,30.22,,,0.00,,true,2,Jane Roe", lines[1])
}

func TestWriteRevenue(t *testing.T) {
	rows := []model.RevenueRow{{
		ClaimID:           "CLM-1",
		Claimant:          "A",
		RepaymentSum:      dec("1000.00"),
		AmountToFunderSum: dec("800.00"),
		BookRevenue:       dec("200.00"),
		BankCredits:       dec("1000.00"),
		FunderDebits:      dec("800.00"),
		BankRevenue:       dec("200.00"),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteRevenue(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "CLM-1,,A,1000.00,800.00,200.00,1000.00,800.00,200.00,0.00", lines[1])
}

func TestWriteConflicts(t *testing.T) {
	conflicts := []model.ACHConflict{{
		ACHID:     "ACH-9",
		ClaimIDs:  []string{"CLM-2", "CLM-3"},
		Claimants: []string{"B", "C"},
		Rows:      make([]model.LedgerEntry, 2),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteConflicts(&buf, conflicts))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "ACH-9,CLM-2; CLM-3,B; C,2", lines[1])
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := &recon.Result{
		RunID:           "test-run",
		PerClaimRevenue: []model.RevenueRow{{ClaimID: "CLM-1"}},
		Summary:         []model.SummaryMetric{{Metric: "Debits matched (count)", Value: dec("0")}},
	}

	require.NoError(t, WriteAll(dir, res))

	for _, name := range []string{
		FileDebitMatches, FileCreditMatches, FileNoteDebits, FileReconTags,
		FileOverpays, FileUnmatched, FileRevenue, FileConflicts, FileSummary,
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}
