// Package importer loads ledger and bank statement CSV exports into typed
// records. Column headers are matched by alias so exports from different
// report versions keep loading.
package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// LedgerParser converts a ledger export into LedgerEntries.
type LedgerParser interface {
	ParseLedger(r io.Reader) ([]model.LedgerEntry, error)
	Format() string
}

// BankParser converts a bank statement export into BankTransactions.
type BankParser interface {
	ParseBank(r io.Reader) ([]model.BankTransaction, error)
	Format() string
}

// dateFormats are accepted in order; exports use either US or ISO dates.
var dateFormats = []string{"01/02/2006", "2006-01-02", "1/2/2006"}

// parseDate parses a date cell. Empty cells yield a zero time, not an error.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseAmount parses a money cell, tolerating "$" and thousands separators.
// Empty or unparseable cells yield zero, matching the loader contract that
// missing amounts degrade rather than abort.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}

// headerIndex maps wanted column keys to CSV indexes by alias, first alias
// hit wins. Missing columns map to -1.
func headerIndex(header []string, wanted map[string][]string) map[string]int {
	low := make(map[string]int, len(header))
	for i, h := range header {
		low[strings.ToLower(strings.TrimSpace(h))] = i
	}
	out := make(map[string]int, len(wanted))
	for key, aliases := range wanted {
		out[key] = -1
		for _, a := range aliases {
			if i, ok := low[strings.ToLower(a)]; ok {
				out[key] = i
				break
			}
		}
	}
	return out
}

// cell returns the column value for a mapped key, or "" if unmapped.
func cell(rec []string, cols map[string]int, key string) string {
	i := cols[key]
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
