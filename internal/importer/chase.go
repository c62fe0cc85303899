package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// ChaseParser parses Chase bank statement CSV exports, including the
// optional ReconTag column used for manual claim overrides.
type ChaseParser struct{}

var (
	transferHints     = regexp.MustCompile(`(?i)(dwolla|transfer|ach|orig co name|orig id|trn)`)
	overpayDebitHints = regexp.MustCompile(`(?i)(2670|transfer)`)
)

var chaseColumns = map[string][]string{
	"posting_date": {"Posting Date", "Details Posting Date", "Post Date"},
	"description":  {"Description", "Details", "Memo"},
	"amount":       {"Amount", "Amt"},
	"type":         {"Type"},
	"recon_tag":    {"ReconTag", "Recon Tag", "Recon_Tag"},
}

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// ParseBank reads a Chase CSV and returns BankTransactions in file order.
func (p *ChaseParser) ParseBank(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	cols := headerIndex(records[0], chaseColumns)

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		txn, err := parseChaseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txn.Index = len(txns)
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseChaseRow(rec []string, cols map[string]int) (model.BankTransaction, error) {
	date, err := parseDate(cell(rec, cols, "posting_date"))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("posting date: %w", err)
	}

	desc := cell(rec, cols, "description")
	return model.BankTransaction{
		PostingDate:  date,
		Description:  desc,
		Amount:       parseAmount(cell(rec, cols, "amount")),
		Type:         cell(rec, cols, "type"),
		ReconTag:     normalizeTag(cell(rec, cols, "recon_tag")),
		TransferHint: transferHints.MatchString(desc),
		OverpayHint:  overpayDebitHints.MatchString(desc),
	}, nil
}

// normalizeTag cleans a free-form id cell. Spreadsheet exports leave "nan"
// and "none" literals behind in empty tagged cells.
func normalizeTag(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none":
		return ""
	}
	return s
}
