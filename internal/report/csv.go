// Package report renders reconciliation results as CSV reports.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
	"github.com/loganalters123/r2d-reconciliation-tool/internal/recon"
)

const dateFormat = "2006-01-02"

// Headers for the individual report files.
const (
	MatchHeader     = "claim_id,correlation_id,ach_id,claimant,ledger_index,bank_index,ledger_amount,ledger_date,bank_amount,bank_date,description,match_type,confidence,date_delta,overpay_amount,overpay_debit_index,overpay_debit_date,overpay_debit_desc"
	UnmatchedHeader = "category,claim_id,claimant,date,amount,description,notes"
	TagHeader       = "status,claim_id,claimant,amount,bank_index,bank_date,bank_amount,description,shared_check,client_count,other_clients"
	RevenueHeader   = "claim_id,correlation_id,claimant,repayment_sum,amount_to_funder_sum,book_revenue,bank_credits,funder_debits,bank_revenue,check"
	OverpayHeader   = "claim_id,claimant,credit_date,overpay_amount,debit_index,debit_date,debit_desc"
	ConflictHeader  = "ach_id,claim_ids,claimants,row_count"
	SummaryHeader   = "metric,value"
)

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

func fmtAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func fmtIndex(i int) string {
	if i < 0 {
		return ""
	}
	return strconv.Itoa(i)
}

// WriteMatches writes match records (debit, credit, or note-derived) with
// header.
func WriteMatches(w io.Writer, matches []model.MatchRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(MatchHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, m := range matches {
		if err := cw.Write(marshalMatch(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalMatch(m model.MatchRecord) []string {
	row := []string{
		m.ClaimID,
		m.CorrelationID,
		m.ACHID,
		m.Claimant,
		fmtIndex(m.LedgerIndex),
		strconv.Itoa(m.BankIndex),
		fmtAmount(m.LedgerAmount),
		fmtDate(m.LedgerDate),
		fmtAmount(m.BankAmount),
		fmtDate(m.BankDate),
		m.Description,
		string(m.Type),
		"",
		strconv.Itoa(m.DateDelta),
		"",
		fmtIndex(m.OverpayDebitIndex),
		fmtDate(m.OverpayDebitDate),
		m.OverpayDebitDesc,
	}
	if m.Confidence > 0 {
		row[12] = strconv.FormatFloat(m.Confidence, 'f', 2, 64)
	}
	if !m.OverpayAmount.IsZero() {
		row[14] = fmtAmount(m.OverpayAmount)
	}
	return row
}

// WriteUnmatched writes the combined unmatched report with header.
func WriteUnmatched(w io.Writer, rows []model.UnmatchedRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(UnmatchedHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		rec := []string{
			string(r.Category),
			r.ClaimID,
			r.Claimant,
			fmtDate(r.Date),
			fmtAmount(r.Amount),
			r.Description,
			r.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteTags writes the ReconTag report (matched and suggested rows) with
// header.
func WriteTags(w io.Writer, rows []model.ReconTagRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TagHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		rec := []string{
			string(r.Status),
			r.ClaimID,
			r.Claimant,
			fmtAmount(r.Amount),
			fmtIndex(r.BankIndex),
			fmtDate(r.BankDate),
			fmtAmount(r.BankAmount),
			r.Description,
			strconv.FormatBool(r.SharedCheck),
			strconv.Itoa(r.ClientCount),
			strings.Join(r.OtherClients, "; "),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteRevenue writes the per-claim revenue report with header.
func WriteRevenue(w io.Writer, rows []model.RevenueRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(RevenueHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		rec := []string{
			r.ClaimID,
			r.CorrelationID,
			r.Claimant,
			fmtAmount(r.RepaymentSum),
			fmtAmount(r.AmountToFunderSum),
			fmtAmount(r.BookRevenue),
			fmtAmount(r.BankCredits),
			fmtAmount(r.FunderDebits),
			fmtAmount(r.BankRevenue),
			fmtAmount(r.Check),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteOverpays writes the overpay adjustment report with header.
func WriteOverpays(w io.Writer, adjustments []recon.OverpayAdjustment) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(OverpayHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range adjustments {
		rec := []string{
			a.ClaimID,
			a.Claimant,
			fmtDate(a.CreditDate),
			fmtAmount(a.Amount),
			fmtIndex(a.DebitIndex),
			fmtDate(a.DebitDate),
			a.DebitDesc,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteConflicts writes the ACH conflict report with header.
func WriteConflicts(w io.Writer, conflicts []model.ACHConflict) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ConflictHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range conflicts {
		rec := []string{
			c.ACHID,
			strings.Join(c.ClaimIDs, "; "),
			strings.Join(c.Claimants, "; "),
			strconv.Itoa(len(c.Rows)),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteSummary writes the run summary metrics with header.
func WriteSummary(w io.Writer, metrics []model.SummaryMetric) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(SummaryHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, m := range metrics {
		if err := cw.Write([]string{m.Metric, m.Value.String()}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
