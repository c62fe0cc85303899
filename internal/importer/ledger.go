package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

// R2DParser parses the "Repayments to Date" ledger CSV export.
type R2DParser struct{}

var ledgerColumns = map[string][]string{
	"ach_id":              {"ACH ID", "ACHID", "ACH_Id"},
	"amount_transferred":  {"Amount Transferred", "Transferred Amount"},
	"amount_to_funder":    {"Amount To Funder", "Amt To Funder"},
	"claim_id":            {"Dynamo Claim ID", "ClaimID", "Claim Id", "Dynamo Id", "Dynamo"},
	"claimant":            {"Recipient Name", "Claimant Name", "Recipient"},
	"deal_type":           {"Deal Type", "DealType", "Type"},
	"contract_date":       {"Contract Date", "Date Funded"},
	"transfer_initiated":  {"Transfer Initiated Date", "Transfer Initiated (ET)"},
	"likely_arrived":      {"Likely Arrived Date", "Date Closed"},
	"repayment_amount":    {"Repayment Amount", "Repayment Amount (KEEP)", "Repayment"},
	"notes":               {"Repayment Notes", "Reconciliation Notes", "Notes"},
	"legacy_id":           {"Legacy ID", "LegacyID", "Legacy Id", "Legacy", "Correlation ID", "CorrelationID"},
}

// Format returns the parser name.
func (p *R2DParser) Format() string { return "r2d" }

// ParseLedger reads a ledger CSV and returns LedgerEntries in file order.
func (p *R2DParser) ParseLedger(r io.Reader) ([]model.LedgerEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	cols := headerIndex(records[0], ledgerColumns)

	var entries []model.LedgerEntry
	for i, rec := range records[1:] {
		e, err := parseLedgerRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		e.Index = len(entries)
		entries = append(entries, e)
	}
	return entries, nil
}

func parseLedgerRow(rec []string, cols map[string]int) (model.LedgerEntry, error) {
	contract, err := parseDate(cell(rec, cols, "contract_date"))
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("contract date: %w", err)
	}
	initiated, err := parseDate(cell(rec, cols, "transfer_initiated"))
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("transfer initiated date: %w", err)
	}
	arrived, err := parseDate(cell(rec, cols, "likely_arrived"))
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("likely arrived date: %w", err)
	}

	return model.LedgerEntry{
		ACHID:             cell(rec, cols, "ach_id"),
		ClaimID:           cell(rec, cols, "claim_id"),
		Claimant:          cell(rec, cols, "claimant"),
		DealType:          cell(rec, cols, "deal_type"),
		ContractDate:      contract,
		TransferInitiated: initiated,
		LikelyArrived:     arrived,
		RepaymentAmount:   parseAmount(cell(rec, cols, "repayment_amount")),
		AmountToFunder:    parseAmount(cell(rec, cols, "amount_to_funder")),
		AmountTransferred: parseAmount(cell(rec, cols, "amount_transferred")),
		Notes:             cell(rec, cols, "notes"),
		LegacyID:          normalizeTag(cell(rec, cols, "legacy_id")),
	}, nil
}
