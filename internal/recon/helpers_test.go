package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func entry(idx int, claimID, achID, claimant string, transferred string, window time.Time) model.LedgerEntry {
	return model.LedgerEntry{
		Index:             idx,
		ACHID:             achID,
		ClaimID:           claimID,
		Claimant:          claimant,
		AmountTransferred: dec(transferred),
		LikelyArrived:     window,
	}
}

func debit(idx int, amount string, posted time.Time, desc string, hint bool) model.BankTransaction {
	return model.BankTransaction{
		Index:        idx,
		PostingDate:  posted,
		Description:  desc,
		Amount:       dec(amount).Neg(),
		TransferHint: hint,
	}
}

func credit(idx int, amount string, posted time.Time, desc string) model.BankTransaction {
	return model.BankTransaction{
		Index:       idx,
		PostingDate: posted,
		Description: desc,
		Amount:      dec(amount),
	}
}
