package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/config"
)

// Params holds the engine tunables. All date windows are in days and apply
// symmetrically around the reference date.
type Params struct {
	AmountTol decimal.Decimal

	StandardWindow        int // debit pass 1 and credit matching
	ExtendedWindow        int // debit pass 2
	OverpayBackfillWindow int // overpay credit widening and companion debit fallback
	NoteWindow            int // note-driven matching around the note anchor
	NoteExtendedWindow    int // note fallback around the claim ref date

	ConfidenceBase     float64
	ConfidenceHint     float64
	ConfidenceNearDate float64
	ConfidenceCap      float64

	// IgnoreDebitsBefore, when set, excludes older unmatched debits and
	// ledger transfers from the reports. Zero disables the cutoff.
	IgnoreDebitsBefore time.Time
}

// ParamsFromConfig builds engine Params from a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		AmountTol:             decimal.NewFromFloat(cfg.Matching.AmountTolerance),
		StandardWindow:        cfg.Windows.Standard,
		ExtendedWindow:        cfg.Windows.Extended,
		OverpayBackfillWindow: cfg.Windows.OverpayBackfill,
		NoteWindow:            cfg.Windows.Note,
		NoteExtendedWindow:    cfg.Windows.NoteExtended,
		ConfidenceBase:        cfg.Confidence.Base,
		ConfidenceHint:        cfg.Confidence.Hint,
		ConfidenceNearDate:    cfg.Confidence.NearDate,
		ConfidenceCap:         cfg.Confidence.Cap,
	}
}

// DefaultParams returns Params built from the default config.
func DefaultParams() Params {
	return ParamsFromConfig(config.Default())
}

// withinTol reports whether two amounts agree within the amount tolerance.
func (p Params) withinTol(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(p.AmountTol)
}
