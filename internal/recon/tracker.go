package recon

// Tracker owns the consumption state threaded through the matching stages in
// fixed order. A bank transaction index is consumed by at most one primary
// match; overpay companion debits live in their own set so the secondary
// linkage never collides with the primary one.
type Tracker struct {
	usedDebits        map[int]bool
	usedCredits       map[int]bool
	usedOverpayDebits map[int]bool
	reservedCredits   map[int]bool // manually tagged, held out of matching
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		usedDebits:        make(map[int]bool),
		usedCredits:       make(map[int]bool),
		usedOverpayDebits: make(map[int]bool),
		reservedCredits:   make(map[int]bool),
	}
}

// ConsumeDebit marks a debit as matched.
func (t *Tracker) ConsumeDebit(idx int) { t.usedDebits[idx] = true }

// DebitUsed reports whether a debit has a primary match.
func (t *Tracker) DebitUsed(idx int) bool { return t.usedDebits[idx] }

// ConsumeCredit marks a credit as matched.
func (t *Tracker) ConsumeCredit(idx int) { t.usedCredits[idx] = true }

// CreditUsed reports whether a credit has a primary match.
func (t *Tracker) CreditUsed(idx int) bool { return t.usedCredits[idx] }

// ReserveCredit holds a tagged credit out of the automatic candidate pool.
func (t *Tracker) ReserveCredit(idx int) { t.reservedCredits[idx] = true }

// CreditReserved reports whether a credit is reserved by a ReconTag.
func (t *Tracker) CreditReserved(idx int) bool { return t.reservedCredits[idx] }

// CreditAvailable reports whether a credit may still be matched.
func (t *Tracker) CreditAvailable(idx int) bool {
	return !t.usedCredits[idx] && !t.reservedCredits[idx]
}

// ConsumeOverpayDebit marks a debit as linked to an overpay return.
func (t *Tracker) ConsumeOverpayDebit(idx int) { t.usedOverpayDebits[idx] = true }

// OverpayDebitUsed reports whether a debit is linked to an overpay return.
func (t *Tracker) OverpayDebitUsed(idx int) bool { return t.usedOverpayDebits[idx] }

// DebitFree reports whether a debit appears in no match of any kind.
func (t *Tracker) DebitFree(idx int) bool {
	return !t.usedDebits[idx] && !t.usedOverpayDebits[idx]
}
