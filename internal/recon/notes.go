package recon

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NoteEventKind classifies an expected movement extracted from a note.
type NoteEventKind string

const (
	NoteCreditExpected NoteEventKind = "credit_expected"
	NoteDebitExpected  NoteEventKind = "debit_expected"
)

// NoteEvent is one expected movement parsed from free text.
type NoteEvent struct {
	Kind   NoteEventKind
	Amount decimal.Decimal
	Anchor time.Time
}

// SharedCheck describes a note mentioning a check split across clients.
type SharedCheck struct {
	Shared       bool
	ClientCount  int
	OtherClients []string
}

var (
	dollarPattern   = regexp.MustCompile(`\$?\s*([0-9][0-9,]*\.\d{2})`)
	noteDatePattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)

	creditKeywords = regexp.MustCompile(`(?i)(received|deposit|check|credited|incoming|rec\.?\s*rem|rcvd|remaining\s+repayment|repayment\s+received|remaining\s*bal|rem\.?\s*bal|underpaid\s+by)`)
	debitKeywords  = regexp.MustCompile(`(?i)(send\s+funder|to\s+funder|transfer|outgoing|ach\s*out|2670)`)

	sendFunderPattern = regexp.MustCompile(`(?i)send\s+funder[^$]*\$([0-9][0-9,]*\.[0-9]{2})`)

	receivedPattern = regexp.MustCompile(`(?i)(received.*?check|rec\.?\s*rem|received\s+rem(?:aining)?|rem\.?\s*repayment\s+(?:received|rcvd)|repayment\s+(?:received|rcvd)|remaining\s+repayment|rcvd|underpaid\s+by)\D*\$([0-9][0-9,]*\.[0-9]{2})`)

	requestedAmountPattern = regexp.MustCompile(`(?i)(req\.?\s*rem\.?|requested\s+rem\.?|req\.?\s*remaining|requested\s+remaining)[^$]*?\$([0-9][0-9,]*\.[0-9]{2})`)
	requestedPhrasePattern = regexp.MustCompile(`(?i)(req\.?\s*rem(?:aining)?\.?|requested\s+rem(?:aining)?\.?)`)
	underpaidPattern       = regexp.MustCompile(`(?i)underpaid\s+by\s*\$([0-9][0-9,]*\.[0-9]{2})`)

	// A received-remaining phrase carrying no dollar amount of its own; its
	// presence means the requested-remaining amount actually arrived.
	bareReceivedPattern = regexp.MustCompile(`(?i)(rem(?:aining)?\.?\s*repayment\s+(?:received|rcvd)|received\s+rem(?:aining)?\s+repayment|remaining\s+repayment\s+received)`)
	leadingDollarTail   = regexp.MustCompile(`^\D{0,40}\$`)

	otherClientPattern = regexp.MustCompile(`(?i)other\s+client\s+is\s+([^,)]+)`)
	clientCountPattern = regexp.MustCompile(`(?i)(\d+)\s+clients?`)
)

// contextRadius is the window inspected around a dollar amount during the
// generic keyword scan.
const contextRadius = 120

// trailingPhraseRadius bounds how far after an "underpaid by $X" amount a
// requested-remaining phrase may sit and still claim it.
const trailingPhraseRadius = 40

// ExtractNoteEvents turns a free-text note into an ordered, de-duplicated
// list of expected credit/debit events. The anchor date is the latest MM/DD
// token in the text (year taken from refDate, else the current year), else
// refDate itself. Rules run in fixed precedence; amounts claimed by the
// phrase rules are excluded from the generic scan.
func ExtractNoteEvents(text string, refDate time.Time) []NoteEvent {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	anchor := noteAnchor(text, refDate)

	// Rule 1: requested-remaining amounts are requests, not movements.
	// They are ignored unless a bare received-remaining phrase confirms the
	// requested amount arrived, in which case they become expected credits.
	ignore := make(map[string]bool)
	var requested []decimal.Decimal
	for _, m := range requestedAmountPattern.FindAllStringSubmatch(text, -1) {
		if amt, ok := parseNoteAmount(m[2]); ok {
			requested = append(requested, amt)
			ignore[amt.StringFixed(2)] = true
		}
	}
	// "underpaid by $X" immediately restated as a request keeps X out too.
	for _, loc := range underpaidPattern.FindAllStringSubmatchIndex(text, -1) {
		amt, ok := parseNoteAmount(text[loc[2]:loc[3]])
		if !ok {
			continue
		}
		tail := text[loc[1]:min(len(text), loc[1]+trailingPhraseRadius)]
		if requestedPhrasePattern.MatchString(tail) {
			ignore[amt.StringFixed(2)] = true
		}
	}

	receivedBare := false
	for _, loc := range bareReceivedPattern.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		if !leadingDollarTail.MatchString(rest) {
			receivedBare = true
			break
		}
	}

	var events []NoteEvent
	consumed := make(map[string]bool)
	add := func(kind NoteEventKind, amt decimal.Decimal) {
		consumed[amt.StringFixed(2)] = true
		events = append(events, NoteEvent{Kind: kind, Amount: amt, Anchor: anchor})
	}

	if receivedBare {
		for _, amt := range requested {
			delete(ignore, amt.StringFixed(2))
			add(NoteCreditExpected, amt)
		}
	}

	// Rule 2: received / underpaid phrases signal an expected credit.
	for _, m := range receivedPattern.FindAllStringSubmatch(text, -1) {
		amt, ok := parseNoteAmount(m[2])
		if !ok || ignore[amt.StringFixed(2)] || consumed[amt.StringFixed(2)] {
			continue
		}
		add(NoteCreditExpected, amt)
	}

	// Rule 3: send-funder phrases signal an expected debit. A received
	// amount can still owe a funder transfer of the same figure, so only
	// the ignore set excludes here; (kind, amount) dedupe handles repeats.
	for _, m := range sendFunderPattern.FindAllStringSubmatch(text, -1) {
		amt, ok := parseNoteAmount(m[1])
		if !ok || ignore[amt.StringFixed(2)] {
			continue
		}
		add(NoteDebitExpected, amt)
	}

	// Rule 4: generic scan of the remaining amounts, classified by keyword
	// context; ambiguous (both-or-neither) amounts are dropped.
	for _, loc := range dollarPattern.FindAllStringSubmatchIndex(text, -1) {
		amt, ok := parseNoteAmount(text[loc[2]:loc[3]])
		if !ok || ignore[amt.StringFixed(2)] || consumed[amt.StringFixed(2)] {
			continue
		}
		start := max(0, loc[0]-contextRadius)
		end := min(len(text), loc[1]+contextRadius)
		ctx := text[start:end]
		if requestedAmountPattern.MatchString(ctx) {
			continue
		}
		isCredit := creditKeywords.MatchString(ctx)
		isDebit := debitKeywords.MatchString(ctx)
		switch {
		case isCredit && !isDebit:
			add(NoteCreditExpected, amt)
		case isDebit && !isCredit:
			add(NoteDebitExpected, amt)
		}
	}

	return dedupeEvents(events)
}

// DetectSharedCheck finds "other client is X" mentions and explicit
// "N clients" counts, for proportional-split review downstream.
func DetectSharedCheck(text string) SharedCheck {
	var sc SharedCheck
	sc.ClientCount = 1
	if strings.TrimSpace(text) == "" {
		return sc
	}
	for _, m := range otherClientPattern.FindAllStringSubmatch(text, -1) {
		if name := strings.TrimSpace(m[1]); name != "" {
			sc.OtherClients = append(sc.OtherClients, name)
		}
	}
	if len(sc.OtherClients) > 0 {
		sc.ClientCount = len(sc.OtherClients) + 1
	}
	if m := clientCountPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 1 && n > sc.ClientCount {
			sc.ClientCount = n
		}
	}
	sc.Shared = sc.ClientCount > 1 || len(sc.OtherClients) > 0
	return sc
}

// noteAnchor picks the latest MM/DD token as the event anchor date.
func noteAnchor(text string, refDate time.Time) time.Time {
	year := time.Now().UTC().Year()
	if !refDate.IsZero() {
		year = refDate.Year()
	}
	anchor := refDate
	for _, m := range noteDatePattern.FindAllStringSubmatch(text, -1) {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		anchor = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}
	return anchor
}

func parseNoteAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d.Round(2), true
}

// dedupeEvents keeps the first occurrence per (kind, amount).
func dedupeEvents(events []NoteEvent) []NoteEvent {
	type eventKey struct {
		kind   NoteEventKind
		amount string
	}
	seen := make(map[eventKey]bool)
	var out []NoteEvent
	for _, ev := range events {
		key := eventKey{ev.Kind, ev.Amount.StringFixed(2)}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ev)
	}
	return out
}
