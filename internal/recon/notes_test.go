package recon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNoteEvents_RequestedAloneIsNotAnEvent(t *testing.T) {
	events := ExtractNoteEvents("req. rem. $46.76", date(2025, 1, 1))
	assert.Empty(t, events)
}

func TestExtractNoteEvents_ReceivedBeatsUnderpaidRequest(t *testing.T) {
	// One received credit and one funder debit for the same figure; the
	// restated underpaid amount stays excluded.
	note := "Rem repayment rcvd to send funder $206.94, client underpaid by $212.65, req. rem. amount"
	events := ExtractNoteEvents(note, date(2025, 1, 1))
	require.Len(t, events, 2)

	var credits, debits []NoteEvent
	for _, ev := range events {
		if ev.Kind == NoteCreditExpected {
			credits = append(credits, ev)
		} else {
			debits = append(debits, ev)
		}
	}
	require.Len(t, credits, 1)
	assert.True(t, dec("206.94").Equal(credits[0].Amount))
	require.Len(t, debits, 1)
	assert.True(t, dec("206.94").Equal(debits[0].Amount))
}

func TestExtractNoteEvents_RequestedAmountExcludedNextToReceived(t *testing.T) {
	note := "Received rem repayment to send funder $30.22, req rem. $46.76."
	events := ExtractNoteEvents(note, date(2025, 1, 1))
	require.Len(t, events, 2)
	assert.Equal(t, NoteCreditExpected, events[0].Kind)
	assert.True(t, dec("30.22").Equal(events[0].Amount))
	assert.Equal(t, NoteDebitExpected, events[1].Kind)
	assert.True(t, dec("30.22").Equal(events[1].Amount))
	for _, ev := range events {
		assert.False(t, dec("46.76").Equal(ev.Amount))
	}
}

func TestExtractNoteEvents_ReceivedAmountStillOwesFunderDebit(t *testing.T) {
	// The received credit never suppresses the matching send-funder debit.
	note := "Rem repayment rcvd to send funder $206.94"
	events := ExtractNoteEvents(note, date(2025, 1, 1))
	require.Len(t, events, 2)
	assert.Equal(t, NoteCreditExpected, events[0].Kind)
	assert.Equal(t, NoteDebitExpected, events[1].Kind)
	assert.True(t, events[0].Amount.Equal(events[1].Amount))
}

func TestExtractNoteEvents_BareReceivedConfirmsRequestedAmount(t *testing.T) {
	// A received-remaining phrase with no amount of its own means the
	// requested amount actually arrived.
	note := "req. rem. $46.76. Remaining repayment received."
	events := ExtractNoteEvents(note, date(2025, 1, 1))
	require.Len(t, events, 1)
	assert.Equal(t, NoteCreditExpected, events[0].Kind)
	assert.True(t, dec("46.76").Equal(events[0].Amount))
}

func TestExtractNoteEvents_SendFunderDebit(t *testing.T) {
	events := ExtractNoteEvents("need to send funder $150.00 next week", date(2025, 1, 1))
	require.Len(t, events, 1)
	assert.Equal(t, NoteDebitExpected, events[0].Kind)
	assert.True(t, dec("150.00").Equal(events[0].Amount))
}

func TestExtractNoteEvents_GenericKeywordScan(t *testing.T) {
	// Keep the two clauses farther apart than the context window so each
	// amount only sees its own keywords.
	filler := strings.Repeat("x", 130)
	note := "check for $83.10 deposited " + filler + " ach out of $40.00 pending"
	events := ExtractNoteEvents(note, date(2025, 1, 1))
	require.Len(t, events, 2)
	assert.Equal(t, NoteCreditExpected, events[0].Kind)
	assert.True(t, dec("83.10").Equal(events[0].Amount))
	assert.Equal(t, NoteDebitExpected, events[1].Kind)
	assert.True(t, dec("40.00").Equal(events[1].Amount))
}

func TestExtractNoteEvents_AmbiguousContextDropped(t *testing.T) {
	// Both keyword families in range: classification is a coin flip, skip it.
	events := ExtractNoteEvents("deposit and transfer of $75.00", date(2025, 1, 1))
	assert.Empty(t, events)
}

func TestExtractNoteEvents_DedupeByKindAndAmount(t *testing.T) {
	note := "rcvd $90.00, and again rcvd $90.00"
	events := ExtractNoteEvents(note, date(2025, 1, 1))
	assert.Len(t, events, 1)
}

func TestExtractNoteEvents_EmptyNote(t *testing.T) {
	assert.Empty(t, ExtractNoteEvents("   ", date(2025, 1, 1)))
	assert.Empty(t, ExtractNoteEvents("", date(2025, 1, 1)))
}

func TestNoteAnchor(t *testing.T) {
	ref := date(2025, 6, 1)

	assert.Equal(t, date(2025, 3, 15), noteAnchor("check mailed 3/15", ref))
	// Latest token wins.
	assert.Equal(t, date(2025, 4, 2), noteAnchor("sent 3/15, arrived 4/2", ref))
	// Invalid month/day tokens are skipped.
	assert.Equal(t, date(2025, 3, 15), noteAnchor("ref 19/40 then 3/15", ref))
	// No token: the reference date itself.
	assert.Equal(t, ref, noteAnchor("no dates here", ref))
}

func TestExtractNoteEvents_AnchorFromNoteDate(t *testing.T) {
	events := ExtractNoteEvents("rcvd $90.00 on 2/14", date(2025, 6, 1))
	require.Len(t, events, 1)
	assert.Equal(t, date(2025, 2, 14), events[0].Anchor)
}

func TestDetectSharedCheck(t *testing.T) {
	sc := DetectSharedCheck("check shared, other client is Jane Roe")
	assert.True(t, sc.Shared)
	assert.Equal(t, 2, sc.ClientCount)
	assert.Equal(t, []string{"Jane Roe"}, sc.OtherClients)

	sc = DetectSharedCheck("split between 3 clients")
	assert.True(t, sc.Shared)
	assert.Equal(t, 3, sc.ClientCount)

	sc = DetectSharedCheck("nothing unusual")
	assert.False(t, sc.Shared)
	assert.Equal(t, 1, sc.ClientCount)
}
