package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestWindowDate(t *testing.T) {
	e := LedgerEntry{
		TransferInitiated: date(2025, 1, 8),
		LikelyArrived:     date(2025, 1, 10),
	}
	assert.Equal(t, date(2025, 1, 10), e.WindowDate())

	// Arrival unknown: fall back to the initiation date.
	e.LikelyArrived = time.Time{}
	assert.Equal(t, date(2025, 1, 8), e.WindowDate())
}

func TestHasWindowDate(t *testing.T) {
	assert.False(t, LedgerEntry{}.HasWindowDate())
	assert.True(t, LedgerEntry{TransferInitiated: date(2025, 1, 8)}.HasWindowDate())
	assert.True(t, LedgerEntry{LikelyArrived: date(2025, 1, 10)}.HasWindowDate())
}
