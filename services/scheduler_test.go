package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSweepDue(t *testing.T) {
	at := func(hour, minute int) time.Time {
		return time.Date(2024, 3, 4, hour, minute, 0, 0, time.UTC)
	}

	// Before the window nothing fires.
	assert.False(t, sweepDue(at(23, 54), ""))
	assert.False(t, sweepDue(at(12, 0), ""))

	// Exactly at the window, and after ticker drift past it.
	assert.True(t, sweepDue(at(23, 55), ""))
	assert.True(t, sweepDue(at(23, 57), ""))
	assert.True(t, sweepDue(at(23, 59), "2024-03-03"))

	// Once fired, the same day stays quiet.
	assert.False(t, sweepDue(at(23, 56), "2024-03-04"))
	assert.False(t, sweepDue(at(23, 59), "2024-03-04"))

	// The next day fires again.
	next := time.Date(2024, 3, 5, 23, 55, 0, 0, time.UTC)
	assert.True(t, sweepDue(next, "2024-03-04"))
}
