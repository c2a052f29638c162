package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkdayFor(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		offset time.Duration
		want   string
	}{
		{
			name:   "midday stays on the same date",
			now:    time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
			offset: 7 * time.Hour,
			want:   "2024-03-04",
		},
		{
			name:   "late UTC evening rolls into the next day",
			now:    time.Date(2024, 3, 4, 18, 30, 0, 0, time.UTC),
			offset: 7 * time.Hour,
			want:   "2024-03-05",
		},
		{
			name:   "exactly at the boundary",
			now:    time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC),
			offset: 7 * time.Hour,
			want:   "2024-03-05",
		},
		{
			name:   "zero offset is plain UTC truncation",
			now:    time.Date(2024, 3, 4, 23, 59, 59, 0, time.UTC),
			offset: 0,
			want:   "2024-03-04",
		},
		{
			name:   "month boundary",
			now:    time.Date(2024, 2, 29, 20, 0, 0, 0, time.UTC),
			offset: 7 * time.Hour,
			want:   "2024-03-01",
		},
		{
			name:   "non-UTC wall clock does not leak in",
			now:    time.Date(2024, 3, 4, 1, 0, 0, 0, time.FixedZone("UTC+9", 9*3600)),
			offset: 7 * time.Hour,
			want:   "2024-03-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkdayFor(tt.now, tt.offset))
		})
	}
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, "2024-03", MonthOf("2024-03-04"))
	assert.Equal(t, "bad", MonthOf("bad"))
}
