package services

import "time"

// DateLayout is the canonical calendar-date format used across the
// attendance table and every API payload.
const DateLayout = "2006-01-02"

// WorkdayFor returns the calendar date obtained by shifting now by the
// configured offset and truncating the time component. The company operates
// on a fixed UTC+7 day boundary regardless of where the server runs, so the
// server's local zone must never leak into this calculation.
func WorkdayFor(now time.Time, offset time.Duration) string {
	return now.UTC().Add(offset).Format(DateLayout)
}

// MonthOf extracts the YYYY-MM month key from a canonical date string.
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
