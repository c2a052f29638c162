package services

import (
	"time"

	"hr_timekeeping/utils"

	"go.uber.org/zap"
)

// sweepWindowStart is the shifted wall time after which the day's absence
// sweep becomes due, shortly before the workday rolls over.
const sweepWindowStart = 23*time.Hour + 55*time.Minute

// sweepDue reports whether the sweep should fire for the shifted instant.
// Any tick inside the closing window counts, so a ticker that drifts past
// 23:55 still fires; lastFired stops the same day from firing twice.
func sweepDue(shifted time.Time, lastFired string) bool {
	sinceMidnight := time.Duration(shifted.Hour())*time.Hour +
		time.Duration(shifted.Minute())*time.Minute
	if sinceMidnight < sweepWindowStart {
		return false
	}
	return shifted.Format(DateLayout) != lastFired
}

// StartAbsenceSweeper runs the daily absence sweep in the background,
// marking everyone who never checked in as Absent before the workday rolls
// over. The returned stop function ends the goroutine. The sweep itself is
// idempotent, so an extra run after a restart is harmless.
func StartAbsenceSweeper(attendance *AttendanceService) func() {
	quit := make(chan struct{})

	go func() {
		utils.Logger.Info("Absence sweeper started")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		var lastFired string
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
			}

			shifted := attendance.Now().UTC().Add(attendance.WorkdayOffset)
			if !sweepDue(shifted, lastFired) {
				continue
			}
			lastFired = shifted.Format(DateLayout)

			date := attendance.Today()
			inserted, err := attendance.DailyAbsenceSweep(date)
			if err != nil {
				utils.Logger.Error("Absence sweep failed",
					zap.String("date", date),
					zap.Error(err))
				continue
			}
			utils.Logger.Info("Absence sweep completed",
				zap.String("date", date),
				zap.Int("inserted", inserted))
		}
	}()

	return func() { close(quit) }
}
