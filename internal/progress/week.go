// Package progress holds the pure dashboard computations: week resolution,
// activity classification, grid totals and the trend series. Nothing here
// touches the database; callers feed in already-aggregated data.
package progress

import "time"

const day = 24 * time.Hour

// WeekIndex resolves the zero-based program week containing now.
// ok is false when the course has not started yet.
func WeekIndex(courseStart, now time.Time) (idx int, ok bool) {
	diff := int(now.Sub(courseStart) / day)
	if diff < 0 {
		return 0, false
	}
	return diff / 7, true
}

// ClampWeek clamps a resolved week index into [0, weeks-1] so it can be
// used to select from a weekly-record slice. The floor wins when weeks is
// zero or negative, so the result is never below 0.
func ClampWeek(idx, weeks int) int {
	if idx > weeks-1 {
		idx = weeks - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// WeekStart returns the calendar date a zero-based program week begins on.
func WeekStart(courseStart time.Time, idx int) time.Time {
	return courseStart.AddDate(0, 0, idx*7)
}
