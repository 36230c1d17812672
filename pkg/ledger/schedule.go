package ledger

import "time"

// Severity buckets a delivery or execution deviation for display. The
// bucket boundaries are a presentation choice; the signed day count they
// are derived from is exact.
type Severity string

const (
	SeverityOnTime   Severity = "on-time"
	SeverityMinor    Severity = "minor"    // 1-3 days late
	SeverityModerate Severity = "moderate" // 4-7 days late
	SeveritySevere   Severity = "severe"   // more than 7 days late
)

// calendarDay strips the time-of-day component. Deviations are computed at
// calendar-day granularity, never from wall-clock differences.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsOverdue reports whether an item with the given committed date and
// progress is late: strictly past the committed day and not yet complete.
// Stateless on purpose; callers re-evaluate on every read since "now"
// keeps moving.
func IsOverdue(committed, now time.Time, progressPercent int) bool {
	return calendarDay(now).After(calendarDay(committed)) && progressPercent < 100
}

// DeviationDays is the signed calendar-day count actual - estimated.
// Positive means late, zero or negative on-time or early.
func DeviationDays(estimated, actual time.Time) int {
	return int(calendarDay(actual).Sub(calendarDay(estimated)).Hours() / 24)
}

// DeviationSeverity buckets a signed day count for display and alerting.
func DeviationSeverity(days int) Severity {
	switch {
	case days <= 0:
		return SeverityOnTime
	case days <= 3:
		return SeverityMinor
	case days <= 7:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}
