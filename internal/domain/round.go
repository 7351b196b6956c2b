package domain

import "time"

// Round is an administrator-defined contest window. StartDate carries only
// the calendar date; the time component is always midnight UTC.
type Round struct {
	Name         string
	StartDate    time.Time
	DurationDays int
}

// EndDate returns the last day of the round, inclusive. A one-day round
// starts and ends on the same date.
func (r Round) EndDate() time.Time {
	return r.StartDate.AddDate(0, 0, r.DurationDays-1)
}

// OverlapsWith reports whether two rounds share at least one calendar day.
// The comparison is inclusive on both ends and symmetric; a round always
// overlaps itself.
func (r Round) OverlapsWith(other Round) bool {
	return !r.StartDate.After(other.EndDate()) && !other.StartDate.After(r.EndDate())
}

// Days enumerates every date within the round's span, in order.
func (r Round) Days() []time.Time {
	days := make([]time.Time, 0, r.DurationDays)
	for i := 0; i < r.DurationDays; i++ {
		days = append(days, r.StartDate.AddDate(0, 0, i))
	}
	return days
}

// Date builds a date-only value the way round dates are stored.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
