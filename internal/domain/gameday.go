package domain

import "time"

// DefaultCutoff is the first-clue time: game-days roll over at 06:00 local,
// not at midnight.
const DefaultCutoff = 6 * time.Hour

// Calendar converts calendar dates into game-day instant windows. The zero
// value is not usable; construct with NewCalendar.
type Calendar struct {
	cutoff time.Duration
	loc    *time.Location
}

// NewCalendar builds a calendar with the given daily cutoff and location.
// A zero cutoff falls back to DefaultCutoff; a nil location to time.Local.
func NewCalendar(cutoff time.Duration, loc *time.Location) Calendar {
	if cutoff == 0 {
		cutoff = DefaultCutoff
	}
	if loc == nil {
		loc = time.Local
	}
	return Calendar{cutoff: cutoff, loc: loc}
}

// WindowFor returns the half-open instant window [start, end) of the
// game-day for calendar date day: first-clue time on day up to first-clue
// time on the next day.
func (c Calendar) WindowFor(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, c.loc).Add(c.cutoff)
	return start, start.AddDate(0, 0, 1)
}

// CurrentWindow returns the window of the game-day that now falls in. Before
// the cutoff the window belongs to the previous calendar date.
func (c Calendar) CurrentWindow(now time.Time) (time.Time, time.Time) {
	now = now.In(c.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
	if now.Sub(day) < c.cutoff {
		day = day.AddDate(0, 0, -1)
	}
	return c.WindowFor(day)
}
