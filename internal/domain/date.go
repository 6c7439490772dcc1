package domain

import (
	"time"

	"github.com/jinzhu/now"
)

// AddMonths advances a calendar date by the given number of months, keeping
// the day-of-month and clamping it to the last valid day of the target month
// (2024-01-31 plus one month is 2024-02-29, not a rollover into March).
func AddMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	day := t.Day()
	if last := now.New(first).EndOfMonth().Day(); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// MonthWindow returns the first and last calendar day of the month containing t.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	n := now.New(t)
	start := n.BeginningOfMonth()
	end := n.EndOfMonth()

	return start, time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, t.Location())
}
