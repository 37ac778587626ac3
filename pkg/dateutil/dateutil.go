// Package dateutil maps simulated months onto the calendar. A plan started on
// any day runs from the first of the following month, and month k ends on the
// last day of the k-th calendar month of the plan.
package dateutil

import (
	"time"
)

// FirstOfNextMonth returns midnight on the first day of the month after date.
func FirstOfNextMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month()+1, 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns midnight on the last day of date's month.
func EndOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location())
}

// AddMonths adds months to date, clamping the day to the end of the target
// month (31 January + 1 month is 28 or 29 February, not early March).
func AddMonths(date time.Time, months int) time.Time {
	first := time.Date(date.Year(), date.Month()+time.Month(months), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	day := date.Day()
	if last := EndOfMonth(first).Day(); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

// MaturityDate is the end of the last month of a plan of the given length
// started on start. A zero-month plan matures on the day it starts.
func MaturityDate(start time.Time, months int) time.Time {
	if months <= 0 {
		return start
	}
	return EndOfMonth(AddMonths(FirstOfNextMonth(start), months-1))
}
