// Package reporting turns a user's expense rows into the summaries shown on
// the dashboard, graphs, categories and profile pages. Everything here is a
// pure function of its inputs; loading rows is the caller's job.
package reporting

import "time"

// Period is an inclusive range of calendar days. Start and End are always
// UTC midnight.
type Period struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to its calendar day, keeping the year/month/day as seen in
// t's own location, and returns that day at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewPeriod builds a period from two days in either order.
func NewPeriod(start, end time.Time) Period {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		start, end = end, start
	}
	return Period{Start: start, End: end}
}

// Contains reports whether the calendar day of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Days returns the number of calendar days covered, counting both ends.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// WeekOf returns the Monday to Sunday week containing t.
func WeekOf(t time.Time) Period {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	start := d.AddDate(0, 0, -offset)
	return Period{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Period {
	d := Day(t)
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, -1)}
}

// PreviousWeek returns the Monday to Sunday week before the one containing t.
func PreviousWeek(t time.Time) Period {
	return WeekOf(Day(t).AddDate(0, 0, -7))
}

// PreviousMonth returns the calendar month before the one containing t.
// Computed from the 1st so that March 31 maps to February, not March 3.
func PreviousMonth(t time.Time) Period {
	first := MonthOf(t).Start
	return MonthOf(first.AddDate(0, -1, 0))
}

// RollingWeek returns the seven days ending on t.
func RollingWeek(t time.Time) Period {
	d := Day(t)
	return Period{Start: d.AddDate(0, 0, -6), End: d}
}

// RollingMonth returns the thirty days ending on t.
func RollingMonth(t time.Time) Period {
	d := Day(t)
	return Period{Start: d.AddDate(0, 0, -29), End: d}
}
