package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the slice of an expense that reporting needs.
type Entry struct {
	Category string
	Amount   decimal.Decimal
	Date     time.Time
}

// CategoryTotal is the spending of one category within a period.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// CategoryBreakdown is ordered by total descending, then category name
// ascending.
type CategoryBreakdown []CategoryTotal

// Get looks up a category by name.
func (b CategoryBreakdown) Get(category string) (CategoryTotal, bool) {
	for _, ct := range b {
		if ct.Category == category {
			return ct, true
		}
	}
	return CategoryTotal{}, false
}

// Total sums every category.
func (b CategoryBreakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, ct := range b {
		total = total.Add(ct.Total)
	}
	return total
}

// Top returns at most n leading categories.
func (b CategoryBreakdown) Top(n int) CategoryBreakdown {
	if n < 0 || n >= len(b) {
		return b
	}
	return b[:n]
}

// AggregatePeriod summarizes the expenses of one period.
type AggregatePeriod struct {
	Period
	Total      decimal.Decimal
	Count      int
	ByCategory CategoryBreakdown
}

// Aggregate totals the entries falling inside p. Entries outside the period
// are ignored.
func Aggregate(p Period, entries []Entry) AggregatePeriod {
	inRange := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if p.Contains(e.Date) {
			inRange = append(inRange, e)
		}
	}

	agg := AggregatePeriod{Period: p, Total: decimal.Zero, Count: len(inRange)}
	agg.ByCategory = Breakdown(inRange)
	agg.Total = agg.ByCategory.Total()
	return agg
}

// Breakdown groups entries by category regardless of date.
func Breakdown(entries []Entry) CategoryBreakdown {
	var b CategoryBreakdown
	index := make(map[string]int)

	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(b)
			index[e.Category] = i
			b = append(b, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		b[i].Total = b[i].Total.Add(e.Amount)
		b[i].Count++
	}

	sort.SliceStable(b, func(i, j int) bool {
		if c := b[i].Total.Cmp(b[j].Total); c != 0 {
			return c > 0
		}
		return b[i].Category < b[j].Category
	})
	return b
}

// Share returns the category's percentage of the period total, rounded to
// one decimal place. Zero when the period is empty.
func (a AggregatePeriod) Share(ct CategoryTotal) decimal.Decimal {
	return Percent(ct.Total, a.Total)
}

// WeeklyBuckets returns per-day totals for the seven days starting at
// weekStart, Monday = 0 when weekStart is a Monday. Days without spending
// are zero.
func WeeklyBuckets(weekStart time.Time, entries []Entry) [7]decimal.Decimal {
	var buckets [7]decimal.Decimal
	for i := range buckets {
		buckets[i] = decimal.Zero
	}

	start := Day(weekStart)
	for _, e := range entries {
		idx := int(Day(e.Date).Sub(start).Hours() / 24)
		if idx < 0 || idx > 6 {
			continue
		}
		buckets[idx] = buckets[idx].Add(e.Amount)
	}
	return buckets
}

// WeekOfMonth maps a day of month (1-31) to one of four buckets: days 1-7,
// 8-14, 15-21 and 22 onwards. The last bucket absorbs days 29-31 so the
// four buckets always cover the whole month.
func WeekOfMonth(dayOfMonth int) int {
	if dayOfMonth < 1 {
		return 0
	}
	b := (dayOfMonth - 1) / 7
	if b > 3 {
		b = 3
	}
	return b
}

// MonthlyBuckets returns the four week-of-month totals for the month
// containing monthStart.
func MonthlyBuckets(monthStart time.Time, entries []Entry) [4]decimal.Decimal {
	var buckets [4]decimal.Decimal
	for i := range buckets {
		buckets[i] = decimal.Zero
	}

	month := MonthOf(monthStart)
	for _, e := range entries {
		if !month.Contains(e.Date) {
			continue
		}
		b := WeekOfMonth(Day(e.Date).Day())
		buckets[b] = buckets[b].Add(e.Amount)
	}
	return buckets
}

// DayTotal is the spending of a single day.
type DayTotal struct {
	Date  time.Time
	Total decimal.Decimal
}

// HighestDay finds the day in p with the most spending. Ties go to the
// earliest day. ok is false when p has no expenses.
func HighestDay(p Period, entries []Entry) (best DayTotal, ok bool) {
	totals := make(map[time.Time]decimal.Decimal)
	for _, e := range entries {
		if !p.Contains(e.Date) {
			continue
		}
		d := Day(e.Date)
		totals[d] = totals[d].Add(e.Amount)
	}

	for d, total := range totals {
		switch {
		case !ok:
		case total.GreaterThan(best.Total):
		case total.Equal(best.Total) && d.Before(best.Date):
		default:
			continue
		}
		best, ok = DayTotal{Date: d, Total: total}, true
	}
	return best, ok
}
