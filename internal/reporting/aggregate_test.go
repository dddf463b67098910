package reporting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(category, amount string, day time.Time) Entry {
	return Entry{Category: category, Amount: dec(amount), Date: day}
}

func assertDecimal(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: expected %s, got %s", label, want, got.String())
	}
}

func TestAggregate(t *testing.T) {
	march := MonthOf(date(2024, time.March, 1))
	entries := []Entry{
		entry("Food & Dining", "250.50", date(2024, time.March, 2)),
		entry("Transport", "120", date(2024, time.March, 5)),
		entry("Food & Dining", "99.50", date(2024, time.March, 31)),
		entry("Rent", "350", date(2024, time.March, 1)),
		entry("Shopping", "999", date(2024, time.April, 1)),      // outside
		entry("Shopping", "999", date(2024, time.February, 29)), // outside
	}

	agg := Aggregate(march, entries)

	assertDecimal(t, "total", agg.Total, "820")
	if agg.Count != 4 {
		t.Errorf("expected 4 expenses, got %d", agg.Count)
	}
	if len(agg.ByCategory) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(agg.ByCategory))
	}

	// Rent and Food & Dining tie at 350; name breaks the tie.
	wantOrder := []string{"Food & Dining", "Rent", "Transport"}
	for i, name := range wantOrder {
		if agg.ByCategory[i].Category != name {
			t.Errorf("position %d: expected %s, got %s", i, name, agg.ByCategory[i].Category)
		}
	}

	food, ok := agg.ByCategory.Get("Food & Dining")
	if !ok {
		t.Fatal("expected Food & Dining in breakdown")
	}
	assertDecimal(t, "food total", food.Total, "350")
	if food.Count != 2 {
		t.Errorf("expected 2 food expenses, got %d", food.Count)
	}

	if _, ok := agg.ByCategory.Get("Shopping"); ok {
		t.Error("did not expect out-of-range category in breakdown")
	}
}

func TestAggregate_TotalEqualsCategorySum(t *testing.T) {
	sets := map[string][]Entry{
		"empty": nil,
		"single": {
			entry("Health", "10.01", date(2024, time.May, 5)),
		},
		"many_small_amounts": {
			entry("A", "0.01", date(2024, time.May, 1)),
			entry("B", "0.02", date(2024, time.May, 2)),
			entry("A", "0.10", date(2024, time.May, 3)),
			entry("C", "1000000.99", date(2024, time.May, 4)),
			entry("B", "0.30", date(2024, time.May, 31)),
		},
	}
	month := MonthOf(date(2024, time.May, 1))

	for name, entries := range sets {
		t.Run(name, func(t *testing.T) {
			agg := Aggregate(month, entries)
			if !agg.Total.Equal(agg.ByCategory.Total()) {
				t.Errorf("total %s does not match category sum %s", agg.Total, agg.ByCategory.Total())
			}
			count := 0
			for _, ct := range agg.ByCategory {
				count += ct.Count
			}
			if count != agg.Count {
				t.Errorf("count %d does not match category counts %d", agg.Count, count)
			}
		})
	}
}

func TestAggregate_EmptyIsZero(t *testing.T) {
	agg := Aggregate(WeekOf(date(2024, time.March, 13)), nil)

	assertDecimal(t, "total", agg.Total, "0")
	if agg.Count != 0 || len(agg.ByCategory) != 0 {
		t.Errorf("expected empty aggregate, got count=%d categories=%d", agg.Count, len(agg.ByCategory))
	}
}

func TestWeeklyBuckets(t *testing.T) {
	week := WeekOf(date(2024, time.March, 13)) // Mon 11 .. Sun 17
	entries := []Entry{
		entry("Food & Dining", "100", date(2024, time.March, 11)),
		entry("Transport", "50", date(2024, time.March, 11)),
		entry("Gifts", "30", date(2024, time.March, 14)),
		entry("Rent", "5", date(2024, time.March, 17)),
		entry("Rent", "700", date(2024, time.March, 18)), // next week
		entry("Rent", "700", date(2024, time.March, 10)), // previous week
	}

	buckets := WeeklyBuckets(week.Start, entries)

	want := []string{"150", "0", "0", "30", "0", "0", "5"}
	for i, w := range want {
		assertDecimal(t, time.Weekday((i+1)%7).String(), buckets[i], w)
	}

	sum := decimal.Zero
	for _, b := range buckets {
		sum = sum.Add(b)
	}
	if agg := Aggregate(week, entries); !sum.Equal(agg.Total) {
		t.Errorf("bucket sum %s does not match week total %s", sum, agg.Total)
	}
}

func TestWeekOfMonth(t *testing.T) {
	tests := []struct {
		day  int
		want int
	}{
		{1, 0}, {7, 0}, {8, 1}, {14, 1}, {15, 2}, {21, 2}, {22, 3}, {28, 3}, {29, 3}, {30, 3}, {31, 3},
	}
	for _, tt := range tests {
		if got := WeekOfMonth(tt.day); got != tt.want {
			t.Errorf("WeekOfMonth(%d) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

func TestMonthlyBuckets(t *testing.T) {
	t.Run("thirty_one_day_month", func(t *testing.T) {
		month := MonthOf(date(2024, time.March, 1))
		entries := []Entry{
			entry("A", "10", date(2024, time.March, 1)),
			entry("A", "20", date(2024, time.March, 8)),
			entry("A", "30", date(2024, time.March, 21)),
			entry("A", "40", date(2024, time.March, 22)),
			entry("A", "50", date(2024, time.March, 31)),
			entry("A", "60", date(2024, time.April, 1)),
		}

		buckets := MonthlyBuckets(month.Start, entries)

		want := []string{"10", "20", "30", "90"}
		for i, w := range want {
			assertDecimal(t, "bucket", buckets[i], w)
		}

		sum := decimal.Zero
		for _, b := range buckets {
			sum = sum.Add(b)
		}
		assertDecimal(t, "sum", sum, Aggregate(month, entries).Total.String())
	})

	t.Run("leap_february", func(t *testing.T) {
		month := MonthOf(date(2024, time.February, 1))
		entries := []Entry{
			entry("A", "1", date(2024, time.February, 28)),
			entry("A", "2", date(2024, time.February, 29)),
		}

		buckets := MonthlyBuckets(month.Start, entries)
		assertDecimal(t, "last bucket", buckets[3], "3")
	})
}

func TestHighestDay(t *testing.T) {
	week := WeekOf(date(2024, time.March, 13))

	t.Run("sums_per_day", func(t *testing.T) {
		entries := []Entry{
			entry("A", "40", date(2024, time.March, 12)),
			entry("B", "70", date(2024, time.March, 12)),
			entry("C", "100", date(2024, time.March, 15)),
		}
		best, ok := HighestDay(week, entries)
		if !ok {
			t.Fatal("expected a highest day")
		}
		if !best.Date.Equal(date(2024, time.March, 12)) {
			t.Errorf("expected 2024-03-12, got %s", best.Date.Format(time.DateOnly))
		}
		assertDecimal(t, "total", best.Total, "110")
	})

	t.Run("tie_goes_to_earliest", func(t *testing.T) {
		entries := []Entry{
			entry("A", "50", date(2024, time.March, 16)),
			entry("A", "50", date(2024, time.March, 12)),
		}
		best, _ := HighestDay(week, entries)
		if !best.Date.Equal(date(2024, time.March, 12)) {
			t.Errorf("expected earliest day on tie, got %s", best.Date.Format(time.DateOnly))
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, ok := HighestDay(week, nil); ok {
			t.Error("expected no highest day for empty week")
		}
	})
}

func TestShareAndTop(t *testing.T) {
	agg := Aggregate(MonthOf(date(2024, time.June, 1)), []Entry{
		entry("A", "75", date(2024, time.June, 3)),
		entry("B", "20", date(2024, time.June, 4)),
		entry("C", "5", date(2024, time.June, 5)),
	})

	assertDecimal(t, "share A", agg.Share(agg.ByCategory[0]), "75")

	top := agg.ByCategory.Top(2)
	if len(top) != 2 || top[0].Category != "A" || top[1].Category != "B" {
		t.Errorf("unexpected top categories: %+v", top)
	}
	if len(agg.ByCategory.Top(10)) != 3 {
		t.Error("expected Top to return everything when n exceeds the length")
	}
}

func TestBreakdown_IgnoresDates(t *testing.T) {
	b := Breakdown([]Entry{
		entry("Travel", "10", date(2019, time.January, 1)),
		entry("Gifts", "40", date(2024, time.December, 31)),
		entry("Travel", "35", date(2022, time.June, 15)),
	})

	if len(b) != 2 || b[0].Category != "Travel" || b[1].Category != "Gifts" {
		t.Fatalf("unexpected breakdown: %+v", b)
	}
	assertDecimal(t, "travel", b[0].Total, "45")
}
