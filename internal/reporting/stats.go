package reporting

import (
	"time"

	"github.com/shopspring/decimal"
)

// Percent returns part as a percentage of whole, rounded to one decimal
// place. Zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}

// DailyAverage spreads total over days, rounded to two decimal places.
func DailyAverage(total decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 || !total.IsPositive() {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(days))).Round(2)
}

// BudgetLeft is what remains of the cap after spending, never below zero.
func BudgetLeft(budgetCap, spent decimal.Decimal) decimal.Decimal {
	left := budgetCap.Sub(spent)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// BudgetUsedPercent is spent as a percentage of the cap, capped at 100.
func BudgetUsedPercent(budgetCap, spent decimal.Decimal) decimal.Decimal {
	p := Percent(spent, budgetCap)
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// LifetimeStats summarizes every expense a user has recorded.
type LifetimeStats struct {
	Count           int
	Total           decimal.Decimal
	Average         decimal.Decimal
	ActiveMonths    int
	LastExpenseDate *time.Time
}

// Lifetime computes LifetimeStats over all entries.
func Lifetime(entries []Entry) LifetimeStats {
	stats := LifetimeStats{Total: decimal.Zero, Average: decimal.Zero}
	months := make(map[[2]int]struct{})

	for _, e := range entries {
		stats.Count++
		stats.Total = stats.Total.Add(e.Amount)

		d := Day(e.Date)
		months[[2]int{d.Year(), int(d.Month())}] = struct{}{}
		if stats.LastExpenseDate == nil || d.After(*stats.LastExpenseDate) {
			last := d
			stats.LastExpenseDate = &last
		}
	}

	stats.ActiveMonths = len(months)
	if stats.Count > 0 {
		stats.Average = stats.Total.Div(decimal.NewFromInt(int64(stats.Count))).Round(2)
	}
	return stats
}
