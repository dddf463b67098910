package reporting

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Trend compares a period total against the one before it.
type Trend struct {
	PercentChange  decimal.Decimal
	AbsoluteChange decimal.Decimal
}

// CalculateTrend derives the change from previous to current. With no
// previous spending both fields are zero, even if current is positive.
func CalculateTrend(current, previous decimal.Decimal) Trend {
	if !previous.IsPositive() {
		return Trend{PercentChange: decimal.Zero, AbsoluteChange: decimal.Zero}
	}
	diff := current.Sub(previous)
	return Trend{
		PercentChange:  diff.Div(previous).Mul(hundred).Round(1),
		AbsoluteChange: diff,
	}
}

// Increased reports whether spending went up.
func (t Trend) Increased() bool {
	return t.AbsoluteChange.IsPositive()
}

// Decreased reports whether spending went down.
func (t Trend) Decreased() bool {
	return t.AbsoluteChange.IsNegative()
}
