package web

import (
	"errors"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/money"
)

var (
	hundred       = decimal.NewFromInt(100)
	errOddDictArg = errors.New("dict needs key/value pairs")
)

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":     money.Format,
		"amount":    func(d decimal.Decimal) string { return d.StringFixed(2) },
		"pct":       percent,
		"barWidth":  barWidth,
		"date":      func(t time.Time) string { return t.Format("02 Jan 2006") },
		"dateTime":  func(t time.Time) string { return t.Local().Format("January 2, 2006 at 3:04 PM") },
		"isoDate":   func(t time.Time) string { return t.Format("2006-01-02") },
		"monthYear": func(t time.Time) string { return t.Format("January 2006") },
		"weekday":   func(t time.Time) string { return t.Weekday().String() },
		"iconOr":    iconOr,
		"dict":      dict,
	}
}

// percent renders a percentage with one decimal, e.g. "12.5%".
func percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// barWidth clamps a percentage to [0, 100] for progress bars.
func barWidth(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return "0"
	case d.GreaterThan(hundred):
		return "100"
	}
	return d.StringFixed(1)
}

func iconOr(icon string) string {
	if icon == "" {
		return models.DefaultCategoryIcon
	}
	return icon
}

// dict builds a map from alternating keys and values so sub-templates can
// take several arguments.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errOddDictArg
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errOddDictArg
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// ChartSeries is the JSON shape the chart script reads.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// NewChartSeries converts decimal amounts for the chart script.
func NewChartSeries(labels []string, values []decimal.Decimal) ChartSeries {
	s := ChartSeries{Labels: labels, Values: make([]float64, len(values))}
	for i, v := range values {
		s.Values[i] = v.InexactFloat64()
	}
	return s
}
