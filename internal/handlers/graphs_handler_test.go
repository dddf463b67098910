package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/reporting"
	"expensetracker/internal/services"
)

func setupGraphsRouter(t *testing.T, reports *mockReportService) *gin.Engine {
	handler := NewGraphsHandler(&mockUserService{}, &mockCategoryService{}, reports)
	r := newRouter(t)
	r.Use(injectUserID(testUserID))
	r.GET("/graphs", handler.Show)
	r.GET("/graphs/export/:format", handler.Export)
	return r
}

func sampleGraphs() *services.Graphs {
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	week := reporting.AggregatePeriod{
		Total: dec("300"),
		Count: 3,
		ByCategory: reporting.CategoryBreakdown{
			{Category: "Pets", Total: dec("200"), Count: 2},
			{Category: "Food & Dining", Total: dec("100"), Count: 1},
		},
	}
	g := &services.Graphs{
		Today:          today,
		Week:           week,
		Month:          week,
		LastWeekTotal:  dec("600"),
		LastMonthTotal: dec("0"),
		WeekTrend:      reporting.CalculateTrend(dec("300"), dec("600")),
		MonthTrend:     reporting.CalculateTrend(dec("300"), dec("0")),
		HighestDay:     reporting.DayTotal{Date: today, Total: dec("200")},
		HasHighestDay:  true,
		WeekDailyAvg:   dec("42.86"),
		MonthDailyAvg:  dec("9.68"),
	}
	for i := range g.WeekBuckets {
		g.WeekBuckets[i] = dec("0")
	}
	g.WeekBuckets[2] = dec("120.5")
	for i := range g.MonthBuckets {
		g.MonthBuckets[i] = dec("0")
	}
	g.MonthBuckets[2] = dec("300")
	return g
}

func TestGraphsHandler_Show(t *testing.T) {
	t.Run("renders_analytics", func(t *testing.T) {
		reports := &mockReportService{
			graphsFn: func(context.Context, string) (*services.Graphs, error) {
				return sampleGraphs(), nil
			},
		}
		r := setupGraphsRouter(t, reports)

		rec := doGet(r, "/graphs")

		assertStatus(t, rec, http.StatusOK)
		assertBodyContains(t, rec,
			"₹ 300.00",
			"₹ 42.86",
			"Wednesday (₹ 200.00)",
			"Pets (66.7%)",
			"50.0% decrease",
			`"labels":["Mon","Tue","Wed","Thu","Fri","Sat","Sun"]`,
			`"values":[0,0,120.5,0,0,0,0]`,
			`"labels":["Week 1","Week 2","Week 3","Week 4"]`,
			`id="expenseChart"`,
		)
	})

	t.Run("no_data", func(t *testing.T) {
		r := setupGraphsRouter(t, &mockReportService{})

		rec := doGet(r, "/graphs")

		assertStatus(t, rec, http.StatusOK)
		assertBodyContains(t, rec, "No expense data available.")
	})
}

func TestGraphsHandler_Export(t *testing.T) {
	r := setupGraphsRouter(t, &mockReportService{})

	for _, format := range []string{"csv", "pdf"} {
		rec := doGet(r, "/graphs/export/"+format)

		assertStatus(t, rec, http.StatusNotImplemented)
		assertBodyContains(t, rec, "This feature is not available yet", "Expense Analytics")
	}

	rec := doGet(r, "/graphs/export/xls")
	assertStatus(t, rec, http.StatusNotFound)
}
