package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/reporting"
)

const (
	recentExpenseCount = 5
	topCategoryCount   = 3
)

// reportService loads expense rows and hands them to the reporting package.
type reportService struct {
	db       *gorm.DB
	expenses ExpenseServicer
	now      func() time.Time
}

// NewReportService creates a new ReportServicer. now defaults to time.Now.
func NewReportService(db *gorm.DB, expenseService ExpenseServicer, now func() time.Time) ReportServicer {
	if now == nil {
		now = time.Now
	}
	return &reportService{db: db, expenses: expenseService, now: now}
}

// entries loads the user's expenses in p. A zero period loads everything.
func (s *reportService) entries(ctx context.Context, userID string, p *reporting.Period) ([]reporting.Entry, error) {
	q := s.db.WithContext(ctx).Model(&models.Expense{}).
		Select("category", "amount", "expense_date").
		Where("user_id = ?", userID)
	if p != nil {
		q = q.Where("expense_date >= ? AND expense_date <= ?", p.Start, p.End)
	}

	var rows []models.Expense
	if err := q.Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]reporting.Entry, len(rows))
	for i, r := range rows {
		entries[i] = reporting.Entry{Category: r.Category, Amount: r.Amount, Date: r.ExpenseDate}
	}
	return entries, nil
}

// Aggregate totals the user's expenses between start and end inclusive.
func (s *reportService) Aggregate(ctx context.Context, userID string, start, end time.Time) (*reporting.AggregatePeriod, error) {
	p := reporting.NewPeriod(start, end)
	entries, err := s.entries(ctx, userID, &p)
	if err != nil {
		return nil, err
	}
	agg := reporting.Aggregate(p, entries)
	return &agg, nil
}

// Dashboard assembles the home page figures.
func (s *reportService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	today := reporting.Day(s.now())
	month := reporting.MonthOf(today)
	prevMonth := reporting.PreviousMonth(today)
	week := reporting.RollingWeek(today)

	var (
		monthEntries []reporting.Entry
		prevEntries  []reporting.Entry
		weekEntries  []reporting.Entry
		settings     *models.UserSettings
		recent       []models.Expense
		count        int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthEntries, err = s.entries(gctx, userID, &month)
		return err
	})
	g.Go(func() (err error) {
		prevEntries, err = s.entries(gctx, userID, &prevMonth)
		return err
	})
	g.Go(func() (err error) {
		weekEntries, err = s.entries(gctx, userID, &week)
		return err
	})
	g.Go(func() (err error) {
		settings, err = loadSettings(s.db.WithContext(gctx), userID)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	g.Go(func() (err error) {
		recent, err = s.expenses.Recent(gctx, userID, recentExpenseCount)
		return err
	})
	g.Go(func() (err error) {
		count, err = s.expenses.Count(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{
		Today:        today,
		Month:        reporting.Aggregate(month, monthEntries),
		Week:         reporting.Aggregate(week, weekEntries),
		BudgetCap:    settings.MonthlyBudgetCap,
		Recent:       recent,
		ExpenseCount: count,
	}
	d.PreviousMonthTotal = reporting.Aggregate(prevMonth, prevEntries).Total
	d.MonthTrend = reporting.CalculateTrend(d.Month.Total, d.PreviousMonthTotal)
	d.BudgetLeft = reporting.BudgetLeft(d.BudgetCap, d.Month.Total)
	d.BudgetUsedPercent = reporting.BudgetUsedPercent(d.BudgetCap, d.Month.Total)
	return d, nil
}

// Graphs assembles the weekly and monthly chart data for the current
// calendar week and month.
func (s *reportService) Graphs(ctx context.Context, userID string) (*Graphs, error) {
	today := reporting.Day(s.now())
	week := reporting.WeekOf(today)
	prevWeek := reporting.PreviousWeek(today)
	month := reporting.MonthOf(today)
	prevMonth := reporting.PreviousMonth(today)

	// One read spans each period and its predecessor.
	weekSpan := reporting.NewPeriod(prevWeek.Start, week.End)
	monthSpan := reporting.NewPeriod(prevMonth.Start, month.End)

	var weekEntries, monthEntries []reporting.Entry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		weekEntries, err = s.entries(gctx, userID, &weekSpan)
		return err
	})
	g.Go(func() (err error) {
		monthEntries, err = s.entries(gctx, userID, &monthSpan)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gr := &Graphs{
		Today:          today,
		Week:           reporting.Aggregate(week, weekEntries),
		Month:          reporting.Aggregate(month, monthEntries),
		WeekBuckets:    reporting.WeeklyBuckets(week.Start, weekEntries),
		MonthBuckets:   reporting.MonthlyBuckets(month.Start, monthEntries),
		LastWeekTotal:  reporting.Aggregate(prevWeek, weekEntries).Total,
		LastMonthTotal: reporting.Aggregate(prevMonth, monthEntries).Total,
	}
	gr.WeekTrend = reporting.CalculateTrend(gr.Week.Total, gr.LastWeekTotal)
	gr.MonthTrend = reporting.CalculateTrend(gr.Month.Total, gr.LastMonthTotal)
	gr.HighestDay, gr.HasHighestDay = reporting.HighestDay(week, weekEntries)
	gr.WeekDailyAvg = reporting.DailyAverage(gr.Week.Total, week.Days())
	gr.MonthDailyAvg = reporting.DailyAverage(gr.Month.Total, today.Day())
	return gr, nil
}

// CategorySpending is the current month broken down by category.
func (s *reportService) CategorySpending(ctx context.Context, userID string) (*reporting.AggregatePeriod, error) {
	month := reporting.MonthOf(s.now())
	return s.Aggregate(ctx, userID, month.Start, month.End)
}

// ProfileStats summarizes every expense the user has recorded.
func (s *reportService) ProfileStats(ctx context.Context, userID string) (*ProfileStats, error) {
	entries, err := s.entries(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return &ProfileStats{
		Lifetime:      reporting.Lifetime(entries),
		TopCategories: reporting.Breakdown(entries).Top(topCategoryCount),
	}, nil
}
