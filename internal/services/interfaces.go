package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
	"expensetracker/internal/reporting"
)

// RegisterInput holds the registration form values.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

// ProfileInput holds the profile form values. Settings are saved together
// with the user row.
type ProfileInput struct {
	FullName           string
	Email              string
	CurrencySymbol     string
	MonthlyBudgetCap   decimal.Decimal
	EmailNotifications bool
}

// UserServicer defines the contract for accounts, authentication and
// per-user settings.
type UserServicer interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, login, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, *models.UserSettings, error)
	ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListVisible(ctx context.Context, userID string) ([]models.Category, error)
	GetByID(ctx context.Context, userID, categoryID string) (*models.Category, error)
	IsVisible(ctx context.Context, userID, name string) (bool, error)
	Create(ctx context.Context, userID, name, icon string) (*models.Category, error)
	Update(ctx context.Context, userID, categoryID, name, icon string) (*models.Category, error)
	Delete(ctx context.Context, userID, categoryID string) error
}

// ExpenseInput holds the values of an expense form.
type ExpenseInput struct {
	Category    string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Category string
	Search   string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	Create(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error)
	Update(ctx context.Context, userID, expenseID string, in ExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, userID, expenseID string) error
	GetByID(ctx context.Context, userID, expenseID string) (*models.Expense, error)
	List(ctx context.Context, userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	Recent(ctx context.Context, userID string, limit int) ([]models.Expense, error)
	Count(ctx context.Context, userID string) (int64, error)
}

// Dashboard is everything the home page shows.
type Dashboard struct {
	Today              time.Time
	Month              reporting.AggregatePeriod
	PreviousMonthTotal decimal.Decimal
	MonthTrend         reporting.Trend
	Week               reporting.AggregatePeriod
	BudgetCap          decimal.Decimal
	BudgetLeft         decimal.Decimal
	BudgetUsedPercent  decimal.Decimal
	Recent             []models.Expense
	ExpenseCount       int64
}

// Graphs is everything the graphs page shows.
type Graphs struct {
	Today          time.Time
	Week           reporting.AggregatePeriod
	Month          reporting.AggregatePeriod
	WeekBuckets    [7]decimal.Decimal
	MonthBuckets   [4]decimal.Decimal
	LastWeekTotal  decimal.Decimal
	LastMonthTotal decimal.Decimal
	WeekTrend      reporting.Trend
	MonthTrend     reporting.Trend
	HighestDay     reporting.DayTotal
	HasHighestDay  bool
	WeekDailyAvg   decimal.Decimal
	MonthDailyAvg  decimal.Decimal
}

// ProfileStats is the lifetime summary on the profile page.
type ProfileStats struct {
	Lifetime      reporting.LifetimeStats
	TopCategories reporting.CategoryBreakdown
}

// ReportServicer defines the contract for reporting over a user's expenses.
type ReportServicer interface {
	Aggregate(ctx context.Context, userID string, start, end time.Time) (*reporting.AggregatePeriod, error)
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
	Graphs(ctx context.Context, userID string) (*Graphs, error)
	CategorySpending(ctx context.Context, userID string) (*reporting.AggregatePeriod, error)
	ProfileStats(ctx context.Context, userID string) (*ProfileStats, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}

// SupportServicer defines the contract for help-page contact messages.
type SupportServicer interface {
	Submit(ctx context.Context, userID, subject, message string) (*models.SupportMessage, error)
	MarkDelivered(ctx context.Context, messageID string) error
}
