package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account holder
type User struct {
	Base
	Username            string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email               string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	FullName            string     `gorm:"size:100" json:"full_name"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
}

// DisplayName returns the full name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Defaults applied when a user has no settings row yet.
const DefaultCurrencySymbol = "₹"

// DefaultMonthlyBudgetCap is the budget assumed until the user sets one.
var DefaultMonthlyBudgetCap = decimal.NewFromInt(100000)

// UserSettings holds per-user display and budget preferences. One row per user.
type UserSettings struct {
	UserID             string          `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	CurrencySymbol     string          `gorm:"size:8;not null" json:"currency_symbol"`
	MonthlyBudgetCap   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"monthly_budget_cap"`
	EmailNotifications bool            `gorm:"not null" json:"email_notifications"`
}

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:             userID,
		CurrencySymbol:     DefaultCurrencySymbol,
		MonthlyBudgetCap:   DefaultMonthlyBudgetCap,
		EmailNotifications: true,
	}
}

// CurrencySymbols are the display currencies a user can pick.
var CurrencySymbols = []Choice{
	{"₹", "Indian Rupee (₹)"},
	{"$", "US Dollar ($)"},
	{"€", "Euro (€)"},
	{"£", "British Pound (£)"},
	{"¥", "Japanese Yen (¥)"},
	{"₿", "Bitcoin (₿)"},
}
