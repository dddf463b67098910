package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record. Category holds the category name,
// not a foreign key.
type Expense struct {
	Base
	UserID      string          `gorm:"type:varchar(36);not null;index:idx_expenses_user_date" json:"user_id"`
	Category    string          `gorm:"size:50;not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	ExpenseDate time.Time       `gorm:"type:date;not null;index:idx_expenses_user_date" json:"expense_date"`
	Description string          `gorm:"size:255" json:"description"`
}
