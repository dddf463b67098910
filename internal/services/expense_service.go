package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/money"
	"expensetracker/internal/pagination"
	"expensetracker/internal/reporting"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db         *gorm.DB
	categories CategoryServicer
}

// NewExpenseService creates a new ExpenseServicer. Categories are checked
// through categoryService.
func NewExpenseService(db *gorm.DB, categoryService CategoryServicer) ExpenseServicer {
	return &expenseService{db: db, categories: categoryService}
}

// Create records a new expense.
func (s *expenseService) Create(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error) {
	in, err := s.validate(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		Category:    in.Category,
		Amount:      in.Amount,
		ExpenseDate: in.Date,
		Description: in.Description,
	}
	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, apperrors.Failed("add expense", err)
	}
	return expense, nil
}

// Update replaces every field of an existing expense.
func (s *expenseService) Update(ctx context.Context, userID, expenseID string, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetByID(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	in, err = s.validate(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	expense.Category = in.Category
	expense.Amount = in.Amount
	expense.ExpenseDate = in.Date
	expense.Description = in.Description

	if err := s.db.WithContext(ctx).Model(expense).Updates(map[string]interface{}{
		"category":     expense.Category,
		"amount":       expense.Amount,
		"expense_date": expense.ExpenseDate,
		"description":  expense.Description,
	}).Error; err != nil {
		return nil, apperrors.Failed("update expense", err)
	}
	return expense, nil
}

// Delete removes an expense owned by the user.
func (s *expenseService) Delete(ctx context.Context, userID, expenseID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", expenseID, userID).
		Delete(&models.Expense{})
	if result.Error != nil {
		return apperrors.Failed("delete expense", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// GetByID retrieves an expense by ID for a specific user
func (s *expenseService) GetByID(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", expenseID, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// List retrieves a paginated, filtered list of the user's expenses, newest
// first.
func (s *expenseService) List(ctx context.Context, userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", userID)
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("expense_date DESC").
		Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("expense_date >= ?", reporting.Day(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("expense_date <= ?", reporting.Day(*f.ToDate))
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	return q
}

// Recent returns the user's latest expenses.
func (s *expenseService) Recent(ctx context.Context, userID string, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expense_date DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// Count returns how many expenses the user has recorded.
func (s *expenseService) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

func (s *expenseService) validate(ctx context.Context, userID string, in ExpenseInput) (ExpenseInput, error) {
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)

	if in.Category == "" {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please choose a category")
	}
	if !in.Amount.IsPositive() || in.Amount.GreaterThan(money.MaxAmount) || !in.Amount.Equal(in.Amount.Round(2)) {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be a positive number with at most two decimals")
	}
	if in.Date.IsZero() {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please choose a date")
	}
	in.Date = reporting.Day(in.Date)
	if in.Date.After(reporting.Day(time.Now()).AddDate(0, 0, 1)) {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, "Expense date cannot be in the future")
	}

	ok, err := s.categories.IsVisible(ctx, userID, in.Category)
	if err != nil {
		return in, err
	}
	if !ok {
		return in, apperrors.ErrUnknownCategory
	}
	return in, nil
}
