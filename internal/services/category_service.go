package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

const maxCategoryNameLength = 50

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// normalizeCategoryName collapses whitespace and upper-cases the first letter
// of every word, leaving the rest as typed ("atm fees" -> "Atm Fees",
// "ATM" stays "ATM").
func normalizeCategoryName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return cases.Title(language.Und, cases.NoLower).String(name)
}

// visibleTo scopes a category query to the defaults plus the user's own.
func visibleTo(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(user_id IS NULL OR user_id = ?)", userID)
	}
}

// ListVisible returns the default categories followed by the user's own,
// each group sorted by name.
func (s *categoryService) ListVisible(ctx context.Context, userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Scopes(visibleTo(userID)).
		Order("is_default DESC").
		Order("category_name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetByID retrieves a category the user can see.
func (s *categoryService) GetByID(ctx context.Context, userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).
		Scopes(visibleTo(userID)).
		Where("id = ?", categoryID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// IsVisible reports whether a category with this exact name is available to
// the user.
func (s *categoryService) IsVisible(ctx context.Context, userID, name string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Scopes(visibleTo(userID)).
		Where("category_name = ?", name).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// Create adds a custom category for the user.
func (s *categoryService) Create(ctx context.Context, userID, name, icon string) (*models.Category, error) {
	name, err := validCategoryName(name)
	if err != nil {
		return nil, err
	}
	if icon == "" {
		icon = models.DefaultCategoryIcon
	}

	db := s.db.WithContext(ctx)
	if err := checkDuplicateCategory(db, userID, name, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID: &userID,
		Name:   name,
		Icon:   icon,
	}
	if err := db.Create(category).Error; err != nil {
		return nil, apperrors.Failed("add category", err)
	}

	return category, nil
}

// Update renames or re-icons one of the user's own categories. Expenses
// filed under the old name follow the rename.
func (s *categoryService) Update(ctx context.Context, userID, categoryID, name, icon string) (*models.Category, error) {
	name, err := validCategoryName(name)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	category, err := s.editable(db, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := checkDuplicateCategory(db, userID, name, category.ID); err != nil {
		return nil, err
	}

	oldName := category.Name
	category.Name = name
	if icon != "" {
		category.Icon = icon
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(category).Updates(map[string]interface{}{
			"category_name": category.Name,
			"category_icon": category.Icon,
		}).Error; err != nil {
			return err
		}
		if oldName == name {
			return nil
		}
		return tx.Model(&models.Expense{}).
			Where("user_id = ? AND category = ?", userID, oldName).
			Update("category", name).Error
	})
	if err != nil {
		return nil, apperrors.Failed("update category", err)
	}

	return category, nil
}

// Delete removes one of the user's own categories. Expenses keep the name
// they were filed under.
func (s *categoryService) Delete(ctx context.Context, userID, categoryID string) error {
	db := s.db.WithContext(ctx)

	category, err := s.editable(db, userID, categoryID)
	if err != nil {
		return err
	}

	result := db.Where("id = ? AND user_id = ? AND is_default = ?", category.ID, userID, false).
		Delete(&models.Category{})
	if result.Error != nil {
		return apperrors.Failed("delete category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// editable loads a category and checks the user may change it. Defaults and
// other users' categories are refused without revealing which it was.
func (s *categoryService) editable(db *gorm.DB, userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !category.OwnedBy(userID) {
		return nil, apperrors.ErrCategoryNotEditable
	}
	return &category, nil
}

func validCategoryName(name string) (string, error) {
	name = normalizeCategoryName(name)
	if name == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Category name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Category name is too long")
	}
	return name, nil
}

// checkDuplicateCategory rejects a name already used by a default or by the
// user, ignoring case. exceptID skips the category being renamed.
func checkDuplicateCategory(db *gorm.DB, userID, name, exceptID string) error {
	q := db.Model(&models.Category{}).
		Scopes(visibleTo(userID)).
		Where("LOWER(category_name) = LOWER(?)", name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}
