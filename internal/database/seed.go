package database

import (
	"fmt"

	"gorm.io/gorm"

	"expensetracker/internal/models"
)

// DefaultCategories are shared by every user and cannot be edited.
var DefaultCategories = []struct {
	Name string
	Icon string
}{
	{"Food & Dining", "fa-utensils"},
	{"Transport", "fa-bus"},
	{"Entertainment", "fa-film"},
	{"Utilities", "fa-bolt"},
	{"Shopping", "fa-bag-shopping"},
	{"Health", "fa-heart-pulse"},
	{"Travel", "fa-plane"},
	{"Rent", "fa-house-chimney"},
	{"Education", "fa-graduation-cap"},
	{"Gifts", "fa-gift"},
}

// SeedDefaultCategories inserts any missing default category. It is safe to
// run on every start.
func SeedDefaultCategories(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, def := range DefaultCategories {
			var count int64
			if err := tx.Model(&models.Category{}).
				Where("user_id IS NULL AND category_name = ?", def.Name).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check default category %q: %w", def.Name, err)
			}
			if count > 0 {
				continue
			}
			cat := &models.Category{Name: def.Name, Icon: def.Icon, IsDefault: true}
			if err := tx.Create(cat).Error; err != nil {
				return fmt.Errorf("failed to seed default category %q: %w", def.Name, err)
			}
		}
		return nil
	})
}
