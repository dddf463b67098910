package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"expensetracker/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date returns midnight UTC of the given calendar day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateTestUser creates a user with a hashed password, unique username and
// email, and default settings.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithLogin(t, db, fmt.Sprintf("user%d", n), fmt.Sprintf("user%d@test.com", n))
}

// CreateTestUserWithLogin creates a user with the given username and email.
func CreateTestUserWithLogin(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	if err := db.Create(models.DefaultSettings(user.ID)).Error; err != nil {
		t.Fatalf("failed to create test user settings: %v", err)
	}
	return user
}

// CreateTestCategory creates a custom category owned by userID.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, userID, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryNamed creates a custom category with the given name.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, userID, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: &userID,
		Name:   name,
		Icon:   models.DefaultCategoryIcon,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// DefaultCategory returns a seeded default category by name.
func DefaultCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	var category models.Category
	if err := db.Where("user_id IS NULL AND category_name = ?", name).First(&category).Error; err != nil {
		t.Fatalf("failed to load default category %q: %v", name, err)
	}
	return &category
}

// CreateTestExpense creates an expense with the given amount on the given day.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, category, amount string, day time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		ExpenseDate: day,
		Description: fmt.Sprintf("Test expense %d", nextID()),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CountRows returns the number of rows of model matching the optional
// condition.
func CountRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
