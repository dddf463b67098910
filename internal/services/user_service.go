package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

const (
	// MinPasswordLength applies to registration and password changes.
	MinPasswordLength = 6

	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute
)

var validate = validator.New()

// userService handles user-related business logic.
type userService struct {
	db              *gorm.DB
	defaultCurrency string
}

// NewUserService creates a new UserServicer. New users start with
// defaultCurrency as their currency symbol.
func NewUserService(db *gorm.DB, defaultCurrency string) UserServicer {
	if defaultCurrency == "" {
		defaultCurrency = models.DefaultCurrencySymbol
	}
	return &userService{db: db, defaultCurrency: defaultCurrency}
}

// Register creates the user and their default settings in one transaction.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if username == "" || email == "" || in.Password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "All fields are required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please enter a valid email address")
	}
	if err := checkNewPassword(in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, apperrors.Failed("create account", err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUser
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		FullName: strings.TrimSpace(in.FullName),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		settings := models.DefaultSettings(user.ID)
		settings.CurrencySymbol = s.defaultCurrency
		return tx.Create(settings).Error
	})
	if err != nil {
		return nil, apperrors.Failed("create account", err)
	}

	return user, nil
}

// Authenticate checks a username-or-email and password pair. Repeated
// failures lock the account for a while.
func (s *userService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please enter your username/email and password")
	}

	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("username = ? OR email = ?", login, strings.ToLower(login)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		return nil, apperrors.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		updates := map[string]interface{}{"failed_login_attempts": user.FailedLoginAttempts + 1}
		locked := user.FailedLoginAttempts+1 >= maxFailedLogins
		if locked {
			updates["failed_login_attempts"] = 0
			updates["locked_until"] = now.Add(lockoutDuration)
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if locked {
			return nil, apperrors.ErrAccountLocked
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now
	if err := db.Model(&user).Updates(map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
		"last_login_at":         now,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetSettings returns the user's settings, or the defaults when none were
// saved yet.
func (s *userService) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := loadSettings(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

// loadSettings falls back to defaults when the user has no settings row.
func loadSettings(db *gorm.DB, userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSettings(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateProfile saves the user's details and upserts their settings in one
// transaction.
func (s *userService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.User, *models.UserSettings, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please enter a valid email address")
	}
	if strings.TrimSpace(in.CurrencySymbol) == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please choose a currency")
	}
	if in.MonthlyBudgetCap.IsNegative() {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Monthly budget cannot be negative")
	}

	db := s.db.WithContext(ctx)

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count).Error; err != nil {
		return nil, nil, apperrors.Failed("update profile", err)
	}
	if count > 0 {
		return nil, nil, apperrors.ErrDuplicateEmail
	}

	user.FullName = strings.TrimSpace(in.FullName)
	user.Email = email
	settings := &models.UserSettings{
		UserID:             userID,
		CurrencySymbol:     strings.TrimSpace(in.CurrencySymbol),
		MonthlyBudgetCap:   in.MonthlyBudgetCap.Round(2),
		EmailNotifications: in.EmailNotifications,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Updates(map[string]interface{}{
			"full_name": user.FullName,
			"email":     user.Email,
		}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"currency_symbol", "monthly_budget_cap", "email_notifications"}),
		}).Create(settings).Error
	})
	if err != nil {
		return nil, nil, apperrors.Failed("update profile", err)
	}

	return user, settings, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *userService) ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return apperrors.ErrWrongPassword
	}
	if err := checkNewPassword(newPassword, confirm); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.WithContext(ctx).Model(user).Update("password", string(hashedPassword)).Error; err != nil {
		return apperrors.Failed("change password", err)
	}
	return nil
}

func checkNewPassword(password, confirm string) error {
	if password != confirm {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Passwords do not match")
	}
	if len(password) < MinPasswordLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Password must be at least 6 characters long")
	}
	return nil
}
