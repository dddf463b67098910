// Package errors provides the application error type shared by services and
// handlers. Services return AppErrors so handlers can show a safe,
// user-facing message while the internal cause is only logged.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches another AppError by code so sentinels compare equal to
// wrapped or re-messaged copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Failed builds the generic "Failed to <action>" error shown when
// persistence fails, keeping the cause for the logs.
func Failed(action string, internal error) *AppError {
	return &AppError{
		Code:       ErrInternalServer.Code,
		Message:    "Failed to " + action,
		StatusCode: ErrInternalServer.StatusCode,
		Internal:   internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Please log in to continue", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username/email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked, try again later", StatusCode: http.StatusLocked}
	ErrInvalidCSRFToken   = &AppError{Code: "INVALID_CSRF_TOKEN", Message: "Your form has expired, please try again", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Page not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrNotImplemented = &AppError{Code: "NOT_IMPLEMENTED", Message: "This feature is not available yet", StatusCode: http.StatusNotImplemented}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUser  = &AppError{Code: "DUPLICATE_USER", Message: "Username or email already exists", StatusCode: http.StatusConflict}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "Email is already used by another account", StatusCode: http.StatusConflict}
	ErrWrongPassword  = &AppError{Code: "WRONG_PASSWORD", Message: "Current password is incorrect", StatusCode: http.StatusBadRequest}
)

// Category errors.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryNotEditable = &AppError{Code: "CATEGORY_NOT_EDITABLE", Message: "Default categories cannot be changed", StatusCode: http.StatusForbidden}
	ErrDuplicateCategory   = &AppError{Code: "DUPLICATE_CATEGORY", Message: "Category already exists", StatusCode: http.StatusConflict}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrUnknownCategory = &AppError{Code: "UNKNOWN_CATEGORY", Message: "Choose one of your categories", StatusCode: http.StatusBadRequest}
)
