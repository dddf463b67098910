package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/models"
	"expensetracker/internal/services"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID parses a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id.String(), nil
}

// banner is the success or error message shown above a page.
type banner struct {
	Success string
	Error   string
}

func successBanner(msg string) banner { return banner{Success: msg} }

// errorBanner turns err into a banner and the status to render it with. If
// the error is an *AppError its status and message are used. Otherwise it
// logs the unexpected error and shows a generic internal error.
func errorBanner(c *gin.Context, err error) (int, banner) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		return appErr.StatusCode, banner{Error: appErr.Message}
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	return apperrors.ErrInternalServer.StatusCode, banner{Error: apperrors.ErrInternalServer.Message}
}

// bindError converts a form binding failure into an INVALID_INPUT error
// naming the first offending field.
func bindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid form submission")
	}

	fe := verrs[0]
	label := fieldLabel(fe.Field())
	var msg string
	switch fe.Tag() {
	case "required":
		msg = label + " is required"
	case "email":
		msg = "Please enter a valid email address"
	case "max":
		msg = label + " must be at most " + fe.Param() + " characters"
	case "min":
		msg = label + " must be at least " + fe.Param() + " characters"
	case "eqfield":
		msg = "Passwords do not match"
	case "money":
		msg = "Please enter a valid amount (up to 2 decimal places)"
	case "currency_symbol":
		msg = "Please choose a supported currency"
	case "category_icon":
		msg = "Please choose one of the offered icons"
	case "datetime":
		msg = label + " must be a valid date"
	default:
		msg = label + " is invalid"
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, msg)
}

// fieldLabel turns a form field name like "confirm_password" into
// "Confirm password".
func fieldLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return "Field"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// viewer is the signed-in user as every page shows them.
type viewer struct {
	User     *models.User
	Settings *models.UserSettings
}

func loadViewer(c *gin.Context, users services.UserServicer) (*viewer, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, err
	}
	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	settings, err := users.GetSettings(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	return &viewer{User: user, Settings: settings}, nil
}

// page returns the template data shared by authenticated pages.
func (v *viewer) page(title, active string, b banner) gin.H {
	return gin.H{
		"Title":    title,
		"Active":   active,
		"User":     v.User,
		"Currency": v.Settings.CurrencySymbol,
		"Success":  b.Success,
		"Error":    b.Error,
	}
}

// render writes a full page with the request's CSRF token added to data.
func render(c *gin.Context, status int, page string, data gin.H) {
	data["CSRFToken"] = c.GetString(middleware.CSRFTokenKey)
	c.HTML(status, page, data)
}

// fail hands err to the error page middleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// categoryIcons maps category names to icons for list rendering.
func categoryIcons(categories []models.Category) map[string]string {
	icons := make(map[string]string, len(categories))
	for _, cat := range categories {
		icons[cat.Name] = cat.Icon
	}
	return icons
}
