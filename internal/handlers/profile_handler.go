package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/money"
	"expensetracker/internal/services"
	"expensetracker/internal/web"
)

// ProfileHandler handles the profile page
type ProfileHandler struct {
	userService     services.UserServicer
	categoryService services.CategoryServicer
	reportService   services.ReportServicer
	auditService    services.AuditServicer
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(
	userService services.UserServicer,
	categoryService services.CategoryServicer,
	reportService services.ReportServicer,
	auditService services.AuditServicer,
) *ProfileHandler {
	return &ProfileHandler{
		userService:     userService,
		categoryService: categoryService,
		reportService:   reportService,
		auditService:    auditService,
	}
}

// ProfileForm represents the profile and settings form
type ProfileForm struct {
	FullName      string `form:"full_name" binding:"max=100"`
	Email         string `form:"email" binding:"required,email,max=255"`
	Currency      string `form:"currency" binding:"required,currency_symbol"`
	MonthlyBudget string `form:"monthly_budget" binding:"required,money"`
	Notifications string `form:"notifications"`
}

// PasswordForm represents the change password form
type PasswordForm struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required,min=6,max=128"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=NewPassword"`
}

const (
	tabInfo     = "info"
	tabPassword = "password"
)

// Show renders the profile page
func (h *ProfileHandler) Show(c *gin.Context) {
	h.show(c, http.StatusOK, tabInfo, banner{})
}

// Update saves the profile details and settings
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		status, b := errorBanner(c, bindError(err))
		h.show(c, status, tabInfo, b)
		return
	}
	budget, err := money.Parse(form.MonthlyBudget)
	if err != nil {
		status, b := errorBanner(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please enter a valid monthly budget"))
		h.show(c, status, tabInfo, b)
		return
	}

	_, settings, err := h.userService.UpdateProfile(c.Request.Context(), userID, services.ProfileInput{
		FullName:           form.FullName,
		Email:              form.Email,
		CurrencySymbol:     form.Currency,
		MonthlyBudgetCap:   budget,
		EmailNotifications: form.Notifications != "",
	})
	if err != nil {
		status, b := errorBanner(c, err)
		h.show(c, status, tabInfo, b)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditUpdate, "user", userID, c.ClientIP(), map[string]interface{}{
		"email":              form.Email,
		"currency_symbol":    settings.CurrencySymbol,
		"monthly_budget_cap": settings.MonthlyBudgetCap.StringFixed(2),
	})

	h.show(c, http.StatusOK, tabInfo, successBanner("Profile updated successfully!"))
}

// ChangePassword replaces the user's password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var form PasswordForm
	if err := c.ShouldBind(&form); err != nil {
		status, b := errorBanner(c, bindError(err))
		h.show(c, status, tabPassword, b)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, form.CurrentPassword, form.NewPassword, form.ConfirmPassword); err != nil {
		status, b := errorBanner(c, err)
		h.show(c, status, tabPassword, b)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditChangePassword, "user", userID, c.ClientIP(), nil)

	h.show(c, http.StatusOK, tabPassword, successBanner("Password changed successfully!"))
}

func (h *ProfileHandler) show(c *gin.Context, status int, tab string, b banner) {
	v, err := loadViewer(c, h.userService)
	if err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()

	stats, err := h.reportService.ProfileStats(ctx, v.User.ID)
	if err != nil {
		fail(c, err)
		return
	}
	categories, err := h.categoryService.ListVisible(ctx, v.User.ID)
	if err != nil {
		fail(c, err)
		return
	}

	data := v.page("Profile", "profile", b)
	data["Settings"] = v.Settings
	data["Stats"] = stats
	data["Icons"] = categoryIcons(categories)
	data["Currencies"] = models.CurrencySymbols
	data["Tab"] = tab
	render(c, status, web.PageProfile, data)
}
