package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/services"
	"expensetracker/internal/web"
)

// HomeHandler renders the dashboard.
type HomeHandler struct {
	userService     services.UserServicer
	categoryService services.CategoryServicer
	reportService   services.ReportServicer
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(userService services.UserServicer, categoryService services.CategoryServicer, reportService services.ReportServicer) *HomeHandler {
	return &HomeHandler{userService: userService, categoryService: categoryService, reportService: reportService}
}

// Show renders the current month dashboard
func (h *HomeHandler) Show(c *gin.Context) {
	v, err := loadViewer(c, h.userService)
	if err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()

	dashboard, err := h.reportService.Dashboard(ctx, v.User.ID)
	if err != nil {
		fail(c, err)
		return
	}
	categories, err := h.categoryService.ListVisible(ctx, v.User.ID)
	if err != nil {
		fail(c, err)
		return
	}

	data := v.page("Home", "home", banner{})
	data["Dashboard"] = dashboard
	data["Icons"] = categoryIcons(categories)
	render(c, http.StatusOK, web.PageHome, data)
}
