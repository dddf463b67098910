package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/services"
	"expensetracker/internal/web"
)

var (
	weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	weekLabels    = []string{"Week 1", "Week 2", "Week 3", "Week 4"}
	exportFormats = map[string]bool{"csv": true, "pdf": true}
)

// GraphsHandler renders the weekly and monthly analytics page.
type GraphsHandler struct {
	userService     services.UserServicer
	categoryService services.CategoryServicer
	reportService   services.ReportServicer
}

// NewGraphsHandler creates a new GraphsHandler
func NewGraphsHandler(userService services.UserServicer, categoryService services.CategoryServicer, reportService services.ReportServicer) *GraphsHandler {
	return &GraphsHandler{userService: userService, categoryService: categoryService, reportService: reportService}
}

// Show renders the graphs page
func (h *GraphsHandler) Show(c *gin.Context) {
	h.show(c, http.StatusOK, banner{})
}

// Export answers the CSV and PDF export links. Exports are not available
// yet, so the graphs page is shown with a notice.
func (h *GraphsHandler) Export(c *gin.Context) {
	if !exportFormats[c.Param("format")] {
		fail(c, apperrors.ErrNotFound)
		return
	}
	status, b := errorBanner(c, apperrors.ErrNotImplemented)
	h.show(c, status, b)
}

func (h *GraphsHandler) show(c *gin.Context, status int, b banner) {
	v, err := loadViewer(c, h.userService)
	if err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()

	graphs, err := h.reportService.Graphs(ctx, v.User.ID)
	if err != nil {
		fail(c, err)
		return
	}
	categories, err := h.categoryService.ListVisible(ctx, v.User.ID)
	if err != nil {
		fail(c, err)
		return
	}

	data := v.page("Graphs", "graphs", b)
	data["Graphs"] = graphs
	data["Icons"] = categoryIcons(categories)
	data["WeekChart"] = web.NewChartSeries(weekdayLabels, graphs.WeekBuckets[:])
	data["MonthChart"] = web.NewChartSeries(weekLabels, graphs.MonthBuckets[:])
	render(c, status, web.PageGraphs, data)
}
