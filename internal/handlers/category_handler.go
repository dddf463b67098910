package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/reporting"
	"expensetracker/internal/services"
	"expensetracker/internal/web"
)

// CategoryHandler handles the categories page
type CategoryHandler struct {
	userService     services.UserServicer
	categoryService services.CategoryServicer
	reportService   services.ReportServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(
	userService services.UserServicer,
	categoryService services.CategoryServicer,
	reportService services.ReportServicer,
	auditService services.AuditServicer,
) *CategoryHandler {
	return &CategoryHandler{
		userService:     userService,
		categoryService: categoryService,
		reportService:   reportService,
		auditService:    auditService,
	}
}

// CategoryForm represents the add and edit category forms
type CategoryForm struct {
	Name string `form:"category_name" binding:"required,max=50"`
	Icon string `form:"category_icon" binding:"category_icon"`
}

// categoryRow is one category card with its spending this month.
type categoryRow struct {
	Category models.Category
	Spent    decimal.Decimal
	Count    int
	Share    decimal.Decimal
	Editable bool
}

func categoryRows(userID string, categories []models.Category, month *reporting.AggregatePeriod) []categoryRow {
	rows := make([]categoryRow, len(categories))
	for i, cat := range categories {
		row := categoryRow{
			Category: cat,
			Spent:    decimal.Zero,
			Share:    decimal.Zero,
			Editable: cat.OwnedBy(userID),
		}
		if ct, ok := month.ByCategory.Get(cat.Name); ok {
			row.Spent = ct.Total
			row.Count = ct.Count
			row.Share = month.Share(ct)
		}
		rows[i] = row
	}
	return rows
}

// List renders the categories page
func (h *CategoryHandler) List(c *gin.Context) {
	h.show(c, http.StatusOK, CategoryForm{}, banner{})
}

// Create adds a custom category
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		status, b := errorBanner(c, bindError(err))
		h.show(c, status, form, b)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), userID, form.Name, form.Icon)
	if err != nil {
		status, b := errorBanner(c, err)
		h.show(c, status, form, b)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditCreate, "category", category.ID, c.ClientIP(), map[string]interface{}{
		"name": category.Name,
		"icon": category.Icon,
	})

	h.show(c, http.StatusCreated, CategoryForm{}, successBanner("Category \""+category.Name+"\" added successfully!"))
}

// Update renames or re-icons a custom category
func (h *CategoryHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		status, b := errorBanner(c, err)
		h.show(c, status, CategoryForm{}, b)
		return
	}

	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		status, b := errorBanner(c, bindError(err))
		h.show(c, status, CategoryForm{}, b)
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), userID, id, form.Name, form.Icon)
	if err != nil {
		status, b := errorBanner(c, err)
		h.show(c, status, CategoryForm{}, b)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditUpdate, "category", category.ID, c.ClientIP(), map[string]interface{}{
		"name": category.Name,
		"icon": category.Icon,
	})

	h.show(c, http.StatusOK, CategoryForm{}, successBanner("Category updated successfully!"))
}

// Delete removes a custom category
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		status, b := errorBanner(c, err)
		h.show(c, status, CategoryForm{}, b)
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), userID, id); err != nil {
		status, b := errorBanner(c, err)
		h.show(c, status, CategoryForm{}, b)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditDelete, "category", id, c.ClientIP(), nil)

	h.show(c, http.StatusOK, CategoryForm{}, successBanner("Category deleted successfully!"))
}

func (h *CategoryHandler) show(c *gin.Context, status int, form CategoryForm, b banner) {
	v, err := loadViewer(c, h.userService)
	if err != nil {
		fail(c, err)
		return
	}
	ctx := c.Request.Context()

	categories, err := h.categoryService.ListVisible(ctx, v.User.ID)
	if err != nil {
		fail(c, err)
		return
	}
	month, err := h.reportService.CategorySpending(ctx, v.User.ID)
	if err != nil {
		fail(c, err)
		return
	}

	data := v.page("Categories", "categories", b)
	data["Rows"] = categoryRows(v.User.ID, categories, month)
	data["MonthTotal"] = month.Total
	data["Today"] = month.End
	data["Icons"] = models.CategoryIcons
	data["Form"] = form
	render(c, status, web.PageCategories, data)
}
