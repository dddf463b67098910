package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/money"
	"expensetracker/internal/pagination"
	"expensetracker/internal/services"
	"expensetracker/internal/web"
)

const dateLayout = "2006-01-02"

// ExpenseHandler handles the expenses page
type ExpenseHandler struct {
	userService     services.UserServicer
	categoryService services.CategoryServicer
	expenseService  services.ExpenseServicer
	auditService    services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(
	userService services.UserServicer,
	categoryService services.CategoryServicer,
	expenseService services.ExpenseServicer,
	auditService services.AuditServicer,
) *ExpenseHandler {
	return &ExpenseHandler{
		userService:     userService,
		categoryService: categoryService,
		expenseService:  expenseService,
		auditService:    auditService,
	}
}

// ExpenseForm represents the add and edit expense forms
type ExpenseForm struct {
	Category    string `form:"category" binding:"required,max=50"`
	Amount      string `form:"amount" binding:"required,money"`
	Date        string `form:"expense_date" binding:"required,datetime=2006-01-02"`
	Description string `form:"description" binding:"max=255"`
}

func (f ExpenseForm) input() (services.ExpenseInput, error) {
	amount, err := money.Parse(f.Amount)
	if err != nil {
		return services.ExpenseInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please enter a valid amount (up to 2 decimal places)")
	}
	date, err := time.Parse(dateLayout, f.Date)
	if err != nil {
		return services.ExpenseInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Expense date must be a valid date")
	}
	return services.ExpenseInput{
		Category:    f.Category,
		Amount:      amount,
		Date:        date,
		Description: f.Description,
	}, nil
}

// ExpenseFilterForm represents the query parameters of the expense list
type ExpenseFilterForm struct {
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Category string `form:"category" binding:"max=50"`
	Search   string `form:"q" binding:"max=100"`
}

func (f ExpenseFilterForm) filter() services.ExpenseFilter {
	filter := services.ExpenseFilter{Category: f.Category, Search: f.Search}
	if t, err := time.Parse(dateLayout, f.From); err == nil {
		filter.FromDate = &t
	}
	if t, err := time.Parse(dateLayout, f.To); err == nil {
		filter.ToDate = &t
	}
	return filter
}

// pageURL links to another page of the same filtered list.
func (f ExpenseFilterForm) pageURL(page int) string {
	q := url.Values{}
	for key, value := range map[string]string{"from": f.From, "to": f.To, "category": f.Category, "q": f.Search} {
		if value != "" {
			q.Set(key, value)
		}
	}
	q.Set("page", strconv.Itoa(page))
	return "/expenses?" + q.Encode()
}

// List renders the filtered, paginated expense list
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter ExpenseFilterForm
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		status, b := errorBanner(c, bindError(err))
		h.show(c, status, ExpenseFilterForm{}, pagination.PageRequest{}, ExpenseForm{}, b)
		return
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		page = pagination.PageRequest{}
	}
	h.show(c, http.StatusOK, filter, page, ExpenseForm{}, banner{})
}

// Create records a new expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var form ExpenseForm
	if err := c.ShouldBind(&form); err != nil {
		h.showError(c, form, bindError(err))
		return
	}
	in, err := form.input()
	if err != nil {
		h.showError(c, form, err)
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), userID, in)
	if err != nil {
		h.showError(c, form, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditCreate, "expense", expense.ID, c.ClientIP(), map[string]interface{}{
		"category": expense.Category,
		"amount":   expense.Amount.StringFixed(2),
		"date":     expense.ExpenseDate.Format(dateLayout),
	})

	h.show(c, http.StatusCreated, ExpenseFilterForm{}, pagination.PageRequest{}, ExpenseForm{}, successBanner("Expense added successfully!"))
}

// Update replaces an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		h.showError(c, ExpenseForm{}, err)
		return
	}

	var form ExpenseForm
	if err := c.ShouldBind(&form); err != nil {
		h.showError(c, ExpenseForm{}, bindError(err))
		return
	}
	in, err := form.input()
	if err != nil {
		h.showError(c, ExpenseForm{}, err)
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		h.showError(c, ExpenseForm{}, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditUpdate, "expense", expense.ID, c.ClientIP(), map[string]interface{}{
		"category": expense.Category,
		"amount":   expense.Amount.StringFixed(2),
		"date":     expense.ExpenseDate.Format(dateLayout),
	})

	h.show(c, http.StatusOK, ExpenseFilterForm{}, pagination.PageRequest{}, ExpenseForm{}, successBanner("Expense updated successfully!"))
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		fail(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		h.showError(c, ExpenseForm{}, err)
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), userID, id); err != nil {
		h.showError(c, ExpenseForm{}, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditDelete, "expense", id, c.ClientIP(), nil)

	h.show(c, http.StatusOK, ExpenseFilterForm{}, pagination.PageRequest{}, ExpenseForm{}, successBanner("Expense deleted successfully!"))
}

func (h *ExpenseHandler) showError(c *gin.Context, form ExpenseForm, err error) {
	status, b := errorBanner(c, err)
	h.show(c, status, ExpenseFilterForm{}, pagination.PageRequest{}, form, b)
}

func (h *ExpenseHandler) show(c *gin.Context, status int, filter ExpenseFilterForm, page pagination.PageRequest, form ExpenseForm, b banner) {
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
	result, err := h.expenseService.List(ctx, v.User.ID, page, filter.filter())
	if err != nil {
		fail(c, err)
		return
	}

	data := v.page("Expenses", "expenses", b)
	data["Categories"] = categories
	data["Page"] = result
	data["Filter"] = filter
	data["Form"] = form
	data["Today"] = time.Now().Format(dateLayout)
	data["PrevURL"] = ""
	data["NextURL"] = ""
	if result.HasPrev() {
		data["PrevURL"] = filter.pageURL(result.Page - 1)
	}
	if result.HasNext() {
		data["NextURL"] = filter.pageURL(result.Page + 1)
	}
	render(c, status, web.PageExpenses, data)
}
