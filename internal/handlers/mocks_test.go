package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"expensetracker/internal/config"
	"expensetracker/internal/logger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
	"expensetracker/internal/reporting"
	"expensetracker/internal/services"
	"expensetracker/internal/validator"
	"expensetracker/internal/web"
)

const (
	testUserID     = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"
	testCategoryID = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a6c"
	testExpenseID  = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a7d"
)

// --- mock user service ---

type mockUserService struct {
	registerFn       func(ctx context.Context, in services.RegisterInput) (*models.User, error)
	authenticateFn   func(ctx context.Context, login, password string) (*models.User, error)
	getByIDFn        func(ctx context.Context, id string) (*models.User, error)
	getSettingsFn    func(ctx context.Context, userID string) (*models.UserSettings, error)
	updateProfileFn  func(ctx context.Context, userID string, in services.ProfileInput) (*models.User, *models.UserSettings, error)
	changePasswordFn func(ctx context.Context, userID, current, newPassword, confirm string) error
}

func testUser() *models.User {
	return &models.User{
		Base:     models.Base{ID: testUserID, CreatedAt: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
	}
}

func (m *mockUserService) Register(ctx context.Context, in services.RegisterInput) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, in)
	}
	return testUser(), nil
}

func (m *mockUserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, login, password)
	}
	return testUser(), nil
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return testUser(), nil
}

func (m *mockUserService) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn(ctx, userID)
	}
	return models.DefaultSettings(userID), nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID string, in services.ProfileInput) (*models.User, *models.UserSettings, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, in)
	}
	return testUser(), models.DefaultSettings(userID), nil
}

func (m *mockUserService) ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, current, newPassword, confirm)
	}
	return nil
}

var _ services.UserServicer = (*mockUserService)(nil)

// --- mock category service ---

type mockCategoryService struct {
	listVisibleFn func(ctx context.Context, userID string) ([]models.Category, error)
	createFn      func(ctx context.Context, userID, name, icon string) (*models.Category, error)
	updateFn      func(ctx context.Context, userID, categoryID, name, icon string) (*models.Category, error)
	deleteFn      func(ctx context.Context, userID, categoryID string) error
}

func testCategories() []models.Category {
	owner := testUserID
	return []models.Category{
		{Base: models.Base{ID: "0190a1b2-0000-7000-8000-000000000001"}, Name: "Food & Dining", Icon: "fa-utensils", IsDefault: true},
		{Base: models.Base{ID: testCategoryID}, UserID: &owner, Name: "Pets", Icon: "fa-dog"},
	}
}

func (m *mockCategoryService) ListVisible(ctx context.Context, userID string) ([]models.Category, error) {
	if m.listVisibleFn != nil {
		return m.listVisibleFn(ctx, userID)
	}
	return testCategories(), nil
}

func (m *mockCategoryService) GetByID(_ context.Context, _, categoryID string) (*models.Category, error) {
	return &models.Category{Base: models.Base{ID: categoryID}}, nil
}

func (m *mockCategoryService) IsVisible(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

func (m *mockCategoryService) Create(ctx context.Context, userID, name, icon string) (*models.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, name, icon)
	}
	return &models.Category{Base: models.Base{ID: testCategoryID}, UserID: &userID, Name: name, Icon: icon}, nil
}

func (m *mockCategoryService) Update(ctx context.Context, userID, categoryID, name, icon string) (*models.Category, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, categoryID, name, icon)
	}
	return &models.Category{Base: models.Base{ID: categoryID}, UserID: &userID, Name: name, Icon: icon}, nil
}

func (m *mockCategoryService) Delete(ctx context.Context, userID, categoryID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, categoryID)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

// --- mock expense service ---

type mockExpenseService struct {
	createFn func(ctx context.Context, userID string, in services.ExpenseInput) (*models.Expense, error)
	updateFn func(ctx context.Context, userID, expenseID string, in services.ExpenseInput) (*models.Expense, error)
	deleteFn func(ctx context.Context, userID, expenseID string) error
	listFn   func(ctx context.Context, userID string, page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
}

func expenseFromInput(id, userID string, in services.ExpenseInput) *models.Expense {
	return &models.Expense{
		Base:        models.Base{ID: id},
		UserID:      userID,
		Category:    in.Category,
		Amount:      in.Amount,
		ExpenseDate: in.Date,
		Description: in.Description,
	}
}

func (m *mockExpenseService) Create(ctx context.Context, userID string, in services.ExpenseInput) (*models.Expense, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, in)
	}
	return expenseFromInput(testExpenseID, userID, in), nil
}

func (m *mockExpenseService) Update(ctx context.Context, userID, expenseID string, in services.ExpenseInput) (*models.Expense, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, expenseID, in)
	}
	return expenseFromInput(expenseID, userID, in), nil
}

func (m *mockExpenseService) Delete(ctx context.Context, userID, expenseID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, expenseID)
	}
	return nil
}

func (m *mockExpenseService) GetByID(_ context.Context, userID, expenseID string) (*models.Expense, error) {
	return &models.Expense{Base: models.Base{ID: expenseID}, UserID: userID}, nil
}

func (m *mockExpenseService) List(ctx context.Context, userID string, page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, page, filter)
	}
	page.Defaults()
	resp := pagination.NewPageResponse([]models.Expense{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockExpenseService) Recent(_ context.Context, _ string, _ int) ([]models.Expense, error) {
	return nil, nil
}

func (m *mockExpenseService) Count(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

// --- mock report service ---

type mockReportService struct {
	dashboardFn        func(ctx context.Context, userID string) (*services.Dashboard, error)
	graphsFn           func(ctx context.Context, userID string) (*services.Graphs, error)
	categorySpendingFn func(ctx context.Context, userID string) (*reporting.AggregatePeriod, error)
	profileStatsFn     func(ctx context.Context, userID string) (*services.ProfileStats, error)
}

func (m *mockReportService) Aggregate(_ context.Context, _ string, start, end time.Time) (*reporting.AggregatePeriod, error) {
	return &reporting.AggregatePeriod{Period: reporting.NewPeriod(start, end)}, nil
}

func (m *mockReportService) Dashboard(ctx context.Context, userID string) (*services.Dashboard, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx, userID)
	}
	return &services.Dashboard{}, nil
}

func (m *mockReportService) Graphs(ctx context.Context, userID string) (*services.Graphs, error) {
	if m.graphsFn != nil {
		return m.graphsFn(ctx, userID)
	}
	return &services.Graphs{}, nil
}

func (m *mockReportService) CategorySpending(ctx context.Context, userID string) (*reporting.AggregatePeriod, error) {
	if m.categorySpendingFn != nil {
		return m.categorySpendingFn(ctx, userID)
	}
	return &reporting.AggregatePeriod{}, nil
}

func (m *mockReportService) ProfileStats(ctx context.Context, userID string) (*services.ProfileStats, error) {
	if m.profileStatsFn != nil {
		return m.profileStatsFn(ctx, userID)
	}
	return &services.ProfileStats{}, nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

// --- mock audit service ---

type auditEntry struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
}

type mockAuditService struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (m *mockAuditService) Log(_ context.Context, userID, action, resourceType, resourceID, _ string, _ map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{userID, action, resourceType, resourceID})
}

func (m *mockAuditService) last(t *testing.T) auditEntry {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) == 0 {
		t.Fatal("expected an audit entry")
	}
	return m.entries[len(m.entries)-1]
}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- mock support service ---

type mockSupportService struct {
	submitFn func(ctx context.Context, userID, subject, message string) (*models.SupportMessage, error)
}

func (m *mockSupportService) Submit(ctx context.Context, userID, subject, message string) (*models.SupportMessage, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, userID, subject, message)
	}
	return &models.SupportMessage{Base: models.Base{ID: "msg-1"}, UserID: userID, Subject: subject, Message: message}, nil
}

func (m *mockSupportService) MarkDelivered(_ context.Context, _ string) error { return nil }

var _ services.SupportServicer = (*mockSupportService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	config.Set(&config.Config{Env: "test", JWTSecret: "handler-test-secret", JWTExpirationDur: time.Hour})
}

// newRouter returns an engine with the real page templates and the error
// page middleware.
func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	r := gin.New()
	r.HTMLRender = renderer
	r.Use(middleware.ErrorHandler())
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doPost(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d\nbody: %s", want, rec.Code, rec.Body.String())
	}
}

func assertBodyContains(t *testing.T, rec *httptest.ResponseRecorder, parts ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, p := range parts {
		if !strings.Contains(body, p) {
			t.Errorf("expected body to contain %q", p)
		}
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
