package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/reporting"
	"expensetracker/internal/services"
)

func setupCategoryRouter(t *testing.T, categories *mockCategoryService, reports *mockReportService, audit *mockAuditService) *gin.Engine {
	handler := NewCategoryHandler(&mockUserService{}, categories, reports, audit)
	r := newRouter(t)
	r.Use(injectUserID(testUserID))
	r.GET("/categories", handler.List)
	r.POST("/categories", handler.Create)
	r.POST("/categories/:id/edit", handler.Update)
	r.POST("/categories/:id/delete", handler.Delete)
	return r
}

func TestCategoryHandler_List(t *testing.T) {
	reports := &mockReportService{
		categorySpendingFn: func(context.Context, string) (*reporting.AggregatePeriod, error) {
			agg := reporting.AggregatePeriod{
				Total: dec("400"),
				Count: 3,
				ByCategory: reporting.CategoryBreakdown{
					{Category: "Pets", Total: dec("100"), Count: 1},
					{Category: "Food & Dining", Total: dec("300"), Count: 2},
				},
			}
			return &agg, nil
		},
	}
	r := setupCategoryRouter(t, &mockCategoryService{}, reports, &mockAuditService{})

	rec := doGet(r, "/categories")

	assertStatus(t, rec, http.StatusOK)
	assertBodyContains(t, rec,
		"Pets",
		"₹ 400.00",
		"₹ 100.00 · 1 expenses · 25.0%",
		"₹ 300.00 · 2 expenses · 75.0%",
		"/categories/"+testCategoryID+"/delete",
		"Default",
	)
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotName, gotIcon string
		categories := &mockCategoryService{
			createFn: func(_ context.Context, userID, name, icon string) (*models.Category, error) {
				gotName, gotIcon = name, icon
				return &models.Category{Base: models.Base{ID: testCategoryID}, UserID: &userID, Name: name, Icon: icon}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupCategoryRouter(t, categories, &mockReportService{}, audit)

		rec := doPost(r, "/categories", url.Values{"category_name": {"Pets"}, "category_icon": {"fa-dog"}})

		assertStatus(t, rec, http.StatusCreated)
		assertBodyContains(t, rec, "added successfully!")
		if gotName != "Pets" || gotIcon != "fa-dog" {
			t.Errorf("unexpected create args: %q %q", gotName, gotIcon)
		}
		if e := audit.last(t); e.Action != services.AuditCreate || e.ResourceType != "category" {
			t.Errorf("unexpected audit entry: %+v", e)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		categories := &mockCategoryService{
			createFn: func(context.Context, string, string, string) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategory
			},
		}
		r := setupCategoryRouter(t, categories, &mockReportService{}, &mockAuditService{})

		rec := doPost(r, "/categories", url.Values{"category_name": {"pets"}, "category_icon": {"fa-dog"}})

		assertStatus(t, rec, http.StatusConflict)
		assertBodyContains(t, rec, "Category already exists", `value="pets"`)
	})

	t.Run("missing_name", func(t *testing.T) {
		r := setupCategoryRouter(t, &mockCategoryService{}, &mockReportService{}, &mockAuditService{})

		rec := doPost(r, "/categories", url.Values{"category_icon": {"fa-dog"}})

		assertStatus(t, rec, http.StatusBadRequest)
		assertBodyContains(t, rec, "Category name is required")
	})

	t.Run("unknown_icon", func(t *testing.T) {
		called := false
		categories := &mockCategoryService{
			createFn: func(context.Context, string, string, string) (*models.Category, error) {
				called = true
				return nil, nil
			},
		}
		r := setupCategoryRouter(t, categories, &mockReportService{}, &mockAuditService{})

		rec := doPost(r, "/categories", url.Values{"category_name": {"Pets"}, "category_icon": {"fa-skull"}})

		assertStatus(t, rec, http.StatusBadRequest)
		assertBodyContains(t, rec, "Please choose one of the offered icons")
		if called {
			t.Error("service must not be called with an unknown icon")
		}
	})
}

func TestCategoryHandler_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotID, gotName string
		categories := &mockCategoryService{
			updateFn: func(_ context.Context, userID, id, name, icon string) (*models.Category, error) {
				gotID, gotName = id, name
				return &models.Category{Base: models.Base{ID: id}, UserID: &userID, Name: name, Icon: icon}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupCategoryRouter(t, categories, &mockReportService{}, audit)

		rec := doPost(r, "/categories/"+testCategoryID+"/edit", url.Values{"category_name": {"Animals"}, "category_icon": {"fa-dog"}})

		assertStatus(t, rec, http.StatusOK)
		assertBodyContains(t, rec, "Category updated successfully!")
		if gotID != testCategoryID || gotName != "Animals" {
			t.Errorf("unexpected update args: %q %q", gotID, gotName)
		}
		if e := audit.last(t); e.Action != services.AuditUpdate || e.ResourceID != testCategoryID {
			t.Errorf("unexpected audit entry: %+v", e)
		}
	})

	t.Run("default_category", func(t *testing.T) {
		categories := &mockCategoryService{
			updateFn: func(context.Context, string, string, string, string) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotEditable
			},
		}
		r := setupCategoryRouter(t, categories, &mockReportService{}, &mockAuditService{})

		rec := doPost(r, "/categories/"+testCategoryID+"/edit", url.Values{"category_name": {"Food"}, "category_icon": {"fa-utensils"}})

		assertStatus(t, rec, http.StatusForbidden)
		assertBodyContains(t, rec, "Default categories cannot be changed")
	})
}

func TestCategoryHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotID string
		categories := &mockCategoryService{
			deleteFn: func(_ context.Context, _, id string) error {
				gotID = id
				return nil
			},
		}
		audit := &mockAuditService{}
		r := setupCategoryRouter(t, categories, &mockReportService{}, audit)

		rec := doPost(r, "/categories/"+testCategoryID+"/delete", url.Values{})

		assertStatus(t, rec, http.StatusOK)
		assertBodyContains(t, rec, "Category deleted successfully!")
		if gotID != testCategoryID {
			t.Errorf("expected delete of %s, got %s", testCategoryID, gotID)
		}
		if e := audit.last(t); e.Action != services.AuditDelete {
			t.Errorf("unexpected audit entry: %+v", e)
		}
	})

	t.Run("default_category", func(t *testing.T) {
		categories := &mockCategoryService{
			deleteFn: func(context.Context, string, string) error {
				return apperrors.ErrCategoryNotEditable
			},
		}
		r := setupCategoryRouter(t, categories, &mockReportService{}, &mockAuditService{})

		rec := doPost(r, "/categories/"+testCategoryID+"/delete", url.Values{})

		assertStatus(t, rec, http.StatusForbidden)
		assertBodyContains(t, rec, "Default categories cannot be changed")
	})

	t.Run("invalid_id", func(t *testing.T) {
		called := false
		categories := &mockCategoryService{
			deleteFn: func(context.Context, string, string) error {
				called = true
				return nil
			},
		}
		r := setupCategoryRouter(t, categories, &mockReportService{}, &mockAuditService{})

		rec := doPost(r, "/categories/not-a-uuid/delete", url.Values{})

		assertStatus(t, rec, http.StatusBadRequest)
		assertBodyContains(t, rec, "Invalid id")
		if called {
			t.Error("service must not be called with an invalid id")
		}
	})
}
