// Package server wires services, handlers and middleware into the gin
// router.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/handlers"
	"expensetracker/internal/messaging"
	"expensetracker/internal/middleware"
	"expensetracker/internal/services"
	"expensetracker/internal/web"
)

// Services bundles the business logic the router exposes.
type Services struct {
	Users      services.UserServicer
	Categories services.CategoryServicer
	Expenses   services.ExpenseServicer
	Reports    services.ReportServicer
	Audit      services.AuditServicer
	Support    services.SupportServicer
}

// NewServices builds every service over db. now is the reporting clock;
// publisher may be nil when no broker is configured.
func NewServices(db *gorm.DB, publisher messaging.Publisher, defaultCurrency string, now func() time.Time) *Services {
	categories := services.NewCategoryService(db)
	expenses := services.NewExpenseService(db, categories)
	return &Services{
		Users:      services.NewUserService(db, defaultCurrency),
		Categories: categories,
		Expenses:   expenses,
		Reports:    services.NewReportService(db, expenses, now),
		Audit:      services.NewAuditService(db),
		Support:    services.NewSupportService(db, publisher),
	}
}

// NewRouter builds the gin engine serving every page. health may be nil.
func NewRouter(svc *Services, health handlers.Pinger) (*gin.Engine, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	authHandler := handlers.NewAuthHandler(svc.Users, svc.Audit)
	homeHandler := handlers.NewHomeHandler(svc.Users, svc.Categories, svc.Reports)
	graphsHandler := handlers.NewGraphsHandler(svc.Users, svc.Categories, svc.Reports)
	categoryHandler := handlers.NewCategoryHandler(svc.Users, svc.Categories, svc.Reports, svc.Audit)
	expenseHandler := handlers.NewExpenseHandler(svc.Users, svc.Categories, svc.Expenses, svc.Audit)
	profileHandler := handlers.NewProfileHandler(svc.Users, svc.Categories, svc.Reports, svc.Audit)
	helpHandler := handlers.NewHelpHandler(svc.Users, svc.Support, svc.Audit)

	router := gin.New()
	router.HTMLRender = renderer
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CSRF())

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	})

	router.GET("/health", handlers.Health(health))

	// Public routes
	guest := router.Group("/")
	guest.Use(middleware.RedirectIfAuthenticated())
	guest.GET("/login", authHandler.ShowLogin)
	guest.POST("/login", authHandler.Login)
	guest.GET("/register", authHandler.ShowRegister)
	guest.POST("/register", authHandler.Register)

	router.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/", homeHandler.Show)

	protected.GET("/graphs", graphsHandler.Show)
	protected.GET("/graphs/export/:format", graphsHandler.Export)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.POST("/:id/edit", categoryHandler.Update)
	categories.POST("/:id/delete", categoryHandler.Delete)

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.POST("/:id/edit", expenseHandler.Update)
	expenses.POST("/:id/delete", expenseHandler.Delete)

	protected.GET("/profile", profileHandler.Show)
	protected.POST("/profile", profileHandler.Update)
	protected.POST("/profile/password", profileHandler.ChangePassword)

	protected.GET("/help", helpHandler.Show)
	protected.POST("/help", helpHandler.Contact)
	protected.GET("/about", helpHandler.About)

	return router, nil
}
