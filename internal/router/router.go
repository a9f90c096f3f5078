package router

import (
	"net/http"

	"github.com/ppanchal5698/expense-tracker/internal/config"
	"github.com/ppanchal5698/expense-tracker/internal/handler"
	"github.com/ppanchal5698/expense-tracker/internal/middleware"
	"github.com/ppanchal5698/expense-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	s := store.New(db)
	if cfg.App.MaxPageSize > 0 {
		s.MaxPageSize = cfg.App.MaxPageSize
	}

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(
		s,
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessExpireMinutes,
		cfg.JWT.RefreshExpireHours,
		cfg.Security.BcryptCost,
	)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.PUT("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))
	protected.POST("/profile/deactivate", handler.Deactivate(db))

	categoryHandler := handler.NewCategoryHandler(s)
	protected.POST("/categories", categoryHandler.Create)
	protected.GET("/categories", categoryHandler.List)
	protected.GET("/categories/:id", categoryHandler.Get)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	expenseHandler := handler.NewExpenseHandler(s, cfg.App)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.GET("/expenses/:id", expenseHandler.Get)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	analyticsHandler := handler.NewAnalyticsHandler(s)
	protected.GET("/analytics/breakdown", analyticsHandler.Breakdown)
	protected.GET("/analytics/summary", analyticsHandler.Summary)
	protected.GET("/analytics/trend", analyticsHandler.Trend)

	budgetHandler := handler.NewBudgetHandler(s)
	protected.POST("/budgets", budgetHandler.Create)
	protected.GET("/budgets", budgetHandler.List)
	protected.PUT("/budgets/:id", budgetHandler.Update)
	protected.DELETE("/budgets/:id", budgetHandler.Delete)
	protected.GET("/budgets/status", budgetHandler.Status)

	exportHandler := handler.NewExportHandler(s)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	auditHandler := handler.NewAuditHandler(db)
	protected.GET("/logs", auditHandler.List)

	return r
}
