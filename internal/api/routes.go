package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/api/handlers"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/services"
)

// SetupRouter wires every route of the service. The frontend is served
// from FRONTEND_DIST_PATH when that directory exists.
func SetupRouter(db *gorm.DB, auth *services.AuthService, reports *services.ReportService, snapshots *services.SnapshotService, exports *services.ExportService, imports *services.ImportService) *gin.Engine {
	router := gin.Default()
	router.Use(MetricsMiddleware())

	frontendPath := os.Getenv("FRONTEND_DIST_PATH")
	serveFrontend := frontendPath != "" && dirExists(frontendPath)

	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "x-session-token"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	authHandler := handlers.NewAuthHandler(auth)
	trendHandler := handlers.NewTrendHandler(reports, snapshots)
	dashboardHandler := handlers.NewDashboardHandler(reports)
	txHandler := handlers.NewTransactionHandler(db, reports, imports)
	insuranceHandler := handlers.NewInsuranceHandler(db, reports)
	userHandler := handlers.NewUserHandler(auth)
	exportHandler := handlers.NewExportHandler(exports)

	api := router.Group("/api")
	{
		api.POST("/auth/login", LoginRateLimit(), authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		authorized := api.Group("")
		authorized.Use(AuthRequired(auth))
		{
			authorized.GET("/auth/me", func(c *gin.Context) {
				authHandler.Me(c, SessionFromContext(c).UserID)
			})

			// Trend series
			authorized.GET("/income-trends/:year/:month", trendHandler.IncomeTrend)
			authorized.GET("/trends/monthly-revenue", trendHandler.MonthlyRevenue)
			authorized.GET("/patient-volume/period/:year/:month", trendHandler.PatientVolume)
			authorized.GET("/snapshots", trendHandler.SnapshotHistory)

			// Dashboard aggregations
			authorized.GET("/dashboard/summary", dashboardHandler.Summary)
			authorized.GET("/departments/breakdown", dashboardHandler.DepartmentBreakdown)
			authorized.GET("/expenses/breakdown", dashboardHandler.ExpenseBreakdown)
			authorized.GET("/departments", txHandler.Departments)

			// Transactions and visit tallies
			authorized.GET("/transactions", txHandler.List)
			authorized.POST("/transactions", func(c *gin.Context) {
				txHandler.Create(c, SessionFromContext(c).Username)
			})
			authorized.DELETE("/transactions/:id", txHandler.Delete)
			authorized.POST("/imports/transactions", func(c *gin.Context) {
				txHandler.Import(c, SessionFromContext(c).Username)
			})
			authorized.POST("/patient-volume", txHandler.RecordVisits)

			// Insurance
			authorized.GET("/insurance-claims", insuranceHandler.ListClaims)
			authorized.POST("/insurance-claims", insuranceHandler.CreateClaim)
			authorized.PATCH("/insurance-claims/:id/status", insuranceHandler.UpdateClaimStatus)
			authorized.GET("/insurance-payments", insuranceHandler.ListPayments)
			authorized.POST("/insurance-payments", insuranceHandler.CreatePayment)
			authorized.GET("/insurance-balances", insuranceHandler.Balances)
			authorized.GET("/insurance-providers", insuranceHandler.Providers)

			// Exports
			authorized.GET("/exports/transactions.csv", exportHandler.TransactionsCSV)
			authorized.GET("/exports/transactions.xlsx", exportHandler.TransactionsXLSX)
			authorized.GET("/exports/monthly-report", exportHandler.MonthlyReport)

			// User management (admin only)
			admin := authorized.Group("/users")
			admin.Use(AdminRequired())
			{
				admin.GET("", userHandler.List)
				admin.POST("", userHandler.Create)
				admin.PUT("/:id", userHandler.Update)
				admin.DELETE("/:id", func(c *gin.Context) {
					userHandler.Delete(c, SessionFromContext(c).UserID)
				})
			}
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if serveFrontend {
		indexPath := filepath.Join(frontendPath, "index.html")

		router.Static("/assets", filepath.Join(frontendPath, "assets"))

		router.GET("/", func(c *gin.Context) {
			c.File(indexPath)
		})

		// SPA fallback - serve index.html for all non-API routes
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if strings.HasPrefix(path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.File(indexPath)
		})
	}

	return router
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
