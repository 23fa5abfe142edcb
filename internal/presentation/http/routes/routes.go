package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kamaug/opshub-api/internal/config"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/internal/presentation/http/handler"
	"github.com/kamaug/opshub-api/internal/presentation/http/middleware"
	"github.com/kamaug/opshub-api/pkg/logger"
)

// Handlers groups all HTTP handlers for route registration
type Handlers struct {
	Quotation *handler.QuotationHandler
	Invoice   *handler.InvoiceHandler
	Product   *handler.ProductHandler
	Purchase  *handler.PurchaseHandler
	Complaint *handler.ComplaintHandler
	Customer  *handler.CustomerHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
}

// Setup configures the router with all middleware and routes
func Setup(cfg *config.Config, log *logger.Logger, handlers *Handlers, idempotencyRepo repository.IdempotencyRepository) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	rlCfg := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Duration > 0 {
		rlCfg.RequestsPerSecond = float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration)
		rlCfg.BurstSize = cfg.RateLimit.Requests
	}
	rateLimiter := middleware.NewClientRateLimiter(rlCfg)
	router.Use(rateLimiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: idempotencyRepo}))

	quotations := v1.Group("/quotations")
	{
		quotations.POST("", handlers.Quotation.Create)
		quotations.GET("", handlers.Quotation.List)
		quotations.GET("/:id", handlers.Quotation.Get)
		quotations.PATCH("/:id/status", handlers.Quotation.UpdateStatus)
		quotations.POST("/:id/convert", handlers.Quotation.Convert)
		quotations.DELETE("/:id", handlers.Quotation.Delete)
	}

	invoices := v1.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.Create)
		invoices.GET("", handlers.Invoice.List)
		invoices.GET("/due", handlers.Invoice.ListDue)
		invoices.GET("/:id", handlers.Invoice.Get)
		invoices.POST("/:id/payments", handlers.Invoice.RecordPayment)
		invoices.GET("/:id/payments", handlers.Invoice.ListPayments)
		invoices.PATCH("/:id/status", handlers.Invoice.UpdateStatus)
		invoices.GET("/:id/receipt", handlers.Invoice.Receipt)
		invoices.POST("/:id/print", handlers.Invoice.Print)
	}

	products := v1.Group("/products")
	{
		products.POST("", handlers.Product.Create)
		products.GET("", handlers.Product.List)
		products.GET("/low-stock", handlers.Product.ListLowStock)
		products.GET("/:id", handlers.Product.Get)
		products.PUT("/:id", handlers.Product.Update)
		products.DELETE("/:id", handlers.Product.Delete)
	}

	purchases := v1.Group("/purchases")
	{
		purchases.POST("", handlers.Purchase.Create)
		purchases.GET("", handlers.Purchase.List)
		purchases.GET("/:id", handlers.Purchase.Get)
		purchases.PATCH("/:id/status", handlers.Purchase.UpdateStatus)
	}

	complaints := v1.Group("/complaints")
	{
		complaints.POST("", handlers.Complaint.Create)
		complaints.GET("", handlers.Complaint.List)
		complaints.GET("/:id", handlers.Complaint.Get)
		complaints.PATCH("/:id/status", handlers.Complaint.UpdateStatus)
	}

	customers := v1.Group("/customers")
	{
		customers.POST("", handlers.Customer.Create)
		customers.GET("", handlers.Customer.List)
		customers.GET("/:id", handlers.Customer.Get)
		customers.PUT("/:id", handlers.Customer.Update)
		customers.DELETE("/:id", handlers.Customer.Delete)
	}

	suppliers := v1.Group("/suppliers")
	{
		suppliers.POST("", handlers.Customer.CreateSupplier)
		suppliers.GET("", handlers.Customer.ListSuppliers)
		suppliers.PUT("/:id", handlers.Customer.UpdateSupplier)
		suppliers.DELETE("/:id", handlers.Customer.DeleteSupplier)
	}

	v1.GET("/dashboard", handlers.Dashboard.GetStats)

	settings := v1.Group("/settings")
	{
		settings.GET("", handlers.Settings.Get)
		settings.PUT("", handlers.Settings.Update)
	}

	return router
}
