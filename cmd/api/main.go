package main

import (
	"context"
	"time"

	"github.com/kamaug/opshub-api/internal/application/service"
	"github.com/kamaug/opshub-api/internal/config"
	"github.com/kamaug/opshub-api/internal/infrastructure/database"
	"github.com/kamaug/opshub-api/internal/infrastructure/repository"
	"github.com/kamaug/opshub-api/internal/presentation/http/handler"
	"github.com/kamaug/opshub-api/internal/presentation/http/routes"
	"github.com/kamaug/opshub-api/pkg/logger"
	"github.com/kamaug/opshub-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize repositories
	quotationRepo := repository.NewQuotationRepository(db)
	quotationItemRepo := repository.NewQuotationItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceItemRepo := repository.NewInvoiceItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	purchaseItemRepo := repository.NewPurchaseItemRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize services. Settings comes first: quotations and invoices
	// read the labor tax rate from it so both apply the same convention.
	settingsService := service.NewSettingsService(settingsRepo, cfg.Finance)
	quotationService := service.NewQuotationService(quotationRepo, quotationItemRepo, customerRepo, settingsService)
	invoiceService := service.NewInvoiceService(invoiceRepo, invoiceItemRepo, quotationRepo, productRepo, customerRepo, paymentRepo, settingsService)
	productService := service.NewProductService(productRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, purchaseItemRepo, productRepo, supplierRepo)
	complaintService := service.NewComplaintService(complaintRepo, customerRepo)
	customerService := service.NewCustomerService(customerRepo, supplierRepo)
	dashboardService := service.NewDashboardService(analyticsRepo)

	var receiptPrinter printer.Printer
	switch cfg.Printer.Type {
	case "usb":
		receiptPrinter = printer.NewUSBPrinter(cfg.Printer.DevicePath)
	case "network":
		receiptPrinter = printer.NewNetworkPrinter(cfg.Printer.Address, 0)
	}
	receiptService := service.NewReceiptService(invoiceRepo, settingsService, receiptPrinter)

	// Initialize handlers
	handlers := &routes.Handlers{
		Quotation: handler.NewQuotationHandler(quotationService, invoiceService),
		Invoice:   handler.NewInvoiceHandler(invoiceService, receiptService),
		Product:   handler.NewProductHandler(productService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Complaint: handler.NewComplaintHandler(complaintService),
		Customer:  handler.NewCustomerHandler(customerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
	}

	// Sweep expired idempotency keys in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Warn().Err(err).Msg("idempotency key cleanup failed")
			}
		}
	}()

	router := routes.Setup(cfg, log, handlers, idempotencyRepo)

	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
