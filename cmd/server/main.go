package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/servex/backend/internal/application/audit"
	billingapp "github.com/servex/backend/internal/application/billing"
	commsapp "github.com/servex/backend/internal/application/comms"
	fleetapp "github.com/servex/backend/internal/application/fleet"
	freightapp "github.com/servex/backend/internal/application/freight"
	partnerapp "github.com/servex/backend/internal/application/partner"
	reportingapp "github.com/servex/backend/internal/application/reporting"
	settingsapp "github.com/servex/backend/internal/application/settings"
	tripapp "github.com/servex/backend/internal/application/trip"
	"github.com/servex/backend/internal/infrastructure/auth"
	"github.com/servex/backend/internal/infrastructure/cache"
	"github.com/servex/backend/internal/infrastructure/config"
	"github.com/servex/backend/internal/infrastructure/logger"
	"github.com/servex/backend/internal/infrastructure/persistence"
	"github.com/servex/backend/internal/infrastructure/telemetry"
	"github.com/servex/backend/internal/interfaces/http/handler"
	"github.com/servex/backend/internal/interfaces/http/middleware"
	"github.com/servex/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Servex Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Route GORM query logs through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize tracing (if enabled)
	if cfg.Telemetry.Enabled {
		tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
			Enabled:           cfg.Telemetry.Enabled,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			SamplingRatio:     cfg.Telemetry.SamplingRatio,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize tracer provider", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()

		if cfg.Telemetry.DBTraceEnabled {
			if err := db.EnableTracing(); err != nil {
				log.Warn("Failed to enable database tracing", zap.Error(err))
			}
		}
	}

	// Redis-backed currency cache. The currency service falls back to
	// database reads when the cache is nil.
	var currencyCache settingsapp.CurrencyCache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, currency cache disabled", zap.Error(err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		currencyCache = cache.NewRedisCurrencyCache(redisClient, cfg.Redis.CacheTTL, log)
	}

	// Initialize repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	rateRepo := persistence.NewGormClientRateRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	pieceRepo := persistence.NewGormPieceRepository(db.DB)
	tripRepo := persistence.NewGormTripRepository(db.DB)
	expenseRepo := persistence.NewGormTripExpenseRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	lineItemRepo := persistence.NewGormLineItemRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	driverRepo := persistence.NewGormDriverRepository(db.DB)
	complianceRepo := persistence.NewGormComplianceRepository(db.DB)
	auditLogRepo := persistence.NewGormAuditLogRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	whatsappLogRepo := persistence.NewGormWhatsAppLogRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	// Initialize application services
	auditService := auditapp.NewService(auditLogRepo, log)
	clientService := partnerapp.NewClientService(clientRepo, rateRepo, invoiceRepo, paymentRepo)
	shipmentService := freightapp.NewShipmentService(shipmentRepo, pieceRepo, clientRepo, auditService)
	assignmentService := freightapp.NewAssignmentService(shipmentRepo, pieceRepo, tripRepo, auditService)
	tripService := tripapp.NewService(tripRepo, expenseRepo, assignmentService, auditService)
	expenseService := tripapp.NewExpenseService(tripRepo, expenseRepo, auditService)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, lineItemRepo, paymentRepo, clientRepo, auditService)
	generationService := billingapp.NewGenerationService(tripRepo, shipmentRepo, clientRepo, rateRepo, invoiceRepo, log)
	paymentService := billingapp.NewPaymentService(paymentRepo, invoiceRepo, clientRepo, auditService)
	vehicleService := fleetapp.NewVehicleService(vehicleRepo, complianceRepo)
	driverService := fleetapp.NewDriverService(driverRepo, complianceRepo)
	complianceService := fleetapp.NewComplianceService(complianceRepo, vehicleRepo, driverRepo)
	notificationService := commsapp.NewNotificationService(notificationRepo)
	whatsappService := commsapp.NewWhatsAppLogService(whatsappLogRepo)
	currencyService := settingsapp.NewCurrencyService(settingsRepo, currencyCache)
	financeReportService := reportingapp.NewFinanceReportService(
		invoiceRepo,
		paymentRepo,
		clientRepo,
		tripRepo,
		shipmentRepo,
	)
	tripReportService := reportingapp.NewTripReportService(
		tripRepo,
		shipmentRepo,
		pieceRepo,
		invoiceRepo,
		paymentRepo,
		clientRepo,
		vehicleRepo,
		driverRepo,
	)

	// JWT verification. Tokens are issued by the identity service.
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	clientHandler := handler.NewClientHandler(clientService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService, assignmentService)
	tripHandler := handler.NewTripHandler(tripService, expenseService, generationService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	fleetHandler := handler.NewFleetHandler(vehicleService, driverService, complianceService)
	reportHandler := handler.NewReportHandler(financeReportService, tripReportService)
	commsHandler := handler.NewCommsHandler(notificationService, whatsappService)
	settingsHandler := handler.NewSettingsHandler(currencyService)
	auditHandler := handler.NewAuditHandler(auditService, shipmentService, expenseService, invoiceService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom binding validators
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. Tracing - OpenTelemetry spans (if enabled)
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication for all API routes
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	// Tenant context resolution (JWT claims take precedence over the header)
	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.Required = false
	tenantConfig.SkipPaths = append(tenantConfig.SkipPaths,
		"/api/v1/ping",
		"/api/v1/system/ping",
		"/api/v1/system/info",
	)
	tenantConfig.Logger = log
	r.Use(middleware.TenantMiddlewareWithConfig(tenantConfig))

	// Clients and rate history
	clientRoutes := router.NewDomainGroup("clients", "/clients")
	clientRoutes.POST("", clientHandler.Create)
	clientRoutes.GET("", clientHandler.List)
	clientRoutes.GET("/with-stats", clientHandler.ListWithStats)
	clientRoutes.GET("/:id", clientHandler.GetByID)
	clientRoutes.PUT("/:id", clientHandler.Update)
	clientRoutes.DELETE("/:id", clientHandler.Delete)
	clientRoutes.POST("/:id/rates", clientHandler.AddRate)
	clientRoutes.GET("/:id/rates", clientHandler.RateHistory)
	clientRoutes.GET("/:id/rates/current", clientHandler.GetCurrentRate)
	clientRoutes.GET("/:id/payments", paymentHandler.ListByClient)

	// Shipments and barcode scanning
	shipmentRoutes := router.NewDomainGroup("shipments", "/shipments")
	shipmentRoutes.POST("", shipmentHandler.Create)
	shipmentRoutes.GET("", shipmentHandler.List)
	shipmentRoutes.GET("/:id", shipmentHandler.GetByID)
	shipmentRoutes.PUT("/:id", shipmentHandler.Update)
	shipmentRoutes.DELETE("/:id", shipmentHandler.Delete)

	scanRoutes := router.NewDomainGroup("scan", "/scan")
	scanRoutes.POST("", shipmentHandler.Scan)
	scanRoutes.POST("/load", shipmentHandler.MarkLoaded)

	// Trips, expenses and invoice generation
	tripRoutes := router.NewDomainGroup("trips", "/trips")
	tripRoutes.POST("", tripHandler.Create)
	tripRoutes.GET("", tripHandler.List)
	tripRoutes.GET("/next-number", tripHandler.NextNumber)
	tripRoutes.GET("/:id", tripHandler.GetByID)
	tripRoutes.PUT("/:id", tripHandler.Update)
	tripRoutes.DELETE("/:id", tripHandler.Delete)
	tripRoutes.POST("/:id/close", tripHandler.Close)
	tripRoutes.POST("/:id/duplicate", tripHandler.Duplicate)
	tripRoutes.POST("/:id/shipments/:shipmentId", shipmentHandler.Assign)
	tripRoutes.DELETE("/:id/shipments/:shipmentId", shipmentHandler.Unassign)
	tripRoutes.POST("/:id/expenses", tripHandler.CreateExpense)
	tripRoutes.GET("/:id/expenses", tripHandler.ListExpenses)
	tripRoutes.PUT("/:id/expenses/:expenseId", tripHandler.UpdateExpense)
	tripRoutes.DELETE("/:id/expenses/:expenseId", tripHandler.DeleteExpense)
	tripRoutes.POST("/:id/generate-invoices", tripHandler.GenerateInvoices)
	tripRoutes.GET("/:id/history", auditHandler.TripHistory)

	// Invoices, line items and payments
	invoiceRoutes := router.NewDomainGroup("invoices", "/invoices")
	invoiceRoutes.POST("", invoiceHandler.Create)
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/:id", invoiceHandler.GetByID)
	invoiceRoutes.PUT("/:id", invoiceHandler.Update)
	invoiceRoutes.DELETE("/:id", invoiceHandler.Delete)
	invoiceRoutes.POST("/:id/line-items", invoiceHandler.AddLineItem)
	invoiceRoutes.GET("/:id/line-items", invoiceHandler.ListLineItems)
	invoiceRoutes.DELETE("/:id/line-items/:itemId", invoiceHandler.RemoveLineItem)
	invoiceRoutes.POST("/:id/email-sent", invoiceHandler.MarkEmailSent)
	invoiceRoutes.GET("/:id/payments", paymentHandler.ListByInvoice)

	paymentRoutes := router.NewDomainGroup("payments", "/payments")
	paymentRoutes.POST("", paymentHandler.Record)
	paymentRoutes.DELETE("/:id", paymentHandler.Delete)

	// Fleet: vehicles, drivers and compliance
	vehicleRoutes := router.NewDomainGroup("vehicles", "/vehicles")
	vehicleRoutes.POST("", fleetHandler.CreateVehicle)
	vehicleRoutes.GET("", fleetHandler.ListVehicles)
	vehicleRoutes.GET("/:id", fleetHandler.GetVehicle)
	vehicleRoutes.PUT("/:id", fleetHandler.UpdateVehicle)
	vehicleRoutes.DELETE("/:id", fleetHandler.DeleteVehicle)
	vehicleRoutes.GET("/:id/compliance", fleetHandler.VehicleCompliance)

	driverRoutes := router.NewDomainGroup("drivers", "/drivers")
	driverRoutes.POST("", fleetHandler.CreateDriver)
	driverRoutes.GET("", fleetHandler.ListDrivers)
	driverRoutes.GET("/:id", fleetHandler.GetDriver)
	driverRoutes.PUT("/:id", fleetHandler.UpdateDriver)
	driverRoutes.DELETE("/:id", fleetHandler.DeleteDriver)
	driverRoutes.GET("/:id/compliance", fleetHandler.DriverCompliance)

	complianceRoutes := router.NewDomainGroup("compliance", "/compliance")
	complianceRoutes.POST("", fleetHandler.CreateComplianceItem)
	complianceRoutes.GET("/reminders", fleetHandler.ComplianceReminders)
	complianceRoutes.GET("/board", fleetHandler.ComplianceBoard)
	complianceRoutes.PUT("/:id", fleetHandler.UpdateComplianceItem)
	complianceRoutes.DELETE("/:id", fleetHandler.DeleteComplianceItem)

	// Read-only reporting views
	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/statements", reportHandler.ClientStatements)
	reportRoutes.GET("/statements/:id/invoices", reportHandler.StatementInvoices)
	reportRoutes.GET("/overdue", reportHandler.OverdueInvoices)
	reportRoutes.GET("/financial-summary", reportHandler.FinancialSummary)
	reportRoutes.GET("/dashboard", reportHandler.DashboardStats)
	reportRoutes.GET("/trips", reportHandler.TripsWithStats)
	reportRoutes.GET("/trips/:id/summary", reportHandler.TripSummary)
	reportRoutes.GET("/trips/:id/parcels", reportHandler.TripParcels)
	reportRoutes.GET("/trips/:id/clients", reportHandler.TripClientsSummary)
	reportRoutes.GET("/trips/:id/worksheet", reportHandler.TripWorksheet)

	// Notifications and WhatsApp delivery logs
	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.POST("", commsHandler.CreateNotification)
	notificationRoutes.GET("", commsHandler.ListNotifications)
	notificationRoutes.GET("/unread-count", commsHandler.UnreadCount)
	notificationRoutes.POST("/read-all", commsHandler.MarkAllNotificationsRead)
	notificationRoutes.POST("/:id/read", commsHandler.MarkNotificationRead)
	notificationRoutes.POST("/:id/resolve", commsHandler.ResolveNotification)

	whatsappRoutes := router.NewDomainGroup("whatsapp-logs", "/whatsapp-logs")
	whatsappRoutes.POST("", commsHandler.CreateWhatsAppLog)
	whatsappRoutes.GET("", commsHandler.ListWhatsAppLogs)
	whatsappRoutes.PUT("/:id/status", commsHandler.UpdateWhatsAppStatus)

	// Tenant settings
	settingsRoutes := router.NewDomainGroup("settings", "/settings")
	settingsRoutes.GET("/currencies", settingsHandler.GetCurrencies)
	settingsRoutes.PUT("/currencies", settingsHandler.UpdateCurrencies)

	// Audit trail
	auditRoutes := router.NewDomainGroup("audit-logs", "/audit-logs")
	auditRoutes.GET("", auditHandler.List)
	auditRoutes.GET("/:table/:id", auditHandler.History)

	// System endpoints
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(clientRoutes).
		Register(shipmentRoutes).
		Register(scanRoutes).
		Register(tripRoutes).
		Register(invoiceRoutes).
		Register(paymentRoutes).
		Register(vehicleRoutes).
		Register(driverRoutes).
		Register(complianceRoutes).
		Register(reportRoutes).
		Register(notificationRoutes).
		Register(whatsappRoutes).
		Register(settingsRoutes).
		Register(auditRoutes).
		Register(systemRoutes)

	r.Setup()

	// Unauthenticated ping for load balancer checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
