package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/bakeryops/backend/internal/application/catalog"
	financeapp "github.com/bakeryops/backend/internal/application/finance"
	identityapp "github.com/bakeryops/backend/internal/application/identity"
	inventoryapp "github.com/bakeryops/backend/internal/application/inventory"
	partnerapp "github.com/bakeryops/backend/internal/application/partner"
	reportapp "github.com/bakeryops/backend/internal/application/report"
	tradeapp "github.com/bakeryops/backend/internal/application/trade"
	"github.com/bakeryops/backend/internal/domain/identity"
	"github.com/bakeryops/backend/internal/infrastructure/auth"
	"github.com/bakeryops/backend/internal/infrastructure/config"
	"github.com/bakeryops/backend/internal/infrastructure/logger"
	"github.com/bakeryops/backend/internal/infrastructure/persistence"
	"github.com/bakeryops/backend/internal/interfaces/http/handler"
	"github.com/bakeryops/backend/internal/interfaces/http/middleware"
	"github.com/bakeryops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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

	log.Info("Starting Bakery Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	materialRepo := persistence.NewGormRawMaterialRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Transaction scopes for multi-aggregate operations
	tradeTxScope := persistence.NewGormTradeTransactionScope(db.DB)
	financeTxScope := persistence.NewGormFinanceTransactionScope(db.DB)
	inventoryTxScope := persistence.NewGormInventoryTransactionScope(db.DB)

	// Token blacklist backed by Redis when enabled, in-memory otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Token blacklist using Redis", zap.String("host", cfg.Redis.Host))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Token blacklist using in-memory store, revocations will not survive restarts")
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	productService := catalogapp.NewProductService(productRepo)
	customerService := partnerapp.NewCustomerService(customerRepo, saleRepo)
	salesService := tradeapp.NewSalesService(saleRepo, tradeTxScope)
	paymentService := financeapp.NewPaymentService(paymentRepo, financeTxScope)
	expenseService := financeapp.NewExpenseService(expenseRepo)
	warehouseService := inventoryapp.NewWarehouseService(materialRepo, movementRepo, inventoryTxScope)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, blacklist, log)
	reportService := reportapp.NewReportService(saleRepo, paymentRepo, expenseRepo, customerRepo, productRepo, materialRepo)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	customerHandler := handler.NewCustomerHandler(customerService)
	saleHandler := handler.NewSaleHandler(salesService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	reportHandler := handler.NewReportHandler(reportService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
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
	// 5. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	adminOnly := middleware.RequireRole(string(identity.RoleAdmin))
	accountantOrAdmin := middleware.RequireRole(string(identity.RoleAccountant))
	staff := middleware.RequireRole(string(identity.RoleSales), string(identity.RoleAccountant))

	// Authentication routes (login and refresh are public, the rest need a token)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// User management (admin only)
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.Use(adminOnly)
	identityRoutes.POST("/users", userHandler.Create)
	identityRoutes.GET("/users", userHandler.List)
	identityRoutes.GET("/users/:id", userHandler.GetByID)
	identityRoutes.PUT("/users/:id", userHandler.Update)
	identityRoutes.POST("/users/:id/reset-password", userHandler.ResetPassword)
	identityRoutes.POST("/users/:id/activate", userHandler.Activate)
	identityRoutes.POST("/users/:id/deactivate", userHandler.Deactivate)

	// Catalog (products)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", staff, productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", staff, productHandler.Update)
	catalogRoutes.PUT("/products/:id/stock", staff, productHandler.UpdateStock)
	catalogRoutes.DELETE("/products/:id", adminOnly, productHandler.Delete)

	// Partner (customers and their debt)
	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/customers", staff, customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/search", customerHandler.Search)
	partnerRoutes.GET("/customers/debtors", customerHandler.ListDebtors)
	partnerRoutes.GET("/customers/:id", customerHandler.GetByID)
	partnerRoutes.PUT("/customers/:id", staff, customerHandler.Update)
	partnerRoutes.DELETE("/customers/:id", adminOnly, customerHandler.Delete)

	// Trade (sales and returns)
	tradeRoutes := router.NewDomainGroup("trade", "/trade")
	tradeRoutes.POST("/sales", staff, saleHandler.Create)
	tradeRoutes.GET("/sales", saleHandler.List)
	tradeRoutes.GET("/sales/today", saleHandler.TodaysSummary)
	tradeRoutes.GET("/sales/:id", saleHandler.GetByID)
	tradeRoutes.POST("/sales/:id/returns", staff, saleHandler.ReturnItems)

	// Finance (payments and expenses)
	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.POST("/payments", staff, paymentHandler.Add)
	financeRoutes.GET("/payments", paymentHandler.List)
	financeRoutes.GET("/payments/:id", paymentHandler.GetByID)
	financeRoutes.POST("/expenses", accountantOrAdmin, expenseHandler.Create)
	financeRoutes.GET("/expenses", expenseHandler.List)
	financeRoutes.GET("/expenses/:id", expenseHandler.GetByID)
	financeRoutes.PUT("/expenses/:id", accountantOrAdmin, expenseHandler.Update)
	financeRoutes.DELETE("/expenses/:id", accountantOrAdmin, expenseHandler.Delete)

	// Inventory (raw materials warehouse)
	inventoryRoutes := router.NewDomainGroup("inventory", "/warehouse")
	inventoryRoutes.POST("/materials", staff, warehouseHandler.CreateMaterial)
	inventoryRoutes.GET("/materials", warehouseHandler.ListMaterials)
	inventoryRoutes.GET("/materials/low-stock", warehouseHandler.LowStock)
	inventoryRoutes.GET("/materials/:id", warehouseHandler.GetMaterial)
	inventoryRoutes.PUT("/materials/:id", staff, warehouseHandler.UpdateMaterial)
	inventoryRoutes.DELETE("/materials/:id", adminOnly, warehouseHandler.DeleteMaterial)
	inventoryRoutes.POST("/movements", staff, warehouseHandler.AddMovement)
	inventoryRoutes.GET("/movements", warehouseHandler.ListMovements)

	// Reports (accountant or admin)
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.Use(accountantOrAdmin)
	reportRoutes.GET("/dashboard", reportHandler.Dashboard)
	reportRoutes.GET("/monthly", reportHandler.Monthly)
	reportRoutes.GET("/monthly/expenses", reportHandler.MonthlyExpenses)

	// System routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(identityRoutes).
		Register(catalogRoutes).
		Register(partnerRoutes).
		Register(tradeRoutes).
		Register(financeRoutes).
		Register(inventoryRoutes).
		Register(reportRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

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
		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			body["pool"] = stats
		}
		c.JSON(http.StatusOK, body)
	}
}
