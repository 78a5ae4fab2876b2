package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockroom/backend/internal/application/catalog"
	offerapp "github.com/stockroom/backend/internal/application/offer"
	reportapp "github.com/stockroom/backend/internal/application/report"
	tradeapp "github.com/stockroom/backend/internal/application/trade"
	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stockroom/backend/internal/infrastructure/event"
	"github.com/stockroom/backend/internal/infrastructure/logger"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
	"github.com/stockroom/backend/internal/interfaces/http/handler"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
	"github.com/stockroom/backend/internal/interfaces/http/router"
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
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting stockroom backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Seed demo data when enabled (rejected by config validation in production)
	if cfg.Seed.Enabled {
		if err := persistence.NewSeeder(db.DB, log).Run(context.Background()); err != nil {
			log.Fatal("Failed to seed demo data", zap.Error(err))
		}
	}

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	offerRepo := persistence.NewGormOfferRepository(db.DB)
	orderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	reportRepo := persistence.NewGormSalesReportRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Event bus wiring: shipments and restocks raise events that
	// trigger offer availability refresh.
	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	supplierService := catalogapp.NewSupplierService(supplierRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, supplierRepo)
	productService.SetEventPublisher(eventBus)
	availabilityService := offerapp.NewAvailabilityService(offerRepo, productRepo, log)
	offerService := offerapp.NewOfferService(offerRepo, productRepo, availabilityService)
	orderService := tradeapp.NewSalesOrderService(orderRepo, productRepo, offerRepo, availabilityService, log)
	orderService.SetEventPublisher(eventBus)
	fulfillmentService := tradeapp.NewFulfillmentService(txScope, log)
	fulfillmentService.SetEventPublisher(eventBus)
	reportService := reportapp.NewReportService(reportRepo)

	// Subscribe availability refresh to stock-changing events
	eventBus.Subscribe(offerapp.NewOrderShippedHandler(availabilityService, offerRepo, log))
	eventBus.Subscribe(offerapp.NewProductRestockedHandler(availabilityService, log))

	// Reconcile derived availability flags against live stock on boot.
	if changed, err := availabilityService.RefreshAll(context.Background()); err != nil {
		log.Warn("Startup availability reconcile failed", zap.Error(err))
	} else if changed > 0 {
		log.Info("Startup availability reconcile applied changes", zap.Int("offers_changed", changed))
	}

	// Handlers
	supplierHandler := handler.NewSupplierHandler(supplierService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	offerHandler := handler.NewOfferHandler(offerService)
	orderHandler := handler.NewSalesOrderHandler(orderService, fulfillmentService)
	reportHandler := handler.NewReportHandler(reportService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Catalog domain (suppliers, categories, products)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/suppliers", supplierHandler.Create)
	catalogRoutes.GET("/suppliers", supplierHandler.List)
	catalogRoutes.GET("/suppliers/:id", supplierHandler.GetByID)
	catalogRoutes.PUT("/suppliers/:id/contact", supplierHandler.UpdateContact)
	catalogRoutes.POST("/categories", categoryHandler.Create)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.POST("/products/:id/restock", productHandler.Restock)
	catalogRoutes.PUT("/products/:id/prices", productHandler.UpdatePrices)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)
	r.Register(catalogRoutes)

	// Offer domain (bundles with derived availability)
	offerRoutes := router.NewDomainGroup("offer", "/offers")
	offerRoutes.POST("", offerHandler.Compose)
	offerRoutes.GET("", offerHandler.List)
	offerRoutes.GET("/:id", offerHandler.GetByID)
	offerRoutes.DELETE("/:id", offerHandler.Delete)
	r.Register(offerRoutes)

	// Trade domain (orders and fulfillment)
	tradeRoutes := router.NewDomainGroup("trade", "/trade")
	tradeRoutes.POST("/orders", orderHandler.Place)
	tradeRoutes.GET("/orders", orderHandler.List)
	tradeRoutes.GET("/orders/pending", orderHandler.ListPending)
	tradeRoutes.GET("/orders/:id", orderHandler.GetByID)
	tradeRoutes.POST("/orders/:id/ship", orderHandler.Ship)
	tradeRoutes.POST("/orders/ship-batch", orderHandler.ShipBatch)
	r.Register(tradeRoutes)

	// Report domain (aggregations over shipped orders)
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/profit-summary", reportHandler.ProfitSummary)
	reportRoutes.GET("/shipped-orders", reportHandler.ShippedOrders)
	reportRoutes.GET("/revenue-by-product", reportHandler.RevenueByProduct)
	r.Register(reportRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

// healthHandler reports liveness including database connectivity
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
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
