package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-ledger/internal/application/service"
	"github.com/sangkips/pos-ledger/internal/config"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/internal/infrastructure/database"
	"github.com/sangkips/pos-ledger/internal/infrastructure/kvstore"
	"github.com/sangkips/pos-ledger/internal/infrastructure/operator"
	"github.com/sangkips/pos-ledger/internal/infrastructure/repository"
	"github.com/sangkips/pos-ledger/internal/presentation/http/handler"
	"github.com/sangkips/pos-ledger/internal/presentation/http/middleware"
	"github.com/sangkips/pos-ledger/internal/presentation/http/routes"
	"github.com/sangkips/pos-ledger/pkg/email"
	"github.com/sangkips/pos-ledger/pkg/printer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func newStore(cfg *config.Config, logger *zap.Logger) (domainRepo.KeyValueStore, error) {
	var store domainRepo.KeyValueStore
	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("using in-memory store; state is lost on restart")
		store = kvstore.NewMemoryStore()
	default:
		db, err := database.NewPostgresDB(context.Background(), &cfg.Database, cfg.App.Debug, logger)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db, logger); err != nil {
			return nil, err
		}
		store = kvstore.NewGormStore(db)
	}
	return kvstore.WithPrefix(cfg.Store.KeyPrefix, store), nil
}

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.EnvFileErr != nil {
		logger.Info("no .env file loaded, using environment only", zap.Error(cfg.EnvFileErr))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	costBasis, err := enum.ParseCostBasis(cfg.Reporting.CostBasis)
	if err != nil {
		logger.Fatal("invalid reporting cost basis", zap.Error(err))
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}

	// Initialize repositories
	ingredientRepo := repository.NewIngredientRepository(store, logger)
	productRepo := repository.NewProductRepository(store, logger)
	orderRepo := repository.NewOrderRepository(store, logger)
	saleRepo := repository.NewSaleRepository(store, logger)
	idempotencyRepo := repository.NewIdempotencyRepository(store, logger)

	// Operator channel
	var operatorOpts []operator.Option
	if cfg.SMTP.Enabled() {
		mailer := email.NewEmailService(email.EmailConfig{
			SMTPHost:     cfg.SMTP.Host,
			SMTPPort:     cfg.SMTP.Port,
			SMTPUsername: cfg.SMTP.Username,
			SMTPPassword: cfg.SMTP.Password,
			FromName:     cfg.SMTP.FromName,
			FromEmail:    cfg.SMTP.FromEmail,
			StoreName:    cfg.Printer.StoreName,
		})
		operatorOpts = append(operatorOpts, operator.WithEmail(mailer, cfg.SMTP.OperatorEmail))
	}
	operatorChannel := operator.NewChannel(logger, operatorOpts...)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		logger.Warn("failed to initialize printer, receipts will not be printed", zap.Error(err))
		thermalPrinter = printer.NewRecorder()
	}

	// Initialize services
	inventoryService := service.NewInventoryService(ingredientRepo, logger)
	catalogService := service.NewCatalogService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)
	saleService := service.NewSaleService(orderRepo, productRepo, ingredientRepo, saleRepo,
		operatorChannel, cfg.Inventory.EnforceSufficientStock, logger)
	reportService := service.NewReportService(saleRepo, productRepo, ingredientRepo, costBasis, logger)
	receiptService := service.NewReceiptService(thermalPrinter, saleRepo, entity.ReceiptHeader{
		StoreName: cfg.Printer.StoreName,
		Address:   cfg.Printer.Address2,
		Phone:     cfg.Printer.Phone,
	}, cfg.Printer.Width, logger)

	if cfg.App.SeedDemo {
		if err := service.SeedDemoData(context.Background(), inventoryService, catalogService, logger); err != nil {
			logger.Warn("failed to seed demo data", zap.Error(err))
		}
	}
	if n, err := idempotencyRepo.DeleteExpired(context.Background()); err == nil && n > 0 {
		logger.Info("expired idempotency keys removed", zap.Int("count", n))
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Health:     handler.NewHealthHandler(cfg.App.Name, receiptService),
		Ingredient: handler.NewIngredientHandler(inventoryService),
		Product:    handler.NewProductHandler(catalogService),
		Order:      handler.NewOrderHandler(orderService, saleService),
		Sale:       handler.NewSaleHandler(saleService, receiptService),
		Report:     handler.NewReportHandler(reportService),
		Operator:   handler.NewOperatorHandler(operatorChannel),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		Requests: cfg.RateLimit.Requests,
		Window:   time.Duration(cfg.RateLimit.Duration) * time.Second,
	})
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             logger,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("app", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("enforce_stock", cfg.Inventory.EnforceSufficientStock),
			zap.String("cost_basis", string(costBasis)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	operatorChannel.Wait()
}
