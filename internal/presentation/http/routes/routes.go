package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-ledger/internal/config"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/internal/presentation/http/handler"
	"github.com/sangkips/pos-ledger/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health     *handler.HealthHandler
	Ingredient *handler.IngredientHandler
	Product    *handler.ProductHandler
	Order      *handler.OrderHandler
	Sale       *handler.SaleHandler
	Report     *handler.ReportHandler
	Operator   *handler.OperatorHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Health)

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	v1.Use(middleware.SingleWriter())
	{
		registerIngredientRoutes(v1, h)
		registerProductRoutes(v1, h)
		registerOrderRoutes(v1, h)
		registerSaleRoutes(v1, h, deps, log)
		registerReportRoutes(v1, h)

		v1.GET("/operator/warnings", h.Operator.Warnings)
	}

	return router
}

func registerIngredientRoutes(v1 *gin.RouterGroup, h *Handlers) {
	ingredients := v1.Group("/ingredients")
	{
		ingredients.GET("", h.Ingredient.List)
		ingredients.POST("", h.Ingredient.Create)
		ingredients.GET("/low-stock", h.Ingredient.LowStock)
		ingredients.GET("/:id", h.Ingredient.Get)
		ingredients.PUT("/:id", h.Ingredient.Update)
		ingredients.DELETE("/:id", h.Ingredient.Delete)
		ingredients.POST("/:id/adjust", h.Ingredient.Adjust)
	}
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	order := v1.Group("/order")
	{
		order.GET("", h.Order.Current)
		order.DELETE("", h.Order.Reset)
		order.POST("/items", h.Order.AddItem)
		order.PUT("/items/:lineId", h.Order.UpdateItem)
		order.DELETE("/items/:lineId", h.Order.RemoveItem)
		order.PUT("/discount", h.Order.ApplyDiscount)
		order.GET("/availability", h.Order.Availability)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps, log *zap.Logger) {
	sales := v1.Group("/sales")
	{
		sales.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  log,
		}), h.Sale.Finalize)
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.GET("/:id/receipt", h.Sale.Receipt)
		sales.POST("/:id/print", h.Sale.Print)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/sales-summary", h.Report.SalesSummary)
		reports.GET("/inventory-status", h.Report.InventoryStatus)
		reports.GET("/profit-by-product", h.Report.ProfitByProduct)
	}
}
