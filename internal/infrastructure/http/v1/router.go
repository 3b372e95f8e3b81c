package v1

import (
	"github.com/gin-gonic/gin"

	"loomledger/internal/domain/auth"
	"loomledger/internal/domain/catalogs/product"
	"loomledger/internal/domain/catalogs/supervisor"
	"loomledger/internal/domain/catalogs/weaver"
	"loomledger/internal/domain/documents/receipt"
	"loomledger/internal/domain/reports"
	"loomledger/internal/infrastructure/http/v1/handlers"
	"loomledger/internal/infrastructure/http/v1/middleware"
	"loomledger/internal/infrastructure/storage/images"
	"loomledger/internal/infrastructure/storage/postgres"
	"loomledger/pkg/logger"
)

// RouterConfig holds everything the router needs. Services are built
// once in main and shared across requests.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Catalog services
	Products    *product.Service
	Supervisors *supervisor.Service
	Weavers     *weaver.Service

	// Receipts is the production receipt document service
	Receipts *receipt.Service

	// Reports builds the flat and pivot production reports
	Reports *reports.Service

	// Images stores product and weaver photos. Optional: when nil the
	// upload routes are not registered.
	Images *images.Store
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, baseHandler, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, baseHandler, cfg)
		registerReceiptRoutes(protected, baseHandler, cfg)
		registerReportRoutes(protected, baseHandler, cfg)
		registerUploadRoutes(protected, baseHandler, cfg)
		registerDashboardRoutes(protected, baseHandler, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	// Public auth endpoints (no JWT required)
	publicAuth := rg.Group("/auth")

	// Protected auth endpoints (JWT required)
	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers the product, supervisor and weaver
// catalogs.
func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	RegisterCatalogRoutes(rg.Group("/products"), handlers.NewProductHandler(base, cfg.Products))
	RegisterCatalogRoutes(rg.Group("/supervisors"), handlers.NewSupervisorHandler(base, cfg.Supervisors))
	RegisterCatalogRoutes(rg.Group("/weavers"), handlers.NewWeaverHandler(base, cfg.Weavers))
}

// registerReceiptRoutes registers production receipt endpoints.
func registerReceiptRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewReceiptHandler(base, cfg.Receipts)

	group := rg.Group("/receipts")
	group.GET("", middleware.RequirePermission(auth.PermReceiptRead), handler.List)
	group.GET("/:id", middleware.RequirePermission(auth.PermReceiptRead), handler.Get)
	group.POST("", middleware.RequirePermission(auth.PermReceiptCreate), handler.Create)
	group.PUT("/:id", middleware.RequirePermission(auth.PermReceiptCreate), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(auth.PermReceiptDelete), handler.Delete)
}

// registerReportRoutes registers report endpoints: the flat receipt
// report, the pivot table, Excel exports and range deletion.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewReportsHandler(base, cfg.Reports)

	group := rg.Group("/reports")
	read := middleware.RequirePermission(auth.PermReportRead)
	rangeDelete := middleware.RequirePermission(auth.PermReportRangeDelete)

	group.GET("/receipts", read, handler.ReceiptReport)
	group.GET("/receipts/export", read, handler.ExportReceipts)
	group.GET("/pivot", read, handler.Pivot)
	group.GET("/pivot/export", read, handler.ExportPivot)

	// Range deletion is a two-step flow: preview, then confirm.
	group.POST("/receipts/range", rangeDelete, handler.PreviewRangeDeletion)
	group.DELETE("/receipts/range", rangeDelete, handler.CommitRangeDeletion)
}

// registerUploadRoutes registers image upload endpoints.
func registerUploadRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Images == nil {
		return
	}

	handler := handlers.NewUploadHandler(base, cfg.Images)

	group := rg.Group("/uploads")
	group.POST("/image", middleware.RequirePermission(auth.PermUploadImage), handler.UploadImage)
	group.DELETE("/image", middleware.RequirePermission(auth.PermUploadImage), handler.DeleteImage)
}

// registerDashboardRoutes registers the dashboard stats endpoint.
func registerDashboardRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	handler := handlers.NewDashboardHandler(base, cfg.Products, cfg.Supervisors, cfg.Weavers, cfg.Receipts)

	rg.GET("/dashboard/stats", middleware.RequirePermission(auth.PermDashboardRead), handler.Stats)
}
