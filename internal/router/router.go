package router

import (
	"time"

	"sellerhub/internal/config"
	"sellerhub/internal/handler"
	"sellerhub/internal/infra"
	"sellerhub/internal/middleware"
	"sellerhub/internal/repository"
	"sellerhub/internal/service"
	"sellerhub/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mediaCB *infra.Breaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mediaClient := infra.NewMediaClient(cfg.MediaProxyURL)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, storeRepo, cfg)
	storeSvc := service.NewStoreService(storeRepo)
	productSvc := service.NewProductService(productRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo)
	reviewSvc := service.NewReviewService(reviewRepo)
	analyticsSvc := service.NewAnalyticsService(storeRepo, productRepo, saleRepo, reviewRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	storeH := handler.NewStoreHandler(storeSvc)
	productH := handler.NewProductHandler(productSvc)
	saleH := handler.NewSaleHandler(saleSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	mediaH := handler.NewMediaHandler(mediaClient, mediaCB, productSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc, dispatcher, rdb,
		time.Duration(cfg.MetricsCacheTTLSeconds)*time.Second)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mediaCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", middleware.LoginRateLimiter(), authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — every tenant is resolved from token claims
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	supplier := middleware.RequireRole("supplier", "admin")
	v1 := r.Group("/v1", jwtMW)
	{
		store := v1.Group("/store", supplier)
		{
			store.GET("", storeH.GetProfile)
			store.PUT("", storeH.UpdateProfile)
		}

		products := v1.Group("/products", supplier)
		{
			products.POST("", productH.Create)
			products.GET("", productH.List)
			products.GET("/:id", productH.Get)
			products.PUT("/:id", productH.Update)
			products.DELETE("/:id", productH.Archive)
			products.POST("/:id/image", mediaH.UploadProductImage)
		}

		sales := v1.Group("/sales", supplier)
		{
			sales.POST("", saleH.Record)
			sales.GET("", saleH.List)
			sales.PATCH("/:id", saleH.Correct)
			sales.DELETE("/:id", saleH.Delete)
		}

		reviews := v1.Group("/reviews", supplier)
		{
			reviews.POST("", reviewH.Create)
			reviews.GET("", reviewH.ListRecent)
		}

		analytics := v1.Group("/analytics", supplier)
		{
			analytics.GET("/metrics", analyticsH.Metrics)
			analytics.GET("/trend", analyticsH.Trend)
			analytics.GET("/trend/hourly", analyticsH.HourlyTrend)
			analytics.GET("/rankings", analyticsH.Rankings)
			analytics.GET("/inventory", analyticsH.Inventory)
			analytics.GET("/profitability", analyticsH.Profitability)
			analytics.GET("/forecast", analyticsH.Forecast)
			analytics.GET("/alerts", analyticsH.Alerts)
			analytics.GET("/feed", analyticsH.ActivityFeed)
			analytics.GET("/dashboard", analyticsH.Dashboard)
			analytics.POST("/report", analyticsH.RequestReport)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
