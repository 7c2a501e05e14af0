package handler

import (
	"receipt-ledger/internal/adapter/http/middleware"
	redisStore "receipt-ledger/internal/adapter/storage/redis"
	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc         ports.AuthService
	LedgerSvc       ports.LedgerService
	AnalyticsSvc    ports.AnalyticsService
	OrderSvc        ports.OrderService
	TokenSvc        ports.TokenService
	DefaultCurrency domain.Currency
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers  []ports.HealthChecker
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- Authenticated routes (any role) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	receiptHandler := NewReceiptHandler(deps.LedgerSvc, deps.DefaultCurrency)
	challengeHandler := NewChallengeHandler(deps.LedgerSvc)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsSvc, deps.DefaultCurrency)

	receipts := v1.Group("/receipts", jwtAuth)
	{
		receipts.GET("", rl("receipts"), receiptHandler.List)
		receipts.POST("", rl("receipts"), receiptHandler.Create)
		receipts.POST("/scan", rl("scan"), receiptHandler.Scan)
		receipts.POST("/delete", rl("receipts"), receiptHandler.Delete)
		receipts.GET("/export", rl("receipts"), receiptHandler.ExportCSV)
		receipts.GET("/:id/qr", rl("receipts"), receiptHandler.QRPayload)
	}

	challenges := v1.Group("/challenges", jwtAuth)
	{
		challenges.GET("", rl("dashboard"), challengeHandler.List)
	}

	analytics := v1.Group("/analytics", jwtAuth)
	{
		analytics.GET("/eco", rl("dashboard"), analyticsHandler.Eco)
	}

	// --- Merchant-only routes ---
	merchantOnly := middleware.RequireRole(domain.RoleMerchant)
	merchantHandler := NewMerchantHandler(deps.LedgerSvc, deps.OrderSvc)

	merchant := v1.Group("/merchant", jwtAuth, merchantOnly)
	{
		merchant.GET("/products", rl("dashboard"), merchantHandler.ListProducts)
		merchant.POST("/products", rl("dashboard"), merchantHandler.AddProduct)
		merchant.DELETE("/products/:id", rl("dashboard"), merchantHandler.DeleteProduct)
		merchant.POST("/orders/checkout", rl("receipts"), merchantHandler.Checkout)
		merchant.GET("/profile", rl("dashboard"), merchantHandler.GetProfile)
		merchant.PUT("/profile", rl("dashboard"), merchantHandler.SetProfile)
	}

	analytics.GET("/revenue", rl("dashboard"), merchantOnly, analyticsHandler.Revenue)

	return r
}
