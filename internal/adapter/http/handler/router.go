package handler

import (
	"inventory-sync-gateway/internal/adapter/http/middleware"
	redisStore "inventory-sync-gateway/internal/adapter/storage/redis"
	"inventory-sync-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	IntakeSvc      ports.IntakeService
	SyncSvc        ports.SyncService
	RegistrySvc    ports.RegistryService
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
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

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	intakeHandler := NewIntakeHandler(deps.IntakeSvc)
	syncHandler := NewSyncHandler(deps.SyncSvc)
	v1.POST("/intake", rl("intake"), intakeHandler.Submit)
	v1.POST("/sync", rl("sync"), syncHandler.Run)

	// --- JWT-authenticated routes (settings surface) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	webhookHandler := NewWebhookHandler(deps.RegistrySvc)

	auth.POST("/password", jwtAuth, rl("settings"), authHandler.ChangePassword)

	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.GET("/unsynced", rl("settings"), syncHandler.Backlog)
	}

	webhooks := v1.Group("/webhooks", jwtAuth)
	{
		webhooks.POST("", rl("settings"), webhookHandler.Create)
		webhooks.GET("", rl("settings"), webhookHandler.List)
		webhooks.DELETE("/:id", rl("settings"), webhookHandler.Delete)
		webhooks.POST("/:id/test", rl("settings"), webhookHandler.Test)
		webhooks.POST("/probe", rl("settings"), webhookHandler.Probe)
	}

	return r
}
