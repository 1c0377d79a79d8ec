package handler

import (
	"context"

	"webhook-gateway/internal/adapter/http/middleware"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	EndpointSvc    ports.EndpointService
	Dispatcher     ports.DispatcherService
	Worker         ports.DeliveryWorker
	AdminSvc       ports.AdminService
	Scheduler      ports.Scheduler
	TokenSvc       ports.TokenService
	HashSvc        ports.HashService
	AdminKeyHash   string               // empty = admin and ingest routes reject every key
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	AuditSvc       ports.AuditService   // nil = route audit disabled
	HealthCheckers []ports.HealthChecker
	MetricsEnabled bool
	BaseContext    context.Context // parent of a scheduler started over HTTP
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (deep: verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

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

	v1 := r.Group("/api/v1")

	// --- Owner routes (JWT) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	webhookHandler := NewWebhookHandler(deps.EndpointSvc, deps.Dispatcher, deps.Worker)
	webhooks := v1.Group("/webhooks", jwtAuth, rl("webhooks"))
	{
		webhooks.POST("", rl("webhooks_write"), webhookHandler.Create)
		webhooks.GET("", webhookHandler.List)
		webhooks.GET("/:id", webhookHandler.Get)
		webhooks.PATCH("/:id", rl("webhooks_write"), webhookHandler.Update)
		webhooks.DELETE("/:id", rl("webhooks_write"), webhookHandler.Delete)
		webhooks.POST("/:id/enable", rl("webhooks_write"), webhookHandler.Enable)
		webhooks.POST("/:id/disable", rl("webhooks_write"), webhookHandler.Disable)
		webhooks.POST("/:id/rotate-secret", rl("webhooks_write"), webhookHandler.RotateSecret)
		webhooks.POST("/:id/test", rl("webhooks_test"), webhookHandler.Test)
		webhooks.GET("/:id/deliveries", webhookHandler.ListDeliveries)
		webhooks.GET("/:id/deliveries/:deliveryId", webhookHandler.GetDelivery)
		webhooks.POST("/:id/deliveries/:deliveryId/retry", rl("webhooks_write"), webhookHandler.RetryDelivery)
	}

	// --- Admin-key routes ---
	adminAuth := middleware.AdminAuth(deps.HashSvc, deps.AdminKeyHash, deps.Logger)

	eventHandler := NewEventHandler(deps.Dispatcher)
	v1.POST("/events", adminAuth, rl("events"), eventHandler.Ingest)

	adminHandler := NewAdminHandler(deps.BaseContext, deps.AdminSvc, deps.Scheduler)
	admin := v1.Group("/admin", adminAuth, rl("admin"))
	{
		admin.GET("/endpoints", adminHandler.ListEndpoints)
		admin.GET("/endpoints/:id", adminHandler.GetEndpoint)
		admin.POST("/endpoints/:id/enable", adminHandler.EnableEndpoint)
		admin.POST("/endpoints/:id/disable", adminHandler.DisableEndpoint)
		admin.DELETE("/endpoints/:id", adminHandler.DeleteEndpoint)

		admin.GET("/deliveries", adminHandler.ListDeliveries)
		admin.POST("/deliveries/purge", adminHandler.Purge)
		admin.GET("/deliveries/:id", adminHandler.GetDelivery)
		admin.POST("/deliveries/:id/retry", adminHandler.RetryDelivery)
		admin.POST("/deliveries/:id/cancel", adminHandler.CancelDelivery)

		admin.GET("/stats", adminHandler.Stats)

		admin.GET("/scheduler", adminHandler.SchedulerStatus)
		admin.POST("/scheduler/start", adminHandler.StartScheduler)
		admin.POST("/scheduler/stop", adminHandler.StopScheduler)
		admin.POST("/scheduler/trigger/:task", adminHandler.TriggerTask)
	}

	return r
}
