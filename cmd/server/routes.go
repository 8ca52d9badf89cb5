package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"auto-diag.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	diagnosticsHandler *handlers.DiagnosticsHandler
	authHandler        *handlers.AuthHandler
	apiKeyHandler      *handlers.ApiKeyHandler
	apiKeyAuth         gin.HandlerFunc
	rateLimit          gin.HandlerFunc
	recordUsage        gin.HandlerFunc
	adminAuth          gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Public endpoints, each behind the same admission chain
		public := v1.Group("")
		public.Use(d.apiKeyAuth, d.rateLimit, d.recordUsage)
		{
			public.POST("/diagnose", d.diagnosticsHandler.Diagnose)
			public.POST("/repair-cost", d.diagnosticsHandler.RepairCost)
			public.POST("/valuation", d.diagnosticsHandler.Valuation)
			public.POST("/maintenance-schedule", d.diagnosticsHandler.MaintenanceSchedule)
			public.GET("/providers", d.diagnosticsHandler.Providers)
		}

		// Admin login (public)
		v1.POST("/admin/login", d.authHandler.Login)

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.adminAuth)
		{
			admin.POST("/keys", d.apiKeyHandler.Create)
			admin.GET("/keys", d.apiKeyHandler.List)
			admin.PATCH("/keys/:id", d.apiKeyHandler.SetActive)
			admin.GET("/usage", d.apiKeyHandler.UsageStats)
		}
	}
}

func registerHealthRoute(r *gin.Engine, h *handlers.HealthHandler) {
	r.GET("/health", h.Check)
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, x-api-key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
