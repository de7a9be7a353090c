package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/amlich/internal/middleware"
)

const requestTimeout = 10 * time.Second

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// A nil limiter falls back to 60 requests per minute per client IP.
// Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, limiter *middleware.RateLimiter) *gin.Engine {
	if limiter == nil {
		limiter = middleware.NewRateLimiter(60, time.Minute)
	}

	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		limiter.Handler(),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/lunar", handler.GetLunar)
		v1.GET("/solar", handler.GetSolar)
		v1.GET("/days/:date", handler.GetDay)
		v1.GET("/months/:year/:month", handler.GetMonth)
		v1.GET("/canchi", handler.GetCanChi)
		v1.GET("/hours", handler.GetHours)
		v1.GET("/holidays", handler.GetHolidays)
		v1.GET("/special-days", handler.GetSpecialDays)
		v1.GET("/cache/stats", handler.GetCacheStats)

		events := v1.Group("/events")
		events.GET("", handler.ListEvents)
		events.POST("", handler.CreateEvent)
		events.GET("/:id", handler.GetEvent)
		events.PUT("/:id", handler.UpdateEvent)
		events.DELETE("/:id", handler.DeleteEvent)
	}

	return router
}
