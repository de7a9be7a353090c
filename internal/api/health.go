package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

// Check reports whether one dependency of the service is reachable.
type Check func(ctx context.Context) error

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe, runs every registered Check.
type HealthHandler struct {
	checks map[string]Check
}

// NewHealthHandler constructs a HealthHandler. Each entry of checks is run on
// /readyz under its name, typically "postgres" bound to db.PingContext.
func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK when every check passes, 503 with the failing checks otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe (just checks if the service is up)
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness probe
	// @Summary      Readiness probe
	// @Description  Returns ready if the service dependencies are reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]any
	// @Failure      503  {object}  map[string]any
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		status, results := h.run(c.Request.Context())
		body := gin.H{"status": "ready", "checks": results}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		c.JSON(status, body)
	})
}

func (h *HealthHandler) run(ctx context.Context) (int, map[string]string) {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	return status, results
}
