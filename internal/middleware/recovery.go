package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/amlich/internal/logger"
)

// RecoveryMiddleware returns a Gin middleware that recovers from panics in
// handlers, logs the stack trace with the request id, and answers 500 with a
// dto.ErrorResponse.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	log := logger.Component("recovery")
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			rid, _ := c.Get(RequestIDKey)
			log.Error().
				Str("request_id", toString(rid)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			AbortWithError(c, http.StatusInternalServerError, "Internal server error", fmt.Errorf("panic: %v", r))
		}()

		c.Next()
	}
}
