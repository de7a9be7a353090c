package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/amlich/internal/domain/dto"
)

// AbortWithError stops the chain and writes a dto.ErrorResponse with the given status.
// The error is also attached to the context so RequestLogger can report it.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	resp := dto.NewErrorResponse(message, err)
	_ = c.Error(resp)
	c.AbortWithStatusJSON(status, resp)
}

// ErrorHandler turns errors left on the context by handlers into a JSON response
// when nothing has been written yet. A dto.ErrorResponse is sent as is; any other
// error becomes a 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last().Err
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	var resp dto.ErrorResponse
	if !errors.As(last, &resp) {
		resp = dto.NewErrorResponse("Internal server error", last)
	}
	c.JSON(status, resp)
}
