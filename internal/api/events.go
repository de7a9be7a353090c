package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/amlich/internal/domain/dto"
	"github.com/guttosm/amlich/internal/middleware"
	"github.com/guttosm/amlich/internal/service"
	"github.com/guttosm/amlich/internal/storage"
)

// eventError maps service and storage errors onto HTTP statuses.
func eventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEvent):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid event", err)
	case errors.Is(err, storage.ErrEventNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, "event not found", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "event storage failed", err)
	}
}

func (h *Handler) requireEvents(c *gin.Context) bool {
	if h.events == nil {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "event storage is not configured", nil)
		return false
	}
	return true
}

func eventID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "event id must be a UUID", err)
		return "", false
	}
	return id, true
}

// CreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        event  body      dto.EventRequest   true  "Event"
// @Success      201    {object}  models.Event       "Created"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Server Error"
// @Router       /api/v1/events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	if !h.requireEvents(c) {
		return
	}
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	e := req.ToModel()
	if err := h.events.Create(c.Request.Context(), &e); err != nil {
		eventError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// UpdateEvent godoc
// @Summary      Replace an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id     path      string             true  "Event id"
// @Param        event  body      dto.EventRequest   true  "Event"
// @Success      200    {object}  models.Event       "Success"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404    {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/events/{id} [put]
func (h *Handler) UpdateEvent(c *gin.Context) {
	if !h.requireEvents(c) {
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	e := req.ToModel()
	e.ID = id
	if err := h.events.Update(c.Request.Context(), &e); err != nil {
		eventError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// GetEvent godoc
// @Summary      Fetch one event
// @Tags         events
// @Produce      json
// @Param        id   path      string             true  "Event id"
// @Success      200  {object}  models.Event       "Success"
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
	if !h.requireEvents(c) {
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}
	e, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		eventError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Param        id   path  string  true  "Event id"
// @Success      204  "No Content"
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/events/{id} [delete]
func (h *Handler) DeleteEvent(c *gin.Context) {
	if !h.requireEvents(c) {
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}
	if err := h.events.Delete(c.Request.Context(), id); err != nil {
		eventError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListEvents godoc
// @Summary      List events
// @Description  Without a date every event is returned; with one, only the events falling on that day.
// @Tags         events
// @Produce      json
// @Param        date  query     string  false  "Solar date in YYYY-MM-DD" example(2024-08-18)
// @Success      200   {array}   models.Event       "Success"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse  "Internal Server Error"
// @Router       /api/v1/events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	if !h.requireEvents(c) {
		return
	}
	if s := c.Query("date"); s != "" {
		d, err := parseSolarDate(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD", err)
			return
		}
		evs, err := h.events.EventsOn(c.Request.Context(), d)
		if err != nil {
			eventError(c, err)
			return
		}
		c.JSON(http.StatusOK, evs)
		return
	}
	evs, err := h.events.List(c.Request.Context())
	if err != nil {
		eventError(c, err)
		return
	}
	c.JSON(http.StatusOK, evs)
}
