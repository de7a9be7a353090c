package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/amlich/internal/domain/dto"
	"github.com/guttosm/amlich/internal/lunar"
	"github.com/guttosm/amlich/internal/lunarcache"
	"github.com/guttosm/amlich/internal/middleware"
	"github.com/guttosm/amlich/internal/service"
)

const dateLayout = "2006-01-02"

// Handler provides HTTP handlers for the calendar and event endpoints.
//
// Responsibilities:
//   - Validate incoming path and query parameters
//   - Call the service layer with the request context
//   - Translate results into response DTOs and errors into dto.ErrorResponse
type Handler struct {
	cal    service.CalendarService
	events service.EventService
	stats  func() lunarcache.Stats
}

// NewHandler constructs a new Handler instance. events and stats may be nil;
// the routes depending on them then answer 503.
func NewHandler(cal service.CalendarService, events service.EventService, stats func() lunarcache.Stats) *Handler {
	return &Handler{cal: cal, events: events, stats: stats}
}

// GetLunar handles GET /api/v1/lunar.
//
// GetLunar godoc
// @Summary      Convert a solar date to the lunar calendar
// @Description  Returns the Vietnamese lunar date of a Gregorian day. Defaults to today in the configured time zone.
// @Tags         convert
// @Produce      json
// @Param        date  query     string  false  "Solar date in YYYY-MM-DD" example(2024-02-10)
// @Param        tz    query     number  false  "UTC offset in hours" example(7)
// @Success      200   {object}  dto.LunarResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Router       /api/v1/lunar [get]
func (h *Handler) GetLunar(c *gin.Context) {
	tz, ok := h.timeZone(c)
	if !ok {
		return
	}

	var d lunar.SolarDate
	if s := c.Query("date"); s != "" {
		parsed, err := parseSolarDate(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD", err)
			return
		}
		d = parsed
	} else {
		d = today(tz)
	}

	ld := h.cal.SolarToLunar(c.Request.Context(), d, tz)
	c.JSON(http.StatusOK, dto.LunarResponse{Solar: d, Lunar: ld, Display: ld.String(), TimeZone: tz})
}

// GetSolar handles GET /api/v1/solar.
//
// GetSolar godoc
// @Summary      Convert a lunar date to the solar calendar
// @Tags         convert
// @Produce      json
// @Param        day    query     int     true   "Lunar day (1-30)" example(1)
// @Param        month  query     int     true   "Lunar month (1-12)" example(1)
// @Param        year   query     int     true   "Lunar year" example(2024)
// @Param        leap   query     bool    false  "Whether the month is the leap month"
// @Param        tz     query     number  false  "UTC offset in hours" example(7)
// @Success      200    {object}  dto.SolarResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      422    {object}  dto.ErrorResponse  "Date does not exist"
// @Router       /api/v1/solar [get]
func (h *Handler) GetSolar(c *gin.Context) {
	tz, ok := h.timeZone(c)
	if !ok {
		return
	}

	var ld lunar.LunarDate
	for _, p := range []struct {
		name string
		dst  *int
	}{{"day", &ld.Day}, {"month", &ld.Month}, {"year", &ld.Year}} {
		v, err := strconv.Atoi(c.Query(p.name))
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, p.name+" is required and must be an integer", err)
			return
		}
		*p.dst = v
	}
	if s := c.Query("leap"); s != "" {
		leap, err := strconv.ParseBool(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "leap must be a boolean", err)
			return
		}
		ld.IsLeapMonth = leap
	}

	d, err := h.cal.LunarToSolar(c.Request.Context(), ld, tz)
	switch {
	case errors.Is(err, lunar.ErrInvalidLunarDate), errors.Is(err, lunar.ErrInvalidLeapMonth):
		middleware.AbortWithError(c, http.StatusUnprocessableEntity, "lunar date does not exist", err)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, "conversion failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.SolarResponse{Lunar: ld, Solar: d, Display: d.String(), TimeZone: tz})
}

// timeZone reads the optional tz query parameter, writing a 400 when it is invalid.
func (h *Handler) timeZone(c *gin.Context) (float64, bool) {
	s := c.Query("tz")
	if s == "" {
		return h.cal.TimeZone(), true
	}
	tz, err := strconv.ParseFloat(s, 64)
	if err != nil || !lunar.ValidTimeZone(tz) {
		middleware.AbortWithError(c, http.StatusBadRequest, "tz must be a number of hours within -12..14", err)
		return 0, false
	}
	return tz, true
}

func parseSolarDate(s string) (lunar.SolarDate, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return lunar.SolarDate{}, err
	}
	return lunar.SolarDate{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}, nil
}

func today(tz float64) lunar.SolarDate {
	t := time.Now().UTC().Add(time.Duration(tz * float64(time.Hour)))
	return lunar.SolarDate{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// intQuery reads an optional integer query parameter bounded to [lo, hi].
func intQuery(c *gin.Context, name string, def, lo, hi int) (int, error) {
	s := c.Query(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, errors.New(name + " out of range")
	}
	return v, nil
}
