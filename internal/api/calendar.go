package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/amlich/internal/canchi"
	"github.com/guttosm/amlich/internal/domain/dto"
	"github.com/guttosm/amlich/internal/hoangdao"
	"github.com/guttosm/amlich/internal/lunar"
	"github.com/guttosm/amlich/internal/middleware"
)

// GetDay godoc
// @Summary      Full information for one solar day
// @Description  Lunar date, can chi of the year and day, zodiac, holidays, special day, hoàng đạo hours and events.
// @Tags         calendar
// @Produce      json
// @Param        date  path      string  true  "Solar date in YYYY-MM-DD" example(2024-02-10)
// @Success      200   {object}  models.DayInfo     "Success"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse  "Internal Server Error"
// @Router       /api/v1/days/{date} [get]
func (h *Handler) GetDay(c *gin.Context) {
	d, err := parseSolarDate(c.Param("date"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD", err)
		return
	}
	info, err := h.cal.DayInfo(c.Request.Context(), d)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build day information", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetMonth godoc
// @Summary      Calendar grid for a solar month
// @Tags         calendar
// @Produce      json
// @Param        year   path      int  true  "Solar year" example(2024)
// @Param        month  path      int  true  "Solar month (1-12)" example(2)
// @Success      200    {object}  dto.MonthResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Server Error"
// @Router       /api/v1/months/{year}/{month} [get]
func (h *Handler) GetMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		middleware.AbortWithError(c, http.StatusBadRequest, "year must be an integer within 1..9999", err)
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		middleware.AbortWithError(c, http.StatusBadRequest, "month must be an integer within 1..12", err)
		return
	}
	days, err := h.cal.Month(c.Request.Context(), year, month)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build month", err)
		return
	}
	c.JSON(http.StatusOK, dto.MonthResponse{Year: year, Month: month, Days: days})
}

// GetCanChi godoc
// @Summary      Can chi name, zodiac animal and leap month of a lunar year
// @Tags         calendar
// @Produce      json
// @Param        year  query     int  true  "Lunar year" example(2024)
// @Success      200   {object}  dto.CanChiResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse   "Bad Request"
// @Router       /api/v1/canchi [get]
func (h *Handler) GetCanChi(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "year is required and must be an integer", err)
		return
	}
	c.JSON(http.StatusOK, dto.CanChiResponse{
		Year:          year,
		CanChi:        canchi.CanChi(year),
		Zodiac:        canchi.ZodiacAnimal(year),
		ZodiacEnglish: canchi.ZodiacAnimalEnglish(year),
		LeapMonth:     lunar.LeapMonth(year, h.cal.TimeZone()),
	})
}

// GetHours godoc
// @Summary      Hoàng đạo hours of a day
// @Description  Pass either a solar date or the day's earthly branch. Without both, today is used.
// @Tags         calendar
// @Produce      json
// @Param        date    query     string  false  "Solar date in YYYY-MM-DD" example(2024-02-10)
// @Param        branch  query     string  false  "Earthly branch of the day" example(Thìn)
// @Success      200     {object}  dto.HoursResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Router       /api/v1/hours [get]
func (h *Handler) GetHours(c *gin.Context) {
	if b := c.Query("branch"); b != "" {
		hours, err := hoangdao.ForBranch(b)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "unknown branch", err)
			return
		}
		i, _ := hoangdao.BranchIndex(b)
		c.JSON(http.StatusOK, dto.HoursResponse{DayBranch: canchi.Branches[i], Hours: hours})
		return
	}

	d := today(h.cal.TimeZone())
	if s := c.Query("date"); s != "" {
		parsed, err := parseSolarDate(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD", err)
			return
		}
		d = parsed
	}
	c.JSON(http.StatusOK, dto.HoursResponse{
		Date:      &d,
		DayBranch: hoangdao.DayBranch(d.Day, d.Month, d.Year),
		Hours:     hoangdao.Hours(d.Day, d.Month, d.Year),
	})
}

// GetHolidays godoc
// @Summary      Holidays of a solar or lunar month
// @Tags         holidays
// @Produce      json
// @Param        month  query     int   true   "Month (1-12)" example(1)
// @Param        lunar  query     bool  false  "Look up lunar holidays instead of solar ones"
// @Success      200    {object}  dto.HolidaysResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse     "Bad Request"
// @Router       /api/v1/holidays [get]
func (h *Handler) GetHolidays(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		middleware.AbortWithError(c, http.StatusBadRequest, "month is required and must be within 1..12", err)
		return
	}
	isLunar := false
	if s := c.Query("lunar"); s != "" {
		if isLunar, err = strconv.ParseBool(s); err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "lunar must be a boolean", err)
			return
		}
	}
	c.JSON(http.StatusOK, dto.HolidaysResponse{
		Month:    month,
		IsLunar:  isLunar,
		Holidays: h.cal.Holidays(c.Request.Context(), month, isLunar),
	})
}

// GetSpecialDays godoc
// @Summary      Upcoming new moon and full moon days
// @Tags         calendar
// @Produce      json
// @Param        from    query     string  false  "First solar date in YYYY-MM-DD, defaults to today" example(2024-01-01)
// @Param        months  query     int     false  "Number of solar months to scan (1-24)" default(1)
// @Success      200     {object}  dto.SpecialDaysResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse        "Bad Request"
// @Failure      500     {object}  dto.ErrorResponse        "Internal Server Error"
// @Router       /api/v1/special-days [get]
func (h *Handler) GetSpecialDays(c *gin.Context) {
	from := today(h.cal.TimeZone())
	if s := c.Query("from"); s != "" {
		parsed, err := parseSolarDate(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD", err)
			return
		}
		from = parsed
	}
	months, err := intQuery(c, "months", 1, 1, 24)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "months must be an integer within 1..24", err)
		return
	}
	days, err := h.cal.SpecialDays(c.Request.Context(), from, months)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list special days", err)
		return
	}
	c.JSON(http.StatusOK, dto.SpecialDaysResponse{From: from, Months: months, Days: days})
}

// GetCacheStats godoc
// @Summary      Conversion cache counters
// @Tags         ops
// @Produce      json
// @Success      200  {object}  lunarcache.Stats    "Success"
// @Failure      503  {object}  dto.ErrorResponse  "Cache disabled"
// @Router       /api/v1/cache/stats [get]
func (h *Handler) GetCacheStats(c *gin.Context) {
	if h.stats == nil {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "conversion cache is disabled", nil)
		return
	}
	c.JSON(http.StatusOK, h.stats())
}
