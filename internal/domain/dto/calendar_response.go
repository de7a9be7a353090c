package dto

import (
	"github.com/guttosm/amlich/internal/domain/models"
	"github.com/guttosm/amlich/internal/hoangdao"
	"github.com/guttosm/amlich/internal/lunar"
)

// LunarResponse is returned by GET /api/v1/lunar.
type LunarResponse struct {
	Solar    lunar.SolarDate `json:"solar"`
	Lunar    lunar.LunarDate `json:"lunar"`
	Display  string          `json:"display" example:"1/1/2024"`
	TimeZone float64         `json:"time_zone" example:"7"`
}

// SolarResponse is returned by GET /api/v1/solar.
type SolarResponse struct {
	Lunar    lunar.LunarDate `json:"lunar"`
	Solar    lunar.SolarDate `json:"solar"`
	Display  string          `json:"display" example:"2024-02-10"`
	TimeZone float64         `json:"time_zone" example:"7"`
}

// CanChiResponse is returned by GET /api/v1/canchi.
type CanChiResponse struct {
	Year          int    `json:"year" example:"2024"`
	CanChi        string `json:"can_chi" example:"Giáp Thìn"`
	Zodiac        string `json:"zodiac" example:"Thìn"`
	ZodiacEnglish string `json:"zodiac_english" example:"Dragon"`
	LeapMonth     int    `json:"leap_month" example:"0"` // 0 when the lunar year has no leap month
}

// HoursResponse is returned by GET /api/v1/hours.
type HoursResponse struct {
	Date      *lunar.SolarDate `json:"date,omitempty"`
	DayBranch string           `json:"day_branch" example:"Thìn"`
	Hours     []hoangdao.Hour  `json:"hours"`
}

// MonthResponse is returned by GET /api/v1/months/{year}/{month}.
type MonthResponse struct {
	Year  int              `json:"year" example:"2024"`
	Month int              `json:"month" example:"2"`
	Days  []models.DayInfo `json:"days"`
}

// HolidaysResponse is returned by GET /api/v1/holidays.
type HolidaysResponse struct {
	Month    int              `json:"month" example:"1"`
	IsLunar  bool             `json:"is_lunar"`
	Holidays []models.Holiday `json:"holidays"`
}

// SpecialDaysResponse is returned by GET /api/v1/special-days.
type SpecialDaysResponse struct {
	From   lunar.SolarDate     `json:"from"`
	Months int                 `json:"months" example:"12"`
	Days   []models.SpecialDay `json:"days"`
}
