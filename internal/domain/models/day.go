package models

import (
	"github.com/guttosm/amlich/internal/hoangdao"
	"github.com/guttosm/amlich/internal/lunar"
)

// SpecialDay marks the first (Sóc) or fifteenth (Vọng) of a lunar month.
type SpecialDay struct {
	Solar lunar.SolarDate `json:"solar"`
	Lunar lunar.LunarDate `json:"lunar"`
	Name  string          `json:"name" example:"Rằm - Vọng"`
}

// DayInfo aggregates everything known about one solar day.
//
// swagger:model DayInfo
type DayInfo struct {
	Solar         lunar.SolarDate `json:"solar"`
	Lunar         lunar.LunarDate `json:"lunar"`
	Weekday       string          `json:"weekday" example:"Saturday"`
	YearCanChi    string          `json:"year_can_chi" example:"Giáp Thìn"`
	DayCanChi     string          `json:"day_can_chi" example:"Giáp Thìn"`
	Zodiac        string          `json:"zodiac" example:"Thìn"`
	ZodiacEnglish string          `json:"zodiac_english" example:"Dragon"`
	SpecialDay    string          `json:"special_day,omitempty" example:"Mồng 1 - Sóc"`
	Holidays      []Holiday       `json:"holidays"`
	Hours         []hoangdao.Hour `json:"hours"`
	Events        []Event         `json:"events,omitempty"`
}
