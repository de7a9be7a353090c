package models

import (
	"time"

	"github.com/guttosm/amlich/internal/lunar"
)

// RepeatType controls how an Event recurs.
type RepeatType string

const (
	RepeatNever        RepeatType = "never"
	RepeatDaily        RepeatType = "daily"
	RepeatWeekly       RepeatType = "weekly"
	RepeatMonthly      RepeatType = "monthly"
	RepeatYearly       RepeatType = "yearly"
	RepeatLunarMonthly RepeatType = "lunar_monthly"
	RepeatLunarYearly  RepeatType = "lunar_yearly"
)

// Valid reports whether r is a known repeat type.
func (r RepeatType) Valid() bool {
	switch r {
	case RepeatNever, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly, RepeatLunarMonthly, RepeatLunarYearly:
		return true
	}
	return false
}

// EventColors lists the accepted display colors.
var EventColors = []string{"red", "blue", "green", "orange", "purple", "pink", "yellow", "teal"}

// Event is a user-defined entry, optionally pinned to a lunar day.
//
// swagger:model Event
type Event struct {
	ID                    string     `json:"id" example:"5b0c3c0e-8d55-4a3e-9f55-0d6f6b1a2c3d"`
	Title                 string     `json:"title" example:"Giỗ ông"`
	Notes                 string     `json:"notes,omitempty"`
	StartDate             time.Time  `json:"start_date"`
	EndDate               time.Time  `json:"end_date"`
	IsAllDay              bool       `json:"is_all_day"`
	ReminderMinutesBefore *int       `json:"reminder_minutes_before,omitempty"`
	Color                 string     `json:"color" example:"red"`
	IsLunarDateBased      bool       `json:"is_lunar_date_based"`
	LunarDay              *int       `json:"lunar_day,omitempty" example:"15"`
	LunarMonth            *int       `json:"lunar_month,omitempty" example:"7"`
	RepeatType            RepeatType `json:"repeat_type" example:"lunar_yearly"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// OccursOn reports whether the event falls on the given day. solar is local
// midnight of that day and ld its lunar equivalent.
//
// Lunar events match on lunar day (monthly) or day and month (yearly, never);
// other repeat types never match a lunar event. Solar events match their start
// day or any day inside [StartDate, EndDate].
func (e Event) OccursOn(solar time.Time, ld lunar.LunarDate) bool {
	if e.IsLunarDateBased {
		if e.LunarDay == nil || e.LunarMonth == nil {
			return false
		}
		switch e.RepeatType {
		case RepeatLunarMonthly:
			return ld.Day == *e.LunarDay
		case RepeatLunarYearly, RepeatNever:
			return ld.Day == *e.LunarDay && ld.Month == *e.LunarMonth
		default:
			return false
		}
	}

	y1, m1, d1 := e.StartDate.In(solar.Location()).Date()
	y2, m2, d2 := solar.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return true
	}
	return !e.StartDate.After(solar) && !e.EndDate.Before(solar)
}
