package dto

import (
	"time"

	"github.com/guttosm/amlich/internal/domain/models"
)

// EventRequest is the body of POST and PUT /api/v1/events.
type EventRequest struct {
	Title                 string     `json:"title" binding:"required" example:"Giỗ ông"`
	Notes                 string     `json:"notes"`
	StartDate             time.Time  `json:"start_date" binding:"required" example:"2024-08-18T08:00:00+07:00"`
	EndDate               *time.Time `json:"end_date"`
	IsAllDay              bool       `json:"is_all_day"`
	ReminderMinutesBefore *int       `json:"reminder_minutes_before" example:"30"`
	Color                 string     `json:"color" example:"red"`
	IsLunarDateBased      bool       `json:"is_lunar_date_based" example:"true"`
	LunarDay              *int       `json:"lunar_day" example:"15"`
	LunarMonth            *int       `json:"lunar_month" example:"7"`
	RepeatType            string     `json:"repeat_type" example:"lunar_yearly"`
}

// ToModel maps the request onto a models.Event without an id.
func (r EventRequest) ToModel() models.Event {
	e := models.Event{
		Title:                 r.Title,
		Notes:                 r.Notes,
		StartDate:             r.StartDate,
		IsAllDay:              r.IsAllDay,
		ReminderMinutesBefore: r.ReminderMinutesBefore,
		Color:                 r.Color,
		IsLunarDateBased:      r.IsLunarDateBased,
		LunarDay:              r.LunarDay,
		LunarMonth:            r.LunarMonth,
		RepeatType:            models.RepeatType(r.RepeatType),
	}
	if r.EndDate != nil {
		e.EndDate = *r.EndDate
	}
	return e
}
