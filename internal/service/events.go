package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/guttosm/amlich/internal/domain/models"
	"github.com/guttosm/amlich/internal/lunar"
	"github.com/guttosm/amlich/internal/lunarcache"
	"github.com/guttosm/amlich/internal/storage"
)

// ErrInvalidEvent wraps every event validation failure.
var ErrInvalidEvent = errors.New("invalid event")

// EventService manages user events and resolves which of them fall on a day.
type EventService interface {
	Create(ctx context.Context, e *models.Event) error
	Update(ctx context.Context, e *models.Event) error
	Get(ctx context.Context, id string) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Event, error)
	EventsOn(ctx context.Context, d lunar.SolarDate) ([]models.Event, error)
	EventsInMonth(ctx context.Context, year, month int) (map[int][]models.Event, error)
}

type eventService struct {
	repo storage.EventRepository
	conv lunar.Converter
	tz   float64
}

func NewEventService(repo storage.EventRepository, conv lunar.Converter, tz float64) EventService {
	if conv == nil {
		conv = lunar.Engine{}
	}
	return &eventService{repo: repo, conv: conv, tz: tz}
}

func (s *eventService) Create(ctx context.Context, e *models.Event) error {
	if err := normalizeEvent(e); err != nil {
		return err
	}
	return s.repo.CreateEvent(ctx, e)
}

func (s *eventService) Update(ctx context.Context, e *models.Event) error {
	if err := normalizeEvent(e); err != nil {
		return err
	}
	return s.repo.UpdateEvent(ctx, e)
}

func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.repo.GetEvent(ctx, id)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteEvent(ctx, id)
}

func (s *eventService) List(ctx context.Context) ([]models.Event, error) {
	return s.repo.ListEvents(ctx)
}

// EventsOn returns the events falling on d, ordered by start date.
func (s *eventService) EventsOn(ctx context.Context, d lunar.SolarDate) ([]models.Event, error) {
	all, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return s.match(all, d), nil
}

// EventsInMonth resolves the events of every day of a solar month, keyed by
// day of month, from a single repository read.
func (s *eventService) EventsInMonth(ctx context.Context, year, month int) (map[int][]models.Event, error) {
	all, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	n := lunarcache.DaysInMonth(year, month)
	out := make(map[int][]models.Event, n)
	for day := 1; day <= n; day++ {
		out[day] = s.match(all, lunar.SolarDate{Day: day, Month: month, Year: year})
	}
	return out, nil
}

func (s *eventService) match(all []models.Event, d lunar.SolarDate) []models.Event {
	loc := time.FixedZone("", int(s.tz*3600))
	day := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
	ld := s.conv.SolarToLunar(d, s.tz)

	out := []models.Event{}
	for _, e := range all {
		if e.OccursOn(day, ld) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

// normalizeEvent fills defaults and rejects inconsistent events.
func normalizeEvent(e *models.Event) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if e.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrInvalidEvent)
	}
	if e.EndDate.IsZero() {
		e.EndDate = e.StartDate
	}
	if e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("%w: end_date before start_date", ErrInvalidEvent)
	}
	if e.RepeatType == "" {
		e.RepeatType = models.RepeatNever
	}
	if !e.RepeatType.Valid() {
		return fmt.Errorf("%w: unknown repeat_type %q", ErrInvalidEvent, e.RepeatType)
	}
	if e.Color == "" {
		e.Color = models.EventColors[0]
	}
	if !slices.Contains(models.EventColors, e.Color) {
		return fmt.Errorf("%w: unknown color %q", ErrInvalidEvent, e.Color)
	}
	if e.ReminderMinutesBefore != nil && *e.ReminderMinutesBefore < 0 {
		return fmt.Errorf("%w: reminder_minutes_before must not be negative", ErrInvalidEvent)
	}
	if e.IsLunarDateBased {
		if e.LunarDay == nil || *e.LunarDay < 1 || *e.LunarDay > 30 {
			return fmt.Errorf("%w: lunar_day must be within 1..30", ErrInvalidEvent)
		}
		if e.LunarMonth == nil || *e.LunarMonth < 1 || *e.LunarMonth > 12 {
			return fmt.Errorf("%w: lunar_month must be within 1..12", ErrInvalidEvent)
		}
	}
	return nil
}
