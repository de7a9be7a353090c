package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/amlich/internal/domain/models"
	"github.com/guttosm/amlich/internal/lunar"
	"github.com/guttosm/amlich/internal/storage"
)

func ip(v int) *int { return &v }

var ict = time.FixedZone("ICT", 7*3600)

func TestNormalizeEvent_TableDriven(t *testing.T) {
	start := time.Date(2024, 8, 18, 9, 0, 0, 0, ict)
	cases := []struct {
		name    string
		event   models.Event
		wantErr bool
	}{
		{name: "defaults applied", event: models.Event{Title: "x", StartDate: start}},
		{name: "missing title", event: models.Event{StartDate: start}, wantErr: true},
		{name: "missing start", event: models.Event{Title: "x"}, wantErr: true},
		{name: "end before start", event: models.Event{Title: "x", StartDate: start, EndDate: start.Add(-time.Hour)}, wantErr: true},
		{name: "bad repeat", event: models.Event{Title: "x", StartDate: start, RepeatType: "hourly"}, wantErr: true},
		{name: "bad color", event: models.Event{Title: "x", StartDate: start, Color: "black"}, wantErr: true},
		{name: "negative reminder", event: models.Event{Title: "x", StartDate: start, ReminderMinutesBefore: ip(-5)}, wantErr: true},
		{name: "lunar without day", event: models.Event{Title: "x", StartDate: start, IsLunarDateBased: true, LunarMonth: ip(7)}, wantErr: true},
		{name: "lunar month 13", event: models.Event{Title: "x", StartDate: start, IsLunarDateBased: true, LunarDay: ip(1), LunarMonth: ip(13)}, wantErr: true},
		{name: "lunar ok", event: models.Event{Title: "x", StartDate: start, IsLunarDateBased: true, LunarDay: ip(15), LunarMonth: ip(7), RepeatType: models.RepeatLunarYearly}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.event
			err := normalizeEvent(&e)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidEvent) {
					t.Fatalf("expected ErrInvalidEvent, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Color == "" || e.RepeatType == "" || e.EndDate.IsZero() {
				t.Fatalf("defaults not applied: %+v", e)
			}
		})
	}
}

func TestEventService_CRUD(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil, lunar.DefaultTimeZone)
	ctx := context.Background()

	e := &models.Event{Title: "Họp mặt", StartDate: time.Date(2024, 2, 12, 18, 0, 0, 0, ict)}
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID == "" || e.RepeatType != models.RepeatNever || e.Color != "red" {
		t.Fatalf("unexpected created event %+v", e)
	}

	got, err := svc.Get(ctx, e.ID)
	if err != nil || got.Title != "Họp mặt" {
		t.Fatalf("Get: %v %+v", err, got)
	}

	got.Color = "teal"
	if err := svc.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.Update(ctx, &models.Event{}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("Update should validate, got %v", err)
	}

	all, err := svc.List(ctx)
	if err != nil || len(all) != 1 || all[0].Color != "teal" {
		t.Fatalf("List: %v %+v", err, all)
	}

	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, e.ID); !errors.Is(err, storage.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if err := svc.Create(ctx, &models.Event{}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("Create should validate, got %v", err)
	}
}

func TestEventService_EventsOn(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, ict)
	repo := newFakeEventRepo(
		models.Event{ID: "vu-lan", Title: "Vu Lan", StartDate: start, EndDate: start, IsLunarDateBased: true,
			LunarDay: ip(15), LunarMonth: ip(7), RepeatType: models.RepeatLunarYearly},
		models.Event{ID: "ram", Title: "Cúng rằm", StartDate: start.Add(time.Hour), EndDate: start, IsLunarDateBased: true,
			LunarDay: ip(15), LunarMonth: ip(1), RepeatType: models.RepeatLunarMonthly},
		models.Event{ID: "trip", Title: "Du lịch", StartDate: time.Date(2024, 8, 17, 7, 0, 0, 0, ict),
			EndDate: time.Date(2024, 8, 20, 7, 0, 0, 0, ict), RepeatType: models.RepeatNever},
		models.Event{ID: "other", Title: "Khác", StartDate: time.Date(2024, 3, 1, 7, 0, 0, 0, ict),
			EndDate: time.Date(2024, 3, 1, 8, 0, 0, 0, ict), RepeatType: models.RepeatNever},
	)
	svc := NewEventService(repo, nil, lunar.DefaultTimeZone)

	// 18/8/2024 is lunar 15/7.
	got, err := svc.EventsOn(context.Background(), lunar.SolarDate{Day: 18, Month: 8, Year: 2024})
	if err != nil {
		t.Fatalf("EventsOn: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %+v", got)
	}
	if got[0].ID != "vu-lan" || got[1].ID != "ram" || got[2].ID != "trip" {
		t.Fatalf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}

	none, err := svc.EventsOn(context.Background(), lunar.SolarDate{Day: 2, Month: 8, Year: 2024})
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no events, got %+v err %v", none, err)
	}

	repo.listErr = errors.New("db down")
	if _, err := svc.EventsOn(context.Background(), lunar.SolarDate{Day: 18, Month: 8, Year: 2024}); err == nil {
		t.Fatalf("expected list error")
	}
}

func TestEventService_EventsInMonth(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, ict)
	repo := newFakeEventRepo(
		models.Event{ID: "ram", Title: "Cúng rằm", StartDate: start, EndDate: start, IsLunarDateBased: true,
			LunarDay: ip(15), LunarMonth: ip(1), RepeatType: models.RepeatLunarMonthly},
		models.Event{ID: "trip", Title: "Du lịch", StartDate: time.Date(2024, 8, 30, 7, 0, 0, 0, ict),
			EndDate: time.Date(2024, 9, 2, 7, 0, 0, 0, ict), RepeatType: models.RepeatNever},
	)
	svc := NewEventService(repo, nil, lunar.DefaultTimeZone)

	byDay, err := svc.EventsInMonth(context.Background(), 2024, 8)
	if err != nil {
		t.Fatalf("EventsInMonth: %v", err)
	}
	if len(byDay) != 31 || repo.lists != 1 {
		t.Fatalf("got %d days after %d reads", len(byDay), repo.lists)
	}
	for day, evs := range byDay {
		want, err := svc.EventsOn(context.Background(), lunar.SolarDate{Day: day, Month: 8, Year: 2024})
		if err != nil {
			t.Fatalf("EventsOn: %v", err)
		}
		if len(evs) != len(want) {
			t.Fatalf("day %d: %d events, EventsOn gives %d", day, len(evs), len(want))
		}
	}
	if evs := byDay[18]; len(evs) != 1 || evs[0].ID != "ram" {
		t.Fatalf("18/8 events = %+v", evs)
	}
	if evs := byDay[31]; len(evs) != 1 || evs[0].ID != "trip" {
		t.Fatalf("31/8 events = %+v", evs)
	}

	repo.listErr = errors.New("db down")
	if _, err := svc.EventsInMonth(context.Background(), 2024, 8); err == nil {
		t.Fatalf("expected list error")
	}
}
