package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/amlich/internal/domain/models"
	"github.com/guttosm/amlich/internal/lunar"
	"github.com/guttosm/amlich/internal/lunarcache"
	"github.com/guttosm/amlich/internal/service"
	"github.com/guttosm/amlich/internal/storage"
)

type mockCalendar struct {
	solarErr   error
	info       *models.DayInfo
	infoErr    error
	monthErr   error
	special    []models.SpecialDay
	specialErr error
	holidays   []models.Holiday

	gotTZ     float64
	gotMonths int
}

func (m *mockCalendar) SolarToLunar(_ context.Context, d lunar.SolarDate, tz float64) lunar.LunarDate {
	m.gotTZ = tz
	return lunar.ConvertSolarToLunar(d.Day, d.Month, d.Year, tz)
}

func (m *mockCalendar) LunarToSolar(_ context.Context, ld lunar.LunarDate, tz float64) (lunar.SolarDate, error) {
	m.gotTZ = tz
	if m.solarErr != nil {
		return lunar.SolarDate{}, m.solarErr
	}
	return lunar.ConvertLunarToSolar(ld, tz)
}

func (m *mockCalendar) DayInfo(_ context.Context, d lunar.SolarDate) (*models.DayInfo, error) {
	if m.infoErr != nil {
		return nil, m.infoErr
	}
	if m.info != nil {
		return m.info, nil
	}
	return &models.DayInfo{Solar: d}, nil
}

func (m *mockCalendar) Month(_ context.Context, year, month int) ([]models.DayInfo, error) {
	if m.monthErr != nil {
		return nil, m.monthErr
	}
	out := make([]models.DayInfo, lunarcache.DaysInMonth(year, month))
	for i := range out {
		out[i].Solar = lunar.SolarDate{Day: i + 1, Month: month, Year: year}
	}
	return out, nil
}

func (m *mockCalendar) SpecialDays(_ context.Context, _ lunar.SolarDate, months int) ([]models.SpecialDay, error) {
	m.gotMonths = months
	return m.special, m.specialErr
}

func (m *mockCalendar) Holidays(context.Context, int, bool) []models.Holiday { return m.holidays }
func (m *mockCalendar) ReloadHolidays(context.Context) error                { return nil }
func (m *mockCalendar) TimeZone() float64                                   { return lunar.DefaultTimeZone }

var _ service.CalendarService = (*mockCalendar)(nil)

type mockEvents struct {
	byID map[string]models.Event
	err  error
	on   []models.Event
}

func (m *mockEvents) Create(_ context.Context, e *models.Event) error {
	if m.err != nil {
		return m.err
	}
	e.ID = "5b0c3c0e-8d55-4a3e-9f55-0d6f6b1a2c3d"
	return nil
}

func (m *mockEvents) Update(_ context.Context, e *models.Event) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[e.ID]; !ok {
		return storage.ErrEventNotFound
	}
	return nil
}

func (m *mockEvents) Get(_ context.Context, id string) (*models.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.byID[id]
	if !ok {
		return nil, storage.ErrEventNotFound
	}
	return &e, nil
}

func (m *mockEvents) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[id]; !ok {
		return storage.ErrEventNotFound
	}
	return nil
}

func (m *mockEvents) List(context.Context) ([]models.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Event, 0, len(m.byID))
	for _, e := range m.byID {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEvents) EventsOn(context.Context, lunar.SolarDate) ([]models.Event, error) {
	return m.on, m.err
}

func (m *mockEvents) EventsInMonth(_ context.Context, year, month int) (map[int][]models.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := map[int][]models.Event{}
	for day := 1; day <= lunarcache.DaysInMonth(year, month); day++ {
		out[day] = m.on
	}
	return out, nil
}

var _ service.EventService = (*mockEvents)(nil)

func setupRouterWithMocks(cal service.CalendarService, events service.EventService, stats func() lunarcache.Stats) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(cal, events, stats), nil)
}
