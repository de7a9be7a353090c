package service

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/amlich/internal/canchi"
	"github.com/guttosm/amlich/internal/domain/models"
	"github.com/guttosm/amlich/internal/hoangdao"
	"github.com/guttosm/amlich/internal/holiday"
	"github.com/guttosm/amlich/internal/logger"
	"github.com/guttosm/amlich/internal/lunar"
	"github.com/guttosm/amlich/internal/lunarcache"
	"github.com/guttosm/amlich/internal/storage"
)

const (
	monthWorkers    = 8
	prefetchTimeout = 10 * time.Second
)

// CalendarService exposes the lunar calendar to the HTTP layer.
type CalendarService interface {
	SolarToLunar(ctx context.Context, d lunar.SolarDate, tz float64) lunar.LunarDate
	LunarToSolar(ctx context.Context, ld lunar.LunarDate, tz float64) (lunar.SolarDate, error)
	DayInfo(ctx context.Context, d lunar.SolarDate) (*models.DayInfo, error)
	Month(ctx context.Context, year, month int) ([]models.DayInfo, error)
	SpecialDays(ctx context.Context, from lunar.SolarDate, months int) ([]models.SpecialDay, error)
	Holidays(ctx context.Context, month int, isLunar bool) []models.Holiday
	ReloadHolidays(ctx context.Context) error
	TimeZone() float64
}

// Prefetcher warms a converter cache around a solar month.
type Prefetcher interface {
	PrefetchAround(ctx context.Context, year, month, span int, tz float64) error
}

// CalendarOptions wires a CalendarService. Holidays and Events are optional.
type CalendarOptions struct {
	Converter      lunar.Converter
	Holidays       storage.HolidayRepository
	Events         EventService
	TimeZone       float64
	PrefetchMonths int
}

type calendarService struct {
	conv     lunar.Converter
	repo     storage.HolidayRepository
	events   EventService
	tz       float64
	span     int
	holidays atomic.Pointer[holiday.Calendar]
}

func NewCalendarService(opts CalendarOptions) CalendarService {
	if opts.Converter == nil {
		opts.Converter = lunar.Engine{}
	}
	s := &calendarService{
		conv:   opts.Converter,
		repo:   opts.Holidays,
		events: opts.Events,
		tz:     opts.TimeZone,
		span:   opts.PrefetchMonths,
	}
	s.holidays.Store(holiday.Builtin())
	return s
}

func (s *calendarService) TimeZone() float64 { return s.tz }

func (s *calendarService) SolarToLunar(_ context.Context, d lunar.SolarDate, tz float64) lunar.LunarDate {
	return s.conv.SolarToLunar(d, tz)
}

func (s *calendarService) LunarToSolar(_ context.Context, ld lunar.LunarDate, tz float64) (lunar.SolarDate, error) {
	return lunar.ConvertLunarToSolar(ld, tz)
}

// ReloadHolidays merges stored custom holidays into the built-in table.
// Without a repository it is a no-op.
func (s *calendarService) ReloadHolidays(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	custom, err := s.repo.ListHolidays(ctx)
	if err != nil {
		return err
	}
	s.holidays.Store(holiday.Builtin().With(custom...))
	logger.L().Info().Int("custom", len(custom)).Msg("holidays reloaded")
	return nil
}

func (s *calendarService) Holidays(_ context.Context, month int, isLunar bool) []models.Holiday {
	return s.holidays.Load().ForMonth(month, isLunar)
}

// DayInfo gathers the lunar date, cycle names, holidays, hours and events of d.
func (s *calendarService) DayInfo(ctx context.Context, d lunar.SolarDate) (*models.DayInfo, error) {
	info := s.dayInfo(d)
	if s.events != nil {
		evs, err := s.events.EventsOn(ctx, d)
		if err != nil {
			return nil, err
		}
		info.Events = evs
	}
	return info, nil
}

// dayInfo builds everything of a DayInfo except its events.
func (s *calendarService) dayInfo(d lunar.SolarDate) *models.DayInfo {
	ld := s.conv.SolarToLunar(d, s.tz)
	info := &models.DayInfo{
		Solar:         d,
		Lunar:         ld,
		Weekday:       weekday(d).String(),
		YearCanChi:    canchi.CanChi(ld.Year),
		DayCanChi:     canchi.DayCanChi(d.Day, d.Month, d.Year),
		Zodiac:        canchi.ZodiacAnimal(ld.Year),
		ZodiacEnglish: canchi.ZodiacAnimalEnglish(ld.Year),
		Holidays:      s.holidays.Load().Match(d, ld),
		Hours:         hoangdao.Hours(d.Day, d.Month, d.Year),
	}
	if name, ok := holiday.IsSpecialLunarDay(ld); ok {
		info.SpecialDay = name
	}
	return info
}

// Month returns DayInfo for every day of a solar month, computed concurrently.
// Neighbouring months are warmed in the background when the converter supports it.
func (s *calendarService) Month(ctx context.Context, year, month int) ([]models.DayInfo, error) {
	n := lunarcache.DaysInMonth(year, month)
	out := make([]models.DayInfo, n)

	var byDay map[int][]models.Event
	if s.events != nil {
		var err error
		if byDay, err = s.events.EventsInMonth(ctx, year, month); err != nil {
			return nil, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(monthWorkers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info := s.dayInfo(lunar.SolarDate{Day: i + 1, Month: month, Year: year})
			if byDay != nil {
				info.Events = byDay[i+1]
			}
			out[i] = *info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if p, ok := s.conv.(Prefetcher); ok && s.span > 0 {
		go func() {
			pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), prefetchTimeout)
			defer cancel()
			if err := p.PrefetchAround(pctx, year, month, s.span, s.tz); err != nil {
				logger.L().Warn().Err(err).Int("year", year).Int("month", month).Msg("prefetch failed")
			}
		}()
	}
	return out, nil
}

// SpecialDays lists every Sóc and Vọng from `from` (inclusive) through the
// following `months` solar months.
func (s *calendarService) SpecialDays(ctx context.Context, from lunar.SolarDate, months int) ([]models.SpecialDay, error) {
	start := from.JDN()
	end := lunar.SolarDate{Day: from.Day, Month: from.Month, Year: from.Year + months/12}
	if m := from.Month + months%12; m > 12 {
		end.Month, end.Year = m-12, end.Year+1
	} else {
		end.Month = m
	}
	if last := lunarcache.DaysInMonth(end.Year, end.Month); end.Day > last {
		end.Day = last
	}

	var out []models.SpecialDay
	for jd := start; jd < end.JDN(); jd++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d := lunar.JDToDate(jd)
		ld := s.conv.SolarToLunar(d, s.tz)
		if name, ok := holiday.IsSpecialLunarDay(ld); ok {
			out = append(out, models.SpecialDay{Solar: d, Lunar: ld, Name: name})
		}
	}
	return out, nil
}

func weekday(d lunar.SolarDate) time.Weekday {
	// JDN 0 fell on a Monday.
	return time.Weekday((d.JDN() + 1) % 7)
}
