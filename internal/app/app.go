package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/amlich/config"
	"github.com/guttosm/amlich/internal/api"
	"github.com/guttosm/amlich/internal/logger"
	"github.com/guttosm/amlich/internal/lunar"
	"github.com/guttosm/amlich/internal/lunarcache"
	"github.com/guttosm/amlich/internal/middleware"
	"github.com/guttosm/amlich/internal/service"
	"github.com/guttosm/amlich/internal/storage"
)

const holidayLoadTimeout = 5 * time.Second

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the holiday and event repositories.
//   - Wraps the conversion engine in a memo cache sized from config.
//   - Builds the event and calendar services and loads custom holidays.
//   - Configures the Gin router with all API routes and health probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	holidays := storage.NewHolidayRepository(db)
	eventsRepo := storage.NewEventRepository(db)

	cache, err := lunarcache.New(lunar.Engine{}, cfg.Lunar.CacheSize)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create conversion cache: %w", err)
	}

	events := service.NewEventService(eventsRepo, cache, cfg.Lunar.TimeZone)
	cal := service.NewCalendarService(service.CalendarOptions{
		Converter:      cache,
		Holidays:       holidays,
		Events:         events,
		TimeZone:       cfg.Lunar.TimeZone,
		PrefetchMonths: cfg.Lunar.PrefetchMonths,
	})

	// Custom holidays are optional; the built-in table keeps serving on failure.
	ctx, cancel := context.WithTimeout(context.Background(), holidayLoadTimeout)
	defer cancel()
	if err := cal.ReloadHolidays(ctx); err != nil {
		logger.L().Warn().Err(err).Msg("custom holidays not loaded, serving built-in table only")
	}

	handler := api.NewHandler(cal, events, cache.Stats)
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	router := api.NewRouter(handler, limiter)

	api.NewHealthHandler(map[string]api.Check{
		"postgres": db.PingContext,
	}).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
