package main

//
//  @title           amlich API
//  @version         1.0
//  @description     Vietnamese lunar calendar: solar/lunar conversion, can chi, hoàng đạo hours, holidays and lunar events.
//  @termsOfService  https://github.com/guttosm/amlich
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/amlich
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        convert
//  @tag.description Solar and lunar date conversion
//
//  @tag.name        calendar
//  @tag.description Day, month, can chi and hour lookups
//
//  @tag.name        holidays
//  @tag.description Built-in and custom holidays
//
//  @tag.name        events
//  @tag.description User events, optionally recurring on lunar dates
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/amlich/config"
	_ "github.com/guttosm/amlich/docs" // swagger docs
	"github.com/guttosm/amlich/internal/app"
	"github.com/guttosm/amlich/internal/ingestion"
	"github.com/guttosm/amlich/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// newServer builds the HTTP server with the read/write timeouts used in production.
func newServer(router http.Handler, port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// startServer starts server in a separate goroutine. A listen failure is fatal.
func startServer(server *http.Server) {
	go func() {
		logger.L().Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()
}

// awaitShutdown blocks until ctx is done (SIGINT or SIGTERM in main), then
// drains in-flight requests for up to shutdownTimeout and runs cleanup.
func awaitShutdown(ctx context.Context, server *http.Server, cleanup func()) error {
	<-ctx.Done()
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	cleanup()
	if err != nil {
		return err
	}
	logger.L().Info().Msg("server exited gracefully")
	return nil
}

// openDB is an indirection over app.InitPostgres for tests.
var openDB = app.InitPostgres

// runIngest loads every *_HOLIDAYS.csv file of dir into Postgres.
func runIngest(ctx context.Context, cfg config.Config, dir string, parallel int, force bool) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	return ingestion.ProcessDirectory(ctx, dir, db, parallel, force)
}

// main is the entry point of the amlich server.
//
// Modes (selected via --mode flag):
//   - api:    Starts the REST API (default).
//   - ingest: Loads custom holidays from *_HOLIDAYS.csv files in --dir into Postgres.
//
// Flags:
//   - --mode:     Execution mode ("api" or "ingest"). Default: "api".
//   - --dir:      Directory containing holiday CSV files. Default: "./data/input".
//   - --parallel: Files processed concurrently (0 = auto, max 7).
//   - --force:    Replace rows of files that were already ingested.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api or ingest")
	dir := flag.String("dir", "./data/input", "Directory with *_HOLIDAYS.csv files")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 7)")
	force := flag.Bool("force", false, "Reprocess files even if already ingested (deletes their existing holidays)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		logger.L().Info().Str("dir", *dir).Msg("running holiday ingestion")
		if err := runIngest(ctx, config.AppConfig, *dir, *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Float64("time_zone", config.AppConfig.Lunar.TimeZone).Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := newServer(router, *port)
		startServer(server)
		if err := awaitShutdown(ctx, server, cleanup); err != nil {
			logger.L().Fatal().Err(err).Msg("server forced to shutdown")
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
