package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/amlich/config"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

const (
	pingTimeout  = 5 * time.Second
	maxOpenConns = 10
	maxIdleConns = 5
	connLifetime = 30 * time.Minute
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres opens the store for custom holidays and events.
//
// Behavior:
//   - Opens a database handle with the DSN built by cfg.Postgres.DSN().
//   - Bounds the pool so calendar traffic cannot exhaust the server.
//   - Pings the database to validate connectivity before returning.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("❌ failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	db, err := sqlOpener("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// postgresOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres
