package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"

	"github.com/guttosm/amlich/internal/lunar"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// HTTP server settings, the Postgres store for custom holidays and events, and the
// lunar conversion engine.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	SERVER_RATE_LIMIT=60
//	SERVER_RATE_WINDOW=1m
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=amlich
//	POSTGRES_SSLMODE=disable
//	LUNAR_TIMEZONE=7
//	LUNAR_CACHE_SIZE=4096
//	LUNAR_PREFETCH_MONTHS=1
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Lunar    LunarConfig    // Conversion engine settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port       string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimit  int           // Requests allowed per client IP and window
	RateWindow time.Duration // Length of the rate limiting window
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// LunarConfig tunes the conversion engine and its memo cache.
//
// Fields:
//   - TimeZone: UTC offset in hours used to round new moons to local days (Vietnam is +7).
//   - CacheSize: capacity of the memoized solar→lunar cache (entries).
//   - PrefetchMonths: number of neighbouring solar months warmed after a month view.
type LunarConfig struct {
	TimeZone       float64
	CacheSize      int
	PrefetchMonths int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or out of range, validateConfig() terminates
//     the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_RATE_LIMIT", 60)
	viper.SetDefault("SERVER_RATE_WINDOW", time.Minute)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "amlich")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("LUNAR_TIMEZONE", 7.0)
	viper.SetDefault("LUNAR_CACHE_SIZE", 4096)
	viper.SetDefault("LUNAR_PREFETCH_MONTHS", 1)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:       viper.GetString("SERVER_PORT"),
			RateLimit:  viper.GetInt("SERVER_RATE_LIMIT"),
			RateWindow: viper.GetDuration("SERVER_RATE_WINDOW"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Lunar: LunarConfig{
			TimeZone:       viper.GetFloat64("LUNAR_TIMEZONE"),
			CacheSize:      viper.GetInt("LUNAR_CACHE_SIZE"),
			PrefetchMonths: viper.GetInt("LUNAR_PREFETCH_MONTHS"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// problems lists every missing or out-of-range setting of c.
func (c Config) problems() []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Server.RateLimit <= 0 || c.Server.RateWindow <= 0 {
		missing = append(missing, "SERVER_RATE_LIMIT/SERVER_RATE_WINDOW (must be positive)")
	}
	if c.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if !lunar.ValidTimeZone(c.Lunar.TimeZone) {
		missing = append(missing, "LUNAR_TIMEZONE (must be within -12..14)")
	}
	if c.Lunar.CacheSize <= 0 {
		missing = append(missing, "LUNAR_CACHE_SIZE (must be positive)")
	}
	if c.Lunar.PrefetchMonths < 0 {
		missing = append(missing, "LUNAR_PREFETCH_MONTHS (must not be negative)")
	}
	return missing
}

// validateConfig terminates the application when AppConfig is incomplete.
func validateConfig() {
	if missing := AppConfig.problems(); len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}
