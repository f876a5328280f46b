// Package config provides centralized configuration for the curriculum tools.
// Every setting is read from the environment (a .env file is loaded by main
// first) and validated once on startup so that a bad value fails fast instead
// of halfway through writing an output file.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Paths    PathsConfig
	Seed     SeedConfig
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// PathsConfig locates the spreadsheet exports and the generated artifacts.
type PathsConfig struct {
	// DataDir holds the per-year exports and receives generated JSON/CSV.
	DataDir string `env:"DATA_DIR" default:"data/gatherround"`

	// HoursCSV is the flat fact table, relative to DataDir unless absolute.
	HoursCSV string `env:"HOURS_CSV" default:"unit_subcategory_hours.csv"`

	// PlanJSON is the unit -> year mapping consumed by the app.
	PlanJSON string `env:"PLAN_JSON" default:"app/src/data/gatherround-plan.json"`

	// EntriesJSON is the optional-entries output, relative to DataDir unless absolute.
	EntriesJSON string `env:"ENTRIES_JSON" default:"gatherround-optional-entries.json"`

	// EntriesByTypeDir receives the bucketed optional entries.
	EntriesByTypeDir string `env:"ENTRIES_BY_TYPE_DIR" default:"optional-entries-by-type"`

	// CategoryTable is an optional YAML file overriding the built-in categories.
	CategoryTable string `env:"CATEGORY_TABLE"`

	// XLSXSheet selects the worksheet for .xlsx inputs (first sheet when empty).
	XLSXSheet string `env:"XLSX_SHEET"`
}

// SeedConfig holds SQL generation settings.
type SeedConfig struct {
	// BatchSize is the number of VALUES tuples per INSERT statement (default: 50)
	BatchSize int `env:"SEED_BATCH_SIZE" default:"50"`

	// CurriculumID tags rows that carry a curriculum_id column (default: gatherround)
	CurriculumID string `env:"SEED_CURRICULUM_ID" default:"gatherround"`
}

// DatabaseConfig holds database connection settings.
// Only the commands that talk to Postgres need URL; see RequireDatabase.
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL" envAlt:"SUPABASE_DB_URL"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"5m"`

	// Timeout bounds a single command's database work (default: 2m)
	Timeout time.Duration `env:"DB_TIMEOUT" default:"2m"`
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" default:"127.0.0.1"`
	Port            int           `env:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
