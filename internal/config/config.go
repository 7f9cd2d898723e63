/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Database backend selection.
type DatabaseBackend string

const (
	DatabasePostgres DatabaseBackend = "postgres"
	DatabaseMySQL    DatabaseBackend = "mysql"
	DatabaseSQLite   DatabaseBackend = "sqlite"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int
	MetricsBind string

	DBBackend DatabaseBackend
	DBDSN     string

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64

	// Conference day shape. DayStartOffset is the first session start as an
	// offset from midnight; lunch and the afternoon session follow the
	// morning session back to back, networking follows the afternoon.
	DayStartOffset  time.Duration
	MorningBudget   time.Duration
	LunchDuration   time.Duration
	AfternoonBudget time.Duration
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	dayStart, err := parseClock(getEnv("TRACKSMITH_DAY_START", "09:00"))
	if err != nil {
		return nil, fmt.Errorf("TRACKSMITH_DAY_START: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("TRACKSMITH_ENV", "development"),
		HTTPBind:    getEnv("TRACKSMITH_HTTP_BIND", "0.0.0.0"),
		HTTPPort:    getEnvInt("TRACKSMITH_HTTP_PORT", 8080),
		MetricsBind: getEnv("TRACKSMITH_METRICS_BIND", "127.0.0.1:9000"),

		DBBackend: DatabaseBackend(getEnv("TRACKSMITH_DB_BACKEND", string(DatabaseSQLite))),
		DBDSN:     getEnv("TRACKSMITH_DB_DSN", "tracksmith.db"),

		TracingEnabled:    getEnvBool("TRACKSMITH_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("TRACKSMITH_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("TRACKSMITH_TRACING_SAMPLE_RATE", 1.0),

		DayStartOffset:  dayStart,
		MorningBudget:   time.Duration(getEnvInt("TRACKSMITH_MORNING_BUDGET_MINUTES", 180)) * time.Minute,
		LunchDuration:   time.Duration(getEnvInt("TRACKSMITH_LUNCH_MINUTES", 60)) * time.Minute,
		AfternoonBudget: time.Duration(getEnvInt("TRACKSMITH_AFTERNOON_BUDGET_MINUTES", 240)) * time.Minute,
	}

	if cfg.DBBackend != DatabasePostgres && cfg.DBBackend != DatabaseMySQL && cfg.DBBackend != DatabaseSQLite {
		return nil, fmt.Errorf("unsupported database backend %q", cfg.DBBackend)
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("TRACKSMITH_DB_DSN must be provided")
	}
	if cfg.MorningBudget < 0 || cfg.LunchDuration < 0 || cfg.AfternoonBudget < 0 {
		return nil, fmt.Errorf("session budgets must not be negative")
	}
	if cfg.TracingSampleRate < 0 || cfg.TracingSampleRate > 1 {
		return nil, fmt.Errorf("TRACKSMITH_TRACING_SAMPLE_RATE must be within [0, 1]")
	}

	return cfg, nil
}

// parseClock parses an HH:MM time of day into an offset from midnight.
func parseClock(value string) (time.Duration, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", value)
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
