// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is read
// first when present, so local development does not need exported vars.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backend selectors for StoreBackend.
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreBackend selects where the row feeds live: "sheets" (default)
	// or "postgres".
	StoreBackend string

	// DatabaseURL is the Postgres connection string.
	// Required when StoreBackend is "postgres".
	DatabaseURL string

	// RefreshInterval is how often the background refresher refetches the
	// member feed. Defaults to 5m, matching the dashboard's refetch cycle.
	RefreshInterval time.Duration

	// Sheets credentials and coordinates.
	// Required (except the sheet names) when StoreBackend is "sheets".
	SheetsClientID        string
	SheetsClientSecret    string
	SheetsRefreshToken    string
	SheetsSpreadsheetID   string
	SheetsMemberSheet     string
	SheetsAnnotationSheet string
}

// Load reads configuration from the environment (and an optional .env
// file) and returns a Config. Returns an error listing every required
// variable that is not set, so a broken deployment reports all gaps at
// once instead of one per restart.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:                  getEnv("PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		CORSOrigins:           splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoreBackend:          getEnv("STORE_BACKEND", BackendSheets),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		SheetsClientID:        os.Getenv("SHEETS_CLIENT_ID"),
		SheetsClientSecret:    os.Getenv("SHEETS_CLIENT_SECRET"),
		SheetsRefreshToken:    os.Getenv("SHEETS_REFRESH_TOKEN"),
		SheetsSpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
		SheetsMemberSheet:     getEnv("SHEETS_MEMBER_SHEET", "Expirations"),
		SheetsAnnotationSheet: getEnv("SHEETS_ANNOTATION_SHEET", "Member_Annotations"),
	}

	interval, err := time.ParseDuration(getEnv("REFRESH_INTERVAL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	var missing []string
	switch cfg.StoreBackend {
	case BackendSheets:
		for _, v := range []struct{ name, value string }{
			{"SHEETS_CLIENT_ID", cfg.SheetsClientID},
			{"SHEETS_CLIENT_SECRET", cfg.SheetsClientSecret},
			{"SHEETS_REFRESH_TOKEN", cfg.SheetsRefreshToken},
			{"SHEETS_SPREADSHEET_ID", cfg.SheetsSpreadsheetID},
		} {
			if v.value == "" {
				missing = append(missing, v.name)
			}
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORE_BACKEND %q: must be %q or %q",
			cfg.StoreBackend, BackendSheets, BackendPostgres)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
