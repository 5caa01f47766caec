package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmeey/expiry-dashboard/internal/config"
)

// setSheetsVars sets the minimum environment for the sheets backend.
func setSheetsVars(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_BACKEND", "sheets")
	t.Setenv("SHEETS_CLIENT_ID", "cid")
	t.Setenv("SHEETS_CLIENT_SECRET", "secret")
	t.Setenv("SHEETS_REFRESH_TOKEN", "refresh")
	t.Setenv("SHEETS_SPREADSHEET_ID", "ss-1")
}

func TestLoad_SheetsDefaults(t *testing.T) {
	setSheetsVars(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, "Expirations", cfg.SheetsMemberSheet)
	assert.Equal(t, "Member_Annotations", cfg.SheetsAnnotationSheet)
}

func TestLoad_Overrides(t *testing.T) {
	setSheetsVars(t)
	t.Setenv("PORT", "9999")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REFRESH_INTERVAL", "30s")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
}

// TestLoad_SheetsMissingVarsListedTogether: one failed start reports every
// gap, not just the first.
func TestLoad_SheetsMissingVarsListedTogether(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sheets")
	t.Setenv("SHEETS_CLIENT_ID", "cid")
	t.Setenv("SHEETS_CLIENT_SECRET", "")
	t.Setenv("SHEETS_REFRESH_TOKEN", "")
	t.Setenv("SHEETS_SPREADSHEET_ID", "")

	_, err := config.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHEETS_CLIENT_SECRET")
	assert.Contains(t, err.Error(), "SHEETS_REFRESH_TOKEN")
	assert.Contains(t, err.Error(), "SHEETS_SPREADSHEET_ID")
	assert.NotContains(t, err.Error(), "SHEETS_CLIENT_ID,")
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_PostgresBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/dashboard")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "postgres://localhost:5432/dashboard", cfg.DatabaseURL)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "dynamo")

	_, err := config.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}

func TestLoad_InvalidRefreshInterval(t *testing.T) {
	setSheetsVars(t)
	t.Setenv("REFRESH_INTERVAL", "five minutes")

	_, err := config.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}
