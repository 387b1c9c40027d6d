package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SMMDESK_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "smmdesk.db", cfg.DB.Path)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, 30*time.Minute, cfg.Reminders.Snooze)
	require.Equal(t, 5*time.Minute, cfg.Reminders.LeadTime)
	require.True(t, cfg.Seed.Enabled)

	ws, err := cfg.WeekStart()
	require.NoError(t, err)
	require.Equal(t, time.Sunday, ws)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "smmdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  allowed_origins: ["http://localhost:5173"]
db:
  path: data/agency.db
calendar:
  timezone: Europe/Rome
  week_start: monday
reminders:
  snooze: 15m
`), 0o644))

	t.Setenv("SMMDESK_CONFIG_PATH", path)
	t.Setenv("SMMDESK_SERVER_PORT", "9191")
	t.Setenv("SMMDESK_AUTH_ENABLED", "true")
	t.Setenv("SMMDESK_AUTH_TOKENS", "alpha, beta")
	t.Setenv("SMMDESK_ALLOWED_ORIGINS", "https://desk.example.com, http://localhost:5173")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.Server.Port)
	require.Equal(t, "data/agency.db", cfg.DB.Path)
	require.Equal(t, 15*time.Minute, cfg.Reminders.Snooze)
	require.Equal(t, []string{"alpha", "beta"}, cfg.Auth.Tokens)
	require.Equal(t, []string{"https://desk.example.com", "http://localhost:5173"}, cfg.Server.AllowedOrigins)

	ws, err := cfg.WeekStart()
	require.NoError(t, err)
	require.Equal(t, time.Monday, ws)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, "Europe/Rome", loc.String())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SMMDESK_DB_PATH_FROM_DOTENV=1\n"), 0o644))
	t.Setenv("SMMDESK_CONFIG_PATH", "")

	_, err := Load()
	require.NoError(t, err)
	require.Equal(t, "1", os.Getenv("SMMDESK_DB_PATH_FROM_DOTENV"))
	os.Unsetenv("SMMDESK_DB_PATH_FROM_DOTENV")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Transport.Mode = "carrier-pigeon"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Auth.Enabled = true
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Calendar.WeekStart = "someday"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Calendar.Timezone = "Mars/Olympus"
	require.Error(t, cfg.Validate())
}
