package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clb2clb2/sgtri-desp-sub000/config"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "sgtri.db", cfg.DB.Path)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Empty(t, cfg.Rates.File)
	assert.Nil(t, cfg.Rates.RDProjectTypes)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("RATES_FILE", " ./rates.json ")
	t.Setenv("RATES_RD_PROJECT_TYPES", "PID, RTI,,OTRI ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, ":memory:", cfg.DB.Path)
	assert.Equal(t, "./rates.json", cfg.Rates.File)
	assert.Equal(t, []string{"PID", "RTI", "OTRI"}, cfg.Rates.RDProjectTypes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
}

func TestLoad_Validation(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("HTTP_PORT", "70000")
	_, err := config.Load()
	assert.ErrorContains(t, err, "HTTP_PORT")

	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_PATH", "  ")
	_, err = config.Load()
	assert.ErrorContains(t, err, "DB_PATH")
}
