package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.SubmitLockTTL)
	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.Equal(t, "/metrics", cfg.MetricsPath)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"SERVER_PORT":          "9000",
		"REDIS_ADDR":           "localhost:6379",
		"REDIS_DB":             "2",
		"SUBMIT_LOCK_TTL":      "750ms",
		"CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 750*time.Millisecond, cfg.SubmitLockTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration":      {"TOKEN_TTL": "forever"},
		"zero page size":    {"DEFAULT_PAGE_SIZE": "0"},
		"max below default": {"DEFAULT_PAGE_SIZE": "50", "MAX_PAGE_SIZE": "20"},
		"relative metrics":  {"METRICS_PATH": "metrics"},
		"non positive lock": {"SUBMIT_LOCK_TTL": "0s"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(vars)
			assert.Error(t, err)
		})
	}
}

func TestPageSize(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"MAX_PAGE_SIZE": "25"})
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.PageSize(0))
	assert.Equal(t, 10, cfg.PageSize(-3))
	assert.Equal(t, 7, cfg.PageSize(7))
	assert.Equal(t, 25, cfg.PageSize(500))
}
