package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load(zap.NewNop())

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, `{"db_type":"memory","extra_details":{}}`, cfg.ProductDBConfig)
	require.Equal(t, time.Hour, cfg.ScrapeInterval)
	require.Equal(t, 10*time.Second, cfg.FetchTimeout)
	require.Equal(t, 3, cfg.FetchConcurrency)
	require.NotEmpty(t, cfg.UserAgent)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SCRAPE_INTERVAL", "15m")
	t.Setenv("FETCH_CONCURRENCY", "8")
	t.Setenv("PRODUCT_DB_CONFIG", `{"db_type":"postgres","extra_details":{"conn_str":"x"}}`)

	cfg := Load(zap.NewNop())

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.ScrapeInterval)
	require.Equal(t, 8, cfg.FetchConcurrency)
	require.Equal(t, `{"db_type":"postgres","extra_details":{"conn_str":"x"}}`, cfg.ProductDBConfig)
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SCRAPE_INTERVAL", "not-a-duration")

	cfg := Load(zap.NewNop())
	require.Equal(t, time.Hour, cfg.ScrapeInterval)
}
