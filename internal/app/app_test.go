package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harshajxn/PricePulse/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		Environment:      "development",
		LogLevel:         "info",
		ProductDBConfig:  `{"db_type":"memory","extra_details":{}}`,
		ScrapeInterval:   time.Hour,
		FetchTimeout:     time.Second,
		FetchConcurrency: 1,
		RPSLimit:         50,
		RPSBurst:         100,
	}
}

func TestNewWiresPipeline(t *testing.T) {
	a, err := New(testConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, a.server)
	require.NotNil(t, a.scheduler)
	require.NotNil(t, a.store)
}

func TestNewRejectsBadStoreConfig(t *testing.T) {
	cfg := testConfig()
	cfg.ProductDBConfig = `{"db_type":"cassandra","extra_details":{}}`

	_, err := New(cfg, zap.NewNop())
	require.Error(t, err)
}

func TestRunReturnsServerStartError(t *testing.T) {
	cfg := testConfig()
	cfg.Port = "not-a-port"

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- a.Run()
	}()

	select {
	case err := <-done:
		require.Error(t, err, "a failed listen must surface to the caller")
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the server failed to start")
	}
}
