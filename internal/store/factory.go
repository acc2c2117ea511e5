package store

import (
	"encoding/json"
	"fmt"

	"github.com/harshajxn/PricePulse/internal/store/postgres"
	"github.com/harshajxn/PricePulse/internal/store/shared"
	"github.com/harshajxn/PricePulse/internal/telemetry"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ProviderFactory defines the interface for creating product stores
type ProviderFactory interface {
	CreateProvider(configJSON string) (ProductStore, error)
}

// DbProviderFactory implements ProviderFactory for the supported backends
type DbProviderFactory struct {
	logger    *zap.Logger
	telemetry *telemetry.Telemetry
}

func NewDbProviderFactory(logger *zap.Logger, tel *telemetry.Telemetry) *DbProviderFactory {
	return &DbProviderFactory{
		logger:    logger.Named("factory"),
		telemetry: tel,
	}
}

func (f *DbProviderFactory) CreateProvider(configJSON string) (ProductStore, error) {
	var config shared.DbProviderConfig

	if err := json.Unmarshal([]byte(configJSON), &config); err != nil {
		return nil, fmt.Errorf("failed to parse database configuration JSON: %w", err)
	}

	f.logger.Info("creating product store provider",
		zap.String("db_type", config.DbType.String()))

	if !config.DbType.IsValid() {
		return nil, fmt.Errorf("unsupported database type: %s", config.DbType)
	}

	var telemetryMeter metric.Meter
	if f.telemetry != nil {
		telemetryMeter = f.telemetry.Meter
	}

	switch config.DbType {
	case shared.DbTypePostgres:
		return postgres.NewProvider(config, f.logger, telemetryMeter)
	case shared.DbTypeMemory:
		f.logger.Info("using in-memory product store")
		return NewInMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.DbType)
	}
}
