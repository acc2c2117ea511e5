package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// Telemetry owns the metric pipeline: an OpenTelemetry meter backed by a
// Prometheus exporter, exposed over the /metrics endpoint.
type Telemetry struct {
	Meter metric.Meter

	provider *sdkmetric.MeterProvider
	registry *prometheus.Registry
}

func NewTelemetry(logger *zap.Logger) (*Telemetry, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	logger.Info("telemetry initialized")
	return &Telemetry{
		Meter:    provider.Meter("pricepulse"),
		provider: provider,
		registry: registry,
	}, nil
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}
