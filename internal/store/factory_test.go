package store

import (
	"encoding/json"
	"testing"

	"github.com/harshajxn/PricePulse/internal/telemetry"
	"go.uber.org/zap"
)

func TestDbProviderFactory_CreateProvider_Memory(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	tel, _ := telemetry.NewTelemetry(logger)
	factory := NewDbProviderFactory(logger, tel)

	config := DbProviderConfig{
		DbType:       DbTypeMemory,
		ExtraDetails: map[string]interface{}{},
	}
	configJSON, _ := json.Marshal(config)

	provider, err := factory.CreateProvider(string(configJSON))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if provider == nil {
		t.Fatalf("expected provider, got nil")
	}
	if _, ok := provider.(*InMemoryProvider); !ok {
		t.Fatalf("expected InMemoryProvider, got %T", provider)
	}
}

func TestDbProviderFactory_CreateProvider_InvalidType(t *testing.T) {
	logger := zap.NewNop()
	factory := NewDbProviderFactory(logger, nil)

	_, err := factory.CreateProvider(`{"db_type":"cassandra","extra_details":{}}`)
	if err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}

func TestDbProviderFactory_CreateProvider_BadJSON(t *testing.T) {
	logger := zap.NewNop()
	factory := NewDbProviderFactory(logger, nil)

	_, err := factory.CreateProvider(`{not json`)
	if err == nil {
		t.Fatal("expected error for malformed configuration JSON")
	}
}
