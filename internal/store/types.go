package store

import "github.com/harshajxn/PricePulse/internal/store/shared"

// Re-export shared types for convenience
type DbType = shared.DbType
type DbProviderConfig = shared.DbProviderConfig

// Re-export constants
const (
	DbTypePostgres = shared.DbTypePostgres
	DbTypeMemory   = shared.DbTypeMemory
)

var ErrNotFound = shared.ErrNotFound
