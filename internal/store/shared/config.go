package shared

import "errors"

type DbType string

const (
	DbTypePostgres DbType = "postgres"
	DbTypeMemory   DbType = "memory"
)

func (d DbType) String() string {
	return string(d)
}

func (d DbType) IsValid() bool {
	switch d {
	case DbTypePostgres, DbTypeMemory:
		return true
	}
	return false
}

// DbProviderConfig is the JSON shape of the PRODUCT_DB_CONFIG env variable.
type DbProviderConfig struct {
	DbType       DbType                 `json:"db_type"`
	ExtraDetails map[string]interface{} `json:"extra_details"`
}

// ErrNotFound signals a URL that was never registered. It is a normal
// negative result, not a storage failure.
var ErrNotFound = errors.New("product not tracked")
