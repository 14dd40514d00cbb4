package tokens

import (
	"time"

	"github.com/tokenboard/tokenboard/internal/config"
	"github.com/tokenboard/tokenboard/internal/validate"
)

// Config holds cache lifetimes for the token service's read classes.
// Each class gets its own TTL because the underlying data moves at
// different speeds: holder balances shift with every trade, search
// results barely move.
type Config struct {
	// DetailTTL is the cache lifetime for token detail reads
	DetailTTL time.Duration `json:"detail_ttl"`

	// SearchTTL is the cache lifetime for search result reads
	SearchTTL time.Duration `json:"search_ttl"`

	// HolderTTL is the cache lifetime for holder balance reads
	HolderTTL time.Duration `json:"holder_ttl"`
}

// DefaultConfig returns the standard per-class TTLs
func DefaultConfig() *Config {
	return &Config{
		DetailTTL: config.DefaultDetailTTL,
		SearchTTL: config.DefaultSearchTTL,
		HolderTTL: config.DefaultHolderTTL,
	}
}

// Validate checks if the token service configuration is valid
func (c *Config) Validate() error {
	if err := validate.ValidatePositiveTimeout(c.DetailTTL, "detail TTL"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.SearchTTL, "search TTL"); err != nil {
		return err
	}
	return validate.ValidatePositiveTimeout(c.HolderTTL, "holder TTL")
}
