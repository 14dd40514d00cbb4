// Package config provides configuration management for the Tokenboard
// development daemon.
//
// This package implements the complete configuration system for boardd
// including the HTTP bind address, the seeded dataset shape, and the vote
// acceptance policy the daemon enforces. It provides centralized configuration
// state with explicit user override tracking.
//
// CONFIGURATION ARCHITECTURE:
// boardd serves a single HTTP endpoint, so configuration is much simpler than
// a multi-service daemon: one bind address plus the knobs that shape the
// in-memory dataset and the vote policy:
//
//   - API: HTTP server address for the token board API (user-configurable)
//   - Dataset: deterministic seed, token count, and holder model
//   - Vote policy: signature window, cooldown, minimum balance, rate limits
//
// EXPLICIT OVERRIDE TRACKING:
// The configuration tracks which values were explicitly set by users versus
// inherited from defaults. An explicitly set --api fails hard when the port
// is taken; the default address falls back to the next free port so several
// development daemons can coexist on one machine.
package config

import (
	"time"

	configDefaults "github.com/tokenboard/tokenboard/internal/config"
)

// ConfigField represents a configuration field that can be explicitly set
type ConfigField int

const (
	// Configuration field identifiers
	APIAddrField ConfigField = iota
	LogFileField
)

const (
	DefaultAPI      = configDefaults.DefaultBindAddr + ":8200" // Default API address
	DefaultLogLevel = configDefaults.DefaultLogLevel           // Default log level
)

// Config holds all daemon configuration values
type Config struct {
	APIAddr string // HTTP API server address
	APIPort int    // HTTP API server port (derived from APIAddr)

	LogLevel string // Log level: DEBUG, INFO, WARN, ERROR
	LogFile  string // Optional file to redirect all logging to

	// Seeded dataset shape
	Seed          int64 // Seed for the deterministic token dataset
	TokenCount    int   // Number of tokens to seed
	ClosedHolders bool  // Require explicit holder registration (default: fabricate holdings)

	// Vote acceptance policy
	SignatureWindow time.Duration // Max age of a batch signature timestamp
	Cooldown        time.Duration // Per-wallet per-submission vote cooldown (0 disables)
	MinBalancePct   float64       // Minimum share of supply (percent) required to vote
	VoteRate        float64       // Per-wallet sustained vote batches per second
	VoteBurst       int           // Per-wallet vote batch burst allowance

	MaxPorts int // Maximum number of ports to try when finding an available port

	// Flags to track if values were explicitly set by user
	apiAddrExplicitlySet bool
	logFileExplicitlySet bool
}

// Global configuration instance
var Global Config

// SetExplicitlySet marks a configuration field as explicitly set by the user.
// Explicit addresses bind exactly or fail; defaulted addresses may fall back
// to a nearby free port.
func (c *Config) SetExplicitlySet(field ConfigField, value bool) {
	switch field {
	case APIAddrField:
		c.apiAddrExplicitlySet = value
	case LogFileField:
		c.logFileExplicitlySet = value
	}
}

// IsExplicitlySet returns whether a configuration field was explicitly set by
// the user.
func (c *Config) IsExplicitlySet(field ConfigField) bool {
	switch field {
	case APIAddrField:
		return c.apiAddrExplicitlySet
	case LogFileField:
		return c.logFileExplicitlySet
	}
	return false
}
