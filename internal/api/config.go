// Package api provides the HTTP API server for the Tokenboard development
// backend.
//
// This file defines configuration structures and validation logic for the
// REST API server that boardd runs for local development. The configuration
// covers network binding, the seeded data set, and the vote acceptance
// policy: how old a batch signature may be, how long a wallet must wait
// between re-votes on the same submission, the minimum supply share required
// to vote, and per-wallet request throttling.
//
// The dev backend mirrors the production platform's surface closely enough
// that the client stack (dispatcher, cache, vote batcher) can be exercised
// end to end against it: same routes, same error envelope, same signature
// scheme. Policy knobs default to production-like values but can be relaxed
// for demos, e.g. disabling cooldowns entirely.
package api

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/tokenboard/tokenboard/internal/api/store"
	"github.com/tokenboard/tokenboard/internal/config"
	"github.com/tokenboard/tokenboard/internal/validate"
)

const (
	// DefaultSignatureWindow bounds how far a batch signature timestamp may
	// lag behind server time before the batch is refused as expired
	DefaultSignatureWindow = 5 * time.Minute

	// DefaultRateLimit is the steady-state vote request rate allowed per
	// wallet, in requests per second
	DefaultRateLimit rate.Limit = 5

	// DefaultRateBurst is the short burst of vote requests a wallet may
	// send above the steady rate
	DefaultRateBurst = 10
)

// Config holds all configuration parameters required for running the
// development backend's HTTP API server.
//
// The structure splits into three concerns: network binding for the HTTP
// listener, the seeded store that backs every read, and the vote acceptance
// policy enforced on writes. Policy lives here rather than in handlers so
// that boardd flags, tests, and demos can tune acceptance behavior without
// touching request handling code.
type Config struct {
	BindAddr    string        // HTTP server bind address (e.g., "127.0.0.1")
	BindPort    int           // HTTP server bind port
	StoreConfig *store.Config // Seeded data set configuration

	SignatureWindow  time.Duration // Max age of a batch signature timestamp
	CooldownInterval time.Duration // Per-wallet, per-submission re-vote cooldown; 0 disables
	MinHolderPct     float64       // Minimum supply share (percent) required to vote
	RateLimit        rate.Limit    // Steady-state vote requests per second per wallet
	RateBurst        int           // Burst allowance above the steady rate per wallet
}

// DefaultConfig creates a new Config instance with values suited to local
// development.
//
// Binds to loopback so a stray dev daemon is never reachable from the
// network, seeds the default dozen tokens, and applies production-like vote
// policy so client-side failure handling gets exercised rather than skipped.
func DefaultConfig() *Config {
	return &Config{
		// Loopback only; boardd can override via --api flag
		BindAddr:    "127.0.0.1",
		BindPort:    config.DefaultAPIPort,
		StoreConfig: store.DefaultConfig(),

		SignatureWindow:  DefaultSignatureWindow,
		CooldownInterval: config.DefaultVoteCooldown,
		MinHolderPct:     config.DefaultMinVoteBalancePct,
		RateLimit:        DefaultRateLimit,
		RateBurst:        DefaultRateBurst,
	}
}

// Validate performs validation of all configuration parameters to ensure
// the API server can start successfully and enforce a coherent vote policy.
//
// Network settings are checked the same way as every other listener in the
// system; policy values are checked for internally consistent ranges. A zero
// cooldown is legal and disables cooldown enforcement, which demo setups
// use, while a negative one is always a configuration mistake.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.BindAddr, "bind address"); err != nil {
		return err
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("bind port validation failed: %w", err)
	}
	if c.StoreConfig == nil {
		return fmt.Errorf("store config cannot be nil")
	}
	if err := c.StoreConfig.Validate(); err != nil {
		return fmt.Errorf("store config validation failed: %w", err)
	}
	if c.SignatureWindow <= 0 {
		return fmt.Errorf("signature window must be positive, got %v", c.SignatureWindow)
	}
	if c.CooldownInterval < 0 {
		return fmt.Errorf("cooldown interval cannot be negative, got %v", c.CooldownInterval)
	}
	if c.MinHolderPct < 0 {
		return fmt.Errorf("minimum holder percentage cannot be negative, got %v", c.MinHolderPct)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", float64(c.RateLimit))
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1, got %d", c.RateBurst)
	}

	return nil
}
