// Package config provides the consolidated configuration for the Tokenboard
// data-consistency layer.
//
// This file defines the single Core configuration object consumed by the
// session constructor. All tunables of the client layer live here: dispatcher
// timeouts and retry budgets, cache capacity and per-class TTLs, and vote
// batching behavior. Components receive their slice of this configuration at
// construction time rather than reading process-wide state, which keeps
// sessions independent and tests hermetic.
//
// The Core struct follows the same DefaultCore + Validate pattern used by the
// per-surface configs elsewhere in the codebase, so callers can start from
// known-good defaults and override individual fields before validation.
package config

import (
	"fmt"
	"time"

	"github.com/tokenboard/tokenboard/internal/validate"
)

// Core holds all configuration parameters for a Tokenboard client session.
//
// This structure defines the complete set of tunables for the data-consistency
// layer: where the token API lives, how aggressively requests retry, how much
// response data is cached and for how long, and how vote batching behaves.
// A Core value is plain data; constructing one performs no I/O.
//
// Zero values are not usable. Build instances with DefaultCore and override
// fields as needed, then call Validate before handing the config to a session.
type Core struct {
	// APIBaseURL is the token API endpoint all requests resolve against
	APIBaseURL string `validate:"required,url"`

	// RequestTimeout bounds each HTTP attempt; retries get a fresh timeout
	RequestTimeout time.Duration `validate:"required"`

	// MaxRetries is the number of retries after the initial attempt for
	// retryable failures. Zero disables retrying.
	MaxRetries int `validate:"min=0"`

	// CacheMaxSize bounds the number of response cache entries
	CacheMaxSize int `validate:"required,min=1"`

	// DetailTTL is the cache lifetime for token detail responses
	DetailTTL time.Duration `validate:"required"`

	// SearchTTL is the cache lifetime for search result responses
	SearchTTL time.Duration `validate:"required"`

	// HolderTTL is the cache lifetime for holder balance responses
	HolderTTL time.Duration `validate:"required"`

	// DebounceDelay is the quiet period queued votes wait before flushing
	DebounceDelay time.Duration `validate:"required"`

	// MinVoteBalancePct is the minimum share of supply (percent) required
	// to vote on a token's submissions
	MinVoteBalancePct float64 `validate:"min=0"`

	// BypassHolderCheck skips the local holder-eligibility check before
	// batch submission. Development use only; the server still enforces
	// holder requirements.
	BypassHolderCheck bool

	// LogLevel controls logging verbosity (DEBUG, INFO, WARN, ERROR)
	LogLevel string `validate:"required"`
}

// DefaultCore creates a Core configuration with the standard defaults for
// local development: a local boardd endpoint, conservative retry budget, and
// the per-class TTLs the dashboard ships with.
//
// Callers override individual fields and then Validate. The defaults here and
// the constants in defaults.go are the single source of truth for out-of-box
// behavior.
func DefaultCore() *Core {
	return &Core{
		APIBaseURL:        DefaultAPIBaseURL,
		RequestTimeout:    DefaultRequestTimeout,
		MaxRetries:        DefaultMaxRetries,
		CacheMaxSize:      DefaultCacheMaxSize,
		DetailTTL:         DefaultDetailTTL,
		SearchTTL:         DefaultSearchTTL,
		HolderTTL:         DefaultHolderTTL,
		DebounceDelay:     DefaultDebounceDelay,
		MinVoteBalancePct: DefaultMinVoteBalancePct,
		BypassHolderCheck: false,
		LogLevel:          DefaultLogLevel,
	}
}

// Validate performs comprehensive validation of all configuration parameters
// to ensure a session built from this config can operate correctly.
//
// Checks endpoint format, timing parameters, and capacity bounds, returning
// the first problem found with enough context to correct it. Early validation
// keeps misconfiguration failures at construction time instead of surfacing
// as confusing request or cache behavior later.
func (c *Core) Validate() error {
	if err := validate.ValidateBaseURL(c.APIBaseURL); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.RequestTimeout, "request timeout"); err != nil {
		return err
	}
	if err := validate.ValidateNonNegativeCount(c.MaxRetries, "max retries"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveCount(c.CacheMaxSize, "cache max size"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.DetailTTL, "detail TTL"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.SearchTTL, "search TTL"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.HolderTTL, "holder TTL"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.DebounceDelay, "debounce delay"); err != nil {
		return err
	}
	if c.MinVoteBalancePct < 0 {
		return fmt.Errorf("minimum vote balance percentage cannot be negative")
	}
	if err := validate.ValidateRequiredString(c.LogLevel, "log level"); err != nil {
		return err
	}

	return nil
}
