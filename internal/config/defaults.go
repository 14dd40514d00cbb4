// Package config provides common default configuration values shared across
// Tokenboard components (dispatcher, cache, votes, dev API). This centralizes
// configuration management and ensures consistency between the CLI, the
// data-consistency layer, and the development daemon.
package config

import "time"

const (
	// DefaultAPIBaseURL is the default token API endpoint
	// Points at a local boardd development daemon
	DefaultAPIBaseURL = "http://127.0.0.1:8200"

	// DefaultLogLevel is the default log level for all components
	// INFO provides good balance of visibility without verbose debug output
	DefaultLogLevel = "INFO"

	// DefaultBindAddr is the default bind address for the development daemon
	// Using 0.0.0.0 allows binding to all available network interfaces
	DefaultBindAddr = "0.0.0.0"

	// DefaultAPIPort is the default HTTP port for the development daemon
	DefaultAPIPort = 8200
)

const (
	// DefaultRequestTimeout bounds each individual HTTP attempt made by the
	// dispatcher. Retries get a fresh timeout.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultMaxRetries is the number of retries after the initial attempt
	// for retryable failures (5xx, 429, timeouts)
	DefaultMaxRetries = 2

	// DefaultCacheMaxSize bounds the number of response cache entries
	DefaultCacheMaxSize = 500

	// DefaultDetailTTL is the cache lifetime for token detail responses
	DefaultDetailTTL = 30 * time.Second

	// DefaultSearchTTL is the cache lifetime for search result responses
	// Search results tolerate more staleness than live token data
	DefaultSearchTTL = 60 * time.Second

	// DefaultHolderTTL is the cache lifetime for holder balance responses
	// Kept short since balances gate vote eligibility
	DefaultHolderTTL = 15 * time.Second

	// DefaultDebounceDelay is the quiet period collected votes wait for
	// further input before flushing as a single signed batch
	DefaultDebounceDelay = 500 * time.Millisecond

	// DefaultMinVoteBalancePct is the minimum share of token supply (in
	// percent) a wallet must hold to vote on that token's submissions
	DefaultMinVoteBalancePct = 0.1

	// DefaultVoteCooldown is the dev daemon's per-wallet cooldown between
	// votes on the same submission
	DefaultVoteCooldown = 30 * time.Second
)
