// Package dispatch configuration for the HTTP request layer.
//
// Defines the tunables a dispatcher is built from: where the token API lives,
// how long each attempt may take, and how many retries the policy may spend.
// Follows the DefaultConfig + Validate pattern used by the other component
// configs so sessions can derive a dispatcher config from the consolidated
// core configuration.
package dispatch

import (
	"fmt"
	"time"

	"github.com/tokenboard/tokenboard/internal/config"
	"github.com/tokenboard/tokenboard/internal/validate"
	"github.com/tokenboard/tokenboard/internal/version"
)

// Config holds all parameters required to construct a Dispatcher.
type Config struct {
	BaseURL    string        // Token API endpoint all paths resolve against
	Timeout    time.Duration // Per-attempt time budget; retries get a fresh one
	MaxRetries int           // Retries after the initial attempt; zero disables retrying
	UserAgent  string        // Identifies the client in API request logs
}

// DefaultConfig creates a dispatcher configuration with the standard local
// development defaults and the CLI user agent.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    config.DefaultAPIBaseURL,
		Timeout:    config.DefaultRequestTimeout,
		MaxRetries: config.DefaultMaxRetries,
		UserAgent:  fmt.Sprintf("boardctl/%s", version.BoardctlVersion),
	}
}

// Validate checks that the configuration can produce a working dispatcher:
// a well-formed endpoint, a positive attempt budget, and a non-negative
// retry budget.
func (c *Config) Validate() error {
	if err := validate.ValidateBaseURL(c.BaseURL); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.Timeout, "request timeout"); err != nil {
		return err
	}
	if err := validate.ValidateNonNegativeCount(c.MaxRetries, "max retries"); err != nil {
		return err
	}
	if err := validate.ValidateRequiredString(c.UserAgent, "user agent"); err != nil {
		return err
	}

	return nil
}
