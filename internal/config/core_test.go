package config

import (
	"testing"
	"time"
)

// TestDefaultCore tests that the default configuration is valid and carries
// the documented defaults
func TestDefaultCore(t *testing.T) {
	cfg := DefaultCore()

	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultCore().Validate() = %v, want nil", err)
	}

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, DefaultAPIBaseURL)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, DefaultRequestTimeout)
	}
	if cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, DefaultMaxRetries)
	}
	if cfg.CacheMaxSize != DefaultCacheMaxSize {
		t.Errorf("CacheMaxSize = %d, want %d", cfg.CacheMaxSize, DefaultCacheMaxSize)
	}
	if cfg.DebounceDelay != DefaultDebounceDelay {
		t.Errorf("DebounceDelay = %v, want %v", cfg.DebounceDelay, DefaultDebounceDelay)
	}
	if cfg.BypassHolderCheck {
		t.Error("BypassHolderCheck should default to false")
	}
}

// TestCoreValidate tests validation of individual configuration fields
func TestCoreValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Core)
		expectError bool
	}{
		{
			name:        "valid default config",
			mutate:      func(c *Core) {},
			expectError: false,
		},
		{
			name:        "empty API base URL",
			mutate:      func(c *Core) { c.APIBaseURL = "" },
			expectError: true,
		},
		{
			name:        "malformed API base URL",
			mutate:      func(c *Core) { c.APIBaseURL = "not a url" },
			expectError: true,
		},
		{
			name:        "zero request timeout",
			mutate:      func(c *Core) { c.RequestTimeout = 0 },
			expectError: true,
		},
		{
			name:        "negative request timeout",
			mutate:      func(c *Core) { c.RequestTimeout = -time.Second },
			expectError: true,
		},
		{
			name:        "zero retries is allowed",
			mutate:      func(c *Core) { c.MaxRetries = 0 },
			expectError: false,
		},
		{
			name:        "negative retries",
			mutate:      func(c *Core) { c.MaxRetries = -1 },
			expectError: true,
		},
		{
			name:        "zero cache size",
			mutate:      func(c *Core) { c.CacheMaxSize = 0 },
			expectError: true,
		},
		{
			name:        "zero detail TTL",
			mutate:      func(c *Core) { c.DetailTTL = 0 },
			expectError: true,
		},
		{
			name:        "zero debounce delay",
			mutate:      func(c *Core) { c.DebounceDelay = 0 },
			expectError: true,
		},
		{
			name:        "negative balance percentage",
			mutate:      func(c *Core) { c.MinVoteBalancePct = -0.5 },
			expectError: true,
		},
		{
			name:        "zero balance percentage is allowed",
			mutate:      func(c *Core) { c.MinVoteBalancePct = 0 },
			expectError: false,
		},
		{
			name:        "empty log level",
			mutate:      func(c *Core) { c.LogLevel = "" },
			expectError: true,
		},
		{
			name:        "bypass holder check is allowed",
			mutate:      func(c *Core) { c.BypassHolderCheck = true },
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCore()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.expectError && err == nil {
				t.Error("Expected validation error, but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}
