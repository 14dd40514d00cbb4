package votes

import (
	"fmt"
	"time"

	"github.com/tokenboard/tokenboard/internal/config"
	"github.com/tokenboard/tokenboard/internal/validate"
)

// Config holds vote engine configuration parameters. Timing and threshold
// values control how aggressively intents are collapsed and who is allowed
// to vote.
type Config struct {
	// DebounceDelay is the quiet period the queue waits for further votes
	// before flushing as one signed batch
	DebounceDelay time.Duration `json:"debounce_delay"`

	// MinBalancePct is the minimum share of token supply (in percent) a
	// wallet must hold to vote on that token's submissions
	MinBalancePct float64 `json:"min_balance_pct"`

	// BypassHolderCheck skips the holder-eligibility read entirely.
	// Development convenience; the server still enforces its own checks.
	BypassHolderCheck bool `json:"bypass_holder_check"`
}

// DefaultConfig returns vote engine configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DebounceDelay:     config.DefaultDebounceDelay,
		MinBalancePct:     config.DefaultMinVoteBalancePct,
		BypassHolderCheck: false,
	}
}

// Validate checks if the vote engine configuration is valid
func (c *Config) Validate() error {
	if err := validate.ValidatePositiveTimeout(c.DebounceDelay, "debounce delay"); err != nil {
		return err
	}
	if c.MinBalancePct < 0 {
		return fmt.Errorf("minimum balance percentage must be non-negative, got %f", c.MinBalancePct)
	}
	return nil
}
