// Package config handles configuration validation for the Tokenboard
// development daemon.
//
// This package provides validation logic for all daemon configuration
// parameters before startup. Validation ensures the daemon can actually serve
// by:
//   - Parsing and validating the HTTP bind address
//   - Enforcing port requirements (no OS-assigned port 0)
//   - Checking the seeded dataset shape (token count bounds)
//   - Checking the vote policy (windows, cooldowns, rate limits)
//
// The validation process transforms raw configuration values into validated,
// normalized forms ready for server initialization, so misconfiguration fails
// at startup with a clear message instead of surfacing as confusing request
// behavior later.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/validate"
)

// InitializeConfig initializes configuration from environment variables and
// defaults. This runs after flags are parsed and before validation, ensuring
// consistent configuration state.
func InitializeConfig() {
	// Initialize DEBUG environment variable override
	if os.Getenv("DEBUG") == "true" {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	}

	// Initialize MaxPorts: default + environment variable override
	if Global.MaxPorts == 0 {
		Global.MaxPorts = 100
	}
	if maxPortsEnv := os.Getenv("MAX_PORTS"); maxPortsEnv != "" {
		if maxPorts, err := strconv.Atoi(maxPortsEnv); err == nil {
			Global.MaxPorts = maxPorts
			logging.Info("MAX_PORTS environment variable detected, setting max ports to %d", maxPorts)
		} else {
			logging.Warn("Invalid MAX_PORTS environment variable '%s', using default: %d", maxPortsEnv, Global.MaxPorts)
		}
	}
}

// ValidateConfig performs validation and normalization of all daemon
// configuration parameters before server startup.
//
// The bind address is parsed into host and port components, the log level is
// checked against the known set, and the dataset and vote policy knobs are
// range-checked. Returns the first validation failure with enough context to
// correct it.
func ValidateConfig() error {
	// Validate MaxPorts range
	if Global.MaxPorts < 1 || Global.MaxPorts > 10000 {
		logging.Error("Invalid max-ports value: %d (must be between 1 and 10000)", Global.MaxPorts)
		return fmt.Errorf("max-ports must be between 1 and 10000, got: %d", Global.MaxPorts)
	}

	// Parse and validate the API bind address. The address format is
	// "host:port"; boardctl connects here, so the port must be explicit.
	netAddr, err := validate.ParseBindAddress(Global.APIAddr)
	if err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address: %w", err)
	}

	// Port 0 (OS-assigned) would leave boardctl with nothing to point at
	if err := validate.ValidateField(netAddr.Port, "required,min=1,max=65535"); err != nil {
		logging.Error("API port cannot be 0 (auto-assigned) - the CLI needs a known port")
		return fmt.Errorf("daemon requires specific port (not 0): %w", err)
	}

	Global.APIAddr = netAddr.Host
	Global.APIPort = netAddr.Port

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	// Dataset shape
	if Global.TokenCount < 1 {
		logging.Error("Invalid token count: %d (must be at least 1)", Global.TokenCount)
		return fmt.Errorf("token count must be at least 1, got: %d", Global.TokenCount)
	}

	// Vote acceptance policy
	if Global.SignatureWindow <= 0 {
		logging.Error("Invalid signature window: %v (must be positive)", Global.SignatureWindow)
		return fmt.Errorf("signature window must be positive, got: %v", Global.SignatureWindow)
	}
	if Global.Cooldown < 0 {
		logging.Error("Invalid cooldown: %v (use 0 to disable)", Global.Cooldown)
		return fmt.Errorf("cooldown cannot be negative, got: %v", Global.Cooldown)
	}
	if Global.MinBalancePct < 0 {
		logging.Error("Invalid minimum balance: %.4f%% (cannot be negative)", Global.MinBalancePct)
		return fmt.Errorf("minimum balance percentage cannot be negative, got: %.4f", Global.MinBalancePct)
	}
	if Global.VoteRate <= 0 {
		logging.Error("Invalid vote rate: %.2f (must be positive)", Global.VoteRate)
		return fmt.Errorf("vote rate must be positive, got: %.2f", Global.VoteRate)
	}
	if Global.VoteBurst < 1 {
		logging.Error("Invalid vote burst: %d (must be at least 1)", Global.VoteBurst)
		return fmt.Errorf("vote burst must be at least 1, got: %d", Global.VoteBurst)
	}

	return nil
}
