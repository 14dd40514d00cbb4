// Package config provides configuration management for the boardctl CLI.
package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/validate"
)

// ValidateGlobalFlags validates all global flags before running any command
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	if err := ValidateAPIAddress(); err != nil {
		return err
	}

	if err := ValidateOutputFormat(); err != nil {
		return err
	}

	if err := ValidateWalletSeed(); err != nil {
		return err
	}

	return nil
}

// ValidateAPIAddress validates the --api flag
func ValidateAPIAddress() error {
	// Parse and validate API server address
	netAddr, err := validate.ParseBindAddress(Global.APIAddr)
	if err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address - expected format: host:port (e.g., 127.0.0.1:8200)")
	}

	// Reject unroutable 0.0.0.0 target for client connections
	if netAddr.Host == "0.0.0.0" {
		logging.Error("Unroutable API address '0.0.0.0:%d' - cannot connect to 0.0.0.0", netAddr.Port)
		return fmt.Errorf("unroutable API address - use 127.0.0.1 or a specific IP address")
	}

	// Client must connect to specific port (not 0)
	if err := validate.ValidateField(netAddr.Port, "required,min=1,max=65535"); err != nil {
		logging.Error("Invalid API port %d: %v", netAddr.Port, err)
		return fmt.Errorf("API port must be between 1-65535")
	}

	return nil
}

// ValidateOutputFormat validates the --output flag
func ValidateOutputFormat() error {
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[Global.Output] {
		logging.Error("Invalid output format '%s' - valid formats are: table, json", Global.Output)
		return fmt.Errorf("invalid output format - valid: table, json")
	}
	return nil
}

// ValidateWalletSeed validates the --wallet flag. An empty seed is fine and
// means boardctl runs with a fresh ephemeral keypair.
func ValidateWalletSeed() error {
	if Global.WalletSeed == "" {
		return nil
	}

	seed, err := hex.DecodeString(Global.WalletSeed)
	if err != nil {
		logging.Error("Invalid wallet seed: %v", err)
		return fmt.Errorf("wallet seed must be hex-encoded")
	}
	if len(seed) != ed25519.SeedSize {
		logging.Error("Invalid wallet seed length: %d bytes (expected %d)", len(seed), ed25519.SeedSize)
		return fmt.Errorf("wallet seed must decode to %d bytes (%d hex characters)", ed25519.SeedSize, ed25519.SeedSize*2)
	}
	return nil
}
