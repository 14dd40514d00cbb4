// Package validate provides input validation utilities for Tokenboard
// operations, ensuring data integrity across API requests and configuration
// management.
//
// Implements validation rules for token identifiers, wallet addresses, and
// configuration parameters. Prevents malformed data from causing API failures
// or inconsistent cache keys.
//
// VALIDATION COVERAGE:
//   - Token IDs: Format validation for token and submission identifiers
//   - Wallet Addresses: Hex address format validation
//   - Configuration: Parameter validation for system settings
//
// Used throughout CLI tools, the dev API, and the data-consistency layer to
// ensure consistent input validation across all system entry points.

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// TokenIDFormat validates token and submission identifiers against naming
// requirements. Ensures IDs contain only [a-z0-9_-] and don't start/end with
// special characters.
//
// Necessary for stable cache keys, URL path embedding, and reliable lookups
// across the CLI and API surfaces.
func TokenIDFormat(id string) error {
	if id == "" {
		return fmt.Errorf("token ID cannot be empty")
	}

	// Check if ID contains only allowed characters: lowercase letters, numbers, hyphens, underscores
	validIDRegex := regexp.MustCompile(`^[a-z0-9_-]+$`)
	if !validIDRegex.MatchString(id) {
		return fmt.Errorf("token ID '%s' must contain only lowercase letters [a-z], numbers [0-9], hyphens (-), and underscores (_)", id)
	}

	// Ensure it starts and ends with alphanumeric (not - or _)
	if strings.HasPrefix(id, "-") || strings.HasPrefix(id, "_") ||
		strings.HasSuffix(id, "-") || strings.HasSuffix(id, "_") {
		return fmt.Errorf("token ID '%s' cannot start or end with hyphen (-) or underscore (_)", id)
	}

	return nil
}

// walletAddressRegex matches the canonical address format: 0x followed by
// exactly 40 hexadecimal characters.
var walletAddressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// WalletAddressFormat validates wallet addresses against the canonical hex
// format used throughout the platform. Addresses are "0x" followed by 40 hex
// characters, matching the derivation in the wallet package.
//
// Essential for holder lookups and vote submission where a malformed address
// would produce misses against the holder registry rather than clear errors.
func WalletAddressFormat(address string) error {
	if address == "" {
		return fmt.Errorf("wallet address cannot be empty")
	}

	if !walletAddressRegex.MatchString(address) {
		return fmt.Errorf("wallet address '%s' must be 0x followed by 40 hex characters", address)
	}

	return nil
}
