// Package utils provides common utility functions for the Tokenboard platform.
//
// This file implements unified ID generation and truncation functionality used
// across the codebase for creating and displaying unique identifiers. Provides
// consistent ID formats for requests, tokens, and other resources while
// eliminating code duplication.
//
// ID GENERATION STRATEGY:
// Uses crypto/rand for high-quality random data generation to ensure uniqueness
// and prevent collisions. All generated IDs follow the same 12-character
// hexadecimal format for consistency and readability.
//
// USAGE PATTERNS:
// - Request IDs: Correlation of dispatcher attempts and retries in logs
// - Token IDs: Seeded token identification in the development daemon
// - Batch IDs: Vote batch identification for lifecycle tracing
//
// The unified approach ensures consistent ID formats across all components
// while providing a single source of truth for ID handling logic.

package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TruncateLength is the display length used for shortened identifiers in
// operational logs and tables. Matches Docker-style short ID conventions.
const TruncateLength = 12

// GenerateID creates a unique 12-character hex identifier for platform resources.
// Uses crypto/rand to ensure uniqueness and prevent collisions.
//
// Essential for resource identification, logging correlation, and API operations
// where resources need to be uniquely referenced. The 12-character format
// balances uniqueness with human readability in logs and interfaces.
//
// Returns format: "a1b2c3d4e5f6" (12 hex characters, similar to Docker short IDs)
func GenerateID() (string, error) {
	// Generate 6 bytes of random data (12 hex characters)
	bytes := make([]byte, 6)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// TruncateIDSafe shortens an identifier to TruncateLength characters for display.
// Returns the input unchanged when it is already short enough, so callers can
// pass arbitrary IDs without length checks.
func TruncateIDSafe(id string) string {
	if len(id) <= TruncateLength {
		return id
	}
	return id[:TruncateLength]
}
