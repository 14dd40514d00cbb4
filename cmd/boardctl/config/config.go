// Package config provides configuration management for the boardctl CLI.
package config

import "github.com/tokenboard/tokenboard/internal/version"

const (
	DefaultAPIAddr = "127.0.0.1:8200" // Default API server address (routable)
)

// Version returns the current boardctl CLI version from the centralized version package
var Version = version.BoardctlVersion

// Global holds the global CLI configuration
var Global struct {
	APIAddr    string // Address of the Tokenboard API server to connect to
	LogLevel   string // Log level for CLI operations
	Timeout    int    // Connection timeout in seconds
	Verbose    bool   // Show verbose output
	Output     string // Output format: table, json
	WalletSeed string // Hex-encoded wallet seed (ephemeral keypair when empty)
}

// Token holds the token command configuration
var Token struct {
	Watch   bool // Enable watch mode for live updates
	Refresh bool // Bypass the response cache for holder lookups
}

// Vote holds the vote command configuration
var Vote struct {
	TokenID string // Token the target submissions belong to
}
