// Package validate provides network validation utilities for Tokenboard
// components, ensuring proper network configuration for the development daemon
// and the CLI's API endpoint handling.
//
// Implements IP address, port range, and URL format validation using the
// go-playground/validator library. Prevents network configuration errors that
// could cause daemon startup failures or unreachable API endpoints.
//
// VALIDATION FEATURES:
//   - IP Address: IPv4 and IPv6 format validation
//   - Port Range: Valid port numbers (0-65535)
//   - Base URLs: Proper scheme://host[:port] API endpoint formatting
//   - Format: Proper "host:port" address formatting
//
// Used for validating bind addresses and API base URLs throughout daemon
// startup, CLI configuration, and session construction.
package validate

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New()
	// Using built-in validators: ip, url, min, max - no custom registration needed
}

// NetworkAddress represents a validated network address with host and port
// components for HTTP server binding. Provides a standardized structure for
// network addresses with built-in validation tags.
//
// The structure ensures bind addresses meet daemon requirements before being
// used for HTTP binding. Uses struct tags for automatic validation via the
// go-playground/validator library.
type NetworkAddress struct {
	Host string `validate:"required,ip"`              // Built-in IP validator
	Port int    `validate:"required,min=0,max=65535"` // Built-in range validator
}

// String returns the network address in standard "host:port" format suitable
// for network connections, configuration display, and logging.
func (na NetworkAddress) String() string {
	return fmt.Sprintf("%s:%d", na.Host, na.Port)
}

// ParseBindAddress parses and validates a "host:port" address string for
// daemon binding. Provides comprehensive validation including format checking,
// IP address validation, and port range verification.
//
// Essential for processing user-provided network addresses from configuration
// files and CLI arguments. Ensures bind endpoints are properly formatted and
// valid before attempting network operations, preventing runtime failures and
// providing clear error messages for troubleshooting.
func ParseBindAddress(addr string) (*NetworkAddress, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	netAddr := &NetworkAddress{
		Host: host,
		Port: port,
	}

	// Validate using struct tags
	if err := validate.Struct(netAddr); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return netAddr, nil
}

// ValidateField validates individual values against specified validation rules
// using the go-playground/validator library. Provides flexible validation for
// single fields without requiring struct definitions, useful for dynamic
// validation scenarios.
//
// Supports all built-in validation tags including IP addresses, numeric ranges,
// string patterns, and required field validation. Essential for validating
// individual configuration parameters and user inputs.
//
// Example: ValidateField("192.168.1.1", "required,ip")
func ValidateField(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

// ValidateBaseURL validates an API base URL for dispatcher configuration.
// Requires a parseable absolute URL with an http or https scheme so that
// the HTTP client can resolve request paths against it.
//
// Used when building sessions from CLI flags or config files to catch
// malformed endpoints before the first request is dispatched.
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("API base URL cannot be empty")
	}
	if err := validate.Var(rawURL, "required,url"); err != nil {
		return fmt.Errorf("invalid API base URL '%s': %w", rawURL, err)
	}
	return nil
}

// All validation uses built-in validators from go-playground/validator:
// - ip: validates IP addresses using net.ParseIP internally
// - url: validates absolute URL format
// - min/max: validates numeric ranges
// - required: ensures non-empty values
// Use ValidateField() for single field validation or struct tags for batch validation
