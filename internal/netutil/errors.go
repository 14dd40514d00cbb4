// Package netutil provides network utilities for the Tokenboard development
// daemon and client stack.
//
// This file implements unified network error checking utilities for
// consistent error classification across networking components. Provides
// proper type-based error detection that works reliably across operating
// systems and Go versions, avoiding fragile string-based error matching.
//
// Key capabilities:
//   - Address-in-use detection for port binding conflicts
//   - Connection-refused detection for unreachable backends
//   - Proper error unwrapping and type checking
//   - Cross-platform compatibility using syscall constants
package netutil

import (
	"errors"
	"net"
	"syscall"
)

// IsAddressInUseError checks if an error indicates "address already in use"
// using proper error type checking rather than string matching.
//
// Enables the port fallback logic in boardd startup to distinguish between
// port conflicts, which mean "try the next port", and other binding failures
// like permission errors, which mean stop.
func IsAddressInUseError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.EADDRINUSE)
	}
	return false
}

// IsConnectionRefusedError checks if an error indicates "connection refused"
// using proper error type checking rather than string matching.
//
// The request dispatcher uses this to classify transport failures: a refused
// connection means no backend is listening at the configured address, which
// deserves a different message than a slow or flaky one. Matching works
// through resty's url.Error wrapping since errors.As traverses the chain.
func IsConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return false
}
