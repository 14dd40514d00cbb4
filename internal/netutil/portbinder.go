// Package netutil provides network utilities for the Tokenboard development
// daemon and client stack.
//
// This file implements port binding utilities that reserve ports by binding
// them immediately instead of probing with a test listener. The traditional
// "find free port + close + bind later" pattern leaves a window where another
// process can claim the port between discovery and actual binding; holding
// the listener until the server takes it over closes that window.
//
// Key capabilities:
//   - Atomic port reservation through pre-binding
//   - Bounded fallback search when the preferred port is taken
//   - IPv4-specific binding for consistent cross-platform behavior
//   - Port extraction from bound listeners for startup logging
//
// boardd uses these utilities for its HTTP API listener, both when the user
// pins a port and when the daemon searches for a free one.
package netutil

import (
	"errors"
	"fmt"
	"net"
)

// DefaultMaxPortAttempts bounds the fallback search when no explicit limit
// is given
const DefaultMaxPortAttempts = 100

// AddressInUseError represents a "port already in use" error that preserves
// the original error for proper type checking while providing user-friendly messages.
type AddressInUseError struct {
	Port    int
	Address string
	Err     error
}

func (e *AddressInUseError) Error() string {
	return fmt.Sprintf("port %d is already in use on %s", e.Port, e.Address)
}

func (e *AddressInUseError) Unwrap() error {
	return e.Err
}

// PortBinder provides utilities for pre-binding network listeners to
// eliminate port allocation race conditions during daemon startup.
type PortBinder struct{}

// NewPortBinder creates a new PortBinder instance for managing port
// reservations
func NewPortBinder() *PortBinder {
	return &PortBinder{}
}

// BindTCP creates and binds a TCP listener to the specified address,
// immediately reserving the port for exclusive use by this process. Returns
// the bound listener so the HTTP server can serve on it directly.
//
// Forces IPv4 binding for consistent behavior across platforms and to avoid
// dual-stack complications between the daemon and the CLI's loopback
// connections.
func (pb *PortBinder) BindTCP(address string, port int) (net.Listener, error) {
	addr := fmt.Sprintf("%s:%d", address, port)

	// Force IPv4 for consistent behavior across platforms
	listener, err := net.Listen("tcp4", addr)
	if err != nil {
		if IsAddressInUseError(err) {
			// Return a wrapped error that preserves the original for type checking
			return nil, &AddressInUseError{
				Port:    port,
				Address: address,
				Err:     err,
			}
		}
		return nil, fmt.Errorf("failed to bind TCP to %s: %w", addr, err)
	}

	return listener, nil
}

// BindTCPWithFallback attempts to bind to the preferred port, but if that
// fails with "address in use", it automatically searches for the next
// available port starting from the preferred port. Returns both the listener
// and the actual port that was bound.
//
// Development machines routinely run several boardd instances at once, so
// predictable assignment with automatic fallback is the default startup
// behavior. A maxAttempts of zero or less falls back to
// DefaultMaxPortAttempts; the search never walks past port 65535.
func (pb *PortBinder) BindTCPWithFallback(address string, preferredPort, maxAttempts int) (net.Listener, int, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPortAttempts
	}

	for port := preferredPort; port < preferredPort+maxAttempts && port <= 65535; port++ {
		listener, err := pb.BindTCP(address, port)
		if err != nil {
			var addrInUseErr *AddressInUseError
			if errors.As(err, &addrInUseErr) {
				// Port is busy, try next port
				continue
			}
			// Some other error (permission, invalid address, etc.)
			return nil, 0, fmt.Errorf("failed to bind TCP starting from port %d: %w", preferredPort, err)
		}

		return listener, port, nil
	}

	return nil, 0, fmt.Errorf("no available TCP port found in range %d-%d on %s",
		preferredPort, preferredPort+maxAttempts-1, address)
}
