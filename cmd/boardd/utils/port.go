// Package utils contains utility functions for the Tokenboard daemon.
// This includes port discovery helpers used during daemon startup.
package utils

import (
	"github.com/tokenboard/tokenboard/cmd/boardd/config"
	"github.com/tokenboard/tokenboard/internal/netutil"
)

// FindAvailablePort finds an available port starting from the given port on the specified address.
// Only TCP availability matters since the daemon serves HTTP exclusively.
// Increments port numbers until an available one is found.
// Returns the available port or error if none found within reasonable range.
//
// The discovered port is released again so the API server can bind it for
// real; the daemon logs the chosen port before startup proceeds.
func FindAvailablePort(address string, startPort int) (int, error) {
	binder := netutil.NewPortBinder()

	listener, port, err := binder.BindTCPWithFallback(address, startPort, GetMaxPorts())
	if err != nil {
		return 0, err
	}
	listener.Close()

	return port, nil
}

// GetMaxPorts returns the configured maximum number of ports to try during port discovery.
// This allows the port allocation logic to respect the user's MAX_PORTS configuration
// when running many daemons side by side on one host.
func GetMaxPorts() int {
	if config.Global.MaxPorts <= 0 {
		return 100 // Default fallback if somehow not set
	}
	return config.Global.MaxPorts
}
