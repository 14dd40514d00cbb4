// Package commands provides backend information command definitions for boardctl.
//
// This file implements the backend information command that displays the
// health of the API server the CLI is pointed at together with its seeded
// data set size and uptime.
//
// INFO COMMAND:
//   - info: Shows backend health, version, uptime, and token count

package commands

import (
	"github.com/spf13/cobra"
)

// Info command (backend information)
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show backend health and data set information",
	Long: `Show health information for the Tokenboard backend including version,
uptime, and the number of seeded tokens.

Useful as a first command to confirm the CLI can reach the backend.`,
	Example: `  # Show backend information
  boardctl info

  # Show info from a specific API server
  boardctl --api=127.0.0.1:9300 info

  # Output in JSON format
  boardctl -o json info`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// GetInfoCommand returns the info command for handler assignment
func GetInfoCommand() *cobra.Command {
	return infoCmd
}
