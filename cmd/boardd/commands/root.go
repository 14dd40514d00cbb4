// Package commands provides the complete CLI command structure for the Tokenboard daemon.
//
// This package implements the root command and command hierarchy for boardd,
// the development backend daemon for the Tokenboard dashboard. It manages the
// CLI interface for daemon configuration, the seeded data set, and the vote
// acceptance policy through a flag system and validation pipeline.
//
// COMMAND ARCHITECTURE:
// The daemon uses a simple root command structure with extensive flag support:
//   - Root Command: Main daemon execution with dataset and policy configuration
//   - Flag System: Network binding, seeding, and vote policy settings
//   - Validation Pipeline: Pre-execution configuration validation and setup
//   - Logo Display: Daemon startup presentation
//
// DAEMON CAPABILITIES:
// The CLI starts a local REST backend that mirrors the production dashboard
// surface, letting the client stack exercise request dispatch, caching, and
// signed vote batches without network access to the real platform.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tokenboard/tokenboard/cmd/boardd/config"
	"github.com/tokenboard/tokenboard/cmd/boardd/daemon"
	"github.com/tokenboard/tokenboard/cmd/boardd/utils"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/version"
)

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// CleanupLogFile closes the log file handle if it exists
// This function is called during daemon shutdown to ensure proper cleanup
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// Log to stderr since we're cleaning up the log file
			// Use fmt.Fprintf instead of logging to avoid circular dependency
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// Root command for the Tokenboard daemon
var RootCmd = &cobra.Command{
	Use:   "boardd",
	Short: "Local development backend for the Tokenboard dashboard",
	Long: `Tokenboard daemon (boardd) provides a local development backend for the dashboard.

Seeds a deterministic in-memory data set of tokens, submissions, and holders,
then serves the dashboard REST API with production-like vote policy: signed
batches, per-submission cooldowns, holder checks, and per-wallet rate limits.

Auto-discovers a free API port when --api is not explicitly specified.`,
	Version:      version.BoarddVersion,
	SilenceUsage: true, // Don't show usage on errors
	Example: `  # Start with defaults - seeds 12 tokens and serves on port 8200
  boardd

  # Pin the API address and port (fails fast if the port is taken)
  boardd --api=127.0.0.1:9300

  # Bigger data set with a different seed
  boardd --seed=42 --tokens=50

  # Demo-friendly policy: no cooldown, tiny holder requirement
  boardd --cooldown=0 --min-balance=0.01`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Display logo first, before any validation or logging
		utils.DisplayLogo(version.BoarddVersion)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Check which flags were explicitly set by user
		CheckExplicitFlags(cmd)

		// Setup log file redirection if --log-file was specified
		if config.Global.IsExplicitlySet(config.LogFileField) && config.Global.LogFile != "" {
			// Create parent directories if they don't exist
			logDir := filepath.Dir(config.Global.LogFile)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
			}

			// Open/create log file with append mode
			var err error
			logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
			}

			// Redirect all logging to the file
			logging.SetOutput(logFileHandle)
		}

		// Configure logging level immediately after flags are parsed to prevent
		// INFO logs during config initialization when ERROR level is requested
		logging.SetLevel(config.Global.LogLevel)
		// Initialize configuration from environment variables and defaults
		config.InitializeConfig()
		// Re-apply logging level after config initialization to pick up
		// any environment variable overrides that may have changed the log level
		logging.SetLevel(config.Global.LogLevel)
		// Validate configuration and ensure log file cleanup on validation failure
		if err := config.ValidateConfig(); err != nil {
			// Close log file handle if validation fails to prevent resource leak
			CleanupLogFile()
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Ensure log file cleanup on exit
		defer CleanupLogFile()
		return daemon.Run()
	},
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	// Setup all flags
	SetupFlags(RootCmd)

	// Currently only has the root command
	// Future subcommands can be added here
}
