// Package commands provides the complete command tree implementation for boardctl.
//
// This package defines the hierarchical command structure for the Tokenboard CLI,
// implementing a resource-based command architecture similar to kubectl. Commands
// are organized into logical groups that match the dashboard's data surfaces.
//
// COMMAND STRUCTURE:
//   - token: Token lookup and holder inspection (show, search, holder)
//   - vote: Submission voting through signed batches (up, down, clear, batch, check)
//   - wallet: Session wallet inspection (status)
//   - info: Backend health and seeded data set overview
//
// All commands follow consistent patterns with standardized flag handling, error
// messages, and output formatting.
package commands

import (
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "boardctl",
	Short: "CLI tool for the Tokenboard token dashboard",
	Long: `Tokenboard CLI (boardctl) is a command-line tool for browsing tokens
and voting on community submissions through the dashboard's client layer.

Every invocation runs the same stack the dashboard uses: a retrying request
dispatcher, a TTL response cache, and a vote batcher that signs each batch
once with the session wallet.`,
	SilenceUsage: true,
	Example: `  # Show backend health
  boardctl info

  # Show a token with its submissions
  boardctl token show bullish-doge

  # Watch a token with live updates
  boardctl token show bullish-doge --watch

  # Search tokens by name or symbol
  boardctl token search doge

  # Upvote a submission (one signed batch of one)
  boardctl --wallet=<hex-seed> vote up bullish-doge-sub-1 --token bullish-doge

  # Queue several votes and flush them as a single signed batch
  boardctl --wallet=<hex-seed> vote batch bullish-doge-sub-1:up bullish-doge-sub-2:down --token bullish-doge

  # Connect to a backend on another port
  boardctl --api=127.0.0.1:9300 info

  # Output in JSON format
  boardctl --output=json token show bullish-doge
  boardctl -o json info`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	// Add all top-level commands to root
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(tokenCmd)
	RootCmd.AddCommand(voteCmd)
	RootCmd.AddCommand(walletCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, apiAddrPtr *string, logLevelPtr *string,
	timeoutPtr *int, verbosePtr *bool, outputPtr *string, walletSeedPtr *string, defaultAPIAddr string) {
	rootCmd.PersistentFlags().StringVar(apiAddrPtr, "api", defaultAPIAddr,
		"API server address of the Tokenboard backend")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", 8,
		"Request timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
	rootCmd.PersistentFlags().StringVar(walletSeedPtr, "wallet", "",
		"Hex-encoded 32-byte wallet seed for a deterministic address (ephemeral keypair when omitted)")
}
