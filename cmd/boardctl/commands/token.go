// Package commands provides token command definitions for boardctl.
//
// This file implements the token command tree for looking up token details,
// searching the token catalog, and inspecting the session wallet's holder
// position. Every read goes through the client layer's response cache, so
// repeated lookups within a TTL window are served locally.
//
// TOKEN COMMANDS:
//   - show: Token detail with submissions and vote tallies
//   - search: Catalog search by ID, name, or symbol
//   - holder: The session wallet's balance and eligibility in a token
//
// The show command supports watch mode for live monitoring; because the
// session persists across refreshes, watch mode demonstrates cached reads
// being revalidated in the background as TTLs expire.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tokenboard/tokenboard/internal/logging"
)

// Token command (parent command for token operations)
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Look up and inspect tokens",
	Long: `Commands for looking up tokens on the Tokenboard backend.

This command group provides operations for showing token details, searching
the catalog, and checking the session wallet's holder position.`,
}

// Token show command
var tokenShowCmd = &cobra.Command{
	Use:   "show <token-id>",
	Short: "Show a token with its submissions",
	Long: `Show detail for one token including price, supply, and the community
submissions under it with their current vote tallies.

Reads are served through the response cache; within the detail TTL a repeated
show does not hit the backend at all.`,
	Example: `  # Show a token
  boardctl token show bullish-doge

  # Watch a token with live updates
  boardctl token show bullish-doge --watch

  # Output in JSON format
  boardctl -o json token show bullish-doge`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			cmd.Help()
			fmt.Println()
			logging.Error("Invalid arguments: expected 1 token ID, got %d", len(args))
			return fmt.Errorf("requires exactly 1 argument (token ID)")
		}
		return nil
	},
	// RunE will be set by the main package that imports this
}

// Token search command
var tokenSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tokens by ID, name, or symbol",
	Long: `Search the token catalog for entries whose ID, name, or symbol contains
the query string.

Search results are cached briefly, so paging through the same query is cheap.`,
	Example: `  # Search by name fragment
  boardctl token search doge

  # Search by symbol
  boardctl token search BDOGE

  # Output in JSON format
  boardctl -o json token search doge`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			cmd.Help()
			fmt.Println()
			logging.Error("Invalid arguments: expected 1 search query, got %d", len(args))
			return fmt.Errorf("requires exactly 1 argument (search query)")
		}
		return nil
	},
	// RunE will be set by the main package that imports this
}

// Token holder command (session wallet's position)
var tokenHolderCmd = &cobra.Command{
	Use:   "holder <token-id>",
	Short: "Show the session wallet's position in a token",
	Long: `Show the session wallet's balance, supply share, and holder status for
one token. This is the same check the vote batcher runs before accepting
votes on a token's submissions.

Pass --wallet to check a deterministic address; without it an ephemeral
wallet is generated, which on an open backend is granted a balance on
first sight.`,
	Example: `  # Check a deterministic wallet's position
  boardctl --wallet=<hex-seed> token holder bullish-doge

  # Bypass the holder cache and force a fresh fetch
  boardctl --wallet=<hex-seed> token holder bullish-doge --refresh

  # Output in JSON format
  boardctl -o json --wallet=<hex-seed> token holder bullish-doge`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			cmd.Help()
			fmt.Println()
			logging.Error("Invalid arguments: expected 1 token ID, got %d", len(args))
			return fmt.Errorf("requires exactly 1 argument (token ID)")
		}
		return nil
	},
	// RunE will be set by the main package that imports this
}

// SetupTokenCommands initializes token commands and their flags
func SetupTokenCommands() {
	// Add subcommands to token command
	tokenCmd.AddCommand(tokenShowCmd)
	tokenCmd.AddCommand(tokenSearchCmd)
	tokenCmd.AddCommand(tokenHolderCmd)
}

// GetTokenCommands returns the token command structures for handler assignment
func GetTokenCommands() (*cobra.Command, *cobra.Command, *cobra.Command) {
	return tokenShowCmd, tokenSearchCmd, tokenHolderCmd
}

// SetupTokenFlags configures flags for token commands
func SetupTokenFlags(tokenShowCmd, tokenHolderCmd *cobra.Command,
	watchPtr *bool, refreshPtr *bool) {
	// Add flags to token show command
	tokenShowCmd.Flags().BoolVarP(watchPtr, "watch", "w", false,
		"Watch for changes and continuously update the display")

	// Add flags to token holder command
	tokenHolderCmd.Flags().BoolVar(refreshPtr, "refresh", false,
		"Bypass the response cache and fetch the holder position fresh")
}
