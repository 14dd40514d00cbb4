// Package commands provides wallet command definitions for boardctl.
//
// This file implements the wallet command tree for inspecting the session
// wallet: the keypair every vote batch is signed with. The CLI builds the
// wallet from the --wallet seed when given, or generates an ephemeral one.
//
// WALLET COMMANDS:
//   - status: Address, connection state, and public key of the session wallet
package commands

import (
	"github.com/spf13/cobra"
)

// Wallet command (parent command for wallet operations)
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Inspect the session wallet",
	Long: `Commands for inspecting the wallet boardctl signs vote batches with.

With --wallet the address is deterministic across invocations; without it a
fresh keypair is generated per run.`,
}

// Wallet status command
var walletStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session wallet's address and keys",
	Long: `Show the session wallet's address, connection state, and public key.

The address shown here is the one the backend sees on signed vote batches,
so this is the address to fund or whitelist on a closed-holders backend.`,
	Example: `  # Show the deterministic wallet for a seed
  boardctl --wallet=<hex-seed> wallet status

  # Show a freshly generated ephemeral wallet
  boardctl wallet status

  # Output in JSON format
  boardctl -o json --wallet=<hex-seed> wallet status`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// SetupWalletCommands initializes wallet commands and their flags
func SetupWalletCommands() {
	// Add subcommands to wallet command
	walletCmd.AddCommand(walletStatusCmd)
}

// GetWalletCommands returns the wallet command structures for handler assignment
func GetWalletCommands() *cobra.Command {
	return walletStatusCmd
}
