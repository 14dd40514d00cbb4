// Package main provides the entry point for the Tokenboard CLI tool (boardctl).
//
// This package implements the main executable for the token dashboard CLI that
// lets developers drive a Tokenboard backend from the terminal. Every command
// runs through the same client stack the dashboard embeds, so boardctl doubles
// as a workbench for observing cache behavior, request retries, and the signed
// vote batch lifecycle against a live backend.
//
// CLI ARCHITECTURE:
// The main package orchestrates the complete CLI system including:
//   - Command Structure: Hierarchical resource-based commands (token, vote, wallet)
//   - Handler Integration: Command execution through a per-invocation session
//   - Flag Management: Global and command-specific configuration options
//   - Configuration Binding: CLI state management and validation pipeline
//
// COMMAND CATEGORIES:
//   - Token Commands: Token detail, catalog search, and holder position reads
//   - Vote Commands: Signed vote batches with per-submission commit and rollback
//   - Wallet Commands: Session wallet inspection and address discovery
//   - Info Commands: Backend health, version, and data set visibility
//
// INITIALIZATION FLOW:
// 1. Command structure setup with hierarchical organization
// 2. Flag configuration for global and command-specific options
// 3. Handler assignment linking commands to session operations
// 4. Configuration validation and CLI state management
// 5. Command execution with proper error handling and exit codes
//
// The CLI follows kubectl-style patterns for intuitive usage with consistent
// interfaces, comprehensive help text, and predictable JSON output for scripts.
package main

import (
	"os"

	"github.com/tokenboard/tokenboard/cmd/boardctl/commands"
	"github.com/tokenboard/tokenboard/cmd/boardctl/config"
	"github.com/tokenboard/tokenboard/cmd/boardctl/handlers"
)

func init() {
	// Get root command from commands package
	rootCmd := commands.RootCmd

	// Set version and validation
	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	// Setup all command structures
	commands.SetupCommands()
	commands.SetupTokenCommands()
	commands.SetupVoteCommands()
	commands.SetupWalletCommands()

	// Setup global flags
	commands.SetupGlobalFlags(rootCmd, &config.Global.APIAddr, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.Verbose, &config.Global.Output,
		&config.Global.WalletSeed, config.DefaultAPIAddr)

	// Setup token command flags
	tokenShowCmd, _, tokenHolderCmd := commands.GetTokenCommands()
	commands.SetupTokenFlags(tokenShowCmd, tokenHolderCmd,
		&config.Token.Watch, &config.Token.Refresh)

	// Setup vote command flags
	voteUpCmd, voteDownCmd, voteClearCmd, voteBatchCmd, _ := commands.GetVoteCommands()
	commands.SetupVoteFlags(voteUpCmd, voteDownCmd, voteClearCmd, voteBatchCmd,
		&config.Vote.TokenID)

	// Setup command handlers
	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	// Get command references
	tokenShowCmd, tokenSearchCmd, tokenHolderCmd := commands.GetTokenCommands()
	voteUpCmd, voteDownCmd, voteClearCmd, voteBatchCmd, voteCheckCmd := commands.GetVoteCommands()
	walletStatusCmd := commands.GetWalletCommands()
	infoCmd := commands.GetInfoCommand()

	// Assign handlers
	tokenShowCmd.RunE = handlers.HandleTokenShow
	tokenSearchCmd.RunE = handlers.HandleTokenSearch
	tokenHolderCmd.RunE = handlers.HandleTokenHolder
	voteUpCmd.RunE = handlers.HandleVoteUp
	voteDownCmd.RunE = handlers.HandleVoteDown
	voteClearCmd.RunE = handlers.HandleVoteClear
	voteBatchCmd.RunE = handlers.HandleVoteBatch
	voteCheckCmd.RunE = handlers.HandleVoteCheck
	walletStatusCmd.RunE = handlers.HandleWalletStatus
	infoCmd.RunE = handlers.HandleBackendInfo
}

// main is the main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
