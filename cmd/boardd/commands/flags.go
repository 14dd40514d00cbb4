// Package commands contains Cobra CLI command definitions for boardd.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/tokenboard/tokenboard/cmd/boardd/config"
	"github.com/tokenboard/tokenboard/internal/api"
	"github.com/tokenboard/tokenboard/internal/api/store"
	configDefaults "github.com/tokenboard/tokenboard/internal/config"
)

// SetupFlags configures all command line flags for the daemon
func SetupFlags(cmd *cobra.Command) {
	storeDefaults := store.DefaultConfig()

	// API flags
	cmd.Flags().StringVar(&config.Global.APIAddr, "api", config.DefaultAPI,
		"Address and port for HTTP API server (e.g., "+config.DefaultAPI+")\n"+
			"If not specified, defaults to "+config.DefaultAPI)

	// Dataset flags
	cmd.Flags().Int64Var(&config.Global.Seed, "seed", storeDefaults.Seed,
		"Seed for the deterministic data set (same seed produces the same tokens)")
	cmd.Flags().IntVar(&config.Global.TokenCount, "tokens", storeDefaults.TokenCount,
		"Number of tokens to seed")
	cmd.Flags().BoolVar(&config.Global.ClosedHolders, "closed-holders", false,
		"Only pre-seeded wallets count as holders (default grants every new wallet a balance on first sight)")

	// Vote policy flags
	cmd.Flags().DurationVar(&config.Global.SignatureWindow, "signature-window", api.DefaultSignatureWindow,
		"Maximum age of a vote batch signature timestamp")
	cmd.Flags().DurationVar(&config.Global.Cooldown, "cooldown", configDefaults.DefaultVoteCooldown,
		"Per-wallet re-vote cooldown on the same submission (0 disables)")
	cmd.Flags().Float64Var(&config.Global.MinBalancePct, "min-balance", configDefaults.DefaultMinVoteBalancePct,
		"Minimum supply share (percent) a wallet must hold to vote")
	cmd.Flags().Float64Var(&config.Global.VoteRate, "vote-rate", float64(api.DefaultRateLimit),
		"Steady-state vote requests per second per wallet")
	cmd.Flags().IntVar(&config.Global.VoteBurst, "vote-burst", api.DefaultRateBurst,
		"Burst of vote requests a wallet may send above the steady rate")

	// Operational flags
	cmd.Flags().StringVar(&config.Global.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	cmd.Flags().StringVar(&config.Global.LogFile, "log-file", "",
		"Redirect all logging to the given file (created if missing, appended otherwise)")
}

// CheckExplicitFlags checks if flags were explicitly set by the user
func CheckExplicitFlags(cmd *cobra.Command) {
	config.Global.SetExplicitlySet(config.APIAddrField, cmd.Flags().Changed("api"))
	config.Global.SetExplicitlySet(config.LogFileField, cmd.Flags().Changed("log-file"))
}
