// Package commands provides vote command definitions for boardctl.
//
// This file implements the vote command tree for acting on community
// submissions through the client layer's vote batcher. Mutating commands run
// the full pipeline: optimistic state, holder eligibility check, one wallet
// signature over the batch, and per-submission commit or rollback.
//
// VOTE COMMANDS:
//   - up/down: Vote on one submission as an immediate batch of one
//   - clear: Remove the wallet's active vote from a submission
//   - batch: Queue several vote actions and flush them as a single signed batch
//   - check: Read the wallet's recorded votes for one or more submissions
//
// Voting follows the toggle rule: voting the same direction a submission
// already has clears the vote instead of stacking it.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tokenboard/tokenboard/internal/logging"
)

// Vote command (parent command for vote operations)
var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Vote on token submissions",
	Long: `Commands for voting on community submissions through signed batches.

Mutating commands require --token because eligibility is checked against the
wallet's position in the submission's token before anything is signed.`,
}

// Vote up command
var voteUpCmd = &cobra.Command{
	Use:   "up <submission-id>",
	Short: "Upvote a submission",
	Long: `Upvote one submission. The vote is signed and submitted immediately as
a batch of one.

If the wallet already has an upvote on the submission, the toggle rule
clears it instead.`,
	Example: `  # Upvote a submission
  boardctl --wallet=<hex-seed> vote up bullish-doge-sub-1 --token bullish-doge`,
	Args: voteSubmissionArgs,
	// RunE will be set by the main package that imports this
}

// Vote down command
var voteDownCmd = &cobra.Command{
	Use:   "down <submission-id>",
	Short: "Downvote a submission",
	Long: `Downvote one submission. The vote is signed and submitted immediately as
a batch of one.

If the wallet already has a downvote on the submission, the toggle rule
clears it instead.`,
	Example: `  # Downvote a submission
  boardctl --wallet=<hex-seed> vote down bullish-doge-sub-1 --token bullish-doge`,
	Args: voteSubmissionArgs,
	// RunE will be set by the main package that imports this
}

// Vote clear command
var voteClearCmd = &cobra.Command{
	Use:   "clear <submission-id>",
	Short: "Clear the wallet's vote on a submission",
	Long: `Remove the wallet's active vote from one submission. Looks up the
recorded vote first and toggles it off; if there is no active vote the
command is a no-op.`,
	Example: `  # Clear an earlier vote
  boardctl --wallet=<hex-seed> vote clear bullish-doge-sub-1 --token bullish-doge`,
	Args: voteSubmissionArgs,
	// RunE will be set by the main package that imports this
}

// Vote batch command
var voteBatchCmd = &cobra.Command{
	Use:   "batch <submission-id>:<up|down> [...]",
	Short: "Submit several vote actions as one signed batch",
	Long: `Queue several vote actions and flush them as a single batch carrying
one wallet signature.

Actions are applied in order before flushing, so repeating a submission
collapses to its final state: voting up twice toggles the vote on and back
off, and the batch submits the cleared state.`,
	Example: `  # Two votes, one signature
  boardctl --wallet=<hex-seed> vote batch bullish-doge-sub-1:up bullish-doge-sub-2:down --token bullish-doge

  # A later action on the same submission wins
  boardctl --wallet=<hex-seed> vote batch bullish-doge-sub-1:up bullish-doge-sub-1:down --token bullish-doge`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			cmd.Help()
			fmt.Println()
			logging.Error("Invalid arguments: expected at least 1 submission:action pair, got %d", len(args))
			return fmt.Errorf("requires at least 1 argument (submission-id:action)")
		}
		return nil
	},
	// RunE will be set by the main package that imports this
}

// Vote check command
var voteCheckCmd = &cobra.Command{
	Use:   "check <submission-id> [...]",
	Short: "Show the wallet's recorded votes",
	Long: `Show the wallet's recorded vote and the current tallies for one or more
submissions. A single ID uses the point lookup endpoint; several IDs are
fetched in one bulk request.`,
	Example: `  # Check one submission
  boardctl --wallet=<hex-seed> vote check bullish-doge-sub-1

  # Check several submissions in one request
  boardctl --wallet=<hex-seed> vote check bullish-doge-sub-1 bullish-doge-sub-2 degen-hamster-sub-1`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			cmd.Help()
			fmt.Println()
			logging.Error("Invalid arguments: expected at least 1 submission ID, got %d", len(args))
			return fmt.Errorf("requires at least 1 argument (submission ID)")
		}
		return nil
	},
	// RunE will be set by the main package that imports this
}

// voteSubmissionArgs validates the single submission-ID argument shared by
// the up, down, and clear commands
func voteSubmissionArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		cmd.Help()
		fmt.Println()
		logging.Error("Invalid arguments: expected 1 submission ID, got %d", len(args))
		return fmt.Errorf("requires exactly 1 argument (submission ID)")
	}
	return nil
}

// SetupVoteCommands initializes vote commands and their flags
func SetupVoteCommands() {
	// Add subcommands to vote command
	voteCmd.AddCommand(voteUpCmd)
	voteCmd.AddCommand(voteDownCmd)
	voteCmd.AddCommand(voteClearCmd)
	voteCmd.AddCommand(voteBatchCmd)
	voteCmd.AddCommand(voteCheckCmd)
}

// GetVoteCommands returns the vote command structures for handler assignment
func GetVoteCommands() (*cobra.Command, *cobra.Command, *cobra.Command, *cobra.Command, *cobra.Command) {
	return voteUpCmd, voteDownCmd, voteClearCmd, voteBatchCmd, voteCheckCmd
}

// SetupVoteFlags configures flags for vote commands
func SetupVoteFlags(voteUpCmd, voteDownCmd, voteClearCmd, voteBatchCmd *cobra.Command,
	tokenIDPtr *string) {
	// Mutating commands need the token for the holder eligibility check
	for _, cmd := range []*cobra.Command{voteUpCmd, voteDownCmd, voteClearCmd, voteBatchCmd} {
		cmd.Flags().StringVar(tokenIDPtr, "token", "",
			"Token the submission belongs to (required)")
		cmd.MarkFlagRequired("token")
	}

	// Check reads recorded votes only and needs no token context
}
