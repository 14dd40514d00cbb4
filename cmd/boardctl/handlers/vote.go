// Package handlers provides command handler functions for boardctl vote
// operations.
//
// This file contains all vote-related command handlers for acting on
// community submissions through the session's vote engine. Mutating
// handlers run the full batch pipeline: holder eligibility, one wallet
// signature over the canonical batch message, and per-submission commit or
// rollback from the server's partitioned response.
//
// The vote handlers manage:
// - Single up and down votes submitted as immediate batches of one
// - Vote clearing through the toggle rule against the recorded state
// - Multi-action batches queued in order and flushed under one signature
// - Recorded vote reads via point and bulk check endpoints
//
// Mutating handlers prime the session's vote tracker with the server's
// recorded votes before queueing anything. A fresh CLI process starts with
// an empty tracker, and the toggle rule computes against visible state, so
// without priming a repeat vote would re-cast instead of clearing.
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tokenboard/tokenboard/cmd/boardctl/client"
	"github.com/tokenboard/tokenboard/cmd/boardctl/config"
	"github.com/tokenboard/tokenboard/cmd/boardctl/display"
	"github.com/tokenboard/tokenboard/cmd/boardctl/utils"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/session"
	"github.com/tokenboard/tokenboard/internal/tokens"
	"github.com/tokenboard/tokenboard/internal/votes"
)

// batchAction is one parsed <submission-id>:<direction> argument from the
// vote batch command
type batchAction struct {
	SubmissionID string
	Vote         votes.VoteType
}

// parseBatchActions parses vote batch arguments of the form
// <submission-id>:<up|down>, preserving order. Order matters because
// repeated submissions collapse through the toggle rule as they queue.
func parseBatchActions(args []string) ([]batchAction, error) {
	actions := make([]batchAction, 0, len(args))
	for _, arg := range args {
		idx := strings.LastIndex(arg, ":")
		if idx <= 0 || idx == len(arg)-1 {
			return nil, fmt.Errorf("invalid vote action %q - expected format: <submission-id>:<up|down>", arg)
		}

		direction := votes.VoteType(arg[idx+1:])
		if direction != votes.VoteUp && direction != votes.VoteDown {
			return nil, fmt.Errorf("invalid vote direction %q in %q - expected up or down", arg[idx+1:], arg)
		}

		actions = append(actions, batchAction{
			SubmissionID: arg[:idx],
			Vote:         direction,
		})
	}
	return actions, nil
}

// uniqueSubmissionIDs returns the distinct submission IDs across the parsed
// actions in first-seen order
func uniqueSubmissionIDs(actions []batchAction) []string {
	seen := make(map[string]bool, len(actions))
	ids := make([]string, 0, len(actions))
	for _, action := range actions {
		if seen[action.SubmissionID] {
			continue
		}
		seen[action.SubmissionID] = true
		ids = append(ids, action.SubmissionID)
	}
	return ids
}

// primeVotes seeds the session's vote tracker with the server's recorded
// votes for the given submissions. Submissions the server does not report
// stay at VoteNone, which is correct for never-voted and unknown IDs.
func primeVotes(ctx context.Context, sess *session.Session, submissionIDs []string) error {
	walletAddr := sess.Wallet.Address()

	if len(submissionIDs) == 1 {
		status, err := sess.Tokens.CheckVote(ctx, submissionIDs[0], walletAddr)
		if err != nil {
			return err
		}
		sess.Votes.Tracker().Commit(submissionIDs[0], status.VoteState)
		return nil
	}

	statuses, err := sess.Tokens.BulkCheckVotes(ctx, submissionIDs, walletAddr)
	if err != nil {
		return err
	}
	for subID, status := range statuses {
		sess.Votes.Tracker().Commit(subID, status.VoteState)
	}
	return nil
}

// handleVoteDirection submits one vote as an immediate batch of one. The
// tracker is primed first so voting the recorded direction again clears it,
// matching what clicking the same arrow twice does on the dashboard.
func handleVoteDirection(submissionID string, direction votes.VoteType) error {
	ctx := context.Background()
	sess, err := client.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := primeVotes(ctx, sess, []string{submissionID}); err != nil {
		return err
	}

	logging.Info("Submitting %s vote for submission '%s' to API server: %s",
		direction, submissionID, config.Global.APIAddr)

	outcome, err := sess.Votes.VoteNow(ctx, submissionID, config.Vote.TokenID, direction)
	if err != nil {
		return err
	}

	display.DisplayBatchOutcome(outcome)
	if outcome != nil {
		logging.Success("Batch %s settled: %d committed, %d rolled back",
			outcome.BatchID, len(outcome.Committed), len(outcome.RolledBack))
	}
	return nil
}

// HandleVoteUp handles the vote up subcommand for upvoting one submission
// through the signed batch pipeline
func HandleVoteUp(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	// args[0] is safe - argument validation handled by Cobra command definition
	return handleVoteDirection(args[0], votes.VoteUp)
}

// HandleVoteDown handles the vote down subcommand for downvoting one
// submission through the signed batch pipeline
func HandleVoteDown(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	// args[0] is safe - argument validation handled by Cobra command definition
	return handleVoteDirection(args[0], votes.VoteDown)
}

// HandleVoteClear handles the vote clear subcommand for removing the
// wallet's active vote from a submission. Reads the recorded vote and
// re-votes the same direction, which the toggle rule turns into a clear.
// A submission without an active vote is a no-op.
func HandleVoteClear(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	// args[0] is safe - argument validation handled by Cobra command definition
	submissionID := args[0]

	ctx := context.Background()
	sess, err := client.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	status, err := sess.Tokens.CheckVote(ctx, submissionID, sess.Wallet.Address())
	if err != nil {
		return err
	}

	if status.VoteState == votes.VoteNone {
		display.DisplayNoVote(submissionID)
		logging.Success("No active vote on submission '%s'", submissionID)
		return nil
	}

	sess.Votes.Tracker().Commit(submissionID, status.VoteState)

	logging.Info("Clearing %s vote on submission '%s' via API server: %s",
		status.VoteState, submissionID, config.Global.APIAddr)

	outcome, err := sess.Votes.VoteNow(ctx, submissionID, config.Vote.TokenID, status.VoteState)
	if err != nil {
		return err
	}

	display.DisplayBatchOutcome(outcome)
	if outcome != nil {
		logging.Success("Batch %s settled: %d committed, %d rolled back",
			outcome.BatchID, len(outcome.Committed), len(outcome.RolledBack))
	}
	return nil
}

// HandleVoteBatch handles the vote batch subcommand for submitting several
// vote actions under one wallet signature. Actions queue in order through
// the same toggle and overwrite rules as individual votes, then a single
// flush signs and submits whatever survived the collapsing.
func HandleVoteBatch(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	actions, err := parseBatchActions(args)
	if err != nil {
		logging.Error("Invalid batch arguments: %v", err)
		return err
	}

	ctx := context.Background()
	sess, err := client.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := primeVotes(ctx, sess, uniqueSubmissionIDs(actions)); err != nil {
		return err
	}

	logging.Info("Queueing %d vote actions for one signed batch to API server: %s",
		len(actions), config.Global.APIAddr)

	for _, action := range actions {
		if err := sess.Votes.Vote(action.SubmissionID, config.Vote.TokenID, action.Vote); err != nil {
			return err
		}
	}

	outcome, err := sess.Votes.Flush(ctx)
	if err != nil {
		return err
	}

	display.DisplayBatchOutcome(outcome)
	if outcome != nil {
		logging.Success("Batch %s settled: %d committed, %d rolled back",
			outcome.BatchID, len(outcome.Committed), len(outcome.RolledBack))
	}
	return nil
}

// HandleVoteCheck handles the vote check subcommand for reading the
// wallet's recorded votes. One ID uses the point lookup, several are
// fetched in a single bulk request.
func HandleVoteCheck(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	ctx := context.Background()
	sess, err := client.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	walletAddr := sess.Wallet.Address()
	logging.Info("Checking recorded votes for %d submissions on API server: %s",
		len(args), config.Global.APIAddr)

	var statuses map[string]tokens.VoteStatus
	if len(args) == 1 {
		status, err := sess.Tokens.CheckVote(ctx, args[0], walletAddr)
		if err != nil {
			return err
		}
		statuses = map[string]tokens.VoteStatus{args[0]: *status}
	} else {
		statuses, err = sess.Tokens.BulkCheckVotes(ctx, args, walletAddr)
		if err != nil {
			return err
		}
	}

	display.DisplayVoteStatuses(args, statuses)
	logging.Success("Successfully retrieved vote status for %d submissions", len(args))
	return nil
}
