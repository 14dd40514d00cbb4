// Package display provides output formatting and display functions for boardctl.
//
// This package handles all user-facing output formatting including table and JSON
// output for tokens, submissions, holder positions, and vote batch outcomes. It
// provides consistent formatting across all boardctl commands with support for
// verbose mode, different output formats, and proper error handling for display
// operations.
//
// The display functions handle:
// - Token detail and search result formatting with submission tallies
// - Holder position and eligibility display
// - Signed batch outcomes with per-submission commit and rollback results
// - Consistent table formatting using text/tabwriter
// - JSON output with proper indentation and error handling
//
// All display functions respect global configuration for output format, verbosity,
// and other user preferences while maintaining clean separation from business logic.
package display

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tokenboard/tokenboard/cmd/boardctl/config"
	"github.com/tokenboard/tokenboard/internal/cache"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/tokens"
	"github.com/tokenboard/tokenboard/internal/votes"
)

// BackendHealth mirrors the backend's health endpoint response for display
type BackendHealth struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Tokens    int       `json:"tokens"`
}

// batchOutcomeView gives the batch outcome stable JSON field names for CLI
// output
type batchOutcomeView struct {
	BatchID    string              `json:"batchId"`
	Committed  []votes.BatchResult `json:"committed"`
	RolledBack []votes.BatchError  `json:"rolledBack"`
}

// encodeJSON writes v to stdout as indented JSON with consistent error handling
func encodeJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Println("Error encoding JSON output")
	}
}

// DisplayBackendInfo displays backend health information including version,
// uptime, and the seeded token count. Provides the first-contact view for
// confirming the CLI can reach a backend and which data set it is serving.
func DisplayBackendInfo(health BackendHealth) {
	if config.Global.Output == "json" {
		encodeJSON(health)
	} else {
		fmt.Printf("Backend Information:\n")
		fmt.Printf("  Status:  %s\n", health.Status)
		fmt.Printf("  Version: %s\n", health.Version)
		fmt.Printf("  Uptime:  %s\n", health.Uptime)
		fmt.Printf("  Tokens:  %d\n", health.Tokens)
		if !health.Timestamp.IsZero() {
			fmt.Printf("  Time:    %s\n", health.Timestamp.Format(time.RFC3339))
		}
	}
}

// DisplayTokenInfo displays one token's detail including market figures and
// the community submissions under it with their current vote tallies.
// Submissions are sorted by score so the list reads like the dashboard's
// ranking.
func DisplayTokenInfo(info *tokens.TokenInfo) {
	if config.Global.Output == "json" {
		encodeJSON(info)
		return
	}

	fmt.Printf("Token Information:\n")
	fmt.Printf("  ID:     %s\n", info.ID)
	fmt.Printf("  Name:   %s\n", info.Name)
	fmt.Printf("  Symbol: %s\n", info.Symbol)
	fmt.Printf("  Price:  $%s\n", humanize.CommafWithDigits(info.PriceUSD, 4))
	fmt.Printf("  24h:    %+.2f%%\n", info.Change24h)
	fmt.Printf("  Supply: %s\n", humanize.Commaf(info.TotalSupply))
	fmt.Printf("  Score:  %.2f\n", info.Score)
	fmt.Println()

	if len(info.Submissions) == 0 {
		fmt.Println("No submissions")
		return
	}

	// Sort submissions by score (highest first) to match dashboard ranking
	subs := make([]tokens.Submission, len(info.Submissions))
	copy(subs, info.Submissions)
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].Score > subs[j].Score
	})

	fmt.Printf("Submissions:\n")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if config.Global.Verbose {
		fmt.Fprintln(w, "ID\tTITLE\tUP\tDOWN\tSCORE\tURL")
	} else {
		fmt.Fprintln(w, "ID\tTITLE\tUP\tDOWN\tSCORE")
	}

	for _, sub := range subs {
		if config.Global.Verbose {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%s\n",
				sub.ID, sub.Title, sub.Upvotes, sub.Downvotes, sub.Score, sub.URL)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\n",
				sub.ID, sub.Title, sub.Upvotes, sub.Downvotes, sub.Score)
		}
	}
}

// DisplayTokenSearch displays token search results in tabular or JSON format
// sorted by score. Handles empty result sets gracefully so automation can
// distinguish "no matches" from errors.
func DisplayTokenSearch(results []tokens.TokenInfo) {
	if len(results) == 0 {
		if config.Global.Output == "json" {
			fmt.Println("[]")
		} else {
			fmt.Println("No tokens found")
		}
		return
	}

	// Sort results by score (highest first)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if config.Global.Output == "json" {
		encodeJSON(results)
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintln(w, "ID\tNAME\tSYMBOL\tPRICE\t24H\tSCORE\tSUBMISSIONS")

		for _, token := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t%+.2f%%\t%.2f\t%d\n",
				token.ID, token.Name, token.Symbol,
				humanize.CommafWithDigits(token.PriceUSD, 4),
				token.Change24h, token.Score, len(token.Submissions))
		}
	}
}

// DisplayHolderInfo displays a wallet's position in one token: balance,
// share of supply, and whether that share clears the holder bar for voting.
func DisplayHolderInfo(tokenID, walletAddr string, holder *tokens.HolderInfo) {
	if config.Global.Output == "json" {
		obj := map[string]any{
			"token":    tokenID,
			"wallet":   walletAddr,
			"position": holder,
		}
		encodeJSON(obj)
		return
	}

	fmt.Printf("Holder Position:\n")
	fmt.Printf("  Token:   %s\n", tokenID)
	fmt.Printf("  Wallet:  %s\n", walletAddr)
	fmt.Printf("  Balance: %s\n", humanize.Commaf(holder.Balance))
	fmt.Printf("  Share:   %.4f%%\n", holder.Percentage)
	fmt.Printf("  Holder:  %t\n", holder.Holder)
}

// DisplayBatchOutcome displays the settlement of one signed vote batch with
// per-submission commit and rollback results. A nil outcome means nothing
// was queued, which the flush path reports rather than treating as an error.
func DisplayBatchOutcome(outcome *votes.BatchOutcome) {
	if outcome == nil {
		if config.Global.Output == "json" {
			fmt.Println("{}")
		} else {
			fmt.Println("No votes were queued")
		}
		return
	}

	if config.Global.Output == "json" {
		encodeJSON(batchOutcomeView{
			BatchID:    outcome.BatchID,
			Committed:  outcome.Committed,
			RolledBack: outcome.RolledBack,
		})
		return
	}

	fmt.Printf("Batch %s: %d committed, %d rolled back\n",
		outcome.BatchID, len(outcome.Committed), len(outcome.RolledBack))

	if len(outcome.Committed) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SUBMISSION\tVOTE\tUP\tDOWN\tSCORE")
		for _, result := range outcome.Committed {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\n",
				result.SubmissionID, result.VoteState,
				result.Upvotes, result.Downvotes, result.Score)
		}
		w.Flush()
	}

	if len(outcome.RolledBack) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SUBMISSION\tERROR\tCODE\tRETRY AFTER")
		for _, failure := range outcome.RolledBack {
			retryAfter := "-"
			if failure.RetryAfterSeconds > 0 {
				retryAfter = fmt.Sprintf("%ds", failure.RetryAfterSeconds)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				failure.SubmissionID, failure.Error, failure.Code, retryAfter)
		}
		w.Flush()
	}
}

// DisplayNoVote reports that a submission carries no active vote from the
// session wallet, so there is nothing to clear
func DisplayNoVote(submissionID string) {
	if config.Global.Output == "json" {
		fmt.Println("{}")
	} else {
		fmt.Printf("No active vote on %s\n", submissionID)
	}
}

// DisplayVoteStatuses displays the wallet's recorded votes for the requested
// submissions in request order. Submissions the wallet never voted on show
// as "none" with no tallies rather than being omitted, so the output always
// answers for every requested ID.
func DisplayVoteStatuses(submissionIDs []string, statuses map[string]tokens.VoteStatus) {
	if config.Global.Output == "json" {
		encodeJSON(statuses)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "SUBMISSION\tVOTE\tUP\tDOWN\tSCORE")

	for _, subID := range submissionIDs {
		status, ok := statuses[subID]
		if !ok {
			fmt.Fprintf(w, "%s\t%s\t-\t-\t-\n", subID, votes.VoteNone)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\n",
			subID, status.VoteState, status.Upvotes, status.Downvotes, status.Score)
	}
}

// DisplayWalletStatus displays the session wallet's address, connection
// state, and public key. The address shown is the one signed vote batches
// carry, so this is what to whitelist on a closed-holders backend.
func DisplayWalletStatus(address string, connected bool, publicKey string) {
	if config.Global.Output == "json" {
		obj := map[string]any{
			"address":   address,
			"connected": connected,
			"publicKey": publicKey,
		}
		encodeJSON(obj)
		return
	}

	fmt.Printf("Wallet Status:\n")
	fmt.Printf("  Address:    %s\n", address)
	fmt.Printf("  Connected:  %t\n", connected)
	fmt.Printf("  Public Key: %s\n", publicKey)
}

// DisplayCacheStats prints a one-line response cache summary. Verbose reads
// use it to make cache behavior visible: watch a token and the hit counter
// climbs until the TTL expires.
func DisplayCacheStats(stats cache.Stats) {
	fmt.Printf("\nCache: %d hits, %d misses, %d entries (%.0f%% hit rate, %d refreshes)\n",
		stats.Hits, stats.Misses, stats.Entries, stats.HitRate, stats.Refreshes)
}
