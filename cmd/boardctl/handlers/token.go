// Package handlers provides command handler functions for boardctl token
// operations.
//
// This file contains all token-related command handlers for reading token
// detail, searching the catalog, and inspecting the wallet's holder position.
// Every read goes through the session's token service, so responses are
// served from the TTL cache when fresh and refreshed in the background when
// stale, exactly as the dashboard experiences them.
//
// The token handlers manage:
// - Token detail retrieval with submission tallies and watch mode
// - Catalog search with score-ordered results
// - Holder position reads with optional cache bypass for fresh balances
// - Cache statistics surfacing in verbose mode for observing hit behavior
//
// Watch mode keeps one session across refreshes. Repeat fetches inside the
// detail TTL come from cache without touching the backend, which makes the
// cache lifecycle visible from the terminal.
package handlers

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/tokenboard/tokenboard/cmd/boardctl/client"
	"github.com/tokenboard/tokenboard/cmd/boardctl/config"
	"github.com/tokenboard/tokenboard/cmd/boardctl/display"
	"github.com/tokenboard/tokenboard/cmd/boardctl/utils"
	"github.com/tokenboard/tokenboard/internal/logging"
)

// HandleTokenShow handles the token show subcommand for displaying one
// token's detail including market figures and submission tallies. Supports
// live updates through watch mode; the session stays open across refreshes
// so reads inside the detail TTL are cache hits.
func HandleTokenShow(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	// args[0] is safe - argument validation handled by Cobra command definition
	tokenID := args[0]

	ctx := context.Background()
	sess, err := client.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	fetchAndDisplayToken := func() error {
		logging.Info("Fetching token '%s' from API server: %s", tokenID, config.Global.APIAddr)

		info, err := sess.Tokens.Token(ctx, tokenID)
		if err != nil {
			return err
		}

		display.DisplayTokenInfo(info)
		if config.Global.Verbose {
			display.DisplayCacheStats(sess.Tokens.Stats())
		}
		if !config.Token.Watch {
			logging.Success("Successfully retrieved token '%s' (%d submissions)",
				info.ID, len(info.Submissions))
		}
		return nil
	}

	return utils.RunWithWatch(fetchAndDisplayToken, config.Token.Watch)
}

// HandleTokenSearch handles the token search subcommand for querying the
// backend's catalog. Results are cached under the search TTL, so repeating
// a query within the window is served locally.
func HandleTokenSearch(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	// args[0] is safe - argument validation handled by Cobra command definition
	query := args[0]
	logging.Info("Searching tokens matching '%s' on API server: %s", query, config.Global.APIAddr)

	ctx := context.Background()
	sess, err := client.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	results, err := sess.Tokens.Search(ctx, query)
	if err != nil {
		return err
	}

	display.DisplayTokenSearch(results)
	if config.Global.Verbose {
		display.DisplayCacheStats(sess.Tokens.Stats())
	}
	logging.Success("Successfully retrieved %d matching tokens", len(results))
	return nil
}

// HandleTokenHolder handles the token holder subcommand for inspecting the
// session wallet's position in one token. This is the same read the vote
// engine runs before signing a batch, so a position that fails here fails
// eligibility there too. The --refresh flag bypasses the holder cache for
// a fresh balance.
func HandleTokenHolder(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	// args[0] is safe - argument validation handled by Cobra command definition
	tokenID := args[0]

	ctx := context.Background()
	sess, err := client.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	walletAddr := sess.Wallet.Address()
	logging.Info("Fetching holder position for wallet %s in token '%s' from API server: %s",
		logging.FormatAddress(walletAddr), tokenID, config.Global.APIAddr)

	holder, err := sess.Tokens.HolderBalance(ctx, tokenID, walletAddr, config.Token.Refresh)
	if err != nil {
		return err
	}

	display.DisplayHolderInfo(tokenID, walletAddr, holder)
	logging.Success("Successfully retrieved holder position for token '%s'", tokenID)
	return nil
}
