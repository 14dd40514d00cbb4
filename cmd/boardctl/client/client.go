// Package client provides session construction for the boardctl CLI.
//
// This package opens the same client stack the Tokenboard dashboard embeds
// rather than implementing a bespoke HTTP client. Every boardctl invocation
// runs through the full session wiring so CLI usage exercises exactly what
// the dashboard ships: the retrying request dispatcher, the TTL response
// cache with background refresh, and the vote engine that signs one batch
// per flush.
//
// SESSION CONSTRUCTION:
// OpenSession assembles a session from global CLI flags layered over library
// defaults:
//   - API Address: --api flag mapped onto the session's base URL
//   - Timeouts: --timeout flag applied to the dispatcher's per-attempt budget
//   - Wallet: --wallet seed for a deterministic address, ephemeral otherwise
//   - Logging: --log-level propagated so session internals honor CLI verbosity
//
// The returned session is connected and ready to use. Callers own its
// lifecycle and must Close it to stop the vote engine and release the cache,
// typically via defer immediately after the OpenSession call.
package client

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/tokenboard/tokenboard/cmd/boardctl/config"
	coreconfig "github.com/tokenboard/tokenboard/internal/config"
	"github.com/tokenboard/tokenboard/internal/session"
	"github.com/tokenboard/tokenboard/internal/wallet"
)

// buildWallet constructs the session wallet from the --wallet flag. A hex
// seed yields the same address on every run, which is what holder checks
// and vote cooldowns key on. Without a seed each invocation gets a fresh
// ephemeral keypair.
func buildWallet() (wallet.Wallet, error) {
	if config.Global.WalletSeed == "" {
		return wallet.NewLocalWallet()
	}

	seed, err := hex.DecodeString(config.Global.WalletSeed)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet seed: %w", err)
	}
	return wallet.NewLocalWalletFromSeed(seed)
}

// OpenSession creates a connected session against the configured backend.
// The wallet is connected before returning because its address is blank
// until then and holder checks need it.
func OpenSession(ctx context.Context) (*session.Session, error) {
	w, err := buildWallet()
	if err != nil {
		return nil, err
	}

	core := coreconfig.DefaultCore()
	core.APIBaseURL = "http://" + config.Global.APIAddr
	core.RequestTimeout = time.Duration(config.Global.Timeout) * time.Second
	core.LogLevel = config.Global.LogLevel

	sess, err := session.New(core, w)
	if err != nil {
		return nil, err
	}

	if err := w.Connect(ctx); err != nil {
		sess.Close()
		return nil, fmt.Errorf("failed to connect wallet: %w", err)
	}

	return sess, nil
}
