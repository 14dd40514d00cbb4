// Package session assembles the client layer into one explicit context
// object. A Session owns the dispatcher, the response cache, the token
// service, and the vote engine, all built from a single validated
// configuration and a wallet capability.
//
// Nothing here is process-global: callers construct a Session, pass it to
// whatever consumes it, and Close it when done. Two sessions in one process
// never share state, which is what makes CLI invocations independent and
// tests hermetic.
package session

import (
	"fmt"

	"github.com/tokenboard/tokenboard/internal/cache"
	"github.com/tokenboard/tokenboard/internal/config"
	"github.com/tokenboard/tokenboard/internal/dispatch"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/tokens"
	"github.com/tokenboard/tokenboard/internal/votes"
	"github.com/tokenboard/tokenboard/internal/wallet"
)

// Session is the assembled client layer. Fields are exported because the
// session is the composition root: consumers reach the component they need
// directly instead of re-wiring their own.
type Session struct {
	Config     *config.Core
	Dispatcher *dispatch.Dispatcher
	Cache      *cache.Cache
	Tokens     *tokens.Service
	Wallet     wallet.Wallet
	Votes      *votes.Engine
}

// New builds a session from a core configuration and a wallet. A nil config
// uses defaults. The vote engine's background worker starts immediately;
// Close stops it.
func New(cfg *config.Core, w wallet.Wallet) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultCore()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	if w == nil {
		return nil, fmt.Errorf("session requires a wallet")
	}

	dispatcherCfg := dispatch.DefaultConfig()
	dispatcherCfg.BaseURL = cfg.APIBaseURL
	dispatcherCfg.Timeout = cfg.RequestTimeout
	dispatcherCfg.MaxRetries = cfg.MaxRetries

	dispatcher, err := dispatch.NewDispatcher(dispatcherCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build dispatcher: %w", err)
	}

	responseCache, err := cache.New(&cache.Config{MaxSize: cfg.CacheMaxSize})
	if err != nil {
		return nil, fmt.Errorf("failed to build response cache: %w", err)
	}

	tokenService, err := tokens.NewService(&tokens.Config{
		DetailTTL: cfg.DetailTTL,
		SearchTTL: cfg.SearchTTL,
		HolderTTL: cfg.HolderTTL,
	}, dispatcher, responseCache)
	if err != nil {
		return nil, fmt.Errorf("failed to build token service: %w", err)
	}

	engine, err := votes.NewEngine(&votes.Config{
		DebounceDelay:     cfg.DebounceDelay,
		MinBalancePct:     cfg.MinVoteBalancePct,
		BypassHolderCheck: cfg.BypassHolderCheck,
	}, w, dispatcher, tokenService)
	if err != nil {
		return nil, fmt.Errorf("failed to build vote engine: %w", err)
	}
	engine.Start()

	logging.Debug("Session ready (API: %s, cache capacity: %d)",
		cfg.APIBaseURL, cfg.CacheMaxSize)

	return &Session{
		Config:     cfg,
		Dispatcher: dispatcher,
		Cache:      responseCache,
		Tokens:     tokenService,
		Wallet:     w,
		Votes:      engine,
	}, nil
}

// Close stops the vote engine (rolling back anything still queued) and
// releases the cache. The session is unusable afterwards.
func (s *Session) Close() {
	s.Votes.Stop()
	s.Cache.Clear()
	logging.Debug("Session closed")
}
