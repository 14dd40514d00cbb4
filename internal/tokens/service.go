// Package tokens is the typed read surface over the dispatcher and the
// response cache. Everything the dashboard knows about tokens, submissions,
// holder positions, and recorded votes flows through here.
//
// READ PATH:
// Each read resolves against the cache first under a class-specific key
// (tokens:detail:{id}, tokens:search:{q}, tokens:holder:{id}:{wallet}) and
// falls through to the HTTP API on a miss. Fresh entries return without any
// network traffic; stale ones return immediately while a background refresh
// fetches the current data. Per-class TTLs come from the service config.
//
// VOTING PRECONDITION:
// Holder balance is special: the vote pipeline must not trust a cached
// position when deciding eligibility, so HolderBalance accepts a
// forceRefresh flag that bypasses the cache entirely. HolderStatus wraps
// that forced read in the shape the vote engine consumes.
//
// Vote checks (single and bulk) are never cached: they exist to reconcile
// optimistic state with the server and a stale answer would defeat that.
package tokens

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tokenboard/tokenboard/internal/cache"
	"github.com/tokenboard/tokenboard/internal/dispatch"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/validate"
)

// Client is the slice of the dispatcher the token service consumes.
// Narrow on purpose so tests can script responses without HTTP.
type Client interface {
	// GetJSON dispatches a GET request and unmarshals the response
	GetJSON(ctx context.Context, path string, opts *dispatch.RequestOptions, out any) error

	// PostJSON dispatches a POST request with a JSON body and unmarshals
	// the response
	PostJSON(ctx context.Context, path string, body any, out any) error
}

// Service answers token reads through the cache and vote checks straight
// from the API
type Service struct {
	config *Config
	client Client
	cache  *cache.Cache
}

// NewService creates a token service over a dispatcher client and a response
// cache. A nil config uses defaults.
func NewService(cfg *Config, client Client, c *cache.Cache) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid token service config: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("token service requires a client")
	}
	if c == nil {
		return nil, fmt.Errorf("token service requires a cache")
	}

	return &Service{config: cfg, client: client, cache: c}, nil
}

// detailKey builds the cache key for one token's detail record
func detailKey(tokenID string) string {
	return "tokens:detail:" + tokenID
}

// searchKey builds the cache key for one search query's results
func searchKey(query string) string {
	return "tokens:search:" + query
}

// holderKey builds the cache key for one wallet's position in one token
func holderKey(tokenID, walletAddr string) string {
	return "tokens:holder:" + tokenID + ":" + walletAddr
}

// Token returns one token's detail record, served stale-while-revalidate
// under the detail TTL
func (s *Service) Token(ctx context.Context, tokenID string) (*TokenInfo, error) {
	if err := validate.TokenIDFormat(tokenID); err != nil {
		return nil, err
	}

	key := detailKey(tokenID)
	val, err := s.cache.GetOrFetch(ctx, key, s.config.DetailTTL, func(ctx context.Context) (any, error) {
		var info TokenInfo
		path := "/api/tokens/" + url.PathEscape(tokenID)
		if err := s.client.GetJSON(ctx, path, nil, &info); err != nil {
			return nil, err
		}
		return &info, nil
	}, true)
	if err != nil {
		return nil, err
	}

	info, ok := val.(*TokenInfo)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for %s: %T", key, val)
	}
	return info, nil
}

// Search returns the tokens matching a query, served stale-while-revalidate
// under the search TTL
func (s *Service) Search(ctx context.Context, query string) ([]TokenInfo, error) {
	if err := validate.ValidateRequiredString(query, "search query"); err != nil {
		return nil, err
	}

	key := searchKey(query)
	val, err := s.cache.GetOrFetch(ctx, key, s.config.SearchTTL, func(ctx context.Context) (any, error) {
		var resp SearchResponse
		opts := &dispatch.RequestOptions{Query: map[string]string{"q": query}}
		if err := s.client.GetJSON(ctx, "/api/tokens/search", opts, &resp); err != nil {
			return nil, err
		}
		return resp.Results, nil
	}, true)
	if err != nil {
		return nil, err
	}

	results, ok := val.([]TokenInfo)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for %s: %T", key, val)
	}
	return results, nil
}

// HolderBalance returns one wallet's position in a token. forceRefresh
// bypasses the cache and fetches the live position, which the vote pipeline
// requires before deciding eligibility; display paths leave it false and
// accept the holder TTL.
func (s *Service) HolderBalance(ctx context.Context, tokenID, walletAddr string, forceRefresh bool) (*HolderInfo, error) {
	if err := validate.TokenIDFormat(tokenID); err != nil {
		return nil, err
	}
	if err := validate.WalletAddressFormat(walletAddr); err != nil {
		return nil, err
	}

	key := holderKey(tokenID, walletAddr)
	fetch := func(ctx context.Context) (any, error) {
		var info HolderInfo
		path := "/api/tokens/" + url.PathEscape(tokenID) + "/holder/" + url.PathEscape(walletAddr)
		if err := s.client.GetJSON(ctx, path, nil, &info); err != nil {
			return nil, err
		}
		return &info, nil
	}

	var val any
	var err error
	if forceRefresh {
		val, err = s.cache.ForceRefresh(ctx, key, s.config.HolderTTL, fetch)
	} else {
		val, err = s.cache.GetOrFetch(ctx, key, s.config.HolderTTL, fetch, true)
	}
	if err != nil {
		return nil, err
	}

	info, ok := val.(*HolderInfo)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for %s: %T", key, val)
	}
	return info, nil
}

// HolderStatus answers the vote engine's eligibility question with a forced
// fresh read: held flag and share of supply for the acting wallet
func (s *Service) HolderStatus(ctx context.Context, tokenID, walletAddr string) (bool, float64, error) {
	info, err := s.HolderBalance(ctx, tokenID, walletAddr, true)
	if err != nil {
		return false, 0, err
	}
	return info.Holder, info.Percentage, nil
}

// CheckVote returns the server's record of one wallet's vote on a
// submission. Never cached; callers use it to reconcile optimistic state.
func (s *Service) CheckVote(ctx context.Context, submissionID, walletAddr string) (*VoteStatus, error) {
	if err := validate.TokenIDFormat(submissionID); err != nil {
		return nil, err
	}
	if err := validate.WalletAddressFormat(walletAddr); err != nil {
		return nil, err
	}

	var status VoteStatus
	opts := &dispatch.RequestOptions{Query: map[string]string{
		"submissionId": submissionID,
		"wallet":       walletAddr,
	}}
	if err := s.client.GetJSON(ctx, "/api/votes/check", opts, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// BulkCheckVotes returns one wallet's votes across many submissions in a
// single request. Submissions without a recorded vote are absent from the
// result.
func (s *Service) BulkCheckVotes(ctx context.Context, submissionIDs []string, walletAddr string) (map[string]VoteStatus, error) {
	if len(submissionIDs) == 0 {
		return map[string]VoteStatus{}, nil
	}
	if err := validate.WalletAddressFormat(walletAddr); err != nil {
		return nil, err
	}
	for _, id := range submissionIDs {
		if err := validate.TokenIDFormat(id); err != nil {
			return nil, err
		}
	}

	req := &BulkCheckRequest{SubmissionIDs: submissionIDs, Wallet: walletAddr}
	var resp BulkCheckResponse
	if err := s.client.PostJSON(ctx, "/api/votes/bulk-check", req, &resp); err != nil {
		return nil, err
	}
	if resp.Votes == nil {
		return map[string]VoteStatus{}, nil
	}
	return resp.Votes, nil
}

// Invalidate drops every cached read touching a token: its detail record
// and all holder positions under it. Called after vote batches settle so
// the next read reflects the new tallies.
func (s *Service) Invalidate(tokenID string) int {
	removed := s.cache.ClearPattern(detailKey(tokenID))
	removed += s.cache.ClearPattern("tokens:holder:" + tokenID + ":")

	if removed > 0 {
		logging.Debug("Invalidated %d cached reads for token %s", removed, tokenID)
	}
	return removed
}

// WarmToken primes the detail cache for a token the UI is about to show.
// Errors are logged, not returned; warming is advisory.
func (s *Service) WarmToken(ctx context.Context, tokenID string) {
	if _, err := s.Token(ctx, tokenID); err != nil {
		logging.Debug("Cache warm for token %s failed: %v", tokenID, err)
	}
}

// Stats exposes the underlying cache counters for diagnostics
func (s *Service) Stats() cache.Stats {
	return s.cache.GetStats()
}

// TTLFor reports the cache lifetime the service applies to a key class.
// Diagnostic surface for boardctl's cache command.
func (s *Service) TTLFor(class string) (time.Duration, bool) {
	switch class {
	case "detail":
		return s.config.DetailTTL, true
	case "search":
		return s.config.SearchTTL, true
	case "holder":
		return s.config.HolderTTL, true
	default:
		return 0, false
	}
}
