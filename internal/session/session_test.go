package session

import (
	"context"
	"testing"
	"time"

	"github.com/tokenboard/tokenboard/internal/config"
	"github.com/tokenboard/tokenboard/internal/tokens"
	"github.com/tokenboard/tokenboard/internal/votes"
	"github.com/tokenboard/tokenboard/internal/wallet"
)

func testWallet(t *testing.T) *wallet.LocalWallet {
	t.Helper()
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = 0x07
	}
	w, err := wallet.NewLocalWalletFromSeed(seed)
	if err != nil {
		t.Fatalf("NewLocalWalletFromSeed() error = %v", err)
	}
	if err := w.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return w
}

func TestNewSessionDefaults(t *testing.T) {
	s, err := New(nil, testWallet(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if s.Config == nil || s.Dispatcher == nil || s.Cache == nil ||
		s.Tokens == nil || s.Wallet == nil || s.Votes == nil {
		t.Error("New() left a session component nil")
	}
	if s.Config.APIBaseURL != config.DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %s, want default %s", s.Config.APIBaseURL, config.DefaultAPIBaseURL)
	}
}

func TestNewSessionValidation(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("New() accepted a nil wallet")
	}

	bad := config.DefaultCore()
	bad.APIBaseURL = "not a url"
	if _, err := New(bad, testWallet(t)); err == nil {
		t.Error("New() accepted a malformed API base URL")
	}

	bad = config.DefaultCore()
	bad.CacheMaxSize = 0
	if _, err := New(bad, testWallet(t)); err == nil {
		t.Error("New() accepted a zero cache size")
	}
}

func TestSessionWiresTokensThroughCache(t *testing.T) {
	cfg := config.DefaultCore()
	// Unroutable endpoint: any read that misses the cache would fail fast,
	// so a successful read proves the cache served it
	cfg.APIBaseURL = "http://127.0.0.1:1"
	cfg.RequestTimeout = 50 * time.Millisecond
	cfg.MaxRetries = 0
	cfg.DebounceDelay = time.Hour

	s, err := New(cfg, testWallet(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	s.Cache.Set("tokens:detail:demo", &tokens.TokenInfo{ID: "demo", Symbol: "DEMO"}, time.Hour)

	info, err := s.Tokens.Token(context.Background(), "demo")
	if err != nil {
		t.Fatalf("Token() error = %v, want cached read", err)
	}
	if info.Symbol != "DEMO" {
		t.Errorf("Token().Symbol = %s, want DEMO", info.Symbol)
	}
}

func TestSessionCloseRollsBackQueuedVotes(t *testing.T) {
	cfg := config.DefaultCore()
	cfg.APIBaseURL = "http://127.0.0.1:1"
	cfg.DebounceDelay = time.Hour // keep the batch queued until Close

	s, err := New(cfg, testWallet(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := s.Votes.Vote("sub-1", "demo", votes.VoteUp); err != nil {
		t.Fatalf("Vote() error = %v", err)
	}
	if got := s.Votes.Tracker().Vote("sub-1"); got != votes.VoteUp {
		t.Fatalf("tracker vote = %s before Close, want %s", got, votes.VoteUp)
	}

	s.Close()

	if got := s.Votes.Tracker().Vote("sub-1"); got != votes.VoteNone {
		t.Errorf("tracker vote = %s after Close, want %s", got, votes.VoteNone)
	}
	if got := s.Cache.Len(); got != 0 {
		t.Errorf("Cache.Len() = %d after Close, want 0", got)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a, err := New(nil, testWallet(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	b, err := New(nil, testWallet(t))
	if err != nil {
		t.Fatalf("second New() error = %v", err)
	}
	defer b.Close()

	a.Cache.Set("tokens:detail:demo", &tokens.TokenInfo{ID: "demo"}, time.Hour)
	if got := b.Cache.Len(); got != 0 {
		t.Errorf("second session cache Len() = %d, want 0 (no shared state)", got)
	}
}
