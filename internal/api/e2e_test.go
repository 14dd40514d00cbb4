package api

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tokenboard/tokenboard/internal/api/store"
	"github.com/tokenboard/tokenboard/internal/config"
	"github.com/tokenboard/tokenboard/internal/session"
	"github.com/tokenboard/tokenboard/internal/votes"
	"github.com/tokenboard/tokenboard/internal/wallet"
)

// e2eStack is a full client stack wired against an in-process dev backend
type e2eStack struct {
	server  *Server
	session *session.Session
	wallet  *wallet.LocalWallet
}

// newE2EStack builds a seeded backend behind httptest and a client session
// pointed at it. The wallet is registered as a healthy holder of every
// seeded token so vote eligibility is deterministic.
func newE2EStack(t *testing.T, cooldown time.Duration) *e2eStack {
	t.Helper()

	apiCfg := DefaultConfig()
	apiCfg.StoreConfig = &store.Config{Seed: 11, TokenCount: 4, OpenHolders: false}
	apiCfg.CooldownInterval = cooldown

	server, err := NewServer(apiCfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	w, err := wallet.NewLocalWalletFromSeed(bytes.Repeat([]byte{0x6b}, 32))
	if err != nil {
		t.Fatalf("NewLocalWalletFromSeed() error = %v", err)
	}
	if err := w.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	for _, tokenID := range server.Store().TokenIDs() {
		if err := server.Store().RegisterHolder(tokenID, w.Address(), 1.5); err != nil {
			t.Fatalf("RegisterHolder(%s) error = %v", tokenID, err)
		}
	}

	core := config.DefaultCore()
	core.APIBaseURL = ts.URL
	core.DebounceDelay = time.Hour // flush manually

	sess, err := session.New(core, w)
	if err != nil {
		t.Fatalf("session.New() error = %v", err)
	}
	t.Cleanup(sess.Close)

	return &e2eStack{server: server, session: sess, wallet: w}
}

// TestEndToEndTokenReads drives token reads through the dispatcher and
// cache against the dev backend
func TestEndToEndTokenReads(t *testing.T) {
	stack := newE2EStack(t, 0)
	ctx := context.Background()

	tokenID := stack.server.Store().TokenIDs()[0]
	seeded, _ := stack.server.Store().Token(tokenID)

	info, err := stack.session.Tokens.Token(ctx, tokenID)
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if info.ID != seeded.ID || info.Name != seeded.Name || info.Symbol != seeded.Symbol {
		t.Errorf("Token() = %s/%s/%s, want %s/%s/%s",
			info.ID, info.Name, info.Symbol, seeded.ID, seeded.Name, seeded.Symbol)
	}
	if len(info.Submissions) != len(seeded.Submissions) {
		t.Errorf("Token() submissions = %d, want %d", len(info.Submissions), len(seeded.Submissions))
	}

	// Second read answers from cache
	if stack.session.Cache.Len() == 0 {
		t.Error("cache is empty after a fetch")
	}
	again, err := stack.session.Tokens.Token(ctx, tokenID)
	if err != nil {
		t.Fatalf("Token() second read error = %v", err)
	}
	if again.ID != info.ID {
		t.Errorf("second read ID = %q, want %q", again.ID, info.ID)
	}

	// Search finds the token by its own ID
	results, err := stack.session.Tokens.Search(ctx, tokenID)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	found := false
	for _, r := range results {
		if r.ID == tokenID {
			found = true
		}
	}
	if !found {
		t.Errorf("Search(%q) results missing the token", tokenID)
	}

	// Registered holder position comes back through the holder endpoint
	holder, err := stack.session.Tokens.HolderBalance(ctx, tokenID, stack.wallet.Address(), false)
	if err != nil {
		t.Fatalf("HolderBalance() error = %v", err)
	}
	if !holder.Holder || holder.Percentage != 1.5 {
		t.Errorf("HolderBalance() = %+v, want registered 1.5%% position", holder)
	}
}

// TestEndToEndBatchVote signs and submits a real batch through the full
// stack and checks both sides agree afterwards
func TestEndToEndBatchVote(t *testing.T) {
	stack := newE2EStack(t, 0)
	ctx := context.Background()

	tokenID := stack.server.Store().TokenIDs()[0]
	seeded, _ := stack.server.Store().Token(tokenID)
	if len(seeded.Submissions) < 2 {
		t.Fatalf("seeded token %s has %d submissions, need 2", tokenID, len(seeded.Submissions))
	}
	sub1 := seeded.Submissions[0]
	sub2 := seeded.Submissions[1]

	engine := stack.session.Votes
	if err := engine.Vote(sub1.ID, tokenID, votes.VoteUp); err != nil {
		t.Fatalf("Vote(%s) error = %v", sub1.ID, err)
	}
	if err := engine.Vote(sub2.ID, tokenID, votes.VoteDown); err != nil {
		t.Fatalf("Vote(%s) error = %v", sub2.ID, err)
	}

	outcome, err := engine.Flush(ctx)
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if outcome == nil {
		t.Fatal("Flush() outcome = nil, want a settled batch")
	}
	if len(outcome.Committed) != 2 || len(outcome.RolledBack) != 0 {
		t.Fatalf("committed/rolledBack = %d/%d, want 2/0: %+v",
			len(outcome.Committed), len(outcome.RolledBack), outcome.RolledBack)
	}

	// Client tracker holds the committed state
	if got := engine.Tracker().Vote(sub1.ID); got != votes.VoteUp {
		t.Errorf("tracker vote for %s = %q, want up", sub1.ID, got)
	}
	if got := engine.Tracker().Vote(sub2.ID); got != votes.VoteDown {
		t.Errorf("tracker vote for %s = %q, want down", sub2.ID, got)
	}

	// Server ledger recorded the votes with shifted tallies
	status, err := stack.server.Store().VoteFor(sub1.ID, stack.wallet.Address())
	if err != nil {
		t.Fatalf("VoteFor() error = %v", err)
	}
	if status.VoteState != votes.VoteUp {
		t.Errorf("server vote state = %q, want up", status.VoteState)
	}
	if status.Upvotes != sub1.Upvotes+1 {
		t.Errorf("server upvotes = %d, want %d", status.Upvotes, sub1.Upvotes+1)
	}

	// The read path agrees
	checked, err := stack.session.Tokens.CheckVote(ctx, sub1.ID, stack.wallet.Address())
	if err != nil {
		t.Fatalf("CheckVote() error = %v", err)
	}
	if checked.VoteState != votes.VoteUp {
		t.Errorf("CheckVote() state = %q, want up", checked.VoteState)
	}
}

// TestEndToEndCooldownRollback re-votes inside the cooldown window and
// expects the optimistic change to roll back to the committed baseline
func TestEndToEndCooldownRollback(t *testing.T) {
	stack := newE2EStack(t, 30*time.Second)
	ctx := context.Background()

	tokenID := stack.server.Store().TokenIDs()[0]
	seeded, _ := stack.server.Store().Token(tokenID)
	submissionID := seeded.Submissions[0].ID
	engine := stack.session.Votes

	outcome, err := engine.VoteNow(ctx, submissionID, tokenID, votes.VoteUp)
	if err != nil {
		t.Fatalf("VoteNow() error = %v", err)
	}
	if len(outcome.Committed) != 1 {
		t.Fatalf("first vote committed = %d, want 1", len(outcome.Committed))
	}

	// Same wallet, same submission, inside the cooldown: server refuses
	// the item and the client restores the committed up vote
	outcome, err = engine.VoteNow(ctx, submissionID, tokenID, votes.VoteDown)
	if err != nil {
		t.Fatalf("VoteNow() inside cooldown error = %v", err)
	}
	if len(outcome.Committed) != 0 || len(outcome.RolledBack) != 1 {
		t.Fatalf("committed/rolledBack = %d/%d, want 0/1",
			len(outcome.Committed), len(outcome.RolledBack))
	}
	if outcome.RolledBack[0].Code != votes.CodeCooldownActive {
		t.Errorf("rollback code = %q, want %q", outcome.RolledBack[0].Code, votes.CodeCooldownActive)
	}

	if got := engine.Tracker().Vote(submissionID); got != votes.VoteUp {
		t.Errorf("tracker vote after rollback = %q, want the committed up", got)
	}

	server, err := stack.server.Store().VoteFor(submissionID, stack.wallet.Address())
	if err != nil {
		t.Fatalf("VoteFor() error = %v", err)
	}
	if server.VoteState != votes.VoteUp {
		t.Errorf("server state after refused re-vote = %q, want up", server.VoteState)
	}
}

// TestEndToEndHolderGate verifies a non-holder is stopped client side
// before any batch is posted
func TestEndToEndHolderGate(t *testing.T) {
	stack := newE2EStack(t, 0)
	ctx := context.Background()

	// A token the wallet holds nothing of: register a zero position to
	// override the blanket registration from setup
	tokenID := stack.server.Store().TokenIDs()[1]
	if err := stack.server.Store().RegisterHolder(tokenID, stack.wallet.Address(), 0); err != nil {
		t.Fatalf("RegisterHolder() error = %v", err)
	}
	seeded, _ := stack.server.Store().Token(tokenID)
	submissionID := seeded.Submissions[0].ID

	_, err := stack.session.Votes.VoteNow(ctx, submissionID, tokenID, votes.VoteUp)
	if !errors.Is(err, votes.ErrNotHolder) {
		t.Fatalf("VoteNow() error = %v, want ErrNotHolder", err)
	}

	// Optimistic state rolled back and nothing reached the server
	if got := stack.session.Votes.Tracker().Vote(submissionID); got != votes.VoteNone {
		t.Errorf("tracker vote = %q, want none", got)
	}
	status, err := stack.server.Store().VoteFor(submissionID, stack.wallet.Address())
	if err != nil {
		t.Fatalf("VoteFor() error = %v", err)
	}
	if status.VoteState != votes.VoteNone {
		t.Errorf("server state = %q, want none", status.VoteState)
	}
}
