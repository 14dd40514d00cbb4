package handlers

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokenboard/tokenboard/internal/tokens"
	"github.com/tokenboard/tokenboard/internal/votes"
	"github.com/tokenboard/tokenboard/internal/wallet"
)

// fakeLedger is an in-memory VoteStore for handler tests. Every wallet
// holds every token unless an explicit position says otherwise.
type fakeLedger struct {
	subs          map[string]string             // submission -> token
	holders       map[string]*tokens.HolderInfo // "token|wallet" overrides
	defaultHolder *tokens.HolderInfo
	votes         map[string]map[string]votes.VoteType
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		subs: map[string]string{
			"bullish-doge-sub-1": "bullish-doge",
			"bullish-doge-sub-2": "bullish-doge",
			"liquid-otter-sub-1": "liquid-otter",
		},
		holders:       make(map[string]*tokens.HolderInfo),
		defaultHolder: &tokens.HolderInfo{Balance: 1000, Percentage: 1.0, Holder: true},
		votes:         make(map[string]map[string]votes.VoteType),
	}
}

func (f *fakeLedger) SubmissionToken(submissionID string) (string, bool) {
	tokenID, ok := f.subs[submissionID]
	return tokenID, ok
}

func (f *fakeLedger) Holder(tokenID, wallet string) (*tokens.HolderInfo, bool) {
	if info, ok := f.holders[tokenID+"|"+wallet]; ok {
		return info, true
	}
	return f.defaultHolder, true
}

func (f *fakeLedger) ApplyVote(submissionID, wallet string, state votes.VoteType) (*tokens.VoteStatus, error) {
	if state == votes.VoteNone {
		delete(f.votes[submissionID], wallet)
	} else {
		if f.votes[submissionID] == nil {
			f.votes[submissionID] = make(map[string]votes.VoteType)
		}
		f.votes[submissionID][wallet] = state
	}
	return f.status(submissionID, wallet), nil
}

func (f *fakeLedger) VoteFor(submissionID, wallet string) (*tokens.VoteStatus, error) {
	if _, ok := f.subs[submissionID]; !ok {
		return nil, errUnknownSubmission
	}
	return f.status(submissionID, wallet), nil
}

func (f *fakeLedger) BulkVotes(submissionIDs []string, wallet string) map[string]tokens.VoteStatus {
	result := make(map[string]tokens.VoteStatus)
	for _, submissionID := range submissionIDs {
		if _, voted := f.votes[submissionID][wallet]; voted {
			result[submissionID] = *f.status(submissionID, wallet)
		}
	}
	return result
}

func (f *fakeLedger) status(submissionID, wallet string) *tokens.VoteStatus {
	up, down := 0, 0
	for _, state := range f.votes[submissionID] {
		switch state {
		case votes.VoteUp:
			up++
		case votes.VoteDown:
			down++
		}
	}
	state, ok := f.votes[submissionID][wallet]
	if !ok {
		state = votes.VoteNone
	}
	return &tokens.VoteStatus{
		SubmissionID: submissionID,
		VoteState:    state,
		Upvotes:      up,
		Downvotes:    down,
		Score:        float64(up - down),
	}
}

var errUnknownSubmission = errors.New("unknown submission")

// fakeGate is a scripted Gate for handler tests
type fakeGate struct {
	refuse     bool
	retryAfter time.Duration
	cooldowns  map[string]time.Duration // "wallet|submission" -> remaining
	marked     []string
}

func (g *fakeGate) Allow(wallet string) (bool, time.Duration) {
	if g.refuse {
		return false, g.retryAfter
	}
	return true, 0
}

func (g *fakeGate) CooldownRemaining(wallet, submissionID string) time.Duration {
	return g.cooldowns[wallet+"|"+submissionID]
}

func (g *fakeGate) MarkVoted(wallet, submissionID string) {
	g.marked = append(g.marked, wallet+"|"+submissionID)
}

var testPolicy = VotePolicy{
	SignatureWindow: 5 * time.Minute,
	MinHolderPct:    0.1,
}

// newSigningWallet creates a connected deterministic wallet for signing
// test batches
func newSigningWallet(t *testing.T) *wallet.LocalWallet {
	t.Helper()

	seed := bytes.Repeat([]byte{0x5a}, 32)
	w, err := wallet.NewLocalWalletFromSeed(seed)
	if err != nil {
		t.Fatalf("NewLocalWalletFromSeed() error = %v", err)
	}
	if err := w.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return w
}

// signedBatch builds a batch request properly signed by w
func signedBatch(t *testing.T, w *wallet.LocalWallet, batch []votes.BatchVote) *votes.BatchRequest {
	t.Helper()

	timestamp := time.Now().UnixMilli()
	message := votes.CanonicalMessage(batch, w.Address(), timestamp)
	sig, err := w.SignMessage(context.Background(), []byte(message))
	if err != nil {
		t.Fatalf("SignMessage() error = %v", err)
	}

	return &votes.BatchRequest{
		Votes:              batch,
		VoterWallet:        w.Address(),
		PublicKey:          hex.EncodeToString(sig.PublicKey),
		Signature:          hex.EncodeToString(sig.Sig),
		SignatureTimestamp: timestamp,
	}
}

// postJSON serves a JSON POST through the router
func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func batchRouter(ledger *fakeLedger, gate *fakeGate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/votes/batch", HandleVoteBatch(ledger, gate, testPolicy))
	router.POST("/api/votes", HandleVote(ledger, gate, testPolicy))
	return router
}

// TestHandleVoteBatchCommits tests a fully successful batch
func TestHandleVoteBatchCommits(t *testing.T) {
	ledger := newFakeLedger()
	gate := &fakeGate{}
	router := batchRouter(ledger, gate)
	signer := newSigningWallet(t)

	req := signedBatch(t, signer, []votes.BatchVote{
		{SubmissionID: "bullish-doge-sub-1", VoteType: votes.VoteUp},
		{SubmissionID: "liquid-otter-sub-1", VoteType: votes.VoteDown},
	})
	w := postJSON(t, router, "/api/votes/batch", req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp votes.BatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Results) != 2 || len(resp.Errors) != 0 {
		t.Fatalf("results/errors = %d/%d, want 2/0", len(resp.Results), len(resp.Errors))
	}

	if resp.Results[0].SubmissionID != "bullish-doge-sub-1" {
		t.Errorf("result 0 submission = %q, want bullish-doge-sub-1", resp.Results[0].SubmissionID)
	}
	if resp.Results[0].VoteState != votes.VoteUp {
		t.Errorf("result 0 state = %q, want up", resp.Results[0].VoteState)
	}
	if resp.Results[0].Upvotes != 1 {
		t.Errorf("result 0 upvotes = %d, want 1", resp.Results[0].Upvotes)
	}

	if len(gate.marked) != 2 {
		t.Errorf("gate marked %d items, want 2", len(gate.marked))
	}
}

// TestHandleVoteBatchPartialFailure tests per-item partitioning
func TestHandleVoteBatchPartialFailure(t *testing.T) {
	signer := newSigningWallet(t)
	ledger := newFakeLedger()

	// liquid-otter position below the minimum for this wallet
	ledger.holders["liquid-otter|"+signer.Address()] = &tokens.HolderInfo{
		Balance: 1, Percentage: 0.01, Holder: true,
	}

	gate := &fakeGate{cooldowns: map[string]time.Duration{
		signer.Address() + "|bullish-doge-sub-2": 10 * time.Second,
	}}
	router := batchRouter(ledger, gate)

	req := signedBatch(t, signer, []votes.BatchVote{
		{SubmissionID: "bullish-doge-sub-1", VoteType: votes.VoteUp},
		{SubmissionID: "bullish-doge-sub-2", VoteType: votes.VoteUp},
		{SubmissionID: "liquid-otter-sub-1", VoteType: votes.VoteUp},
	})
	w := postJSON(t, router, "/api/votes/batch", req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp votes.BatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Results) != 1 || len(resp.Errors) != 2 {
		t.Fatalf("results/errors = %d/%d, want 1/2", len(resp.Results), len(resp.Errors))
	}

	byID := make(map[string]votes.BatchError)
	for _, e := range resp.Errors {
		byID[e.SubmissionID] = e
	}

	cooldownErr := byID["bullish-doge-sub-2"]
	if cooldownErr.Code != votes.CodeCooldownActive {
		t.Errorf("cooldown code = %q, want %q", cooldownErr.Code, votes.CodeCooldownActive)
	}
	if cooldownErr.RetryAfterSeconds != 10 {
		t.Errorf("cooldown retryAfterSeconds = %d, want 10", cooldownErr.RetryAfterSeconds)
	}

	balanceErr := byID["liquid-otter-sub-1"]
	if balanceErr.Code != votes.CodeInsufficientBalance {
		t.Errorf("balance code = %q, want %q", balanceErr.Code, votes.CodeInsufficientBalance)
	}

	if len(gate.marked) != 1 {
		t.Errorf("gate marked %d items, want only the committed one", len(gate.marked))
	}
}

// TestHandleVoteBatchHolderRefusals tests holder policy item errors
func TestHandleVoteBatchHolderRefusals(t *testing.T) {
	signer := newSigningWallet(t)
	ledger := newFakeLedger()
	ledger.holders["bullish-doge|"+signer.Address()] = &tokens.HolderInfo{Holder: false}

	router := batchRouter(ledger, &fakeGate{})

	req := signedBatch(t, signer, []votes.BatchVote{
		{SubmissionID: "bullish-doge-sub-1", VoteType: votes.VoteUp},
	})
	w := postJSON(t, router, "/api/votes/batch", req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp votes.BatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(resp.Errors))
	}
	if resp.Errors[0].Code != votes.CodeHolderNotVerified {
		t.Errorf("code = %q, want %q", resp.Errors[0].Code, votes.CodeHolderNotVerified)
	}
}

// TestHandleVoteBatchUnknownSubmission tests item errors for unknown IDs
func TestHandleVoteBatchUnknownSubmission(t *testing.T) {
	signer := newSigningWallet(t)
	router := batchRouter(newFakeLedger(), &fakeGate{})

	req := signedBatch(t, signer, []votes.BatchVote{
		{SubmissionID: "ghost-sub-1", VoteType: votes.VoteUp},
	})
	w := postJSON(t, router, "/api/votes/batch", req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp votes.BatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Code != CodeNotFound {
		t.Fatalf("errors = %+v, want one NOT_FOUND", resp.Errors)
	}
}

// TestHandleVoteBatchSignatureExpired tests the timestamp window
func TestHandleVoteBatchSignatureExpired(t *testing.T) {
	signer := newSigningWallet(t)
	router := batchRouter(newFakeLedger(), &fakeGate{})

	tests := []struct {
		name  string
		shift time.Duration
	}{
		{name: "stale timestamp", shift: -6 * time.Minute},
		{name: "future timestamp", shift: 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := []votes.BatchVote{{SubmissionID: "bullish-doge-sub-1", VoteType: votes.VoteUp}}
			timestamp := time.Now().Add(tt.shift).UnixMilli()
			message := votes.CanonicalMessage(batch, signer.Address(), timestamp)
			sig, err := signer.SignMessage(context.Background(), []byte(message))
			if err != nil {
				t.Fatalf("SignMessage() error = %v", err)
			}

			req := &votes.BatchRequest{
				Votes:              batch,
				VoterWallet:        signer.Address(),
				PublicKey:          hex.EncodeToString(sig.PublicKey),
				Signature:          hex.EncodeToString(sig.Sig),
				SignatureTimestamp: timestamp,
			}
			w := postJSON(t, router, "/api/votes/batch", req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
			envelope := decodeEnvelope(t, w.Body.Bytes())
			if envelope.Code != votes.CodeSignatureExpired {
				t.Errorf("code = %q, want %q", envelope.Code, votes.CodeSignatureExpired)
			}
		})
	}
}

// TestHandleVoteBatchSignatureInvalid tests signature verification failures
func TestHandleVoteBatchSignatureInvalid(t *testing.T) {
	signer := newSigningWallet(t)
	router := batchRouter(newFakeLedger(), &fakeGate{})

	t.Run("tampered votes", func(t *testing.T) {
		req := signedBatch(t, signer, []votes.BatchVote{
			{SubmissionID: "bullish-doge-sub-1", VoteType: votes.VoteUp},
		})
		// Flip the direction after signing: canonical message no longer
		// matches the signature
		req.Votes[0].VoteType = votes.VoteDown

		w := postJSON(t, router, "/api/votes/batch", req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
		envelope := decodeEnvelope(t, w.Body.Bytes())
		if envelope.Code != votes.CodeSignatureInvalid {
			t.Errorf("code = %q, want %q", envelope.Code, votes.CodeSignatureInvalid)
		}
	})

	t.Run("wallet mismatch", func(t *testing.T) {
		req := signedBatch(t, signer, []votes.BatchVote{
			{SubmissionID: "bullish-doge-sub-1", VoteType: votes.VoteUp},
		})
		req.VoterWallet = "0xffffffffffffffffffffffffffffffffffffffff"

		w := postJSON(t, router, "/api/votes/batch", req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("malformed public key", func(t *testing.T) {
		req := signedBatch(t, signer, []votes.BatchVote{
			{SubmissionID: "bullish-doge-sub-1", VoteType: votes.VoteUp},
		})
		req.PublicKey = "zz-not-hex"

		w := postJSON(t, router, "/api/votes/batch", req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

// TestHandleVoteBatchRateLimited tests the 429 refusal
func TestHandleVoteBatchRateLimited(t *testing.T) {
	signer := newSigningWallet(t)
	gate := &fakeGate{refuse: true, retryAfter: 3 * time.Second}
	router := batchRouter(newFakeLedger(), gate)

	req := signedBatch(t, signer, []votes.BatchVote{
		{SubmissionID: "bullish-doge-sub-1", VoteType: votes.VoteUp},
	})
	w := postJSON(t, router, "/api/votes/batch", req)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if got := w.Header().Get("Retry-After"); got != "3" {
		t.Errorf("Retry-After = %q, want \"3\"", got)
	}
	envelope := decodeEnvelope(t, w.Body.Bytes())
	if envelope.Code != CodeRateLimited {
		t.Errorf("code = %q, want %q", envelope.Code, CodeRateLimited)
	}
}

// TestHandleVoteBatchValidation tests request-level validation failures
func TestHandleVoteBatchValidation(t *testing.T) {
	signer := newSigningWallet(t)
	router := batchRouter(newFakeLedger(), &fakeGate{})

	tests := []struct {
		name   string
		mutate func(*votes.BatchRequest)
	}{
		{
			name:   "invalid wallet",
			mutate: func(r *votes.BatchRequest) { r.VoterWallet = "not-a-wallet" },
		},
		{
			name:   "empty batch",
			mutate: func(r *votes.BatchRequest) { r.Votes = nil },
		},
		{
			name:   "invalid submission ID",
			mutate: func(r *votes.BatchRequest) { r.Votes[0].SubmissionID = "BAD_ID_" },
		},
		{
			name:   "invalid vote type",
			mutate: func(r *votes.BatchRequest) { r.Votes[0].VoteType = "sideways" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := signedBatch(t, signer, []votes.BatchVote{
				{SubmissionID: "bullish-doge-sub-1", VoteType: votes.VoteUp},
			})
			tt.mutate(req)

			w := postJSON(t, router, "/api/votes/batch", req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

// TestHandleVoteLegacySingle tests the single-vote route riding the batch
// path
func TestHandleVoteLegacySingle(t *testing.T) {
	signer := newSigningWallet(t)

	singleRequest := func(t *testing.T, submissionID string, vote votes.VoteType) *VoteRequest {
		batch := signedBatch(t, signer, []votes.BatchVote{
			{SubmissionID: submissionID, VoteType: vote},
		})
		return &VoteRequest{
			SubmissionID:       submissionID,
			VoteType:           vote,
			VoterWallet:        batch.VoterWallet,
			PublicKey:          batch.PublicKey,
			Signature:          batch.Signature,
			SignatureTimestamp: batch.SignatureTimestamp,
		}
	}

	t.Run("success", func(t *testing.T) {
		router := batchRouter(newFakeLedger(), &fakeGate{})

		w := postJSON(t, router, "/api/votes", singleRequest(t, "bullish-doge-sub-1", votes.VoteUp))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var result votes.BatchResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if result.SubmissionID != "bullish-doge-sub-1" || result.VoteState != votes.VoteUp {
			t.Errorf("result = %+v, want up on bullish-doge-sub-1", result)
		}
	})

	t.Run("cooldown", func(t *testing.T) {
		gate := &fakeGate{cooldowns: map[string]time.Duration{
			signer.Address() + "|bullish-doge-sub-1": 7 * time.Second,
		}}
		router := batchRouter(newFakeLedger(), gate)

		w := postJSON(t, router, "/api/votes", singleRequest(t, "bullish-doge-sub-1", votes.VoteUp))
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
		}
		if got := w.Header().Get("Retry-After"); got != "7" {
			t.Errorf("Retry-After = %q, want \"7\"", got)
		}
		envelope := decodeEnvelope(t, w.Body.Bytes())
		if envelope.Code != votes.CodeCooldownActive {
			t.Errorf("code = %q, want %q", envelope.Code, votes.CodeCooldownActive)
		}
	})

	t.Run("non-holder", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.holders["bullish-doge|"+signer.Address()] = &tokens.HolderInfo{Holder: false}
		router := batchRouter(ledger, &fakeGate{})

		w := postJSON(t, router, "/api/votes", singleRequest(t, "bullish-doge-sub-1", votes.VoteUp))
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
		}
		envelope := decodeEnvelope(t, w.Body.Bytes())
		if envelope.Code != votes.CodeHolderNotVerified {
			t.Errorf("code = %q, want %q", envelope.Code, votes.CodeHolderNotVerified)
		}
	})
}

// TestHandleVoteCheck tests the single vote status read
func TestHandleVoteCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ledger := newFakeLedger()
	ledger.ApplyVote("bullish-doge-sub-1", testWalletAddr, votes.VoteUp)

	router := gin.New()
	router.GET("/api/votes/check", HandleVoteCheck(ledger))

	t.Run("recorded vote", func(t *testing.T) {
		req := httptest.NewRequest("GET",
			"/api/votes/check?submissionId=bullish-doge-sub-1&wallet="+testWalletAddr, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}

		var status tokens.VoteStatus
		if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if status.VoteState != votes.VoteUp {
			t.Errorf("voteState = %q, want up", status.VoteState)
		}
		if status.Upvotes != 1 {
			t.Errorf("upvotes = %d, want 1", status.Upvotes)
		}
	})

	t.Run("unknown submission", func(t *testing.T) {
		req := httptest.NewRequest("GET",
			"/api/votes/check?submissionId=ghost-sub-1&wallet="+testWalletAddr, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("missing parameters", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/votes/check?wallet="+testWalletAddr, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

// TestHandleBulkVoteCheck tests the bulk vote status read
func TestHandleBulkVoteCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ledger := newFakeLedger()
	ledger.ApplyVote("bullish-doge-sub-1", testWalletAddr, votes.VoteUp)
	ledger.ApplyVote("liquid-otter-sub-1", testWalletAddr, votes.VoteDown)

	router := gin.New()
	router.POST("/api/votes/bulk-check", HandleBulkVoteCheck(ledger))

	t.Run("mixed submissions", func(t *testing.T) {
		w := postJSON(t, router, "/api/votes/bulk-check", tokens.BulkCheckRequest{
			SubmissionIDs: []string{"bullish-doge-sub-1", "bullish-doge-sub-2", "liquid-otter-sub-1"},
			Wallet:        testWalletAddr,
		})

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}

		var resp tokens.BulkCheckResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if len(resp.Votes) != 2 {
			t.Fatalf("votes = %d entries, want 2", len(resp.Votes))
		}
		if resp.Votes["bullish-doge-sub-1"].VoteState != votes.VoteUp {
			t.Errorf("bullish-doge-sub-1 state = %q, want up", resp.Votes["bullish-doge-sub-1"].VoteState)
		}
	})

	t.Run("empty submission list", func(t *testing.T) {
		w := postJSON(t, router, "/api/votes/bulk-check", tokens.BulkCheckRequest{
			SubmissionIDs: []string{},
			Wallet:        testWalletAddr,
		})

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}

		var resp tokens.BulkCheckResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if len(resp.Votes) != 0 {
			t.Errorf("votes = %d entries, want 0", len(resp.Votes))
		}
	})

	t.Run("invalid wallet", func(t *testing.T) {
		w := postJSON(t, router, "/api/votes/bulk-check", tokens.BulkCheckRequest{
			SubmissionIDs: []string{"bullish-doge-sub-1"},
			Wallet:        "nope",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
