// Package votes implements debounced vote batching with optimistic state.
//
// BATCHING STRATEGY:
// Individual vote clicks land in a queue keyed by submission, applying
// their optimistic state immediately. Each click (re)arms a debounce timer;
// when the quiet period elapses the whole queue drains as one batch. The
// batch costs exactly one wallet signature and one HTTP request no matter
// how many votes it carries, which is the core efficiency property of the
// pipeline: N rapid clicks never mean N signature prompts.
//
// BATCH LIFECYCLE:
// Each submission moves Idle -> Queued -> Signing -> InFlight and settles
// back to Idle either committed (server's authoritative state applied) or
// rolled back (pre-batch state restored). Failures before the network call
// (wallet connect, holder eligibility, signature rejection) roll the whole
// batch back uniformly; once the server answers, settlement is strictly
// per submission.
//
// ORDERING:
// A single worker goroutine executes flushes and wallet events, so batches
// never overlap in time: a debounce timer that fires during a drain simply
// queues the next flush. Re-votes on a queued submission overwrite the
// pending intent (last write wins); re-votes on a signing or in-flight
// submission are refused until the batch settles.
package votes

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/tokenboard/tokenboard/internal/dispatch"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/utils"
	"github.com/tokenboard/tokenboard/internal/wallet"
)

// votesBatchPath is the API endpoint signed batches are submitted to
const votesBatchPath = "/api/votes/batch"

// eventBuffer bounds undelivered outcome events before new ones are dropped
const eventBuffer = 64

// intent is one queued vote action. Predicted is both the optimistic state
// already showing in the UI and the absolute state requested on the wire.
type intent struct {
	SubmissionID string
	TokenID      string
	Predicted    VoteType
}

// BatchOutcome summarizes one settled batch for synchronous callers.
// Committed and RolledBack partition the batch per submission.
type BatchOutcome struct {
	BatchID    string
	Committed  []BatchResult
	RolledBack []BatchError
}

// Engine collects vote intents into debounced, signed batches and keeps the
// optimistic state tracker consistent around every outcome.
//
// The zero value is not usable; construct with NewEngine. Start launches
// the background worker that serves debounced flushes and wallet events.
// Synchronous callers (CLI commands) can skip Start entirely and drive the
// engine with Vote followed by Flush.
type Engine struct {
	config  *Config
	wallet  wallet.Wallet
	poster  Poster
	holders HolderChecker
	tracker *Tracker

	// Queue state, guarded by mu
	mu    sync.Mutex
	queue map[string]*intent
	order []string // submission IDs in first-queued order
	timer *time.Timer

	// flushMu serializes batch execution so batches never overlap in time
	flushMu sync.Mutex

	flushCh chan struct{}
	events  chan Event

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates a vote engine wired to a wallet, a request poster, and
// a holder checker. A nil config uses defaults.
func NewEngine(cfg *Config, w wallet.Wallet, poster Poster, holders HolderChecker) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vote engine config: %w", err)
	}
	if w == nil {
		return nil, fmt.Errorf("vote engine requires a wallet")
	}
	if poster == nil {
		return nil, fmt.Errorf("vote engine requires a poster")
	}
	if holders == nil && !cfg.BypassHolderCheck {
		return nil, fmt.Errorf("vote engine requires a holder checker unless bypass is enabled")
	}

	return &Engine{
		config:  cfg,
		wallet:  w,
		poster:  poster,
		holders: holders,
		tracker: NewTracker(),
		queue:   make(map[string]*intent),
		flushCh: make(chan struct{}, 1),
		events:  make(chan Event, eventBuffer),
	}, nil
}

// Start launches the background worker that runs debounced flushes and
// reacts to wallet connection events
func (e *Engine) Start() {
	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.wg.Add(1)
	go e.run()
	logging.Info("Vote engine started (debounce: %v)", e.config.DebounceDelay)
}

// Stop shuts the engine down. Queued intents that never flushed are rolled
// back so no optimistic state survives the engine.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
		e.wg.Wait()
	}

	// Revert anything still waiting in the debounce window
	e.flushMu.Lock()
	leftover := e.drain()
	if len(leftover) > 0 {
		e.rollbackBatch("shutdown", leftover, "Vote engine shut down before the batch flushed")
	}
	e.flushMu.Unlock()

	logging.Info("Vote engine stopped")
}

// Tracker returns the optimistic state tracker UI layers read vote state
// from
func (e *Engine) Tracker() *Tracker {
	return e.tracker
}

// Events returns the channel batch outcomes are delivered on. Delivery is
// best effort: slow consumers may miss events.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// QueueLen returns the number of intents waiting in the debounce window
func (e *Engine) QueueLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Vote records a vote action for a submission. The toggle rule applies
// against the currently visible state: voting the same direction again
// clears the vote, a different direction replaces it. The optimistic result
// shows immediately, the intent joins the queue (overwriting any queued
// intent for the same submission), and the debounce timer restarts.
//
// Returns ErrVotePending when the submission belongs to a batch that is
// already signing or in flight.
func (e *Engine) Vote(submissionID, tokenID string, voteType VoteType) error {
	if submissionID == "" {
		return fmt.Errorf("submission ID is required")
	}
	if tokenID == "" {
		return fmt.Errorf("token ID is required")
	}
	if voteType != VoteUp && voteType != VoteDown {
		return fmt.Errorf("invalid vote type: %q", voteType)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.tracker.Vote(submissionID)
	predicted := toggle(current, voteType)

	if !e.tracker.Apply(submissionID, predicted) {
		return ErrVotePending
	}

	if existing, ok := e.queue[submissionID]; ok {
		existing.TokenID = tokenID
		existing.Predicted = predicted
	} else {
		e.queue[submissionID] = &intent{
			SubmissionID: submissionID,
			TokenID:      tokenID,
			Predicted:    predicted,
		}
		e.order = append(e.order, submissionID)
	}

	e.armTimerLocked()

	logging.Debug("Queued %s vote for submission %s (predicted: %s, queue: %d)",
		voteType, logging.FormatSubmissionID(submissionID), predicted, len(e.queue))
	return nil
}

// VoteNow is the single-vote path: record one intent and flush immediately
// as a batch of one. Eligibility, signing, and settlement are identical to
// the debounced path; there is no separate single-vote logic to drift.
func (e *Engine) VoteNow(ctx context.Context, submissionID, tokenID string, voteType VoteType) (*BatchOutcome, error) {
	if err := e.Vote(submissionID, tokenID, voteType); err != nil {
		return nil, err
	}
	return e.Flush(ctx)
}

// Flush drains the queue and runs the batch inline, bypassing the debounce
// window. Blocks until the batch settles; a nil outcome with nil error
// means the queue was empty. If a debounced flush is mid-run, Flush waits
// for it and then drains whatever remains.
func (e *Engine) Flush(ctx context.Context) (*BatchOutcome, error) {
	return e.flush(ctx)
}

// toggle computes the optimistic result of a vote action: voting the same
// direction again clears the vote, a different direction replaces it
func toggle(current, action VoteType) VoteType {
	if current == action {
		return VoteNone
	}
	return action
}

// armTimerLocked restarts the debounce timer. Caller must hold mu.
func (e *Engine) armTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.config.DebounceDelay, e.signalFlush)
}

// signalFlush nudges the worker to flush. The channel holds one pending
// signal; a flush already queued absorbs further timer fires.
func (e *Engine) signalFlush() {
	select {
	case e.flushCh <- struct{}{}:
	default:
	}
}

// run is the engine's single worker goroutine. Flushes and wallet events
// execute here sequentially, which keeps batches totally ordered and lets
// wallet disconnects never interleave with a settling batch.
func (e *Engine) run() {
	defer e.wg.Done()

	walletEvents := e.wallet.Events()

	for {
		select {
		case <-e.flushCh:
			if _, err := e.flush(e.ctx); err != nil {
				logging.Warn("Debounced vote batch failed: %v", err)
			}

		case ev, ok := <-walletEvents:
			if !ok {
				walletEvents = nil
				continue
			}
			e.handleWalletEvent(ev)

		case <-e.ctx.Done():
			return
		}
	}
}

// flush serializes with other flushes, drains the queue, and settles the
// resulting batch
func (e *Engine) flush(ctx context.Context) (*BatchOutcome, error) {
	e.flushMu.Lock()
	defer e.flushMu.Unlock()

	intents := e.drain()
	if len(intents) == 0 {
		return nil, nil
	}
	return e.flushBatch(ctx, intents)
}

// drain atomically removes every queued intent and marks its submission
// Signing. Returns intents in first-queued order.
func (e *Engine) drain() []*intent {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if len(e.queue) == 0 {
		return nil
	}

	intents := make([]*intent, 0, len(e.queue))
	ids := make([]string, 0, len(e.queue))
	for _, id := range e.order {
		if it, ok := e.queue[id]; ok {
			intents = append(intents, it)
			ids = append(ids, id)
		}
	}
	e.queue = make(map[string]*intent)
	e.order = nil

	e.tracker.MarkSigning(ids)
	return intents
}

// flushBatch runs one drained batch end to end: wallet connection, holder
// eligibility, one signature, one submit, per-item settlement.
func (e *Engine) flushBatch(ctx context.Context, intents []*intent) (*BatchOutcome, error) {
	batchID := "batch"
	if id, err := utils.GenerateID(); err == nil {
		batchID = id
	}

	ids := make([]string, len(intents))
	for i, it := range intents {
		ids[i] = it.SubmissionID
	}

	logging.Info("Flushing vote batch %s with %d intents",
		logging.FormatBatchID(batchID), len(intents))

	if !e.wallet.Connected() {
		if err := e.wallet.Connect(ctx); err != nil {
			e.rollbackBatch(batchID, intents, "Wallet connection failed")
			return nil, fmt.Errorf("wallet connection failed: %w", err)
		}
	}
	address := e.wallet.Address()

	// All intents in one batch reference the same token: the queue belongs
	// to one tab and a tab shows one token page at a time. A mix means a
	// caller bug; flag it and proceed with the first subject.
	tokenID := intents[0].TokenID
	for _, it := range intents[1:] {
		if it.TokenID != tokenID {
			logging.Warn("Vote batch %s mixes tokens %s and %s, checking eligibility against %s",
				logging.FormatBatchID(batchID), tokenID, it.TokenID, tokenID)
			break
		}
	}

	if !e.config.BypassHolderCheck {
		held, pct, err := e.holders.HolderStatus(ctx, tokenID, address)
		if err != nil {
			e.rollbackBatch(batchID, intents, "Could not verify token holdings")
			return nil, fmt.Errorf("holder check failed: %w", err)
		}
		if !held {
			e.rollbackBatch(batchID, intents, FailureMessage(CodeHolderNotVerified, 0))
			return nil, ErrNotHolder
		}
		if pct < e.config.MinBalancePct {
			e.rollbackBatch(batchID, intents, FailureMessage(CodeInsufficientBalance, 0))
			return nil, ErrInsufficientBalance
		}
	}

	// One canonical message and one signature regardless of batch size
	batch := make([]BatchVote, len(intents))
	for i, it := range intents {
		batch[i] = BatchVote{SubmissionID: it.SubmissionID, VoteType: it.Predicted}
	}
	timestamp := time.Now().UnixMilli()
	message := CanonicalMessage(batch, address, timestamp)

	sig, err := e.wallet.SignMessage(ctx, []byte(message))
	if err != nil {
		e.rollbackBatch(batchID, intents, "Signature request was rejected")
		return nil, fmt.Errorf("%w: %v", ErrSignatureRejected, err)
	}

	e.tracker.MarkInFlight(ids)

	req := &BatchRequest{
		Votes:              batch,
		VoterWallet:        address,
		PublicKey:          hex.EncodeToString(sig.PublicKey),
		Signature:          hex.EncodeToString(sig.Sig),
		SignatureTimestamp: timestamp,
	}

	var resp BatchResponse
	if err := e.poster.PostJSON(ctx, votesBatchPath, req, &resp); err != nil {
		e.rollbackBatch(batchID, intents, submitFailureMessage(err))
		return nil, fmt.Errorf("vote batch submit failed: %w", err)
	}

	return e.settleBatch(batchID, intents, &resp), nil
}

// settleBatch applies the server's partitioned response: results commit
// with authoritative state, errors roll back with mapped messages, and
// anything the server left unanswered rolls back too.
func (e *Engine) settleBatch(batchID string, intents []*intent, resp *BatchResponse) *BatchOutcome {
	known := make(map[string]bool, len(intents))
	for _, it := range intents {
		known[it.SubmissionID] = true
	}

	outcome := &BatchOutcome{BatchID: batchID}
	settled := make(map[string]bool, len(intents))

	for _, res := range resp.Results {
		if !known[res.SubmissionID] || settled[res.SubmissionID] {
			logging.Warn("Vote batch %s response carries unexpected submission %s, ignoring",
				logging.FormatBatchID(batchID), logging.FormatSubmissionID(res.SubmissionID))
			continue
		}
		settled[res.SubmissionID] = true

		e.tracker.Commit(res.SubmissionID, res.VoteState)
		outcome.Committed = append(outcome.Committed, res)
		e.emit(Event{
			Type:         EventVoteCommitted,
			BatchID:      batchID,
			SubmissionID: res.SubmissionID,
			VoteState:    res.VoteState,
			Upvotes:      res.Upvotes,
			Downvotes:    res.Downvotes,
			Score:        res.Score,
		})
	}

	for _, batchErr := range resp.Errors {
		if !known[batchErr.SubmissionID] || settled[batchErr.SubmissionID] {
			logging.Warn("Vote batch %s response carries unexpected error for %s, ignoring",
				logging.FormatBatchID(batchID), logging.FormatSubmissionID(batchErr.SubmissionID))
			continue
		}
		settled[batchErr.SubmissionID] = true

		restored := e.tracker.Rollback(batchErr.SubmissionID)
		message := FailureMessage(batchErr.Code, time.Duration(batchErr.RetryAfterSeconds)*time.Second)
		outcome.RolledBack = append(outcome.RolledBack, batchErr)
		e.emit(Event{
			Type:         EventVoteRolledBack,
			BatchID:      batchID,
			SubmissionID: batchErr.SubmissionID,
			VoteState:    restored,
			Message:      message,
		})
		logging.Warn("Vote for submission %s rolled back: %s",
			logging.FormatSubmissionID(batchErr.SubmissionID), message)
	}

	// The server answered the batch but skipped these; treat as failed
	for _, it := range intents {
		if settled[it.SubmissionID] {
			continue
		}
		restored := e.tracker.Rollback(it.SubmissionID)
		batchErr := BatchError{SubmissionID: it.SubmissionID, Error: "no result returned"}
		outcome.RolledBack = append(outcome.RolledBack, batchErr)
		e.emit(Event{
			Type:         EventVoteRolledBack,
			BatchID:      batchID,
			SubmissionID: it.SubmissionID,
			VoteState:    restored,
			Message:      FailureMessage("", 0),
		})
	}

	succeeded, failed := len(outcome.Committed), len(outcome.RolledBack)
	e.emit(Event{Type: EventBatchSettled, BatchID: batchID, Succeeded: succeeded, Failed: failed})

	if failed == 0 {
		logging.Success("Vote batch %s committed all %d votes",
			logging.FormatBatchID(batchID), succeeded)
	} else {
		logging.Warn("Vote batch %s settled: %d committed, %d rolled back",
			logging.FormatBatchID(batchID), succeeded, failed)
	}
	return outcome
}

// rollbackBatch reverts every intent uniformly for failures that precede
// per-item results: wallet connect, eligibility, signing, transport
func (e *Engine) rollbackBatch(batchID string, intents []*intent, message string) {
	for _, it := range intents {
		restored := e.tracker.Rollback(it.SubmissionID)
		e.emit(Event{
			Type:         EventVoteRolledBack,
			BatchID:      batchID,
			SubmissionID: it.SubmissionID,
			VoteState:    restored,
			Message:      message,
		})
	}
	e.emit(Event{Type: EventBatchSettled, BatchID: batchID, Succeeded: 0, Failed: len(intents)})

	logging.Warn("Vote batch %s rolled back (%d intents): %s",
		logging.FormatBatchID(batchID), len(intents), message)
}

// handleWalletEvent reacts to wallet connection changes. Disconnects drop
// the queue and reset all tracked votes; the committed baseline belongs to
// the wallet that voted.
func (e *Engine) handleWalletEvent(ev wallet.Event) {
	switch ev.Type {
	case wallet.Disconnected:
		e.flushMu.Lock()
		e.mu.Lock()
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
		dropped := len(e.queue)
		e.queue = make(map[string]*intent)
		e.order = nil
		e.mu.Unlock()
		e.tracker.Reset()
		e.flushMu.Unlock()

		if dropped > 0 {
			logging.Warn("Wallet disconnected, dropped %d queued votes", dropped)
		} else {
			logging.Info("Wallet disconnected, vote state cleared")
		}

	case wallet.Connected:
		logging.Info("Wallet connected for voting: %s", logging.FormatAddress(ev.Address))
	}
}

// emit forwards an outcome event without ever blocking settlement. If the
// channel is full the event is dropped.
func (e *Engine) emit(event Event) {
	select {
	case e.events <- event:
	default:
		logging.Warn("Vote event channel full, dropping %s event", event.Type)
	}
}

// submitFailureMessage maps a whole-batch submit error to a user-facing
// message, reusing the structured code when the API provided one
func submitFailureMessage(err error) string {
	if apiErr, ok := dispatch.AsAPIError(err); ok {
		return FailureMessage(apiErr.Code, apiErr.RetryAfter)
	}
	return "Vote submission failed, please try again"
}
