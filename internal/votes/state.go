package votes

import (
	"sync"

	"github.com/tokenboard/tokenboard/internal/logging"
)

// Tracker maintains the caller's last-known vote per submission along with
// each submission's position in the vote pipeline. Optimistic updates are
// applied the moment a vote is queued; the pre-intent baseline is kept so
// any failure path can restore it exactly.
//
// The tracker is the single source of truth the UI reads vote state from.
// It never talks to the network itself; the engine drives every mutation
// around its batch lifecycle.
type Tracker struct {
	mu sync.Mutex

	// votes holds the currently visible vote per submission. Optimistic
	// values live here from the moment an intent is queued. Absent means
	// VoteNone.
	votes map[string]VoteType

	// baseline holds the pre-intent committed vote for every submission
	// with an active intent, VoteNone included explicitly. Rollback
	// restores from here.
	baseline map[string]VoteType

	// phase holds the pipeline state for submissions that are not Idle
	phase map[string]SubmissionState
}

// NewTracker creates an empty vote state tracker
func NewTracker() *Tracker {
	return &Tracker{
		votes:    make(map[string]VoteType),
		baseline: make(map[string]VoteType),
		phase:    make(map[string]SubmissionState),
	}
}

// Vote returns the currently visible vote for a submission, optimistic
// values included. Untouched submissions report VoteNone.
func (t *Tracker) Vote(submissionID string) VoteType {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.voteLocked(submissionID)
}

func (t *Tracker) voteLocked(submissionID string) VoteType {
	if v, ok := t.votes[submissionID]; ok {
		return v
	}
	return VoteNone
}

// Phase returns the submission's position in the vote pipeline
func (t *Tracker) Phase(submissionID string) SubmissionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.phase[submissionID]; ok {
		return p
	}
	return StateIdle
}

// Pending reports whether the submission belongs to a batch that is being
// signed or is in flight. Pending submissions refuse new votes; queued ones
// do not, since their intent can still be overwritten.
func (t *Tracker) Pending(submissionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.phase[submissionID]
	return p == StateSigning || p == StateInFlight
}

// Apply records an optimistic vote for a submission and marks it Queued.
// The first Apply for an intent captures the current vote as the rollback
// baseline; re-applies within the same debounce window keep that original
// baseline and only move the visible value. Returns false without touching
// anything if the submission is pending.
func (t *Tracker) Apply(submissionID string, predicted VoteType) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p := t.phase[submissionID]; p == StateSigning || p == StateInFlight {
		return false
	}

	if _, active := t.baseline[submissionID]; !active {
		t.baseline[submissionID] = t.voteLocked(submissionID)
	}
	t.setVoteLocked(submissionID, predicted)
	t.phase[submissionID] = StateQueued
	return true
}

// MarkSigning transitions the given submissions from Queued to Signing.
// Called by the engine when it drains the queue into a batch.
func (t *Tracker) MarkSigning(submissionIDs []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range submissionIDs {
		t.phase[id] = StateSigning
	}
}

// MarkInFlight transitions the given submissions to InFlight once the
// signed batch has been handed to the dispatcher
func (t *Tracker) MarkInFlight(submissionIDs []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range submissionIDs {
		t.phase[id] = StateInFlight
	}
}

// Commit settles a submission with the server's authoritative vote state.
// The submission returns to Idle with state as its new baseline.
func (t *Tracker) Commit(submissionID string, state VoteType) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setVoteLocked(submissionID, state)
	delete(t.baseline, submissionID)
	delete(t.phase, submissionID)
}

// Rollback restores a submission's pre-intent vote and returns it. The
// submission leaves the pending set and becomes Idle again. Safe to call
// for submissions without an active intent.
func (t *Tracker) Rollback(submissionID string) VoteType {
	t.mu.Lock()
	defer t.mu.Unlock()

	restored, active := t.baseline[submissionID]
	if !active {
		restored = t.voteLocked(submissionID)
	}
	t.setVoteLocked(submissionID, restored)
	delete(t.baseline, submissionID)
	delete(t.phase, submissionID)
	return restored
}

// Reset discards all vote state. Called when the wallet disconnects, since
// committed votes belong to the wallet that cast them.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := len(t.votes)
	t.votes = make(map[string]VoteType)
	t.baseline = make(map[string]VoteType)
	t.phase = make(map[string]SubmissionState)

	if count > 0 {
		logging.Debug("Vote tracker reset, dropped %d tracked votes", count)
	}
}

// Votes returns a copy of all currently visible non-None votes
func (t *Tracker) Votes() map[string]VoteType {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]VoteType, len(t.votes))
	for id, v := range t.votes {
		out[id] = v
	}
	return out
}

// setVoteLocked stores a vote, keeping the map free of VoteNone entries so
// absence and "no vote" stay the same thing
func (t *Tracker) setVoteLocked(submissionID string, v VoteType) {
	if v == VoteNone {
		delete(t.votes, submissionID)
		return
	}
	t.votes[submissionID] = v
}
