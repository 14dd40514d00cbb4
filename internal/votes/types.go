package votes

import (
	"errors"
	"fmt"
	"time"
)

// VoteType is the direction of a vote on a submission. The zero-equivalent
// VoteNone means "no vote": it is both the baseline for untouched
// submissions and the wire value that clears an existing vote.
type VoteType string

const (
	VoteNone VoteType = "none"
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// ValidVoteType reports whether v is one of the three known directions
func ValidVoteType(v VoteType) bool {
	return v == VoteNone || v == VoteUp || v == VoteDown
}

// SubmissionState tracks where a submission sits in the vote pipeline.
// Idle is the resting state; a settled batch returns its submissions to
// Idle with the committed or restored vote as the new baseline.
type SubmissionState string

const (
	StateIdle     SubmissionState = "idle"      // No intent in progress
	StateQueued   SubmissionState = "queued"    // Intent waiting in the debounce window
	StateSigning  SubmissionState = "signing"   // Batch drained, awaiting wallet signature
	StateInFlight SubmissionState = "in_flight" // Signed batch submitted, awaiting response
)

// Sentinel errors for locally detected batch failures. Each of these rolls
// back the affected intents without any network vote call.
var (
	// ErrVotePending means the submission already has a batch being signed
	// or in flight; new votes on it are refused until the batch settles
	ErrVotePending = errors.New("vote already pending for this submission")

	// ErrNotHolder means the connected wallet holds none of the token
	ErrNotHolder = errors.New("wallet does not hold this token")

	// ErrInsufficientBalance means the wallet holds the token but below
	// the minimum percentage required to vote
	ErrInsufficientBalance = errors.New("token balance below the voting minimum")

	// ErrSignatureRejected means the wallet refused or failed to sign the
	// batch message
	ErrSignatureRejected = errors.New("signature request rejected")
)

// Server error codes returned in the {error, code} envelope and in per-item
// batch errors. Known codes translate to distinct user-facing messages.
const (
	CodeHolderNotVerified   = "HOLDER_NOT_VERIFIED"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeSignatureExpired    = "SIGNATURE_EXPIRED"
	CodeSignatureInvalid    = "SIGNATURE_INVALID"
	CodeCooldownActive      = "COOLDOWN_ACTIVE"
)

// FailureMessage translates a server error code into a short user-facing
// message. Unknown codes get a generic one; cooldown messages include the
// remaining wait when the server provided it.
func FailureMessage(code string, retryAfter time.Duration) string {
	switch code {
	case CodeHolderNotVerified:
		return "You must hold this token to vote"
	case CodeInsufficientBalance:
		return "Your token balance is below the voting minimum"
	case CodeSignatureExpired:
		return "The vote signature expired, please vote again"
	case CodeSignatureInvalid:
		return "The vote signature could not be verified"
	case CodeCooldownActive:
		if retryAfter > 0 {
			return fmt.Sprintf("Vote cooldown active, try again in %d seconds", int(retryAfter.Seconds()))
		}
		return "Vote cooldown active, try again shortly"
	default:
		return "Vote failed, please try again"
	}
}

// BatchVote is one wire intent inside a batch request. VoteType carries the
// desired absolute state: "up", "down", or "none" to clear an existing vote.
type BatchVote struct {
	SubmissionID string   `json:"submissionId"`
	VoteType     VoteType `json:"voteType"`
}

// BatchRequest is the body of POST /api/votes/batch. PublicKey and
// Signature are hex encoded; SignatureTimestamp is the unix millisecond
// timestamp embedded in the signed canonical message.
type BatchRequest struct {
	Votes              []BatchVote `json:"votes"`
	VoterWallet        string      `json:"voterWallet"`
	PublicKey          string      `json:"publicKey"`
	Signature          string      `json:"signature"`
	SignatureTimestamp int64       `json:"signatureTimestamp"`
}

// BatchResult is one per-submission success. VoteState is the server's
// authoritative resulting vote, and the tallies reflect it.
type BatchResult struct {
	SubmissionID string   `json:"submissionId"`
	VoteState    VoteType `json:"voteState"`
	Upvotes      int      `json:"upvotes"`
	Downvotes    int      `json:"downvotes"`
	Score        float64  `json:"score"`
}

// BatchError is one per-submission failure inside an otherwise accepted
// batch. RetryAfterSeconds is only set for cooldown rejections.
type BatchError struct {
	SubmissionID      string `json:"submissionId"`
	Error             string `json:"error"`
	Code              string `json:"code"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty"`
}

// BatchResponse partitions a batch into per-submission successes and
// failures. A submission appears in exactly one of the two lists.
type BatchResponse struct {
	Results []BatchResult `json:"results"`
	Errors  []BatchError  `json:"errors"`
}

// EventType identifies a vote pipeline outcome event
type EventType string

const (
	// EventVoteCommitted carries the authoritative server state for one
	// submission after a successful batch item
	EventVoteCommitted EventType = "vote_committed"

	// EventVoteRolledBack means one submission's optimistic vote was
	// reverted, with a user-facing reason
	EventVoteRolledBack EventType = "vote_rolled_back"

	// EventBatchSettled closes out one batch with succeeded/failed counts.
	// Emitted once per flush, never per retry.
	EventBatchSettled EventType = "batch_settled"
)

// Event is delivered to UI listeners for each vote outcome. Fields beyond
// Type are populated per event kind: submission fields for per-item events,
// counts for batch settlement.
type Event struct {
	Type         EventType
	BatchID      string
	SubmissionID string   // per-item events
	VoteState    VoteType // committed or restored vote for the submission
	Upvotes      int      // authoritative tallies on commit
	Downvotes    int
	Score        float64
	Message      string // user-facing reason on rollback
	Succeeded    int    // batch settlement counts
	Failed       int
}
