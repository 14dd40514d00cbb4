// Vote endpoints for the Tokenboard development backend.
//
// This file implements the write side of the API surface: signed vote
// batches, the legacy single-vote route, and the vote status reads the
// client uses to reconcile optimistic state.
//
// BATCH ACCEPTANCE:
// A batch carries one wallet signature covering every item. Request-level
// checks run first and refuse the whole batch: wallet format, rate limit,
// signature timestamp freshness, signature verification against the
// canonical message. Items that survive are then checked independently
// (holder status, balance minimum, cooldown) so one refused submission
// never sinks its batchmates. The response partitions items into results
// and errors; a submission appears in exactly one of the two.
//
// ENDPOINTS:
//   - POST /api/votes/batch: Signed multi-submission vote batch
//   - POST /api/votes: Legacy single vote, served by the batch path
//   - GET /api/votes/check: Returns one wallet's vote on a submission
//   - POST /api/votes/bulk-check: Returns a wallet's votes across many

package handlers

import (
	"encoding/hex"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokenboard/tokenboard/internal/tokens"
	"github.com/tokenboard/tokenboard/internal/validate"
	"github.com/tokenboard/tokenboard/internal/votes"
	"github.com/tokenboard/tokenboard/internal/wallet"
)

// maxClockSkew is how far in the future a signature timestamp may sit
// before it is refused. Covers modest clock drift between client and
// server without accepting pre-dated signatures.
const maxClockSkew = time.Minute

// VoteStore is the ledger surface vote endpoints need from the store
type VoteStore interface {
	SubmissionToken(submissionID string) (string, bool)
	Holder(tokenID, wallet string) (*tokens.HolderInfo, bool)
	ApplyVote(submissionID, wallet string, state votes.VoteType) (*tokens.VoteStatus, error)
	VoteFor(submissionID, wallet string) (*tokens.VoteStatus, error)
	BulkVotes(submissionIDs []string, wallet string) map[string]tokens.VoteStatus
}

// Gate throttles wallets and tracks re-vote cooldowns
type Gate interface {
	Allow(wallet string) (allowed bool, retryAfter time.Duration)
	CooldownRemaining(wallet, submissionID string) time.Duration
	MarkVoted(wallet, submissionID string)
}

// VotePolicy is the acceptance policy applied to incoming votes
type VotePolicy struct {
	SignatureWindow time.Duration // max age of a signature timestamp
	MinHolderPct    float64       // minimum supply share required to vote
}

// VoteRequest is the legacy single-vote body: one intent plus the same
// signature fields a batch carries. The signature covers the canonical
// message of the equivalent batch of one.
type VoteRequest struct {
	SubmissionID       string         `json:"submissionId"`
	VoteType           votes.VoteType `json:"voteType"`
	VoterWallet        string         `json:"voterWallet"`
	PublicKey          string         `json:"publicKey"`
	Signature          string         `json:"signature"`
	SignatureTimestamp int64          `json:"signatureTimestamp"`
}

// HandleVoteBatch accepts a signed vote batch and applies each surviving
// item to the store
func HandleVoteBatch(store VoteStore, gate Gate, policy VotePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req votes.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest,
				"invalid request body: "+err.Error())
			return
		}

		resp, ok := runBatch(c, store, gate, policy, &req)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HandleVote accepts a legacy single vote by wrapping it into a batch of
// one. A per-item refusal surfaces as the envelope for that item, with
// Retry-After set on cooldowns.
func HandleVote(store VoteStore, gate Gate, policy VotePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest,
				"invalid request body: "+err.Error())
			return
		}

		batchReq := votes.BatchRequest{
			Votes:              []votes.BatchVote{{SubmissionID: req.SubmissionID, VoteType: req.VoteType}},
			VoterWallet:        req.VoterWallet,
			PublicKey:          req.PublicKey,
			Signature:          req.Signature,
			SignatureTimestamp: req.SignatureTimestamp,
		}

		resp, ok := runBatch(c, store, gate, policy, &batchReq)
		if !ok {
			return
		}

		if len(resp.Errors) > 0 {
			itemErr := resp.Errors[0]
			if itemErr.RetryAfterSeconds > 0 {
				c.Header("Retry-After", strconv.Itoa(itemErr.RetryAfterSeconds))
			}
			respondError(c, statusForCode(itemErr.Code), itemErr.Code, itemErr.Error)
			return
		}

		c.JSON(http.StatusOK, resp.Results[0])
	}
}

// runBatch performs request-level checks and per-item application. Returns
// ok=false when a request-level refusal was already written to the
// response.
func runBatch(c *gin.Context, store VoteStore, gate Gate, policy VotePolicy, req *votes.BatchRequest) (*votes.BatchResponse, bool) {
	if err := validate.WalletAddressFormat(req.VoterWallet); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return nil, false
	}
	if len(req.Votes) == 0 {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "batch cannot be empty")
		return nil, false
	}
	for _, v := range req.Votes {
		if err := validate.TokenIDFormat(v.SubmissionID); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
			return nil, false
		}
		if !votes.ValidVoteType(v.VoteType) {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest,
				fmt.Sprintf("invalid vote type: %s", v.VoteType))
			return nil, false
		}
	}

	if allowed, retryAfter := gate.Allow(req.VoterWallet); !allowed {
		c.Header("Retry-After", strconv.Itoa(retrySeconds(retryAfter)))
		respondError(c, http.StatusTooManyRequests, CodeRateLimited,
			"too many vote requests, slow down")
		return nil, false
	}

	signedAt := time.UnixMilli(req.SignatureTimestamp)
	now := time.Now()
	if now.Sub(signedAt) > policy.SignatureWindow || signedAt.Sub(now) > maxClockSkew {
		respondError(c, http.StatusUnauthorized, votes.CodeSignatureExpired,
			"signature timestamp outside the acceptance window")
		return nil, false
	}

	if err := verifyBatchSignature(req); err != nil {
		respondError(c, http.StatusUnauthorized, votes.CodeSignatureInvalid, err.Error())
		return nil, false
	}

	resp := &votes.BatchResponse{
		Results: make([]votes.BatchResult, 0, len(req.Votes)),
		Errors:  make([]votes.BatchError, 0),
	}
	for _, v := range req.Votes {
		result, itemErr := applyItem(store, gate, policy, req.VoterWallet, v)
		if itemErr != nil {
			resp.Errors = append(resp.Errors, *itemErr)
			continue
		}
		resp.Results = append(resp.Results, *result)
	}
	return resp, true
}

// verifyBatchSignature checks the wallet signature over the batch's
// canonical message
func verifyBatchSignature(req *votes.BatchRequest) error {
	publicKey, err := hex.DecodeString(req.PublicKey)
	if err != nil {
		return fmt.Errorf("malformed public key: %w", err)
	}
	sig, err := hex.DecodeString(req.Signature)
	if err != nil {
		return fmt.Errorf("malformed signature: %w", err)
	}

	message := votes.CanonicalMessage(req.Votes, req.VoterWallet, req.SignatureTimestamp)
	return wallet.VerifySignature(req.VoterWallet, publicKey, []byte(message), sig)
}

// applyItem runs per-item policy checks and applies one vote. Exactly one
// of the returns is non-nil.
func applyItem(store VoteStore, gate Gate, policy VotePolicy, voter string, v votes.BatchVote) (*votes.BatchResult, *votes.BatchError) {
	tokenID, ok := store.SubmissionToken(v.SubmissionID)
	if !ok {
		return nil, &votes.BatchError{
			SubmissionID: v.SubmissionID,
			Error:        fmt.Sprintf("unknown submission: %s", v.SubmissionID),
			Code:         CodeNotFound,
		}
	}

	holder, ok := store.Holder(tokenID, voter)
	if !ok || !holder.Holder {
		return nil, &votes.BatchError{
			SubmissionID: v.SubmissionID,
			Error:        "wallet does not hold this token",
			Code:         votes.CodeHolderNotVerified,
		}
	}
	if holder.Percentage < policy.MinHolderPct {
		return nil, &votes.BatchError{
			SubmissionID: v.SubmissionID,
			Error: fmt.Sprintf("holding %.4f%% of supply, need at least %.4f%%",
				holder.Percentage, policy.MinHolderPct),
			Code: votes.CodeInsufficientBalance,
		}
	}

	if remaining := gate.CooldownRemaining(voter, v.SubmissionID); remaining > 0 {
		seconds := retrySeconds(remaining)
		return nil, &votes.BatchError{
			SubmissionID:      v.SubmissionID,
			Error:             fmt.Sprintf("cooldown active for another %d seconds", seconds),
			Code:              votes.CodeCooldownActive,
			RetryAfterSeconds: seconds,
		}
	}

	status, err := store.ApplyVote(v.SubmissionID, voter, v.VoteType)
	if err != nil {
		return nil, &votes.BatchError{
			SubmissionID: v.SubmissionID,
			Error:        err.Error(),
			Code:         CodeNotFound,
		}
	}
	gate.MarkVoted(voter, v.SubmissionID)

	return &votes.BatchResult{
		SubmissionID: status.SubmissionID,
		VoteState:    status.VoteState,
		Upvotes:      status.Upvotes,
		Downvotes:    status.Downvotes,
		Score:        status.Score,
	}, nil
}

// HandleVoteCheck returns one wallet's recorded vote on a submission with
// current tallies
func HandleVoteCheck(store VoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		submissionID := c.Query("submissionId")
		walletAddr := c.Query("wallet")

		if err := validate.TokenIDFormat(submissionID); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
			return
		}
		if err := validate.WalletAddressFormat(walletAddr); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
			return
		}

		status, err := store.VoteFor(submissionID, walletAddr)
		if err != nil {
			respondError(c, http.StatusNotFound, CodeNotFound, err.Error())
			return
		}

		c.JSON(http.StatusOK, status)
	}
}

// HandleBulkVoteCheck returns a wallet's recorded votes across the
// requested submissions. Unknown and never-voted submissions are absent
// from the response map.
func HandleBulkVoteCheck(store VoteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tokens.BulkCheckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest,
				"invalid request body: "+err.Error())
			return
		}

		if err := validate.WalletAddressFormat(req.Wallet); err != nil {
			respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
			return
		}
		for _, submissionID := range req.SubmissionIDs {
			if err := validate.TokenIDFormat(submissionID); err != nil {
				respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
				return
			}
		}

		c.JSON(http.StatusOK, tokens.BulkCheckResponse{
			Votes: store.BulkVotes(req.SubmissionIDs, req.Wallet),
		})
	}
}

// statusForCode maps per-item error codes onto HTTP statuses for the
// legacy single-vote route
func statusForCode(code string) int {
	switch code {
	case votes.CodeCooldownActive:
		return http.StatusTooManyRequests
	case votes.CodeHolderNotVerified, votes.CodeInsufficientBalance:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// retrySeconds converts a wait into whole seconds, rounding up so clients
// never retry early
func retrySeconds(wait time.Duration) int {
	return int(math.Ceil(wait.Seconds()))
}
