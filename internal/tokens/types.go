package tokens

import "github.com/tokenboard/tokenboard/internal/votes"

// TokenInfo is the detail record for one token: identity, market figures,
// and the submissions voted on under it.
type TokenInfo struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Symbol      string       `json:"symbol"`
	TotalSupply float64      `json:"totalSupply"`
	PriceUSD    float64      `json:"priceUsd"`
	Change24h   float64      `json:"change24h"`
	Score       float64      `json:"score"`
	Submissions []Submission `json:"submissions"`
}

// Submission is one community submission under a token, with its running
// vote tallies
type Submission struct {
	ID        string  `json:"id"`
	TokenID   string  `json:"tokenId"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Upvotes   int     `json:"upvotes"`
	Downvotes int     `json:"downvotes"`
	Score     float64 `json:"score"`
}

// HolderInfo describes one wallet's position in a token. Percentage is the
// share of total supply held, in percent.
type HolderInfo struct {
	Balance    float64 `json:"balance"`
	Percentage float64 `json:"percentage"`
	Holder     bool    `json:"holder"`
}

// VoteStatus is the server's record of one wallet's vote on a submission,
// with the submission's current tallies.
type VoteStatus struct {
	SubmissionID string         `json:"submissionId"`
	VoteState    votes.VoteType `json:"voteState"`
	Upvotes      int            `json:"upvotes"`
	Downvotes    int            `json:"downvotes"`
	Score        float64        `json:"score"`
}

// SearchResponse is the wire envelope for token search results
type SearchResponse struct {
	Query   string      `json:"query"`
	Results []TokenInfo `json:"results"`
}

// BulkCheckRequest asks for one wallet's votes across many submissions
type BulkCheckRequest struct {
	SubmissionIDs []string `json:"submissionIds"`
	Wallet        string   `json:"wallet"`
}

// BulkCheckResponse maps submission IDs to the wallet's vote on each.
// Submissions the wallet never voted on are absent.
type BulkCheckResponse struct {
	Votes map[string]VoteStatus `json:"votes"`
}
