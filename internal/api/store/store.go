// Package store holds the development backend's in-memory token data.
//
// The store is seeded deterministically: the same seed produces the same
// tokens, submissions, base tallies, and holder positions on every start,
// so cached reads, bookmarks, and test fixtures stay valid across boardd
// restarts. Live votes overlay the seeded base tallies; nothing persists
// beyond process memory.
//
// HOLDER MODEL:
// Explicitly registered positions win. In open mode (the default for local
// development) any unregistered wallet gets a position fabricated from a
// stable hash of the wallet and token, so a freshly generated dev wallet
// can vote without a registration step. Closed mode answers "not a holder"
// for unregistered wallets, which is what eligibility tests exercise.
package store

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/tokenboard/tokenboard/internal/names"
	"github.com/tokenboard/tokenboard/internal/tokens"
	"github.com/tokenboard/tokenboard/internal/votes"
)

// submissionTitles seeds readable demo submissions. Picked per submission
// by the seeded generator.
var submissionTitles = []string{
	"Community takeover plan",
	"Exchange listing petition",
	"Liquidity lock proof",
	"Treasury transparency report",
	"Mascot redesign proposal",
	"Bridge deployment vote",
	"Marketing budget breakdown",
	"Burn schedule announcement",
	"Airdrop eligibility snapshot",
	"Roadmap revision draft",
}

// Config controls how the store seeds itself
type Config struct {
	// Seed determines the full seeded data set; identical seeds produce
	// identical stores
	Seed int64

	// TokenCount is the number of demo tokens to seed
	TokenCount int

	// OpenHolders fabricates a deterministic position for any wallet not
	// explicitly registered. Development convenience; disable for
	// eligibility testing.
	OpenHolders bool
}

// DefaultConfig returns the standard dev store seeding
func DefaultConfig() *Config {
	return &Config{
		Seed:        1,
		TokenCount:  12,
		OpenHolders: true,
	}
}

// Validate checks if the store configuration is valid
func (c *Config) Validate() error {
	if c.TokenCount <= 0 {
		return fmt.Errorf("token count must be positive, got %d", c.TokenCount)
	}
	return nil
}

// seededSubmission is a stored submission: identity plus the seeded base
// tallies that live votes overlay
type seededSubmission struct {
	id       string
	tokenID  string
	title    string
	url      string
	baseUp   int
	baseDown int
}

// holderPosition is an explicitly registered wallet position
type holderPosition struct {
	balance    float64
	percentage float64
}

// Store is the seeded in-memory backing data for the development backend.
// Safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	tokens      map[string]*tokens.TokenInfo // seeded identity + market figures
	order       []string                     // token IDs in seed order
	submissions map[string]*seededSubmission // submission ID -> record
	subsByToken map[string][]string          // token ID -> submission IDs in seed order
	holders     map[string]map[string]holderPosition
	votes       map[string]map[string]votes.VoteType // submission -> wallet -> state
	open        bool
}

// New builds and seeds a store. A nil config uses defaults.
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}

	s := &Store{
		tokens:      make(map[string]*tokens.TokenInfo),
		submissions: make(map[string]*seededSubmission),
		subsByToken: make(map[string][]string),
		holders:     make(map[string]map[string]holderPosition),
		votes:       make(map[string]map[string]votes.VoteType),
		open:        cfg.OpenHolders,
	}
	s.seed(cfg.Seed, cfg.TokenCount)
	return s, nil
}

// seed populates tokens, submissions, and base tallies from one seed
func (s *Store) seed(seed int64, count int) {
	gen := names.NewSeeded(seed)
	rng := rand.New(rand.NewSource(seed))

	for _, id := range gen.GenerateMany(count) {
		info := &tokens.TokenInfo{
			ID:          id,
			Name:        names.DisplayName(id),
			Symbol:      names.Symbol(id),
			TotalSupply: math.Round(1e6 + rng.Float64()*1e9),
			PriceUSD:    math.Round(rng.Float64()*10*1e6) / 1e6,
			Change24h:   math.Round((rng.Float64()*2-1)*25*100) / 100,
		}
		s.tokens[id] = info
		s.order = append(s.order, id)

		subCount := 2 + rng.Intn(3)
		for n := 1; n <= subCount; n++ {
			subID := fmt.Sprintf("%s-sub-%d", id, n)
			sub := &seededSubmission{
				id:       subID,
				tokenID:  id,
				title:    submissionTitles[rng.Intn(len(submissionTitles))],
				url:      "https://board.example/" + subID,
				baseUp:   rng.Intn(500),
				baseDown: rng.Intn(200),
			}
			s.submissions[subID] = sub
			s.subsByToken[id] = append(s.subsByToken[id], subID)
		}
	}
}

// TokenCount returns the number of seeded tokens
func (s *Store) TokenCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

// TokenIDs returns all token IDs in seed order
func (s *Store) TokenIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Token returns one token with live tallies folded into its submissions
func (s *Store) Token(id string) (*tokens.TokenInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenLocked(id)
}

// tokenLocked assembles a token snapshot. Caller must hold at least a read
// lock.
func (s *Store) tokenLocked(id string) (*tokens.TokenInfo, bool) {
	seeded, ok := s.tokens[id]
	if !ok {
		return nil, false
	}

	info := *seeded
	info.Submissions = make([]tokens.Submission, 0, len(s.subsByToken[id]))
	total := 0.0
	for _, subID := range s.subsByToken[id] {
		sub := s.submissionSnapshotLocked(subID)
		info.Submissions = append(info.Submissions, sub)
		total += sub.Score
	}
	info.Score = total
	return &info, true
}

// submissionSnapshotLocked folds live votes over a submission's base
// tallies. Caller must hold at least a read lock.
func (s *Store) submissionSnapshotLocked(subID string) tokens.Submission {
	seeded := s.submissions[subID]
	up, down := seeded.baseUp, seeded.baseDown
	for _, state := range s.votes[subID] {
		switch state {
		case votes.VoteUp:
			up++
		case votes.VoteDown:
			down++
		}
	}
	return tokens.Submission{
		ID:        seeded.id,
		TokenID:   seeded.tokenID,
		Title:     seeded.title,
		URL:       seeded.url,
		Upvotes:   up,
		Downvotes: down,
		Score:     float64(up - down),
	}
}

// Search returns tokens whose ID, name, or symbol contains the query,
// case-insensitively. An empty query returns every token. Results follow
// seed order so pagination stays stable.
func (s *Store) Search(query string) []tokens.TokenInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	results := make([]tokens.TokenInfo, 0)
	for _, id := range s.order {
		seeded := s.tokens[id]
		if needle != "" &&
			!strings.Contains(strings.ToLower(seeded.ID), needle) &&
			!strings.Contains(strings.ToLower(seeded.Name), needle) &&
			!strings.Contains(strings.ToLower(seeded.Symbol), needle) {
			continue
		}
		if info, ok := s.tokenLocked(id); ok {
			results = append(results, *info)
		}
	}
	return results
}

// RegisterHolder records an explicit wallet position in a token,
// overriding any fabricated one. Percentage is the share of supply in
// percent; balance derives from it.
func (s *Store) RegisterHolder(tokenID, wallet string, percentage float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded, ok := s.tokens[tokenID]
	if !ok {
		return fmt.Errorf("unknown token: %s", tokenID)
	}
	if s.holders[tokenID] == nil {
		s.holders[tokenID] = make(map[string]holderPosition)
	}
	s.holders[tokenID][wallet] = holderPosition{
		balance:    seeded.TotalSupply * percentage / 100,
		percentage: percentage,
	}
	return nil
}

// Holder returns a wallet's position in a token. Explicit registrations
// win; open mode fabricates a stable position for unregistered wallets;
// closed mode reports them as non-holders. The second return is false only
// when the token itself is unknown.
func (s *Store) Holder(tokenID, wallet string) (*tokens.HolderInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seeded, ok := s.tokens[tokenID]
	if !ok {
		return nil, false
	}

	if pos, ok := s.holders[tokenID][wallet]; ok {
		return &tokens.HolderInfo{
			Balance:    pos.balance,
			Percentage: pos.percentage,
			Holder:     pos.percentage > 0,
		}, true
	}

	if !s.open {
		return &tokens.HolderInfo{}, true
	}

	pct := fabricatedPercentage(tokenID, wallet)
	return &tokens.HolderInfo{
		Balance:    math.Round(seeded.TotalSupply * pct / 100),
		Percentage: pct,
		Holder:     true,
	}, true
}

// fabricatedPercentage derives a stable holding from the wallet and token
// identities. Range [0.05, 2.0) keeps most dev wallets comfortably above
// the default voting minimum while leaving a sliver below it.
func fabricatedPercentage(tokenID, wallet string) float64 {
	h := fnv.New32a()
	h.Write([]byte(tokenID))
	h.Write([]byte(":"))
	h.Write([]byte(strings.ToLower(wallet)))
	return 0.05 + float64(h.Sum32()%195)/100
}

// SubmissionToken resolves which token a submission belongs to
func (s *Store) SubmissionToken(subID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seeded, ok := s.submissions[subID]
	if !ok {
		return "", false
	}
	return seeded.tokenID, true
}

// ApplyVote records a wallet's absolute vote state on a submission and
// returns the submission's resulting status. A "none" state clears any
// recorded vote.
func (s *Store) ApplyVote(subID, wallet string, state votes.VoteType) (*tokens.VoteStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.submissions[subID]; !ok {
		return nil, fmt.Errorf("unknown submission: %s", subID)
	}

	if state == votes.VoteNone {
		delete(s.votes[subID], wallet)
	} else {
		if s.votes[subID] == nil {
			s.votes[subID] = make(map[string]votes.VoteType)
		}
		s.votes[subID][wallet] = state
	}

	return s.voteStatusLocked(subID, wallet), nil
}

// VoteFor returns a wallet's recorded vote on a submission with current
// tallies
func (s *Store) VoteFor(subID, wallet string) (*tokens.VoteStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.submissions[subID]; !ok {
		return nil, fmt.Errorf("unknown submission: %s", subID)
	}
	return s.voteStatusLocked(subID, wallet), nil
}

// voteStatusLocked assembles a wallet's vote status. Caller must hold at
// least a read lock.
func (s *Store) voteStatusLocked(subID, wallet string) *tokens.VoteStatus {
	state, ok := s.votes[subID][wallet]
	if !ok {
		state = votes.VoteNone
	}
	snapshot := s.submissionSnapshotLocked(subID)
	return &tokens.VoteStatus{
		SubmissionID: subID,
		VoteState:    state,
		Upvotes:      snapshot.Upvotes,
		Downvotes:    snapshot.Downvotes,
		Score:        snapshot.Score,
	}
}

// BulkVotes returns a wallet's recorded votes across submissions. Unknown
// submissions and never-voted ones are absent from the result.
func (s *Store) BulkVotes(subIDs []string, wallet string) map[string]tokens.VoteStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]tokens.VoteStatus)
	seen := make(map[string]bool, len(subIDs))
	for _, subID := range subIDs {
		if seen[subID] {
			continue
		}
		seen[subID] = true

		if _, ok := s.submissions[subID]; !ok {
			continue
		}
		if _, voted := s.votes[subID][wallet]; !voted {
			continue
		}
		result[subID] = *s.voteStatusLocked(subID, wallet)
	}
	return result
}

// Submissions returns every seeded submission ID, sorted, for diagnostics
// and tests
func (s *Store) Submissions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.submissions))
	for id := range s.submissions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
