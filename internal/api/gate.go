// Vote gate for the development backend: per-wallet request throttling and
// per-submission re-vote cooldowns.
//
// The gate sits in front of vote handling and answers two questions before
// any signature work happens: is this wallet sending requests too fast, and
// did it vote on this submission too recently. Rate limiting is enforced per
// request so one hammering wallet cannot starve others; cooldowns are
// enforced per batch item so a mixed batch can partially succeed.
//
// Cooldown entries live in an expiring cache keyed by wallet and submission,
// so enforcement and cleanup are the same mechanism: once the entry expires
// the cooldown is over. Rate limiters are token buckets kept per wallet for
// the life of the process, which is fine for a dev daemon serving a handful
// of wallets.

package api

import (
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// cooldownSweepInterval is how often expired cooldown entries are purged
const cooldownSweepInterval = 10 * time.Minute

// VoteGate enforces the per-wallet vote acceptance policy. Safe for
// concurrent use.
type VoteGate struct {
	interval  time.Duration  // cooldown length; 0 disables cooldowns
	cooldowns *gocache.Cache // "wallet|submission" -> struct{}, TTL = interval

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewVoteGate creates a gate with the given cooldown interval and per-wallet
// rate limit
func NewVoteGate(interval time.Duration, limit rate.Limit, burst int) *VoteGate {
	return &VoteGate{
		interval:  interval,
		cooldowns: gocache.New(interval, cooldownSweepInterval),
		limiters:  make(map[string]*rate.Limiter),
		limit:     limit,
		burst:     burst,
	}
}

// Allow reports whether the wallet may send a vote request now. When the
// limiter refuses, the returned duration is how long the wallet should wait
// before retrying, never zero.
func (g *VoteGate) Allow(wallet string) (bool, time.Duration) {
	limiter := g.limiterFor(wallet)

	reservation := limiter.Reserve()
	delay := reservation.Delay()
	if delay == 0 {
		return true, 0
	}

	// Refuse instead of queueing; give the token back
	reservation.Cancel()
	if delay < time.Second {
		delay = time.Second
	}
	return false, delay
}

// limiterFor returns the wallet's token bucket, creating it on first use
func (g *VoteGate) limiterFor(wallet string) *rate.Limiter {
	key := strings.ToLower(wallet)

	g.mu.Lock()
	defer g.mu.Unlock()

	limiter, ok := g.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(g.limit, g.burst)
		g.limiters[key] = limiter
	}
	return limiter
}

// CooldownRemaining returns how long the wallet must still wait before
// re-voting on the submission, or zero when no cooldown applies
func (g *VoteGate) CooldownRemaining(wallet, submissionID string) time.Duration {
	if g.interval <= 0 {
		return 0
	}

	_, expiry, found := g.cooldowns.GetWithExpiration(cooldownKey(wallet, submissionID))
	if !found {
		return 0
	}

	remaining := time.Until(expiry)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MarkVoted starts the wallet's cooldown for the submission. Called after a
// vote is accepted, never for refused items.
func (g *VoteGate) MarkVoted(wallet, submissionID string) {
	if g.interval <= 0 {
		return
	}
	g.cooldowns.Set(cooldownKey(wallet, submissionID), struct{}{}, g.interval)
}

// cooldownKey builds the cooldown ledger key. Wallets are lowercased so
// mixed-case addresses share one cooldown.
func cooldownKey(wallet, submissionID string) string {
	return strings.ToLower(wallet) + "|" + submissionID
}
