// Package dispatch retry policy: which failures are worth repeating and how
// long to wait between attempts.
//
// The policy is deliberately narrow. Server overload (5xx), throttling (429),
// and attempts that died on the wire (timeouts, connection failures) retry;
// every other client error is final, since repeating a 404 or a validation
// failure only burns the API budget. Waits honor the server's Retry-After
// header exactly when one is present and otherwise grow exponentially with a
// sub-second jitter so synchronized clients fan out.
package dispatch

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// noRetryCtxKey marks requests whose callers opted out of automatic retries.
type noRetryCtxKey struct{}

// WithoutRetry returns a context that disables automatic retries for any
// request dispatched with it. Used for calls where repeating a failed
// attempt is worse than surfacing the failure immediately.
func WithoutRetry(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRetryCtxKey{}, true)
}

// shouldRetry reports whether a failed attempt is worth repeating. Transport
// errors and per-attempt timeouts retry; HTTP responses retry only on 429 and
// 5xx. Caller cancellation and opt-out requests never retry.
func shouldRetry(r *resty.Response, err error) bool {
	if r != nil && r.Request != nil {
		ctx := r.Request.Context()
		if ctx.Err() != nil {
			return false
		}
		if ctx.Value(noRetryCtxKey{}) != nil {
			return false
		}
	}

	if err != nil {
		// Connection failures and per-attempt timeouts
		return true
	}

	code := r.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// retryWait computes the wait before the next attempt. A server-provided
// Retry-After wins; otherwise exponential backoff with jitter, keyed off the
// number of attempts already made.
//
// Returning exactly zero would make resty fall back to its own backoff, so a
// zero-second Retry-After is mapped to the smallest positive duration.
func retryWait(c *resty.Client, resp *resty.Response) (time.Duration, error) {
	if d, ok := parseRetryAfter(resp); ok {
		if d <= 0 {
			return time.Nanosecond, nil
		}
		return d, nil
	}

	// resp.Request.Attempt is 1-based; the first retry backs off 2^0 seconds
	return BackoffDelay(resp.Request.Attempt - 1), nil
}

// BackoffDelay returns the wait before retry n (0-based): 2^n seconds plus a
// uniform sub-second jitter, so the delay always lands in [2^n, 2^n+1).
// Exported so the policy is testable without a live client.
func BackoffDelay(retry int) time.Duration {
	if retry < 0 {
		retry = 0
	}
	base := time.Duration(1<<uint(retry)) * time.Second
	jitter := time.Duration(rand.Int63n(int64(time.Second)))
	return base + jitter
}

// parseRetryAfter extracts a Retry-After header expressed in whole seconds.
// Returns false when the header is absent or not a non-negative integer.
func parseRetryAfter(resp *resty.Response) (time.Duration, bool) {
	if resp == nil {
		return 0, false
	}

	header := resp.Header().Get("Retry-After")
	if header == "" {
		return 0, false
	}

	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0, false
	}

	return time.Duration(seconds) * time.Second, true
}
