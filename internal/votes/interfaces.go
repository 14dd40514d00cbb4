// Package votes implements the debounced vote batching pipeline: individual
// vote intents collapse into signed batches, optimistic state is applied
// immediately and committed or rolled back per submission once the server
// answers.
package votes

import "context"

// Poster submits JSON requests to the token API. Implemented by the
// dispatch package; kept narrow here so engine tests can stub the network
// without an HTTP server.
type Poster interface {
	PostJSON(ctx context.Context, path string, body any, out any) error
}

// HolderChecker performs the fresh holder-eligibility read that gates every
// batch. Implementations must bypass cached balances; a stale read here
// could let an ineligible wallet reach the signing prompt.
type HolderChecker interface {
	HolderStatus(ctx context.Context, tokenID, wallet string) (held bool, percentage float64, err error)
}
