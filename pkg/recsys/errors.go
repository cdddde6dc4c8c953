// Package recsys holds the shared error contract of the recommendation
// engine. The pipeline converts these into degraded responses instead of
// propagating them as crashes.
package recsys

import "errors"

var (
	// ErrProviderUnavailable signals that the embedding or completion
	// provider failed or timed out. Recovered by degrading to
	// filter-only ranking.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrNoCandidates signals that the hard constraints together
	// eliminated every product. Recovered by bounded constraint
	// relaxation. Distinct from a nonempty low-relevance result.
	ErrNoCandidates = errors.New("no candidates satisfy constraints")

	// ErrInvalidConstraint signals a rejected constraint update
	// (e.g. price_min > price_max after merge). Prior state is retained.
	ErrInvalidConstraint = errors.New("invalid constraint update")

	// ErrIndexUnavailable signals that the index backing store is
	// unreachable. Fatal for the turn, retryable by the caller.
	ErrIndexUnavailable = errors.New("product index unavailable")

	// ErrSessionNotFound signals an unknown or expired session id.
	ErrSessionNotFound = errors.New("session not found")
)
