package ai

import "errors"

// Collaborator failure modes. Implementations wrap these sentinels so the
// enrichment pipeline can classify failures without knowing the transport.
var (
	// ErrTimeout indicates the service did not respond within its deadline.
	ErrTimeout = errors.New("ai service timeout")

	// ErrRateLimited indicates the service rejected the call due to rate limits.
	ErrRateLimited = errors.New("ai service rate limited")

	// ErrMalformedResponse indicates the service returned an unparseable response.
	ErrMalformedResponse = errors.New("ai service returned malformed response")

	// ErrEmptyResponse indicates the service returned no usable output.
	ErrEmptyResponse = errors.New("ai service returned empty response")
)

// IsTransient reports whether an error is worth retrying.
// Timeouts, rate limits and single malformed responses are transient;
// anything else is treated as a permanent condition for the current attempt.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrMalformedResponse) ||
		errors.Is(err, ErrEmptyResponse)
}
