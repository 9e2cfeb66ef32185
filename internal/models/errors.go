package models

import "errors"

// Engine error taxonomy. Callers use errors.Is to distinguish bad input from
// transient infrastructure failures.
var (
	// ErrInvalidComparison indicates a malformed comparison request:
	// self-comparison, empty candidate id, or an unrecognized winner value.
	// Rejected before any write; the caller must fix the request.
	ErrInvalidComparison = errors.New("invalid comparison")

	// ErrUnknownCandidate indicates a reference to a candidate absent from
	// the store where one was expected to exist.
	ErrUnknownCandidate = errors.New("unknown candidate")

	// ErrStoreUnavailable indicates the persistence layer could not acquire
	// its lock within the configured timeout. Retryable; no partial state
	// was committed.
	ErrStoreUnavailable = errors.New("store unavailable")
)
