// Package comparison contains the pure business rules for recording
// pairwise outcomes. Guards evaluate preconditions without side effects.
package comparison

import (
	"fmt"

	"github.com/example/arena/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed. The error
// wraps models.ErrInvalidComparison so callers can classify it.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", models.ErrInvalidComparison, r.Reason)
}

// RecordContext provides context for comparison-recording guards.
type RecordContext struct {
	CandidateA string
	CandidateB string
	Winner     models.Winner
}

// CanRecord evaluates whether a comparison may be recorded.
// Rules:
// - Both candidate ids must be non-empty
// - A candidate is never compared against itself
// - Winner must be one of a, b, tie
func CanRecord(ctx RecordContext) GuardResult {
	if ctx.CandidateA == "" || ctx.CandidateB == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "candidate id must not be empty",
		}
	}

	if ctx.CandidateA == ctx.CandidateB {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("candidate %s cannot be compared against itself", ctx.CandidateA),
		}
	}

	if !ctx.Winner.Valid() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("winner must be 'a', 'b' or 'tie', got %q", ctx.Winner),
		}
	}

	return GuardResult{Allowed: true}
}
