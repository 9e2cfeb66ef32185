// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/arena/internal/models"
)

// ComparisonStore defines the secondary port for the durable comparison log.
// It is the sole state that survives restarts; every read re-derives from
// storage, never from a diverging in-memory cache.
type ComparisonStore interface {
	// Register creates a candidate at the default score if absent.
	// Idempotent: registering an existing candidate is a no-op.
	Register(ctx context.Context, candidateID string) error

	// Record appends a comparison row and increments each participant's game
	// count and the winner's win count (neither win count moves on a tie),
	// all within one exclusive transaction. Both candidates are created on
	// first mention. Fails with models.ErrInvalidComparison when the two
	// candidate ids are identical or the winner value is malformed.
	Record(ctx context.Context, candidateA, candidateB string, winner models.Winner, reasoning string) error

	// LoadAll returns the full candidate table and comparison log as a
	// single consistent snapshot.
	LoadAll(ctx context.Context) (*Snapshot, error)

	// PersistScores atomically overwrites the score column for exactly the
	// candidates in the mapping. An unknown candidate id fails with
	// models.ErrUnknownCandidate and rolls the whole write back.
	PersistScores(ctx context.Context, scores map[string]float64) error

	// PairExists reports whether the two candidates have already been
	// compared, in either order.
	PairExists(ctx context.Context, candidateA, candidateB string) (bool, error)

	// History returns all comparisons involving a candidate, newest first.
	History(ctx context.Context, candidateID string) ([]models.Comparison, error)
}

// Snapshot is a consistent view of the whole store, sufficient input for a
// full score recomputation.
type Snapshot struct {
	Candidates  []models.Candidate
	Comparisons []models.Comparison
}
