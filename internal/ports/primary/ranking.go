// Package primary defines the primary ports (driving interfaces) for the
// application. External collaborators (the evolutionary search loop and the
// evaluation pipeline) talk to the engine only through these.
package primary

import (
	"context"

	"github.com/example/arena/internal/models"
)

// OpponentPhase selects which selection phase an opponent request targets.
type OpponentPhase string

const (
	// PhaseExploration is run when a candidate first enters the population:
	// random opponents for graph connectivity plus rank-quartile
	// representatives for coarse placement.
	PhaseExploration OpponentPhase = "exploration"

	// PhaseRefinement is run after exploration results are judged and scores
	// recomputed: nearest-score neighbors to disambiguate close calls.
	PhaseRefinement OpponentPhase = "refinement"
)

// SubmitResultRequest carries one judge verdict into the engine.
type SubmitResultRequest struct {
	CandidateA string
	CandidateB string
	Winner     models.Winner
	Reasoning  string
}

// RecomputeReport describes the full score recomputation triggered by a
// submitted result. A false Converged means the solver hit its iteration
// budget; scores are persisted and usable, just lower confidence.
type RecomputeReport struct {
	Converged   bool
	Iterations  int
	Candidates  int
	Comparisons int
}

// NextOpponentsRequest asks for the bounded opponent set a candidate should
// face next. Zero counts fall back to the engine defaults.
type NextOpponentsRequest struct {
	CandidateID string
	Phase       OpponentPhase
	Random      int
	Quartile    int
	Neighbor    int
}

// RankingService is the ranking facade: the only entry point external
// collaborators use. All operations are safe to call repeatedly and in any
// interleaving; writes are serialized by the store's transactions.
type RankingService interface {
	// Register creates a candidate at the default score. Idempotent.
	Register(ctx context.Context, candidateID string) error

	// SubmitResult records a judge verdict, recomputes all scores from the
	// full comparison log, and persists them atomically.
	SubmitResult(ctx context.Context, req SubmitResultRequest) (*RecomputeReport, error)

	// NextOpponents returns the ordered opponent list for the candidate
	// given the current population snapshot.
	NextOpponents(ctx context.Context, req NextOpponentsRequest) ([]string, error)

	// Rankings returns the full leaderboard: descending score, ties broken
	// by candidate id. Side-effect free.
	Rankings(ctx context.Context) ([]models.RankingEntry, error)

	// ExportScores returns candidate id -> score for every candidate,
	// suitable as parent-selection weights for an external orchestrator.
	ExportScores(ctx context.Context) (map[string]float64, error)

	// History returns all comparisons involving the candidate, newest first.
	History(ctx context.Context, candidateID string) ([]models.Comparison, error)
}
