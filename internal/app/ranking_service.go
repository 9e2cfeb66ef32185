// Package app implements the primary ports by orchestrating the store, the
// solver and the selector.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/example/arena/internal/core/comparison"
	"github.com/example/arena/internal/core/rating"
	"github.com/example/arena/internal/core/selection"
	"github.com/example/arena/internal/models"
	"github.com/example/arena/internal/ports/primary"
	"github.com/example/arena/internal/ports/secondary"
)

// RankingServiceImpl implements the RankingService interface. It owns no
// state of its own: the store is the single source of truth and every
// operation re-derives from it.
type RankingServiceImpl struct {
	store    secondary.ComparisonStore
	solver   rating.Solver
	selector *selection.Selector
	counts   selection.Counts
	logger   *slog.Logger
}

// NewRankingService creates a new RankingService with injected dependencies.
// counts provides the opponent budget used when a request leaves its counts
// zero; a zero counts value falls back to the package defaults.
func NewRankingService(
	store secondary.ComparisonStore,
	solver rating.Solver,
	selector *selection.Selector,
	counts selection.Counts,
	logger *slog.Logger,
) *RankingServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &RankingServiceImpl{
		store:    store,
		solver:   solver,
		selector: selector,
		counts:   counts,
		logger:   logger,
	}
}

// Register creates a candidate at the default score. Idempotent.
func (s *RankingServiceImpl) Register(ctx context.Context, candidateID string) error {
	return s.store.Register(ctx, candidateID)
}

// SubmitResult records a verdict, then recomputes and persists all scores.
// The store write and the score write are each transactional, and scores are
// always a pure function of the log, so a failure between the two leaves the
// system consistent: the next submit recomputes from the full log again.
func (s *RankingServiceImpl) SubmitResult(ctx context.Context, req primary.SubmitResultRequest) (*primary.RecomputeReport, error) {
	guard := comparison.CanRecord(comparison.RecordContext{
		CandidateA: req.CandidateA,
		CandidateB: req.CandidateB,
		Winner:     req.Winner,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	if err := s.store.Record(ctx, req.CandidateA, req.CandidateB, req.Winner, req.Reasoning); err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}

	return s.recompute(ctx)
}

// recompute solves scores from the full log and persists them.
func (s *RankingServiceImpl) recompute(ctx context.Context) (*primary.RecomputeReport, error) {
	snapshot, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	candidates := make([]string, len(snapshot.Candidates))
	for i, c := range snapshot.Candidates {
		candidates[i] = c.ID
	}
	games := make([]rating.Game, len(snapshot.Comparisons))
	for i, c := range snapshot.Comparisons {
		games[i] = rating.Game{A: c.CandidateA, B: c.CandidateB, ScoreA: c.OutcomeFor(c.CandidateA)}
	}

	result, err := s.solver.Solve(candidates, games)
	if err != nil {
		return nil, fmt.Errorf("failed to solve scores: %w", err)
	}
	if !result.Converged {
		s.logger.Warn("score recomputation hit iteration budget before tolerance",
			"iterations", result.Iterations,
			"max_delta", result.MaxDelta,
		)
	}

	if err := s.store.PersistScores(ctx, result.Scores); err != nil {
		return nil, fmt.Errorf("failed to persist scores: %w", err)
	}

	return &primary.RecomputeReport{
		Converged:   result.Converged,
		Iterations:  result.Iterations,
		Candidates:  len(snapshot.Candidates),
		Comparisons: len(snapshot.Comparisons),
	}, nil
}

// NextOpponents returns the ordered opponent list for the candidate.
func (s *RankingServiceImpl) NextOpponents(ctx context.Context, req primary.NextOpponentsRequest) ([]string, error) {
	if req.CandidateID == "" {
		return nil, fmt.Errorf("%w: candidate id must not be empty", models.ErrInvalidComparison)
	}

	snapshot, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	population := make([]selection.Candidate, len(snapshot.Candidates))
	known := false
	for i, c := range snapshot.Candidates {
		population[i] = selection.Candidate{ID: c.ID, Score: c.Score, Games: c.Games}
		if c.ID == req.CandidateID {
			known = true
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownCandidate, req.CandidateID)
	}

	faced := facedSet(snapshot.Comparisons, req.CandidateID)

	counts := s.counts
	if req.Random > 0 {
		counts.Random = req.Random
	}
	if req.Quartile > 0 {
		counts.Quartile = req.Quartile
	}
	if req.Neighbor > 0 {
		counts.Neighbor = req.Neighbor
	}

	switch req.Phase {
	case primary.PhaseRefinement:
		return s.selector.Refinement(population, req.CandidateID, faced, counts.Neighbor), nil
	case primary.PhaseExploration, "":
		return s.selector.Exploration(population, req.CandidateID, faced, counts), nil
	default:
		return nil, fmt.Errorf("unknown opponent phase %q", req.Phase)
	}
}

// Rankings returns the leaderboard sorted by descending score, ties broken
// by candidate id for determinism.
func (s *RankingServiceImpl) Rankings(ctx context.Context) ([]models.RankingEntry, error) {
	snapshot, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	entries := make([]models.RankingEntry, len(snapshot.Candidates))
	for i, c := range snapshot.Candidates {
		entries[i] = models.RankingEntry{
			CandidateID: c.ID,
			Score:       c.Score,
			Games:       c.Games,
			Wins:        c.Wins,
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].CandidateID < entries[j].CandidateID
	})
	return entries, nil
}

// ExportScores returns candidate id -> score for the whole population.
func (s *RankingServiceImpl) ExportScores(ctx context.Context) (map[string]float64, error) {
	snapshot, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	scores := make(map[string]float64, len(snapshot.Candidates))
	for _, c := range snapshot.Candidates {
		scores[c.ID] = c.Score
	}
	return scores, nil
}

// History returns all comparisons involving the candidate, newest first.
func (s *RankingServiceImpl) History(ctx context.Context, candidateID string) ([]models.Comparison, error) {
	return s.store.History(ctx, candidateID)
}

// facedSet collects the opponents a candidate has already been judged
// against, so the selector never re-spends a judge call on the same pair.
func facedSet(comparisons []models.Comparison, candidateID string) map[string]bool {
	faced := map[string]bool{}
	for _, c := range comparisons {
		switch candidateID {
		case c.CandidateA:
			faced[c.CandidateB] = true
		case c.CandidateB:
			faced[c.CandidateA] = true
		}
	}
	return faced
}

// Ensure RankingServiceImpl implements the interface
var _ primary.RankingService = (*RankingServiceImpl)(nil)
