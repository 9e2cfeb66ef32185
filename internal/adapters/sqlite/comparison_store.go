// Package sqlite contains the SQLite implementation of the comparison store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/example/arena/internal/models"
	"github.com/example/arena/internal/ports/secondary"
)

// ComparisonStore implements secondary.ComparisonStore with SQLite.
// Every write runs inside a short exclusive transaction so concurrent
// evaluation workers never observe a comparison without its candidate rows,
// or a partially updated score table.
type ComparisonStore struct {
	db *sql.DB
}

// NewComparisonStore creates a new SQLite comparison store.
func NewComparisonStore(db *sql.DB) *ComparisonStore {
	return &ComparisonStore{db: db}
}

// Register creates a candidate at the default score if absent.
func (s *ComparisonStore) Register(ctx context.Context, candidateID string) error {
	if candidateID == "" {
		return fmt.Errorf("%w: candidate id must not be empty", models.ErrInvalidComparison)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO candidates (id, score) VALUES (?, ?)",
		candidateID, models.DefaultScore,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to register candidate %s: %w", candidateID, err))
	}
	return nil
}

// Record appends one comparison and updates both candidates' counters in a
// single transaction. Candidates are created on first mention.
func (s *ComparisonStore) Record(ctx context.Context, candidateA, candidateB string, winner models.Winner, reasoning string) error {
	if candidateA == "" || candidateB == "" {
		return fmt.Errorf("%w: candidate id must not be empty", models.ErrInvalidComparison)
	}
	if candidateA == candidateB {
		return fmt.Errorf("%w: candidate %s cannot be compared against itself", models.ErrInvalidComparison, candidateA)
	}
	if !winner.Valid() {
		return fmt.Errorf("%w: winner must be 'a', 'b' or 'tie', got %q", models.ErrInvalidComparison, winner)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("failed to begin record transaction: %w", err))
	}
	defer tx.Rollback()

	for _, id := range []string{candidateA, candidateB} {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO candidates (id, score) VALUES (?, ?)",
			id, models.DefaultScore,
		); err != nil {
			return classify(fmt.Errorf("failed to ensure candidate %s: %w", id, err))
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO comparisons (id, candidate_a, candidate_b, winner, reasoning) VALUES (?, ?, ?, ?, ?)",
		uuid.NewString(), candidateA, candidateB, string(winner), reasoning,
	); err != nil {
		return classify(fmt.Errorf("failed to record comparison: %w", err))
	}

	// Game counts always move; win counts only on a decisive outcome.
	winsA, winsB := 0, 0
	switch winner {
	case models.WinnerA:
		winsA = 1
	case models.WinnerB:
		winsB = 1
	}
	for _, upd := range []struct {
		id   string
		wins int
	}{{candidateA, winsA}, {candidateB, winsB}} {
		if _, err := tx.ExecContext(ctx,
			"UPDATE candidates SET games = games + 1, wins = wins + ? WHERE id = ?",
			upd.wins, upd.id,
		); err != nil {
			return classify(fmt.Errorf("failed to update counters for %s: %w", upd.id, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("failed to commit comparison: %w", err))
	}
	return nil
}

// LoadAll reads both tables inside one read transaction so the solver sees a
// consistent snapshot.
func (s *ComparisonStore) LoadAll(ctx context.Context) (*secondary.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, classify(fmt.Errorf("failed to begin snapshot transaction: %w", err))
	}
	defer tx.Rollback()

	snapshot := &secondary.Snapshot{}

	rows, err := tx.QueryContext(ctx,
		"SELECT id, score, wins, games, created_at FROM candidates ORDER BY id",
	)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to load candidates: %w", err))
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Score, &c.Wins, &c.Games, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		snapshot.Candidates = append(snapshot.Candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("failed to iterate candidates: %w", err))
	}

	compRows, err := tx.QueryContext(ctx,
		"SELECT id, candidate_a, candidate_b, winner, reasoning, created_at FROM comparisons ORDER BY created_at, id",
	)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to load comparisons: %w", err))
	}
	defer compRows.Close()
	for compRows.Next() {
		c, err := scanComparison(compRows)
		if err != nil {
			return nil, err
		}
		snapshot.Comparisons = append(snapshot.Comparisons, c)
	}
	if err := compRows.Err(); err != nil {
		return nil, classify(fmt.Errorf("failed to iterate comparisons: %w", err))
	}

	return snapshot, nil
}

// PersistScores overwrites the score column for exactly the mapped
// candidates. The whole write commits or none of it does.
func (s *ComparisonStore) PersistScores(ctx context.Context, scores map[string]float64) error {
	if len(scores) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("failed to begin score transaction: %w", err))
	}
	defer tx.Rollback()

	// Deterministic write order keeps lock behavior reproducible.
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		res, err := tx.ExecContext(ctx,
			"UPDATE candidates SET score = ? WHERE id = ?",
			scores[id], id,
		)
		if err != nil {
			return classify(fmt.Errorf("failed to persist score for %s: %w", id, err))
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check score update for %s: %w", id, err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: %s", models.ErrUnknownCandidate, id)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("failed to commit scores: %w", err))
	}
	return nil
}

// PairExists reports whether the pair was already judged, in either order.
func (s *ComparisonStore) PairExists(ctx context.Context, candidateA, candidateB string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comparisons
		 WHERE (candidate_a = ? AND candidate_b = ?) OR (candidate_a = ? AND candidate_b = ?)`,
		candidateA, candidateB, candidateB, candidateA,
	).Scan(&count)
	if err != nil {
		return false, classify(fmt.Errorf("failed to check pair existence: %w", err))
	}
	return count > 0, nil
}

// History returns all comparisons involving the candidate, newest first.
func (s *ComparisonStore) History(ctx context.Context, candidateID string) ([]models.Comparison, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, candidate_a, candidate_b, winner, reasoning, created_at
		 FROM comparisons
		 WHERE candidate_a = ? OR candidate_b = ?
		 ORDER BY created_at DESC, id DESC`,
		candidateID, candidateID,
	)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to load history for %s: %w", candidateID, err))
	}
	defer rows.Close()

	var history []models.Comparison
	for rows.Next() {
		c, err := scanComparison(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("failed to iterate history: %w", err))
	}
	return history, nil
}

func scanComparison(rows *sql.Rows) (models.Comparison, error) {
	var (
		c         models.Comparison
		winner    string
		reasoning sql.NullString
		createdAt time.Time
	)
	if err := rows.Scan(&c.ID, &c.CandidateA, &c.CandidateB, &winner, &reasoning, &createdAt); err != nil {
		return models.Comparison{}, fmt.Errorf("failed to scan comparison: %w", err)
	}
	c.Winner = models.Winner(winner)
	c.Reasoning = reasoning.String
	c.CreatedAt = createdAt
	return c, nil
}

// classify maps SQLite lock contention onto the retryable store error so
// callers can distinguish transient pressure from bad input.
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked {
			return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
	}
	return err
}

// Ensure ComparisonStore implements the interface
var _ secondary.ComparisonStore = (*ComparisonStore)(nil)
