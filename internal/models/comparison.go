package models

import "time"

// Winner identifies the outcome of a pairwise comparison from the judge.
type Winner string

const (
	WinnerA   Winner = "a"
	WinnerB   Winner = "b"
	WinnerTie Winner = "tie"
)

// Valid reports whether w is one of the three recognized outcomes.
func (w Winner) Valid() bool {
	return w == WinnerA || w == WinnerB || w == WinnerTie
}

// Comparison is one judged pairing. The comparison log is append-only and is
// the system of record; scores are always re-derivable from it.
type Comparison struct {
	ID         string
	CandidateA string
	CandidateB string
	Winner     Winner
	Reasoning  string
	CreatedAt  time.Time
}

// OutcomeFor returns the game outcome from the given candidate's perspective:
// 1 for a win, 0.5 for a tie, 0 for a loss. The candidate must be one of the
// two participants.
func (c Comparison) OutcomeFor(candidateID string) float64 {
	switch {
	case c.Winner == WinnerTie:
		return 0.5
	case c.Winner == WinnerA && candidateID == c.CandidateA:
		return 1.0
	case c.Winner == WinnerB && candidateID == c.CandidateB:
		return 1.0
	default:
		return 0.0
	}
}
