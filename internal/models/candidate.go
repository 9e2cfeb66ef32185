// Package models defines the domain entities of the arena ranking engine.
package models

import "time"

// DefaultScore is the Bradley-Terry strength assigned to a candidate before
// any comparison has been judged. A candidate with zero games keeps this
// score untouched by recomputes.
const DefaultScore = 1.0

// Candidate is one member of the ranked population. Candidates are created
// on first reference and never deleted.
type Candidate struct {
	ID        string
	Score     float64
	Wins      int
	Games     int
	CreatedAt time.Time
}

// RankingEntry is one row of the leaderboard returned by the ranking facade.
type RankingEntry struct {
	CandidateID string
	Score       float64
	Games       int
	Wins        int
}
