// Package rating estimates candidate strengths from pairwise outcomes under
// the Bradley-Terry model, where P(i beats j) = score_i / (score_i + score_j).
//
// Two interchangeable solvers are provided: an iterative
// Minorization-Maximization fixed point (MMSolver) that needs nothing beyond
// the standard library, and a quasi-Newton maximizer of the log-likelihood
// (OptimizerSolver) built on gonum. Both converge to the same fixed point
// within tolerance.
//
// Regularization: every candidate with at least one recorded game is given a
// single phantom comparison against a fixed reference of strength 1.0, lost
// half the time (half a phantom win plus one phantom game). Without it, a
// candidate with a unanimous record would drive its score to infinity or
// zero. The same constant applies to all candidates.
package rating

import (
	"math"
	"sort"
)

// Phantom comparison constants. Kept fixed for the life of a run so scores
// stay comparable across recomputes.
const (
	phantomWins     = 0.5
	phantomGames    = 1.0
	phantomRefScore = 1.0
)

// defaultScore is the strength of a candidate with no information.
const defaultScore = 1.0

// Game is one judged pairing expressed as the outcome for candidate A:
// 1 for a win, 0.5 for a tie, 0 for a loss.
type Game struct {
	A      string
	B      string
	ScoreA float64
}

// Settings bound the work a solver may do. The zero value selects defaults.
type Settings struct {
	// Tolerance is the maximum absolute score change between sweeps below
	// which the solve is considered converged. Default 1e-6.
	Tolerance float64

	// MaxIterations is the hard iteration budget. Exhausting it is not an
	// error; the result is flagged as unconverged. Default 100.
	MaxIterations int
}

const (
	defaultTolerance     = 1e-6
	defaultMaxIterations = 100
)

func (s Settings) withDefaults() Settings {
	if s.Tolerance <= 0 {
		s.Tolerance = defaultTolerance
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = defaultMaxIterations
	}
	return s
}

// Result carries the scores of a full recomputation. Scores contains every
// candidate passed to Solve, including zero-game candidates at the default
// score. After each solve, the geometric mean of all positive-game scores is
// normalized to 1 to pin down the scale invariance of the likelihood.
type Result struct {
	Scores map[string]float64

	// Converged is false when the iteration budget ran out before the
	// tolerance was met. Scores are still usable, just lower confidence.
	Converged bool

	// Iterations is the number of sweeps (or optimizer major iterations)
	// actually performed.
	Iterations int

	// MaxDelta is the largest absolute score change seen in the final MM
	// sweep. Zero for the optimizer path.
	MaxDelta float64
}

// Solver computes maximum-likelihood Bradley-Terry strengths from a full
// comparison log. Implementations are pure: bounded, synchronous, in-memory.
type Solver interface {
	Solve(candidates []string, games []Game) (Result, error)
}

// tally is the aggregated form of a game log: effective win counts and
// pairwise game counts over the candidates that played at least once.
type tally struct {
	ids   []string       // active candidates, sorted for determinism
	index map[string]int // id -> position in ids

	wins  []float64           // effective wins (ties count 0.5 each)
	pairs []map[int]float64   // pairs[i][j] = games between i and j
	idle  []string            // candidates with zero games
}

// buildTally aggregates games over the union of the candidate list and the
// game participants. Candidates with no games are kept aside untouched.
func buildTally(candidates []string, games []Game) *tally {
	seen := make(map[string]bool, len(candidates))
	all := make([]string, 0, len(candidates))
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			all = append(all, id)
		}
	}
	for _, id := range candidates {
		add(id)
	}
	for _, g := range games {
		add(g.A)
		add(g.B)
	}

	played := make(map[string]bool, len(all))
	for _, g := range games {
		played[g.A] = true
		played[g.B] = true
	}

	t := &tally{index: make(map[string]int)}
	for _, id := range all {
		if played[id] {
			t.ids = append(t.ids, id)
		} else {
			t.idle = append(t.idle, id)
		}
	}
	sort.Strings(t.ids)
	for i, id := range t.ids {
		t.index[id] = i
	}

	t.wins = make([]float64, len(t.ids))
	t.pairs = make([]map[int]float64, len(t.ids))
	for i := range t.pairs {
		t.pairs[i] = make(map[int]float64)
	}

	for _, g := range games {
		i, j := t.index[g.A], t.index[g.B]
		t.wins[i] += g.ScoreA
		t.wins[j] += 1.0 - g.ScoreA
		t.pairs[i][j]++
		t.pairs[j][i]++
	}

	return t
}

// opponentsOf returns i's opponents in deterministic order.
func (t *tally) opponentsOf(i int) []int {
	opps := make([]int, 0, len(t.pairs[i]))
	for j := range t.pairs[i] {
		opps = append(opps, j)
	}
	sort.Ints(opps)
	return opps
}

// result assembles a Result from solved active scores, filling in idle
// candidates at the default score.
func (t *tally) result(scores []float64, converged bool, iterations int, maxDelta float64) Result {
	out := make(map[string]float64, len(t.ids)+len(t.idle))
	for i, id := range t.ids {
		out[id] = scores[i]
	}
	for _, id := range t.idle {
		out[id] = defaultScore
	}
	return Result{
		Scores:     out,
		Converged:  converged,
		Iterations: iterations,
		MaxDelta:   maxDelta,
	}
}

// normalizeGeometricMean rescales scores in place so their geometric mean is
// exactly 1, removing the scale degeneracy of the Bradley-Terry likelihood.
func normalizeGeometricMean(scores []float64) {
	if len(scores) == 0 {
		return
	}
	sumLog := 0.0
	for _, s := range scores {
		sumLog += math.Log(s)
	}
	gm := math.Exp(sumLog / float64(len(scores)))
	for i := range scores {
		scores[i] /= gm
	}
}
