package rating

import "math"

// MMSolver fits Bradley-Terry strengths with the Zermelo
// Minorization-Maximization update:
//
//	score_i <- W_i / sum_j( n_ij / (score_i + score_j) )
//
// where W_i is candidate i's effective win count and n_ij the number of games
// between i and j. Each sweep uses the previous sweep's scores on the right
// hand side and rescales to unit geometric mean afterwards. The phantom
// comparison against the unit reference keeps every update finite.
type MMSolver struct {
	settings Settings
}

// NewMMSolver returns an MM solver with the given settings.
func NewMMSolver(settings Settings) *MMSolver {
	return &MMSolver{settings: settings.withDefaults()}
}

// Solve runs MM sweeps until the maximum absolute score change drops below
// the tolerance or the iteration budget is exhausted.
func (s *MMSolver) Solve(candidates []string, games []Game) (Result, error) {
	t := buildTally(candidates, games)
	n := len(t.ids)
	if n == 0 {
		return t.result(nil, true, 0, 0), nil
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = defaultScore
	}

	prev := make([]float64, n)
	var (
		converged  bool
		iterations int
		maxDelta   float64
	)

	for iter := 1; iter <= s.settings.MaxIterations; iter++ {
		copy(prev, scores)

		next := make([]float64, n)
		for i := range t.ids {
			denom := phantomGames / (prev[i] + phantomRefScore)
			for _, j := range t.opponentsOf(i) {
				denom += t.pairs[i][j] / (prev[i] + prev[j])
			}
			next[i] = (t.wins[i] + phantomWins) / denom
		}
		normalizeGeometricMean(next)
		copy(scores, next)

		iterations = iter
		maxDelta = 0
		for i := range scores {
			if d := math.Abs(scores[i] - prev[i]); d > maxDelta {
				maxDelta = d
			}
		}
		if maxDelta < s.settings.Tolerance {
			converged = true
			break
		}
	}

	return t.result(scores, converged, iterations, maxDelta), nil
}

var _ Solver = (*MMSolver)(nil)
