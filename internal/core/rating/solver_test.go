package rating

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solversUnderTest runs every property against both solver paths; they must
// agree on the same fixed point within tolerance.
func solversUnderTest() map[string]Solver {
	return map[string]Solver{
		"mm":        NewMMSolver(Settings{}),
		"optimizer": NewOptimizerSolver(Settings{}),
	}
}

// repeat appends n copies of a game.
func repeat(games []Game, g Game, n int) []Game {
	for i := 0; i < n; i++ {
		games = append(games, g)
	}
	return games
}

func geometricMean(scores map[string]float64, ids []string) float64 {
	sumLog := 0.0
	for _, id := range ids {
		sumLog += math.Log(scores[id])
	}
	return math.Exp(sumLog / float64(len(ids)))
}

func TestSolvers_CycleConvergesToEqualScores(t *testing.T) {
	// A beats B, B beats C, C beats A, three times each: a perfectly cyclic
	// record carries no strength information.
	var games []Game
	games = repeat(games, Game{A: "A", B: "B", ScoreA: 1}, 3)
	games = repeat(games, Game{A: "B", B: "C", ScoreA: 1}, 3)
	games = repeat(games, Game{A: "C", B: "A", ScoreA: 1}, 3)

	for name, solver := range solversUnderTest() {
		t.Run(name, func(t *testing.T) {
			result, err := solver.Solve([]string{"A", "B", "C"}, games)
			require.NoError(t, err)

			assert.InDelta(t, result.Scores["A"], result.Scores["B"], 1e-3)
			assert.InDelta(t, result.Scores["B"], result.Scores["C"], 1e-3)
			assert.InDelta(t, 1.0, result.Scores["A"], 1e-3)
		})
	}
}

func TestSolvers_DominationStaysFinite(t *testing.T) {
	// A beats B in 10 of 10 with no other data. Without damping A's score
	// would diverge; the phantom comparison keeps both finite and ordered.
	games := repeat(nil, Game{A: "A", B: "B", ScoreA: 1}, 10)

	for name, solver := range solversUnderTest() {
		t.Run(name, func(t *testing.T) {
			result, err := solver.Solve([]string{"A", "B"}, games)
			require.NoError(t, err)

			scoreA, scoreB := result.Scores["A"], result.Scores["B"]
			assert.Greater(t, scoreA, scoreB)
			assert.Greater(t, scoreB, 0.0)
			assert.False(t, math.IsInf(scoreA, 1), "score A must stay finite")
			assert.Less(t, scoreA, 1e6)
		})
	}
}

func TestSolvers_GeometricMeanNormalized(t *testing.T) {
	games := []Game{
		{A: "A", B: "B", ScoreA: 1},
		{A: "A", B: "C", ScoreA: 1},
		{A: "B", B: "C", ScoreA: 1},
		{A: "C", B: "A", ScoreA: 0.5},
	}

	for name, solver := range solversUnderTest() {
		t.Run(name, func(t *testing.T) {
			result, err := solver.Solve([]string{"A", "B", "C"}, games)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, geometricMean(result.Scores, []string{"A", "B", "C"}), 1e-6)
		})
	}
}

func TestSolvers_ZeroGameCandidateKeepsDefaultScore(t *testing.T) {
	games := repeat(nil, Game{A: "A", B: "B", ScoreA: 1}, 5)

	for name, solver := range solversUnderTest() {
		t.Run(name, func(t *testing.T) {
			result, err := solver.Solve([]string{"A", "B", "K"}, games)
			require.NoError(t, err)

			assert.Equal(t, 1.0, result.Scores["K"], "isolated candidate must keep the default score")
			assert.Len(t, result.Scores, 3)
		})
	}
}

func TestSolvers_MonotonicityAgainstCommonOpponents(t *testing.T) {
	// X and Y both face the same three opponents; X wins more of them.
	var games []Game
	for _, opp := range []string{"O1", "O2", "O3"} {
		games = repeat(games, Game{A: "X", B: opp, ScoreA: 1}, 3)
		games = append(games, Game{A: "X", B: opp, ScoreA: 0})
		games = repeat(games, Game{A: "Y", B: opp, ScoreA: 1}, 1)
		games = repeat(games, Game{A: "Y", B: opp, ScoreA: 0}, 3)
	}

	for name, solver := range solversUnderTest() {
		t.Run(name, func(t *testing.T) {
			result, err := solver.Solve([]string{"X", "Y", "O1", "O2", "O3"}, games)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.Scores["X"], result.Scores["Y"])
		})
	}
}

func TestSolvers_AgreeOnSameFixedPoint(t *testing.T) {
	games := []Game{
		{A: "A", B: "B", ScoreA: 1},
		{A: "A", B: "B", ScoreA: 1},
		{A: "A", B: "C", ScoreA: 0},
		{A: "B", B: "C", ScoreA: 1},
		{A: "B", B: "D", ScoreA: 0.5},
		{A: "C", B: "D", ScoreA: 1},
		{A: "D", B: "A", ScoreA: 0},
		{A: "D", B: "B", ScoreA: 1},
	}
	candidates := []string{"A", "B", "C", "D"}

	mm, err := NewMMSolver(Settings{Tolerance: 1e-9, MaxIterations: 2000}).Solve(candidates, games)
	require.NoError(t, err)
	opt, err := NewOptimizerSolver(Settings{Tolerance: 1e-9, MaxIterations: 2000}).Solve(candidates, games)
	require.NoError(t, err)

	for _, id := range candidates {
		assert.InDelta(t, mm.Scores[id], opt.Scores[id], 1e-4, "solvers disagree on %s", id)
	}
}

func TestSolvers_Deterministic(t *testing.T) {
	games := []Game{
		{A: "A", B: "B", ScoreA: 1},
		{A: "B", B: "C", ScoreA: 0},
		{A: "C", B: "A", ScoreA: 0.5},
	}
	candidates := []string{"A", "B", "C"}

	for name, solver := range solversUnderTest() {
		t.Run(name, func(t *testing.T) {
			first, err := solver.Solve(candidates, games)
			require.NoError(t, err)
			second, err := solver.Solve(candidates, games)
			require.NoError(t, err)
			assert.Equal(t, first.Scores, second.Scores)
		})
	}
}

func TestSolvers_EmptyPopulation(t *testing.T) {
	for name, solver := range solversUnderTest() {
		t.Run(name, func(t *testing.T) {
			result, err := solver.Solve(nil, nil)
			require.NoError(t, err)
			assert.True(t, result.Converged)
			assert.Empty(t, result.Scores)
		})
	}
}

func TestMMSolver_IterationBudgetFlagsResult(t *testing.T) {
	var games []Game
	games = repeat(games, Game{A: "A", B: "B", ScoreA: 1}, 7)
	games = repeat(games, Game{A: "B", B: "C", ScoreA: 1}, 7)

	result, err := NewMMSolver(Settings{Tolerance: 1e-12, MaxIterations: 2}).Solve([]string{"A", "B", "C"}, games)
	require.NoError(t, err)

	assert.False(t, result.Converged, "two sweeps cannot reach 1e-12")
	assert.Equal(t, 2, result.Iterations)
	assert.Greater(t, result.MaxDelta, 0.0)
	// Budget exhaustion still returns usable, ordered scores.
	assert.Greater(t, result.Scores["A"], result.Scores["C"])
}

func TestMMSolver_TieOnlyLogYieldsEqualScores(t *testing.T) {
	games := repeat(nil, Game{A: "A", B: "B", ScoreA: 0.5}, 4)

	result, err := NewMMSolver(Settings{}).Solve([]string{"A", "B"}, games)
	require.NoError(t, err)
	assert.InDelta(t, result.Scores["A"], result.Scores["B"], 1e-6)
}
