package rating

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// OptimizerSolver maximizes the Bradley-Terry log-likelihood
//
//	sum over games of [ log(score_winner) - log(score_a + score_b) ]
//
// directly, using gonum's quasi-Newton BFGS. The positivity constraint is
// handled by optimizing over u_i = log(score_i), which is unconstrained; the
// phantom comparison term makes the reparameterized likelihood strictly
// concave, so BFGS and the MM fixed point agree within tolerance.
//
// MMSolver remains the default path for minimal environments; this solver is
// opted into via engine settings.
type OptimizerSolver struct {
	settings Settings
}

// NewOptimizerSolver returns a gonum-backed solver with the given settings.
func NewOptimizerSolver(settings Settings) *OptimizerSolver {
	return &OptimizerSolver{settings: settings.withDefaults()}
}

// Solve minimizes the negative log-likelihood over log-scores.
func (s *OptimizerSolver) Solve(candidates []string, games []Game) (Result, error) {
	t := buildTally(candidates, games)
	n := len(t.ids)
	if n == 0 {
		return t.result(nil, true, 0, 0), nil
	}

	// Index form of the game log, ties expressed as fractional outcomes.
	type indexedGame struct {
		i, j   int
		scoreI float64
	}
	indexed := make([]indexedGame, 0, len(games))
	for _, g := range games {
		indexed = append(indexed, indexedGame{t.index[g.A], t.index[g.B], g.ScoreA})
	}

	problem := optimize.Problem{
		Func: func(u []float64) float64 {
			nll := 0.0
			for _, g := range indexed {
				nll -= g.scoreI*u[g.i] + (1-g.scoreI)*u[g.j] - math.Log(math.Exp(u[g.i])+math.Exp(u[g.j]))
			}
			// Phantom comparison against the unit reference (u_ref = 0).
			for i := 0; i < n; i++ {
				nll -= phantomWins*u[i] - phantomGames*math.Log(math.Exp(u[i])+phantomRefScore)
			}
			return nll
		},
		Grad: func(grad, u []float64) {
			for i := range grad {
				grad[i] = 0
			}
			for _, g := range indexed {
				p := math.Exp(u[g.i]) / (math.Exp(u[g.i]) + math.Exp(u[g.j]))
				grad[g.i] -= g.scoreI - p
				grad[g.j] -= (1 - g.scoreI) - (1 - p)
			}
			for i := 0; i < n; i++ {
				p := math.Exp(u[i]) / (math.Exp(u[i]) + phantomRefScore)
				grad[i] -= phantomWins - phantomGames*p
			}
		},
	}

	u0 := make([]float64, n)
	opt, err := optimize.Minimize(problem, u0, &optimize.Settings{
		MajorIterations:   s.settings.MaxIterations,
		GradientThreshold: s.settings.Tolerance,
	}, &optimize.BFGS{})
	if opt == nil {
		return Result{}, fmt.Errorf("bradley-terry optimization failed: %w", err)
	}

	// Subtracting the mean log-score before exponentiating normalizes the
	// geometric mean to 1.
	meanU := 0.0
	for _, u := range opt.X {
		meanU += u
	}
	meanU /= float64(n)

	scores := make([]float64, n)
	for i, u := range opt.X {
		scores[i] = math.Exp(u - meanU)
		if math.IsNaN(scores[i]) || math.IsInf(scores[i], 0) {
			return Result{}, fmt.Errorf("bradley-terry optimization produced non-finite score for %s", t.ids[i])
		}
	}

	converged := err == nil && opt.Status != optimize.IterationLimit
	return t.result(scores, converged, opt.Stats.MajorIterations, 0), nil
}

var _ Solver = (*OptimizerSolver)(nil)
