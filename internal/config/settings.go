package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SolverKind selects the score-solving strategy.
type SolverKind string

const (
	// SolverMM is the dependency-light Minorization-Maximization iteration.
	SolverMM SolverKind = "mm"
	// SolverOptimizer maximizes the log-likelihood with gonum's BFGS.
	SolverOptimizer SolverKind = "optimizer"
)

// Settings tunes the engine: solver choice, convergence bounds and the
// opponent-selection budget. Loaded from an optional arena.yaml; any field
// left zero keeps its default.
type Settings struct {
	Solver SolverSettings   `yaml:"solver" validate:"required"`
	Select SelectorSettings `yaml:"selector"`
}

// SolverSettings bounds a full score recomputation.
type SolverSettings struct {
	// Kind picks the solver implementation. MM is the default and works in
	// minimal environments; the optimizer converges in fewer iterations.
	Kind SolverKind `yaml:"kind" validate:"required,oneof=mm optimizer"`

	// Tolerance is the maximum score change between sweeps considered
	// converged.
	Tolerance float64 `yaml:"tolerance" validate:"gte=0"`

	// MaxIterations is the hard iteration budget per recompute.
	MaxIterations int `yaml:"max_iterations" validate:"gte=0,lte=100000"`
}

// SelectorSettings bounds the judge calls spent per candidate.
type SelectorSettings struct {
	Random   int `yaml:"random" validate:"gte=0,lte=100"`
	Quartile int `yaml:"quartile" validate:"gte=0,lte=100"`
	Neighbor int `yaml:"neighbor" validate:"gte=0,lte=100"`

	// Seed fixes the random sub-selection for reproducible runs. Zero means
	// seed from the clock.
	Seed int64 `yaml:"seed"`
}

// DefaultSettings returns the engine defaults used when no settings file is
// configured.
func DefaultSettings() Settings {
	return Settings{
		Solver: SolverSettings{
			Kind:          SolverMM,
			Tolerance:     1e-6,
			MaxIterations: 100,
		},
		Select: SelectorSettings{
			Random:   3,
			Quartile: 4,
			Neighbor: 3,
		},
	}
}

// LoadSettings reads and validates an arena.yaml settings file. An empty
// path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	if settings.Solver.Kind == "" {
		settings.Solver.Kind = SolverMM
	}

	if err := validator.New().Struct(settings); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}
