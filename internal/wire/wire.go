// Package wire provides dependency injection for the arena application.
// It creates singleton services with lazy initialization for the CLI; tests
// and embedders construct services explicitly via Build so multiple
// populations can run in one process.
package wire

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/example/arena/internal/adapters/sqlite"
	"github.com/example/arena/internal/app"
	"github.com/example/arena/internal/config"
	"github.com/example/arena/internal/core/rating"
	"github.com/example/arena/internal/core/selection"
	"github.com/example/arena/internal/db"
	"github.com/example/arena/internal/ports/primary"
)

var (
	rankingService primary.RankingService
	database       *sql.DB
	initErr        error
	once           sync.Once
)

// RankingService returns the singleton RankingService instance, wired from
// .arena/config.json in the working directory (or the default database path
// when no config exists).
func RankingService() (primary.RankingService, error) {
	once.Do(initServices)
	return rankingService, initErr
}

// Close releases the singleton database connection.
func Close() error {
	if database != nil {
		return database.Close()
	}
	return nil
}

func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		initErr = fmt.Errorf("failed to get working directory: %w", err)
		return
	}

	var dbPath, settingsPath string
	if cfg, err := config.LoadConfig(cwd); err == nil {
		dbPath = cfg.DBPath
		settingsPath = cfg.SettingsPath
	}
	if dbPath == "" {
		dbPath, err = config.DefaultDBPath()
		if err != nil {
			initErr = err
			return
		}
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		initErr = err
		return
	}

	database, err = db.Open(dbPath)
	if err != nil {
		initErr = err
		return
	}

	rankingService = Build(database, settings, slog.Default())
}

// Build constructs a RankingService from explicit dependencies.
func Build(database *sql.DB, settings config.Settings, logger *slog.Logger) primary.RankingService {
	ratingSettings := rating.Settings{
		Tolerance:     settings.Solver.Tolerance,
		MaxIterations: settings.Solver.MaxIterations,
	}

	var solver rating.Solver
	if settings.Solver.Kind == config.SolverOptimizer {
		solver = rating.NewOptimizerSolver(ratingSettings)
	} else {
		solver = rating.NewMMSolver(ratingSettings)
	}

	seed := settings.Select.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	counts := selection.Counts{
		Random:   settings.Select.Random,
		Quartile: settings.Select.Quartile,
		Neighbor: settings.Select.Neighbor,
	}

	store := sqlite.NewComparisonStore(database)
	selector := selection.New(seed)
	return app.NewRankingService(store, solver, selector, counts, logger)
}
