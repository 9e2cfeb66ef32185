package cli

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/arena/internal/config"
	"github.com/example/arena/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for workspace validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the arena workspace and database",
		Long: `Health check for the arena workspace.

Validates:
- .arena/config.json presence and shape
- Database file and schema (candidates, comparisons)
- Engine settings file, when configured
- Comparison log consistency (counters match the log)

Examples:
  arena doctor          # Run full health check
  arena doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			var results []CheckResult
			cfg, configResult := checkConfig(cwd)
			results = append(results, configResult)
			results = append(results, checkSettings(cfg))
			results = append(results, checkDatabase(cfg)...)

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. Run 'arena init' to set up the workspace.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("workspace validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkConfig loads .arena/config.json; a missing config is a warning because
// the CLI falls back to the default database path.
func checkConfig(cwd string) (*config.Config, CheckResult) {
	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		return nil, CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: "  .arena/config.json not found; using default database path",
		}
	}
	if cfg.DBPath == "" {
		return cfg, CheckResult{
			Name:    "Config",
			Status:  "✗",
			Details: "  db_path is empty in .arena/config.json",
		}
	}
	return cfg, CheckResult{Name: "Config", Status: "✓"}
}

// checkSettings validates the engine settings file when one is configured.
func checkSettings(cfg *config.Config) CheckResult {
	path := ""
	if cfg != nil {
		path = cfg.SettingsPath
	}
	if path == "" {
		return CheckResult{Name: "Settings", Status: "✓"}
	}
	if _, err := config.LoadSettings(path); err != nil {
		return CheckResult{
			Name:    "Settings",
			Status:  "✗",
			Details: "  " + err.Error(),
		}
	}
	return CheckResult{Name: "Settings", Status: "✓"}
}

// checkDatabase opens the database and verifies the schema and counter
// consistency: every candidate's games count must equal its appearances in
// the comparison log.
func checkDatabase(cfg *config.Config) []CheckResult {
	dbPath := ""
	if cfg != nil {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDBPath()
		if err != nil {
			return []CheckResult{{Name: "Database", Status: "✗", Details: "  " + err.Error()}}
		}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return []CheckResult{{
			Name:    "Database",
			Status:  "⚠",
			Details: "  " + dbPath + " does not exist yet",
		}}
	}

	conn, err := db.Open(dbPath)
	if err != nil {
		return []CheckResult{{Name: "Database", Status: "✗", Details: "  " + err.Error()}}
	}
	defer conn.Close()

	results := []CheckResult{{Name: "Database", Status: "✓"}}
	results = append(results, checkTables(conn))
	results = append(results, checkCounters(conn))
	return results
}

func checkTables(conn *sql.DB) CheckResult {
	var missing []string
	for _, table := range []string{"candidates", "comparisons"} {
		var name string
		err := conn.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Name:    "Schema",
			Status:  "✗",
			Details: "  Missing tables: " + strings.Join(missing, ", "),
		}
	}
	return CheckResult{Name: "Schema", Status: "✓"}
}

// checkCounters cross-checks the denormalized games counters against the
// comparison log they are derived from.
func checkCounters(conn *sql.DB) CheckResult {
	rows, err := conn.Query(`
		SELECT c.id
		FROM candidates c
		WHERE c.games != (
			SELECT COUNT(*) FROM comparisons
			WHERE candidate_a = c.id OR candidate_b = c.id
		)`)
	if err != nil {
		return CheckResult{Name: "Counters", Status: "✗", Details: "  " + err.Error()}
	}
	defer rows.Close()

	var drifted []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return CheckResult{Name: "Counters", Status: "✗", Details: "  " + err.Error()}
		}
		drifted = append(drifted, id)
	}
	if err := rows.Err(); err != nil {
		return CheckResult{Name: "Counters", Status: "✗", Details: "  " + err.Error()}
	}

	if len(drifted) > 0 {
		return CheckResult{
			Name:    "Counters",
			Status:  "✗",
			Details: "  Game counters out of sync with the comparison log for: " + strings.Join(drifted, ", "),
		}
	}
	return CheckResult{Name: "Counters", Status: "✓"}
}
