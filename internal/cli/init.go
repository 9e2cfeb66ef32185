// Package cli contains the cobra commands for the arena tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/arena/internal/config"
	"github.com/example/arena/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var dbPath string
	var settingsPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize an arena workspace in the current directory",
		Long: `Create .arena/config.json pointing at the ranking database.
The database file is created (with its schema) if it does not exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			if dbPath == "" {
				dbPath, err = config.DefaultDBPath()
				if err != nil {
					return err
				}
			}

			cfg := &config.Config{
				Version:      "1",
				DBPath:       dbPath,
				SettingsPath: settingsPath,
			}
			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}

			conn, err := db.Open(dbPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			fmt.Printf("Initialized arena workspace\n")
			fmt.Printf("  Database: %s\n", dbPath)
			if settingsPath != "" {
				fmt.Printf("  Settings: %s\n", settingsPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the ranking database (default ~/.arena/arena.db)")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "path to an arena.yaml engine settings file")

	return cmd
}
