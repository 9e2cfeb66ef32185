package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/arena/internal/cli"
	"github.com/example/arena/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "arena",
		Short:   "arena - Bradley-Terry ranking over pairwise judge verdicts",
		Version: version.String(),
		Long: `arena ranks a growing population of candidates using only noisy
pairwise "A beats B" judgments. Scores come from a Bradley-Terry model fit
over the full comparison log; the opponents command bounds how many judge
calls each new candidate costs.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.RegisterCmd())
	rootCmd.AddCommand(cli.RecordCmd())
	rootCmd.AddCommand(cli.RankingsCmd())
	rootCmd.AddCommand(cli.OpponentsCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
