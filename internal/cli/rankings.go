package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/arena/internal/wire"
)

// RankingsCmd returns the rankings command
func RankingsCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Show the current leaderboard",
		Long: `Print all candidates sorted by Bradley-Terry score (descending),
ties broken by candidate id. Candidates without comparisons rank at the
default score of 1.0.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RankingService()
			if err != nil {
				return err
			}
			defer wire.Close()

			entries, err := svc.Rankings(context.Background())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No candidates yet. Use `arena record` or `arena register`.")
				return nil
			}

			if top > 0 && top < len(entries) {
				entries = entries[:top]
			}

			fmt.Printf("%-6s %-30s %-10s %-8s %-8s\n", "Rank", "Candidate", "Score", "Games", "Wins")
			for i, e := range entries {
				line := fmt.Sprintf("%-6d %-30s %-10.4f %-8d %-8d", i+1, e.CandidateID, e.Score, e.Games, e.Wins)
				switch {
				case i == 0:
					fmt.Println(color.New(color.FgHiYellow).Sprint(line))
				case e.Games == 0:
					fmt.Println(color.New(color.Faint).Sprintf("%s (unplaced)", line))
				default:
					fmt.Println(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "show only the top N candidates")

	return cmd
}
