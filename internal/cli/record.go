package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/arena/internal/models"
	"github.com/example/arena/internal/ports/primary"
	"github.com/example/arena/internal/wire"
)

// RecordCmd returns the record command
func RecordCmd() *cobra.Command {
	var reasoning string

	cmd := &cobra.Command{
		Use:   "record <candidate-a> <candidate-b> <winner>",
		Short: "Record a judged comparison and recompute all scores",
		Long: `Record one judge verdict. Winner is 'a', 'b' or 'tie'.
Both candidates are created on first mention. Every recorded comparison
triggers a full Bradley-Terry recomputation over the whole log.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RankingService()
			if err != nil {
				return err
			}
			defer wire.Close()

			report, err := svc.SubmitResult(context.Background(), primary.SubmitResultRequest{
				CandidateA: args[0],
				CandidateB: args[1],
				Winner:     models.Winner(args[2]),
				Reasoning:  reasoning,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Recorded %s vs %s (winner: %s)\n", args[0], args[1], args[2])
			fmt.Printf("Recomputed %d candidates over %d comparisons in %d iterations\n",
				report.Candidates, report.Comparisons, report.Iterations)
			if !report.Converged {
				fmt.Println("Warning: solver hit its iteration budget before converging; scores are usable but lower confidence")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&reasoning, "reasoning", "r", "", "judge's justification for the verdict")

	return cmd
}

// RegisterCmd returns the register command
func RegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <candidate-id>",
		Short: "Register a candidate at the default score",
		Long:  `Create a candidate if absent. Registering an existing candidate is a no-op.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RankingService()
			if err != nil {
				return err
			}
			defer wire.Close()

			if err := svc.Register(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Registered %s\n", args[0])
			return nil
		},
	}
}
