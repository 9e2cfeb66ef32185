package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/arena/internal/ports/primary"
	"github.com/example/arena/internal/wire"
)

// OpponentsCmd returns the opponents command
func OpponentsCmd() *cobra.Command {
	var (
		phase    string
		random   int
		quartile int
		neighbor int
	)

	cmd := &cobra.Command{
		Use:   "opponents <candidate-id>",
		Short: "Select the opponents a candidate should be judged against next",
		Long: `Pick a bounded opponent set for the candidate.

Phase "exploration" (the default) combines uniformly random opponents with
rank-quartile representatives to place a new candidate. Phase "refinement"
picks nearest-score neighbors and should be run after the exploration
comparisons have been judged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RankingService()
			if err != nil {
				return err
			}
			defer wire.Close()

			opponents, err := svc.NextOpponents(context.Background(), primary.NextOpponentsRequest{
				CandidateID: args[0],
				Phase:       primary.OpponentPhase(phase),
				Random:      random,
				Quartile:    quartile,
				Neighbor:    neighbor,
			})
			if err != nil {
				return err
			}

			if len(opponents) == 0 {
				fmt.Println("No opponents available (population too small or all pairs already judged).")
				return nil
			}
			for _, id := range opponents {
				fmt.Println(id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&phase, "phase", string(primary.PhaseExploration), "selection phase: exploration or refinement")
	cmd.Flags().IntVar(&random, "random", 0, "random opponent count (0 = engine default)")
	cmd.Flags().IntVar(&quartile, "quartile", 0, "quartile representative count (0 = engine default)")
	cmd.Flags().IntVar(&neighbor, "neighbor", 0, "nearest-neighbor count (0 = engine default)")

	return cmd
}
