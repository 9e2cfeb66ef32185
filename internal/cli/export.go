package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/arena/internal/wire"
)

// exportDocument is the JSON shape emitted by `arena export`.
type exportDocument struct {
	Metadata exportMetadata     `json:"metadata"`
	Scores   map[string]float64 `json:"scores"`
}

type exportMetadata struct {
	Algorithm       string `json:"algorithm"`
	TotalCandidates int    `json:"total_candidates"`
	ExportedAt      string `json:"exported_at"`
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export candidate scores as JSON",
		Long: `Dump candidate id -> score for the whole population. The output is
suitable as parent-selection weights for an external evolution orchestrator.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RankingService()
			if err != nil {
				return err
			}
			defer wire.Close()

			scores, err := svc.ExportScores(context.Background())
			if err != nil {
				return err
			}

			doc := exportDocument{
				Metadata: exportMetadata{
					Algorithm:       "bradley-terry-mm",
					TotalCandidates: len(scores),
					ExportedAt:      time.Now().Format(time.RFC3339),
				},
				Scores: scores,
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal export: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <candidate-id>",
		Short: "Show all comparisons involving a candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := wire.RankingService()
			if err != nil {
				return err
			}
			defer wire.Close()

			history, err := svc.History(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Printf("No comparisons recorded for %s\n", args[0])
				return nil
			}

			for _, c := range history {
				outcome := "tie"
				switch c.Winner {
				case "a":
					outcome = c.CandidateA
				case "b":
					outcome = c.CandidateB
				}
				fmt.Printf("%s  %s vs %s  winner: %s\n",
					c.CreatedAt.Format(time.RFC3339), c.CandidateA, c.CandidateB, outcome)
				if c.Reasoning != "" {
					fmt.Printf("    %s\n", c.Reasoning)
				}
			}
			return nil
		},
	}
}
