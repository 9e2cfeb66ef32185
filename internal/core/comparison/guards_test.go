package comparison

import (
	"errors"
	"testing"

	"github.com/example/arena/internal/models"
)

func TestCanRecord(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RecordContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name: "can record win for a",
			ctx: RecordContext{
				CandidateA: "gen3-variant-1",
				CandidateB: "gen2-variant-4",
				Winner:     models.WinnerA,
			},
			wantAllowed: true,
		},
		{
			name: "can record tie",
			ctx: RecordContext{
				CandidateA: "gen3-variant-1",
				CandidateB: "gen2-variant-4",
				Winner:     models.WinnerTie,
			},
			wantAllowed: true,
		},
		{
			name: "cannot record with empty candidate a",
			ctx: RecordContext{
				CandidateA: "",
				CandidateB: "gen2-variant-4",
				Winner:     models.WinnerA,
			},
			wantAllowed: false,
			wantReason:  "candidate id must not be empty",
		},
		{
			name: "cannot record with empty candidate b",
			ctx: RecordContext{
				CandidateA: "gen3-variant-1",
				CandidateB: "",
				Winner:     models.WinnerB,
			},
			wantAllowed: false,
			wantReason:  "candidate id must not be empty",
		},
		{
			name: "cannot record self comparison",
			ctx: RecordContext{
				CandidateA: "gen3-variant-1",
				CandidateB: "gen3-variant-1",
				Winner:     models.WinnerA,
			},
			wantAllowed: false,
			wantReason:  "candidate gen3-variant-1 cannot be compared against itself",
		},
		{
			name: "cannot record unknown winner",
			ctx: RecordContext{
				CandidateA: "gen3-variant-1",
				CandidateB: "gen2-variant-4",
				Winner:     models.Winner("draw"),
			},
			wantAllowed: false,
			wantReason:  `winner must be 'a', 'b' or 'tie', got "draw"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRecord(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestGuardResult_Error(t *testing.T) {
	t.Run("allowed result returns nil error", func(t *testing.T) {
		result := GuardResult{Allowed: true}
		if err := result.Error(); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})

	t.Run("not allowed result wraps ErrInvalidComparison", func(t *testing.T) {
		result := GuardResult{Allowed: false, Reason: "test reason"}
		err := result.Error()
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !errors.Is(err, models.ErrInvalidComparison) {
			t.Errorf("error %v does not wrap ErrInvalidComparison", err)
		}
	})
}
