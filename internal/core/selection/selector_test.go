package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// population builds n candidates c01..cNN with descending scores so rank
// order is predictable in quartile assertions.
func population(n int) []Candidate {
	out := make([]Candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Candidate{
			ID:    fmt.Sprintf("c%02d", i+1),
			Score: float64(n-i) * 0.5,
			Games: 4,
		})
	}
	return out
}

func TestExploration_NeverSelfNeverDuplicates(t *testing.T) {
	pop := population(20)
	sel := New(42)

	picked := sel.Exploration(pop, "c05", nil, Counts{})

	seen := map[string]bool{}
	for _, id := range picked {
		assert.NotEqual(t, "c05", id, "target must never face itself")
		assert.False(t, seen[id], "duplicate opponent %s", id)
		seen[id] = true
	}
	assert.NotEmpty(t, picked)
	assert.LessOrEqual(t, len(picked), DefaultCounts.Random+DefaultCounts.Quartile)
}

func TestExploration_DeterministicForSeed(t *testing.T) {
	pop := population(30)

	first := New(7).Exploration(pop, "c10", nil, Counts{})
	second := New(7).Exploration(pop, "c10", nil, Counts{})

	assert.Equal(t, first, second, "same seed and snapshot must pick the same opponents")
}

func TestExploration_SnapshotOrderDoesNotMatter(t *testing.T) {
	pop := population(12)
	reversed := make([]Candidate, len(pop))
	for i, c := range pop {
		reversed[len(pop)-1-i] = c
	}

	first := New(3).Exploration(pop, "c04", nil, Counts{})
	second := New(3).Exploration(reversed, "c04", nil, Counts{})

	assert.Equal(t, first, second)
}

func TestExploration_ExcludesFacedOpponents(t *testing.T) {
	pop := population(10)
	sel := New(1)

	unfiltered := sel.Exploration(pop, "c01", nil, Counts{})
	require.NotEmpty(t, unfiltered)

	faced := map[string]bool{unfiltered[0]: true}
	filtered := New(1).Exploration(pop, "c01", faced, Counts{})
	assert.NotContains(t, filtered, unfiltered[0])
}

func TestExploration_SmallPopulationDegradesToEveryone(t *testing.T) {
	pop := population(3)
	sel := New(99)

	picked := sel.Exploration(pop, "c02", nil, Counts{})
	assert.ElementsMatch(t, []string{"c01", "c03"}, picked)
}

func TestExploration_TwoCandidates(t *testing.T) {
	pop := population(2)
	picked := New(5).Exploration(pop, "c01", nil, Counts{})
	assert.Equal(t, []string{"c02"}, picked)
}

func TestQuartilePicks_RankRepresentatives(t *testing.T) {
	// Nine ranked candidates, four slots: ranks 0, 2, 4 and 6 cover the
	// 100th, 75th, 50th and 25th percentiles.
	pop := population(9)
	picked := quartilePicks(pop, 4)
	assert.Equal(t, []string{"c01", "c03", "c05", "c07"}, picked)
}

func TestQuartilePicks_CollapsedIndicesDedupe(t *testing.T) {
	pop := population(2)
	picked := quartilePicks(pop, 4)
	assert.Equal(t, []string{"c01", "c02"}, picked)
}

func TestQuartilePicks_SingleCandidate(t *testing.T) {
	picked := quartilePicks(population(1), 4)
	assert.Equal(t, []string{"c01"}, picked)
}

func TestRefinement_NearestByScore(t *testing.T) {
	pop := []Candidate{
		{ID: "target", Score: 1.0, Games: 6},
		{ID: "near-a", Score: 1.05, Games: 6},
		{ID: "near-b", Score: 0.92, Games: 6},
		{ID: "mid", Score: 1.4, Games: 6},
		{ID: "far", Score: 3.0, Games: 6},
	}
	sel := New(0)

	picked := sel.Refinement(pop, "target", nil, 3)
	assert.Equal(t, []string{"near-a", "near-b", "mid"}, picked)
}

func TestRefinement_SkipsFacedAndBackfills(t *testing.T) {
	pop := []Candidate{
		{ID: "target", Score: 1.0},
		{ID: "near", Score: 1.01},
		{ID: "mid", Score: 1.2},
		{ID: "far", Score: 2.5},
	}
	sel := New(0)

	picked := sel.Refinement(pop, "target", map[string]bool{"near": true}, 2)
	assert.Equal(t, []string{"mid", "far"}, picked)
}

func TestRefinement_TieBreaksByID(t *testing.T) {
	pop := []Candidate{
		{ID: "target", Score: 1.0},
		{ID: "b", Score: 1.1},
		{ID: "a", Score: 0.9},
	}
	sel := New(0)

	picked := sel.Refinement(pop, "target", nil, 2)
	assert.Equal(t, []string{"a", "b"}, picked)
}

func TestRefinement_UnknownTargetUsesDefaultScore(t *testing.T) {
	pop := []Candidate{
		{ID: "a", Score: 0.98},
		{ID: "b", Score: 4.0},
	}
	sel := New(0)

	picked := sel.Refinement(pop, "ghost", nil, 1)
	assert.Equal(t, []string{"a"}, picked)
}

func TestCountsWithDefaults(t *testing.T) {
	c := Counts{}.withDefaults()
	assert.Equal(t, DefaultCounts, c)

	c = Counts{Random: 1, Quartile: 2, Neighbor: 5}.withDefaults()
	assert.Equal(t, Counts{Random: 1, Quartile: 2, Neighbor: 5}, c)
}
