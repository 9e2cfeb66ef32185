// Package selection decides which existing candidates a target candidate
// should be judged against. Selection is pure: it operates on a population
// snapshot and an explicit seeded RNG, so the same snapshot and seed always
// produce the same opponent list.
package selection

import (
	"math"
	"math/rand"
	"sort"
)

// Candidate is the slice of population state the selector needs.
type Candidate struct {
	ID    string
	Score float64
	Games int
}

// Counts bounds the judge calls spent on one candidate. Random and Quartile
// apply to the exploration phase, Neighbor to the refinement phase.
type Counts struct {
	Random   int
	Quartile int
	Neighbor int
}

// DefaultCounts mirrors the evaluation pipeline's usual budget: three random
// opponents and four rank representatives to place a new candidate, then
// three score neighbors to sharpen its rank.
var DefaultCounts = Counts{Random: 3, Quartile: 4, Neighbor: 3}

func (c Counts) withDefaults() Counts {
	if c.Random <= 0 {
		c.Random = DefaultCounts.Random
	}
	if c.Quartile <= 0 {
		c.Quartile = DefaultCounts.Quartile
	}
	if c.Neighbor <= 0 {
		c.Neighbor = DefaultCounts.Neighbor
	}
	return c
}

// Selector picks opponents from a population snapshot.
type Selector struct {
	rng *rand.Rand
}

// New returns a selector whose random sub-selection is driven by the given
// seed. Callers wanting run-to-run variation seed from the clock; tests pass
// a fixed seed and assert exact opponent sets.
func New(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Exploration returns the phase-one opponent list for the target: uniformly
// random picks to keep the comparison graph connected, plus rank-quartile
// representatives to cheaply place the target's approximate rank. The list
// never contains the target, an opponent it already faced, or duplicates.
// With a small population it degrades to everyone available.
func (s *Selector) Exploration(population []Candidate, targetID string, faced map[string]bool, counts Counts) []string {
	counts = counts.withDefaults()
	others := eligible(population, targetID)

	picked := make([]string, 0, counts.Random+counts.Quartile)
	seen := map[string]bool{}

	for _, id := range s.randomPicks(others, counts.Random) {
		if !seen[id] {
			seen[id] = true
			picked = append(picked, id)
		}
	}
	for _, id := range quartilePicks(others, counts.Quartile) {
		if !seen[id] {
			seen[id] = true
			picked = append(picked, id)
		}
	}

	return filterFaced(picked, faced)
}

// Refinement returns the phase-two opponent list: the candidates whose
// current score is nearest the target's provisional score. Run after the
// exploration comparisons have been judged and scores recomputed.
func (s *Selector) Refinement(population []Candidate, targetID string, faced map[string]bool, count int) []string {
	if count <= 0 {
		count = DefaultCounts.Neighbor
	}

	var target *Candidate
	for i := range population {
		if population[i].ID == targetID {
			target = &population[i]
			break
		}
	}
	targetScore := 1.0
	if target != nil {
		targetScore = target.Score
	}

	others := eligible(population, targetID)
	sort.Slice(others, func(i, j int) bool {
		di := math.Abs(others[i].Score - targetScore)
		dj := math.Abs(others[j].Score - targetScore)
		if di != dj {
			return di < dj
		}
		return others[i].ID < others[j].ID
	})

	ids := make([]string, 0, count)
	for _, c := range others {
		if len(ids) == count {
			break
		}
		if faced[c.ID] {
			continue
		}
		ids = append(ids, c.ID)
	}
	return ids
}

// randomPicks draws up to n candidates uniformly without replacement.
// Candidates are sorted by id before the draw so a fixed seed yields a fixed
// pick regardless of snapshot ordering.
func (s *Selector) randomPicks(others []Candidate, n int) []string {
	ids := make([]string, len(others))
	for i, c := range others {
		ids[i] = c.ID
	}
	sort.Strings(ids)

	if n >= len(ids) {
		return ids
	}
	picked := make([]string, 0, n)
	for _, idx := range s.rng.Perm(len(ids))[:n] {
		picked = append(picked, ids[idx])
	}
	return picked
}

// quartilePicks returns up to n rank representatives: the top scorer and the
// candidates sitting at evenly spaced percentiles down to the 25th. With
// n=4 these are the 100th, 75th, 50th and 25th score percentiles.
func quartilePicks(others []Candidate, n int) []string {
	if len(others) == 0 || n <= 0 {
		return nil
	}

	ranked := make([]Candidate, len(others))
	copy(ranked, others)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})

	if n >= len(ranked) {
		ids := make([]string, len(ranked))
		for i, c := range ranked {
			ids[i] = c.ID
		}
		return ids
	}

	// Rank 0 is the 100th percentile; the last slot lands on the 25th.
	picked := make([]string, 0, n)
	seen := map[int]bool{}
	for t := 0; t < n; t++ {
		frac := 0.0
		if n > 1 {
			frac = 0.75 * float64(t) / float64(n-1)
		}
		idx := int(math.Round(frac * float64(len(ranked)-1)))
		if !seen[idx] {
			seen[idx] = true
			picked = append(picked, ranked[idx].ID)
		}
	}
	return picked
}

func eligible(population []Candidate, targetID string) []Candidate {
	others := make([]Candidate, 0, len(population))
	for _, c := range population {
		if c.ID != targetID {
			others = append(others, c)
		}
	}
	return others
}

func filterFaced(ids []string, faced map[string]bool) []string {
	out := ids[:0]
	for _, id := range ids {
		if !faced[id] {
			out = append(out, id)
		}
	}
	return out
}
