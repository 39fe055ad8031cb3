package core

import (
	"math"
	"sort"

	"habitat_service/internal/domain/model"
)

// Shannon returns H' = -Σ p_i ln p_i over the positive counts; 0 for an empty vector.
func Shannon(counts []int) float64 {
	total := sumCounts(counts)
	if total == 0 {
		return 0
	}
	n := float64(total)
	var h float64
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log(p)
	}
	return h
}

// Simpson returns D = 1 - Σ n(n-1) / N(N-1); 0 when N <= 1.
func Simpson(counts []int) float64 {
	total := sumCounts(counts)
	if total <= 1 {
		return 0
	}
	var s float64
	for _, c := range counts {
		if c > 1 {
			s += float64(c) * float64(c-1)
		}
	}
	return 1 - s/(float64(total)*float64(total-1))
}

// Pielou returns J' = H' / ln S, clamped to [0, 1]; 1 when S <= 1 or when
// every present species has the same count.
func Pielou(counts []int) float64 {
	s := richness(counts)
	if s <= 1 || evenCounts(counts) {
		return 1
	}
	return math.Min(1, math.Max(0, Shannon(counts)/math.Log(float64(s))))
}

// Diversity computes all three indices for one species-count vector.
func Diversity(counts []int) model.DiversityResult {
	return model.DiversityResult{
		Shannon:  Shannon(counts),
		Simpson:  Simpson(counts),
		Pielou:   Pielou(counts),
		Richness: richness(counts),
		Total:    sumCounts(counts),
	}
}

// SpeciesCounts tallies observations per species, sorted by count then name.
func SpeciesCounts(observations []model.Observation) []model.SpeciesCount {
	tally := make(map[string]int)
	for _, o := range observations {
		name := o.SpeciesName()
		if name == "" {
			continue
		}
		tally[name]++
	}
	out := make([]model.SpeciesCount, 0, len(tally))
	for name, n := range tally {
		out = append(out, model.SpeciesCount{Species: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Species < out[j].Species
	})
	return out
}

func countsOf(species []model.SpeciesCount) []int {
	counts := make([]int, len(species))
	for i, s := range species {
		counts[i] = s.Count
	}
	return counts
}

func evenCounts(counts []int) bool {
	first := 0
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		if first == 0 {
			first = c
		} else if c != first {
			return false
		}
	}
	return true
}

func sumCounts(counts []int) int {
	total := 0
	for _, c := range counts {
		if c > 0 {
			total += c
		}
	}
	return total
}

func richness(counts []int) int {
	s := 0
	for _, c := range counts {
		if c > 0 {
			s++
		}
	}
	return s
}
