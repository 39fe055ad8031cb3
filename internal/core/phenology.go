package core

import (
	"sort"

	"habitat_service/internal/domain/model"
)

type PhenologyAnalyzer struct{}

// Analyze builds the monthly activity histogram and per-species seasons.
// Undated observations are skipped. PeakMonth is 0 when nothing is dated.
func (a *PhenologyAnalyzer) Analyze(observations []model.Observation) model.PhenologyResult {
	var result model.PhenologyResult

	type season struct {
		months   map[int]struct{}
		first    int
		last     int
		assigned bool
	}
	seasons := make(map[string]*season)

	for _, o := range observations {
		t, ok := ParseObservedDate(o.ObservedOn)
		if !ok {
			continue
		}
		month := int(t.Month())
		result.Monthly[month-1]++

		name := o.SpeciesName()
		if name == "" {
			continue
		}
		s, ok := seasons[name]
		if !ok {
			s = &season{months: make(map[int]struct{})}
			seasons[name] = s
		}
		s.months[month] = struct{}{}
		day := t.YearDay()
		if !s.assigned || day < s.first {
			s.first = day
		}
		if !s.assigned || day > s.last {
			s.last = day
		}
		s.assigned = true
	}

	peak := 0
	for m, n := range result.Monthly {
		if n > 0 && (peak == 0 || n > result.Monthly[peak-1]) {
			peak = m + 1
		}
	}
	result.PeakMonth = peak

	result.Species = make([]model.SpeciesSeason, 0, len(seasons))
	for name, s := range seasons {
		months := make([]int, 0, len(s.months))
		for m := range s.months {
			months = append(months, m)
		}
		sort.Ints(months)
		result.Species = append(result.Species, model.SpeciesSeason{
			Species:      name,
			ActiveMonths: months,
			SeasonLength: len(months),
			FirstDay:     s.first,
			LastDay:      s.last,
		})
	}
	sort.Slice(result.Species, func(i, j int) bool {
		if result.Species[i].SeasonLength != result.Species[j].SeasonLength {
			return result.Species[i].SeasonLength > result.Species[j].SeasonLength
		}
		return result.Species[i].Species < result.Species[j].Species
	})
	return result
}
