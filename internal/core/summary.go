package core

import "habitat_service/internal/domain/model"

const topSpeciesLimit = 10

// BiodiversityAnalyzer runs every observation statistic over one snapshot.
// The individual statistics do not depend on each other.
type BiodiversityAnalyzer struct {
	Thresholds Thresholds
}

func (a *BiodiversityAnalyzer) Summarize(observations []model.Observation) model.BiodiversitySummary {
	species := SpeciesCounts(observations)
	summary := model.BiodiversitySummary{
		TotalObservations: len(observations),
		Diversity:         Diversity(countsOf(species)),
		TaxonBreakdown:    make(map[string]int),
	}

	observers := make(map[string]struct{})
	for _, o := range observations {
		if _, ok := ParseObservedDate(o.ObservedOn); ok {
			summary.DatedObservations++
		}
		if o.ObserverID != "" {
			observers[o.ObserverID] = struct{}{}
		}
		taxon := o.IconicTaxon
		if taxon == "" {
			taxon = "unknown"
		}
		summary.TaxonBreakdown[taxon]++
	}
	summary.UniqueObservers = len(observers)

	if len(species) > topSpeciesLimit {
		species = species[:topSpeciesLimit]
	}
	summary.TopSpecies = species

	temporal := TemporalAnalyzer{}
	phenology := PhenologyAnalyzer{}

	summary.Autocorrelation = Autocorrelation(DensityGrid(observations, a.Thresholds.DensityCellDegrees))
	summary.Trend = temporal.Analyze(YearlyCounts(observations))
	summary.Phenology = phenology.Analyze(observations)
	summary.Accumulation = AccumulationCurve(observations)
	return summary
}
