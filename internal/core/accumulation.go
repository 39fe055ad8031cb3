package core

import "habitat_service/internal/domain/model"

const accumulationSamples = 50

// AccumulationCurve walks observations in the given order and samples the
// cumulative unique-species count every ceil(N/50) records and at the last one.
// The curve depends on input order; shuffle first for a rarefaction-style curve.
func AccumulationCurve(observations []model.Observation) []model.AccumulationPoint {
	n := len(observations)
	if n == 0 {
		return nil
	}
	step := (n + accumulationSamples - 1) / accumulationSamples

	seen := make(map[string]struct{})
	curve := make([]model.AccumulationPoint, 0, accumulationSamples+1)
	for i, o := range observations {
		if name := o.SpeciesName(); name != "" {
			seen[name] = struct{}{}
		}
		if (i+1)%step == 0 || i == n-1 {
			curve = append(curve, model.AccumulationPoint{
				Observations:  i + 1,
				UniqueSpecies: len(seen),
			})
		}
	}
	return curve
}
