package core

import (
	"math"
	"sort"

	"habitat_service/internal/domain/model"
)

// moranEpsilon keeps inverse-distance weights finite at coincident points.
const moranEpsilon = 0.0001

// MoransI computes global Moran's I with inverse planar-distance weights
// (in degrees). Returns 0 for fewer than 3 points or zero variance.
func MoransI(points []model.WeightedPoint) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}

	var mean float64
	for _, p := range points {
		mean += p.Value
	}
	mean /= float64(n)

	var denom float64
	for _, p := range points {
		d := p.Value - mean
		denom += d * d
	}
	if denom == 0 {
		return 0
	}

	var num, w float64
	for i := 0; i < n; i++ {
		di := points[i].Value - mean
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dist := math.Hypot(points[i].Lat-points[j].Lat, points[i].Lng-points[j].Lng)
			wij := 1 / (dist + moranEpsilon)
			w += wij
			num += wij * di * (points[j].Value - mean)
		}
	}
	if w == 0 {
		return 0
	}
	return (float64(n) / w) * num / denom
}

func ClassifyPattern(i float64) model.SpatialPattern {
	switch {
	case i > 0.3:
		return model.PatternClustered
	case i < -0.3:
		return model.PatternDispersed
	default:
		return model.PatternRandom
	}
}

func Autocorrelation(points []model.WeightedPoint) model.AutocorrelationResult {
	i := MoransI(points)
	return model.AutocorrelationResult{
		MoransI: i,
		Pattern: ClassifyPattern(i),
		Points:  len(points),
	}
}

// DensityGrid buckets located observations into square cells of cellDegrees
// and returns one point per non-empty cell at the cell center, in row-major order.
func DensityGrid(observations []model.Observation, cellDegrees float64) []model.WeightedPoint {
	if cellDegrees <= 0 {
		return nil
	}
	type cell struct{ row, col int }
	counts := make(map[cell]int)
	for _, o := range observations {
		if !o.HasLocation() {
			continue
		}
		c := cell{
			row: int(math.Floor(o.Lat / cellDegrees)),
			col: int(math.Floor(o.Lng / cellDegrees)),
		}
		counts[c]++
	}

	cells := make([]cell, 0, len(counts))
	for c := range counts {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].row != cells[j].row {
			return cells[i].row < cells[j].row
		}
		return cells[i].col < cells[j].col
	})

	points := make([]model.WeightedPoint, len(cells))
	for i, c := range cells {
		points[i] = model.WeightedPoint{
			Lat:   (float64(c.row) + 0.5) * cellDegrees,
			Lng:   (float64(c.col) + 0.5) * cellDegrees,
			Value: float64(counts[c]),
		}
	}
	return points
}
