package core

import (
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"habitat_service/internal/domain/model"
)

var observedDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseObservedDate parses an ISO observation date. ok is false for blank or
// unparseable values; such records stay out of time-bucketed aggregates.
func ParseObservedDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range observedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// YearlyCounts counts dated observations per calendar year.
func YearlyCounts(observations []model.Observation) map[int]int {
	counts := make(map[int]int)
	for _, o := range observations {
		if t, ok := ParseObservedDate(o.ObservedOn); ok {
			counts[t.Year()]++
		}
	}
	return counts
}

type TemporalAnalyzer struct{}

// Analyze fits an OLS line of count against year.
func (a *TemporalAnalyzer) Analyze(yearly map[int]int) model.TrendResult {
	result := model.TrendResult{Direction: model.TrendStable, Years: len(yearly)}
	if len(yearly) < 2 {
		return result
	}

	years := make([]int, 0, len(yearly))
	for y := range yearly {
		years = append(years, y)
	}
	sort.Ints(years)

	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	for i, y := range years {
		xs[i] = float64(y)
		ys[i] = float64(yearly[y])
	}

	xMean, _ := stats.Mean(xs)
	yMean, _ := stats.Mean(ys)

	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - xMean
		sxy += dx * (ys[i] - yMean)
		sxx += dx * dx
	}
	if sxx == 0 {
		return result
	}

	result.Slope = sxy / sxx
	result.Mean = yMean
	result.StdDev, _ = stats.StandardDeviation(ys)
	if yMean != 0 {
		result.PercentChange = result.Slope / yMean * 100
	}
	if r, err := stats.Correlation(xs, ys); err == nil {
		result.RSquared = r * r
	}

	switch {
	case result.Slope > 0.5:
		result.Direction = model.TrendIncreasing
	case result.Slope < -0.5:
		result.Direction = model.TrendDecreasing
	}
	return result
}
