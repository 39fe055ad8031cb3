package core

import "habitat_service/internal/domain/model"

// NetworkAnalyzer builds a degree view over gardens and corridor segments.
type NetworkAnalyzer struct {
	HubDegree int
}

func (a *NetworkAnalyzer) Analyze(gardens []model.Garden, segments []model.CorridorSegment) model.NetworkAnalysis {
	hubDegree := a.HubDegree
	if hubDegree <= 0 {
		hubDegree = 3
	}

	degree := make(map[string]int, len(gardens))
	for _, g := range gardens {
		degree[g.ID] = 0
	}

	stats := model.NetworkStats{
		TotalGardens:   len(gardens),
		TotalCorridors: len(segments),
	}
	for _, s := range segments {
		degree[s.From.ID]++
		degree[s.To.ID]++
		switch s.Status {
		case model.CorridorWeak:
			stats.WeakCorridors++
		case model.CorridorBroken:
			stats.BrokenCorridors++
		}
	}

	analysis := model.NetworkAnalysis{Degree: degree}
	totalDegree := 0
	for _, g := range gardens {
		d := degree[g.ID]
		totalDegree += d
		switch {
		case d == 0:
			analysis.Isolated = append(analysis.Isolated, g)
		case d >= hubDegree:
			analysis.Hubs = append(analysis.Hubs, g)
		}
		if d > 0 {
			stats.ConnectedGardens++
		}
	}
	stats.IsolatedGardens = len(analysis.Isolated)
	stats.Hubs = len(analysis.Hubs)

	if stats.TotalGardens > 0 {
		stats.ConnectivityPercent = round1(float64(stats.ConnectedGardens) / float64(stats.TotalGardens) * 100)
		stats.AvgConnections = round1(float64(totalDegree) / float64(stats.TotalGardens))
	}

	analysis.Stats = stats
	return analysis
}
