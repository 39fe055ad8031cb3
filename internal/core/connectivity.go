package core

import (
	"fmt"

	"habitat_service/internal/domain/model"
)

// ConnectivityScorer scores a candidate garden location against the existing network.
type ConnectivityScorer struct {
	Thresholds Thresholds
}

func NewConnectivityScorer(t Thresholds) *ConnectivityScorer {
	return &ConnectivityScorer{Thresholds: t}
}

func (s *ConnectivityScorer) Score(
	lat, lng float64,
	gardens []model.Garden,
	zones []model.OpportunityZone,
	observations []model.Observation,
) model.ConnectivityResult {
	t := s.Thresholds
	result := model.ConnectivityResult{
		NearestGardenDistance:  nearestGarden(lat, lng, gardens),
		NearestZoneDistance:    nearestZone(lat, lng, zones),
		GardensWithin500m:      len(gardensWithin(lat, lng, t.ForagingRadius, gardens, "")),
		ObservationsWithin500m: countObservationsWithin(lat, lng, t.ForagingRadius, observations),
		Details:                []string{},
	}
	b := &result.Breakdown

	if d := result.NearestZoneDistance; d != nil {
		switch {
		case *d <= t.ZoneBandNear:
			b.OpportunityZone = t.ZonePointsNear
			result.Details = append(result.Details, fmt.Sprintf("Within %.0fm of an opportunity zone (+%d)", t.ZoneBandNear, t.ZonePointsNear))
		case *d <= t.ZoneBandMid:
			b.OpportunityZone = t.ZonePointsMid
			result.Details = append(result.Details, fmt.Sprintf("Within %.0fm of an opportunity zone (+%d)", t.ZoneBandMid, t.ZonePointsMid))
		case *d <= t.ZoneBandFar:
			b.OpportunityZone = t.ZonePointsFar
			result.Details = append(result.Details, fmt.Sprintf("Within %.0fm of an opportunity zone (+%d)", t.ZoneBandFar, t.ZonePointsFar))
		}
	}

	switch n := result.GardensWithin500m; {
	case n >= t.StrongNetworkGardens:
		b.Network = t.StrongNetworkPoints
		result.Details = append(result.Details, fmt.Sprintf("Strengthens a network of %d nearby gardens (+%d)", n, t.StrongNetworkPoints))
	case n >= 1:
		b.Network = t.SomeNetworkPoints
		result.Details = append(result.Details, fmt.Sprintf("Connects to %d nearby garden(s) (+%d)", n, t.SomeNetworkPoints))
	}

	farFromGardens := result.NearestGardenDistance == nil || *result.NearestGardenDistance > t.GapFillerDistance
	nearZone := result.NearestZoneDistance != nil && *result.NearestZoneDistance <= t.ZoneBandFar
	if farFromGardens && nearZone {
		result.FillsGap = true
		b.GapFiller = t.GapFillerPoints
		result.Details = append(result.Details, fmt.Sprintf("Fills a gap in the corridor network (+%d)", t.GapFillerPoints))
	}

	switch n := result.ObservationsWithin500m; {
	case n >= t.BiodiversityHigh:
		b.Biodiversity = t.BiodiversityHighPoints
	case n >= t.BiodiversityMid:
		b.Biodiversity = t.BiodiversityMidPoints
	case n >= t.BiodiversityLow:
		b.Biodiversity = t.BiodiversityLowPoints
	}
	if b.Biodiversity > 0 {
		result.Details = append(result.Details, fmt.Sprintf("%d pollinator observations nearby (+%d)", result.ObservationsWithin500m, b.Biodiversity))
	}

	// Pioneer and gap filler may both fire; they stay additive.
	if result.NearestGardenDistance == nil || *result.NearestGardenDistance > t.PioneerDistance {
		b.Pioneer = t.PioneerPoints
		result.Details = append(result.Details, fmt.Sprintf("Pioneer garden in an unserved area (+%d)", t.PioneerPoints))
	}

	result.BonusPoints = b.Total()
	result.Score = min(100, result.BonusPoints*2)
	return result
}
