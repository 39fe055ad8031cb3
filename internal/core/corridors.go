package core

import "habitat_service/internal/domain/model"

// CorridorBuilder derives corridor segments between gardens for one
// pollinator flight range. Pairs further apart than BrokenCorridorFactor
// flight ranges get no segment at all.
type CorridorBuilder struct {
	Thresholds Thresholds
}

func (b *CorridorBuilder) Build(gardens []model.Garden, species string, flightRange float64) []model.CorridorSegment {
	if flightRange <= 0 {
		return nil
	}
	weak := flightRange * b.Thresholds.WeakCorridorFactor
	broken := flightRange * b.Thresholds.BrokenCorridorFactor

	var segments []model.CorridorSegment
	for i := 0; i < len(gardens); i++ {
		if !gardens[i].HasLocation() {
			continue
		}
		for j := i + 1; j < len(gardens); j++ {
			if !gardens[j].HasLocation() {
				continue
			}
			d := DistanceMeters(gardens[i].Lat, gardens[i].Lng, gardens[j].Lat, gardens[j].Lng)
			var status model.CorridorStatus
			switch {
			case d <= flightRange:
				status = model.CorridorConnected
			case d <= weak:
				status = model.CorridorWeak
			case d <= broken:
				status = model.CorridorBroken
			default:
				continue
			}
			seg := model.CorridorSegment{
				From:           gardens[i],
				To:             gardens[j],
				DistanceMeters: d,
				Status:         status,
			}
			if species != "" {
				seg.Species = []string{species}
			}
			segments = append(segments, seg)
		}
	}
	return segments
}
