package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"habitat_service/internal/domain/model"
)

// ErrGridTooLarge is returned when the coverage grid for a flight range and
// bounding box would exceed Thresholds.MaxGridCells.
var ErrGridTooLarge = errors.New("coverage grid too large")

// Pollinator is the species a gap analysis is run for.
type Pollinator struct {
	Name        string  `toml:"name" json:"name" yaml:"name"`
	FlightRange float64 `toml:"flight_range" json:"flight_range" yaml:"flight_range"`
}

type GapRequest struct {
	Gardens    []model.Garden
	Segments   []model.CorridorSegment
	Network    model.NetworkAnalysis
	Pollinator Pollinator
	// Bounds limits the coverage grid. Zero means the gardens' bounding box.
	Bounds model.Bounds
}

// GapZoneGenerator proposes locations where new habitat would close gaps in
// the corridor network.
type GapZoneGenerator struct {
	Thresholds Thresholds
	// Workers caps the goroutines used by the coverage grid search.
	Workers int
}

func (g *GapZoneGenerator) Generate(ctx context.Context, req GapRequest) (model.GapAnalysis, error) {
	var zones []model.GapZone
	zones = append(zones, g.isolatedGaps(req)...)
	zones = append(zones, g.segmentGaps(req)...)

	coverage, err := g.coverageGaps(ctx, req)
	if err != nil {
		return model.GapAnalysis{}, err
	}
	zones = append(zones, coverage...)

	sortGapZones(zones)
	if limit := g.Thresholds.MaxGapZones; limit > 0 && len(zones) > limit {
		zones = zones[:limit]
	}

	return model.GapAnalysis{
		Zones:  zones,
		Impact: projectImpact(zones, req.Network.Stats),
	}, nil
}

func (g *GapZoneGenerator) isolatedGaps(req GapRequest) []model.GapZone {
	radius := 3 * req.Pollinator.FlightRange
	var zones []model.GapZone
	for _, iso := range req.Network.Isolated {
		if !iso.HasLocation() {
			continue
		}
		nearby := gardensWithin(iso.Lat, iso.Lng, radius, req.Gardens, iso.ID)
		if len(nearby) == 0 {
			continue
		}
		sortByDistance(iso.Lat, iso.Lng, nearby)
		nearest := nearby[0]
		lat, lng := Midpoint(iso.Lat, iso.Lng, nearest.Lat, nearest.Lng)
		dist := DistanceMeters(iso.Lat, iso.Lng, nearest.Lat, nearest.Lng)

		names := make([]string, 0, len(nearby)+1)
		names = append(names, iso.Name)
		for _, n := range nearby {
			names = append(names, n.Name)
		}
		zones = append(zones, model.GapZone{
			ID:                   "gap-isolated-" + iso.ID,
			Lat:                  lat,
			Lng:                  lng,
			Priority:             model.PriorityCritical,
			Reason:               fmt.Sprintf("%s is isolated; %s is %.0fm away", iso.Name, nearest.Name, dist),
			PotentialConnections: len(nearby),
			NearbyGardens:        names,
			RecommendedSize:      recommendedSize(model.PriorityCritical),
			EstimatedImpact:      85,
			TargetSpecies:        targetSpecies(req.Pollinator, nil),
		})
	}
	return zones
}

func (g *GapZoneGenerator) segmentGaps(req GapRequest) []model.GapZone {
	var zones []model.GapZone
	for i, s := range req.Segments {
		if !s.From.HasLocation() || !s.To.HasLocation() {
			continue
		}
		var (
			priority model.GapPriority
			impact   float64
			kind     string
		)
		switch s.Status {
		case model.CorridorWeak:
			priority, impact, kind = model.PriorityHigh, 65, "weak"
		case model.CorridorBroken:
			priority, impact, kind = model.PriorityCritical, 90, "broken"
		default:
			continue
		}
		lat, lng := Midpoint(s.From.Lat, s.From.Lng, s.To.Lat, s.To.Lng)
		zones = append(zones, model.GapZone{
			ID:                   fmt.Sprintf("gap-%s-%d", kind, i),
			Lat:                  lat,
			Lng:                  lng,
			Priority:             priority,
			Reason:               fmt.Sprintf("%s corridor between %s and %s (%.0fm)", kind, s.From.Name, s.To.Name, s.DistanceMeters),
			PotentialConnections: 2,
			NearbyGardens:        []string{s.From.Name, s.To.Name},
			RecommendedSize:      recommendedSize(priority),
			EstimatedImpact:      impact,
			TargetSpecies:        targetSpecies(req.Pollinator, s.Species),
		})
	}
	return zones
}

// coverageGaps scans a grid over the bounds for cells that no garden serves
// but that at least two gardens could reach. Rows are scanned concurrently.
func (g *GapZoneGenerator) coverageGaps(ctx context.Context, req GapRequest) ([]model.GapZone, error) {
	flightRange := req.Pollinator.FlightRange
	if flightRange <= 0 {
		return nil, nil
	}
	bounds := req.Bounds
	if bounds.IsZero() {
		var ok bool
		if bounds, ok = BoundsOf(req.Gardens); !ok {
			return nil, nil
		}
	}

	step := 2 * (flightRange / metersPerDegree)
	rowsF := math.Max(1, math.Ceil((bounds.MaxLat-bounds.MinLat)/step))
	colsF := math.Max(1, math.Ceil((bounds.MaxLng-bounds.MinLng)/step))
	if limit := g.Thresholds.MaxGridCells; limit > 0 && rowsF*colsF > float64(limit) {
		return nil, fmt.Errorf("%w: %.0f cells for a %.0fm flight range (limit %d)",
			ErrGridTooLarge, rowsF*colsF, flightRange, limit)
	}
	rows, cols := int(rowsF), int(colsF)

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	found := make([][]model.GapZone, rows)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for r := 0; r < rows; r++ {
		r := r
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lat := bounds.MinLat + (float64(r)+0.5)*step
			for c := 0; c < cols; c++ {
				lng := bounds.MinLng + (float64(c)+0.5)*step
				if zone, ok := coverageCell(lat, lng, r, c, req); ok {
					found[r] = append(found[r], zone)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("coverage grid search: %w", err)
	}

	var zones []model.GapZone
	for _, row := range found {
		zones = append(zones, row...)
	}
	return zones, nil
}

func coverageCell(lat, lng float64, row, col int, req GapRequest) (model.GapZone, bool) {
	flightRange := req.Pollinator.FlightRange
	if countGardensWithin(lat, lng, flightRange, req.Gardens) > 0 {
		return model.GapZone{}, false
	}
	nearby := gardensWithin(lat, lng, 2*flightRange, req.Gardens, "")
	if len(nearby) < 2 {
		return model.GapZone{}, false
	}
	sortByDistance(lat, lng, nearby)

	priority := model.PriorityMedium
	if len(nearby) >= 3 {
		priority = model.PriorityHigh
	}
	names := make([]string, len(nearby))
	for i, n := range nearby {
		names[i] = n.Name
	}
	return model.GapZone{
		ID:                   fmt.Sprintf("gap-coverage-%d-%d", row, col),
		Lat:                  lat,
		Lng:                  lng,
		Priority:             priority,
		Reason:               fmt.Sprintf("No habitat within %.0fm but %d gardens within reach", flightRange, len(nearby)),
		PotentialConnections: len(nearby),
		NearbyGardens:        names,
		RecommendedSize:      recommendedSize(priority),
		EstimatedImpact:      math.Min(100, 40+10*float64(len(nearby))),
		TargetSpecies:        targetSpecies(req.Pollinator, nil),
	}, true
}

// sortGapZones orders by priority score, then estimated impact, both descending.
func sortGapZones(zones []model.GapZone) {
	sort.SliceStable(zones, func(i, j int) bool {
		pi, pj := zones[i].Priority.Score(), zones[j].Priority.Score()
		if pi != pj {
			return pi > pj
		}
		return zones[i].EstimatedImpact > zones[j].EstimatedImpact
	})
}

func projectImpact(zones []model.GapZone, stats model.NetworkStats) model.ProjectedImpact {
	var critical, high, connections int
	for _, z := range zones {
		switch z.Priority {
		case model.PriorityCritical:
			critical++
		case model.PriorityHigh:
			high++
		}
		connections += z.PotentialConnections
	}
	return model.ProjectedImpact{
		ConnectivityIncrease: round1(math.Min(100, stats.ConnectivityPercent+8*float64(critical)+4*float64(high))),
		NewConnections:       connections,
		IsolatedResolved:     stats.IsolatedGardens,
	}
}

func sortByDistance(lat, lng float64, gardens []model.Garden) {
	sort.SliceStable(gardens, func(i, j int) bool {
		return DistanceMeters(lat, lng, gardens[i].Lat, gardens[i].Lng) <
			DistanceMeters(lat, lng, gardens[j].Lat, gardens[j].Lng)
	})
}

func recommendedSize(p model.GapPriority) string {
	switch p {
	case model.PriorityCritical:
		return "large"
	case model.PriorityHigh:
		return "medium"
	default:
		return "small"
	}
}

func targetSpecies(p Pollinator, extra []string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	add(p.Name)
	for _, s := range extra {
		add(s)
	}
	return out
}
