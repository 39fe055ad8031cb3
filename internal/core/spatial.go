package core

import (
	"math"

	"habitat_service/internal/domain/model"
)

const earthRadiusMeters = 6371000

// metersPerDegree is the flat-earth conversion used to size search grids.
const metersPerDegree = 111000

// DistanceMeters returns the haversine great-circle distance between two points.
// NaN inputs propagate as NaN.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push a just past 1 for near-antipodal points.
	a = math.Max(0, math.Min(1, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// Midpoint is the coordinate mean of two points. Good enough at corridor scale.
func Midpoint(lat1, lon1, lat2, lon2 float64) (float64, float64) {
	return (lat1 + lat2) / 2, (lon1 + lon2) / 2
}

func nearestGarden(lat, lng float64, gardens []model.Garden) *float64 {
	var best *float64
	for _, g := range gardens {
		if !g.HasLocation() {
			continue
		}
		d := DistanceMeters(lat, lng, g.Lat, g.Lng)
		if best == nil || d < *best {
			best = &d
		}
	}
	return best
}

func nearestZone(lat, lng float64, zones []model.OpportunityZone) *float64 {
	var best *float64
	for _, z := range zones {
		if !z.HasLocation() {
			continue
		}
		d := DistanceMeters(lat, lng, z.Lat, z.Lng)
		if best == nil || d < *best {
			best = &d
		}
	}
	return best
}

// gardensWithin returns the gardens with 0 < distance <= radius, excluding other.
func gardensWithin(lat, lng, radius float64, gardens []model.Garden, excludeID string) []model.Garden {
	var out []model.Garden
	for _, g := range gardens {
		if !g.HasLocation() || (excludeID != "" && g.ID == excludeID) {
			continue
		}
		d := DistanceMeters(lat, lng, g.Lat, g.Lng)
		if d > 0 && d <= radius {
			out = append(out, g)
		}
	}
	return out
}

func countGardensWithin(lat, lng, radius float64, gardens []model.Garden) int {
	n := 0
	for _, g := range gardens {
		if !g.HasLocation() {
			continue
		}
		if DistanceMeters(lat, lng, g.Lat, g.Lng) <= radius {
			n++
		}
	}
	return n
}

func countObservationsWithin(lat, lng, radius float64, observations []model.Observation) int {
	n := 0
	for _, o := range observations {
		if !o.HasLocation() {
			continue
		}
		if DistanceMeters(lat, lng, o.Lat, o.Lng) <= radius {
			n++
		}
	}
	return n
}

// BoundsOf returns the bounding box of all located gardens. ok is false when
// no garden has coordinates.
func BoundsOf(gardens []model.Garden) (model.Bounds, bool) {
	var b model.Bounds
	found := false
	for _, g := range gardens {
		if !g.HasLocation() {
			continue
		}
		if !found {
			b = model.Bounds{MinLat: g.Lat, MinLng: g.Lng, MaxLat: g.Lat, MaxLng: g.Lng}
			found = true
			continue
		}
		b.MinLat = math.Min(b.MinLat, g.Lat)
		b.MinLng = math.Min(b.MinLng, g.Lng)
		b.MaxLat = math.Max(b.MaxLat, g.Lat)
		b.MaxLng = math.Max(b.MaxLng, g.Lng)
	}
	return b, found
}

// ExpandAround grows b so it also covers every point within meters of
// (lat, lng). A zero b stays zero since it already means no filter.
func ExpandAround(b model.Bounds, lat, lng, meters float64) model.Bounds {
	if b.IsZero() {
		return b
	}
	dLat := meters / metersPerDegree
	dLng := 180.0
	if c := math.Cos(lat * math.Pi / 180); c > 1e-6 {
		dLng = math.Min(180, meters/(metersPerDegree*c))
	}
	return model.Bounds{
		MinLat: math.Max(-90, math.Min(b.MinLat, lat-dLat)),
		MinLng: math.Max(-180, math.Min(b.MinLng, lng-dLng)),
		MaxLat: math.Min(90, math.Max(b.MaxLat, lat+dLat)),
		MaxLng: math.Min(180, math.Max(b.MaxLng, lng+dLng)),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
