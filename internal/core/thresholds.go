package core

// Thresholds holds the heuristic constants of the scoring and gap rules.
// The defaults are unvalidated placeholders carried over from the dashboard
// and are meant to be overridden from configuration.
type Thresholds struct {
	// Foraging radius used for "nearby" garden and observation counts.
	ForagingRadius float64 `toml:"foraging_radius"`

	ZoneBandNear   float64 `toml:"zone_band_near"`
	ZoneBandMid    float64 `toml:"zone_band_mid"`
	ZoneBandFar    float64 `toml:"zone_band_far"`
	ZonePointsNear int     `toml:"zone_points_near"`
	ZonePointsMid  int     `toml:"zone_points_mid"`
	ZonePointsFar  int     `toml:"zone_points_far"`

	StrongNetworkGardens int `toml:"strong_network_gardens"`
	StrongNetworkPoints  int `toml:"strong_network_points"`
	SomeNetworkPoints    int `toml:"some_network_points"`

	GapFillerDistance float64 `toml:"gap_filler_distance"`
	GapFillerPoints   int     `toml:"gap_filler_points"`

	BiodiversityHigh       int `toml:"biodiversity_high"`
	BiodiversityMid        int `toml:"biodiversity_mid"`
	BiodiversityLow        int `toml:"biodiversity_low"`
	BiodiversityHighPoints int `toml:"biodiversity_high_points"`
	BiodiversityMidPoints  int `toml:"biodiversity_mid_points"`
	BiodiversityLowPoints  int `toml:"biodiversity_low_points"`

	PioneerDistance float64 `toml:"pioneer_distance"`
	PioneerPoints   int     `toml:"pioneer_points"`

	MaxGapZones int `toml:"max_gap_zones"`
	HubDegree   int `toml:"hub_degree"`
	// MaxGridCells caps the coverage grid search. Zero disables the cap.
	MaxGridCells int `toml:"max_grid_cells"`

	// Corridor status bands as multiples of the species flight range.
	WeakCorridorFactor   float64 `toml:"weak_corridor_factor"`
	BrokenCorridorFactor float64 `toml:"broken_corridor_factor"`

	// Cell size in degrees of the observation density grid.
	DensityCellDegrees float64 `toml:"density_cell_degrees"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ForagingRadius: 500,

		ZoneBandNear:   100,
		ZoneBandMid:    250,
		ZoneBandFar:    500,
		ZonePointsNear: 50,
		ZonePointsMid:  35,
		ZonePointsFar:  20,

		StrongNetworkGardens: 3,
		StrongNetworkPoints:  30,
		SomeNetworkPoints:    15,

		GapFillerDistance: 750,
		GapFillerPoints:   40,

		BiodiversityHigh:       50,
		BiodiversityMid:        20,
		BiodiversityLow:        5,
		BiodiversityHighPoints: 25,
		BiodiversityMidPoints:  15,
		BiodiversityLowPoints:  5,

		PioneerDistance: 1000,
		PioneerPoints:   20,

		MaxGapZones:  20,
		HubDegree:    3,
		MaxGridCells: 250000,

		WeakCorridorFactor:   1.5,
		BrokenCorridorFactor: 2,

		DensityCellDegrees: 0.01,
	}
}

// scoringReach is the largest radius any scoring rule looks at.
func (t Thresholds) scoringReach() float64 {
	return max(t.ForagingRadius, t.ZoneBandFar, t.GapFillerDistance, t.PioneerDistance)
}
