package model

import (
	"time"

	"github.com/google/uuid"
)

type GapPriority string

const (
	PriorityCritical GapPriority = "critical"
	PriorityHigh     GapPriority = "high"
	PriorityMedium   GapPriority = "medium"
	PriorityLow      GapPriority = "low"
)

// Score is the sort weight of a priority.
func (p GapPriority) Score() int {
	switch p {
	case PriorityCritical:
		return 100
	case PriorityHigh:
		return 75
	case PriorityMedium:
		return 50
	case PriorityLow:
		return 25
	default:
		return 0
	}
}

// GapZone is a location where new habitat would strengthen the network.
type GapZone struct {
	ID                   string      `json:"id" yaml:"id"`
	Lat                  float64     `json:"lat" yaml:"lat"`
	Lng                  float64     `json:"lng" yaml:"lng"`
	Priority             GapPriority `json:"priority" yaml:"priority"`
	Reason               string      `json:"reason" yaml:"reason"`
	PotentialConnections int         `json:"potential_connections" yaml:"potential_connections"`
	NearbyGardens        []string    `json:"nearby_gardens" yaml:"nearby_gardens"`
	RecommendedSize      string      `json:"recommended_size" yaml:"recommended_size"`
	EstimatedImpact      float64     `json:"estimated_impact" yaml:"estimated_impact"`
	TargetSpecies        []string    `json:"target_species" yaml:"target_species"`
}

// ProjectedImpact summarizes what filling the returned gap zones would achieve.
type ProjectedImpact struct {
	ConnectivityIncrease float64 `json:"connectivity_increase" yaml:"connectivity_increase"`
	NewConnections       int     `json:"new_connections" yaml:"new_connections"`
	IsolatedResolved     int     `json:"isolated_resolved" yaml:"isolated_resolved"`
}

type GapAnalysis struct {
	Zones  []GapZone       `json:"zones" yaml:"zones"`
	Impact ProjectedImpact `json:"impact" yaml:"impact"`
}

// BonusBreakdown lists the points each scoring rule contributed.
type BonusBreakdown struct {
	OpportunityZone int `json:"opportunity_zone" yaml:"opportunity_zone"`
	Network         int `json:"network" yaml:"network"`
	GapFiller       int `json:"gap_filler" yaml:"gap_filler"`
	Biodiversity    int `json:"biodiversity" yaml:"biodiversity"`
	Pioneer         int `json:"pioneer" yaml:"pioneer"`
}

func (b BonusBreakdown) Total() int {
	return b.OpportunityZone + b.Network + b.GapFiller + b.Biodiversity + b.Pioneer
}

// ConnectivityResult is the score of a candidate garden location.
// Score is always min(100, BonusPoints*2).
type ConnectivityResult struct {
	Score                  int            `json:"score" yaml:"score"`
	BonusPoints            int            `json:"bonus_points" yaml:"bonus_points"`
	Breakdown              BonusBreakdown `json:"breakdown" yaml:"breakdown"`
	NearestGardenDistance  *float64       `json:"nearest_garden_distance" yaml:"nearest_garden_distance"`
	NearestZoneDistance    *float64       `json:"nearest_zone_distance" yaml:"nearest_zone_distance"`
	GardensWithin500m      int            `json:"gardens_within_500m" yaml:"gardens_within_500m"`
	ObservationsWithin500m int            `json:"observations_within_500m" yaml:"observations_within_500m"`
	FillsGap               bool           `json:"fills_gap" yaml:"fills_gap"`
	Details                []string       `json:"details" yaml:"details"`
}

type NetworkStats struct {
	TotalGardens        int     `json:"total_gardens" yaml:"total_gardens"`
	ConnectedGardens    int     `json:"connected_gardens" yaml:"connected_gardens"`
	IsolatedGardens     int     `json:"isolated_gardens" yaml:"isolated_gardens"`
	ConnectivityPercent float64 `json:"connectivity_percent" yaml:"connectivity_percent"`
	TotalCorridors      int     `json:"total_corridors" yaml:"total_corridors"`
	WeakCorridors       int     `json:"weak_corridors" yaml:"weak_corridors"`
	BrokenCorridors     int     `json:"broken_corridors" yaml:"broken_corridors"`
	Hubs                int     `json:"hubs" yaml:"hubs"`
	AvgConnections      float64 `json:"avg_connections" yaml:"avg_connections"`
}

// NetworkAnalysis is the degree view over a garden network.
type NetworkAnalysis struct {
	Stats    NetworkStats   `json:"stats" yaml:"stats"`
	Isolated []Garden       `json:"isolated" yaml:"isolated"`
	Hubs     []Garden       `json:"hubs" yaml:"hubs"`
	Degree   map[string]int `json:"degree" yaml:"degree"`
}

type DiversityResult struct {
	Shannon  float64 `json:"shannon" yaml:"shannon"`
	Simpson  float64 `json:"simpson" yaml:"simpson"`
	Pielou   float64 `json:"pielou" yaml:"pielou"`
	Richness int     `json:"richness" yaml:"richness"`
	Total    int     `json:"total" yaml:"total"`
}

type SpatialPattern string

const (
	PatternClustered SpatialPattern = "clustered"
	PatternDispersed SpatialPattern = "dispersed"
	PatternRandom    SpatialPattern = "random"
)

// WeightedPoint is a located value, usually a grid cell count.
type WeightedPoint struct {
	Lat   float64 `json:"lat" yaml:"lat"`
	Lng   float64 `json:"lng" yaml:"lng"`
	Value float64 `json:"value" yaml:"value"`
}

type AutocorrelationResult struct {
	MoransI float64        `json:"morans_i" yaml:"morans_i"`
	Pattern SpatialPattern `json:"pattern" yaml:"pattern"`
	Points  int            `json:"points" yaml:"points"`
}

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

type TrendResult struct {
	Slope         float64        `json:"slope" yaml:"slope"`
	PercentChange float64        `json:"percent_change" yaml:"percent_change"`
	Direction     TrendDirection `json:"direction" yaml:"direction"`
	RSquared      float64        `json:"r_squared" yaml:"r_squared"`
	Mean          float64        `json:"mean" yaml:"mean"`
	StdDev        float64        `json:"std_dev" yaml:"std_dev"`
	Years         int            `json:"years" yaml:"years"`
}

// SpeciesSeason is the observable season of one species.
type SpeciesSeason struct {
	Species      string `json:"species" yaml:"species"`
	ActiveMonths []int  `json:"active_months" yaml:"active_months"`
	SeasonLength int    `json:"season_length" yaml:"season_length"`
	FirstDay     int    `json:"first_day" yaml:"first_day"`
	LastDay      int    `json:"last_day" yaml:"last_day"`
}

type PhenologyResult struct {
	Monthly   [12]int         `json:"monthly" yaml:"monthly"`
	PeakMonth int             `json:"peak_month" yaml:"peak_month"`
	Species   []SpeciesSeason `json:"species" yaml:"species"`
}

type AccumulationPoint struct {
	Observations  int `json:"observations" yaml:"observations"`
	UniqueSpecies int `json:"unique_species" yaml:"unique_species"`
}

type SpeciesCount struct {
	Species string `json:"species" yaml:"species"`
	Count   int    `json:"count" yaml:"count"`
}

// BiodiversitySummary bundles the statistics computed over one set of observations.
type BiodiversitySummary struct {
	TotalObservations int                   `json:"total_observations" yaml:"total_observations"`
	DatedObservations int                   `json:"dated_observations" yaml:"dated_observations"`
	UniqueObservers   int                   `json:"unique_observers" yaml:"unique_observers"`
	Diversity         DiversityResult       `json:"diversity" yaml:"diversity"`
	TaxonBreakdown    map[string]int        `json:"taxon_breakdown" yaml:"taxon_breakdown"`
	TopSpecies        []SpeciesCount        `json:"top_species" yaml:"top_species"`
	Autocorrelation   AutocorrelationResult `json:"autocorrelation" yaml:"autocorrelation"`
	Trend             TrendResult           `json:"trend" yaml:"trend"`
	Phenology         PhenologyResult       `json:"phenology" yaml:"phenology"`
	Accumulation      []AccumulationPoint   `json:"accumulation" yaml:"accumulation"`
}

// GapRun is one recorded gap analysis.
type GapRun struct {
	ID          uuid.UUID    `json:"id" yaml:"id"`
	Species     string       `json:"species" yaml:"species"`
	FlightRange float64      `json:"flight_range" yaml:"flight_range"`
	Bounds      Bounds       `json:"bounds" yaml:"bounds"`
	Stats       NetworkStats `json:"stats" yaml:"stats"`
	Analysis    GapAnalysis  `json:"analysis" yaml:"analysis"`
	CreatedAt   time.Time    `json:"created_at" yaml:"created_at"`
}
