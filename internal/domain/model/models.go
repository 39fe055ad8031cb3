package model

import "math"

// Garden is a registered habitat garden. Read-only to the engine.
type Garden struct {
	ID           string   `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Lat          float64  `json:"lat" db:"lat"`
	Lng          float64  `json:"lng" db:"lng"`
	HabitatScore float64  `json:"habitat_score" db:"habitat_score"`
	Tier         string   `json:"tier" db:"tier"`
	Plants       []string `json:"plants,omitempty" db:"-"`
}

func (g Garden) HasLocation() bool {
	return ValidCoordinates(g.Lat, g.Lng)
}

// Observation is a single species sighting.
type Observation struct {
	ID             string  `json:"id" db:"id"`
	Species        string  `json:"species" db:"species"`
	ScientificName string  `json:"scientific_name,omitempty" db:"scientific_name"`
	CommonName     string  `json:"common_name,omitempty" db:"common_name"`
	IconicTaxon    string  `json:"iconic_taxon,omitempty" db:"iconic_taxon"`
	Lat            float64 `json:"lat" db:"lat"`
	Lng            float64 `json:"lng" db:"lng"`
	ObservedOn     string  `json:"observed_on,omitempty" db:"observed_on"`
	ObserverID     string  `json:"observer_id,omitempty" db:"observer_id"`
}

func (o Observation) HasLocation() bool {
	return ValidCoordinates(o.Lat, o.Lng)
}

// SpeciesName returns the best available display name for the observed species.
func (o Observation) SpeciesName() string {
	switch {
	case o.Species != "":
		return o.Species
	case o.CommonName != "":
		return o.CommonName
	default:
		return o.ScientificName
	}
}

// OpportunityZone is a priority planting location produced outside the engine.
type OpportunityZone struct {
	Lat    float64 `json:"lat" db:"lat"`
	Lng    float64 `json:"lng" db:"lng"`
	Name   string  `json:"name,omitempty" db:"name"`
	Source string  `json:"source,omitempty" db:"source"`
	Score  float64 `json:"score,omitempty" db:"score"`
}

func (z OpportunityZone) HasLocation() bool {
	return ValidCoordinates(z.Lat, z.Lng)
}

type CorridorStatus string

const (
	CorridorConnected CorridorStatus = "connected"
	CorridorWeak      CorridorStatus = "weak"
	CorridorBroken    CorridorStatus = "broken"
)

// CorridorSegment links two gardens.
type CorridorSegment struct {
	From           Garden         `json:"from"`
	To             Garden         `json:"to"`
	DistanceMeters float64        `json:"distance_meters"`
	Status         CorridorStatus `json:"status"`
	Species        []string       `json:"species,omitempty"`
}

// Bounds is a lat/lng bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat" toml:"min_lat"`
	MinLng float64 `json:"min_lng" toml:"min_lng"`
	MaxLat float64 `json:"max_lat" toml:"max_lat"`
	MaxLng float64 `json:"max_lng" toml:"max_lng"`
}

func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// ValidCoordinates reports whether a lat/lng pair can take part in spatial
// computations. (0,0) is what blank ingested records decode to and counts as missing.
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return false
	}
	return lat != 0 || lng != 0
}

// Dataset is the full set of inputs the engine works on.
type Dataset struct {
	Gardens          []Garden          `json:"gardens"`
	Observations     []Observation     `json:"observations"`
	OpportunityZones []OpportunityZone `json:"opportunity_zones"`
	CorridorSegments []CorridorSegment `json:"corridor_segments"`
}
