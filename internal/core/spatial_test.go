package core

import (
	"math"
	"testing"

	"habitat_service/internal/domain/model"
)

func TestDistanceMetersIdentityAndSymmetry(t *testing.T) {
	points := [][2]float64{
		{40.70, -111.90},
		{40.7005, -111.90},
		{41.00, -112.00},
		{-33.86, 151.21},
		{0, 179.9},
	}
	for _, p := range points {
		if d := DistanceMeters(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("distance from %v to itself = %v, want 0", p, d)
		}
		for _, q := range points {
			ab := DistanceMeters(p[0], p[1], q[0], q[1])
			ba := DistanceMeters(q[0], q[1], p[0], p[1])
			if math.Abs(ab-ba) > 1e-6 {
				t.Errorf("asymmetric distance %v -> %v: %v vs %v", p, q, ab, ba)
			}
		}
	}
}

func TestDistanceMetersKnownValue(t *testing.T) {
	d := DistanceMeters(40.70, -111.90, 40.7005, -111.90)
	if d < 55 || d > 57 {
		t.Errorf("expected ~56m, got %v", d)
	}
}

func TestDistanceMetersNaNPropagates(t *testing.T) {
	if d := DistanceMeters(math.NaN(), 0, 1, 1); !math.IsNaN(d) {
		t.Errorf("expected NaN, got %v", d)
	}
}

func TestDistanceMetersNearAntipodalIsFinite(t *testing.T) {
	halfCircumference := math.Pi * earthRadiusMeters
	for lat := -89.0; lat <= 89.0; lat += 0.1 {
		for _, lon := range []float64{-179, -90, 0, 45} {
			d := DistanceMeters(lat, lon, -lat, lon+180)
			if math.IsNaN(d) {
				t.Fatalf("(%v,%v) to (%v,%v): NaN", lat, lon, -lat, lon+180)
			}
			if math.Abs(d-halfCircumference) > 1 {
				t.Errorf("(%v,%v) antipode distance = %v, want ~%v", lat, lon, d, halfCircumference)
			}
		}
	}
	if d := DistanceMeters(-88.3, -179, 88.3, 1); math.IsNaN(d) {
		t.Error("(-88.3,-179)-(88.3,1) returned NaN")
	}
}

func TestBoundsOfSkipsMissingCoordinates(t *testing.T) {
	gardens := []model.Garden{
		{ID: "a", Lat: 40.1, Lng: -111.5},
		{ID: "blank"},
		{ID: "b", Lat: 40.3, Lng: -111.9},
		{ID: "nan", Lat: math.NaN(), Lng: -100},
	}
	b, ok := BoundsOf(gardens)
	if !ok {
		t.Fatal("expected bounds")
	}
	want := model.Bounds{MinLat: 40.1, MinLng: -111.9, MaxLat: 40.3, MaxLng: -111.5}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}

	if _, ok := BoundsOf([]model.Garden{{ID: "blank"}}); ok {
		t.Error("expected no bounds without located gardens")
	}
}
