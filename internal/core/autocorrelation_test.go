package core

import (
	"testing"

	"habitat_service/internal/domain/model"
)

func TestMoransIFewerThanThreePoints(t *testing.T) {
	points := []model.WeightedPoint{{Lat: 0, Lng: 0, Value: 1}, {Lat: 1, Lng: 1, Value: 5}}
	if got := MoransI(points); got != 0 {
		t.Errorf("MoransI = %v, want 0", got)
	}
	if got := MoransI(nil); got != 0 {
		t.Errorf("MoransI(nil) = %v, want 0", got)
	}
}

func TestMoransIZeroVariance(t *testing.T) {
	points := []model.WeightedPoint{{Lat: 0, Lng: 0, Value: 3}, {Lat: 0, Lng: 1, Value: 3}, {Lat: 1, Lng: 0, Value: 3}, {Lat: 1, Lng: 1, Value: 3}}
	if got := MoransI(points); got != 0 {
		t.Errorf("MoransI = %v, want 0", got)
	}
}

func TestMoransIClustered(t *testing.T) {
	points := []model.WeightedPoint{
		{Lat: 0, Lng: 0, Value: 10},
		{Lat: 0, Lng: 0.001, Value: 10},
		{Lat: 1, Lng: 1, Value: 0},
		{Lat: 1, Lng: 1.001, Value: 0},
	}
	r := Autocorrelation(points)
	if r.Pattern != model.PatternClustered {
		t.Errorf("pattern = %s (I=%v), want clustered", r.Pattern, r.MoransI)
	}
	if r.MoransI > 1.05 {
		t.Errorf("I = %v, expected within ~[-1,1]", r.MoransI)
	}
}

func TestMoransIDispersed(t *testing.T) {
	points := []model.WeightedPoint{
		{Lat: 0, Lng: 0, Value: 1},
		{Lat: 0, Lng: 1, Value: 0},
		{Lat: 0, Lng: 2, Value: 1},
		{Lat: 0, Lng: 3, Value: 0},
	}
	r := Autocorrelation(points)
	if r.Pattern != model.PatternDispersed {
		t.Errorf("pattern = %s (I=%v), want dispersed", r.Pattern, r.MoransI)
	}
	if r.MoransI < -1.05 {
		t.Errorf("I = %v, expected within ~[-1,1]", r.MoransI)
	}
}

func TestMoransICoincidentPoints(t *testing.T) {
	points := []model.WeightedPoint{{Lat: 1, Lng: 1, Value: 4}, {Lat: 1, Lng: 1, Value: 2}, {Lat: 2, Lng: 2, Value: 0}}
	got := MoransI(points)
	if got != got {
		t.Fatal("coincident points produced NaN")
	}
}

func TestClassifyPattern(t *testing.T) {
	tests := []struct {
		i    float64
		want model.SpatialPattern
	}{
		{0.31, model.PatternClustered},
		{0.3, model.PatternRandom},
		{0, model.PatternRandom},
		{-0.3, model.PatternRandom},
		{-0.31, model.PatternDispersed},
	}
	for _, tt := range tests {
		if got := ClassifyPattern(tt.i); got != tt.want {
			t.Errorf("ClassifyPattern(%v) = %s, want %s", tt.i, got, tt.want)
		}
	}
}

func TestDensityGrid(t *testing.T) {
	obs := []model.Observation{
		{Lat: 40.701, Lng: -111.905},
		{Lat: 40.702, Lng: -111.906},
		{Lat: 40.715, Lng: -111.905},
		{Lat: 0, Lng: 0},
	}
	points := DensityGrid(obs, 0.01)
	if len(points) != 2 {
		t.Fatalf("expected 2 cells, got %+v", points)
	}
	if points[0].Value != 2 || points[1].Value != 1 {
		t.Errorf("cell counts = %v, %v", points[0].Value, points[1].Value)
	}
	if points[0].Lat >= points[1].Lat {
		t.Errorf("cells should be in row order")
	}
	if DensityGrid(obs, 0) != nil {
		t.Error("zero cell size should yield nil")
	}
}
