package core

import (
	"testing"

	"habitat_service/internal/domain/model"
)

func TestCorridorBuilderStatuses(t *testing.T) {
	lat, lng := 40.70, -111.90
	gardens := []model.Garden{
		{ID: "origin", Lat: lat, Lng: lng},
		{ID: "near", Lat: metersNorth(lat, 800), Lng: lng},
		{ID: "mid", Lat: metersNorth(lat, -1300), Lng: lng},
		{ID: "blank"},
	}
	b := CorridorBuilder{Thresholds: DefaultThresholds()}
	segments := b.Build(gardens, "Bumble Bee", 1000)

	status := make(map[[2]string]model.CorridorStatus)
	for _, s := range segments {
		status[[2]string{s.From.ID, s.To.ID}] = s.Status
		if len(s.Species) != 1 || s.Species[0] != "Bumble Bee" {
			t.Errorf("segment species = %v", s.Species)
		}
		if s.From.ID == "blank" || s.To.ID == "blank" {
			t.Errorf("garden without coordinates got a segment")
		}
	}

	if got := status[[2]string{"origin", "near"}]; got != model.CorridorConnected {
		t.Errorf("origin-near = %q, want connected", got)
	}
	if got := status[[2]string{"origin", "mid"}]; got != model.CorridorWeak {
		t.Errorf("origin-mid = %q, want weak", got)
	}
	// near to mid is ~2100m, beyond 2x the flight range.
	if _, ok := status[[2]string{"near", "mid"}]; ok {
		t.Errorf("near-mid should have no segment")
	}
}

func TestCorridorBuilderBroken(t *testing.T) {
	lat, lng := 40.70, -111.90
	gardens := []model.Garden{
		{ID: "a", Lat: lat, Lng: lng},
		{ID: "b", Lat: metersNorth(lat, 1800), Lng: lng},
	}
	b := CorridorBuilder{Thresholds: DefaultThresholds()}
	segments := b.Build(gardens, "", 1000)
	if len(segments) != 1 || segments[0].Status != model.CorridorBroken {
		t.Fatalf("expected one broken segment, got %+v", segments)
	}
	if segments[0].Species != nil {
		t.Errorf("expected no species without a name")
	}
	if b.Build(gardens, "x", 0) != nil {
		t.Error("zero flight range should build nothing")
	}
}
