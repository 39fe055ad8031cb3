package core

import (
	"reflect"
	"testing"

	"habitat_service/internal/domain/model"
)

func TestPhenology(t *testing.T) {
	obs := []model.Observation{
		{Species: "Bee A", ObservedOn: "2023-04-10"},
		{Species: "Bee A", ObservedOn: "2023-06-01"},
		{Species: "Bee B", ObservedOn: "2023-06-20"},
		{Species: "Bee B", ObservedOn: "2023-06-15"},
		{Species: "Bee C", ObservedOn: ""},
		{Species: "Bee C", ObservedOn: "not a date"},
	}
	a := PhenologyAnalyzer{}
	got := a.Analyze(obs)

	if got.Monthly[3] != 1 || got.Monthly[5] != 3 {
		t.Errorf("monthly = %v", got.Monthly)
	}
	if got.PeakMonth != 6 {
		t.Errorf("peak month = %d, want 6", got.PeakMonth)
	}
	want := []model.SpeciesSeason{
		{Species: "Bee A", ActiveMonths: []int{4, 6}, SeasonLength: 2, FirstDay: 100, LastDay: 152},
		{Species: "Bee B", ActiveMonths: []int{6}, SeasonLength: 1, FirstDay: 166, LastDay: 171},
	}
	if !reflect.DeepEqual(got.Species, want) {
		t.Errorf("species = %+v, want %+v", got.Species, want)
	}
}

func TestPhenologyEmpty(t *testing.T) {
	a := PhenologyAnalyzer{}
	got := a.Analyze(nil)
	if got.PeakMonth != 0 || len(got.Species) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestPhenologyPeakTieTakesEarliestMonth(t *testing.T) {
	obs := []model.Observation{
		{Species: "x", ObservedOn: "2023-08-01"},
		{Species: "x", ObservedOn: "2023-03-01"},
	}
	a := PhenologyAnalyzer{}
	if got := a.Analyze(obs).PeakMonth; got != 3 {
		t.Errorf("peak month = %d, want 3", got)
	}
}
