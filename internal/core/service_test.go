package core

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"habitat_service/internal/domain/model"
	"habitat_service/internal/domain/repository"
	"habitat_service/internal/logging"
)

type fakeData struct {
	gardens      []model.Garden
	observations []model.Observation
	segments     []model.CorridorSegment
	err          error

	gardenBounds model.Bounds
}

func (f *fakeData) Gardens(_ context.Context, b model.Bounds) ([]model.Garden, error) {
	f.gardenBounds = b
	return f.gardens, f.err
}

func (f *fakeData) Observations(context.Context, model.Bounds) ([]model.Observation, error) {
	return f.observations, f.err
}

func (f *fakeData) CorridorSegments(context.Context, model.Bounds, []model.Garden) ([]model.CorridorSegment, error) {
	return f.segments, f.err
}

type fakeZones struct {
	zones []model.OpportunityZone
	err   error
}

func (f *fakeZones) OpportunityZones(context.Context, model.Bounds) ([]model.OpportunityZone, error) {
	return f.zones, f.err
}

type fakeRecorder struct {
	runs []model.GapRun
	err  error
}

func (f *fakeRecorder) SaveGapAnalysis(_ context.Context, run model.GapRun) error {
	f.runs = append(f.runs, run)
	return f.err
}

func newTestService(data repository.DataSource, zones []repository.ZoneSource, rec repository.AnalysisRecorder, save bool) *AnalyticsService {
	return NewAnalyticsService(data, zones, rec, save, DefaultThresholds(), logging.NewDiscard())
}

func TestScoreLocationRejectsInvalidCoordinates(t *testing.T) {
	svc := newTestService(&fakeData{}, nil, nil, false)
	if _, err := svc.ScoreLocation(context.Background(), model.Bounds{}, 95, 0); err == nil {
		t.Fatal("expected error for latitude 95")
	}
}

func TestScoreLocationWrapsDataErrors(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newTestService(&fakeData{err: boom}, nil, nil, false)
	_, err := svc.ScoreLocation(context.Background(), model.Bounds{}, 40.7, -111.9)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

func TestScoreLocationSkipsFailingZoneSource(t *testing.T) {
	var buf bytes.Buffer
	data := &fakeData{gardens: scenarioGardens()}
	zones := []repository.ZoneSource{
		&fakeZones{err: errors.New("overpass timeout")},
		&fakeZones{zones: []model.OpportunityZone{{Lat: 40.7, Lng: -111.9, Name: "Park", Source: "osm"}}},
	}
	svc := NewAnalyticsService(data, zones, nil, false, DefaultThresholds(), logging.New(&buf, slog.LevelWarn))

	got, err := svc.ScoreLocation(context.Background(), model.Bounds{}, 40.7, -111.9)
	if err != nil {
		t.Fatal(err)
	}
	if got.NearestZoneDistance == nil || *got.NearestZoneDistance != 0 {
		t.Errorf("nearest zone = %v, want 0", got.NearestZoneDistance)
	}
	if got.Breakdown.OpportunityZone != 50 {
		t.Errorf("zone bonus = %d, want 50", got.Breakdown.OpportunityZone)
	}
	if !strings.Contains(buf.String(), "failed to get opportunity zones") {
		t.Errorf("expected warning, log was %q", buf.String())
	}
}

func TestScoreLocationLooksBeyondBoundingBox(t *testing.T) {
	data := &fakeData{}
	svc := newTestService(data, nil, nil, false)
	box := model.Bounds{MinLat: 40.70, MinLng: -111.95, MaxLat: 40.75, MaxLng: -111.85}

	// Candidate on the southern edge of the box.
	if _, err := svc.ScoreLocation(context.Background(), box, 40.70, -111.90); err != nil {
		t.Fatal(err)
	}
	queried := data.gardenBounds
	south := metersNorth(40.70, -999)
	if !queried.Contains(south, -111.90) {
		t.Errorf("queried bounds %+v miss a garden 999 m south of the candidate", queried)
	}
	if queried.MaxLat != box.MaxLat {
		t.Errorf("northern edge moved: %+v", queried)
	}
}

func TestExpandAround(t *testing.T) {
	if got := ExpandAround(model.Bounds{}, 40, -111, 1000); !got.IsZero() {
		t.Errorf("zero bounds should stay unfiltered, got %+v", got)
	}
	got := ExpandAround(model.Bounds{MinLat: 89, MinLng: 10, MaxLat: 89.5, MaxLng: 11}, 89.99, 10.5, 5000)
	if got.MaxLat != 90 || got.MinLng < -180 || got.MaxLng > 180 {
		t.Errorf("expanded bounds not clamped: %+v", got)
	}
}

func TestCorridorsPrefersStoredSegments(t *testing.T) {
	gardens := scenarioGardens()
	stored := []model.CorridorSegment{{From: gardens[0], To: gardens[2], Status: model.CorridorBroken}}
	svc := newTestService(&fakeData{gardens: gardens, segments: stored}, nil, nil, false)

	_, segments, derived, err := svc.Corridors(context.Background(), model.Bounds{}, bumbleBee)
	if err != nil {
		t.Fatal(err)
	}
	if derived || len(segments) != 1 || segments[0].To.ID != "g3" {
		t.Errorf("derived=%v segments=%+v, want stored segment", derived, segments)
	}
}

var masonBee = Pollinator{Name: "Mason Bee", FlightRange: 300}

// outlierNetwork is a connected pair plus a garden 700 m north of the first,
// too far for a 300 m corridor but close enough for an isolated-garden gap.
func outlierNetwork() []model.Garden {
	return []model.Garden{
		{ID: "g1", Name: "Garden 1", Lat: 40.70, Lng: -111.90},
		{ID: "g2", Name: "Garden 2", Lat: 40.7005, Lng: -111.90},
		{ID: "g4", Name: "Garden 4", Lat: metersNorth(40.70, 700), Lng: -111.90},
	}
}

func TestAnalyzeNetworkDerivesSegmentsAndRecordsRun(t *testing.T) {
	rec := &fakeRecorder{}
	svc := newTestService(&fakeData{gardens: outlierNetwork()}, nil, rec, true)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	report, err := svc.AnalyzeNetwork(context.Background(), model.Bounds{}, masonBee)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Derived || len(report.Segments) != 1 {
		t.Fatalf("derived=%v segments=%d, want one derived segment", report.Derived, len(report.Segments))
	}
	if report.Analysis.Stats.ConnectivityPercent != 66.7 {
		t.Errorf("connectivity = %v, want 66.7", report.Analysis.Stats.ConnectivityPercent)
	}

	foundIsolated := false
	for _, z := range report.Gaps.Zones {
		if z.ID == "gap-isolated-g4" {
			foundIsolated = true
			if z.PotentialConnections != 2 {
				t.Errorf("potential connections = %d, want 2", z.PotentialConnections)
			}
		}
	}
	if !foundIsolated {
		t.Errorf("expected isolated gap for g4, got %+v", report.Gaps.Zones)
	}

	if len(rec.runs) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(rec.runs))
	}
	run := rec.runs[0]
	if run.ID != report.RunID || run.Species != "Mason Bee" || !run.CreatedAt.Equal(fixed) {
		t.Errorf("unexpected run %+v", run)
	}
}

func TestAnalyzeNetworkToleratesRecorderFailure(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("insert failed")}
	svc := newTestService(&fakeData{gardens: scenarioGardens()}, nil, rec, true)

	if _, err := svc.AnalyzeNetwork(context.Background(), model.Bounds{}, bumbleBee); err != nil {
		t.Fatalf("recorder failure should not fail the analysis: %v", err)
	}
}

func TestAnalyzeNetworkWithoutSavingRuns(t *testing.T) {
	rec := &fakeRecorder{}
	svc := newTestService(&fakeData{gardens: scenarioGardens()}, nil, rec, false)

	if _, err := svc.AnalyzeNetwork(context.Background(), model.Bounds{}, bumbleBee); err != nil {
		t.Fatal(err)
	}
	if len(rec.runs) != 0 {
		t.Errorf("recorded %d runs with saving disabled", len(rec.runs))
	}
}

func TestBiodiversity(t *testing.T) {
	obs := []model.Observation{
		{Species: "a", ObservedOn: "2023-06-01", ObserverID: "u1", IconicTaxon: "Insecta", Lat: 40.7, Lng: -111.9},
		{Species: "b", ObservedOn: "2023-07-01", ObserverID: "u1", Lat: 40.71, Lng: -111.9},
		{Species: "a", ObserverID: "u2"},
	}
	svc := newTestService(&fakeData{observations: obs}, nil, nil, false)

	got, err := svc.Biodiversity(context.Background(), model.Bounds{})
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalObservations != 3 || got.DatedObservations != 2 || got.UniqueObservers != 2 {
		t.Errorf("unexpected totals %+v", got)
	}
	if got.TaxonBreakdown["Insecta"] != 1 || got.TaxonBreakdown["unknown"] != 2 {
		t.Errorf("taxa = %v", got.TaxonBreakdown)
	}
	if got.Diversity.Richness != 2 || got.TopSpecies[0].Species != "a" {
		t.Errorf("diversity = %+v top = %+v", got.Diversity, got.TopSpecies)
	}
	if got.Phenology.PeakMonth != 6 {
		t.Errorf("peak month = %d", got.Phenology.PeakMonth)
	}
	if len(got.Accumulation) != 3 {
		t.Errorf("accumulation = %+v", got.Accumulation)
	}
}
