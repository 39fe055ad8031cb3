package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"habitat_service/internal/domain/model"
	"habitat_service/internal/domain/repository"
)

// AnalyticsService loads an area's data through repositories and runs the
// engine over it. The engine itself never touches storage; only recording
// gap-analysis runs writes anything, and only when enabled.
type AnalyticsService struct {
	data       repository.DataSource
	zones      []repository.ZoneSource
	recorder   repository.AnalysisRecorder
	saveRuns   bool
	thresholds Thresholds
	logger     *slog.Logger
	now        func() time.Time
}

func NewAnalyticsService(
	data repository.DataSource,
	zones []repository.ZoneSource,
	recorder repository.AnalysisRecorder,
	saveRuns bool,
	thresholds Thresholds,
	logger *slog.Logger,
) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		data:       data,
		zones:      zones,
		recorder:   recorder,
		saveRuns:   saveRuns && recorder != nil,
		thresholds: thresholds,
		logger:     logger,
		now:        time.Now,
	}
}

// NetworkReport is the outcome of a network and gap analysis.
type NetworkReport struct {
	RunID      uuid.UUID               `json:"run_id" yaml:"run_id"`
	Pollinator Pollinator              `json:"pollinator" yaml:"pollinator"`
	Analysis   model.NetworkAnalysis   `json:"analysis" yaml:"analysis"`
	Segments   []model.CorridorSegment `json:"-" yaml:"-"`
	Derived    bool                    `json:"derived_segments" yaml:"derived_segments"`
	Gaps       model.GapAnalysis       `json:"gaps" yaml:"gaps"`
}

func (s *AnalyticsService) ScoreLocation(ctx context.Context, bounds model.Bounds, lat, lng float64) (model.ConnectivityResult, error) {
	if !model.ValidCoordinates(lat, lng) {
		return model.ConnectivityResult{}, fmt.Errorf("invalid candidate location %f,%f", lat, lng)
	}

	// Neighbours just outside the requested box still count against the candidate.
	bounds = ExpandAround(bounds, lat, lng, s.thresholds.scoringReach())

	gardens, err := s.data.Gardens(ctx, bounds)
	if err != nil {
		return model.ConnectivityResult{}, fmt.Errorf("failed to get gardens: %w", err)
	}
	observations, err := s.data.Observations(ctx, bounds)
	if err != nil {
		return model.ConnectivityResult{}, fmt.Errorf("failed to get observations: %w", err)
	}
	zones := s.opportunityZones(ctx, bounds)

	scorer := NewConnectivityScorer(s.thresholds)
	result := scorer.Score(lat, lng, gardens, zones, observations)
	s.logger.Debug("scored candidate location",
		"lat", lat, "lng", lng,
		"score", result.Score, "bonus_points", result.BonusPoints,
		"gardens", len(gardens), "zones", len(zones), "observations", len(observations))
	return result, nil
}

// Corridors returns the stored corridor segments of an area, or derives them
// from garden spacing when none are stored.
func (s *AnalyticsService) Corridors(ctx context.Context, bounds model.Bounds, p Pollinator) ([]model.Garden, []model.CorridorSegment, bool, error) {
	gardens, err := s.data.Gardens(ctx, bounds)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to get gardens: %w", err)
	}
	segments, err := s.data.CorridorSegments(ctx, bounds, gardens)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to get corridor segments: %w", err)
	}
	if len(segments) > 0 {
		return gardens, segments, false, nil
	}

	builder := CorridorBuilder{Thresholds: s.thresholds}
	segments = builder.Build(gardens, p.Name, p.FlightRange)
	s.logger.Info("derived corridor segments from garden spacing",
		"pollinator", p.Name, "flight_range", p.FlightRange, "segments", len(segments))
	return gardens, segments, true, nil
}

func (s *AnalyticsService) AnalyzeNetwork(ctx context.Context, bounds model.Bounds, p Pollinator) (*NetworkReport, error) {
	gardens, segments, derived, err := s.Corridors(ctx, bounds, p)
	if err != nil {
		return nil, err
	}

	analyzer := NetworkAnalyzer{HubDegree: s.thresholds.HubDegree}
	analysis := analyzer.Analyze(gardens, segments)

	generator := GapZoneGenerator{Thresholds: s.thresholds}
	gaps, err := generator.Generate(ctx, GapRequest{
		Gardens:    gardens,
		Segments:   segments,
		Network:    analysis,
		Pollinator: p,
		Bounds:     bounds,
	})
	if err != nil {
		return nil, fmt.Errorf("gap analysis failed: %w", err)
	}

	report := &NetworkReport{
		RunID:      uuid.New(),
		Pollinator: p,
		Analysis:   analysis,
		Segments:   segments,
		Derived:    derived,
		Gaps:       gaps,
	}
	s.logger.Info("analyzed garden network",
		"run_id", report.RunID,
		"gardens", analysis.Stats.TotalGardens,
		"connectivity_percent", analysis.Stats.ConnectivityPercent,
		"gap_zones", len(gaps.Zones))

	if s.saveRuns {
		run := model.GapRun{
			ID:          report.RunID,
			Species:     p.Name,
			FlightRange: p.FlightRange,
			Bounds:      bounds,
			Stats:       analysis.Stats,
			Analysis:    gaps,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.recorder.SaveGapAnalysis(ctx, run); err != nil {
			s.logger.Warn("failed to record gap analysis run", "run_id", run.ID, "error", err)
		}
	}
	return report, nil
}

func (s *AnalyticsService) Biodiversity(ctx context.Context, bounds model.Bounds) (model.BiodiversitySummary, error) {
	observations, err := s.data.Observations(ctx, bounds)
	if err != nil {
		return model.BiodiversitySummary{}, fmt.Errorf("failed to get observations: %w", err)
	}

	analyzer := BiodiversityAnalyzer{Thresholds: s.thresholds}
	summary := analyzer.Summarize(observations)
	s.logger.Debug("summarized biodiversity",
		"observations", summary.TotalObservations,
		"richness", summary.Diversity.Richness,
		"dated", summary.DatedObservations)
	return summary, nil
}

// opportunityZones merges every zone source. A failing source is logged and
// skipped so scoring still runs on what is available.
func (s *AnalyticsService) opportunityZones(ctx context.Context, bounds model.Bounds) []model.OpportunityZone {
	var zones []model.OpportunityZone
	for _, src := range s.zones {
		z, err := src.OpportunityZones(ctx, bounds)
		if err != nil {
			s.logger.Warn("failed to get opportunity zones", "source", fmt.Sprintf("%T", src), "error", err)
			continue
		}
		zones = append(zones, z...)
	}
	return zones
}
