package repository

import (
	"context"

	"habitat_service/internal/domain/model"
)

// DataSource supplies the gardens, observations and corridor segments of an area.
// A zero Bounds means no spatial filter.
type DataSource interface {
	Gardens(ctx context.Context, bounds model.Bounds) ([]model.Garden, error)
	Observations(ctx context.Context, bounds model.Bounds) ([]model.Observation, error)
	// CorridorSegments resolves stored segments against the given gardens.
	// Segments whose endpoints are not among them are dropped.
	CorridorSegments(ctx context.Context, bounds model.Bounds, gardens []model.Garden) ([]model.CorridorSegment, error)
}

// ZoneSource supplies opportunity zones produced outside the engine.
type ZoneSource interface {
	OpportunityZones(ctx context.Context, bounds model.Bounds) ([]model.OpportunityZone, error)
}

type AnalysisRecorder interface {
	SaveGapAnalysis(ctx context.Context, run model.GapRun) error
}
