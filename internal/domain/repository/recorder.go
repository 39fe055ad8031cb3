package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"habitat_service/internal/domain/model"
)

type PostgresAnalysisRecorder struct {
	db *sqlx.DB
}

func NewPostgresAnalysisRecorder(db *sqlx.DB) *PostgresAnalysisRecorder {
	return &PostgresAnalysisRecorder{db: db}
}

func (r *PostgresAnalysisRecorder) SaveGapAnalysis(ctx context.Context, run model.GapRun) error {
	const query = `
		INSERT INTO gap_analysis_runs (
			id, species, flight_range, bbox,
			total_gardens, isolated_gardens, connectivity_percent,
			zone_count, connectivity_increase, new_connections,
			zones, recorded_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`

	zonesJSON, err := json.Marshal(run.Analysis.Zones)
	if err != nil {
		return fmt.Errorf("failed to marshal gap zones: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		run.ID.String(), run.Species, run.FlightRange, FormatBounds(run.Bounds),
		run.Stats.TotalGardens, run.Stats.IsolatedGardens, run.Stats.ConnectivityPercent,
		len(run.Analysis.Zones), run.Analysis.Impact.ConnectivityIncrease, run.Analysis.Impact.NewConnections,
		zonesJSON, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save gap analysis run: %w", err)
	}
	return nil
}
