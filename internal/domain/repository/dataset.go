package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"habitat_service/internal/domain/model"
)

// DatasetRepository serves a JSON dataset file. It is both a DataSource and
// a ZoneSource.
type DatasetRepository struct {
	data model.Dataset
}

func NewDatasetRepository(data model.Dataset) *DatasetRepository {
	return &DatasetRepository{data: data}
}

func LoadDataset(path string) (*DatasetRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	var data model.Dataset
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}
	return NewDatasetRepository(data), nil
}

// Records without coordinates pass the bounds filter; the engine skips them.
func (r *DatasetRepository) Gardens(_ context.Context, bounds model.Bounds) ([]model.Garden, error) {
	var out []model.Garden
	for _, g := range r.data.Gardens {
		if inBounds(bounds, g.Lat, g.Lng) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *DatasetRepository) Observations(_ context.Context, bounds model.Bounds) ([]model.Observation, error) {
	var out []model.Observation
	for _, o := range r.data.Observations {
		if inBounds(bounds, o.Lat, o.Lng) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *DatasetRepository) CorridorSegments(
	_ context.Context,
	_ model.Bounds,
	gardens []model.Garden,
) ([]model.CorridorSegment, error) {
	rows := make([]segmentRow, len(r.data.CorridorSegments))
	for i, s := range r.data.CorridorSegments {
		rows[i] = segmentRow{
			FromID:         s.From.ID,
			ToID:           s.To.ID,
			DistanceMeters: s.DistanceMeters,
			Status:         string(s.Status),
			Species:        s.Species,
		}
	}
	return resolveSegments(rows, gardens), nil
}

func (r *DatasetRepository) OpportunityZones(_ context.Context, bounds model.Bounds) ([]model.OpportunityZone, error) {
	var out []model.OpportunityZone
	for _, z := range r.data.OpportunityZones {
		if inBounds(bounds, z.Lat, z.Lng) {
			out = append(out, z)
		}
	}
	return out, nil
}

func inBounds(b model.Bounds, lat, lng float64) bool {
	if b.IsZero() || !model.ValidCoordinates(lat, lng) {
		return true
	}
	return b.Contains(lat, lng)
}
