package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"habitat_service/internal/domain/model"
)

type PostGISRepository struct {
	DB *sqlx.DB
}

func NewPostgresRepository(connStr string) (*PostGISRepository, error) {
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &PostGISRepository{DB: db}, nil
}

func (r *PostGISRepository) Close() error {
	return r.DB.Close()
}

type gardenRow struct {
	model.Garden
	Plants pq.StringArray `db:"plants"`
}

type segmentRow struct {
	FromID         string         `db:"from_garden_id"`
	ToID           string         `db:"to_garden_id"`
	DistanceMeters float64        `db:"distance_meters"`
	Status         string         `db:"status"`
	Species        pq.StringArray `db:"species"`
}

// envelope is appended to queries on tables with a 4326 geom column.
const envelope = ` AND ST_Intersects(geom, ST_MakeEnvelope($1, $2, $3, $4, 4326))`

func envelopeArgs(b model.Bounds) []any {
	return []any{b.MinLng, b.MinLat, b.MaxLng, b.MaxLat}
}

func (r *PostGISRepository) Gardens(ctx context.Context, bounds model.Bounds) ([]model.Garden, error) {
	query := `
		SELECT id, name, lat, lng, habitat_score, tier, plants
		FROM gardens
		WHERE TRUE`
	var args []any
	if !bounds.IsZero() {
		query += envelope
		args = envelopeArgs(bounds)
	}
	query += ` ORDER BY id`

	var rows []gardenRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query gardens: %w", err)
	}

	gardens := make([]model.Garden, len(rows))
	for i, row := range rows {
		gardens[i] = row.Garden
		gardens[i].Plants = []string(row.Plants)
	}
	return gardens, nil
}

func (r *PostGISRepository) Observations(ctx context.Context, bounds model.Bounds) ([]model.Observation, error) {
	query := `
		SELECT id, species,
			COALESCE(scientific_name, '') AS scientific_name,
			COALESCE(common_name, '') AS common_name,
			COALESCE(iconic_taxon, '') AS iconic_taxon,
			lat, lng,
			COALESCE(observed_on::text, '') AS observed_on,
			COALESCE(observer_id, '') AS observer_id
		FROM observations
		WHERE TRUE`
	var args []any
	if !bounds.IsZero() {
		query += envelope
		args = envelopeArgs(bounds)
	}
	query += ` ORDER BY id`

	var observations []model.Observation
	if err := r.DB.SelectContext(ctx, &observations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	return observations, nil
}

func (r *PostGISRepository) CorridorSegments(
	ctx context.Context,
	bounds model.Bounds,
	gardens []model.Garden,
) ([]model.CorridorSegment, error) {
	query := `
		SELECT from_garden_id, to_garden_id, distance_meters, status, species
		FROM corridor_segments
		WHERE TRUE`
	var args []any
	if !bounds.IsZero() {
		query += envelope
		args = envelopeArgs(bounds)
	}
	query += ` ORDER BY from_garden_id, to_garden_id`

	var rows []segmentRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query corridor segments: %w", err)
	}
	return resolveSegments(rows, gardens), nil
}

func resolveSegments(rows []segmentRow, gardens []model.Garden) []model.CorridorSegment {
	byID := make(map[string]model.Garden, len(gardens))
	for _, g := range gardens {
		byID[g.ID] = g
	}

	segments := make([]model.CorridorSegment, 0, len(rows))
	for _, row := range rows {
		from, ok := byID[row.FromID]
		if !ok {
			continue
		}
		to, ok := byID[row.ToID]
		if !ok {
			continue
		}
		segments = append(segments, model.CorridorSegment{
			From:           from,
			To:             to,
			DistanceMeters: row.DistanceMeters,
			Status:         model.CorridorStatus(row.Status),
			Species:        []string(row.Species),
		})
	}
	return segments
}

// ParseBounds parses a bbox string in format "lat1,lon1,lat2,lon2".
func ParseBounds(bbox string) (model.Bounds, error) {
	parts := strings.Split(bbox, ",")
	if len(parts) != 4 {
		return model.Bounds{}, fmt.Errorf("bbox must have 4 components, got %d", len(parts))
	}

	var v [4]float64
	names := [4]string{"minLat", "minLon", "maxLat", "maxLon"}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Bounds{}, fmt.Errorf("invalid %s: %w", names[i], err)
		}
		v[i] = f
	}
	minLat, minLon, maxLat, maxLon := v[0], v[1], v[2], v[3]

	if minLat < -90 || minLat > 90 || maxLat < -90 || maxLat > 90 {
		return model.Bounds{}, fmt.Errorf("latitude out of range [-90, 90]")
	}
	if minLon < -180 || minLon > 180 || maxLon < -180 || maxLon > 180 {
		return model.Bounds{}, fmt.Errorf("longitude out of range [-180, 180]")
	}
	if minLat > maxLat || minLon > maxLon {
		return model.Bounds{}, fmt.Errorf("minLat must be <= maxLat and minLon must be <= maxLon")
	}

	return model.Bounds{MinLat: minLat, MinLng: minLon, MaxLat: maxLat, MaxLng: maxLon}, nil
}

// FormatBounds renders bounds in the "lat1,lon1,lat2,lon2" form ParseBounds reads.
func FormatBounds(b model.Bounds) string {
	return fmt.Sprintf("%f,%f,%f,%f", b.MinLat, b.MinLng, b.MaxLat, b.MaxLng)
}
