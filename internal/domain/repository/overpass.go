package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/serjvanilla/go-overpass"

	"habitat_service/internal/domain/model"
)

// OverpassRepository turns OSM green space into opportunity zones.
type OverpassRepository struct {
	client  *overpass.Client
	timeout time.Duration
}

func NewOverpassRepository(endpoint string, timeout time.Duration) *OverpassRepository {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassRepository{
		client:  &client,
		timeout: timeout,
	}
}

func (r *OverpassRepository) OpportunityZones(ctx context.Context, bounds model.Bounds) ([]model.OpportunityZone, error) {
	if bounds.IsZero() {
		return nil, fmt.Errorf("overpass zones need a bounding box")
	}
	bbox := FormatBounds(bounds)
	query := fmt.Sprintf(`
		[out:json];
		(
			node["leisure"~"park|garden|nature_reserve"](%[1]s);
			way["leisure"~"park|garden|nature_reserve"](%[1]s);
			way["landuse"~"meadow|grass|village_green|allotments"](%[1]s);
			way["natural"~"grassland|scrub|heath"](%[1]s);
		);
		out body;
		>;
		out skel qt;
	`, bbox)

	result, err := r.executeQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute green space query: %w", err)
	}

	return convertToZones(toElements(result)), nil
}

func (r *OverpassRepository) executeQuery(ctx context.Context, query string) (*overpass.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type outcome struct {
		result overpass.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := r.client.Query(query)
		done <- outcome{res, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("overpass query: %w", ctx.Err())
	case o := <-done:
		if o.err != nil {
			return nil, fmt.Errorf("overpass query failed: %w", o.err)
		}
		return &o.result, nil
	}
}

// element is a tagged OSM feature reduced to one representative point.
type element struct {
	lat, lon float64
	tags     map[string]string
}

func toElements(result *overpass.Result) []element {
	var elements []element

	for _, node := range result.Nodes {
		if len(node.Tags) == 0 {
			continue
		}
		elements = append(elements, element{lat: node.Lat, lon: node.Lon, tags: node.Tags})
	}

	// Ways are reduced to the centroid of their nodes.
	for _, way := range result.Ways {
		count := len(way.Nodes)
		if count == 0 {
			continue
		}
		var lat, lon float64
		for _, node := range way.Nodes {
			lat += node.Lat
			lon += node.Lon
		}
		elements = append(elements, element{
			lat:  lat / float64(count),
			lon:  lon / float64(count),
			tags: way.Tags,
		})
	}
	return elements
}

func convertToZones(elements []element) []model.OpportunityZone {
	var zones []model.OpportunityZone
	for _, el := range elements {
		score, ok := greenSpaceScore(el.tags)
		if !ok || !model.ValidCoordinates(el.lat, el.lon) {
			continue
		}
		zones = append(zones, model.OpportunityZone{
			Lat:    el.lat,
			Lng:    el.lon,
			Name:   el.tags["name"],
			Source: "osm",
			Score:  score,
		})
	}
	return zones
}

// greenSpaceScore ranks how readily a green space can host pollinator habitat.
func greenSpaceScore(tags map[string]string) (float64, bool) {
	switch tags["landuse"] {
	case "meadow":
		return 0.9, true
	case "allotments":
		return 0.8, true
	case "grass", "village_green":
		return 0.6, true
	}
	switch tags["natural"] {
	case "grassland", "heath":
		return 0.8, true
	case "scrub":
		return 0.5, true
	}
	switch tags["leisure"] {
	case "nature_reserve":
		return 0.7, true
	case "garden":
		return 0.6, true
	case "park":
		return 0.5, true
	}
	return 0, false
}
