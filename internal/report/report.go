package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"habitat_service/internal/domain/model"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, yaml or csv)", s)
	}
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

var gapCSVHeader = []string{
	"id", "priority", "lat", "lng", "estimated_impact",
	"potential_connections", "recommended_size", "nearby_gardens",
	"target_species", "reason",
}

// WriteGapZonesCSV writes one row per gap zone. List fields are joined with ";".
func WriteGapZonesCSV(w io.Writer, zones []model.GapZone) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(gapCSVHeader); err != nil {
		return err
	}
	for _, z := range zones {
		row := []string{
			z.ID,
			string(z.Priority),
			strconv.FormatFloat(z.Lat, 'f', 6, 64),
			strconv.FormatFloat(z.Lng, 'f', 6, 64),
			strconv.FormatFloat(z.EstimatedImpact, 'f', 0, 64),
			strconv.Itoa(z.PotentialConnections),
			z.RecommendedSize,
			strings.Join(z.NearbyGardens, ";"),
			strings.Join(z.TargetSpecies, ";"),
			z.Reason,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSegmentsCSV writes one row per corridor segment.
func WriteSegmentsCSV(w io.Writer, segments []model.CorridorSegment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"from", "to", "distance_meters", "status", "species"}); err != nil {
		return err
	}
	for _, s := range segments {
		row := []string{
			s.From.Name,
			s.To.Name,
			strconv.FormatFloat(s.DistanceMeters, 'f', 0, 64),
			string(s.Status),
			strings.Join(s.Species, ";"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
