package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"habitat_service/internal/domain/model"
)

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YAML"); err != nil || f != FormatYAML {
		t.Fatalf("ParseFormat(YAML) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestWriteGapZonesCSV(t *testing.T) {
	zones := []model.GapZone{{
		ID:                   "gap-broken-0",
		Lat:                  40.7,
		Lng:                  -111.9,
		Priority:             model.PriorityCritical,
		Reason:               "broken corridor between A and B (2400m)",
		PotentialConnections: 2,
		NearbyGardens:        []string{"A", "B"},
		RecommendedSize:      "large",
		EstimatedImpact:      90,
		TargetSpecies:        []string{"Bumble Bee"},
	}}

	var buf bytes.Buffer
	if err := WriteGapZonesCSV(&buf, zones); err != nil {
		t.Fatalf("WriteGapZonesCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv back: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	row := records[1]
	if row[0] != "gap-broken-0" || row[1] != "critical" || row[4] != "90" || row[7] != "A;B" {
		t.Errorf("unexpected row: %v", row)
	}
}

func TestWriteConnectivityText(t *testing.T) {
	d := 1234.0
	r := model.ConnectivityResult{
		Score:                 40,
		BonusPoints:           20,
		NearestGardenDistance: &d,
		Details:               []string{"Pioneer garden in an unserved area (+20)"},
	}
	var buf bytes.Buffer
	if err := WriteConnectivityText(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"40/100", "1.23 km", "Nearest opportunity zone: none", "Pioneer garden"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, model.DiversityResult{Shannon: 1.5, Richness: 4}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "shannon: 1.5") || !strings.Contains(buf.String(), "richness: 4") {
		t.Errorf("unexpected yaml:\n%s", buf.String())
	}
}

func TestWriteSegmentsText(t *testing.T) {
	segments := []model.CorridorSegment{{
		From:           model.Garden{Name: "North"},
		To:             model.Garden{Name: "South"},
		DistanceMeters: 1250,
		Status:         model.CorridorWeak,
	}}
	var buf bytes.Buffer
	if err := WriteSegmentsText(&buf, "Bumble Bee", segments); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Corridors for Bumble Bee: 1") || !strings.Contains(out, "weak      North <-> South (1.25 km)") {
		t.Errorf("unexpected output %q", out)
	}
}
