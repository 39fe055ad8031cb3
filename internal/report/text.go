package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"habitat_service/internal/domain/model"
)

func WriteConnectivityText(w io.Writer, r model.ConnectivityResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Connectivity score: %d/100 (%d bonus points)\n", r.Score, r.BonusPoints)
	fmt.Fprintf(&b, "  Nearest garden:           %s\n", formatDistance(r.NearestGardenDistance))
	fmt.Fprintf(&b, "  Nearest opportunity zone: %s\n", formatDistance(r.NearestZoneDistance))
	fmt.Fprintf(&b, "  Gardens within 500m:      %d\n", r.GardensWithin500m)
	fmt.Fprintf(&b, "  Observations within 500m: %d\n", r.ObservationsWithin500m)
	fmt.Fprintf(&b, "  Fills a gap:              %t\n", r.FillsGap)
	for _, d := range r.Details {
		fmt.Fprintf(&b, "  - %s\n", d)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func WriteNetworkText(w io.Writer, species string, stats model.NetworkStats, gaps model.GapAnalysis) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Network for %s\n", species)
	fmt.Fprintf(&b, "  Gardens:      %d total, %d connected, %d isolated, %d hubs\n",
		stats.TotalGardens, stats.ConnectedGardens, stats.IsolatedGardens, stats.Hubs)
	fmt.Fprintf(&b, "  Connectivity: %.1f%% (avg %.1f connections per garden)\n",
		stats.ConnectivityPercent, stats.AvgConnections)
	fmt.Fprintf(&b, "  Corridors:    %d total, %d weak, %d broken\n",
		stats.TotalCorridors, stats.WeakCorridors, stats.BrokenCorridors)

	fmt.Fprintf(&b, "Gap zones: %d\n", len(gaps.Zones))
	for i, z := range gaps.Zones {
		fmt.Fprintf(&b, "  %2d. [%s] %.5f,%.5f impact %.0f%% - %s\n",
			i+1, z.Priority, z.Lat, z.Lng, z.EstimatedImpact, z.Reason)
	}
	fmt.Fprintf(&b, "Projected: connectivity up to %.1f%%, %d new connections, %d isolated gardens resolved\n",
		gaps.Impact.ConnectivityIncrease, gaps.Impact.NewConnections, gaps.Impact.IsolatedResolved)
	_, err := io.WriteString(w, b.String())
	return err
}

func WriteBiodiversityText(w io.Writer, s model.BiodiversitySummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Observations: %d (%d dated, %d observers)\n",
		s.TotalObservations, s.DatedObservations, s.UniqueObservers)
	fmt.Fprintf(&b, "Species richness: %d\n", s.Diversity.Richness)
	fmt.Fprintf(&b, "  Shannon H': %.3f\n", s.Diversity.Shannon)
	fmt.Fprintf(&b, "  Simpson D:  %.4f\n", s.Diversity.Simpson)
	fmt.Fprintf(&b, "  Pielou J':  %.3f\n", s.Diversity.Pielou)
	fmt.Fprintf(&b, "Spatial pattern: %s (Moran's I %.3f over %d cells)\n",
		s.Autocorrelation.Pattern, s.Autocorrelation.MoransI, s.Autocorrelation.Points)
	fmt.Fprintf(&b, "Trend: %s (slope %.2f/yr, %.1f%% change, R² %.2f)\n",
		s.Trend.Direction, s.Trend.Slope, s.Trend.PercentChange, s.Trend.RSquared)
	if s.Phenology.PeakMonth > 0 {
		fmt.Fprintf(&b, "Peak month: %s\n", time.Month(s.Phenology.PeakMonth))
	}
	if len(s.TopSpecies) > 0 {
		b.WriteString("Top species:\n")
		for _, sp := range s.TopSpecies {
			fmt.Fprintf(&b, "  %-30s %d\n", sp.Species, sp.Count)
		}
	}
	if n := len(s.Accumulation); n > 0 {
		last := s.Accumulation[n-1]
		fmt.Fprintf(&b, "Accumulation: %d species after %d observations\n", last.UniqueSpecies, last.Observations)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func WriteSegmentsText(w io.Writer, species string, segments []model.CorridorSegment) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Corridors for %s: %d\n", species, len(segments))
	for _, s := range segments {
		d := s.DistanceMeters
		fmt.Fprintf(&b, "  %-9s %s <-> %s (%s)\n", s.Status, s.From.Name, s.To.Name, formatDistance(&d))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatDistance(d *float64) string {
	if d == nil {
		return "none"
	}
	if *d >= 1000 {
		return fmt.Sprintf("%.2f km", *d/1000)
	}
	return fmt.Sprintf("%.0f m", *d)
}
