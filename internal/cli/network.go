package cli

import (
	"github.com/spf13/cobra"

	"habitat_service/internal/report"
)

var speciesFlag string

var gapsCmd = &cobra.Command{
	Use:     "gaps",
	Aliases: []string{"network"},
	Short:   "Analyze network connectivity and list prioritized gap zones",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := cfg.Pollinator(speciesFlag)
		if err != nil {
			return err
		}
		rep, err := s.service.AnalyzeNetwork(cmd.Context(), s.bounds, p)
		if err != nil {
			return err
		}

		switch s.format {
		case report.FormatJSON:
			return report.WriteJSON(s.out, rep)
		case report.FormatYAML:
			return report.WriteYAML(s.out, rep)
		case report.FormatCSV:
			return report.WriteGapZonesCSV(s.out, rep.Gaps.Zones)
		default:
			return report.WriteNetworkText(s.out, p.Name, rep.Analysis.Stats, rep.Gaps)
		}
	},
}

var corridorsCmd = &cobra.Command{
	Use:   "corridors",
	Short: "List corridor segments, deriving them from garden spacing when none are stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := cfg.Pollinator(speciesFlag)
		if err != nil {
			return err
		}
		_, segments, _, err := s.service.Corridors(cmd.Context(), s.bounds, p)
		if err != nil {
			return err
		}

		switch s.format {
		case report.FormatJSON:
			return report.WriteJSON(s.out, segments)
		case report.FormatYAML:
			return report.WriteYAML(s.out, segments)
		case report.FormatCSV:
			return report.WriteSegmentsCSV(s.out, segments)
		default:
			return report.WriteSegmentsText(s.out, p.Name, segments)
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{gapsCmd, corridorsCmd} {
		c.Flags().StringVarP(&speciesFlag, "species", "s", "", "Pollinator species (defaults to analysis.default_species)")
		rootCmd.AddCommand(c)
	}
}
