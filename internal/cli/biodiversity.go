package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"habitat_service/internal/report"
)

var biodiversityCmd = &cobra.Command{
	Use:   "biodiversity",
	Short: "Diversity indices, spatial pattern, trend and phenology of observations",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		summary, err := s.service.Biodiversity(cmd.Context(), s.bounds)
		if err != nil {
			return err
		}

		switch s.format {
		case report.FormatJSON:
			return report.WriteJSON(s.out, summary)
		case report.FormatYAML:
			return report.WriteYAML(s.out, summary)
		case report.FormatCSV:
			return fmt.Errorf("csv output is not available for biodiversity")
		default:
			return report.WriteBiodiversityText(s.out, summary)
		}
	},
}

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "List the configured pollinator species and flight ranges",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SPECIES\tFLIGHT RANGE (m)")
		for _, p := range cfg.Species {
			marker := ""
			if p.Name == cfg.Analysis.DefaultSpecies {
				marker = " (default)"
			}
			fmt.Fprintf(w, "%s%s\t%.0f\n", p.Name, marker, p.FlightRange)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(biodiversityCmd)
	rootCmd.AddCommand(speciesCmd)
}
