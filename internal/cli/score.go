package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"habitat_service/internal/report"
)

var scoreLat, scoreLng float64

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score how well a candidate garden location strengthens the corridor network",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		result, err := s.service.ScoreLocation(cmd.Context(), s.bounds, scoreLat, scoreLng)
		if err != nil {
			return err
		}

		switch s.format {
		case report.FormatJSON:
			return report.WriteJSON(s.out, result)
		case report.FormatYAML:
			return report.WriteYAML(s.out, result)
		case report.FormatCSV:
			return fmt.Errorf("csv output is not available for score")
		default:
			return report.WriteConnectivityText(s.out, result)
		}
	},
}

func init() {
	scoreCmd.Flags().Float64Var(&scoreLat, "lat", 0, "Candidate latitude")
	scoreCmd.Flags().Float64Var(&scoreLng, "lng", 0, "Candidate longitude")
	scoreCmd.MarkFlagRequired("lat")
	scoreCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(scoreCmd)
}
