package cli

import (
	"github.com/spf13/cobra"

	"github.com/sslp23/world-cup-sim-26/internal/app"
)

var (
	exportCSVPath   string
	exportChartTeam string
	exportChartPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the feature table CSV and/or a per-team form chart PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ExportOptions{
			CSVPath:   exportCSVPath,
			ChartTeam: exportChartTeam,
			ChartPath: exportChartPath,
		}
		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Path to write the feature table CSV")
	exportCmd.Flags().StringVar(&exportChartTeam, "chart", "", "Team to render a form chart for")
	exportCmd.Flags().StringVar(&exportChartPath, "out", "", "Path to write the chart PNG (defaults to the output directory)")
}
