package cli

import (
	"github.com/spf13/cobra"

	"github.com/sslp23/world-cup-sim-26/internal/app"
)

var (
	buildResults  string
	buildRankings string
	buildCutoff   string
	buildCSV      string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the ranked match database from results and rankings CSVs",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.BuildOptions{
			ResultsPath:  buildResults,
			RankingsPath: buildRankings,
			CutoffDate:   buildCutoff,
			CSVPath:      buildCSV,
		}
		return getApp().Build(cmd.Context(), opts)
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildResults, "results", "", "Results CSV path (defaults to config)")
	buildCmd.Flags().StringVar(&buildRankings, "rankings", "", "Rankings CSV path (defaults to config)")
	buildCmd.Flags().StringVar(&buildCutoff, "cutoff", "", "Keep matches on or after this date, YYYY-MM-DD (defaults to config)")
	buildCmd.Flags().StringVar(&buildCSV, "csv", "", "Ranked CSV output path (defaults to the output directory)")
}
