package cli

import (
	"github.com/spf13/cobra"

	"github.com/sslp23/world-cup-sim-26/internal/app"
)

var runUseFixtures bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the ranked database, compute features and write the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.RunOptions{
			UseFixtures: runUseFixtures,
		}
		return getApp().Run(cmd.Context(), opts)
	},
}

func init() {
	runCmd.Flags().BoolVar(&runUseFixtures, "use-fixtures", false, "Run the built-in demo dataset on memory stores")
}
