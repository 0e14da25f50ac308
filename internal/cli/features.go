package cli

import (
	"github.com/spf13/cobra"

	"github.com/sslp23/world-cup-sim-26/internal/app"
)

var featuresInput string

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Compute the feature table from the ranked database",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.FeaturesOptions{
			InputPath: featuresInput,
		}
		return getApp().Features(cmd.Context(), opts)
	},
}

func init() {
	featuresCmd.Flags().StringVar(&featuresInput, "input", "", "Ranked CSV to featurize instead of the match store")
}
