package cli

import (
	"github.com/spf13/cobra"

	"github.com/sslp23/world-cup-sim-26/internal/app"
)

var (
	showTeam  string
	showLimit int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display a team's recent matches and form features",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ShowOptions{
			Team:  showTeam,
			Limit: showLimit,
		}
		return getApp().Show(cmd.Context(), opts)
	},
}

func init() {
	showCmd.Flags().StringVar(&showTeam, "team", "", "Team name (required)")
	showCmd.Flags().IntVar(&showLimit, "limit", 10, "Number of matches to display")
}
