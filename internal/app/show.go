package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
)

// Show prints a team's recent matches with its form features.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	if opts.Team == "" {
		return errors.New("--team is required")
	}
	if opts.Limit <= 0 {
		return errors.New("--limit must be greater than zero")
	}

	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close()

	rows, err := st.featureStore.GetByTeam(ctx, opts.Team)
	if err != nil {
		return fmt.Errorf("load rows for %s: %w", opts.Team, err)
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stdout, "no matches found for %s\n", opts.Team)
		return nil
	}
	if len(rows) > opts.Limit {
		rows = rows[len(rows)-opts.Limit:]
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Date\tFixture\tScore\tRank\tOpp Rank\tPts MA5\tWPts MA5")

	for _, r := range rows {
		form := r.Home
		rank, oppRank := r.HomeRank, r.AwayRank
		if r.AwayTeam == opts.Team {
			form = r.Away
			rank, oppRank = r.AwayRank, r.HomeRank
		}
		fmt.Fprintf(
			writer,
			"%s\t%s vs %s\t%s\t%s\t%s\t%s\t%s\n",
			r.Date.Format("2006-01-02"),
			r.HomeTeam, r.AwayTeam,
			formatScore(r.HomeGoals, r.AwayGoals),
			formatRank(rank),
			formatRank(oppRank),
			formatStat(form.PointsMA5),
			formatStat(form.PointsWeightedMA5),
		)
	}

	writer.Flush()
	return nil
}

func formatScore(hg, ag *int) string {
	if hg == nil || ag == nil {
		return "-"
	}
	return fmt.Sprintf("%d-%d", *hg, *ag)
}

func formatRank(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 0, 64)
}

func formatStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
