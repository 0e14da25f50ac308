package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sslp23/world-cup-sim-26/internal/reporting"
)

// Export re-renders artifacts from the feature store: the feature table CSV
// and/or a per-team form chart PNG.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.ChartTeam == "" {
		return errors.New("nothing to export: pass --csv and/or --chart")
	}

	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close()

	if opts.CSVPath != "" {
		rows, err := st.featureStore.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("load feature rows: %w", err)
		}
		if err := ensureParent(opts.CSVPath); err != nil {
			return err
		}
		if err := reporting.SaveFeatureCSV(opts.CSVPath, rows, a.Config.Export.IncludeLabels); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Feature table: %s (%d rows)\n", opts.CSVPath, len(rows))
	}

	if opts.ChartTeam != "" {
		rows, err := st.featureStore.GetByTeam(ctx, opts.ChartTeam)
		if err != nil {
			return fmt.Errorf("load rows for %s: %w", opts.ChartTeam, err)
		}

		path := opts.ChartPath
		if path == "" {
			path = filepath.Join(a.Config.Export.OutputDir, chartFileName(opts.ChartTeam))
		}
		if err := ensureParent(path); err != nil {
			return err
		}
		if err := reporting.SaveFormChart(path, opts.ChartTeam, rows, a.Config.Export.ChartWidth, a.Config.Export.ChartHeight); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Form chart: %s\n", path)
	}

	return nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

func chartFileName(team string) string {
	slug := strings.ToLower(strings.ReplaceAll(team, " ", "_"))
	return slug + "_form.png"
}
