package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sslp23/world-cup-sim-26/internal/dataset"
	"github.com/sslp23/world-cup-sim-26/internal/pipeline"
)

// Features computes the feature table from the match store, or from a
// pre-built ranked CSV when opts.InputPath is set. Feature rows are
// persisted and the feature CSV and report are written either way.
func (a *App) Features(ctx context.Context, opts FeaturesOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close()

	p, err := a.newPipeline(st)
	if err != nil {
		return err
	}

	if opts.InputPath != "" {
		matches, err := dataset.LoadRanked(opts.InputPath)
		if err != nil {
			return fmt.Errorf("load ranked csv: %w", err)
		}
		dataset.SortMatches(matches)
		if err := p.FeaturesFrom(ctx, matches); err != nil {
			return err
		}
	} else {
		if err := p.Features(ctx); err != nil {
			return err
		}
	}

	dir := a.Config.Export.OutputDir
	fmt.Fprintf(os.Stdout, "Feature table written:\n  - %s\n  - %s\n",
		filepath.Join(dir, pipeline.FeatureCSVName), filepath.Join(dir, pipeline.ReportName))
	return nil
}
