package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sslp23/world-cup-sim-26/internal/pipeline"
)

// Run executes the full pass: build the ranked database, compute features
// and write the report. With UseFixtures the built-in demo dataset runs on
// memory stores, leaving the configured backend untouched.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.UseFixtures {
		p, err := a.newPipeline(memoryStores())
		if err != nil {
			return err
		}
		if err := p.RunFixtures(ctx); err != nil {
			return err
		}
		a.printRunOutputs(false)
		return nil
	}

	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close()

	p, err := a.newPipeline(st)
	if err != nil {
		return err
	}

	in, err := a.buildInputs(BuildOptions{})
	if err != nil {
		return err
	}

	if err := p.Run(ctx, in); err != nil {
		return err
	}
	a.printRunOutputs(true)
	return nil
}

func (a *App) printRunOutputs(withRanked bool) {
	dir := a.Config.Export.OutputDir
	fmt.Fprintf(os.Stdout, "Run completed:\n")
	if withRanked {
		fmt.Fprintf(os.Stdout, "  - %s\n", filepath.Join(dir, pipeline.RankedCSVName))
	}
	fmt.Fprintf(os.Stdout, "  - %s\n", filepath.Join(dir, pipeline.FeatureCSVName))
	fmt.Fprintf(os.Stdout, "  - %s\n", filepath.Join(dir, pipeline.ReportName))
}
