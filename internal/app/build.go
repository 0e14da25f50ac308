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

// Build reads the raw results and rankings tables, builds the ranked
// database, persists it to the match store and writes the ranked CSV.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
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

	in, err := a.buildInputs(opts)
	if err != nil {
		return err
	}

	res, err := p.Build(ctx, in)
	if err != nil {
		return err
	}

	csvPath := opts.CSVPath
	if csvPath == "" {
		csvPath = filepath.Join(a.Config.Export.OutputDir, pipeline.RankedCSVName)
	}
	if dir := filepath.Dir(csvPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := dataset.SaveRankedCSV(csvPath, res.Matches); err != nil {
		return fmt.Errorf("write ranked csv: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Ranked database built: %d of %d matches kept (%d before cutoff, %d rank cells unresolved)\n",
		res.Kept, res.TotalRead, res.CutoffDropped, res.MissingRanks)
	fmt.Fprintf(os.Stdout, "  - %s\n", csvPath)
	return nil
}
