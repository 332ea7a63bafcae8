// File: pkg/combine/worker.go
package combine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// readResult is the outcome for the file at the same index.
type readResult struct {
	section Section
	err     error
}

// readFiles reads files with at most maxWorkers concurrent reads. Results are
// stored by index, so output order never depends on scheduling. Per-file
// failures live in the results; only context cancellation aborts the batch.
func (a *Assembler) readFiles(ctx context.Context, files []EligibleFile) ([]readResult, error) {
	maxWorkers := a.opts.Workers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	a.logger.Debug("Initializing read pool", zap.Int("workers", maxWorkers), zap.Int("files", len(files)))

	results := make([]readResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			section, err := a.readSection(file)
			results[i] = readResult{section: section, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
