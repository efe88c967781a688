package processor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run converts every job using a pool of at most opts.Workers goroutines and
// returns once all of them have finished. A failed job is recorded in its
// Result and never stops the others. When ctx is cancelled, jobs that have not
// started are skipped and ctx's error is returned after the join.
//
// updates receives one value per finished job, sent from a single goroutine.
// It is not closed by Run.
func Run(ctx context.Context, jobs []Job, opts Options, updates chan<- ProgressUpdate) (Summary, []Result, error) {
	summary := Summary{Total: len(jobs)}
	reports := make([]Result, 0, len(jobs))

	results := make(chan Result)
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for res := range results {
			reports = append(reports, res)
			update := ProgressUpdate{Path: res.Path}
			if res.Err != nil {
				summary.Failed++
				update.FailedDelta = 1
			} else {
				summary.Converted++
				summary.BytesSaved += res.BytesSaved()
				update.ConvertedDelta = 1
				update.BytesSavedDelta = res.BytesSaved()
			}
			if updates != nil {
				updates <- update
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results <- convertJob(job, opts)
			return nil
		})
	}

	_ = g.Wait()
	close(results)
	<-collectorDone

	summary.Skipped = summary.Total - summary.Converted - summary.Failed
	if err := ctx.Err(); err != nil {
		return summary, reports, err
	}
	return summary, reports, nil
}
