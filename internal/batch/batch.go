// Package batch drives one conversion run: scan the root, draw the display,
// convert every image through the worker pool, wait for all of them, then
// close the display and report failures.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"webpify/internal/config"
	"webpify/internal/logging"
	"webpify/internal/processor"
	"webpify/internal/scanner"
)

// NoImagesMessage is printed when a scan finds nothing. It is not an error.
const NoImagesMessage = "Images couldn't be found.\nExiting..."

// ErrJobsFailed is returned when FailOnError is set and any job failed.
var ErrJobsFailed = errors.New("conversion failed")

// Display shows batch progress. Start is called once the job count is known
// and before any job runs; Watch consumes updates until the channel is
// closed; Finish is called only after every job has finished.
type Display interface {
	Start(total int) error
	Watch(updates <-chan processor.ProgressUpdate)
	Finish(summary processor.Summary) error
}

type Runner struct {
	Config  config.Config
	Display Display
	Out     io.Writer
	Log     *logging.Logger
}

// Run executes the batch and returns its summary. Per-image failures are
// logged and do not produce an error unless FailOnError is set.
func (r *Runner) Run(ctx context.Context) (processor.Summary, error) {
	cfg := r.Config
	log := r.Log
	if log == nil {
		log = logging.Discard()
	}

	paths, err := scanner.Scan(cfg.Root, scanner.Options{
		Patterns:      cfg.Patterns,
		IncludeHidden: cfg.IncludeHidden,
	})
	if err != nil {
		return processor.Summary{}, fmt.Errorf("scan %s: %w", cfg.Root, err)
	}
	log.Debug("found %d images under %s", len(paths), cfg.Root)

	if len(paths) == 0 {
		fmt.Fprintln(r.Out, NoImagesMessage)
		return processor.Summary{}, nil
	}

	jobs := Jobs(cfg.Root, paths, cfg.Quality)
	// Nothing may be logged between Start and Finish on a shared terminal.
	log.Debug("converting with %d workers at quality %d", cfg.WorkerCount(), cfg.Quality)
	if err := r.Display.Start(len(jobs)); err != nil {
		return processor.Summary{}, err
	}

	updates := make(chan processor.ProgressUpdate, 64)
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		r.Display.Watch(updates)
	}()

	summary, results, runErr := processor.Run(ctx, jobs, processor.Options{
		OutputExt:  cfg.OutputExt,
		Optimize:   cfg.Optimize,
		AutoOrient: cfg.AutoOrient,
		Workers:    cfg.WorkerCount(),
	}, updates)

	close(updates)
	<-watchDone
	if err := r.Display.Finish(summary); err != nil {
		return summary, err
	}

	for _, res := range results {
		if res.Err != nil {
			log.Error("%s: %v", res.Display, res.Err)
		}
	}
	if summary.Failed > 0 {
		log.Warn("%d of %d images failed to convert", summary.Failed, summary.Total)
	}

	if runErr != nil {
		log.Warn("interrupted: %d images skipped", summary.Skipped)
		return summary, runErr
	}
	if cfg.FailOnError && summary.Failed > 0 {
		return summary, fmt.Errorf("%w: %d of %d images", ErrJobsFailed, summary.Failed, summary.Total)
	}
	return summary, nil
}

// Jobs pairs each path with quality. Display names are relative to root
// where possible.
func Jobs(root string, paths []string, quality int) []processor.Job {
	jobs := make([]processor.Job, 0, len(paths))
	for _, path := range paths {
		display := filepath.Base(path)
		if rel, err := filepath.Rel(root, path); err == nil && rel != "." {
			display = rel
		}
		jobs = append(jobs, processor.Job{Path: path, Display: display, Quality: quality})
	}
	return jobs
}
