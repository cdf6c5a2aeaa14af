// internal/batch/batch.go
// Package batch runs independent per-morphology units of work over a worker
// pool. No tree instance is shared between units, so workers need no locking;
// correctness does not depend on parallel execution.
package batch

import (
	"context"
	"sync"

	"morphclone/internal/report"
)

// Config controls the batch pool.
type Config struct {
	Threads int // number of worker goroutines (>=1)

	// Process handles one morphology file and reports its outcome. It must
	// isolate failures to the returned outcome rather than panicking.
	Process func(ctx context.Context, path string) report.File
}

// ForEach streams one report.File per input path to visit. Workers run
// cfg.Process concurrently; the collector serializes visit calls. It returns
// the first error encountered (including context cancellation); cancellation
// stops launching new units while in-flight ones finish.
func ForEach(ctx context.Context, cfg Config, paths []string, visit func(report.File) error) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	jobs := make(chan string, cfg.Threads*2)
	results := make(chan report.File, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case path, ok := <-jobs:
					if !ok {
						return
					}
					outcome := cfg.Process(ctx, path)
					select {
					case results <- outcome:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for outcome := range results {
			if cerr != nil {
				continue
			}
			if err := visit(outcome); err != nil {
				cerr = err
			}
		}
	}()

	// Feed work
feed:
	for _, p := range paths {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- p:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}
