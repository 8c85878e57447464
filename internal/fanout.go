package internal

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of concurrent work executed by Fanout.
// Tasks receive a plain context.Context rather than the pipeline Context:
// the request Context is owned by the single sequential chain and must not
// be mutated from multiple goroutines.
type Task func(ctx context.Context) error

// Fanout runs tasks concurrently and waits for all of them.
// The context passed to tasks is canceled as soon as any task fails.
// limit caps concurrent tasks; zero or negative means no cap.
//
// A single failure is returned as-is. Multiple failures are aggregated
// into a CompositeError with errors in task submission order, so the
// first submitted failure is the primary cause.
func Fanout(ctx context.Context, limit int, tasks ...Task) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	errs := make([]error, len(tasks))
	for i, task := range tasks {
		g.Go(func() error {
			if err := task(gctx); err != nil {
				errs[i] = err
				return err
			}
			return nil
		})
	}

	// Wait's error is the first completion-order failure; the composite
	// below reports submission order instead, so it is discarded.
	_ = g.Wait()

	failed := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}

	switch len(failed) {
	case 0:
		return nil
	case 1:
		return failed[0]
	default:
		return &CompositeError{Errs: failed}
	}
}
