package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map runs fn for every item with at most workers goroutines and returns the
// results in input order. The first error cancels the context handed to the
// calls still running and is returned once all of them finish.
// workers <= 0 means no limit.
func Map[T any, R any](ctx context.Context, items []T, workers int, fn func(ctx context.Context, index int, item T) (R, error)) ([]R, error) {
	errGroup, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		errGroup.SetLimit(workers)
	}

	out := make([]R, len(items))
	for i, item := range items {
		errGroup.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(ctx, i, item)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Range is [0, n) as a slice, handy as Map input when only the index matters.
func Range(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
