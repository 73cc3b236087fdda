// Package fanout runs independent sub-operations with bounded concurrency
// and isolates per-item failures, so one failing lookup never cancels its
// siblings or voids the aggregate result.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultWidth bounds in-flight sub-operations per aggregate call. Wide
// enough to keep 2N+1-call aggregations fast, narrow enough to stay under
// typical account API rate limits.
const DefaultWidth = 8

// Result holds the outcome of one sub-operation. Exactly one of Value or Err
// is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// Map applies fn to every item with at most width concurrent invocations and
// returns one Result per item, in input order. An fn error lands in that
// item's Result slot; only ctx cancellation stops the remaining work.
func Map[In, Out any](ctx context.Context, width int, items []In, fn func(ctx context.Context, item In) (Out, error)) []Result[Out] {
	if width <= 0 {
		width = DefaultWidth
	}

	results := make([]Result[Out], len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(width)

	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result[Out]{Err: err}
				return nil
			}
			out, err := fn(gctx, item)
			results[i] = Result[Out]{Value: out, Err: err}
			return nil
		})
	}

	// Goroutines never return errors, so Wait only synchronises.
	_ = g.Wait()

	return results
}
