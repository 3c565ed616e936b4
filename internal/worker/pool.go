// Package worker runs independent per-item work with bounded concurrency.
package worker

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Result pairs one input with its processing outcome. Results keep the
// input order regardless of completion order.
type Result[T any, R any] struct {
	Input T
	Value R
	Err   error
}

// ProcessFunc processes a single item.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Map processes all inputs with at most workers goroutines and returns
// results indexed like the inputs. Per-item errors are recorded, not
// propagated; cancellation stops launching further items.
func Map[T any, R any](ctx context.Context, workers int, inputs []T, fn ProcessFunc[T, R]) []Result[T, R] {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result[T, R], len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range inputs {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			value, err := fn(ctx, inputs[i])
			results[i] = Result[T, R]{Input: inputs[i], Value: value, Err: err}
			if err != nil {
				log.Error().Err(err).Int("index", i).Msg("Task failed")
			}
			return nil
		})
	}

	// Workers never return errors, so this only waits.
	_ = g.Wait()

	return results
}

// Batch splits items into slices of at most batchSize.
func Batch[T any](items []T, batchSize int) [][]T {
	if batchSize <= 0 {
		batchSize = 1
	}

	var batches [][]T
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}

	return batches
}
