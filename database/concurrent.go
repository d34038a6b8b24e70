package database

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ConcurrentMap applies f to every input with at most concurrency calls in
// flight and returns the outputs in input order. A concurrency of 0 runs the
// calls one by one; a negative one removes the limit. The first error cancels
// the context handed to the remaining calls.
func ConcurrentMap[Tin any, Tout any](ctx context.Context, inputs []Tin, concurrency int, f func(context.Context, Tin) (Tout, error)) ([]Tout, error) {
	eg, ctx := errgroup.WithContext(ctx)
	if concurrency == 0 {
		eg.SetLimit(1)
	} else if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	outputs := make([]Tout, len(inputs))
	for i, in := range inputs {
		i, in := i, in
		eg.Go(func() error {
			out, err := f(ctx, in)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
