package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/clmhq/clm/envelope"
)

// EncodeFunc is one encoder invocation — a closure over whichever
// prompt.Encoder, transcript.Encoder, or structured.Encoder the
// caller configured — adapted to accept a context so EncodeMany can
// cancel outstanding work on the first error.
type EncodeFunc func(ctx context.Context, input any) (*envelope.CLMOutput, error)

// EncodeMany runs fn once per element of inputs, fanned out across
// pool (DefaultPool() when nil), and returns results in input order.
// The first error cancels the shared context for any calls still in
// flight and is returned; a partial result slice is never returned
// alongside an error, since a batch either fully succeeds or the
// caller retries/narrows it.
func EncodeMany(ctx context.Context, fn EncodeFunc, inputs []any, pool Pool) ([]*envelope.CLMOutput, error) {
	if pool == nil {
		pool = DefaultPool()
	}

	results := make([]*envelope.CLMOutput, len(inputs))
	group, gctx := errgroup.WithContext(ctx)

	for i, input := range inputs {
		i, input := i, input
		group.Go(func() error {
			errc := make(chan error, 1)
			pool.Go(func() {
				out, err := fn(gctx, input)
				if err == nil {
					results[i] = out
				}
				errc <- err
			})
			select {
			case err := <-errc:
				return err
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
