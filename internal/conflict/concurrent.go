package conflict

import (
	"context"

	"github.com/vlanet/vridge/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DetectConcurrent is Detect with the pairwise sweep sharded across workers.
// Shards are merged by set union, so the result equals Detect's for the same
// input. workers <= 1 runs serially.
func DetectConcurrent(ctx context.Context, phases []domain.ProjectPhase, workers int, opts ...Option) (Result, error) {
	if workers <= 1 {
		return Detect(phases, opts...), ctx.Err()
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	o := buildOptions(opts)
	candidates, skipped := prepare(phases, o)
	if workers > len(candidates) {
		workers = max(len(candidates), 1)
	}

	shards := make([][]pair, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var local []pair
			for i := w; i < len(candidates); i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				local = sweepFrom(candidates, i, local)
			}
			shards[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	seen := make(map[pair]bool)
	var pairs []pair
	for _, shard := range shards {
		for _, p := range shard {
			if !seen[p] {
				seen[p] = true
				pairs = append(pairs, p)
			}
		}
	}
	return finalize(candidates, pairs, skipped, o), nil
}
