package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/laserchess/internal/board"
)

// BatchOptions controls EvaluateBatch.
type BatchOptions struct {
	Workers int        // 0 means runtime.NumCPU()
	Seed    int64      // worker i seeds its jitter source with Seed+i
	Table   *EvalTable // optional shared cache
}

// EvaluateBatch scores positions in parallel, one Evaluator per worker.
// Results are in input order. Positions are validated up front so a corrupt
// position is reported as an error instead of an invariant panic.
func EvaluateBatch(ctx context.Context, positions []*board.Position, w Weights, opts BatchOptions) ([]int, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	for i, pos := range positions {
		if err := pos.Validate(); err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(positions) {
		workers = len(positions)
	}

	scores := make([]int, len(positions))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range positions {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	base := NewEvaluator(w, WithTable(opts.Table))
	for id := 0; id < workers; id++ {
		ev := base.Clone(opts.Seed + int64(id))
		g.Go(func() error {
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				scores[i] = ev.Evaluate(positions[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
