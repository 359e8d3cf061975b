package render

import (
	"context"
	"fmt"
	"sync"
)

// Batch renders a set of output indices concurrently. Each worker draws on
// its own Renderer since a Surface holds per-frame state; the factory must
// return a fresh one per call. Batches are for save-to-disk runs: visible
// pacing is the sequential Driver's job.
type Batch struct {
	factory func() *Renderer
	workers int
}

func NewBatch(factory func() *Renderer, workers int) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{factory: factory, workers: workers}
}

// Run draws every index, up to the configured number in flight at once.
// The first failure is returned after all in-flight frames finish.
func (b *Batch) Run(ctx context.Context, fieldName string, steps []int) error {
	if len(steps) == 0 {
		return fmt.Errorf("render: no output indices to draw")
	}

	errs := make([]error, len(steps))
	sem := make(chan struct{}, b.workers)

	var wg sync.WaitGroup
	for n, step := range steps {
		if err := ctx.Err(); err != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(n, step int) {
			defer wg.Done()
			defer func() { <-sem }()

			r := b.factory()
			r.Surface().Visible = false
			if _, err := r.Render(fieldName, step); err != nil {
				errs[n] = fmt.Errorf("render: index %d: %w", step, err)
			}
		}(n, step)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
