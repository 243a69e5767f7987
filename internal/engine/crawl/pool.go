// internal/engine/crawl/pool.go
package crawl

import (
	"context"
	"errors"
	"sync"
)

// forEach runs fn for every index in [0, n) on at most workers goroutines.
// With workers <= 1 the calls run sequentially on the caller's goroutine.
// The first failure cancels the context passed to the remaining calls; the
// error returned is the one with the lowest index, so results do not depend
// on scheduling.
func forEach(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}
	if workers > n {
		workers = n
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	errs := make([]error, n)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				if err := fn(ctx, i); err != nil {
					errs[i] = err
					cancel()
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Prefer a real failure over the cancellations it caused
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	if err := parent.Err(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
