package sim

import (
	"context"
	"sync"

	"github.com/san-kum/buildatom/internal/geom"
)

// Sweep traces the same move at several speeds concurrently. Each trace owns
// its own particle and world.
func Sweep(ctx context.Context, from, to geom.Vec2, speeds []float64, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(speeds))
	errs := make([]error, len(speeds))

	var wg sync.WaitGroup
	for i, speed := range speeds {
		wg.Add(1)
		go func(idx int, speed float64) {
			defer wg.Done()
			results[idx], errs[idx] = Trace(ctx, from, to, speed, cfg)
		}(i, speed)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
