package beam

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SampleLine evaluates a at (x, y) for every y in ys using up to workers
// goroutines. workers <= 0 uses GOMAXPROCS. The context is checked before
// every point; a cancelled context stops the sampling and returns its error.
func SampleLine(ctx context.Context, a Amplitude, x float64, ys []float64, workers int) ([]complex128, error) {
	out := make([]complex128, len(ys))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(workers))
	for i, y := range ys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = a.At(x, y)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func workerCount(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}
