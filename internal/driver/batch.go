package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/glquad/internal/quad"
	"github.com/roach88/glquad/internal/rule"
)

// DriveBatch integrates over [a, b] by sampling every point concurrently, then
// feeding the values back through sequential Advance calls in table order.
//
// The sampler must be safe for concurrent use. The first sampler error cancels
// the remaining samples and no value is consumed.
func (d *Driver[T]) DriveBatch(ctx context.Context, a, b T, s Sampler[T]) (Report[T], error) {
	points := d.engine.SamplePoints(a, b)
	values := make([]T, len(points))

	g, gctx := errgroup.WithContext(ctx)
	if d.cfg.Concurrency > 0 {
		g.SetLimit(d.cfg.Concurrency)
	}
	for i, x := range points {
		i, x := i, x
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			y, err := s.Sample(gctx, x)
			if err != nil {
				return &SampleError{Index: i, X: float64(x), Err: err}
			}
			values[i] = y
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report[T]{}, err
	}

	var session quad.Session[T]
	if err := d.start(ctx, &session, a, b); err != nil {
		return Report[T]{}, err
	}

	var report Report[T]
	for i, y := range values {
		x, ok := session.Pending()
		if !ok || !samePoint(x, points[i]) {
			return report, fmt.Errorf("batch point %d: session requested %v, sampled %v", i, x, points[i])
		}
		if err := d.consume(ctx, &session, Event[T]{Index: i, X: x, Value: y}); err != nil {
			return report, err
		}
		report.Samples++
	}

	report.Result, _ = session.Result()
	return report, nil
}

// samePoint treats NaN as equal to itself; NaN bounds yield NaN points.
func samePoint[T rule.Float](x, y T) bool {
	return x == y || (x != x && y != y)
}
