package driver

import (
	"context"

	"github.com/roach88/glquad/internal/rule"
)

// Sampler evaluates the integrand at one point.
type Sampler[T rule.Float] interface {
	Sample(ctx context.Context, x T) (T, error)
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc[T rule.Float] func(ctx context.Context, x T) (T, error)

// Sample implements Sampler.
func (f SamplerFunc[T]) Sample(ctx context.Context, x T) (T, error) {
	return f(ctx, x)
}

// Pure wraps an infallible function as a Sampler.
func Pure[T rule.Float](f func(T) T) Sampler[T] {
	return SamplerFunc[T](func(_ context.Context, x T) (T, error) {
		return f(x), nil
	})
}
