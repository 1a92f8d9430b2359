package integrand

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpr_Evaluate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		expr string
		x    float64
		want float64
	}{
		{"x * x", 3, 9},
		{"2*x + 1", -1.5, -2},
		{"1", 42, 1},
		{"math.Sin(x)", 0.5, math.Sin(0.5)},
		{"math.Exp(-x*x) * math.Cos(3*x)", 0.25, math.Exp(-0.0625) * math.Cos(0.75)},
		{"math.Pow(x, 3) / 3", 2, 8.0 / 3},
		{"math.Sqrt(x)", 2, math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, err := CompileExpr(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, e.String())

			got, err := e.Sample(ctx, tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestExpr_CompileErrors(t *testing.T) {
	for _, src := range []string{"", "   ", "x +", "y * 2"} {
		t.Run(src, func(t *testing.T) {
			_, err := CompileExpr(src)
			assert.Error(t, err)
		})
	}
}

func TestExpr_CompileErrorPosition(t *testing.T) {
	_, err := CompileExpr("x * y")
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	if ce.Pos.IsValid() {
		assert.Equal(t, 5, ce.Pos.Column()-len(resultPrefix))
		assert.Contains(t, err.Error(), "expr:5:")
	}
}

func TestExpr_SampleErrors(t *testing.T) {
	e, err := CompileExpr("1 / x")
	require.NoError(t, err)

	_, err = e.Sample(context.Background(), 0)
	require.Error(t, err, "division by zero")
	assert.Contains(t, err.Error(), "x=0")

	y, err := e.Sample(context.Background(), 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, y, 1e-15)
}

func TestExpr_ContextCancelled(t *testing.T) {
	e, err := CompileExpr("x")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Sample(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExpr_ConcurrentSample(t *testing.T) {
	e, err := CompileExpr("x * 2")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			y, err := e.Sample(context.Background(), float64(i))
			assert.NoError(t, err)
			assert.Equal(t, float64(2*i), y)
		}(i)
	}
	wg.Wait()
}
