package quad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glquad/internal/rule"
	"github.com/roach88/glquad/internal/testutil"
)

// drive runs s to completion with f, returning the number of value-producing steps.
func drive(t *testing.T, e *Engine[float64], s *Session[float64], f func(float64) float64, a, b float64) int {
	t.Helper()

	step, err := e.Advance(s, a, b, 0)
	require.NoError(t, err)

	values := 0
	for step.Continue {
		step, err = e.Advance(s, a, b, f(step.Next))
		require.NoError(t, err)
		values++
	}
	return values
}

func TestSession_ZeroValue(t *testing.T) {
	var s Session[float64]
	assert.Equal(t, PhaseNotStarted, s.Phase())
	assert.Equal(t, 0, s.StepIndex())
	_, ok := s.Pending()
	assert.False(t, ok)
	_, ok = s.Result()
	assert.False(t, ok)
}

func TestAdvance_FirstStep(t *testing.T) {
	e := newEngine(t, rule.Order8)
	var s Session[float64]

	step, err := e.Advance(&s, 2, 6, 12345)
	require.NoError(t, err)

	assert.True(t, step.Continue)
	assert.Equal(t, 4+2*e.Table().Abscissa(0), step.Next)
	assert.Equal(t, PhaseAwaitingValue, s.Phase())
	assert.Equal(t, 0, s.StepIndex())
	assert.Equal(t, rule.Order8, s.Order())

	pending, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, step.Next, pending)

	a, b := s.Bounds()
	assert.Equal(t, 2.0, a)
	assert.Equal(t, 6.0, b)

	cp := s.Checkpoint()
	assert.Zero(t, cp.Accumulator, "lastValue is ignored on the first call")
}

func TestAdvance_EquivalentToIntegrate(t *testing.T) {
	cases := append(testutil.Smooth(),
		testutil.Monomial(7, -2, 3),
		testutil.Constant(4),
		testutil.Poly([]float64{1, -2, 0.5, 3}, 0.1, 0.9),
	)

	for _, o := range rule.SupportedOrders() {
		e := newEngine(t, o)
		for _, in := range cases {
			var s Session[float64]
			drive(t, e, &s, in.F, in.A, in.B)

			got, ok := s.Result()
			require.True(t, ok)
			want := e.Integrate(in.F, in.A, in.B)
			assert.Equal(t, math.Float64bits(want), math.Float64bits(got),
				"order %d %s: reverse %v, direct %v", o, in.Name, got, want)
		}
	}
}

func TestAdvance_StepCount(t *testing.T) {
	for _, o := range rule.SupportedOrders() {
		e := newEngine(t, o)
		for _, iv := range [][2]float64{{0, 1}, {5, -5}, {3, 3}} {
			var s Session[float64]
			n := drive(t, e, &s, math.Cos, iv[0], iv[1])
			assert.Equal(t, int(o), n, "order %d bounds %v", o, iv)
			assert.Equal(t, PhaseDone, s.Phase())
			assert.Equal(t, int(o), s.StepIndex())
		}
	}
}

func TestAdvance_RequestsEachPointOnce(t *testing.T) {
	e := newEngine(t, rule.Order16)
	var s Session[float64]

	var requested []float64
	step, err := e.Advance(&s, -1, 4, 0)
	require.NoError(t, err)
	for step.Continue {
		requested = append(requested, step.Next)
		step, err = e.Advance(&s, -1, 4, step.Next)
		require.NoError(t, err)
	}
	assert.Equal(t, e.SamplePoints(-1, 4), requested)
}

func TestAdvance_DoneIsProtocolViolation(t *testing.T) {
	e := newEngine(t, rule.Order8)
	var s Session[float64]
	drive(t, e, &s, math.Exp, 0, 1)

	before, ok := s.Result()
	require.True(t, ok)
	cpBefore := s.Checkpoint()

	_, err := e.Advance(&s, 0, 1, 99)
	require.Error(t, err)
	assert.True(t, IsSessionDone(err))
	assert.True(t, IsProtocolError(err))
	assert.Contains(t, err.Error(), "SESSION_DONE")

	_, err = e.AdvanceValue(&s, 99)
	assert.True(t, IsSessionDone(err))

	after, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, before, after, "failed call must not change the result")
	assert.Equal(t, cpBefore, s.Checkpoint())
}

func TestAdvance_BoundsMismatch(t *testing.T) {
	e := newEngine(t, rule.Order8)
	var s Session[float64]

	step, err := e.Advance(&s, 0, 1, 0)
	require.NoError(t, err)
	step, err = e.Advance(&s, 0, 1, step.Next)
	require.NoError(t, err)
	cpBefore := s.Checkpoint()

	tests := []struct {
		name string
		a, b float64
	}{
		{"lower", -1, 1},
		{"upper", 0, 2},
		{"swapped", 1, 0},
		{"nan", math.NaN(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Advance(&s, tt.a, tt.b, step.Next)
			require.Error(t, err)
			assert.True(t, IsBoundsMismatch(err))
			assert.Equal(t, cpBefore, s.Checkpoint(), "failed call must not mutate the session")
		})
	}

	assert.Equal(t, 1, s.StepIndex())
}

func TestAdvance_NaNBoundsCanComplete(t *testing.T) {
	e := newEngine(t, rule.Order8)
	var s Session[float64]
	nan := math.NaN()

	n := drive(t, e, &s, math.Sin, nan, 1)
	assert.Equal(t, 8, n)
	v, ok := s.Result()
	require.True(t, ok)
	assert.True(t, math.IsNaN(v))
}

func TestAdvance_NaNValuePropagates(t *testing.T) {
	e := newEngine(t, rule.Order8)
	var s Session[float64]

	step, err := e.Advance(&s, 0, 1, 0)
	require.NoError(t, err)
	step, err = e.Advance(&s, 0, 1, math.NaN())
	require.NoError(t, err)
	for step.Continue {
		step, err = e.Advance(&s, 0, 1, 1)
		require.NoError(t, err)
	}
	v, ok := s.Result()
	require.True(t, ok)
	assert.True(t, math.IsNaN(v))
}

func TestAdvanceValue(t *testing.T) {
	e := newEngine(t, rule.Order16)

	var fresh Session[float64]
	_, err := e.AdvanceValue(&fresh, 1)
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
	assert.Contains(t, err.Error(), "SESSION_NOT_STARTED")
	assert.Equal(t, PhaseNotStarted, fresh.Phase())

	var s Session[float64]
	step, err := e.Advance(&s, -2, 2, 0)
	require.NoError(t, err)
	for step.Continue {
		step, err = e.AdvanceValue(&s, math.Exp(step.Next))
		require.NoError(t, err)
	}
	got, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, e.Integrate(math.Exp, -2, 2), got)
}

func TestAdvance_OrderMismatch(t *testing.T) {
	e8 := newEngine(t, rule.Order8)
	e64 := newEngine(t, rule.Order64)

	var s Session[float64]
	_, err := e8.Advance(&s, 0, 1, 0)
	require.NoError(t, err)

	_, err = e64.Advance(&s, 0, 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORDER_MISMATCH")
	assert.Equal(t, 0, s.StepIndex())
}

func TestAdvance_ReusableAfterReset(t *testing.T) {
	e := newEngine(t, rule.Order8)
	var s Session[float64]
	drive(t, e, &s, math.Exp, 0, 1)

	s = Session[float64]{}
	drive(t, e, &s, math.Sin, 0, 1)
	got, _ := s.Result()
	assert.Equal(t, e.Integrate(math.Sin, 0, 1), got)
}

func TestAdvance_Float32Equivalence(t *testing.T) {
	e, err := NewForOrder[float32](rule.Order32)
	require.NoError(t, err)
	f := func(x float32) float32 { return x*x*x - 2*x + 1 }

	var s Session[float32]
	step, err := e.Advance(&s, -1.5, 2.25, 0)
	require.NoError(t, err)
	for step.Continue {
		step, err = e.Advance(&s, -1.5, 2.25, f(step.Next))
		require.NoError(t, err)
	}
	got, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, math.Float32bits(e.Integrate(f, -1.5, 2.25)), math.Float32bits(got))
}

func TestPhase_String(t *testing.T) {
	for _, p := range []Phase{PhaseNotStarted, PhaseAwaitingValue, PhaseDone} {
		parsed, err := ParsePhase(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	assert.Equal(t, "phase(9)", Phase(9).String())
	_, err := ParsePhase("running")
	assert.Error(t, err)
}
