package quad

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glquad/internal/rule"
)

func TestCheckpoint_SuspendAndResume(t *testing.T) {
	e := newEngine(t, rule.Order32)
	f := func(x float64) float64 { return math.Sin(x) * math.Exp(-x) }

	var s Session[float64]
	step, err := e.Advance(&s, 0, 5, 0)
	require.NoError(t, err)
	for i := 0; i < 11; i++ {
		step, err = e.Advance(&s, 0, 5, f(step.Next))
		require.NoError(t, err)
	}

	// Round trip through JSON as a process boundary would.
	data, err := json.Marshal(s.Checkpoint())
	require.NoError(t, err)
	var cp Checkpoint[float64]
	require.NoError(t, json.Unmarshal(data, &cp))

	resumed, err := e.Restore(cp)
	require.NoError(t, err)
	assert.Equal(t, 11, resumed.StepIndex())

	pending, ok := resumed.Pending()
	require.True(t, ok)
	assert.Equal(t, step.Next, pending)

	for step.Continue {
		step, err = e.AdvanceValue(resumed, f(step.Next))
		require.NoError(t, err)
	}
	got, ok := resumed.Result()
	require.True(t, ok)
	assert.Equal(t, e.Integrate(f, 0, 5), got)
}

func TestCheckpoint_FreshAndDone(t *testing.T) {
	e := newEngine(t, rule.Order8)

	var fresh Session[float64]
	restored, err := e.Restore(fresh.Checkpoint())
	require.NoError(t, err)
	assert.Equal(t, PhaseNotStarted, restored.Phase())

	var s Session[float64]
	drive(t, e, &s, math.Exp, -1, 1)
	restored, err = e.Restore(s.Checkpoint())
	require.NoError(t, err)
	want, _ := s.Result()
	got, ok := restored.Result()
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, err = e.Advance(restored, -1, 1, 0)
	assert.True(t, IsSessionDone(err))
}

func TestRestore_RejectsInvalid(t *testing.T) {
	e := newEngine(t, rule.Order8)

	var s Session[float64]
	step, err := e.Advance(&s, 1, 2, 0)
	require.NoError(t, err)
	_, err = e.Advance(&s, 1, 2, step.Next)
	require.NoError(t, err)
	valid := s.Checkpoint()

	tests := []struct {
		name   string
		mutate func(cp *Checkpoint[float64])
	}{
		{"wrong order", func(cp *Checkpoint[float64]) { cp.Order = rule.Order16 }},
		{"negative step", func(cp *Checkpoint[float64]) { cp.StepIndex = -1 }},
		{"step past end", func(cp *Checkpoint[float64]) { cp.StepIndex = 8 }},
		{"done with short step", func(cp *Checkpoint[float64]) { cp.Phase = PhaseDone }},
		{"fresh with step", func(cp *Checkpoint[float64]) { cp.Phase = PhaseNotStarted }},
		{"unknown phase", func(cp *Checkpoint[float64]) { cp.Phase = Phase(7) }},
		{"tampered midpoint", func(cp *Checkpoint[float64]) { cp.Mid = 1.25 }},
		{"tampered pending", func(cp *Checkpoint[float64]) { cp.Pending += 1e-9 }},
		{"pending from other row", func(cp *Checkpoint[float64]) { cp.StepIndex = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := valid
			tt.mutate(&cp)
			restored, err := e.Restore(cp)
			require.Error(t, err)
			assert.Nil(t, restored)
			assert.True(t, IsInvalidCheckpoint(err), "got %v", err)
		})
	}

	restored, err := e.Restore(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, restored.Checkpoint())
}
