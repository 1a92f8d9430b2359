package store

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glquad/internal/driver"
	"github.com/roach88/glquad/internal/quad"
	"github.com/roach88/glquad/internal/rule"
	"github.com/roach88/glquad/internal/testutil"
)

// recordDrive drives in over a fresh recorder and returns the session ID.
func recordDrive(t *testing.T, s *Store, order rule.Order, in testutil.Integral) (string, float64) {
	t.Helper()
	rec := NewRecorder(s, testutil.NewFixedIDGenerator("s-1"), in.Name)
	d := driver.New(quad.New(rule.MustNew[float64](order)), driver.Config[float64]{Checkpointer: rec})

	report, err := d.Drive(context.Background(), in.A, in.B, driver.Pure(in.F))
	require.NoError(t, err)
	return rec.ID(), report.Result
}

func TestReplaySession_CompletedDriveMatches(t *testing.T) {
	s := createTestStore(t)
	in := testutil.Runge()
	id, result := recordDrive(t, s, rule.Order32, in)

	replay, err := s.ReplaySession(bg(), id)
	require.NoError(t, err)
	assert.True(t, replay.Matches(), replay.Divergence)
	assert.Equal(t, 32, replay.Samples)
	assert.Equal(t, quad.PhaseDone, replay.Replayed.Phase)
	assert.Equal(t, math.Float64bits(result), math.Float64bits(replay.Replayed.Accumulator))
}

func TestReplaySession_DetectsTamperedValue(t *testing.T) {
	s := createTestStore(t)
	id, _ := recordDrive(t, s, rule.Order8, testutil.Exp())

	_, err := s.db.Exec(`UPDATE samples SET value = ? WHERE session_id = ? AND step_index = 3`, toBits(123), id)
	require.NoError(t, err)

	replay, err := s.ReplaySession(bg(), id)
	require.NoError(t, err)
	assert.False(t, replay.Matches())
	assert.Contains(t, replay.Divergence, "accumulator")
}

func TestReplaySession_DetectsTamperedPoint(t *testing.T) {
	s := createTestStore(t)
	id, _ := recordDrive(t, s, rule.Order8, testutil.Sin())

	_, err := s.db.Exec(`UPDATE samples SET x = ? WHERE session_id = ? AND step_index = 5`, toBits(0.5), id)
	require.NoError(t, err)

	replay, err := s.ReplaySession(bg(), id)
	require.NoError(t, err)
	assert.False(t, replay.Matches())
	assert.Contains(t, replay.Divergence, "step 5")
	assert.Equal(t, 5, replay.Replayed.StepIndex)
}

func TestReplaySession_DetectsMissingStep(t *testing.T) {
	s := createTestStore(t)
	id, _ := recordDrive(t, s, rule.Order8, testutil.Sin())

	_, err := s.db.Exec(`DELETE FROM samples WHERE session_id = ? AND step_index = 2`, id)
	require.NoError(t, err)

	replay, err := s.ReplaySession(bg(), id)
	require.NoError(t, err)
	assert.Contains(t, replay.Divergence, "sample 3 recorded where step 2 was expected")
}

func TestReplaySession_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReplaySession(bg(), "missing")
	assert.Error(t, err)
}

// Suspend mid-drive, restore from the store in a new driver, finish, and
// check the result and the log.
func TestResumeFromStore(t *testing.T) {
	s := createTestStore(t)
	in := testutil.Exp()
	engine := quad.New(rule.MustNew[float64](rule.Order16))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := NewRecorder(s, testutil.NewFixedIDGenerator("suspended"), "exp")
	calls := 0
	interrupted := driver.SamplerFunc[float64](func(_ context.Context, x float64) (float64, error) {
		calls++
		if calls == 6 {
			cancel()
		}
		return in.F(x), nil
	})
	_, err := driver.New(engine, driver.Config[float64]{Checkpointer: rec}).Drive(ctx, in.A, in.B, interrupted)
	require.ErrorIs(t, err, context.Canceled)

	cp, err := s.LoadCheckpoint(bg(), "suspended")
	require.NoError(t, err)
	assert.Equal(t, quad.PhaseAwaitingValue, cp.Phase)
	assert.Equal(t, 6, cp.StepIndex)

	session, err := engine.Restore(cp)
	require.NoError(t, err)

	d := driver.New(engine, driver.Config[float64]{Checkpointer: ResumeRecorder(s, "suspended")})
	report, err := d.Resume(bg(), session, driver.Pure(in.F))
	require.NoError(t, err)
	assert.Equal(t, 10, report.Samples)

	want := engine.Integrate(in.F, in.A, in.B)
	assert.Equal(t, math.Float64bits(want), math.Float64bits(report.Result))

	replay, err := s.ReplaySession(bg(), "suspended")
	require.NoError(t, err)
	assert.True(t, replay.Matches(), replay.Divergence)
	assert.Equal(t, 16, replay.Samples)
}
