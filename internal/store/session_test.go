package store

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glquad/internal/driver"
	"github.com/roach88/glquad/internal/quad"
	"github.com/roach88/glquad/internal/rule"
	"github.com/roach88/glquad/internal/testutil"
)

func TestCreateSession_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	cp := startedCheckpoint(t, rule.Order8, -1, 3)

	created, err := s.CreateSession(bg(), "s-1", "unit interval", cp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.CreatedSeq)
	assert.Len(t, created.Digest, 64)

	got, err := s.GetSession(bg(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateSession_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	cp := startedCheckpoint(t, rule.Order8, 0, 1)

	_, err := s.CreateSession(bg(), "dup", "", cp)
	require.NoError(t, err)
	_, err = s.CreateSession(bg(), "dup", "", cp)
	assert.Error(t, err)
}

func TestCreateSession_FloatBitsSurvive(t *testing.T) {
	s := createTestStore(t)
	negZero := math.Copysign(0, -1)

	cp := startedCheckpoint(t, rule.Order8, negZero, math.Inf(1))
	_, err := s.CreateSession(bg(), "bits", "", cp)
	require.NoError(t, err)

	got, err := s.LoadCheckpoint(bg(), "bits")
	require.NoError(t, err)
	assert.Equal(t, math.Float64bits(negZero), math.Float64bits(got.A))
	assert.True(t, math.IsInf(got.B, 1))
	assert.Equal(t, math.Float64bits(cp.Mid), math.Float64bits(got.Mid))
	assert.Equal(t, math.Float64bits(cp.Half), math.Float64bits(got.Half))
	assert.Equal(t, math.Float64bits(cp.Pending), math.Float64bits(got.Pending))
}

func TestGetSession_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.GetSession(bg(), "missing")
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestGetSession_DetectsTampering(t *testing.T) {
	s := createTestStore(t)
	cp := startedCheckpoint(t, rule.Order16, 0, 2)
	_, err := s.CreateSession(bg(), "s-1", "", cp)
	require.NoError(t, err)

	_, err = s.db.Exec(`UPDATE sessions SET accumulator = ? WHERE id = ?`, toBits(42), "s-1")
	require.NoError(t, err)

	_, err = s.GetSession(bg(), "s-1")
	var ie *IntegrityError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "s-1", ie.SessionID)
	assert.NotEqual(t, ie.Stored, ie.Computed)
}

func TestSaveStep_AppendsAndUpdates(t *testing.T) {
	s := createTestStore(t)
	e, err := quad.NewForOrder[float64](rule.Order8)
	require.NoError(t, err)

	var sess quad.Session[float64]
	_, err = e.Advance(&sess, 0, 1, 0)
	require.NoError(t, err)
	_, err = s.CreateSession(bg(), "s-1", "", sess.Checkpoint())
	require.NoError(t, err)

	x, _ := sess.Pending()
	_, err = e.AdvanceValue(&sess, math.Exp(x))
	require.NoError(t, err)

	ev := driver.Event[float64]{Index: 0, X: x, Value: math.Exp(x)}
	inserted, err := s.SaveStep(bg(), "s-1", ev, sess.Checkpoint())
	require.NoError(t, err)
	assert.True(t, inserted)

	got, err := s.GetSession(bg(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, sess.Checkpoint(), got.Checkpoint)
	assert.Equal(t, int64(2), got.UpdatedSeq)
	assert.Equal(t, int64(1), got.CreatedSeq)

	samples, err := s.ReadSamples(bg(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, []driver.Event[float64]{ev}, samples)
}

func TestSaveStep_Idempotent(t *testing.T) {
	s := createTestStore(t)
	cp := startedCheckpoint(t, rule.Order8, 0, 1)
	_, err := s.CreateSession(bg(), "s-1", "", cp)
	require.NoError(t, err)

	next := cp
	next.StepIndex = 1
	next.Accumulator = 0.5
	ev := driver.Event[float64]{Index: 0, X: cp.Pending, Value: 1}

	inserted, err := s.SaveStep(bg(), "s-1", ev, next)
	require.NoError(t, err)
	assert.True(t, inserted)

	again := next
	again.Accumulator = 99
	inserted, err = s.SaveStep(bg(), "s-1", ev, again)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := s.LoadCheckpoint(bg(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Accumulator)
}

func TestSaveStep_RejectsNonConsecutiveCheckpoint(t *testing.T) {
	s := createTestStore(t)
	cp := startedCheckpoint(t, rule.Order8, 0, 1)
	_, err := s.CreateSession(bg(), "s-1", "", cp)
	require.NoError(t, err)

	ev := driver.Event[float64]{Index: 0, X: cp.Pending, Value: 1}
	_, err = s.SaveStep(bg(), "s-1", ev, cp)
	assert.ErrorContains(t, err, "does not follow")
}

func TestSaveStep_UnknownSession(t *testing.T) {
	s := createTestStore(t)
	cp := startedCheckpoint(t, rule.Order8, 0, 1)
	cp.StepIndex = 1

	_, err := s.SaveStep(bg(), "ghost", driver.Event[float64]{Index: 0}, cp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestListSessions_CreationOrder(t *testing.T) {
	s := createTestStore(t)

	empty, err := s.ListSessions(bg())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, id := range []string{"zeta", "alpha", "mid"} {
		_, err := s.CreateSession(bg(), id, id, startedCheckpoint(t, rule.Order8, 0, 1))
		require.NoError(t, err)
	}

	list, err := s.ListSessions(bg())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "zeta", list[0].ID)
	assert.Equal(t, "alpha", list[1].ID)
	assert.Equal(t, "mid", list[2].ID)
}

func TestDeleteSession_CascadesSamples(t *testing.T) {
	s := createTestStore(t)
	ids := testutil.NewFixedIDGenerator("doomed")
	d := driver.New(quad.New(rule.MustNew[float64](rule.Order8)), driver.Config[float64]{
		Checkpointer: NewRecorder(s, ids, ""),
	})
	_, err := d.Drive(bg(), 0, 1, driver.Pure(math.Sin))
	require.NoError(t, err)

	require.NoError(t, s.DeleteSession(bg(), "doomed"))

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM samples`).Scan(&n))
	assert.Zero(t, n)

	assert.Equal(t, sql.ErrNoRows, s.DeleteSession(bg(), "doomed"))
}

func TestDigest_NormalizesLabels(t *testing.T) {
	cp := startedCheckpoint(t, rule.Order8, 0, 1)

	composed, err := Digest("caf\u00e9", cp)
	require.NoError(t, err)
	decomposed, err := Digest("cafe\u0301", cp)
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)

	other, err := Digest("cafe", cp)
	require.NoError(t, err)
	assert.NotEqual(t, composed, other)
}

func TestDigest_SensitiveToEveryBit(t *testing.T) {
	cp := startedCheckpoint(t, rule.Order8, 0, 1)
	base, err := Digest("", cp)
	require.NoError(t, err)

	flipped := cp
	flipped.Accumulator = math.Float64frombits(math.Float64bits(cp.Accumulator) ^ 1)
	changed, err := Digest("", flipped)
	require.NoError(t, err)
	assert.NotEqual(t, base, changed)
}

func TestMarshalCanonical(t *testing.T) {
	got, err := marshalCanonical(map[string]any{
		"b":     int64(2),
		"a":     "<x & y>",
		"inner": map[string]any{"z": "1", "y": int64(-3)},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":"<x & y>","b":2,"inner":{"y":-3,"z":"1"}}`, string(got))

	_, err = marshalCanonical(map[string]any{"f": 1.5})
	assert.ErrorContains(t, err, "floats are forbidden")
}

func TestRecorder_StartedTwice(t *testing.T) {
	s := createTestStore(t)
	r := NewRecorder(s, testutil.NewFixedIDGenerator("only"), "")

	cp := startedCheckpoint(t, rule.Order8, 0, 1)
	require.NoError(t, r.Started(context.Background(), cp))
	assert.Equal(t, "only", r.ID())
	assert.ErrorContains(t, r.Started(context.Background(), cp), "already bound")
}

func TestRecorder_DefaultsToUUIDv7(t *testing.T) {
	s := createTestStore(t)
	r := NewRecorder(s, nil, "")
	require.NoError(t, r.Started(bg(), startedCheckpoint(t, rule.Order8, 0, 1)))
	assert.Len(t, r.ID(), 36)
	assert.Equal(t, byte('7'), r.ID()[14])
}
