package store

import (
	"context"
	"fmt"
	"math"

	"github.com/roach88/glquad/internal/quad"
)

// ReplayResult is the outcome of re-running a session's sample log.
type ReplayResult struct {
	SessionID string
	Samples   int
	Stored    quad.Checkpoint[float64]
	Replayed  quad.Checkpoint[float64]

	// Divergence describes the first difference between the log and the stored
	// checkpoint. Empty when the replay reproduces the checkpoint exactly.
	Divergence string
}

// Matches reports whether the replay reproduced the stored checkpoint.
func (r ReplayResult) Matches() bool {
	return r.Divergence == ""
}

// ReplaySession rebuilds a session from its bounds and sample log through a
// fresh quad session and compares the result to the stored checkpoint bitwise.
//
// A log that requests different points than the ones recorded, skips a step,
// or ends in a different accumulator is reported through Divergence, not as an
// error. Errors are reserved for I/O failures and unreadable rows.
func (s *Store) ReplaySession(ctx context.Context, id string) (ReplayResult, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay session %s: %w", id, err)
	}
	samples, err := s.ReadSamples(ctx, id)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay session %s: %w", id, err)
	}

	result := ReplayResult{
		SessionID: id,
		Samples:   len(samples),
		Stored:    sess.Checkpoint,
	}

	engine, err := quad.NewForOrder[float64](sess.Checkpoint.Order)
	if err != nil {
		return result, fmt.Errorf("replay session %s: %w", id, err)
	}

	var replay quad.Session[float64]
	if _, err := engine.Advance(&replay, sess.Checkpoint.A, sess.Checkpoint.B, 0); err != nil {
		return result, fmt.Errorf("replay session %s: %w", id, err)
	}

	for _, ev := range samples {
		x, ok := replay.Pending()
		switch {
		case !ok:
			result.Divergence = fmt.Sprintf("sample %d recorded after the session finished", ev.Index)
		case ev.Index != replay.StepIndex():
			result.Divergence = fmt.Sprintf("sample %d recorded where step %d was expected", ev.Index, replay.StepIndex())
		case !sameBits(x, ev.X):
			result.Divergence = fmt.Sprintf("step %d: session requested x=%v, log has x=%v", ev.Index, x, ev.X)
		}
		if result.Divergence != "" {
			result.Replayed = replay.Checkpoint()
			return result, nil
		}
		if _, err := engine.AdvanceValue(&replay, ev.Value); err != nil {
			return result, fmt.Errorf("replay session %s: step %d: %w", id, ev.Index, err)
		}
	}

	result.Replayed = replay.Checkpoint()
	result.Divergence = compareCheckpoints(result.Stored, result.Replayed)
	return result, nil
}

// compareCheckpoints returns a description of the first differing field, or "".
func compareCheckpoints(stored, replayed quad.Checkpoint[float64]) string {
	switch {
	case stored.Phase != replayed.Phase:
		return fmt.Sprintf("phase: stored %s, replayed %s", stored.Phase, replayed.Phase)
	case stored.StepIndex != replayed.StepIndex:
		return fmt.Sprintf("step index: stored %d, replayed %d", stored.StepIndex, replayed.StepIndex)
	case !sameBits(stored.Pending, replayed.Pending):
		return fmt.Sprintf("pending: stored %v, replayed %v", stored.Pending, replayed.Pending)
	case !sameBits(stored.Accumulator, replayed.Accumulator):
		return fmt.Sprintf("accumulator: stored %v, replayed %v", stored.Accumulator, replayed.Accumulator)
	}
	return ""
}

func sameBits(x, y float64) bool {
	return math.Float64bits(x) == math.Float64bits(y)
}
