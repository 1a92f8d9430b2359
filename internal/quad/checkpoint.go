package quad

import "github.com/roach88/glquad/internal/rule"

// Checkpoint is an exported snapshot of a Session, used to suspend an evaluation
// and resume it later, possibly in another process.
type Checkpoint[T rule.Float] struct {
	Order       rule.Order `json:"order"`
	Phase       Phase      `json:"phase"`
	StepIndex   int        `json:"step_index"`
	A           T          `json:"a"`
	B           T          `json:"b"`
	Mid         T          `json:"mid"`
	Half        T          `json:"half"`
	Pending     T          `json:"pending"`
	Accumulator T          `json:"accumulator"`
}

// Checkpoint captures the session's complete state.
func (s *Session[T]) Checkpoint() Checkpoint[T] {
	return Checkpoint[T]{
		Order:       s.order,
		Phase:       s.phase,
		StepIndex:   s.step,
		A:           s.a,
		B:           s.b,
		Mid:         s.mid,
		Half:        s.half,
		Pending:     s.pending,
		Accumulator: s.acc,
	}
}

// Restore rebuilds a session from cp.
//
// The checkpoint must be one this engine could have produced: same order, a
// step index consistent with the phase, and interval data and pending point that
// match what Advance would have computed from the bounds. Anything else returns
// an INVALID_CHECKPOINT ProtocolError.
func (e *Engine[T]) Restore(cp Checkpoint[T]) (*Session[T], error) {
	invalid := func(format string, args ...any) (*Session[T], error) {
		return nil, newProtocolError(ErrCodeInvalidCheckpoint, cp.Phase, cp.StepIndex, format, args...)
	}

	if cp.Phase == PhaseNotStarted {
		if cp.StepIndex != 0 {
			return invalid("fresh session with step index %d", cp.StepIndex)
		}
		return &Session[T]{}, nil
	}

	if cp.Order != e.table.Order() {
		return invalid("checkpoint order %d does not match engine order %d", int(cp.Order), int(e.table.Order()))
	}

	n := e.table.Len()
	switch cp.Phase {
	case PhaseAwaitingValue:
		if cp.StepIndex < 0 || cp.StepIndex >= n {
			return invalid("step index %d outside [0, %d)", cp.StepIndex, n)
		}
	case PhaseDone:
		if cp.StepIndex != n {
			return invalid("done session with step index %d, want %d", cp.StepIndex, n)
		}
	default:
		return invalid("unknown phase %d", int(cp.Phase))
	}

	mid, half := affine(cp.A, cp.B)
	if !sameValue(mid, cp.Mid) || !sameValue(half, cp.Half) {
		return invalid("interval data does not match bounds [%v, %v]", cp.A, cp.B)
	}

	s := &Session[T]{
		phase:   cp.Phase,
		order:   cp.Order,
		step:    cp.StepIndex,
		a:       cp.A,
		b:       cp.B,
		mid:     mid,
		half:    half,
		pending: cp.Pending,
		acc:     cp.Accumulator,
	}
	if s.phase == PhaseAwaitingValue && !sameValue(e.point(s, s.step), cp.Pending) {
		return invalid("pending point %v is not row %d of [%v, %v]", cp.Pending, cp.StepIndex, cp.A, cp.B)
	}
	return s, nil
}
