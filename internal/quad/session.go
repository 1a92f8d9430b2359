package quad

import (
	"fmt"

	"github.com/roach88/glquad/internal/rule"
)

// Phase is the reverse-communication state of a Session.
type Phase int

const (
	// PhaseNotStarted is the zero value: no bounds received yet.
	PhaseNotStarted Phase = iota
	// PhaseAwaitingValue means Pending holds the point the driver must evaluate.
	PhaseAwaitingValue
	// PhaseDone means every row was accumulated and Result is final.
	PhaseDone
)

var phaseNames = map[Phase]string{
	PhaseNotStarted:    "not_started",
	PhaseAwaitingValue: "awaiting_value",
	PhaseDone:          "done",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown session phase %q", s)
}

// Session is the explicit state of one reverse-communication evaluation.
//
// The zero value is a fresh session in PhaseNotStarted. A Session is owned by the
// driving caller; the engine only mutates it during Advance and never keeps a
// reference. INVARIANT: acc holds the weighted sum of rows [0, step) only.
type Session[T rule.Float] struct {
	phase   Phase
	order   rule.Order
	step    int
	a, b    T
	mid     T
	half    T
	pending T
	acc     T
}

// Step is the outcome of one Advance call.
// When Continue is true, Next is the point whose value the following call must supply.
type Step[T rule.Float] struct {
	Continue bool
	Next     T
}

// Phase returns the session's current phase.
func (s *Session[T]) Phase() Phase {
	return s.phase
}

// StepIndex returns the next table row to be sampled (0..Order).
func (s *Session[T]) StepIndex() int {
	return s.step
}

// Order returns the order of the engine that started the session, or 0 if not started.
func (s *Session[T]) Order() rule.Order {
	return s.order
}

// Bounds returns the interval the session was started with.
func (s *Session[T]) Bounds() (a, b T) {
	return s.a, s.b
}

// Pending returns the point awaiting a value. ok is false outside PhaseAwaitingValue.
func (s *Session[T]) Pending() (x T, ok bool) {
	if s.phase != PhaseAwaitingValue {
		return 0, false
	}
	return s.pending, true
}

// Result returns the integral once the session is done.
func (s *Session[T]) Result() (v T, ok bool) {
	if s.phase != PhaseDone {
		return 0, false
	}
	return s.acc, true
}

// Advance performs one protocol step on s.
//
// On a fresh session the bounds initialize the evaluation, last is ignored, and
// the first sample point is returned. While awaiting a value, last must be the
// integrand at the previously returned point and a, b must repeat the initial
// bounds. After the final row the result is scaled and Continue is false.
// Advancing a done session returns a SESSION_DONE ProtocolError. On any error
// the session is left untouched.
func (e *Engine[T]) Advance(s *Session[T], a, b, last T) (Step[T], error) {
	switch s.phase {
	case PhaseNotStarted:
		return e.start(s, a, b), nil

	case PhaseAwaitingValue:
		if err := e.checkOrder(s); err != nil {
			return Step[T]{}, err
		}
		if !sameValue(a, s.a) || !sameValue(b, s.b) {
			return Step[T]{}, newProtocolError(ErrCodeBoundsMismatch, s.phase, s.step,
				"bounds [%v, %v] differ from session bounds [%v, %v]", a, b, s.a, s.b)
		}
		return e.accept(s, last), nil

	case PhaseDone:
		return Step[T]{}, newProtocolError(ErrCodeSessionDone, s.phase, s.step,
			"session already produced its result")

	default:
		return Step[T]{}, newProtocolError(ErrCodeInvalidCheckpoint, s.phase, s.step,
			"session is in unknown phase")
	}
}

// AdvanceValue supplies the value for the pending point without repeating the bounds.
// It fails with SESSION_NOT_STARTED on a fresh session and SESSION_DONE on a finished one.
func (e *Engine[T]) AdvanceValue(s *Session[T], last T) (Step[T], error) {
	switch s.phase {
	case PhaseNotStarted:
		return Step[T]{}, newProtocolError(ErrCodeNotStarted, s.phase, s.step,
			"session needs bounds before values")
	case PhaseAwaitingValue:
		if err := e.checkOrder(s); err != nil {
			return Step[T]{}, err
		}
		return e.accept(s, last), nil
	default:
		return e.Advance(s, s.a, s.b, last)
	}
}

// start performs NotStarted -> AwaitingValue.
func (e *Engine[T]) start(s *Session[T], a, b T) Step[T] {
	*s = Session[T]{
		phase: PhaseAwaitingValue,
		order: e.table.Order(),
		a:     a,
		b:     b,
	}
	s.mid, s.half = affine(a, b)
	s.pending = e.point(s, 0)
	return Step[T]{Continue: true, Next: s.pending}
}

// accept folds last into the accumulator and moves to the next row or to Done.
func (e *Engine[T]) accept(s *Session[T], last T) Step[T] {
	s.acc += T(e.table.Weight(s.step) * last)
	s.step++

	if s.step < e.table.Len() {
		s.pending = e.point(s, s.step)
		return Step[T]{Continue: true, Next: s.pending}
	}

	s.acc = s.acc * s.half
	s.pending = 0
	s.phase = PhaseDone
	return Step[T]{}
}

func (e *Engine[T]) point(s *Session[T], i int) T {
	return s.mid + T(s.half*e.table.Abscissa(i))
}

func (e *Engine[T]) checkOrder(s *Session[T]) error {
	if s.order != e.table.Order() {
		return newProtocolError(ErrCodeOrderMismatch, s.phase, s.step,
			"session of order %d advanced by engine of order %d", int(s.order), int(e.table.Order()))
	}
	return nil
}

// sameValue compares bounds by value; NaN matches NaN so a NaN-bounded session
// can still be driven to completion.
func sameValue[T rule.Float](x, y T) bool {
	return x == y || (x != x && y != y)
}
