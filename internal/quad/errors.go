package quad

import (
	"errors"
	"fmt"
)

// ProtocolError reports misuse of the reverse-communication protocol.
//
// A ProtocolError is fatal to the session it concerns: the session is left
// exactly as it was before the failing call, and the caller must discard it and
// start over. The engine never attempts recovery and does not enforce the
// discard either; a later call on the same session is not rejected.
type ProtocolError struct {
	// Code identifies the violation.
	Code ProtocolErrorCode

	// Message is a human-readable description.
	Message string

	// Phase is the session phase at the time of the call.
	Phase Phase

	// StepIndex is the session's next table row at the time of the call.
	StepIndex int
}

// ProtocolErrorCode categorizes protocol violations.
type ProtocolErrorCode string

const (
	// ErrCodeSessionDone indicates Advance was called on a finished session.
	ErrCodeSessionDone ProtocolErrorCode = "SESSION_DONE"

	// ErrCodeBoundsMismatch indicates later bounds differ from the initial ones.
	ErrCodeBoundsMismatch ProtocolErrorCode = "BOUNDS_MISMATCH"

	// ErrCodeNotStarted indicates AdvanceValue was called before the session had bounds.
	ErrCodeNotStarted ProtocolErrorCode = "SESSION_NOT_STARTED"

	// ErrCodeOrderMismatch indicates the session was started by an engine of another order.
	ErrCodeOrderMismatch ProtocolErrorCode = "ORDER_MISMATCH"

	// ErrCodeInvalidCheckpoint indicates a checkpoint that no valid session could produce.
	ErrCodeInvalidCheckpoint ProtocolErrorCode = "INVALID_CHECKPOINT"
)

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s (phase=%s, step=%d)", e.Code, e.Message, e.Phase, e.StepIndex)
}

// IsProtocolError returns true if err is any protocol violation.
// Uses errors.As to handle wrapped errors.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// IsSessionDone returns true if err reports a call on a finished session.
func IsSessionDone(err error) bool {
	return hasCode(err, ErrCodeSessionDone)
}

// IsBoundsMismatch returns true if err reports bounds that changed mid-session.
func IsBoundsMismatch(err error) bool {
	return hasCode(err, ErrCodeBoundsMismatch)
}

// IsInvalidCheckpoint returns true if err reports a rejected checkpoint.
func IsInvalidCheckpoint(err error) bool {
	return hasCode(err, ErrCodeInvalidCheckpoint)
}

func hasCode(err error, code ProtocolErrorCode) bool {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

func newProtocolError(code ProtocolErrorCode, phase Phase, step int, format string, args ...any) *ProtocolError {
	return &ProtocolError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Phase:     phase,
		StepIndex: step,
	}
}
