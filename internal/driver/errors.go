package driver

import (
	"errors"
	"fmt"
)

// SampleError wraps a sampler failure with the step it happened at.
type SampleError struct {
	Index int
	X     float64
	Err   error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %d at x=%v: %v", e.Index, e.X, e.Err)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}

// IsSampleError returns true if err came from the sampler rather than the protocol.
func IsSampleError(err error) bool {
	var se *SampleError
	return errors.As(err, &se)
}
