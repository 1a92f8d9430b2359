package harness

import "github.com/roach88/glquad/internal/store"

// TraceEvent is one point the reverse-communication session requested and the
// value the harness fed back.
type TraceEvent struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Value float64 `json:"value"`
}

// Result holds the outcome of running a scenario.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	// Errors lists failed assertions.
	Errors []string `json:"errors,omitempty"`

	// Integrand is the display form of the compiled integrand.
	Integrand string `json:"integrand"`

	// Results of each evaluation path.
	Direct       float64 `json:"direct"`
	Reverse      float64 `json:"reverse"`
	Batch        float64 `json:"batch"`
	Checkpointed float64 `json:"checkpointed"`

	// Trace lists the reverse path's steps in order.
	Trace []TraceEvent `json:"trace"`

	// Replay is the store's verification of the checkpointed path.
	Replay store.ReplayResult `json:"-"`
}

// NewResult creates a passing result with an empty trace.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
