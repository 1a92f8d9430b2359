package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/glquad/internal/driver"
	"github.com/roach88/glquad/internal/integrand"
	"github.com/roach88/glquad/internal/quad"
	"github.com/roach88/glquad/internal/rule"
	"github.com/roach88/glquad/internal/store"
	"github.com/roach88/glquad/internal/testutil"
)

// BatchConcurrency bounds parallel sampling on the batch path.
const BatchConcurrency = 4

// Harness is the scenario execution context.
// It runs every evaluation path against one engine and one integrand.
type Harness struct {
	engine    *quad.Engine[float64]
	integrand integrand.Integrand
	store     *store.Store
	ids       *testutil.FixedIDGenerator
	logger    *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, with a fixed
// session ID so runs are reproducible.
//
// Execution flow:
// 1. Build the engine and compile the integrand
// 2. Integrate through the direct, reverse, batch and checkpointed paths
// 3. Replay the checkpointed session from the store
// 4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	order, err := rule.ParseOrder(scenario.Order)
	if err != nil {
		return nil, err
	}
	engine, err := quad.NewForOrder[float64](order)
	if err != nil {
		return nil, err
	}
	in, err := integrand.Parse(scenario.Integrand)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		engine:    engine,
		integrand: in,
		store:     st,
		ids:       testutil.NewFixedIDGenerator(scenario.Name),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	result := NewResult()
	result.Integrand = in.String()

	if result.Direct, err = h.integrate(ctx, scenario.A, scenario.B); err != nil {
		return nil, fmt.Errorf("direct: %w", err)
	}

	reverse, err := h.driver(driver.Config[float64]{
		Observer: func(ev driver.Event[float64]) {
			result.Trace = append(result.Trace, TraceEvent{Index: ev.Index, X: ev.X, Value: ev.Value})
		},
	}).Drive(ctx, scenario.A, scenario.B, in)
	if err != nil {
		return nil, fmt.Errorf("reverse: %w", err)
	}
	result.Reverse = reverse.Result

	batch, err := h.driver(driver.Config[float64]{Concurrency: BatchConcurrency}).
		DriveBatch(ctx, scenario.A, scenario.B, in)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	result.Batch = batch.Result

	rec := store.NewRecorder(st, h.ids, scenario.Description)
	checkpointed, err := h.driver(driver.Config[float64]{Checkpointer: rec}).
		Drive(ctx, scenario.A, scenario.B, in)
	if err != nil {
		return nil, fmt.Errorf("checkpointed: %w", err)
	}
	result.Checkpointed = checkpointed.Result

	if result.Replay, err = st.ReplaySession(ctx, rec.ID()); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	actx := &AssertionContext{
		Ctx:     ctx,
		Harness: h,
		A:       scenario.A,
		B:       scenario.B,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

func (h *Harness) driver(cfg driver.Config[float64]) *driver.Driver[float64] {
	cfg.Logger = h.logger
	return driver.New(h.engine, cfg)
}

// integrate runs the direct evaluator. Integrands that can fail are wrapped so
// the first sampling error is reported instead of a silently wrong sum.
func (h *Harness) integrate(ctx context.Context, a, b float64) (float64, error) {
	if f, ok := integrand.Func(h.integrand); ok {
		return h.engine.Integrate(f, a, b), nil
	}

	var firstErr error
	f := func(x float64) float64 {
		y, err := h.integrand.Sample(ctx, x)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return y
	}
	v := h.engine.Integrate(f, a, b)
	return v, firstErr
}
