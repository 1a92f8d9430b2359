package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/glquad/internal/quad"
	"github.com/roach88/glquad/internal/rule"
)

// Event is one consumed sample: the value of the integrand at table row Index.
type Event[T rule.Float] struct {
	Index int `json:"index"`
	X     T   `json:"x"`
	Value T   `json:"value"`
}

// Report summarizes a completed drive.
type Report[T rule.Float] struct {
	Result  T
	Samples int // value-producing transitions in this drive
}

// Checkpointer persists session state while a drive runs.
type Checkpointer[T rule.Float] interface {
	// Started is called once the session has bounds and a first pending point.
	Started(ctx context.Context, cp quad.Checkpoint[T]) error
	// Stepped is called after each consumed value. The context is detached
	// from cancellation so a value the session consumed is always persisted.
	Stepped(ctx context.Context, ev Event[T], cp quad.Checkpoint[T]) error
}

// Config tunes a Driver. The zero value is usable.
type Config[T rule.Float] struct {
	// Logger receives per-step debug logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Concurrency bounds parallel sampling in DriveBatch. Zero or less means
	// one goroutine per sample point.
	Concurrency int

	// Observer is called with every consumed sample, in table order.
	Observer func(Event[T])

	// Checkpointer, if set, persists the session after every transition.
	Checkpointer Checkpointer[T]
}

// Driver drives sessions of one engine.
type Driver[T rule.Float] struct {
	engine *quad.Engine[T]
	cfg    Config[T]
}

// New creates a driver for engine.
func New[T rule.Float](engine *quad.Engine[T], cfg Config[T]) *Driver[T] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Driver[T]{engine: engine, cfg: cfg}
}

// Engine returns the driven engine.
func (d *Driver[T]) Engine() *quad.Engine[T] {
	return d.engine
}

// Drive integrates over [a, b], sampling one point at a time.
func (d *Driver[T]) Drive(ctx context.Context, a, b T, s Sampler[T]) (Report[T], error) {
	var session quad.Session[T]
	if err := d.start(ctx, &session, a, b); err != nil {
		return Report[T]{}, err
	}
	return d.Resume(ctx, &session, s)
}

// Resume drives a session that is already awaiting a value to completion.
// On error the session holds every value consumed so far.
func (d *Driver[T]) Resume(ctx context.Context, session *quad.Session[T], s Sampler[T]) (Report[T], error) {
	if session.Phase() != quad.PhaseAwaitingValue {
		// Let the engine report the violation for done or fresh sessions.
		if _, err := d.engine.AdvanceValue(session, 0); err != nil {
			return Report[T]{}, err
		}
	}

	var report Report[T]
	for {
		x, ok := session.Pending()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		index := session.StepIndex()
		y, err := s.Sample(ctx, x)
		if err != nil {
			return report, &SampleError{Index: index, X: float64(x), Err: err}
		}
		if err := d.consume(ctx, session, Event[T]{Index: index, X: x, Value: y}); err != nil {
			return report, err
		}
		report.Samples++
	}

	report.Result, _ = session.Result()
	d.cfg.Logger.Debug("drive complete",
		"order", int(d.engine.Order()),
		"samples", report.Samples,
		"result", report.Result,
	)
	return report, nil
}

func (d *Driver[T]) start(ctx context.Context, session *quad.Session[T], a, b T) error {
	step, err := d.engine.Advance(session, a, b, 0)
	if err != nil {
		return err
	}
	d.cfg.Logger.Debug("session started",
		"order", int(d.engine.Order()),
		"a", a,
		"b", b,
		"first", step.Next,
	)
	if d.cfg.Checkpointer != nil {
		if err := d.cfg.Checkpointer.Started(ctx, session.Checkpoint()); err != nil {
			return fmt.Errorf("checkpoint start: %w", err)
		}
	}
	return nil
}

// consume feeds one value into the session and notifies observers.
func (d *Driver[T]) consume(ctx context.Context, session *quad.Session[T], ev Event[T]) error {
	if _, err := d.engine.AdvanceValue(session, ev.Value); err != nil {
		return err
	}
	d.cfg.Logger.Debug("sample consumed",
		"index", ev.Index,
		"x", ev.X,
		"value", ev.Value,
	)
	if d.cfg.Observer != nil {
		d.cfg.Observer(ev)
	}
	if d.cfg.Checkpointer != nil {
		if err := d.cfg.Checkpointer.Stepped(context.WithoutCancel(ctx), ev, session.Checkpoint()); err != nil {
			return fmt.Errorf("checkpoint step %d: %w", ev.Index, err)
		}
	}
	return nil
}
