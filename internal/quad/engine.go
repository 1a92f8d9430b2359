package quad

import "github.com/roach88/glquad/internal/rule"

// Engine evaluates integrals with one Gauss-Legendre table.
// The table is shared read-only; an Engine holds no other state.
type Engine[T rule.Float] struct {
	table *rule.Table[T]
}

// New creates an engine over table.
func New[T rule.Float](table *rule.Table[T]) *Engine[T] {
	return &Engine[T]{table: table}
}

// NewForOrder builds the table for order and wraps it in an engine.
// Returns a *rule.ConfigError for an unsupported order.
func NewForOrder[T rule.Float](order rule.Order) (*Engine[T], error) {
	table, err := rule.New[T](order)
	if err != nil {
		return nil, err
	}
	return New(table), nil
}

// Table returns the engine's rule table.
func (e *Engine[T]) Table() *rule.Table[T] {
	return e.table
}

// Order returns the number of samples per integral.
func (e *Engine[T]) Order() rule.Order {
	return e.table.Order()
}

// Integrate approximates the integral of f over [a, b].
//
// f is called exactly Order times, in table order (not abscissa order). The
// bounds are not validated: reversed bounds negate the result and a == b yields
// zero for finite f. NaN and Inf returned by f propagate into the result.
func (e *Engine[T]) Integrate(f func(T) T, a, b T) T {
	mid, half := affine(a, b)

	var sum T
	for i := 0; i < e.table.Len(); i++ {
		w, x := e.table.Row(i)
		sum += T(w * f(mid+T(half*x)))
	}
	return sum * half
}

// SamplePoints returns, in order, every point a session over [a, b] requests.
// Drivers use it to evaluate the integrand ahead of the sequential Advance calls.
func (e *Engine[T]) SamplePoints(a, b T) []T {
	mid, half := affine(a, b)

	points := make([]T, e.table.Len())
	for i := range points {
		points[i] = mid + T(half*e.table.Abscissa(i))
	}
	return points
}

// affine maps [-1, 1] onto [a, b]: x -> mid + half*x.
func affine[T rule.Float](a, b T) (mid, half T) {
	return (a + b) / 2, (b - a) / 2
}
