package rule

// Float is the numeric type a table can be instantiated with.
type Float interface {
	~float32 | ~float64
}

// Table is an immutable Gauss-Legendre rule of a fixed order.
type Table[T Float] struct {
	order     Order
	weights   []T
	abscissas []T
}

// New builds the table for order from the static calibration data.
// An unsupported order returns a *ConfigError and a nil table.
func New[T Float](order Order) (*Table[T], error) {
	rows, ok := calibration(order)
	if !ok {
		return nil, newUnsupportedOrderError(order)
	}

	t := &Table[T]{
		order:     order,
		weights:   make([]T, len(rows)),
		abscissas: make([]T, len(rows)),
	}
	for i, r := range rows {
		t.weights[i] = T(r.w)
		t.abscissas[i] = T(r.x)
	}
	return t, nil
}

// MustNew is like New but panics on an unsupported order.
// Intended for package-level variables and tests.
func MustNew[T Float](order Order) *Table[T] {
	t, err := New[T](order)
	if err != nil {
		panic(err)
	}
	return t
}

// Order returns the table's order.
func (t *Table[T]) Order() Order {
	return t.order
}

// Len returns the number of rows, always equal to Order.
func (t *Table[T]) Len() int {
	return len(t.weights)
}

// Weight returns the i-th weight.
func (t *Table[T]) Weight(i int) T {
	return t.weights[i]
}

// Abscissa returns the i-th abscissa on [-1, 1].
func (t *Table[T]) Abscissa(i int) T {
	return t.abscissas[i]
}

// Row returns the i-th (weight, abscissa) pair.
func (t *Table[T]) Row(i int) (w, x T) {
	return t.weights[i], t.abscissas[i]
}

// Weights returns a copy of the weight sequence in table order.
func (t *Table[T]) Weights() []T {
	out := make([]T, len(t.weights))
	copy(out, t.weights)
	return out
}

// Abscissas returns a copy of the abscissa sequence in table order.
func (t *Table[T]) Abscissas() []T {
	out := make([]T, len(t.abscissas))
	copy(out, t.abscissas)
	return out
}
