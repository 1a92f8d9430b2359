package rule

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultTolerance bounds the weight-sum check for float64 tables.
const DefaultTolerance = 1e-12

// Validate checks the table against the rule invariants: row count, abscissas
// inside (-1, 1), weight sum equal to 2 within tol, and symmetric abscissa pairs
// with equal weights. Symmetry is compared within tol as well since float32
// tables round each literal independently.
func (t *Table[T]) Validate(tol float64) error {
	if t.Len() != int(t.order) {
		return newCalibrationError(t.order, "table has %d rows", t.Len())
	}
	if len(t.abscissas) != len(t.weights) {
		return newCalibrationError(t.order, "%d abscissas for %d weights", len(t.abscissas), len(t.weights))
	}

	w := widen(t.weights)
	x := widen(t.abscissas)

	for i, xi := range x {
		if !(xi > -1 && xi < 1) {
			return newCalibrationError(t.order, "abscissa[%d] = %v outside (-1, 1)", i, xi)
		}
		if !(w[i] > 0) {
			return newCalibrationError(t.order, "weight[%d] = %v is not positive", i, w[i])
		}
	}

	if sum := floats.Sum(w); !scalar.EqualWithinAbs(sum, 2, tol) {
		return newCalibrationError(t.order, "weights sum to %.17g, want 2 within %g", sum, tol)
	}

	used := make([]bool, len(x))
	for i, xi := range x {
		if used[i] {
			continue
		}
		mirror := -1
		for j := i + 1; j < len(x); j++ {
			if !used[j] && scalar.EqualWithinAbs(x[j], -xi, tol) {
				mirror = j
				break
			}
		}
		if mirror < 0 {
			return newCalibrationError(t.order, "abscissa[%d] = %v has no mirror", i, xi)
		}
		if !scalar.EqualWithinAbs(w[i], w[mirror], tol) {
			return newCalibrationError(t.order, "weights of mirrored abscissas %d and %d differ", i, mirror)
		}
		used[i], used[mirror] = true, true
	}

	return nil
}

// ValidateAll builds and validates the float64 table of every supported order.
func ValidateAll(tol float64) error {
	for _, o := range SupportedOrders() {
		t, err := New[float64](o)
		if err != nil {
			return err
		}
		if err := t.Validate(tol); err != nil {
			return err
		}
	}
	return nil
}

func widen[T Float](v []T) []float64 {
	out := make([]float64, len(v))
	for i, e := range v {
		out[i] = float64(e)
	}
	return out
}
