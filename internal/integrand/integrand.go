package integrand

import (
	"context"
	"errors"
	"fmt"
)

// Integrand is a one-dimensional function that can be sampled point by point.
type Integrand interface {
	Sample(ctx context.Context, x float64) (float64, error)
	String() string
}

// Spec describes an integrand. Exactly one of Poly, Func or Expr must be set.
// Scale multiplies a named function; zero leaves it unscaled.
type Spec struct {
	Poly  []float64 `yaml:"poly,omitempty" json:"poly,omitempty"`
	Func  string    `yaml:"func,omitempty" json:"func,omitempty"`
	Expr  string    `yaml:"expr,omitempty" json:"expr,omitempty"`
	Scale float64   `yaml:"scale,omitempty" json:"scale,omitempty"`
}

// SpecError reports an integrand description that cannot be compiled.
type SpecError struct {
	Field   string
	Message string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("integrand %s: %s", e.Field, e.Message)
}

// IsSpecError returns true if err is a SpecError or wraps one.
func IsSpecError(err error) bool {
	var se *SpecError
	return errors.As(err, &se)
}

// Parse compiles spec into an Integrand.
func Parse(spec Spec) (Integrand, error) {
	set := 0
	if spec.Poly != nil {
		set++
	}
	if spec.Func != "" {
		set++
	}
	if spec.Expr != "" {
		set++
	}
	switch {
	case set == 0:
		return nil, &SpecError{Field: "spec", Message: "one of poly, func or expr is required"}
	case set > 1:
		return nil, &SpecError{Field: "spec", Message: "poly, func and expr are mutually exclusive"}
	case spec.Scale != 0 && spec.Func == "":
		return nil, &SpecError{Field: "scale", Message: "scale applies only to func"}
	}

	switch {
	case spec.Poly != nil:
		return NewPolynomial(spec.Poly...)
	case spec.Func != "":
		n, err := Lookup(spec.Func)
		if err != nil || spec.Scale == 0 {
			return n, err
		}
		return n.Scaled(spec.Scale), nil
	default:
		return CompileExpr(spec.Expr)
	}
}

// Func adapts a pure Integrand to a plain function for direct integration.
// The second result is false if the integrand can fail, in which case the
// caller must sample through Sample instead.
func Func(in Integrand) (func(float64) float64, bool) {
	switch v := in.(type) {
	case *Polynomial:
		return v.Eval, true
	case *Named:
		return v.fn, true
	default:
		return nil, false
	}
}
