package testutil

import (
	"fmt"
	"math"
)

// Integral is a definite integral
//
//	∫_a^b f(x)dx
//
// with a known value.
type Integral struct {
	Name  string
	A, B  float64               // Integration limits
	F     func(float64) float64 // Integrand
	Value float64

	// Degree is the polynomial degree of F, or -1 if F is not a polynomial.
	Degree int
}

// Constant returns the integral of a constant function
//
//	∫_{-1}^2 alpha dx
func Constant(alpha float64) Integral {
	return Integral{
		Name:   fmt.Sprintf("∫_{-1}^{2} %vdx", alpha),
		A:      -1,
		B:      2,
		F:      func(float64) float64 { return alpha },
		Value:  3 * alpha,
		Degree: 0,
	}
}

// Monomial returns the integral of x^degree over [a, b].
func Monomial(degree int, a, b float64) Integral {
	d := float64(degree)
	return Integral{
		Name: fmt.Sprintf("∫_{%v}^{%v} x^%vdx", a, b, degree),
		A:    a,
		B:    b,
		F: func(x float64) float64 {
			return math.Pow(x, d)
		},
		Value:  (math.Pow(b, d+1) - math.Pow(a, d+1)) / (d + 1),
		Degree: degree,
	}
}

// Poly returns the integral of the polynomial with the given coefficients
// (lowest degree first) over [a, b].
func Poly(coeffs []float64, a, b float64) Integral {
	c := append([]float64(nil), coeffs...)
	value := 0.0
	for k, ck := range c {
		p := float64(k + 1)
		value += ck * (math.Pow(b, p) - math.Pow(a, p)) / p
	}
	return Integral{
		Name: fmt.Sprintf("∫_{%v}^{%v} poly%vdx", a, b, c),
		A:    a,
		B:    b,
		F: func(x float64) float64 {
			y := 0.0
			for k := len(c) - 1; k >= 0; k-- {
				y = y*x + c[k]
			}
			return y
		},
		Value:  value,
		Degree: len(c) - 1,
	}
}

// Sin returns the integral
//
//	∫_0^1 sin(x)dx
func Sin() Integral {
	return Integral{
		Name:   "∫_0^1 sin(x)dx",
		A:      0,
		B:      1,
		F:      math.Sin,
		Value:  1 - math.Cos(1),
		Degree: -1,
	}
}

// Exp returns the integral
//
//	∫_0^1 exp(x)dx
func Exp() Integral {
	return Integral{
		Name:   "∫_0^1 exp(x)dx",
		A:      0,
		B:      1,
		F:      math.Exp,
		Value:  math.E - 1,
		Degree: -1,
	}
}

// Runge returns the integral of Runge's function
//
//	∫_{-1}^1 1/(1+25x^2)dx
func Runge() Integral {
	return Integral{
		Name: "∫_{-1}^{1} 1/(1+25x^2)dx",
		A:    -1,
		B:    1,
		F: func(x float64) float64 {
			return 1 / (1 + 25*x*x)
		},
		Value:  0.4 * math.Atan(5),
		Degree: -1,
	}
}

// Smooth returns analytic integrands that converge quickly with the order.
func Smooth() []Integral {
	return []Integral{Sin(), Exp(), Runge()}
}
