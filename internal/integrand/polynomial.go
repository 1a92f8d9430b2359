package integrand

import (
	"context"
	"fmt"
	"strings"
)

// Polynomial is c[0] + c[1]*x + ... + c[n]*x^n.
type Polynomial struct {
	coeffs []float64
}

// NewPolynomial builds a polynomial from coefficients, lowest degree first.
// Trailing zero coefficients are dropped; at least one coefficient is required.
func NewPolynomial(coeffs ...float64) (*Polynomial, error) {
	if len(coeffs) == 0 {
		return nil, &SpecError{Field: "poly", Message: "at least one coefficient is required"}
	}
	n := len(coeffs)
	for n > 1 && coeffs[n-1] == 0 {
		n--
	}
	c := make([]float64, n)
	copy(c, coeffs[:n])
	return &Polynomial{coeffs: c}, nil
}

// Degree returns the polynomial degree (0 for constants, including zero).
func (p *Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// Coefficients returns a copy of the coefficients, lowest degree first.
func (p *Polynomial) Coefficients() []float64 {
	return append([]float64(nil), p.coeffs...)
}

// Eval evaluates p at x with Horner's rule. Each product is rounded before the
// addition so the value does not depend on fused multiply-add support.
func (p *Polynomial) Eval(x float64) float64 {
	y := p.coeffs[len(p.coeffs)-1]
	for k := len(p.coeffs) - 2; k >= 0; k-- {
		y = float64(y*x) + p.coeffs[k]
	}
	return y
}

// Sample implements Integrand.
func (p *Polynomial) Sample(_ context.Context, x float64) (float64, error) {
	return p.Eval(x), nil
}

// Integral returns the analytic integral over [a, b].
func (p *Polynomial) Integral(a, b float64) float64 {
	return p.antiderivative(b) - p.antiderivative(a)
}

func (p *Polynomial) antiderivative(x float64) float64 {
	y := 0.0
	for k := len(p.coeffs) - 1; k >= 0; k-- {
		y = float64(y*x) + p.coeffs[k]/float64(k+1)
	}
	return y * x
}

func (p *Polynomial) String() string {
	terms := make([]string, 0, len(p.coeffs))
	for k, c := range p.coeffs {
		if c == 0 && len(p.coeffs) > 1 {
			continue
		}
		switch k {
		case 0:
			terms = append(terms, fmt.Sprintf("%g", c))
		case 1:
			terms = append(terms, fmt.Sprintf("%g*x", c))
		default:
			terms = append(terms, fmt.Sprintf("%g*x^%d", c, k))
		}
	}
	return strings.Join(terms, " + ")
}
