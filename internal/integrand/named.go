package integrand

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
)

var registry = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"exp":   math.Exp,
	"sqrt":  math.Sqrt,
	"log1p": math.Log1p,
	"abs":   math.Abs,
	"runge": func(x float64) float64 { return 1 / (1 + 25*x*x) },
	"gauss": func(x float64) float64 { return math.Exp(-x * x) },
}

// Named is an elementary function from a closed registry.
type Named struct {
	name  string
	scale float64
	fn    func(float64) float64
}

// Names lists the registered function names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named function.
func Lookup(name string) (*Named, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, &SpecError{Field: "func", Message: fmt.Sprintf("unknown function %q, known: %v", name, Names())}
	}
	return &Named{name: name, fn: fn}, nil
}

// Sample implements Integrand.
func (n *Named) Sample(_ context.Context, x float64) (float64, error) {
	return n.fn(x), nil
}

// Scaled returns n multiplied by c. Scaling a scaled function compounds.
func (n *Named) Scaled(c float64) *Named {
	if n.scale != 0 {
		c *= n.scale
	}
	base := registry[n.name]
	return &Named{name: n.name, scale: c, fn: func(x float64) float64 { return c * base(x) }}
}

func (n *Named) String() string {
	if n.scale == 0 {
		return n.name + "(x)"
	}
	return strconv.FormatFloat(n.scale, 'g', -1, 64) + "*" + n.name + "(x)"
}
