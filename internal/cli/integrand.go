package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glquad/internal/integrand"
)

// IntegrandFlags binds the mutually exclusive integrand description flags.
type IntegrandFlags struct {
	Poly  []float64
	Func  string
	Expr  string
	Scale float64
}

func (f *IntegrandFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVar(&f.Poly, "poly", nil, "polynomial coefficients, lowest degree first (e.g. 1,0,-3)")
	cmd.Flags().StringVar(&f.Func, "func", "", "named function ("+strings.Join(integrand.Names(), ", ")+")")
	cmd.Flags().StringVar(&f.Expr, "expr", "", `CUE expression in x (e.g. "math.Sin(x) * x")`)
	cmd.Flags().Float64Var(&f.Scale, "scale", 0, "multiply the named function by this factor")
	cmd.MarkFlagsMutuallyExclusive("poly", "func", "expr")
}

func (f *IntegrandFlags) spec() integrand.Spec {
	return integrand.Spec{Poly: f.Poly, Func: f.Func, Expr: f.Expr, Scale: f.Scale}
}
