package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glquad/internal/driver"
	"github.com/roach88/glquad/internal/integrand"
	"github.com/roach88/glquad/internal/quad"
	"github.com/roach88/glquad/internal/rule"
)

// IntegrateOptions holds flags for the integrate command.
type IntegrateOptions struct {
	*RootOptions
	Order       rule.Order
	A, B        float64
	Integrand   IntegrandFlags
	Batch       bool
	Concurrency int
}

// IntegrateResult is the output of the integrate command.
type IntegrateResult struct {
	Order     int    `json:"order"`
	A         Float  `json:"a"`
	B         Float  `json:"b"`
	Integrand string `json:"integrand"`
	Mode      string `json:"mode"`
	Result    Float  `json:"result"`
	Exact     *Float `json:"exact,omitempty"`
	AbsError  *Float `json:"abs_error,omitempty"`
}

func (r IntegrateResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "∫_{%v}^{%v} %s dx ≈ %.17g (order %d, %s)", r.A, r.B, r.Integrand, r.Result, r.Order, r.Mode)
	if r.Exact != nil {
		fmt.Fprintf(&b, "\nexact %.17g, abs error %.3g", *r.Exact, *r.AbsError)
	}
	return b.String()
}

// NewIntegrateCommand creates the integrate command.
func NewIntegrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IntegrateOptions{RootOptions: rootOpts, Order: rule.Order16}

	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Integrate a function over [a, b]",
		Long: `Integrate a polynomial, a named function or a CUE expression over [a, b].

Bounds are not validated: a > b negates the result and a == b yields zero.
For polynomials the analytic integral and the absolute error are reported.

Examples:
  glquad integrate --a 0 --b 1 --func exp
  glquad integrate --order 8 --a -1 --b 2 --poly 1,-2,0,4
  glquad integrate --a 0 --b 3.14159 --expr "math.Sin(x) * x" --batch`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrate(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().Var(&opts.Order, "order", "quadrature order (8, 16, 32 or 64)")
	cmd.Flags().Float64Var(&opts.A, "a", 0, "lower bound")
	cmd.Flags().Float64Var(&opts.B, "b", 1, "upper bound")
	cmd.Flags().BoolVar(&opts.Batch, "batch", false, "sample all points concurrently through the batch driver")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "batch sampling goroutines (0 = one per point)")
	opts.Integrand.register(cmd)

	return cmd
}

func runIntegrate(ctx context.Context, opts *IntegrateOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	in, err := integrand.Parse(opts.Integrand.spec())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeIntegrand, "invalid integrand", err)
	}
	engine, err := quad.NewForOrder[float64](opts.Order)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUnsupportedOrder, "cannot build engine", err)
	}

	result := IntegrateResult{
		Order:     int(opts.Order),
		A:         Float(opts.A),
		B:         Float(opts.B),
		Integrand: in.String(),
	}

	d := driver.New(engine, driver.Config[float64]{
		Logger:      newLogger(opts.RootOptions, cmd.ErrOrStderr()),
		Concurrency: opts.Concurrency,
	})
	f, pure := integrand.Func(in)
	switch {
	case opts.Batch:
		result.Mode = "batch"
		report, err := d.DriveBatch(ctx, opts.A, opts.B, in)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeSample, "integration failed", err)
		}
		result.Result = Float(report.Result)
	case pure:
		result.Mode = "direct"
		result.Result = Float(engine.Integrate(f, opts.A, opts.B))
	default:
		result.Mode = "reverse"
		report, err := d.Drive(ctx, opts.A, opts.B, in)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeSample, "integration failed", err)
		}
		result.Result = Float(report.Result)
	}

	if p, ok := in.(*integrand.Polynomial); ok {
		exact := p.Integral(opts.A, opts.B)
		result.Exact = floatPtr(exact)
		result.AbsError = floatPtr(math.Abs(float64(result.Result) - exact))
		if p.Degree() > opts.Order.ExactDegree() {
			formatter.VerboseLog("degree %d exceeds the exact degree %d of order %d", p.Degree(), opts.Order.ExactDegree(), int(opts.Order))
		}
	}

	return formatter.Success(result)
}
