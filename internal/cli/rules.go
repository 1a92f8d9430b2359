package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glquad/internal/rule"
)

// RulesOptions holds flags for the rules command.
type RulesOptions struct {
	*RootOptions
	Order rule.Order
}

// RuleRow is one weight/abscissa pair.
type RuleRow struct {
	Index    int     `json:"index"`
	Weight   float64 `json:"weight"`
	Abscissa float64 `json:"abscissa"`
}

// RuleInfo describes one calibration table.
type RuleInfo struct {
	Order       int       `json:"order"`
	ExactDegree int       `json:"exact_degree"`
	Calibration string    `json:"calibration"`
	Rows        []RuleRow `json:"rows,omitempty"`
}

func (r RuleInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "order %d: exact through degree %d (%s)", r.Order, r.ExactDegree, r.Calibration)
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "\n%4d  %+.16f  %+.16f", row.Index, row.Weight, row.Abscissa)
	}
	return b.String()
}

// RuleList is the rules output without --order.
type RuleList []RuleInfo

func (l RuleList) String() string {
	lines := make([]string, len(l))
	for i, r := range l {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RulesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the Gauss-Legendre tables",
		Long: `Show the supported orders, or the weights and abscissas of one order.

Rows are listed in table order, which is the order a session requests points.

Examples:
  glquad rules
  glquad rules --order 16
  glquad rules --order 8 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(opts, cmd)
		},
	}

	cmd.Flags().Var(&opts.Order, "order", "order to print (8, 16, 32 or 64)")

	return cmd
}

func runRules(opts *RulesOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.Order == 0 {
		list := RuleList{}
		for _, o := range rule.SupportedOrders() {
			list = append(list, describeRule(o, nil))
		}
		return formatter.Success(list)
	}

	table, err := rule.New[float64](opts.Order)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUnsupportedOrder, "cannot build table", err)
	}
	return formatter.Success(describeRule(opts.Order, table))
}

func describeRule(o rule.Order, table *rule.Table[float64]) RuleInfo {
	info := RuleInfo{
		Order:       int(o),
		ExactDegree: o.ExactDegree(),
		Calibration: rule.CalibrationVersion,
	}
	if table == nil {
		return info
	}
	info.Rows = make([]RuleRow, table.Len())
	for i := range info.Rows {
		w, x := table.Row(i)
		info.Rows[i] = RuleRow{Index: i, Weight: w, Abscissa: x}
	}
	return info
}
