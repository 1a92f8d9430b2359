package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glquad/internal/rule"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Tolerance float64
}

// TableCheck is the validation outcome of one table.
type TableCheck struct {
	Order int    `json:"order"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool         `json:"valid"`
	Calibration string       `json:"calibration"`
	Tolerance   float64      `json:"tolerance"`
	Tables      []TableCheck `json:"tables"`
}

func (r ValidationResult) String() string {
	var b strings.Builder
	for _, t := range r.Tables {
		if t.Valid {
			fmt.Fprintf(&b, "✓ order %d\n", t.Order)
		} else {
			fmt.Fprintf(&b, "✗ order %d: %s\n", t.Order, t.Error)
		}
	}
	if r.Valid {
		fmt.Fprintf(&b, "All tables valid (%s, tolerance %g)", r.Calibration, r.Tolerance)
	} else {
		fmt.Fprintf(&b, "Calibration %s has invalid tables", r.Calibration)
	}
	return b.String()
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the calibration tables",
		Long: `Check every calibration table: row count, abscissas inside (-1, 1),
positive weights summing to 2, and mirror symmetry.

Exit codes:
  0 - All tables valid
  1 - One or more tables invalid`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", rule.DefaultTolerance, "tolerance for the weight sum and symmetry checks")

	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	result := ValidationResult{
		Valid:       true,
		Calibration: rule.CalibrationVersion,
		Tolerance:   opts.Tolerance,
	}
	for _, o := range rule.SupportedOrders() {
		formatter.VerboseLog("Validating order %d", int(o))

		check := TableCheck{Order: int(o), Valid: true}
		table, err := rule.New[float64](o)
		if err == nil {
			err = table.Validate(opts.Tolerance)
		}
		if err != nil {
			check.Valid = false
			check.Error = err.Error()
			result.Valid = false
		}
		result.Tables = append(result.Tables, check)
	}

	if !result.Valid {
		if opts.Format == "json" {
			if err := formatter.Error(ErrCodeCalibration, "calibration tables invalid", result); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), result)
		}
		return NewExitError(ExitFailure, "calibration tables invalid")
	}
	return formatter.Success(result)
}
