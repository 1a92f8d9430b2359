package harness

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/roach88/glquad/internal/integrand"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// AssertionContext provides what assertions need beyond the result: the
// harness for re-integration and the scenario bounds.
type AssertionContext struct {
	Ctx     context.Context
	Harness *Harness
	A, B    float64
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertValue:
			err = assertValue(result, assertion)
		case AssertExact:
			err = assertExact(result, assertion, actx)
		case AssertEquivalent:
			err = assertEquivalent(result)
		case AssertStepCount:
			err = assertStepCount(result, assertion)
		case AssertAntisymmetric:
			err = assertAntisymmetric(result, assertion, actx)
		case AssertDegenerate:
			err = assertDegenerate(actx)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// within reports |got - want| <= tol * max(1, |want|).
func within(got, want, tol float64) bool {
	if tol == 0 {
		tol = DefaultTolerance
	}
	return math.Abs(got-want) <= tol*math.Max(1, math.Abs(want))
}

func assertValue(result *Result, assertion Assertion) error {
	want := *assertion.Expect
	if within(result.Direct, want, assertion.Tolerance) {
		return nil
	}
	return &AssertionError{
		Type:     AssertValue,
		Expected: fmt.Sprintf("%v (tolerance %g)", want, assertion.Tolerance),
		Actual:   fmt.Sprintf("%v", result.Direct),
	}
}

// assertExact checks the rule's exactness guarantee against the analytic integral.
func assertExact(result *Result, assertion Assertion, actx *AssertionContext) error {
	if actx == nil || actx.Harness == nil {
		return fmt.Errorf("%s requires harness context", AssertExact)
	}
	p, ok := actx.Harness.integrand.(*integrand.Polynomial)
	if !ok {
		return &AssertionError{
			Type:     AssertExact,
			Expected: "polynomial integrand",
			Actual:   actx.Harness.integrand.String(),
		}
	}
	order := actx.Harness.engine.Order()
	if p.Degree() > order.ExactDegree() {
		return &AssertionError{
			Type:     AssertExact,
			Expected: fmt.Sprintf("degree <= %d for order %d", order.ExactDegree(), int(order)),
			Actual:   fmt.Sprintf("degree %d", p.Degree()),
		}
	}

	want := p.Integral(actx.A, actx.B)
	if within(result.Direct, want, assertion.Tolerance) {
		return nil
	}
	return &AssertionError{
		Type:     AssertExact,
		Expected: fmt.Sprintf("%v", want),
		Actual:   fmt.Sprintf("%v", result.Direct),
	}
}

// assertEquivalent requires every path to produce the same bits.
func assertEquivalent(result *Result) error {
	want := math.Float64bits(result.Direct)
	paths := []struct {
		name  string
		value float64
	}{
		{"reverse", result.Reverse},
		{"batch", result.Batch},
		{"checkpointed", result.Checkpointed},
	}
	for _, p := range paths {
		if math.Float64bits(p.value) != want {
			return &AssertionError{
				Type:     AssertEquivalent,
				Expected: fmt.Sprintf("%s result %v (direct)", p.name, result.Direct),
				Actual:   fmt.Sprintf("%v", p.value),
			}
		}
	}
	if !result.Replay.Matches() {
		return &AssertionError{
			Type:     AssertEquivalent,
			Expected: "replay reproduces the stored checkpoint",
			Actual:   result.Replay.Divergence,
		}
	}
	return nil
}

func assertStepCount(result *Result, assertion Assertion) error {
	if len(result.Trace) == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertStepCount,
		Expected: fmt.Sprintf("%d requested points", assertion.Count),
		Actual:   fmt.Sprintf("%d", len(result.Trace)),
	}
}

// assertAntisymmetric integrates over the reversed interval. Swapping the
// bounds visits the mirrored points in a different order, so the check is
// within tolerance rather than bitwise.
func assertAntisymmetric(result *Result, assertion Assertion, actx *AssertionContext) error {
	if actx == nil || actx.Harness == nil {
		return fmt.Errorf("%s requires harness context", AssertAntisymmetric)
	}
	swapped, err := actx.Harness.integrate(actx.Ctx, actx.B, actx.A)
	if err != nil {
		return fmt.Errorf("%s: %w", AssertAntisymmetric, err)
	}
	if within(-swapped, result.Direct, assertion.Tolerance) {
		return nil
	}
	return &AssertionError{
		Type:     AssertAntisymmetric,
		Expected: fmt.Sprintf("%v over [%v, %v]", -result.Direct, actx.B, actx.A),
		Actual:   fmt.Sprintf("%v", swapped),
	}
}

// assertDegenerate integrates over [a, a] and [b, b].
func assertDegenerate(actx *AssertionContext) error {
	if actx == nil || actx.Harness == nil {
		return fmt.Errorf("%s requires harness context", AssertDegenerate)
	}
	for _, x := range []float64{actx.A, actx.B} {
		v, err := actx.Harness.integrate(actx.Ctx, x, x)
		if err != nil {
			return fmt.Errorf("%s: %w", AssertDegenerate, err)
		}
		if v != 0 {
			return &AssertionError{
				Type:     AssertDegenerate,
				Expected: fmt.Sprintf("0 over [%v, %v]", x, x),
				Actual:   fmt.Sprintf("%v", v),
			}
		}
	}
	return nil
}
