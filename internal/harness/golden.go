package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is where golden traces live relative to the scenario files.
const GoldenDir = "golden"

// FormatTrace renders the reverse path of a run as the golden text format.
// Floats are printed with ten decimals.
func FormatTrace(scenario *Scenario, result *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", scenario.Name)
	fmt.Fprintf(&buf, "order: %d\n", scenario.Order)
	fmt.Fprintf(&buf, "interval: [%.10f, %.10f]\n", scenario.A, scenario.B)
	fmt.Fprintf(&buf, "integrand: %s\n", result.Integrand)
	for _, ev := range result.Trace {
		fmt.Fprintf(&buf, "step %d: x=%.10f f=%.10f\n", ev.Index, ev.X, ev.Value)
	}
	fmt.Fprintf(&buf, "result: %.10f\n", result.Reverse)
	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares the trace against
// {fixtureDir}/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, fixtureDir string, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, fixtureDir, scenario, result)
	return result, nil
}

// AssertGolden compares an already computed result against its golden file.
func AssertGolden(t *testing.T, fixtureDir string, scenario *Scenario, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(fixtureDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, FormatTrace(scenario, result))
}
