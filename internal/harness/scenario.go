package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/glquad/internal/integrand"
	"github.com/roach88/glquad/internal/rule"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Order is the Gauss-Legendre order (8, 16, 32 or 64).
	Order int `yaml:"order"`

	// A and B are the integration bounds. They are not required to satisfy A <= B.
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`

	// Integrand describes the function to integrate.
	Integrand integrand.Spec `yaml:"integrand"`

	// Assertions validate the result.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one property of a scenario result.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Expect is the expected integral (used by value).
	Expect *float64 `yaml:"expect,omitempty"`

	// Tolerance is relative to max(1, |expected|); zero means DefaultTolerance
	// (used by value, exact, antisymmetric).
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Count is the expected number of requested points (used by step_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertValue         = "value"
	AssertExact         = "exact"
	AssertEquivalent    = "equivalent"
	AssertStepCount     = "step_count"
	AssertAntisymmetric = "antisymmetric"
	AssertDegenerate    = "degenerate"
)

// DefaultTolerance applies when an assertion leaves Tolerance at zero.
const DefaultTolerance = 1e-12

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := rule.ParseOrder(s.Order); err != nil {
		return fmt.Errorf("order: %w", err)
	}

	if _, err := integrand.Parse(s.Integrand); err != nil {
		return err
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Tolerance < 0 {
		return fmt.Errorf("assertions[%d]: tolerance must be non-negative", index)
	}

	switch a.Type {
	case AssertValue:
		if a.Expect == nil {
			return fmt.Errorf("assertions[%d]: expect is required for value", index)
		}
	case AssertStepCount:
		if a.Count <= 0 {
			return fmt.Errorf("assertions[%d]: count must be positive for step_count", index)
		}
	case AssertExact, AssertEquivalent, AssertAntisymmetric, AssertDegenerate:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
