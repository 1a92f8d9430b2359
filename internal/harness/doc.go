// Package harness provides conformance testing for the quadrature engine.
//
// A scenario names an order, an interval and an integrand, and lists
// assertions about the result. Run integrates the scenario through every
// evaluation path the module offers and checks they agree:
//
//   - direct: quad.Engine.Integrate
//   - reverse: driver.Drive over a reverse-communication session
//   - batch: driver.DriveBatch with concurrent sampling
//   - checkpointed: driver.Drive recording into an in-memory store, then
//     store.ReplaySession over the recorded sample log
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: cubic_order8
//	description: "What this scenario validates"
//	order: 8
//	a: -1
//	b: 2
//	integrand:
//	  poly: [1, -2, 0, 4]
//	assertions:
//	  - type: exact
//	  - type: value
//	    expect: 15
//	    tolerance: 1e-12
//	  - type: step_count
//	    count: 8
//
// # Assertion Types
//
//   - value: the direct result is within tolerance of expect
//   - exact: a polynomial integrand of degree <= 2*order-1 matches its analytic integral
//   - equivalent: every evaluation path returns the same bits and the replay matches
//   - step_count: the session requested exactly count points
//   - antisymmetric: integrating over [b, a] negates the result, within tolerance
//   - degenerate: integrating over [a, a] returns zero
//
// Tolerances are relative to max(1, |expected|) and default to 1e-12.
//
// # Golden Traces
//
// The reverse path's requested points and sampled values are rendered with
// FormatTrace and compared against golden/<name>.golden next to the scenario
// file. Values are printed with ten decimals so the golden files do not depend
// on the last bit of libm.
package harness
