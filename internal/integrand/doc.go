// Package integrand turns declarative integrand descriptions into samplers.
//
// Three forms are supported, selected by which field of Spec is set:
//
//	poly: [c0, c1, c2]        c0 + c1*x + c2*x^2, evaluated with Horner's rule
//	func: sin                 a named elementary function, see Names
//	expr: "math.Sin(x) * x"   a CUE expression over x with the builtin math package
//
// Every Integrand satisfies the driver's Sampler contract: Sample returns the
// value at one point or an error. Polynomials and named functions never fail;
// expressions fail when CUE cannot reduce them to a number.
package integrand
