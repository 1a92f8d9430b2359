// Package quad evaluates definite integrals with a fixed-order Gauss-Legendre rule.
//
// An Engine wraps a shared, immutable rule.Table and offers two evaluation modes
// over it.
//
// Direct (push) mode: Integrate receives a callable and the bounds and returns the
// integral after calling the function exactly Order times in table order.
//
// Reverse-communication (pull) mode: the caller owns a Session and repeatedly calls
// Advance, receiving the next point to sample and handing back the value of the
// previous one. The engine never calls anything itself, so sampling can be
// batched, moved to another goroutine, or suspended across a process restart
// (see Checkpoint and Restore).
//
// # Session State Machine
//
//	NotStarted --Advance(a, b, _)--> AwaitingValue   (Next = first point)
//	AwaitingValue --Advance(a, b, f(Next))--> AwaitingValue   (more rows left)
//	AwaitingValue --Advance(a, b, f(Next))--> Done            (Result available)
//	Done --Advance--> error SESSION_DONE, session unchanged
//
// Bounds are consumed on the first transition. Later calls must repeat the same
// bounds or receive BOUNDS_MISMATCH; AdvanceValue skips the bounds entirely.
//
// # Equivalence
//
// Both modes execute the same floating point operations in the same order.
// Products are explicitly rounded before accumulation so neither path can be
// contracted into a fused multiply-add, which keeps a fully driven session
// bit-identical to Integrate on every architecture.
//
// # Concurrency
//
// Engines are stateless beyond their table and safe for concurrent use. A Session
// is a plain value with no locking; at most one goroutine may advance it at a time.
// Abandoning a session needs no cleanup.
package quad
