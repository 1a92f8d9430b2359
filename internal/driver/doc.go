// Package driver runs reverse-communication quadrature sessions.
//
// The quad engine never samples the integrand on the session path; a driver
// does. This package provides the drivers the rest of the module uses:
//
//   - Drive: sequential. Request a point, sample it, feed the value back.
//   - DriveBatch: evaluate every point concurrently (errgroup, bounded by
//     Config.Concurrency), then feed the values through sequential Advance calls
//     in table order. The result is bit-identical to Drive.
//   - Resume: continue a session restored from a checkpoint.
//
// The context is checked before every sample. A cancelled drive simply stops
// advancing; the session is left in its last consistent state and can be
// checkpointed or discarded.
//
// A Checkpointer, if configured, observes the session after it starts and after
// every consumed value, which is how the store persists in-flight evaluations.
package driver
