// Package store provides SQLite-backed durable storage for quadrature sessions.
//
// A stored session is the latest checkpoint of a reverse-communication
// evaluation plus an append-only log of every sample the driver fed it:
//   - sessions: one row per session, rewritten after every step
//   - samples: (session, step index, x, value), insert-only
//
// The sample log is the source of truth. ReplaySession re-runs the log through
// a fresh quad session and checks it reproduces the stored checkpoint bit for bit.
//
// # Invariants
//
// Bit-exact floats
//   - Every float column holds math.Float64bits of the value
//   - NaN payloads, infinities and negative zero survive a round trip
//
// Logical time
//   - created_seq and updated_seq come from a store-wide logical clock
//   - Listings order by created_seq ASC, id ASC COLLATE BINARY
//
// Step idempotency
//   - PRIMARY KEY(session_id, step_index) on samples
//   - Saving the same step twice is a no-op, so a crashed driver can retry
//
// Integrity
//   - Each checkpoint row carries a SHA-256 digest with domain separation over
//     its canonical JSON form; loads verify it
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
