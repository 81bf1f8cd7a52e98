// Package nvlog provides a SQLite-backed persistent fault log: a
// reference implementation of the fault.Sink collaborator.
//
// The log is append-only. Each write stores the four fields of a
// failure record (code, inner code, source file, line) plus the boot
// session that produced it, so the most recent fault survives a process
// reset and can be read back on the next boot.
//
// # Critical Patterns
//
//   - Append-only: records are never updated or deleted by this package.
//   - Deterministic reads: ORDER BY seq, with seq assigned by a
//     monotonic AUTOINCREMENT rowid, never by wall-clock timestamps.
//   - One session per Open: a UUIDv7 session ID groups all faults of a
//     single boot for post-mortem correlation.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// The on-medium format is owned by this package alone; the fault core
// only requires that the four record fields round-trip.
package nvlog
