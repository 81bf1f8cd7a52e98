// Package fault implements a deterministic fault-capture-and-propagation
// protocol for control software: a single record of the most recent
// failure, two propagation disciplines (fail-fast and rollback), an
// idempotent hand-off to durable storage, and a fault-injection hook for
// exhaustive failure-path coverage.
//
// # Failure Context
//
// A Store holds exactly one Context record: the numeric code of the
// last failure, an opaque 32-bit inner code for driver detail, the
// source location of the failing check, and whether the record has been
// durably persisted. The record is overwritten wholesale on each new
// failure; no partial update is ever observable.
//
// # Check Disciplines
//
// Checker.Check evaluates a guarded operation's result and, on failure,
// records the context, hands it to the Gateway, and returns a *Error
// sentinel so the enclosing function can return immediately (fail-fast,
// first-fault semantics).
//
// Checker.Sequence supports functions that acquire resources and must
// tear them down in reverse order on partial failure. Each Step
// registers an undo on success; the first failing step records the
// context and latches the sequence, making later steps no-ops.
// Sequence.Finish unwinds the registered undos in reverse acquisition
// order and then performs the durable logging exactly once. Rollback
// steps never log themselves; Finish owns that obligation.
//
// # Fault Injection
//
// The Injector holds a single armed code, writable by an external
// debugging agent while the process runs. A check guarding that code
// treats its guarded call as failed, preserves the call's real result
// as the inner code, and clears the flag (consume-once). Build variants
// force a specific check by swapping the guarded Op for Fail at build
// time; the protocol cannot distinguish a forced failure from a real
// one.
//
// # Concurrency
//
// The Store is process-scoped mutable state with no internal locking.
// The execution model is single logical writer: callers that issue
// checks from concurrent tasks or interrupt-like contexts must
// serialize externally. The Injector flag is the one exception and is
// atomic, because it is legitimately written from outside the normal
// control flow.
package fault
