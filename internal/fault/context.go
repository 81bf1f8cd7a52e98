package fault

import (
	"errors"
	"fmt"
)

// Code is an application-defined numeric error identifier.
// The codespace is owned by the application; 0 is reserved for success.
type Code uint8

// Success is the reserved "no failure" code. A Context carrying Success
// is the initial state and is never a loggable fault.
const Success Code = 0

// Context is the failure record: what failed, where, and whether the
// record has been durably persisted.
//
// Inner carries a driver- or hardware-specific detail value whose
// meaning is opaque to this package. When a failure is forced by
// runtime injection, Inner preserves the guarded call's real result for
// forensic comparison.
type Context struct {
	Code   Code
	Inner  uint32
	File   string
	Line   int
	Logged bool
}

// Failed reports whether the record describes a failure.
func (c Context) Failed() bool {
	return c.Code != Success
}

// Location returns the captured call site as "file:line", or "unknown"
// if no failure has been recorded.
func (c Context) Location() string {
	if c.File == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", c.File, c.Line)
}

// Store owns the process-scoped failure record.
//
// A process has at most one Store mutated by checks; tests construct
// independent instances. Store has no internal synchronization - the
// execution model is single logical writer (see package doc).
type Store struct {
	ctx Context
}

// NewStore returns a store initialized to the success state.
func NewStore() *Store {
	return &Store{}
}

// Record overwrites the failure record wholesale: all four fields are
// replaced together and Logged resets to false. No partial update is
// observable to readers within the single-writer model.
func (s *Store) Record(code Code, inner uint32, file string, line int) {
	s.ctx = Context{
		Code:  code,
		Inner: inner,
		File:  file,
		Line:  line,
	}
}

// Snapshot returns a copy of the current record. Reading never mutates
// the store.
func (s *Store) Snapshot() Context {
	return s.ctx
}

// markLogged flips the persistence flag. Only the Gateway calls this,
// and only after a confirmed durable write.
func (s *Store) markLogged() {
	s.ctx.Logged = true
}

// Error is the failure sentinel returned by fail-fast checks and by
// Sequence.Finish. It identifies the check site; the full record lives
// in the Store.
type Error struct {
	Code Code
	File string
	Line int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("check failed: code %d (0x%02X) at %s:%d", e.Code, uint8(e.Code), e.File, e.Line)
}

// CodeOf extracts the failure code from an error returned by a check.
// Returns Success for nil or foreign errors. Uses errors.As semantics
// via the *Error type.
func CodeOf(err error) Code {
	if fe, ok := asError(err); ok {
		return fe.Code
	}
	return Success
}

// IsCheckFailure reports whether err originated from a check operation.
// Uses errors.As to handle wrapped errors.
func IsCheckFailure(err error) bool {
	_, ok := asError(err)
	return ok
}

func asError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
