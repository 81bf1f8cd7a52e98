package testutil

import (
	"errors"

	"github.com/faultline-io/faultline/internal/fault"
)

// CountingSink is an in-memory fault.Sink that records every durable
// write. It can be primed to reject a number of leading writes to
// exercise logging-failure paths.
type CountingSink struct {
	writes  []fault.Context
	rejects int
}

// NewCountingSink returns an empty sink that accepts all writes.
func NewCountingSink() *CountingSink {
	return &CountingSink{}
}

// RejectNext makes the next n writes fail before being recorded.
func (s *CountingSink) RejectNext(n int) {
	s.rejects = n
}

// WriteContext implements fault.Sink.
func (s *CountingSink) WriteContext(ctx fault.Context) error {
	if s.rejects > 0 {
		s.rejects--
		return errors.New("sink unavailable")
	}
	s.writes = append(s.writes, ctx)
	return nil
}

// Writes returns the recorded contexts in write order.
func (s *CountingSink) Writes() []fault.Context {
	return s.writes
}

// Count returns the number of accepted writes.
func (s *CountingSink) Count() int {
	return len(s.writes)
}
