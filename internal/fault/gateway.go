package fault

import "fmt"

// Sink is the durable storage collaborator. Implementations must
// survive a process or hardware reset and be able to round-trip the
// code, inner code, and source location of a Context. The on-medium
// format, wear-leveling, and write atomicity are entirely the sink's
// concern.
type Sink interface {
	WriteContext(ctx Context) error
}

// Gateway is the idempotent hand-off from the failure record to
// persistent storage.
//
// Log is safe to call more than once per failure: a record that is
// already persisted, or that carries the success code, is a no-op. The
// record is marked persisted only after the sink write is confirmed, so
// a failed write leaves the record eligible for a later retry. The
// gateway itself never retries.
type Gateway struct {
	store *Store
	sink  Sink
}

// NewGateway binds a gateway to a store and a sink. A nil sink yields a
// gateway that reports every loggable fault as a logging failure, which
// keeps the check protocol usable before storage is wired up.
func NewGateway(store *Store, sink Sink) *Gateway {
	return &Gateway{store: store, sink: sink}
}

// Log persists the current failure record if it is loggable and not yet
// persisted. Returns nil on no-op or confirmed write; a sink error is
// returned unwrapped in meaning (the record stays unpersisted) but is
// never escalated beyond the caller.
func (g *Gateway) Log() error {
	snap := g.store.Snapshot()
	if !snap.Failed() || snap.Logged {
		return nil
	}
	if g.sink == nil {
		return fmt.Errorf("durable log: no sink configured")
	}
	if err := g.sink.WriteContext(snap); err != nil {
		return fmt.Errorf("durable log: %w", err)
	}
	g.store.markLogged()
	return nil
}
