package fault

import "runtime"

// Checker owns the failure protocol state for one logical thread of
// control: the context store, the runtime injector, and the logging
// gateway. Applications hold a single Checker for the process; tests
// construct independent instances.
type Checker struct {
	store    *Store
	injector *Injector
	gateway  *Gateway
}

// NewChecker wires a checker to a durable sink. The sink may be nil
// while storage is not yet available; checks still record and propagate,
// and a later Gateway().Log() can persist the record.
func NewChecker(sink Sink) *Checker {
	store := NewStore()
	return &Checker{
		store:    store,
		injector: NewInjector(),
		gateway:  NewGateway(store, sink),
	}
}

// Store returns the failure record store for read access.
func (c *Checker) Store() *Store {
	return c.store
}

// Injector returns the runtime injection flag.
func (c *Checker) Injector() *Injector {
	return c.injector
}

// Gateway returns the durable logging gateway, for exit sequences that
// need to invoke it directly.
func (c *Checker) Gateway() *Gateway {
	return c.gateway
}

// Context returns a copy of the current failure record.
func (c *Checker) Context() Context {
	return c.store.Snapshot()
}

// Check is the fail-fast check operation. result follows the driver
// convention (zero = failure). On failure - real or forced by a
// matching armed injection - it records the context at the call site,
// invokes the logging gateway, and returns the failure sentinel; the
// caller returns it immediately, so no statement after the first
// failing check executes. On success it returns nil with no side
// effect.
func (c *Checker) Check(result int, code Code) error {
	return c.check(result, code, 2)
}

// CheckOK is Check for guarded operations exposing a boolean outcome.
func (c *Checker) CheckOK(ok bool, code Code) error {
	result := 0
	if ok {
		result = 1
	}
	return c.check(result, code, 2)
}

// Run evaluates a guarded Op and applies Check semantics to its result.
// Passing the call as an Op is what lets forced-failure builds swap in
// Fail without touching the call site.
func (c *Checker) Run(op Op, code Code) error {
	return c.check(op(), code, 2)
}

// check fires on a real zero result or on a consumed injection match.
// Injection preserves the real result as the inner code; real failures
// record inner 0.
func (c *Checker) check(result int, code Code, skip int) error {
	injected := c.injector.consume(code)
	if result != 0 && !injected {
		return nil
	}
	var inner uint32
	if injected {
		inner = uint32(result)
	}
	file, line := callSite(skip + 1)
	c.store.Record(code, inner, file, line)
	// Logging failure is not fatal to the protocol: the record stays
	// unpersisted and a later gateway call may retry.
	_ = c.gateway.Log()
	return &Error{Code: code, File: file, Line: line}
}

// recordOnly is the rollback-side detection: identical to check but the
// gateway is never invoked - the enclosing Sequence's Finish owns the
// durable logging obligation.
func (c *Checker) recordOnly(result int, code Code, skip int) bool {
	injected := c.injector.consume(code)
	if result != 0 && !injected {
		return true
	}
	var inner uint32
	if injected {
		inner = uint32(result)
	}
	file, line := callSite(skip + 1)
	c.store.Record(code, inner, file, line)
	return false
}

// callSite captures the guarded call's source position. The file is
// reduced to its base name to match the compact form persistent sinks
// store.
func callSite(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", 0
	}
	return base(file), line
}

func base(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
