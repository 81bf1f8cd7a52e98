package fault

// Sequence is the rollback check discipline for functions that acquire
// resources and must tear them down in reverse order on partial
// failure.
//
// Each successful Step registers the resource's undo; the first failing
// step records the failure context (without logging it) and latches the
// sequence, so every later step is a no-op and the teardown set is
// frozen at the exact failure depth. Finish unwinds the undos in
// reverse acquisition order and, when the run failed, performs the
// durable logging exactly once.
//
// The canonical shape:
//
//	func bringUp(c *fault.Checker) error {
//		seq := c.Sequence()
//		if !seq.Run(powerOn, ErrPower, powerOff) {
//			return seq.Finish()
//		}
//		if !seq.Run(sensorInit, ErrSensor, sensorDeinit) {
//			return seq.Finish()
//		}
//		return seq.Finish()
//	}
//
// Because latched steps are no-ops, running straight through to a
// single Finish call is equally correct; the early returns only skip
// work that would be skipped anyway.
type Sequence struct {
	checker *Checker
	undos   []func()
	failed  bool
	done    bool
	err     *Error
}

// Sequence starts a rollback sequence bound to this checker.
func (c *Checker) Sequence() *Sequence {
	return &Sequence{checker: c}
}

// Step evaluates a guarded acquisition under the rollback discipline.
// On success it registers undo (nil is allowed for steps with nothing
// to tear down) and returns true. On failure it records the context,
// latches the sequence, and returns false. It never invokes the logging
// gateway; Finish owns that.
func (s *Sequence) Step(result int, code Code, undo func()) bool {
	return s.step(result, code, undo, 2)
}

// StepOK is Step for guarded operations exposing a boolean outcome.
func (s *Sequence) StepOK(ok bool, code Code, undo func()) bool {
	result := 0
	if ok {
		result = 1
	}
	return s.step(result, code, undo, 2)
}

// Run evaluates a guarded Op under the rollback discipline. Once the
// sequence is latched the op is not evaluated at all, preserving
// first-fault semantics for straight-line callers.
func (s *Sequence) Run(op Op, code Code, undo func()) bool {
	if s.failed || s.done {
		return false
	}
	return s.step(op(), code, undo, 2)
}

func (s *Sequence) step(result int, code Code, undo func(), skip int) bool {
	if s.failed || s.done {
		return false
	}
	if !s.checker.recordOnly(result, code, skip+1) {
		s.failed = true
		snap := s.checker.store.Snapshot()
		s.err = &Error{Code: snap.Code, File: snap.File, Line: snap.Line}
		return false
	}
	if undo != nil {
		s.undos = append(s.undos, undo)
	}
	return true
}

// Failed reports whether a step in this sequence has already failed.
func (s *Sequence) Failed() bool {
	return s.failed
}

// Finish is the unified exit of the sequence. When a step failed it
// tears down the registered undos in reverse acquisition order and then
// invokes the logging gateway - the required exit obligation of the
// rollback discipline, enforced here rather than left to the caller.
// Returns the failure sentinel of the first failing step, or nil when
// every step passed. Idempotent: a second call does nothing beyond
// returning the same outcome.
func (s *Sequence) Finish() error {
	if s.done {
		return s.finalErr()
	}
	s.done = true
	if !s.failed {
		return nil
	}
	for i := len(s.undos) - 1; i >= 0; i-- {
		s.undos[i]()
	}
	_ = s.checker.gateway.Log()
	return s.err
}

func (s *Sequence) finalErr() error {
	if s.failed {
		return s.err
	}
	return nil
}
