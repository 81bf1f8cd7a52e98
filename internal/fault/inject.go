package fault

import "sync/atomic"

// Injector is the runtime fault-injection flag: a single shared code
// value that forces the next matching check to fail.
//
// The flag is the one piece of protocol state legitimately written from
// outside the normal control flow (a debugger or test agent), so it is
// atomic. Consumption is exactly-once per arm: a check that matches the
// armed code clears it, and the next check guarding the same code runs
// normally.
type Injector struct {
	flag atomic.Uint32
}

// NewInjector returns a disarmed injector.
func NewInjector() *Injector {
	return &Injector{}
}

// Arm sets the injection flag to code. Arming with Success disarms.
func (i *Injector) Arm(code Code) {
	i.flag.Store(uint32(code))
}

// Disarm clears the injection flag.
func (i *Injector) Disarm() {
	i.flag.Store(0)
}

// Armed returns the currently armed code, or Success when disarmed.
// Reading does not consume the flag.
func (i *Injector) Armed() Code {
	return Code(i.flag.Load())
}

// consume clears the flag and reports true iff it was armed with code.
// Compare-and-swap keeps the consume-once contract even if an external
// agent rearms concurrently.
func (i *Injector) consume(code Code) bool {
	if code == Success {
		return false
	}
	return i.flag.CompareAndSwap(uint32(code), 0)
}

// Op is a guarded operation: a driver call returning nonzero on success
// and zero on failure, matching the driver convention.
//
// Guarded calls are passed as Ops so build variants can substitute a
// forced-failure implementation without touching production call sites.
type Op func() int

// Fail is an Op that always fails. Build-time injection variants select
// it in place of a real driver op, producing a build dedicated to
// exercising one failure branch.
func Fail() int { return 0 }
