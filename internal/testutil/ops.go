// Package testutil provides deterministic test doubles for the fault
// protocol: scripted guarded operations, a counting in-memory sink, and
// a teardown recorder. The harness uses them for reproducible scenario
// execution and golden-trace comparison; package tests use them
// directly.
package testutil

import "github.com/faultline-io/faultline/internal/fault"

// ScriptedOp is a guarded operation that returns predetermined results
// in order and counts invocations, so tests can assert exactly which
// guarded calls ran.
//
// The final result repeats once the script is exhausted, letting a
// one-element script model a stable driver.
type ScriptedOp struct {
	results []int
	calls   int
}

// NewScriptedOp creates an op returning the given results in order.
// Results follow the driver convention: nonzero success, zero failure.
func NewScriptedOp(results ...int) *ScriptedOp {
	if len(results) == 0 {
		results = []int{1}
	}
	return &ScriptedOp{results: results}
}

// Op returns the fault.Op view of the script.
func (o *ScriptedOp) Op() fault.Op {
	return o.invoke
}

// Calls returns how many times the op has been invoked.
func (o *ScriptedOp) Calls() int {
	return o.calls
}

func (o *ScriptedOp) invoke() int {
	idx := o.calls
	if idx >= len(o.results) {
		idx = len(o.results) - 1
	}
	o.calls++
	return o.results[idx]
}

// TeardownRecorder yields labeled undo funcs and records the order they
// execute, for asserting reverse-acquisition teardown.
type TeardownRecorder struct {
	order []string
}

// Undo returns an undo func that records label when run.
func (r *TeardownRecorder) Undo(label string) func() {
	return func() { r.order = append(r.order, label) }
}

// Order returns the labels of executed undos in execution order.
func (r *TeardownRecorder) Order() []string {
	return r.order
}
