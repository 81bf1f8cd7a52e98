// Package harness provides scenario-based conformance testing for the
// fault protocol.
//
// Scenarios are YAML files declaring a sequence of guarded steps, the
// check discipline to run them under, an optional armed runtime
// injection, and expectations on the final record:
//
//	name: radio_fails
//	description: "Radio startup failure is recorded and persisted"
//	mode: failfast
//	steps:
//	  - name: power
//	    code: 1
//	  - name: sensor
//	    code: 2
//	  - name: radio
//	    code: 3
//	    result: fail
//	expect:
//	  status: failed
//	  code: 3
//	  persisted: true
//	  writes: 1
//
// Rollback scenarios add undo labels to steps and may assert the exact
// teardown order:
//
//	mode: rollback
//	steps:
//	  - name: power
//	    code: 1
//	    undo: power_off
//	expect:
//	  cleanup: [power_off]
//
// # Deterministic Traces
//
// Every run executes against a fresh checker and an in-memory counting
// sink, and records a TraceEvent list (inject, step pass/fail/injected/
// skipped, cleanup, durable_write) containing no wall-clock or source
// position data. Identical scenarios therefore produce identical
// traces, which enables golden snapshot comparison via RunWithGolden.
//
// To regenerate golden files:
//
//	go test ./internal/harness -update
package harness
