package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/faultline-io/faultline/internal/fault"
	"github.com/faultline-io/faultline/internal/testutil"
)

// TraceEvent is one entry in a scenario's deterministic trace. Events
// carry no wall-clock or source-position data, so identical scenarios
// produce byte-identical traces.
type TraceEvent struct {
	// Type is "inject", "step", "cleanup", or "durable_write".
	Type string `json:"type"`

	// Step names the step or teardown label, for step/cleanup events.
	Step string `json:"step,omitempty"`

	// Code is the guarded or persisted error code.
	Code uint8 `json:"code,omitempty"`

	// Outcome is "pass", "fail", "injected", or "skipped" for step
	// events.
	Outcome string `json:"outcome,omitempty"`
}

// Step outcomes.
const (
	OutcomePass     = "pass"
	OutcomeFail     = "fail"
	OutcomeInjected = "injected"
	OutcomeSkipped  = "skipped"
)

// Result captures one scenario execution.
type Result struct {
	Scenario string
	Status   string // "ok" or "failed"
	Context  fault.Context
	Cleanup  []string
	Writes   int
	Trace    []TraceEvent

	// Errors lists expectation failures; empty means the scenario
	// passed.
	Errors []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Errors) == 0
}

func (r *Result) addEvent(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}

// Harness executes scenarios against fresh protocol state.
type Harness struct {
	logger *slog.Logger
}

// New creates a harness. A nil logger suppresses diagnostics.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with the default harness.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a scenario and returns its result with expectation
// errors populated.
//
// Each run gets a fresh checker and an isolated counting sink, so
// scenarios never observe each other's state.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Scenario: scenario.Name, Cleanup: []string{}}
	sink := testutil.NewCountingSink()
	ts := &tracingSink{sink: sink}
	checker := fault.NewChecker(ts)

	if scenario.Inject != 0 {
		checker.Injector().Arm(fault.Code(scenario.Inject))
		result.addEvent(TraceEvent{Type: "inject", Code: scenario.Inject})
		h.logger.Info("armed runtime injection", "scenario", scenario.Name, "code", scenario.Inject)
	}

	var runErr error
	switch scenario.mode() {
	case ModeFailFast:
		runErr = h.runFailFast(checker, ts, scenario, result)
	case ModeRollback:
		runErr = h.runRollback(checker, ts, scenario, result)
	}
	ts.flush(result)

	result.Status = "ok"
	if runErr != nil {
		result.Status = "failed"
	}
	result.Context = checker.Context()
	result.Writes = sink.Count()
	result.Errors = evaluateExpect(result, scenario.Expect)

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"status", result.Status,
		"expectation_errors", len(result.Errors))

	return result, nil
}

// runFailFast executes the steps under the fail-fast discipline,
// short-circuiting at the first failing check exactly as a caller
// returning the sentinel would.
func (h *Harness) runFailFast(checker *fault.Checker, ts *tracingSink, scenario *Scenario, result *Result) error {
	var failErr error
	for _, step := range scenario.Steps {
		if failErr != nil {
			result.addEvent(TraceEvent{Type: "step", Step: step.Name, Code: step.Code, Outcome: OutcomeSkipped})
			continue
		}
		err := checker.Check(step.resultValue(), fault.Code(step.Code))
		result.addEvent(TraceEvent{Type: "step", Step: step.Name, Code: step.Code, Outcome: stepOutcome(step, err)})
		ts.flush(result)
		if err != nil {
			failErr = err
		}
	}
	return failErr
}

// runRollback executes the steps under the rollback discipline and
// finishes through the unified exit, which performs teardown and the
// required durable logging.
func (h *Harness) runRollback(checker *fault.Checker, ts *tracingSink, scenario *Scenario, result *Result) error {
	seq := checker.Sequence()
	for _, step := range scenario.Steps {
		if seq.Failed() {
			result.addEvent(TraceEvent{Type: "step", Step: step.Name, Code: step.Code, Outcome: OutcomeSkipped})
			continue
		}

		var undo func()
		if step.Undo != "" {
			label := step.Undo
			undo = func() {
				result.Cleanup = append(result.Cleanup, label)
				result.addEvent(TraceEvent{Type: "cleanup", Step: label})
			}
		}

		ok := seq.Step(step.resultValue(), fault.Code(step.Code), undo)
		outcome := OutcomePass
		if !ok {
			outcome = OutcomeFail
			if !step.fails() {
				outcome = OutcomeInjected
			}
		}
		result.addEvent(TraceEvent{Type: "step", Step: step.Name, Code: step.Code, Outcome: outcome})
	}
	return seq.Finish()
}

func stepOutcome(step Step, err error) string {
	if err == nil {
		return OutcomePass
	}
	if !step.fails() {
		return OutcomeInjected
	}
	return OutcomeFail
}

// tracingSink buffers a durable_write trace event for every accepted
// write, delegating storage to the counting sink. Events are flushed
// after the step (or unified exit) that triggered them, so a step's
// trace entry always precedes its write.
type tracingSink struct {
	sink    *testutil.CountingSink
	pending []TraceEvent
}

func (t *tracingSink) WriteContext(ctx fault.Context) error {
	if err := t.sink.WriteContext(ctx); err != nil {
		return fmt.Errorf("scenario sink: %w", err)
	}
	t.pending = append(t.pending, TraceEvent{Type: "durable_write", Code: uint8(ctx.Code)})
	return nil
}

func (t *tracingSink) flush(result *Result) {
	result.Trace = append(result.Trace, t.pending...)
	t.pending = nil
}
