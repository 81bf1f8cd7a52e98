package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Check disciplines a scenario can run under.
const (
	ModeFailFast = "failfast"
	ModeRollback = "rollback"
)

// Scenario defines a conformance test: a sequence of guarded steps run
// under one check discipline, with expectations on the final record.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Mode selects the check discipline: "failfast" (default) or
	// "rollback".
	Mode string `yaml:"mode,omitempty"`

	// Inject arms the runtime injection flag with this code before the
	// first step. Zero means no injection.
	Inject uint8 `yaml:"inject,omitempty"`

	// Steps is the ordered list of guarded operations.
	Steps []Step `yaml:"steps"`

	// Expect validates the outcome after the last step.
	Expect Expect `yaml:"expect"`
}

// Step is one guarded operation in a scenario.
type Step struct {
	// Name identifies the step in traces; unique within the scenario.
	Name string `yaml:"name"`

	// Code is the error code guarding this step (1..255).
	Code uint8 `yaml:"code"`

	// Result declares the guarded call's real outcome: "ok" (default)
	// or "fail".
	Result string `yaml:"result,omitempty"`

	// ResultValue overrides the driver's numeric return value for "ok"
	// steps, so injection scenarios can assert the preserved inner code.
	ResultValue *int `yaml:"result_value,omitempty"`

	// Undo labels the teardown for this step's resource. Only valid in
	// rollback mode.
	Undo string `yaml:"undo,omitempty"`
}

// fails reports the declared real outcome of the guarded call.
func (s Step) fails() bool {
	return s.Result == "fail"
}

// resultValue returns the guarded call's numeric result under the
// driver convention.
func (s Step) resultValue() int {
	if s.fails() {
		return 0
	}
	if s.ResultValue != nil {
		return *s.ResultValue
	}
	return 1
}

// Expect declares scenario expectations. Absent fields are not
// asserted.
type Expect struct {
	// Status is "ok" or "failed".
	Status string `yaml:"status,omitempty"`

	// Code is the expected recorded failure code.
	Code *uint8 `yaml:"code,omitempty"`

	// Inner is the expected recorded inner code.
	Inner *uint32 `yaml:"inner,omitempty"`

	// Persisted is the expected durable-logging flag.
	Persisted *bool `yaml:"persisted,omitempty"`

	// Writes is the expected number of durable writes.
	Writes *int `yaml:"writes,omitempty"`

	// Cleanup is the expected teardown order, exact match. An empty
	// (non-absent) list asserts no teardown ran.
	Cleanup []string `yaml:"cleanup,omitempty"`
}

// Validate checks scenario well-formedness before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario: name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %s: at least one step is required", s.Name)
	}
	switch s.Mode {
	case "", ModeFailFast, ModeRollback:
	default:
		return fmt.Errorf("scenario %s: invalid mode %q", s.Name, s.Mode)
	}

	seen := make(map[string]bool, len(s.Steps))
	for i, step := range s.Steps {
		if step.Name == "" {
			return fmt.Errorf("scenario %s: step %d: name is required", s.Name, i)
		}
		if seen[step.Name] {
			return fmt.Errorf("scenario %s: duplicate step name %q", s.Name, step.Name)
		}
		seen[step.Name] = true
		if step.Code == 0 {
			return fmt.Errorf("scenario %s: step %s: code 0 is reserved for success", s.Name, step.Name)
		}
		switch step.Result {
		case "", "ok", "fail":
		default:
			return fmt.Errorf("scenario %s: step %s: invalid result %q", s.Name, step.Name, step.Result)
		}
		if step.Undo != "" && s.Mode != ModeRollback {
			return fmt.Errorf("scenario %s: step %s: undo requires rollback mode", s.Name, step.Name)
		}
	}

	switch s.Expect.Status {
	case "", "ok", "failed":
	default:
		return fmt.Errorf("scenario %s: invalid expected status %q", s.Name, s.Expect.Status)
	}

	return nil
}

// mode returns the effective discipline.
func (s *Scenario) mode() string {
	if s.Mode == "" {
		return ModeFailFast
	}
	return s.Mode
}

// LoadScenario reads and validates a scenario from a YAML file.
// Unknown fields are rejected to catch expectation typos.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var scenario Scenario
	if err := dec.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml/*.yml scenario under dir, sorted
// by file name for deterministic ordering.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan scenarios: %w", err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, nil
}
