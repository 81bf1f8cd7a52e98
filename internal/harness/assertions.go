package harness

import (
	"fmt"
	"reflect"
	"strings"
)

// AssertionError reports one expectation that did not hold, with the
// step trace for debugging context.
type AssertionError struct {
	Field    string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Expectation failed: %s\n", e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nTrace:\n")
	for i, event := range e.Trace {
		if event.Type == "step" {
			fmt.Fprintf(&buf, "  [%d] %s (code %d): %s\n", i+1, event.Step, event.Code, event.Outcome)
		}
	}

	return buf.String()
}

// evaluateExpect compares a result against the scenario's expectations
// and returns one message per violated expectation. Absent expectation
// fields are not evaluated.
func evaluateExpect(result *Result, expect Expect) []string {
	var errs []string

	fail := func(field, expected, actual string) {
		errs = append(errs, (&AssertionError{
			Field:    field,
			Expected: expected,
			Actual:   actual,
			Trace:    result.Trace,
		}).Error())
	}

	if expect.Status != "" && result.Status != expect.Status {
		fail("status", expect.Status, result.Status)
	}
	if expect.Code != nil && uint8(result.Context.Code) != *expect.Code {
		fail("code", fmt.Sprintf("%d", *expect.Code), fmt.Sprintf("%d", result.Context.Code))
	}
	if expect.Inner != nil && result.Context.Inner != *expect.Inner {
		fail("inner", fmt.Sprintf("%d", *expect.Inner), fmt.Sprintf("%d", result.Context.Inner))
	}
	if expect.Persisted != nil && result.Context.Logged != *expect.Persisted {
		fail("persisted", fmt.Sprintf("%t", *expect.Persisted), fmt.Sprintf("%t", result.Context.Logged))
	}
	if expect.Writes != nil && result.Writes != *expect.Writes {
		fail("writes", fmt.Sprintf("%d", *expect.Writes), fmt.Sprintf("%d", result.Writes))
	}
	if expect.Cleanup != nil && !reflect.DeepEqual(result.Cleanup, expect.Cleanup) {
		fail("cleanup", fmt.Sprintf("%v", expect.Cleanup), fmt.Sprintf("%v", result.Cleanup))
	}

	return errs
}
