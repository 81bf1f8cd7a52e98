package harness

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"golang.org/x/text/unicode/norm"
)

// TraceSnapshot is the golden-file representation of one scenario run:
// the full trace plus the final record, serialized as indented JSON.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Trace        []TraceEvent `json:"trace"`
	Final        FinalState   `json:"final"`
}

// FinalState summarizes the record at the unified exit.
type FinalState struct {
	Status    string   `json:"status"`
	Code      uint8    `json:"code"`
	Inner     uint32   `json:"inner"`
	Persisted bool     `json:"persisted"`
	Cleanup   []string `json:"cleanup,omitempty"`
}

// Snapshot builds the golden representation of a result.
func Snapshot(result *Result) TraceSnapshot {
	return TraceSnapshot{
		ScenarioName: result.Scenario,
		Trace:        result.Trace,
		Final: FinalState{
			Status:    result.Status,
			Code:      uint8(result.Context.Code),
			Inner:     result.Context.Inner,
			Persisted: result.Context.Logged,
			Cleanup:   result.Cleanup,
		},
	}
}

// RunWithGolden executes a scenario, reports expectation failures on t,
// and compares the trace snapshot against testdata/golden/<name>.golden.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) *Result {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("scenario %s failed to run: %v", scenario.Name, err)
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	data, err := json.MarshalIndent(Snapshot(result), "", "  ")
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, GoldenName(scenario.Name), data)

	return result
}

// GoldenName derives a stable fixture name from a scenario name:
// NFC-normalized, lowercased, with anything outside [a-z0-9_-] mapped
// to an underscore. Normalization keeps composed and decomposed
// spellings of the same name pointing at one fixture.
func GoldenName(name string) string {
	name = norm.NFC.String(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf("scenario_%x", name)
	}
	return b.String()
}
