package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: sample
mode: rollback
inject: 3
steps:
  - name: power
    code: 1
    undo: power_off
  - name: radio
    code: 3
    result: fail
expect:
  status: failed
  code: 3
  cleanup: [power_off]
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "sample", scenario.Name)
	assert.Equal(t, ModeRollback, scenario.mode())
	assert.Equal(t, uint8(3), scenario.Inject)
	require.Len(t, scenario.Steps, 2)
	assert.True(t, scenario.Steps[1].fails())
	assert.Equal(t, 0, scenario.Steps[1].resultValue())
	assert.Equal(t, 1, scenario.Steps[0].resultValue())
	require.NotNil(t, scenario.Expect.Code)
	assert.Equal(t, uint8(3), *scenario.Expect.Code)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `
name: typo
steps:
  - name: power
    code: 1
expects:
  status: ok
`)

	_, err := LoadScenario(path)
	require.Error(t, err, "unknown top-level field must be rejected")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name     string
		scenario Scenario
		want     string
	}{
		{
			name:     "missing name",
			scenario: Scenario{Steps: []Step{{Name: "a", Code: 1}}},
			want:     "name is required",
		},
		{
			name:     "no steps",
			scenario: Scenario{Name: "s"},
			want:     "at least one step",
		},
		{
			name:     "bad mode",
			scenario: Scenario{Name: "s", Mode: "sideways", Steps: []Step{{Name: "a", Code: 1}}},
			want:     "invalid mode",
		},
		{
			name:     "reserved code",
			scenario: Scenario{Name: "s", Steps: []Step{{Name: "a", Code: 0}}},
			want:     "reserved for success",
		},
		{
			name:     "duplicate step",
			scenario: Scenario{Name: "s", Steps: []Step{{Name: "a", Code: 1}, {Name: "a", Code: 2}}},
			want:     "duplicate step name",
		},
		{
			name:     "bad result",
			scenario: Scenario{Name: "s", Steps: []Step{{Name: "a", Code: 1, Result: "maybe"}}},
			want:     "invalid result",
		},
		{
			name:     "undo outside rollback",
			scenario: Scenario{Name: "s", Steps: []Step{{Name: "a", Code: 1, Undo: "u"}}},
			want:     "undo requires rollback mode",
		},
		{
			name:     "bad expected status",
			scenario: Scenario{Name: "s", Steps: []Step{{Name: "a", Code: 1}}, Expect: Expect{Status: "meh"}},
			want:     "invalid expected status",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.scenario.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadScenarioDir_SortedAndComplete(t *testing.T) {
	scenarios, err := LoadScenarioDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Contains(t, names, "radio_fails")
	assert.Contains(t, names, "rollback_sensor_fails")
}

func TestLoadScenarioDir_Empty(t *testing.T) {
	_, err := LoadScenarioDir(t.TempDir())
	require.Error(t, err)
}
