package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faultline-io/faultline/internal/harness"
)

// scenarioOutcome is the JSON representation of one scenario run.
type scenarioOutcome struct {
	Scenario string   `json:"scenario"`
	Passed   bool     `json:"passed"`
	Status   string   `json:"status"`
	Errors   []string `json:"errors,omitempty"`
}

// NewScenarioCommand creates the command that runs conformance
// scenarios outside go test.
func NewScenarioCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario <file-or-dir>...",
		Short: "Run fault-injection conformance scenarios",
		Long: "Runs YAML scenarios against the fault protocol and reports each\n" +
			"scenario's expectations. Directories are expanded to every scenario\n" +
			"file they contain. Exits 1 when any scenario fails.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd, opts, args)
		},
	}
	return cmd
}

func runScenarios(cmd *cobra.Command, opts *RootOptions, paths []string) error {
	scenarios, err := collectScenarios(paths)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading scenarios", err)
	}

	h := harness.New(opts.Logger())
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	w := cmd.OutOrStdout()

	outcomes := make([]scenarioOutcome, 0, len(scenarios))
	failed := 0
	for _, scenario := range scenarios {
		result, err := h.Run(scenario)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("running scenario %s", scenario.Name), err)
		}

		outcomes = append(outcomes, scenarioOutcome{
			Scenario: scenario.Name,
			Passed:   result.Passed(),
			Status:   result.Status,
			Errors:   result.Errors,
		})

		if !out.JSON() {
			if result.Passed() {
				fmt.Fprintf(w, "PASS %s\n", scenario.Name)
			} else {
				fmt.Fprintf(w, "FAIL %s\n", scenario.Name)
				for _, msg := range result.Errors {
					fmt.Fprintf(w, "  %s\n", msg)
				}
			}
		}
		if !result.Passed() {
			failed++
		}
	}

	if out.JSON() {
		if err := out.Success(outcomes); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "\n%d scenarios, %d failed\n", len(scenarios), failed)
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", failed, len(scenarios)))
	}
	return nil
}

// collectScenarios expands file and directory arguments into loaded
// scenarios, preserving argument order.
func collectScenarios(paths []string) ([]*harness.Scenario, error) {
	var scenarios []*harness.Scenario
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			loaded, err := harness.LoadScenarioDir(path)
			if err != nil {
				return nil, err
			}
			scenarios = append(scenarios, loaded...)
			continue
		}
		scenario, err := harness.LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}
