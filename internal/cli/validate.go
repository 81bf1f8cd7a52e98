package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faultline-io/faultline/internal/codes"
)

// codeEntry is the JSON representation of one code-table row.
type codeEntry struct {
	Name string `json:"name"`
	Code uint8  `json:"code"`
	Hex  string `json:"hex"`
}

// NewValidateCommand creates the command that validates a CUE failure
// code table and prints its entries.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <codes.cue>",
		Short: "Validate a failure code table",
		Long: "Loads a CUE code table, checks that every entry names a unique\n" +
			"code in the 1-255 range, and prints the table sorted by code.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, args[0])
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, opts *RootOptions, path string) error {
	if _, err := os.Stat(path); err != nil {
		return WrapExitError(ExitCommandError, "reading code table", err)
	}

	table, err := codes.Load(path)
	if err != nil {
		var loadErr *codes.LoadError
		if errors.As(err, &loadErr) {
			return WrapExitError(ExitFailure, "invalid code table", err)
		}
		return WrapExitError(ExitCommandError, "loading code table", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	entries := make([]codeEntry, 0, table.Len())
	for _, code := range table.Codes() {
		entries = append(entries, codeEntry{
			Name: table.Name(code),
			Code: uint8(code),
			Hex:  fmt.Sprintf("0x%02X", uint8(code)),
		})
	}

	if out.JSON() {
		return out.Success(struct {
			Path    string      `json:"path"`
			Entries []codeEntry `json:"entries"`
		}{Path: path, Entries: entries})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %d codes\n", path, table.Len())
	for _, e := range entries {
		fmt.Fprintf(w, "  %-16s %3d (%s)\n", e.Name, e.Code, e.Hex)
	}
	return nil
}
