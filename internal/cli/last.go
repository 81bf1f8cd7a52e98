package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faultline-io/faultline/internal/codes"
	"github.com/faultline-io/faultline/internal/fault"
	"github.com/faultline-io/faultline/internal/nvlog"
)

// NewLastCommand creates the command that renders the most recently
// persisted fault, typically after a reset.
func NewLastCommand(opts *RootOptions) *cobra.Command {
	var (
		dbPath    string
		codesPath string
	)

	cmd := &cobra.Command{
		Use:   "last",
		Short: "Show the last persisted fault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLast(cmd, opts, dbPath, codesPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "persistent fault log path (required)")
	cmd.Flags().StringVar(&codesPath, "codes", "", "CUE code table for human-readable names")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runLast(cmd *cobra.Command, opts *RootOptions, dbPath, codesPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return WrapExitError(ExitCommandError, "fault log not found", err)
	}

	var namer fault.Namer
	if codesPath != "" {
		table, err := codes.Load(codesPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "loading code table", err)
		}
		namer = table.Namer()
	}

	log, err := nvlog.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening fault log", err)
	}
	defer log.Close()

	rec, ok, err := log.Last()
	if err != nil {
		return WrapExitError(ExitCommandError, "reading fault log", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if !ok {
		if out.JSON() {
			return out.Success(faultPayload{})
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no fault recorded")
		return err
	}

	if out.JSON() {
		payload := payloadFromContext(rec.Context(), namer, nil)
		return out.Success(struct {
			faultPayload
			Session string `json:"session"`
		}{payload, rec.Session})
	}

	return fault.RenderContext(cmd.OutOrStdout(), rec.Context(), namer)
}
