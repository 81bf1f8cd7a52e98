package cli

import "github.com/spf13/cobra"

// NewRollbackCommand creates the rollback bring-up demo command.
func NewRollbackCommand(opts *RootOptions) *cobra.Command {
	cfg := bringUpConfig{rollback: true}

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Run the device bring-up with rollback teardown",
		Long: "Brings up power, sensor, and radio under the rollback discipline: a\n" +
			"failure tears down everything acquired before it, in reverse order,\n" +
			"and the unified exit persists the fault exactly once.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBringUp(cmd, opts, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.failAt, "fail", "", "subsystem whose driver fails (power|sensor|radio)")
	cmd.Flags().Uint8Var(&cfg.inject, "inject", 0, "arm runtime injection with this error code")
	cmd.Flags().StringVar(&cfg.dbPath, "db", "", "persistent fault log path (default: in-memory)")

	return cmd
}
