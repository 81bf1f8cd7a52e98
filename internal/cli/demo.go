package cli

import "github.com/spf13/cobra"

// NewDemoCommand creates the fail-fast bring-up demo command.
func NewDemoCommand(opts *RootOptions) *cobra.Command {
	cfg := bringUpConfig{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the fail-fast device bring-up",
		Long: "Brings up power, sensor, and radio with fail-fast checks. The first\n" +
			"failing driver is recorded with its source location, persisted, and\n" +
			"rendered. Exits 1 when a fault was observed.",
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
