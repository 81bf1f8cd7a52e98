package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faultline-io/faultline/internal/device"
	"github.com/faultline-io/faultline/internal/fault"
	"github.com/faultline-io/faultline/internal/nvlog"
)

// bringUpConfig holds the flags shared by the demo and rollback
// commands.
type bringUpConfig struct {
	failAt   string
	inject   uint8
	dbPath   string
	rollback bool
}

// faultPayload is the JSON representation of a rendered fault record.
type faultPayload struct {
	Failed    bool     `json:"failed"`
	Code      uint8    `json:"code"`
	Name      string   `json:"name,omitempty"`
	Inner     uint32   `json:"inner"`
	Location  string   `json:"location,omitempty"`
	Persisted bool     `json:"persisted"`
	Events    []string `json:"events,omitempty"`
}

func payloadFromContext(ctx fault.Context, name fault.Namer, events []string) faultPayload {
	p := faultPayload{
		Failed:    ctx.Failed(),
		Code:      uint8(ctx.Code),
		Inner:     ctx.Inner,
		Persisted: ctx.Logged,
		Events:    events,
	}
	if ctx.Failed() {
		p.Location = ctx.Location()
		if name != nil {
			p.Name = name(ctx.Code)
		}
	}
	return p
}

// runBringUp executes one device bring-up under the selected discipline
// and reports the resulting fault record.
func runBringUp(cmd *cobra.Command, opts *RootOptions, cfg bringUpConfig) error {
	switch cfg.failAt {
	case "", "power", "sensor", "radio":
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown subsystem %q (power|sensor|radio)", cfg.failAt))
	}

	logger := opts.Logger()

	path := cfg.dbPath
	if path == "" {
		path = ":memory:"
	}
	log, err := nvlog.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening fault log", err)
	}
	defer log.Close()
	logger.Debug("fault log open", "path", path, "session", log.Session())

	checker := fault.NewChecker(log)
	if cfg.inject != 0 {
		checker.Injector().Arm(fault.Code(cfg.inject))
		logger.Info("armed runtime injection", "code", cfg.inject)
	}

	dev := &device.Device{FailAt: cfg.failAt}
	var runErr error
	if cfg.rollback {
		runErr = dev.InitWithRollback(checker)
	} else {
		runErr = dev.Init(checker)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	ctx := checker.Context()
	if out.JSON() {
		if err := out.Success(payloadFromContext(ctx, device.CodeName, dev.Events)); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, event := range dev.Events {
			fmt.Fprintln(w, event)
		}
		fmt.Fprintln(w)
		if err := fault.RenderContext(w, ctx, device.CodeName); err != nil {
			return err
		}
	}

	if runErr != nil {
		return NewExitError(ExitFailure, "bring-up failed")
	}
	return nil
}
