package cmd

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	lxerrors "github.com/Aman-CERP/logexec/internal/errors"
	"github.com/Aman-CERP/logexec/internal/invocation"
	"github.com/Aman-CERP/logexec/internal/logging"
	"github.com/Aman-CERP/logexec/internal/output"
)

var errDivisionByZero = errors.New("division by zero")

// calculator carries its own logger, so traced methods need no logger argument.
type calculator struct {
	log *logging.Logger
}

func (c *calculator) Logger() *logging.Logger { return c.log }

func newDemoCmd() *cobra.Command {
	var flags loggerFlags

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Trace a few sample calls into a run log",
		Long: `Initialize a run log and trace sample calls through each logger lookup:
an explicit logger argument, a receiver that carries a logger, and no logger
at all (root logger with a warning). A failing call shows that errors reach
the caller unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, &flags)
		},
	}

	flags.register(cmd)

	return cmd
}

func runDemo(cmd *cobra.Command, flags *loggerFlags) error {
	cfg, err := flags.load(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d, err := invocation.New(
		invocation.WithLevel(cfg.TraceLevel()),
		invocation.WithMessage(cfg.Trace.Message),
		invocation.WithRegistry(s.registry),
		invocation.WithAdvisories(s.advise),
	)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())

	add := invocation.Wrap2(d, "add", func(a, b int) int { return a + b })
	out.Successf("add(2, 3, logger=%s) = %d", s.logger.Name(), add(2, 3, invocation.WithLogger(s.logger)))
	out.Successf("add(2, 3) = %d", add(2, 3))

	scale := invocation.Wrap2(d, "calculator.scale", func(_ *calculator, x float64) float64 { return x * 2.5 })
	out.Successf("calculator.scale(4) = %g", scale(&calculator{log: s.logger}, 4))

	divide := d.Wrap("divide", func(args []any, _ invocation.Kwargs) (any, error) {
		a, b := args[0].(int), args[1].(int)
		if b == 0 {
			return nil, errDivisionByZero
		}
		return a / b, nil
	})
	if _, err := divide([]any{1, 0}, invocation.Kwargs{invocation.LoggerKey: s.logger}); err != nil {
		s.logger.Slog().Error("traced call failed", logAttrs(lxerrors.FormatForLog(err))...)
		out.Warningf("divide(1, 0) failed: %v", err)
	}

	return nil
}

// logAttrs turns an error field map into slog attributes in key order.
func logAttrs(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}
