// Package cli wires the gridcalc commands together.
package cli

import (
	"errors"
	"io"
	"log/slog"

	"gridcalc/internal/calc"
	"gridcalc/internal/config"
	"gridcalc/internal/logging"

	"github.com/spf13/cobra"
)

// runtime is what every command gets after the persistent pre-run.
type runtime struct {
	cfg      config.Config
	log      *slog.Logger
	closeLog func() error
}

type rootFlags struct {
	logLevel  string
	logFormat string
	noSplash  bool
}

// NewRootCommand builds the command tree. Without a subcommand it starts
// the interactive grid.
func NewRootCommand() *cobra.Command {
	var (
		flags rootFlags
		rt    runtime
	)

	root := &cobra.Command{
		Use:   "gridcalc [file]",
		Short: "Terminal spreadsheet with a small formula language",
		Long: `gridcalc is a terminal spreadsheet. Cells hold text or formulas that
start with "=": inline arithmetic over cell references (=A1*2+B3) or one
call to a built-in function (=SUM(A1:A9), =IF(A1,B1,C1)).

Commands:
  eval       Evaluate one formula, optionally against a CSV/XLSX file.
  functions  List the built-in functions.
  render     Load a file, evaluate it and print it as a table.
  tui        Open the interactive grid (the default).

Examples:
  gridcalc budget.csv
  gridcalc eval "=SUM(A1:A3)" --file budget.csv
  gridcalc render report.xlsx --sheet Q3`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup(cmd, flags)
		},
		RunE: rt.closing(func(_ *cobra.Command, args []string) error {
			return runTUI(&rt, args)
		}),
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json (overrides config)")
	pf.BoolVar(&flags.noSplash, "no-splash", false, "Skip the splash screen")

	root.AddCommand(
		newEvalCommand(&rt),
		newFunctionsCommand(&rt),
		newRenderCommand(&rt),
		newTUICommand(&rt),
	)
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (rt *runtime) setup(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if flags.noSplash {
		cfg.UI.Splash = false
	}

	// the TUI owns the terminal; its logs only go to a file
	var fallback io.Writer = cmd.ErrOrStderr()
	if isTUI(cmd) {
		fallback = io.Discard
	}
	l, closeFn, err := logging.Open(cfg.Log, fallback)
	if err != nil {
		return err
	}
	rt.cfg, rt.log, rt.closeLog = cfg, l, closeFn
	calc.SetLogger(l)
	return nil
}

func (rt *runtime) close() error {
	calc.SetLogger(nil)
	if rt.closeLog == nil {
		return nil
	}
	closeFn := rt.closeLog
	rt.closeLog = nil
	return closeFn()
}

// closing wraps a RunE so the log is released however the command ends;
// cobra skips post-run hooks when RunE fails.
func (rt *runtime) closing(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.Join(err, rt.close())
		}()
		return run(cmd, args)
	}
}

func isTUI(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}
