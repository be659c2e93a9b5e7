package cli

import (
	"fmt"
	"strings"

	"gridcalc/internal/app"
	"gridcalc/internal/calc"
	"gridcalc/internal/grid"
	"gridcalc/internal/sheet"
	"gridcalc/internal/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func newEvalCommand(rt *runtime) *cobra.Command {
	var file, sheetName string
	cmd := &cobra.Command{
		Use:   "eval FORMULA",
		Short: "Evaluate one formula and print the result",
		Long: `Evaluate one formula and print the result.

With --file, cell references resolve against the loaded sheet after its
own formulas have been evaluated. Without it every cell is empty.`,
		Args: cobra.ExactArgs(1),
		RunE: rt.closing(func(cmd *cobra.Command, args []string) error {
			get := calc.CellValueFunc(nil)
			if file != "" {
				sh, err := loadSheet(rt, file, sheetName)
				if err != nil {
					return err
				}
				get = sh.Value
			}
			v, err := calc.Evaluate(args[0], get)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), calc.ErrorMarker)
				return err
			}
			rt.log.Debug("eval", "formula", args[0], "value", v.String())
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV or XLSX file to resolve references against")
	cmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Worksheet name for XLSX files (default: first sheet)")
	return cmd
}

func newFunctionsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the built-in functions",
		Args:  cobra.NoArgs,
		RunE: rt.closing(func(cmd *cobra.Command, _ []string) error {
			for _, name := range calc.FunctionNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}),
	}
}

var (
	headerCell = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9e2af")).Padding(0, 1)
	bodyCell   = lipgloss.NewStyle().Padding(0, 1)
	errorCell  = bodyCell.Foreground(lipgloss.Color("#f38ba8"))
)

func newRenderCommand(rt *runtime) *cobra.Command {
	var sheetName string
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Evaluate a CSV/XLSX file and print it as a table",
		Args:  cobra.ExactArgs(1),
		RunE: rt.closing(func(cmd *cobra.Command, args []string) error {
			sh, err := loadSheet(rt, args[0], sheetName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(sh))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Worksheet name for XLSX files (default: first sheet)")
	return cmd
}

// renderTable lays out the populated extent of the sheet with column
// letters on top and row numbers on the left.
func renderTable(sh *sheet.Sheet) string {
	maxR, maxC := sh.Extent()
	headers := []string{""}
	for c := 0; c <= maxC; c++ {
		headers = append(headers, grid.ColToName(c))
	}
	rows := make([][]string, 0, maxR+1)
	for r := 0; r <= maxR; r++ {
		row := []string{fmt.Sprint(r + 1)}
		for c := 0; c <= maxC; c++ {
			row = append(row, strings.ReplaceAll(sh.Value(r, c), "\n", " "))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow || col == 0:
				return headerCell
			case row < len(rows) && rows[row][col] == calc.ErrorMarker:
				return errorCell
			}
			return bodyCell
		})
	return t.String()
}

func newTUICommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [FILE]",
		Short: "Open the interactive grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: rt.closing(func(_ *cobra.Command, args []string) error {
			return runTUI(rt, args)
		}),
	}
}

func runTUI(rt *runtime, args []string) error {
	a := app.NewApp(rt.cfg)
	a.Log = rt.log
	if len(args) == 1 {
		if err := a.Open(args[0], ""); err != nil {
			return err
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("cannot create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("cannot init screen: %w", err)
	}
	defer s.Fini()
	s.Clear()

	rt.log.Info("tui started", "rows", a.Sheet.Rows, "cols", a.Sheet.Cols)
	a.Run(s)
	return nil
}

// loadSheet reads a file and evaluates its formulas in row-major order.
// Per-cell formula errors are logged, not returned.
func loadSheet(rt *runtime, path, sheetName string) (*sheet.Sheet, error) {
	sh, err := storage.Load(path, sheetName)
	if err != nil {
		return nil, err
	}
	for k, e := range sh.Replay() {
		rt.log.Warn("formula failed", "cell", grid.CoordName(k), "err", e)
	}
	return sh, nil
}
