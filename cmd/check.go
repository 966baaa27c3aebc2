package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/witanlabs/sheetcalc/engine"
	"github.com/witanlabs/sheetcalc/gridio"
)

var jsonOutput bool

var checkCmd = &cobra.Command{
	Use:   "check <inputfile>",
	Short: "Evaluate a grid and report cell errors without writing output",
	Long: `Evaluate every cell of the grid and report the ones that fail.

Behavior:
  - No output file is written.
  - Evaluation always runs locally.
  - Returns exit code 2 when any cell evaluates to an error.

Use --json for machine-readable diagnostics.

Examples:
  sheetcalc check sheet.csv
  sheetcalc check --json sheet.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON diagnostics instead of a human-formatted summary")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	grid, err := gridio.Load(args[0])
	if err != nil {
		return err
	}
	sheet := engine.NewSheet(grid)
	diags := sheet.Diagnostics()

	if jsonOutput {
		report := struct {
			Cells  int                 `json:"cells"`
			Errors []engine.Diagnostic `json:"errors"`
		}{Cells: grid.CellCount(), Errors: diags}
		if report.Errors == nil {
			report.Errors = []engine.Diagnostic{}
		}
		if err := jsonPrint(report); err != nil {
			return err
		}
	} else if len(diags) == 0 {
		fmt.Printf("%d cells evaluated, 0 errors\n", grid.CellCount())
	} else {
		fmt.Printf("%d error", len(diags))
		if len(diags) != 1 {
			fmt.Print("s")
		}
		fmt.Println(":")
		for _, d := range diags {
			detail := ""
			if d.Detail != "" {
				detail = " ← " + d.Detail
			}
			fmt.Printf("  %-8s %-30s %s%s\n", d.Address, d.Formula, d.Code, detail)
		}
	}

	if len(diags) > 0 {
		return &ExitError{Code: 2}
	}
	return nil
}
