package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/witanlabs/sheetcalc/client"
	"github.com/witanlabs/sheetcalc/engine"
	"github.com/witanlabs/sheetcalc/gridio"
)

// runEval is the root command: read the grid, evaluate every cell, write
// the result grid.
func runEval(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	inPath, outPath := args[0], args[1]

	remote, err := resolveServerURL()
	if err != nil {
		return err
	}
	if remote != "" {
		input, err := os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		output, err := client.New(remote).Eval(cmd.Context(), input)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, output, 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	grid, err := gridio.Load(inPath)
	if err != nil {
		return err
	}
	sheet := engine.NewSheet(grid)
	return gridio.Write(outPath, sheet.RenderAll())
}
