package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/witanlabs/sheetcalc/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "sheetcalc <inputfile> <outputfile>",
	Short: "Evaluate postfix spreadsheet grids",
	Long: `Evaluate a comma-delimited grid of postfix cell formulas.

Each non-empty cell holds a whitespace-separated postfix expression whose
tokens are numbers, the operators + - * /, or references to other cells
(A1, B2, AA10, ...). The evaluated grid is written to <outputfile> with the
same dimensions. Cells that fail render short error codes instead of
aborting the run:

  #PARSE!   token matches no shape, or the expression is too long
  #STACK!   malformed postfix (operand underflow or leftover operands)
  #DIV/0!   division by zero
  #REF!     reference outside the grid
  #CIRC!    circular reference

Exit codes:
  0: output written (cell errors are data, not failures)
  1: unrecoverable condition (unreadable input, unwritable output,
     grid over the cell cap, remote server unreachable)

Examples:
  sheetcalc sheet.csv out.csv
  sheetcalc check sheet.csv
  sheetcalc --server ws://calc.internal:8793 sheet.csv out.csv`,
	Version:       Version,
	SilenceErrors: true,
	Args:          cobra.ExactArgs(2),
	RunE:          runEval,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Evaluate on a remote sheetcalc server instead of locally (env: SHEETCALC_SERVER_URL)")
}

// resolveServerURL returns the remote server URL, or "" for local
// evaluation. Flag wins over environment over config.
func resolveServerURL() (string, error) {
	if serverURL != "" {
		return serverURL, nil
	}
	if v := os.Getenv("SHEETCALC_SERVER_URL"); v != "" {
		return v, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("loading config: %w", err)
	}
	return cfg.ServerURL, nil
}

func Execute() error {
	return rootCmd.Execute()
}
