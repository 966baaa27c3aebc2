// Package gridio reads comma-delimited spreadsheet grids and writes
// evaluated result grids. It is the only place that touches files; the
// engine sees grids and records.
package gridio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/witanlabs/sheetcalc/engine"
)

// MaxCells caps the total number of cells, empty or not, accepted from one
// input grid. Exceeding it is a process-level failure, not a cell error.
const MaxCells = 500000

// Read parses comma-delimited rows into a raw grid. Rows may have differing
// widths; surrounding whitespace is trimmed from each field.
func Read(r io.Reader) (*engine.Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	grid := &engine.Grid{}
	cells := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading grid: %w", err)
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		cells += len(record)
		if cells > MaxCells {
			return nil, fmt.Errorf("grid has more than %d cells", MaxCells)
		}
		grid.Rows = append(grid.Rows, record)
	}
	return grid, nil
}

// Load reads the grid from a file.
func Load(path string) (*engine.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// WriteTo renders records as comma-delimited rows.
func WriteTo(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing grid: %w", err)
	}
	return nil
}

// Write renders records to a file, creating or truncating it.
func Write(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := WriteTo(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
