package engine

import (
	"strconv"
	"strings"

	"github.com/witanlabs/sheetcalc/internal"
)

// Coord identifies a cell by zero-based (row, column). It keys every
// per-cell map in the engine.
type Coord struct {
	Row, Col int
}

// Name renders the coordinate in A1 form.
func (c Coord) Name() string {
	return internal.CellName(c.Col+1, c.Row+1)
}

// CellState tracks a cell's progress through resolution. Transitions are
// monotonic: Unvisited -> InProgress -> Resolved, each at most once, and
// there is no transition out of Resolved.
type CellState uint8

const (
	StateUnvisited CellState = iota
	StateInProgress
	StateResolved
)

// Result is the outcome of evaluating one cell: a numeric value, the empty
// marker, or a typed cell error.
type Result struct {
	Value float64
	Empty bool
	Err   *CellError
}

// Render returns the output-grid text for the result. Numbers never use
// exponent form, and integral values carry no decimal point, so reruns are
// byte-identical.
func (r Result) Render() string {
	if r.Err != nil {
		return r.Err.Render()
	}
	if r.Empty {
		return ""
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// Grid holds the raw cell text as loaded, one slice per input row. Rows may
// have different widths; coordinates outside the loaded rows are undefined.
// Immutable once loaded.
type Grid struct {
	Rows [][]string
}

// Cell returns the raw text at c and whether c is inside the grid.
func (g *Grid) Cell(c Coord) (string, bool) {
	if c.Row < 0 || c.Row >= len(g.Rows) {
		return "", false
	}
	row := g.Rows[c.Row]
	if c.Col < 0 || c.Col >= len(row) {
		return "", false
	}
	return row[c.Col], true
}

// CellCount returns the total number of cells, empty or not.
func (g *Grid) CellCount() int {
	n := 0
	for _, row := range g.Rows {
		n += len(row)
	}
	return n
}

// Sheet owns the memoization table for a single evaluation run. Each cell
// is parsed and evaluated at most once; separate runs share nothing.
type Sheet struct {
	grid  *Grid
	state map[Coord]CellState
	memo  map[Coord]Result
}

func NewSheet(g *Grid) *Sheet {
	return &Sheet{
		grid:  g,
		state: make(map[Coord]CellState),
		memo:  make(map[Coord]Result),
	}
}

// settle records the final result for a cell.
func (s *Sheet) settle(c Coord, r Result) {
	s.state[c] = StateResolved
	s.memo[c] = r
}

// Resolve returns the cell's memoized result, evaluating it (and any cells
// it references) on demand. Dependency chains are walked with an explicit
// frame stack, so goroutine stack usage stays constant no matter how long
// the reference chain is.
func (s *Sheet) Resolve(target Coord) Result {
	if s.state[target] == StateResolved {
		return s.memo[target]
	}
	raw, ok := s.grid.Cell(target)
	if !ok {
		// Direct request for a coordinate outside the grid. Not cached:
		// the error belongs to the caller, not to a cell.
		return Result{Err: refError(target)}
	}

	var frames []*frame
	depth := make(map[Coord]int) // InProgress coordinate -> frame index

	// open starts evaluating a cell: mark InProgress, lazy-parse, push a
	// frame. Empty cells and parse failures settle immediately.
	open := func(c Coord, raw string) {
		if strings.TrimSpace(raw) == "" {
			s.settle(c, Result{Empty: true})
			return
		}
		s.state[c] = StateInProgress
		tokens, perr := Parse(raw)
		if perr != nil {
			s.settle(c, Result{Err: perr})
			return
		}
		depth[c] = len(frames)
		frames = append(frames, &frame{coord: c, tokens: tokens})
	}

	pop := func() {
		top := frames[len(frames)-1]
		frames = frames[:len(frames)-1]
		delete(depth, top.coord)
	}

	open(target, raw)

	for len(frames) > 0 {
		top := frames[len(frames)-1]
		status, ref, res := top.run()
		if status == stepDone {
			s.settle(top.coord, res)
			pop()
			continue
		}

		// The frame paused at a reference token.
		rawRef, ok := s.grid.Cell(ref)
		if !ok {
			// Out-of-grid reference fails the referencing cell.
			s.settle(top.coord, Result{Err: refError(ref)})
			pop()
			continue
		}

		switch s.state[ref] {
		case StateResolved:
			r := s.memo[ref]
			if r.Err != nil {
				// Errors are contagious: the referencing cell inherits
				// the referenced cell's error verbatim.
				s.settle(top.coord, Result{Err: r.Err})
				pop()
				continue
			}
			if r.Empty {
				top.supply(0)
			} else {
				top.supply(r.Value)
			}
		case StateInProgress:
			// The cycle closes here. Every frame from the re-entered cell
			// to the top is on the cycle; each gets its own circular
			// error. Frames below the cycle entry resume and inherit the
			// memoized circular error like any other referenced error.
			start := depth[ref]
			for i := len(frames) - 1; i >= start; i-- {
				s.settle(frames[i].coord, Result{Err: circularError(frames[i].coord)})
				delete(depth, frames[i].coord)
			}
			frames = frames[:start]
		default:
			open(ref, rawRef)
		}
	}
	return s.memo[target]
}

// RenderAll resolves every cell in row-major order and renders the results
// into records matching the input dimensions.
func (s *Sheet) RenderAll() [][]string {
	records := make([][]string, len(s.grid.Rows))
	for i, row := range s.grid.Rows {
		out := make([]string, len(row))
		for j := range row {
			out[j] = s.Resolve(Coord{Row: i, Col: j}).Render()
		}
		records[i] = out
	}
	return records
}

// Diagnostic describes one cell that evaluated to an error.
type Diagnostic struct {
	Address string `json:"address"`
	Formula string `json:"formula"`
	Code    string `json:"code"`
	Detail  string `json:"detail,omitempty"`
}

// Diagnostics resolves the whole grid and returns per-cell errors in
// row-major order.
func (s *Sheet) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	for i, row := range s.grid.Rows {
		for j, raw := range row {
			c := Coord{Row: i, Col: j}
			res := s.Resolve(c)
			if res.Err == nil {
				continue
			}
			diags = append(diags, Diagnostic{
				Address: c.Name(),
				Formula: strings.TrimSpace(raw),
				Code:    res.Err.Render(),
				Detail:  res.Err.Detail,
			})
		}
	}
	return diags
}
