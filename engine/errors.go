package engine

import "fmt"

// ErrorCode identifies the kind of per-cell evaluation failure.
type ErrorCode uint8

const (
	CodeParse    ErrorCode = iota + 1 // token matches no shape, or empty token stream
	CodeStack                         // malformed postfix: operand underflow or leftovers
	CodeDiv0                          // division by zero
	CodeRef                           // reference addresses a cell outside the grid
	CodeCircular                      // cell is on a reference cycle
)

// errorRender maps error codes to the short text written into output cells.
var errorRender = map[ErrorCode]string{
	CodeParse:    "#PARSE!",
	CodeStack:    "#STACK!",
	CodeDiv0:     "#DIV/0!",
	CodeRef:      "#REF!",
	CodeCircular: "#CIRC!",
}

// CellError is a typed per-cell evaluation error. Cell errors are data, not
// process failures: they render into the output grid and propagate verbatim
// to every cell that references the failing one.
type CellError struct {
	Code   ErrorCode
	Detail string
}

func (e *CellError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", errorRender[e.Code], e.Detail)
	}
	return errorRender[e.Code]
}

// Render returns the code text written into the output cell.
func (e *CellError) Render() string { return errorRender[e.Code] }

func parseErrorf(format string, args ...any) *CellError {
	return &CellError{Code: CodeParse, Detail: fmt.Sprintf(format, args...)}
}

func stackErrorf(format string, args ...any) *CellError {
	return &CellError{Code: CodeStack, Detail: fmt.Sprintf(format, args...)}
}

func div0Error() *CellError {
	return &CellError{Code: CodeDiv0, Detail: "division by zero"}
}

func refError(c Coord) *CellError {
	return &CellError{Code: CodeRef, Detail: fmt.Sprintf("reference to %s outside the grid", c.Name())}
}

func circularError(c Coord) *CellError {
	return &CellError{Code: CodeCircular, Detail: fmt.Sprintf("circular reference through %s", c.Name())}
}
