package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/witanlabs/sheetcalc/internal"
)

// maxTokensPerCell caps expression length so per-cell work stays constant
// and a whole run stays linear in the number of cells.
const maxTokensPerCell = 100

type tokenKind uint8

const (
	tokenNumber tokenKind = iota
	tokenOperator
	tokenReference
)

// Token is one element of a postfix expression: a numeric literal, an
// arithmetic operator, or a reference to another cell.
type Token struct {
	Kind   tokenKind
	Number float64
	Op     byte
	Ref    Coord
}

// numberRe matches the numeric literals the formula grammar accepts:
// optional sign, digits with an optional fraction. No exponent form.
var numberRe = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)

// Parse tokenizes a raw cell expression, preserving postfix order. Tokens
// are whitespace-separated; each must be an operator, a cell reference, or
// a numeric literal. Pure function of the raw string.
func Parse(raw string) ([]Token, *CellError) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, parseErrorf("expression has no tokens")
	}
	if len(fields) > maxTokensPerCell {
		return nil, parseErrorf("expression has %d tokens, max %d", len(fields), maxTokensPerCell)
	}

	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		switch {
		case f == "+" || f == "-" || f == "*" || f == "/":
			tokens = append(tokens, Token{Kind: tokenOperator, Op: f[0]})
		case internal.IsRef(f):
			col, row, err := internal.ParseRef(f)
			if err != nil {
				return nil, parseErrorf("bad reference %q", f)
			}
			tokens = append(tokens, Token{Kind: tokenReference, Ref: Coord{Row: row - 1, Col: col - 1}})
		case numberRe.MatchString(f):
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, parseErrorf("bad number %q", f)
			}
			tokens = append(tokens, Token{Kind: tokenNumber, Number: v})
		default:
			return nil, parseErrorf("invalid token %q", f)
		}
	}
	return tokens, nil
}
