package internal

import (
	"fmt"
	"regexp"
	"strconv"
)

// cellRefRe matches a bare cell reference like A1, B2, AA100. Columns are
// uppercase only and rows are positive, matching the formula grammar.
var cellRefRe = regexp.MustCompile(`^([A-Z]+)([1-9][0-9]*)$`)

// ParseRef parses a reference like "B12" and returns (col, row) in
// 1-indexed form.
func ParseRef(ref string) (col, row int, err error) {
	m := cellRefRe.FindStringSubmatch(ref)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	col = letterToCol(m[1])
	row, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}
	return col, row, nil
}

// IsRef reports whether s has the shape of a cell reference.
func IsRef(s string) bool {
	return cellRefRe.MatchString(s)
}

// ColToLetter converts a 1-indexed column number to spreadsheet letter(s):
// 1 -> A, 26 -> Z, 27 -> AA.
func ColToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// CellName builds an address string like "B12" from 1-indexed (col, row).
func CellName(col, row int) string {
	return ColToLetter(col) + strconv.Itoa(row)
}

func letterToCol(letters string) int {
	col := 0
	for _, c := range letters {
		col = col*26 + int(c-'A'+1)
	}
	return col
}
