package internal

import (
	"testing"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		input    string
		col, row int
		wantErr  bool
	}{
		{"A1", 1, 1, false},
		{"B12", 2, 12, false},
		{"Z99", 26, 99, false},
		{"AA100", 27, 100, false},
		{"AZ3", 52, 3, false},
		// lowercase columns are not references
		{"a1", 0, 0, true},
		// rows are 1-indexed and positive
		{"A0", 0, 0, true},
		{"A01", 0, 0, true},
		{"A-1", 0, 0, true},
		// no digits / no letters
		{"ABC", 0, 0, true},
		{"123", 0, 0, true},
		{"", 0, 0, true},
		// absolute-style markers are not part of the grammar
		{"$A$1", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			col, row, err := ParseRef(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.input, err)
			}
			if col != tt.col || row != tt.row {
				t.Errorf("ParseRef(%q) = (%d, %d), want (%d, %d)", tt.input, col, row, tt.col, tt.row)
			}
		})
	}
}

func TestIsRefMatchesParseRef(t *testing.T) {
	for _, s := range []string{"A1", "AA100", "a1", "A0", "1A", ""} {
		_, _, err := ParseRef(s)
		if got := IsRef(s); got != (err == nil) {
			t.Errorf("IsRef(%q) = %v, but ParseRef error = %v", s, got, err)
		}
	}
}

func TestColToLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{702, "ZZ"},
		{703, "AAA"},
	}
	for _, tt := range tests {
		if got := ColToLetter(tt.col); got != tt.want {
			t.Errorf("ColToLetter(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestCellName(t *testing.T) {
	if got := CellName(2, 12); got != "B12" {
		t.Errorf("CellName(2, 12) = %q, want %q", got, "B12")
	}
	if got := CellName(27, 1); got != "AA1" {
		t.Errorf("CellName(27, 1) = %q, want %q", got, "AA1")
	}
}
