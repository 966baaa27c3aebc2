package engine

import (
	"strings"
	"testing"
)

func TestParse_TokenShapes(t *testing.T) {
	tokens, perr := Parse("3 4.5 + A1 B12 * -0.5 .5 5. /")
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	want := []Token{
		{Kind: tokenNumber, Number: 3},
		{Kind: tokenNumber, Number: 4.5},
		{Kind: tokenOperator, Op: '+'},
		{Kind: tokenReference, Ref: Coord{Row: 0, Col: 0}},
		{Kind: tokenReference, Ref: Coord{Row: 11, Col: 1}},
		{Kind: tokenOperator, Op: '*'},
		{Kind: tokenNumber, Number: -0.5},
		{Kind: tokenNumber, Number: 0.5},
		{Kind: tokenNumber, Number: 5},
		{Kind: tokenOperator, Op: '/'},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i] != w {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], w)
		}
	}
}

func TestParse_SignedNumbersAreNotOperators(t *testing.T) {
	tokens, perr := Parse("+5 -3 +")
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	if tokens[0].Kind != tokenNumber || tokens[0].Number != 5 {
		t.Errorf("token 0 = %+v, want number 5", tokens[0])
	}
	if tokens[1].Kind != tokenNumber || tokens[1].Number != -3 {
		t.Errorf("token 1 = %+v, want number -3", tokens[1])
	}
	if tokens[2].Kind != tokenOperator || tokens[2].Op != '+' {
		t.Errorf("token 2 = %+v, want operator +", tokens[2])
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown token", "3 4 %"},
		{"word", "hello"},
		{"lowercase reference", "a1 1 +"},
		{"row zero reference", "A0 1 +"},
		{"exponent literal", "1e5"},
		{"bare dot", "."},
		{"bare sign", "-"},     // lone "-" is an operator, not a parse error
		{"whitespace only", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, perr := Parse(tt.raw)
			if tt.name == "bare sign" {
				if perr != nil || tokens[0].Kind != tokenOperator {
					t.Fatalf("expected lone %q to parse as an operator, got %v %v", tt.raw, tokens, perr)
				}
				return
			}
			if perr == nil {
				t.Fatalf("expected parse error for %q, got %v", tt.raw, tokens)
			}
			if perr.Code != CodeParse {
				t.Errorf("error code = %v, want CodeParse", perr.Code)
			}
		})
	}
}

func TestParse_TokenCap(t *testing.T) {
	ok := strings.TrimSpace(strings.Repeat("1 ", 50) + strings.Repeat("+ ", 49))
	if _, perr := Parse(ok); perr != nil {
		t.Fatalf("expression at 99 tokens should parse, got %v", perr)
	}

	over := strings.TrimSpace(strings.Repeat("1 ", 101))
	_, perr := Parse(over)
	if perr == nil || perr.Code != CodeParse {
		t.Fatalf("expected parse error for over-long expression, got %v", perr)
	}
}
