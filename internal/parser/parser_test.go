package parser_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/kolkov/elvas/internal/ast"
	"github.com/kolkov/elvas/internal/parser"
)

// TestParseStatement checks statement shapes through their printed tree.
func TestParseStatement(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "precedence",
			src:  "1 + 2 * 3",
			want: "Plus[\n  1,\n  op = \"+\",\n  Times[\n    2,\n    op = \"*\",\n    3\n  ]\n]",
		},
		{
			name: "subtraction",
			src:  "a - b",
			want: "Plus[\n  \"a\",\n  op = \"-\",\n  \"b\"\n]",
		},
		{
			name: "integer power",
			src:  "a^3",
			want: "PowerInt[\n  \"a\",\n  3\n]",
		},
		{
			name: "negative integer power",
			src:  "a^-2",
			want: "PowerInt[\n  \"a\",\n  -2\n]",
		},
		{
			name: "decimal exponent",
			src:  "a^3.0",
			want: "Power[\n  \"a\",\n  3\n]",
		},
		{
			name: "parenthesized exponent",
			src:  "a^(3)",
			want: "Power[\n  \"a\",\n  3\n]",
		},
		{
			name: "sign binds tighter than power",
			src:  "-a^2",
			want: "PowerInt[\n  Signed[\n    sign = \"-\",\n    \"a\"\n  ],\n  2\n]",
		},
		{
			name: "multiple assignment",
			src:  "x = y = 7",
			want: "\"x\" =\n\"y\" =\n7",
		},
		{
			name: "function definition",
			src:  "f(x, y) := x*y",
			want: "f(x, y) :=\nTimes[\n  \"x\",\n  op = \"*\",\n  \"y\"\n]",
		},
		{
			name: "zero arity definition",
			src:  "f := 2",
			want: "f() :=\n2",
		},
		{
			name: "print literal",
			src:  `print("hi, there")`,
			want: `print["hi, there"]`,
		},
		{
			name: "single branch if",
			src:  "if(a, 1)",
			want: "if[\n  \"a\",\n  1\n]",
		},
		{
			name: "logic chains",
			src:  "1 < 2 & 3 > 2 | 0",
			want: "Or[\n  And[\n    Rel[\n      1,\n      op = \"<\",\n      2\n    ],\n    Rel[\n      3,\n      op = \">\",\n      2\n    ]\n  ],\n  0\n]",
		},
		{
			name: "assignment argument",
			src:  "eval(a = 1, a + 1)",
			want: "eval[\n  \"a\" =\n  1,\n  Plus[\n    \"a\",\n    op = \"+\",\n    1\n  ]\n]",
		},
		{
			name: "call without arguments",
			src:  "exit()",
			want: "exit[\n  (no_args)\n]",
		},
		{
			name: "trailing comment",
			src:  "x # note",
			want: `"x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := parser.ParseStatement(tt.src, 1)
			if err != nil {
				t.Fatalf("ParseStatement() error = %v", err)
			}
			if got := ast.String(stmt); got != tt.want {
				t.Errorf("tree =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestParseInf(t *testing.T) {
	expr, err := parser.ParseExpr("inf")
	if err != nil {
		t.Fatalf("ParseExpr() error = %v", err)
	}
	n, ok := expr.(*ast.Num)
	if !ok {
		t.Fatalf("got %T, want *ast.Num", expr)
	}
	if !math.IsInf(n.Value, 1) {
		t.Errorf("value = %v, want +Inf", n.Value)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string // substring of the error message
	}{
		{"chained comparison", "a < b < c", "cannot be chained"},
		{"chained power", "a^2^3", "cannot be chained"},
		{"juxtaposed operand", "2x", "expected operator"},
		{"call of call", "f()(1)", "expected operator"},
		{"integer power then name", "a^3x", "expected operator"},
		{"missing operand", "1 +", "expected expression"},
		{"unclosed paren", "(1", "expected ')'"},
		{"double assignment value", "x = 1 = 2", "expected end of statement"},
		{"string outside print", `print("a", 1)`, "string literals"},
		{"if without branch", "if(1)", "expected ','"},
		{"nested definition", "g(f(x) := 1)", "expected ')'"},
		{"definition inside expression", "1 + f(x) := 2", "whole statement"},
		{"duplicate parameter", "f(x, x) := x", "duplicate parameter"},
		{"illegal character", "1 @ 2", "unexpected character"},
		{"embedded NUL", "a = 1\x00 + +garbage((", `unexpected character '\x00'`},
		{"empty statement", "", "expected expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseStatement(tt.src, 1)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				t.Errorf("error type = %T, want *parser.ParseError", err)
			}
		})
	}
}

func TestParseErrorExcerpt(t *testing.T) {
	_, err := parser.ParseStatement("1 + * 2", 3)
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *parser.ParseError", err)
	}

	if perr.Pos.Line != 3 || perr.Pos.Offset != 4 {
		t.Errorf("Pos = %+v, want line 3 offset 4", perr.Pos)
	}
	if got, want := perr.Summary(), "Wrong syntax: expression is expected here."; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	if got, want := perr.Excerpt(), "1 + * 2\n____^_"; got != want {
		t.Errorf("Excerpt() = %q, want %q", got, want)
	}

	var sb strings.Builder
	if err := perr.Render(&sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "Wrong syntax: expression is expected here.\n1 + * 2\n____^_\n"; sb.String() != want {
		t.Errorf("Render() = %q, want %q", sb.String(), want)
	}
}

func TestParseExprRejectsDefinition(t *testing.T) {
	if _, err := parser.ParseExpr("f(x) := x"); err == nil {
		t.Fatal("expected error for definition in expression context")
	}
}
