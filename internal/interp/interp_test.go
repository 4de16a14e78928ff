package interp_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/elvas/internal/ast"
	"github.com/kolkov/elvas/internal/eval"
	"github.com/kolkov/elvas/internal/interp"
	"github.com/kolkov/elvas/internal/parser"
	"github.com/kolkov/elvas/internal/types"
)

var general = types.Format{Notation: types.General, Precision: 6}

func runScript(t *testing.T, cfg interp.Config, script string) (string, error) {
	t.Helper()
	var out strings.Builder
	cfg.Output = &out
	if cfg.Format == (types.Format{}) {
		cfg.Format = general
	}
	in := interp.New(cfg)
	err := in.Run(strings.NewReader(script))
	return out.String(), err
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		cfg    interp.Config
		script string
		want   string
	}{
		{
			name: "full script",
			script: `
[GENERAL]
RECORD_DELIM = ","
RECORD_VARS = {x, y}
OUTPUT_DELIM = " "
[INITIALIZE]
total = 0
[BEGIN_ROUTINE]
print("begin")
[MAIN_ROUTINE]
total = total + x * y
print(x, y)
[END_ROUTINE]
print(total)
[FINALIZE]
print("done")
[DATASET]
1, 2
3, 4
`,
			want: "begin\n1 2\n3 4\n14\ndone\n",
		},
		{
			name: "dataset values",
			script: `
[GENERAL]
DATASET_DELIM = ","
DATASET_VARS = {a, b}
RECORD_DELIM = " "
RECORD_VARS = {x}
[BEGIN_ROUTINE]
print(a + b)
[MAIN_ROUTINE]
print(a * x)
[END_ROUTINE]
print("end")
[DATASET](1, 2)
10
[DATASET](3,4)
1
`,
			want: "3\n10\nend\n7\n3\nend\n",
		},
		{
			name: "break stops records but ends once",
			script: `
[GENERAL]
RECORD_DELIM = ","
RECORD_VARS = {x}
[MAIN_ROUTINE]
if(x > 2, break())
print(x)
[END_ROUTINE]
print("end")
[FINALIZE]
print("fin")
[DATASET]
1
2
3
4
[DATASET]
5
`,
			want: "1\n2\nend\nfin\n",
		},
		{
			name: "break in begin routine",
			script: `
[GENERAL]
RECORD_DELIM = ","
RECORD_VARS = {x}
[BEGIN_ROUTINE]
break()
print("unreachable")
[MAIN_ROUTINE]
print(x)
[END_ROUTINE]
print("end")
[DATASET]
1
2
`,
			want: "end\n",
		},
		{
			name: "continue skips rest of pass",
			script: `
[GENERAL]
RECORD_DELIM = ","
RECORD_VARS = {x}
[MAIN_ROUTINE]
if(x == 2, continue())
print(x)
[DATASET]
1
2
3
`,
			want: "1\n3\n",
		},
		{
			name: "continue leaves initialize",
			script: `
[INITIALIZE]
print(1)
continue()
print(2)
[FINALIZE]
print(3)
`,
			want: "1\n3\n",
		},
		{
			name: "comments and continuation",
			script: `[INITIALIZE]  # set up
a = 1 + \
    2   # trailing
# whole line comment
print(a)
`,
			want: "3\n",
		},
		{
			name: "first declaration wins",
			script: `
[GENERAL]
RECORD_DELIM = ","
RECORD_DELIM = ";"
RECORD_VARS = {x, y}
RECORD_VARS = {z}
[MAIN_ROUTINE]
print(x + y)
[DATASET]
1,2
`,
			want: "3\n",
		},
		{
			name: "literal replays per record",
			script: `
[GENERAL]
RECORD_DELIM = ","
RECORD_VARS = {x}
[MAIN_ROUTINE]
print("row")
print("x, y")
[DATASET]
1
2
`,
			want: "row\nx, y\nrow\nx, y\n",
		},
		{
			name:   "output delimiter fallback",
			cfg:    interp.Config{OutputDelim: ", "},
			script: "[INITIALIZE]\nprint(1, 2, 3)\n",
			want:   "1, 2, 3\n",
		},
		{
			name:   "print returns last argument",
			script: "[INITIALIZE]\nx = print(1, 2)\nprint(x)\nprint()\n",
			want:   "12\n2\n\n",
		},
		{
			name:   "scientific default",
			cfg:    interp.Config{Format: types.NewFormat()},
			script: "[INITIALIZE]\nprint(1)\noutput_precision(3)\nprint(-2.5)\n",
			want:   "1.000000e+00\n-2.500e+00\n",
		},
		{
			name: "initialize echo and functions",
			script: `
[INITIALIZE]
print("hello")
sq(v) := v * v
[GENERAL]
RECORD_DELIM = " "
RECORD_VARS = {x}
[MAIN_ROUTINE]
print(sq(x))
[DATASET]
4
`,
			want: "hello\n16\n",
		},
		{
			name:   "dataset without values or declarations",
			script: "[BEGIN_ROUTINE]\nprint(7)\n[DATASET]\n[DATASET]()\n",
			want:   "7\n7\n",
		},
		{
			name:   "whitespace in header",
			script: "[ INITIALIZE ]\nprint(pi > 3)\n",
			want:   "1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runScript(t, tt.cfg, tt.script)
			if err != nil {
				t.Fatalf("Run error: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		kind   error
		line   int
		msg    string
	}{
		{
			name: "field count mismatch",
			script: `[GENERAL]
RECORD_DELIM = ","
RECORD_VARS = {x, y}
[DATASET]
1, 2
1, 2, 3
`,
			kind: interp.ErrDataFormat,
			line: 6,
		},
		{
			name: "non-numeric field",
			script: `[GENERAL]
RECORD_DELIM = ","
RECORD_VARS = {x}
[DATASET]
abc
`,
			kind: interp.ErrDataFormat,
			line: 5,
		},
		{
			name: "empty field",
			script: `[GENERAL]
RECORD_DELIM = ","
RECORD_VARS = {x, y}
[MAIN_ROUTINE]
print(x, y)
[DATASET]
1,,2
`,
			kind: interp.ErrDataFormat,
			line: 7,
		},
		{
			name:   "missing record delimiter",
			script: "[GENERAL]\nRECORD_VARS = {x}\n[DATASET]\n1\n",
			kind:   interp.ErrMissingDeclaration,
			line:   4,
			msg:    "line 4: missing declaration: RECORD_DELIM is not set",
		},
		{
			name:   "missing record variables",
			script: "[GENERAL]\nRECORD_DELIM = \",\"\n[DATASET]\n1\n",
			kind:   interp.ErrMissingDeclaration,
			line:   4,
		},
		{
			name:   "dataset values required",
			script: "[GENERAL]\nDATASET_VARS = {a}\nDATASET_DELIM = \",\"\n[DATASET]\n",
			kind:   interp.ErrDataFormat,
			line:   4,
		},
		{
			name:   "dataset value count",
			script: "[GENERAL]\nDATASET_VARS = {a, b}\nDATASET_DELIM = \",\"\n[DATASET](1)\n",
			kind:   interp.ErrDataFormat,
			line:   4,
		},
		{
			name:   "dataset delimiter missing",
			script: "[GENERAL]\nDATASET_VARS = {a}\n[DATASET](1)\n",
			kind:   interp.ErrMissingDeclaration,
			line:   3,
		},
		{
			name:   "unknown section",
			script: "\n[MAIN]\n",
			kind:   interp.ErrUnknownSection,
			line:   2,
		},
		{
			name:   "statement outside section",
			script: "x = 1\n",
			kind:   interp.ErrSyntax,
			line:   1,
		},
		{
			name:   "bad general line",
			script: "[GENERAL]\nx = 1\n",
			kind:   interp.ErrSyntax,
			line:   2,
		},
		{
			name:   "payload on other header",
			script: "[GENERAL](1)\n",
			kind:   interp.ErrSyntax,
			line:   1,
		},
		{
			name:   "error after continuation",
			script: "[INITIALIZE]\na = 1 + \\\n2\noops\n",
			kind:   eval.ErrUndefinedSymbol,
			line:   4,
		},
		{
			name: "routine error reports defining line",
			script: `[GENERAL]
RECORD_DELIM = ","
RECORD_VARS = {x}
[MAIN_ROUTINE]
print(x)
print(nope)
[DATASET]
1
`,
			kind: eval.ErrUndefinedSymbol,
			line: 6,
		},
		{
			name:   "malformed conditional",
			script: "[INITIALIZE]\nif(1, 2, 3, 4)\n",
			kind:   eval.ErrMalformedConditional,
			line:   2,
		},
		{
			name:   "exit stops the run",
			script: "[FINALIZE]\nprint(\"never\")\n[INITIALIZE]\nexit()\nprint(1)\n",
			kind:   eval.ErrExit,
			line:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runScript(t, interp.Config{}, tt.script)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("error = %v, want %v", err, tt.kind)
			}
			var ie *interp.Error
			if !errors.As(err, &ie) {
				t.Fatalf("error %T is not *interp.Error", err)
			}
			if ie.Line != tt.line {
				t.Errorf("line = %d, want %d", ie.Line, tt.line)
			}
			if tt.msg != "" && err.Error() != tt.msg {
				t.Errorf("message = %q, want %q", err.Error(), tt.msg)
			}
			if strings.Contains(out, "never") {
				t.Error("finalize ran after a fatal error")
			}
		})
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := runScript(t, interp.Config{}, "[INITIALIZE]\nx = 1\nx = 1 + * 2\n")

	var ie *interp.Error
	if !errors.As(err, &ie) {
		t.Fatalf("error = %v, want *interp.Error", err)
	}
	if ie.Line != 3 || ie.Text != "x = 1 + * 2" {
		t.Errorf("Line, Text = %d, %q", ie.Line, ie.Text)
	}

	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *parser.ParseError inside", err)
	}
	if pe.Pos.Line != 3 || pe.Pos.Offset != 8 {
		t.Errorf("Pos = %+v, want line 3 offset 8", pe.Pos)
	}
}

func TestRoutinesStoreEmit(t *testing.T) {
	in := interp.New(interp.Config{})
	script := "[MAIN_ROUTINE]\nprint(\"a\")\nx = 1\n[FINALIZE]\nprint(\"b\")\n"
	if err := in.Run(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}

	main := in.Routine(interp.StateMain)
	if len(main) != 2 {
		t.Fatalf("main routine has %d statements, want 2", len(main))
	}
	emit, ok := main[0].Node.(*ast.Emit)
	if !ok || emit.Index != 0 {
		t.Errorf("main[0] = %T %+v, want Emit #0", main[0].Node, main[0].Node)
	}
	if main[1].Line != 3 || main[1].Text != "x = 1" {
		t.Errorf("main[1] = line %d %q", main[1].Line, main[1].Text)
	}

	fin := in.Routine(interp.StateFinalize)
	if emit, ok := fin[0].Node.(*ast.Emit); !ok || emit.Index != 1 {
		t.Errorf("finalize[0] = %+v, want Emit #1", fin[0].Node)
	}
	if in.Routine(interp.StateGeneral) != nil {
		t.Error("GENERAL has no routine")
	}
}

func TestStateNames(t *testing.T) {
	for s, want := range map[interp.State]string{
		interp.StateNone:     "NONE",
		interp.StateDataset:  "DATASET",
		interp.StateBegin:    "BEGIN_ROUTINE",
		interp.StateFinalize: "FINALIZE",
		interp.State(99):     "UNKNOWN",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestEvalStatement(t *testing.T) {
	var out strings.Builder
	in := interp.New(interp.Config{Output: &out, Format: general, OutputDelim: ", "})

	node, v, err := in.EvalStatement("a = 2 * 3", 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := node.(*ast.Assign); !ok || v != 6 {
		t.Errorf("node %T value %v", node, v)
	}

	if _, _, err := in.EvalStatement("print(a, 1)", 2); err != nil {
		t.Fatal(err)
	}
	if out.String() != "6, 1\n" {
		t.Errorf("output = %q", out.String())
	}

	if _, _, err := in.EvalStatement("1 +", 3); err == nil {
		t.Error("expected parse error")
	}
}

func TestHostFunctionsThroughEvaluator(t *testing.T) {
	var out strings.Builder
	in := interp.New(interp.Config{Output: &out, Format: general})
	in.Evaluator().Define("twice", 1, func(args []float64) (float64, error) {
		return 2 * args[0], nil
	})

	if err := in.Run(strings.NewReader("[INITIALIZE]\nprint(twice(21))\n")); err != nil {
		t.Fatal(err)
	}
	if out.String() != "42\n" {
		t.Errorf("output = %q", out.String())
	}
}
