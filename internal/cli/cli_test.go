package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kolkov/elvas"
)

const script = `
[GENERAL]
RECORD_DELIM = " "
RECORD_VARS = {x}
[MAIN_ROUTINE]
print(2 * x)
[DATASET]
1
2
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut strings.Builder
	std := stdio{in: strings.NewReader(stdin), out: &out, err: &errOut}
	err := run(context.Background(), func(int) {}, std, args...)
	return out.String(), errOut.String(), err
}

func TestRunInputs(t *testing.T) {
	general := writeFile(t, "elvas.yaml", "notation: general\n")

	tests := []struct {
		name  string
		stdin string
		args  func(t *testing.T) []string
		want  string
	}{
		{
			name: "file",
			args: func(t *testing.T) []string {
				return []string{"-n", "--config", general, writeFile(t, "a.elvas", script)}
			},
			want: "2\n4\n",
		},
		{
			name: "files are concatenated",
			args: func(t *testing.T) []string {
				head := writeFile(t, "head.elvas", "[INITIALIZE]\nprint(1)\n")
				tail := writeFile(t, "tail.elvas", "print(2)\n")
				return []string{"-n", "--config", general, head, tail}
			},
			want: "1\n2\n",
		},
		{
			name:  "stdin",
			stdin: script,
			args: func(*testing.T) []string {
				return []string{"-n", "--config", general}
			},
			want: "2\n4\n",
		},
		{
			name: "scientific by default",
			args: func(t *testing.T) []string {
				return []string{"-n", writeFile(t, "a.elvas", script)}
			},
			want: "2.000000e+00\n4.000000e+00\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := runCLI(t, tt.stdin, tt.args(t)...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	got, _, err := runCLI(t, script, "-o", path, "--config", writeFile(t, "c.yaml", "notation: general\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("stdout = %q, want nothing", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, strings.Repeat("#", bannerWidth)+"\n") {
		t.Errorf("banner missing from output file:\n%s", text)
	}
	if strings.Contains(text, "USING STANDARD IN/OUT") {
		t.Error("stdio notice written although -o was given")
	}
	if !strings.HasSuffix(text, "2\n4\n") {
		t.Errorf("output file ends with %q", text[max(0, len(text)-20):])
	}
}

func TestRunStdioNotice(t *testing.T) {
	got, _, err := runCLI(t, "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "======USING STANDARD IN/OUT======\n") {
		t.Errorf("output = %q", got)
	}
}

func TestRunScriptError(t *testing.T) {
	got, _, err := runCLI(t, "[INITIALIZE]\nprint(nothing)\n", "-n")
	var se *elvas.ScriptError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *elvas.ScriptError", err)
	}
	if !errors.Is(err, elvas.ErrUndefinedSymbol) {
		t.Errorf("err = %v", err)
	}
	if !strings.HasPrefix(got, "Error in line 2:\n") {
		t.Errorf("output = %q", got)
	}
}

func TestRunMissingInput(t *testing.T) {
	_, _, err := runCLI(t, "", "-n", filepath.Join(t.TempDir(), "missing.elvas"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not exist", err)
	}
}

func TestRunBadConfig(t *testing.T) {
	_, _, err := runCLI(t, "", "-n", "--config", writeFile(t, "c.yaml", "notation: roman\n"))
	if err == nil {
		t.Error("expected an error")
	}
}

func TestRunDebug(t *testing.T) {
	got, _, err := runCLI(t, "1 + 2\nx +\n", "-n", "--debug", "--config", writeFile(t, "c.yaml", "notation: general\n"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"!!!!!DEBUG MODE!!!!!\n", elvas.Prompt, "[out]: 3\n", "[Error]: Wrong syntax"} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
}

func TestRunLogFlags(t *testing.T) {
	_, logs, err := runCLI(t, "[INITIALIZE]\nx = 1\n", "-n", "--log-level", "debug", "--log-format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs, `"msg":"logger initialized"`) {
		t.Errorf("logs = %q", logs)
	}
}

func TestRunLogFromConfig(t *testing.T) {
	cfg := writeFile(t, "c.yaml", "log:\n  level: debug\n")
	_, logs, err := runCLI(t, "[INITIALIZE]\nx = 1\n", "-n", "--config", cfg, "--log-format", "text")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs, "logger initialized") {
		t.Errorf("logs = %q", logs)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	if _, _, err := runCLI(t, "", "--frobnicate"); err == nil {
		t.Error("expected an error")
	}
}

type exitCode int

func TestVersion(t *testing.T) {
	var out strings.Builder
	std := stdio{in: strings.NewReader(""), out: &out, err: &out}
	exit := func(code int) { panic(exitCode(code)) }

	defer func() {
		if code, ok := recover().(exitCode); !ok || code != 0 {
			t.Fatalf("exit code = %v", code)
		}
		if got := out.String(); got != "ELVAS v"+elvas.Version+"\n" {
			t.Errorf("output = %q", got)
		}
	}()
	_ = run(context.Background(), exit, std, "-v")
	t.Fatal("version flag did not exit")
}

func TestBanner(t *testing.T) {
	var sb strings.Builder
	if err := writeBanner(&sb); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")

	if len(lines) != len(bannerLines())+2 {
		t.Errorf("%d lines, want %d", len(lines), len(bannerLines())+2)
	}
	border := strings.Repeat("#", bannerWidth)
	if lines[0] != border || lines[len(lines)-1] != border {
		t.Errorf("border lines = %q, %q", lines[0], lines[len(lines)-1])
	}
	for _, l := range lines {
		if len(l) != bannerWidth || l[0] != '#' || l[len(l)-1] != '#' {
			t.Errorf("malformed line %q", l)
		}
	}

	title := "#" + strings.Repeat(" ", 26) + "ELVAS" + strings.Repeat(" ", 27) + "#"
	if lines[3] != title {
		t.Errorf("title line = %q, want %q", lines[3], title)
	}
}

func TestCompleter(t *testing.T) {
	names := func() []string { return []string{"pi", "save_phiC", "sin", "sqrt"} }
	complete := completer(names)

	tests := []struct {
		line  string
		pos   int
		head  string
		first string
		tail  string
	}{
		{line: "x = sq", pos: 6, head: "x = ", first: "sqrt"},
		{line: "sqr + 1", pos: 3, head: "", first: "sqrt", tail: " + 1"},
		{line: "save_ph", pos: 7, head: "", first: "save_phiC"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			head, got, tail := complete(tt.line, tt.pos)
			if head != tt.head || tail != tt.tail {
				t.Errorf("head, tail = %q, %q; want %q, %q", head, tail, tt.head, tt.tail)
			}
			if len(got) == 0 || got[0] != tt.first {
				t.Errorf("completions = %v, want %q first", got, tt.first)
			}
		})
	}

	if _, got, _ := complete("1 + ", 4); got != nil {
		t.Errorf("completions after a space = %v", got)
	}
}
