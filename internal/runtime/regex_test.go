package runtime

import (
	"slices"
	"sync"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		pattern string
		wantErr bool
	}{
		{"hello", false},
		{"^[a-z]+$", false},
		{`\s*,\s*`, false},
		{"[invalid", true},
		{"(unclosed", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for pattern %q", tt.pattern)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if re.Pattern() != tt.pattern {
				t.Errorf("Pattern() = %q, want %q", re.Pattern(), tt.pattern)
			}
		})
	}
}

func TestMustCompile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for invalid pattern")
		}
	}()
	MustCompile("[invalid")
}

func TestFindAllStringIndex(t *testing.T) {
	re := MustCompile(`,`)
	got := re.FindAllStringIndex(",a,,b", -1)
	want := [][]int{{0, 1}, {2, 3}, {3, 4}}
	if len(got) != len(want) {
		t.Fatalf("FindAllStringIndex got %d matches, want %d", len(got), len(want))
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("match %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{",", ","},
		{"|", `\|`},
		{"a.b", `a\.b`},
		{"[*]", `\[\*\]`},
		{`\`, `\\`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := QuoteMeta(tt.in)
			if got != tt.want {
				t.Errorf("QuoteMeta(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !MustCompile("^" + got + "$").MatchString(tt.in) {
				t.Errorf("quoted %q does not match itself", tt.in)
			}
		})
	}
}

func TestSplitterCache(t *testing.T) {
	c := splitterCache{limit: 3}

	s1, err := c.get(",")
	if err != nil {
		t.Fatal(err)
	}
	if s2, _ := c.get(","); s1 != s2 {
		t.Error("same delimiter built twice")
	}

	for _, d := range []string{";", "|", "::"} {
		if _, err := c.get(d); err != nil {
			t.Fatal(err)
		}
	}
	if n := c.len(); n != 3 {
		t.Errorf("len() = %d, want 3", n)
	}
	if _, ok := c.byKey[","]; ok {
		t.Error("oldest delimiter was not evicted")
	}
	if s3, _ := c.get(","); s3 == s1 {
		t.Error("evicted Splitter returned again")
	}
}

func TestSplitterCacheConcurrency(t *testing.T) {
	c := splitterCache{limit: 2}
	delims := []string{",", ";", " ", "|", ""}

	var wg sync.WaitGroup
	for _, d := range delims {
		wg.Go(func() {
			for range 100 {
				s, err := c.get(d)
				if err != nil {
					t.Errorf("get(%q): %v", d, err)
					return
				}
				if s.Delim() != d {
					t.Errorf("get(%q) returned the Splitter for %q", d, s.Delim())
				}
			}
		})
	}
	wg.Wait()

	if n := c.len(); n > 2 {
		t.Errorf("len() = %d, want at most 2", n)
	}
}

func TestIsIdent(t *testing.T) {
	for _, s := range []string{"x", "_a1", "RECORD_VARS", "lnRinv"} {
		if !IsIdent(s) {
			t.Errorf("IsIdent(%q) = false", s)
		}
	}
	for _, s := range []string{"", "1x", "a-b", "a b", "$0"} {
		if IsIdent(s) {
			t.Errorf("IsIdent(%q) = true", s)
		}
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		line string
		want Header
		ok   bool
	}{
		{"[GENERAL]", Header{Name: "GENERAL"}, true},
		{"  [ MAIN_ROUTINE ]  ", Header{Name: "MAIN_ROUTINE"}, true},
		{"[DATASET](1, 2)", Header{Name: "DATASET", Payload: "1, 2", HasPayload: true}, true},
		{"[DATASET] ( 0.5 )", Header{Name: "DATASET", Payload: "0.5", HasPayload: true}, true},
		{"[DATASET]()", Header{Name: "DATASET", HasPayload: true}, true},
		{"[DATASET](1", Header{}, false},
		{"[DATASET] x", Header{}, false},
		{"[]", Header{}, false},
		{"x = [1]", Header{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseHeader(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseHeader(%q) = %+v, %v; want %+v, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseStringDecl(t *testing.T) {
	tests := []struct {
		line  string
		name  string
		value string
		ok    bool
	}{
		{`RECORD_DELIM = ","`, "RECORD_DELIM", ",", true},
		{`OUTPUT_DELIM=" "`, "OUTPUT_DELIM", " ", true},
		{`X = ""`, "X", "", true},
		{`X = "a`, "", "", false},
		{`X = "a" b`, "", "", false},
		{`1X = "a"`, "", "", false},
		{`X = {a}`, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, value, ok := ParseStringDecl(tt.line)
			if ok != tt.ok || name != tt.name || value != tt.value {
				t.Errorf("ParseStringDecl(%q) = %q, %q, %v", tt.line, name, value, ok)
			}
		})
	}
}

func TestParseListDecl(t *testing.T) {
	tests := []struct {
		line  string
		name  string
		items []string
		ok    bool
	}{
		{"RECORD_VARS = {a, b, c}", "RECORD_VARS", []string{"a", "b", "c"}, true},
		{"V={x}", "V", []string{"x"}, true},
		{"V = { }", "V", []string{}, true},
		{"V = {a,,b}", "", nil, false},
		{"V = {a b}", "", nil, false},
		{`V = "a"`, "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, items, ok := ParseListDecl(tt.line)
			if ok != tt.ok || name != tt.name || !slices.Equal(items, tt.items) {
				t.Errorf("ParseListDecl(%q) = %q, %q, %v", tt.line, name, items, ok)
			}
		})
	}
}

func TestSplitter(t *testing.T) {
	tests := []struct {
		delim string
		line  string
		want  []string
	}{
		{",", "1,2,3", []string{"1", "2", "3"}},
		{",", " 1 , 2,3 ", []string{"1", "2", "3"}},
		{",", "1,,2", []string{"1", "", "2"}},
		{",", "1, ,2", []string{"1", "", "2"}},
		{",", ",1,2", []string{"", "1", "2"}},
		{",", "1,2,", []string{"1", "2", ""}},
		{" , ", "1,2", []string{"1", "2"}},
		{" ", "1  2   3", []string{"1", "2", "3"}},
		{"\t", "1\t\t2", []string{"1", "2"}},
		{"", "1 \t 2", []string{"1", "2"}},
		{"|", "1|2", []string{"1", "2"}},
		{"::", "1 :: 2", []string{"1", "2"}},
		{",", "42", []string{"42"}},
		{",", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.delim+"_"+tt.line, func(t *testing.T) {
			s, err := NewSplitter(tt.delim)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.Split(tt.line); !slices.Equal(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.line, got, tt.want)
			}
			if s.Delim() != tt.delim {
				t.Errorf("Delim() = %q", s.Delim())
			}
		})
	}
}
