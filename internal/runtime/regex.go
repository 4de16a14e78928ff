// Package runtime provides the script runtime support: coregex-backed line
// classifiers, delimiter splitting and input/output plumbing.
package runtime

import (
	"strings"

	"github.com/coregx/coregex"
)

// Regex wraps a compiled coregex pattern.
type Regex struct {
	pattern string
	re      *coregex.Regexp
}

// Compile creates a new Regex from pattern.
func Compile(pattern string) (*Regex, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{pattern: pattern, re: re}, nil
}

// MustCompile creates a Regex, panicking on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Pattern returns the source pattern.
func (r *Regex) Pattern() string { return r.pattern }

// MatchString reports whether s contains any match.
func (r *Regex) MatchString(s string) bool {
	return r.re.MatchString(s)
}

// FindStringIndex returns the start and end of the first match, or nil.
func (r *Regex) FindStringIndex(s string) []int {
	return r.re.FindStringIndex(s)
}

// FindAllStringIndex returns all non-overlapping matches.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.re.FindAllStringIndex(s, n)
}

// QuoteMeta escapes every regular expression metacharacter in s.
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	var b strings.Builder
	b.Grow(2 * len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
