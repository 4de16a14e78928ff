package runtime

import (
	"strings"
	"sync"
)

// Splitter cuts a line into fields on a fixed delimiter string.
//
// Spaces around a visible delimiter and around each field are ignored. A
// delimiter made only of blanks matches any run of itself, and an empty
// delimiter splits on runs of whitespace. Empty fields are kept, so "1,,2"
// has three fields.
type Splitter struct {
	delim string
	re    *Regex
}

// splitters keeps the Splitters of the last few delimiters. Scripts
// usually declare one or two delimiters, so a small bound is enough.
var splitters = splitterCache{limit: 16}

type splitterCache struct {
	mu    sync.Mutex
	byKey map[string]*Splitter
	order []string // insertion order, oldest first
	limit int
}

func (c *splitterCache) get(delim string) (*Splitter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.byKey[delim]; ok {
		return s, nil
	}
	re, err := Compile(delimPattern(delim))
	if err != nil {
		return nil, err
	}
	s := &Splitter{delim: delim, re: re}

	if c.byKey == nil {
		c.byKey = make(map[string]*Splitter, c.limit)
	}
	if len(c.order) >= c.limit {
		delete(c.byKey, c.order[0])
		c.order = c.order[1:]
	}
	c.byKey[delim] = s
	c.order = append(c.order, delim)
	return s, nil
}

func (c *splitterCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byKey)
}

// NewSplitter returns a Splitter for delim. Splitters are shared between
// callers asking for the same delimiter.
func NewSplitter(delim string) (*Splitter, error) {
	return splitters.get(delim)
}

func delimPattern(delim string) string {
	switch {
	case delim == "":
		return `\s+`
	case strings.TrimSpace(delim) == "":
		return `(?:` + QuoteMeta(delim) + `)+`
	default:
		// Plain literal: fields are trimmed after the cut.
		return QuoteMeta(strings.TrimSpace(delim))
	}
}

// Delim returns the delimiter the Splitter was built for.
func (s *Splitter) Delim() string {
	return s.delim
}

// Split returns the fields of line. Leading and trailing whitespace of the
// line is dropped first; an empty line has no fields.
func (s *Splitter) Split(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	return cut(s.re, line)
}

// cut slices s between the matches of re and trims each piece. Adjacent
// matches and matches at either end yield empty pieces.
func cut(re *Regex, s string) []string {
	locs := re.FindAllStringIndex(s, -1)
	pieces := make([]string, 0, len(locs)+1)
	last := 0
	for _, loc := range locs {
		pieces = append(pieces, strings.TrimSpace(s[last:loc[0]]))
		last = loc[1]
	}
	return append(pieces, strings.TrimSpace(s[last:]))
}
