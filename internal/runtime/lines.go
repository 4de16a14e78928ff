package runtime

import "strings"

// Line classifiers for the script layout. Payloads are cut out by index
// after a whole-line match, so the patterns need no capture groups.
var (
	identRe      = MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	headerRe     = MustCompile(`^\[\s*[A-Za-z_][A-Za-z0-9_]*\s*\]`)
	payloadRe    = MustCompile(`^\([^)]*\)$`)
	stringDeclRe = MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\s*=\s*"[^"#]*"\s*$`)
	listDeclRe   = MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\s*=\s*\{\s*([A-Za-z_][A-Za-z0-9_]*(\s*,\s*[A-Za-z_][A-Za-z0-9_]*)*)?\s*\}\s*$`)
	listSepRe    = MustCompile(`,`)
)

// IsIdent reports whether s is a valid variable or section name.
func IsIdent(s string) bool {
	return identRe.MatchString(s)
}

// Header is a parsed section header line: [NAME] or [NAME](payload).
type Header struct {
	Name       string
	Payload    string
	HasPayload bool
}

// ParseHeader recognizes a section header. Whitespace is allowed inside the
// brackets and between the parts.
func ParseHeader(line string) (Header, bool) {
	line = strings.TrimSpace(line)
	loc := headerRe.FindStringIndex(line)
	if loc == nil {
		return Header{}, false
	}

	h := Header{Name: strings.TrimSpace(line[1 : loc[1]-1])}
	rest := strings.TrimSpace(line[loc[1]:])
	if rest == "" {
		return h, true
	}
	if !payloadRe.MatchString(rest) {
		return Header{}, false
	}
	h.Payload = strings.TrimSpace(rest[1 : len(rest)-1])
	h.HasPayload = true
	return h, true
}

// ParseStringDecl recognizes name = "value". The value is taken verbatim.
func ParseStringDecl(line string) (name, value string, ok bool) {
	line = strings.TrimSpace(line)
	if !stringDeclRe.MatchString(line) {
		return "", "", false
	}
	eq := strings.IndexByte(line, '=')
	open := strings.IndexByte(line, '"')
	end := strings.LastIndexByte(line, '"')
	return strings.TrimSpace(line[:eq]), line[open+1 : end], true
}

// ParseListDecl recognizes name = {a, b, c}. An empty list is allowed.
func ParseListDecl(line string) (name string, items []string, ok bool) {
	line = strings.TrimSpace(line)
	if !listDeclRe.MatchString(line) {
		return "", nil, false
	}
	eq := strings.IndexByte(line, '=')
	open := strings.IndexByte(line, '{')
	end := strings.LastIndexByte(line, '}')

	body := strings.TrimSpace(line[open+1 : end])
	if body == "" {
		return strings.TrimSpace(line[:eq]), []string{}, true
	}
	return strings.TrimSpace(line[:eq]), cut(listSepRe, body), true
}
