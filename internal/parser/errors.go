// Package parser provides the ELVAS statement parser.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/kolkov/elvas/internal/token"
)

// ParseError represents a syntax error encountered during parsing.
// It implements the error interface and includes source position information.
type ParseError struct {
	Pos     token.Position // Position where the error occurred
	Message string         // Human-readable error message
	Got     string         // Token/value that was found (optional)
	Want    string         // Construct that was expected (optional)
	Source  string         // Statement text the position refers to
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// Unwrap returns nil as ParseError doesn't wrap other errors.
func (e *ParseError) Unwrap() error {
	return nil
}

// Summary returns the one-line diagnostic shown above the excerpt.
func (e *ParseError) Summary() string {
	if e.Want != "" {
		return fmt.Sprintf("Wrong syntax: %s is expected here.", e.Want)
	}
	return fmt.Sprintf("Wrong syntax: %s.", e.Message)
}

// Excerpt returns the statement with the failure position marked below it.
func (e *ParseError) Excerpt() string {
	offset := max(e.Pos.Offset, 0)
	return e.Source + "\n" + strings.Repeat("_", offset) + "^_"
}

// Render writes the summary and the marked excerpt to w.
func (e *ParseError) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", e.Summary(), e.Excerpt())
	return err
}

// errorf creates a ParseError at the given position with formatted message.
func errorf(pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// expectedError creates a ParseError for unexpected token.
func expectedError(pos token.Position, want string, got string) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf("expected %s, got %s", want, got),
		Want:    want,
		Got:     got,
	}
}
