package elvas

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kolkov/elvas/internal/eval"
	"github.com/kolkov/elvas/internal/interp"
	"github.com/kolkov/elvas/internal/parser"
)

// Error kinds a ScriptError unwraps to.
var (
	ErrUndefinedSymbol      = eval.ErrUndefinedSymbol
	ErrUnresolvedFunction   = eval.ErrUnresolvedFunction
	ErrMalformedConditional = eval.ErrMalformedConditional
	ErrDataFormat           = interp.ErrDataFormat
	ErrMissingDeclaration   = interp.ErrMissingDeclaration
	ErrSyntax               = interp.ErrSyntax
	ErrUnknownSection       = interp.ErrUnknownSection

	// ErrExit is returned by Session.Exec after exit() was evaluated.
	ErrExit = eval.ErrExit
)

// ScriptError reports the first failure of a script run.
type ScriptError struct {
	Line    int    // 1-based line the failing statement started on
	Text    string // Statement text without comments
	Message string // Description of the failure
	Excerpt string // Source line, with a caret marker when the position is known
	Syntax  bool   // The line could not be parsed

	err error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Unwrap returns the underlying failure.
func (e *ScriptError) Unwrap() error { return e.err }

// Render writes the report shown to script authors.
func (e *ScriptError) Render(w io.Writer) error {
	head := "Error in line %d:\n%s\n%s\n"
	if e.Syntax {
		head = "Wrong syntax in line %d:\n%s\n%s\n"
	}
	_, err := fmt.Fprintf(w, head, e.Line, e.Message, e.Excerpt)
	return err
}

// scriptError converts an interpreter failure into a ScriptError. Other
// errors are returned unchanged.
func scriptError(err error) error {
	var ie *interp.Error
	if !errors.As(err, &ie) {
		return err
	}

	se := &ScriptError{
		Line:    ie.Line,
		Text:    ie.Text,
		Message: ie.Err.Error(),
		Excerpt: ie.Text,
		Syntax:  errors.Is(ie.Err, interp.ErrSyntax),
		err:     ie.Err,
	}

	var pe *parser.ParseError
	if errors.As(ie.Err, &pe) {
		se.Syntax = true
		se.Message = pe.Summary()
		se.Excerpt = pe.Excerpt()
		return se
	}

	// Function bodies keep the positions of their defining line, so only
	// mark nodes that were parsed from the failing line itself.
	var ee *eval.Error
	if errors.As(ie.Err, &ee) && ee.Pos.IsValid() && ee.Pos.Line == ie.Line && ee.Pos.Offset <= len(ie.Text) {
		se.Excerpt = ie.Text + "\n" + strings.Repeat("_", ee.Pos.Offset) + "^_"
	}
	return se
}
