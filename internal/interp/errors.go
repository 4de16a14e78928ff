package interp

import (
	"errors"
	"fmt"
	"log/slog"
)

// Error kinds raised by the section interpreter.
var (
	ErrDataFormat         = errors.New("data format error")
	ErrMissingDeclaration = errors.New("missing declaration")
	ErrSyntax             = errors.New("wrong syntax")
	ErrUnknownSection     = errors.New("unknown section")
)

// Error ties a failure to the script line that produced it.
type Error struct {
	Line int    // 1-based line where the statement starts
	Text string // statement text, comments and continuations removed
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying failure.
func (e *Error) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", e.Line),
		slog.String("text", e.Text),
		slog.String("error", e.Err.Error()),
	)
}

// at wraps err with a line unless it already carries one.
func at(err error, line int, text string) error {
	var ie *Error
	if err == nil || errors.As(err, &ie) {
		return err
	}
	return &Error{Line: line, Text: text, Err: err}
}

func missing(name string) error {
	return fmt.Errorf("%w: %s is not set", ErrMissingDeclaration, name)
}
