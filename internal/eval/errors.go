package eval

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/kolkov/elvas/internal/token"
)

// Error kinds. Every *Error unwraps to one of these.
var (
	ErrUndefinedSymbol      = errors.New("undefined symbol")
	ErrUnresolvedFunction   = errors.New("unresolved function")
	ErrMalformedConditional = errors.New("malformed conditional")
)

// ErrExit is returned by the exit() builtin. Callers stop executing and
// treat it as a clean termination.
var ErrExit = errors.New("exit")

// Error is an evaluation failure with structured logging attributes.
type Error struct {
	Kind       error          // one of the Err* kinds
	Name       string         // symbol or function name, if any
	Detail     string         // extra explanation appended to the message
	Suggestion string         // closest known name, if any
	Pos        token.Position // position of the offending node
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Name != "" {
		fmt.Fprintf(&b, " %q", e.Name)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	return b.String()
}

// Unwrap returns the error kind for errors.Is.
func (e *Error) Unwrap() error { return e.Kind }

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("error", e.Kind.Error())}
	if e.Name != "" {
		attrs = append(attrs, slog.String("name", e.Name))
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	if e.Suggestion != "" {
		attrs = append(attrs, slog.String("suggestion", e.Suggestion))
	}
	if e.Pos.IsValid() {
		attrs = append(attrs, slog.String("pos", e.Pos.String()))
	}
	return slog.GroupValue(attrs...)
}

// suggest returns the candidate that best matches name, or "".
func suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}
	slices.Sort(candidates)
	matches := fuzzy.Find(name, candidates)
	for _, m := range matches {
		if m.Str != name {
			return m.Str
		}
	}
	return ""
}

func arityText(arity int) string {
	switch {
	case arity == 1:
		return "takes 1 argument"
	case arity >= 0:
		return fmt.Sprintf("takes %d arguments", arity)
	case arity == -2:
		return "takes at least 1 argument"
	default:
		return fmt.Sprintf("takes at least %d arguments", -arity-1)
	}
}
