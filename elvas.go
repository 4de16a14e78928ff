package elvas

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kolkov/elvas/internal/ast"
	"github.com/kolkov/elvas/internal/interp"
	"github.com/kolkov/elvas/internal/log"
	"github.com/kolkov/elvas/internal/parser"
	"github.com/kolkov/elvas/internal/physics"
	"github.com/kolkov/elvas/internal/runtime"
	"github.com/kolkov/elvas/internal/types"
)

// Version is the ELVAS version string.
const Version = "1.1"

// Run executes the script read from script and writes its output to output.
// If config is nil, default configuration is used.
//
// Example:
//
//	err := elvas.Run(f, os.Stdout, &elvas.Config{Notation: "general"})
func Run(script io.Reader, output io.Writer, config *Config) error {
	s, err := New(output, config)
	if err != nil {
		return err
	}
	return s.Run(script)
}

// RunString runs the script src and returns what it printed. The output
// written before a failure is returned together with the error.
func RunString(src string, config *Config) (string, error) {
	var sb strings.Builder
	err := Run(strings.NewReader(src), &sb, config)
	return sb.String(), err
}

// Script is an interpreter with its functions registered, ready to run one
// script. It is not safe for concurrent use.
type Script struct {
	in     *interp.Interpreter
	out    *bufio.Writer
	logger log.Logger
}

// New returns a Script that writes to output. A nil output discards it.
func New(output io.Writer, config *Config) (*Script, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()

	format, err := cfg.format()
	if err != nil {
		return nil, err
	}
	if output == nil {
		output = io.Discard
	}

	w := bufio.NewWriter(output)
	in := interp.New(interp.Config{
		Output:      w,
		OutputDelim: cfg.OutputDelim,
		Logger:      cfg.Logger,
	})
	in.SetFormat(format)

	s := &Script{in: in, out: w, logger: cfg.Logger}
	if *cfg.Physics {
		physics.Register(in.Evaluator())
	}
	for _, f := range cfg.Functions {
		s.Define(f.Name, f.Arity, f.Fn)
	}
	return s, nil
}

// Define makes fn callable from the script as name. Arity is the exact
// argument count or Variadic(n). A later definition of the same name
// replaces the earlier one.
func (s *Script) Define(name string, arity int, fn func(args []float64) (float64, error)) {
	s.in.Evaluator().Define(name, arity, fn)
}

// Names returns the constants and functions currently defined, sorted.
func (s *Script) Names() []string {
	return s.in.Evaluator().Names()
}

// Run reads and executes the script from r. Output is flushed before Run
// returns, also on failure.
func (s *Script) Run(r io.Reader) error {
	err := s.in.Run(r)
	if errors.Is(err, ErrExit) {
		s.logger.Debug("script called exit")
		err = nil
	}
	if ferr := s.out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		s.logger.Debug("script failed", slog.Any("error", err))
	}
	return scriptError(err)
}

// Session evaluates statements one line at a time.
type Session struct {
	s    *Script
	line int

	// Heading decorates the frame printed around syntax trees.
	// Nil prints it plain.
	Heading func(string) string
}

// NewSession returns a Session writing to output. The output delimiter
// defaults to ", ".
func NewSession(output io.Writer, config *Config) (*Session, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	if cfg.OutputDelim == "" {
		cfg.OutputDelim = ", "
	}
	s, err := New(output, &cfg)
	if err != nil {
		return nil, err
	}
	return &Session{s: s}, nil
}

// Script returns the Script statements are evaluated in.
func (ss *Session) Script() *Script { return ss.s }

// Exec parses and evaluates one line, writing the syntax tree and the value.
// Failures of the statement are written to the output as well; the returned
// error is ErrExit after exit() or a write failure.
func (ss *Session) Exec(text string) error {
	ss.line++
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	w := ss.s.out

	node, err := parser.ParseStatement(text, ss.line)
	if err != nil {
		ss.report(err)
		return w.Flush()
	}

	format := ss.s.in.Format()
	if _, echo := node.(*ast.Echo); echo {
		// Literal prints report a plain 0.
		format.Notation = types.General
	} else {
		fmt.Fprintf(w, "%s\n%s\n%s\n", ss.heading("===AST==="), ast.String(node), ss.heading("========="))
	}

	v, err := ss.s.in.Eval(node)
	switch {
	case errors.Is(err, ErrExit):
		if ferr := w.Flush(); ferr != nil {
			return ferr
		}
		return ErrExit
	case err != nil:
		ss.report(err)
	default:
		fmt.Fprintf(w, "[out]: %s\n\n", format.String(v))
	}
	return w.Flush()
}

func (ss *Session) heading(s string) string {
	if ss.Heading == nil {
		return s
	}
	return ss.Heading(s)
}

func (ss *Session) report(err error) {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		fmt.Fprintf(ss.s.out, "[Error]: %s\n%s\n", pe.Summary(), pe.Excerpt())
		return
	}
	fmt.Fprintf(ss.s.out, "[Error]: %s\n", err)
}

// Prompt is written before every interactive input line.
const Prompt = "[in]: "

// Interactive runs a Session over the lines of r until the input ends or
// the script calls exit().
func Interactive(r io.Reader, output io.Writer, config *Config) error {
	ss, err := NewSession(output, config)
	if err != nil {
		return err
	}

	sc := runtime.NewLineScanner(r)
	for {
		if _, err := io.WriteString(ss.s.out, Prompt); err != nil {
			return err
		}
		if err := ss.s.out.Flush(); err != nil {
			return err
		}
		if !sc.Scan() {
			break
		}
		if err := ss.Exec(sc.Text()); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			return err
		}
	}
	return sc.Err()
}
