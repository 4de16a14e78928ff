// Package interp implements the section interpreter: it reads a script line
// by line, tracks the current section, stores routine statements and drives
// the begin/main/end/finalize routines against the dataset records.
package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kolkov/elvas/internal/ast"
	"github.com/kolkov/elvas/internal/eval"
	"github.com/kolkov/elvas/internal/log"
	"github.com/kolkov/elvas/internal/parser"
	"github.com/kolkov/elvas/internal/runtime"
	"github.com/kolkov/elvas/internal/types"
)

// Config controls an Interpreter.
type Config struct {
	// Output receives print output. Nil discards it.
	Output io.Writer

	// OutputDelim joins print arguments when the script declares no
	// OUTPUT_DELIM.
	OutputDelim string

	// Format renders numbers in print output. The zero Format selects
	// types.NewFormat.
	Format types.Format

	// Logger receives section and dataset events.
	Logger log.Logger
}

// Stmt is a stored routine statement together with its source line.
type Stmt struct {
	Node ast.Expr
	Line int
	Text string
}

// Interpreter runs one script. It is not safe for concurrent use.
type Interpreter struct {
	ev     *eval.Evaluator
	out    io.Writer
	format types.Format
	delim  string
	logger log.Logger

	state State
	decls declarations

	routines [StateFinalize + 1][]Stmt // indexed by routine state
	literals []string

	recordSplit  *runtime.Splitter
	datasetSplit *runtime.Splitter

	brk, cont bool

	inDataset bool // begin ran, end is due
	halted    bool // break stopped record processing for good
	skipping  bool // state was left by break or continue
	records   int

	buf []byte
}

// New returns an Interpreter with the builtin and output functions
// registered.
func New(cfg Config) *Interpreter {
	in := &Interpreter{
		out:    cfg.Output,
		format: cfg.Format,
		delim:  cfg.OutputDelim,
		logger: cfg.Logger,
		decls:  newDeclarations(),
	}
	if in.out == nil {
		in.out = io.Discard
	}
	if in.format == (types.Format{}) {
		in.format = types.NewFormat()
	}
	in.ev = eval.New(eval.WithEmitter(emitter{in}), eval.WithLogger(cfg.Logger))
	in.registerBuiltins()
	return in
}

// Evaluator returns the evaluator shared by every statement of the script.
func (in *Interpreter) Evaluator() *eval.Evaluator { return in.ev }

// State returns the current section.
func (in *Interpreter) State() State { return in.state }

// Format returns the current number format.
func (in *Interpreter) Format() types.Format { return in.format }

// SetFormat replaces the number format, including the zero Format that
// Config treats as unset.
func (in *Interpreter) SetFormat(f types.Format) { in.format = f }

// Routine returns the statements stored for a routine section.
func (in *Interpreter) Routine(s State) []Stmt {
	switch s {
	case StateBegin, StateMain, StateEnd, StateFinalize:
		return in.routines[s]
	}
	return nil
}

// Run reads the whole script from r, then runs the pending end routine and
// the finalize routine.
func (in *Interpreter) Run(r io.Reader) error {
	lr := newLineReader(r)
	for {
		text, line, ok := lr.next()
		if !ok {
			break
		}
		if err := in.handle(text, line); err != nil {
			return at(err, line, text)
		}
	}
	if err := lr.err(); err != nil {
		return err
	}
	return in.finish()
}

// EvalStatement parses and evaluates one statement immediately.
func (in *Interpreter) EvalStatement(text string, line int) (ast.Expr, float64, error) {
	node, err := parser.ParseStatement(text, line)
	if err != nil {
		return nil, 0, err
	}
	v, err := in.Eval(node)
	return node, v, err
}

// Eval evaluates a parsed statement outside of any routine. Loop control
// raised by the statement is discarded.
func (in *Interpreter) Eval(node ast.Expr) (float64, error) {
	v, err := in.ev.Eval(node)
	in.brk, in.cont = false, false
	return v, err
}

func (in *Interpreter) handle(text string, line int) error {
	if h, ok := runtime.ParseHeader(text); ok {
		return in.enter(h)
	}

	switch in.state {
	case StateNone:
		if in.skipping {
			in.logger.Trace("line skipped", slog.Int("line", line))
			return nil
		}
		return fmt.Errorf("%w: statement outside of a section", ErrSyntax)
	case StateGeneral:
		return in.general(text)
	case StateInitialize:
		return in.initialize(text, line)
	case StateDataset:
		return in.record(text)
	default:
		return in.store(text, line)
	}
}

func (in *Interpreter) enter(h runtime.Header) error {
	st, ok := sections[h.Name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownSection, h.Name)
	}
	if h.HasPayload && st != StateDataset {
		return fmt.Errorf("%w: only DATASET headers take values", ErrSyntax)
	}

	if in.inDataset {
		if err := in.endDataset(); err != nil {
			return err
		}
	}

	in.logger.Debug("section",
		slog.String("from", in.state.String()),
		slog.String("to", st.String()))
	in.state = st
	in.skipping = false

	if st != StateDataset {
		return nil
	}
	if in.halted {
		in.state = StateNone
		in.skipping = true
		return nil
	}
	return in.beginDataset(h)
}

func (in *Interpreter) general(text string) error {
	if name, value, ok := runtime.ParseStringDecl(text); ok {
		if !in.decls.setString(name, value) {
			in.logger.Debug("declaration ignored", slog.String("name", name))
		}
		return nil
	}
	if name, items, ok := runtime.ParseListDecl(text); ok {
		if !in.decls.setList(name, items) {
			in.logger.Debug("declaration ignored", slog.String("name", name))
		}
		return nil
	}
	return fmt.Errorf(`%w: expected name = "text" or name = {a, b}`, ErrSyntax)
}

func (in *Interpreter) initialize(text string, line int) error {
	node, err := parser.ParseStatement(text, line)
	if err != nil {
		return err
	}
	if _, err := in.ev.Eval(node); err != nil {
		return err
	}
	if in.cont || in.brk {
		in.cont, in.brk = false, false
		in.leave()
	}
	return nil
}

// store parses a routine line and appends it to the current routine.
func (in *Interpreter) store(text string, line int) error {
	node, err := parser.ParseStatement(text, line)
	if err != nil {
		return err
	}
	if echo, ok := node.(*ast.Echo); ok {
		in.literals = append(in.literals, echo.Text)
		node = &ast.Emit{BaseExpr: echo.BaseExpr, Index: len(in.literals) - 1}
	}
	in.routines[in.state] = append(in.routines[in.state], Stmt{Node: node, Line: line, Text: text})
	return nil
}

func (in *Interpreter) beginDataset(h runtime.Header) error {
	var names []string
	var values []float64

	if h.Payload == "" {
		if n := in.decls.listLen(DatasetVars); n > 0 {
			return fmt.Errorf("%w: dataset header has no values, %d declared", ErrDataFormat, n)
		}
	} else {
		sp, err := in.splitter(DatasetDelim, &in.datasetSplit)
		if err != nil {
			return err
		}
		var ok bool
		if names, ok = in.decls.list(DatasetVars); !ok {
			return missing(DatasetVars)
		}
		if values, err = parseFields(sp.Split(h.Payload), len(names)); err != nil {
			return fmt.Errorf("dataset values: %w", err)
		}
	}

	for i, name := range names {
		in.ev.SetConst(name, values[i])
	}
	in.inDataset = true
	in.records = 0
	in.logger.Debug("dataset begin", slog.Int("values", len(values)))
	return in.execute(in.routines[StateBegin])
}

func (in *Interpreter) endDataset() error {
	in.inDataset = false
	in.logger.Debug("dataset end", slog.Int("records", in.records))
	return in.execute(in.routines[StateEnd])
}

func (in *Interpreter) record(text string) error {
	sp, err := in.splitter(RecordDelim, &in.recordSplit)
	if err != nil {
		return err
	}
	names, ok := in.decls.list(RecordVars)
	if !ok {
		return missing(RecordVars)
	}
	values, err := parseFields(sp.Split(text), len(names))
	if err != nil {
		return err
	}

	for i, name := range names {
		in.ev.SetConst(name, values[i])
	}
	in.records++
	return in.execute(in.routines[StateMain])
}

// splitter claims the delimiter declaration once and caches its Splitter.
func (in *Interpreter) splitter(name string, cache **runtime.Splitter) (*runtime.Splitter, error) {
	if *cache != nil {
		return *cache, nil
	}
	delim, ok := in.decls.str(name)
	if !ok {
		return nil, missing(name)
	}
	sp, err := runtime.NewSplitter(delim)
	if err != nil {
		return nil, err
	}
	*cache = sp
	return sp, nil
}

func parseFields(fields []string, want int) ([]float64, error) {
	if len(fields) != want {
		return nil, fmt.Errorf("%w: %d fields, %d variables declared", ErrDataFormat, len(fields), want)
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := types.ParseNum(f)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d (%q) is not a number", ErrDataFormat, i+1, f)
		}
		values[i] = v
	}
	return values, nil
}

// execute runs one pass over a routine. continue ends the pass early;
// break ends it and stops all further record processing.
func (in *Interpreter) execute(stmts []Stmt) error {
	for _, s := range stmts {
		if err := in.exec(s); err != nil {
			return err
		}
		if in.cont {
			in.cont = false
			break
		}
	}
	if in.brk {
		in.brk = false
		in.halted = true
		in.leave()
		in.logger.Debug("record processing stopped")
	}
	return nil
}

func (in *Interpreter) exec(s Stmt) error {
	v, err := in.ev.Eval(s.Node)
	if err != nil {
		return &Error{Line: s.Line, Text: s.Text, Err: err}
	}
	in.logger.Trace("statement",
		slog.Int("line", s.Line),
		slog.String("text", s.Text),
		slog.Float64("value", v))
	return nil
}

func (in *Interpreter) leave() {
	in.state = StateNone
	in.skipping = true
}

func (in *Interpreter) finish() error {
	if in.inDataset {
		if err := in.endDataset(); err != nil {
			return err
		}
	}
	for _, s := range in.routines[StateFinalize] {
		if err := in.exec(s); err != nil {
			return err
		}
	}
	in.brk, in.cont = false, false
	return nil
}

// lineReader joins continued lines and strips comments.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{sc: runtime.NewLineScanner(r)}
}

// next returns the next non-empty logical line and the number of its first
// physical line. Text from # to the end of a line is a comment; a \ joins
// the following line.
func (lr *lineReader) next() (string, int, bool) {
	for lr.sc.Scan() {
		lr.line++
		start := lr.line
		raw := lr.sc.Text()

		var b strings.Builder
		for {
			raw = strings.TrimLeft(raw, " \t")
			i := strings.IndexAny(raw, `#\`)
			if i < 0 {
				b.WriteString(raw)
				break
			}
			b.WriteString(raw[:i])
			if raw[i] == '#' || !lr.sc.Scan() {
				break
			}
			lr.line++
			raw = lr.sc.Text()
		}

		if text := strings.TrimSpace(b.String()); text != "" {
			return text, start, true
		}
	}
	return "", 0, false
}

func (lr *lineReader) err() error {
	if err := lr.sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return nil
}

// emitter writes print("...") literals to the interpreter output.
type emitter struct{ in *Interpreter }

func (e emitter) EmitText(text string) error {
	_, err := io.WriteString(e.in.out, text+"\n")
	return err
}

func (e emitter) EmitLiteral(index int) error {
	if index < 0 || index >= len(e.in.literals) {
		return errors.New("literal index out of range")
	}
	return e.EmitText(e.in.literals[index])
}
