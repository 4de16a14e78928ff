// Package eval implements the tree-walking evaluator for ELVAS statements.
//
// An [Evaluator] owns two independent namespaces: numeric constants and
// functions. Both are global to the evaluator and mutable from any
// statement. User functions defined with name(params) := body are macros
// over that shared namespace: parameters are bound to positional slots and
// every other name in the body refers to the ambient constants.
package eval

import (
	"log/slog"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/kolkov/elvas/internal/ast"
	"github.com/kolkov/elvas/internal/log"
	"github.com/kolkov/elvas/internal/numeric"
	"github.com/kolkov/elvas/internal/token"
)

// Variadic returns the arity value meaning "at least n arguments".
func Variadic(n int) int { return -n - 1 }

// Emitter receives literal output produced by print("...") statements.
type Emitter interface {
	// EmitText writes text followed by a line break.
	EmitText(text string) error
	// EmitLiteral writes the stored literal with the given index.
	EmitLiteral(index int) error
}

type nopEmitter struct{}

func (nopEmitter) EmitText(string) error { return nil }
func (nopEmitter) EmitLiteral(int) error { return nil }

type function struct {
	arity int
	fn    ast.Func
}

func (f function) accepts(n int) bool {
	return f.arity == n || (f.arity < 0 && n >= -f.arity-1)
}

// slotPrefix starts every positional parameter slot. The lexer never
// produces a name beginning with it.
const slotPrefix = "$"

// Evaluator evaluates statements against its symbol table.
type Evaluator struct {
	consts  map[string]float64
	funcs   map[string]function
	emitter Emitter
	logger  log.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithEmitter sets the destination of literal output.
func WithEmitter(em Emitter) Option {
	return func(e *Evaluator) {
		if em != nil {
			e.emitter = em
		}
	}
}

// WithLogger sets the logger used for definition events.
func WithLogger(l log.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// New returns an evaluator seeded with pi and the builtin functions.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		consts:  make(map[string]float64),
		funcs:   make(map[string]function),
		emitter: nopEmitter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.consts["pi"] = math.Pi
	registerBuiltins(e)
	return e
}

// Define registers fn under name, replacing any previous binding.
// A non-negative arity is an exact argument count; Variadic(n) accepts n or
// more arguments.
func (e *Evaluator) Define(name string, arity int, fn ast.Func) {
	e.funcs[name] = function{arity: arity, fn: fn}
}

// SetConst binds a constant.
func (e *Evaluator) SetConst(name string, v float64) {
	e.consts[name] = v
}

// Const returns the value of a bound constant.
func (e *Evaluator) Const(name string) (float64, bool) {
	v, ok := e.consts[name]
	return v, ok
}

// Lookup resolves name for a call with nargs arguments.
func (e *Evaluator) Lookup(name string, nargs int) (ast.Func, bool) {
	f, ok := e.funcs[name]
	if !ok || !f.accepts(nargs) {
		return nil, false
	}
	return f.fn, true
}

// Value resolves name the way a constant reference does: a bound constant
// first, then a zero-arity function.
func (e *Evaluator) Value(name string) (float64, error) {
	return e.constRef(name, token.NoPos)
}

// Names returns the sorted names of all constants and functions, without
// parameter slots.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.consts)+len(e.funcs))
	for name := range e.consts {
		if !strings.HasPrefix(name, slotPrefix) {
			names = append(names, name)
		}
	}
	for name := range e.funcs {
		if _, dup := e.consts[name]; !dup {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Truthy reports whether v counts as true.
func Truthy(v float64) bool { return v >= 0.5 }

func bool2num(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Eval evaluates expr and returns its value.
func (e *Evaluator) Eval(expr ast.Expr) (float64, error) {
	switch n := expr.(type) {
	case *ast.Num:
		return n.Value, nil

	case *ast.Const:
		return e.constRef(n.Name, n.Pos())

	case *ast.Call:
		return e.call(n)

	case *ast.Cond:
		return e.cond(n)

	case *ast.Signed:
		v, err := e.Eval(n.X)
		if n.Neg {
			v = -v
		}
		return v, err

	case *ast.Power:
		base, err := e.Eval(n.Base)
		if err != nil {
			return 0, err
		}
		exp, err := e.Eval(n.Exp)
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil

	case *ast.PowerInt:
		base, err := e.Eval(n.Base)
		if err != nil {
			return 0, err
		}
		return numeric.PowInt(base, n.Exp), nil

	case *ast.Product:
		return e.product(n)

	case *ast.Sum:
		return e.sum(n)

	case *ast.Rel:
		return e.rel(n)

	case *ast.And:
		return e.logic(n.Operands, true)

	case *ast.Or:
		return e.logic(n.Operands, false)

	case *ast.Assign:
		v, err := e.Eval(n.Value)
		if err != nil {
			return 0, err
		}
		for _, name := range n.Names {
			e.consts[name] = v
		}
		return v, nil

	case *ast.FuncDef:
		e.define(n)
		return 0, nil

	case *ast.Echo:
		return 0, e.emitter.EmitText(n.Text)

	case *ast.Emit:
		return 0, e.emitter.EmitLiteral(n.Index)
	}
	return 0, &Error{Kind: ErrUnresolvedFunction, Detail: "unsupported expression"}
}

func (e *Evaluator) constRef(name string, pos token.Position) (float64, error) {
	if v, ok := e.consts[name]; ok {
		return v, nil
	}
	if fn, ok := e.Lookup(name, 0); ok {
		return fn(nil)
	}
	return 0, &Error{
		Kind:       ErrUndefinedSymbol,
		Name:       name,
		Suggestion: suggest(name, e.Names()),
		Pos:        pos,
	}
}

func (e *Evaluator) call(n *ast.Call) (float64, error) {
	args := make([]float64, len(n.Args))
	for i, a := range n.Args {
		v, err := e.Eval(a)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	if n.Fn == nil {
		fn, ok := e.Lookup(n.Name, len(args))
		if !ok {
			return 0, e.unresolved(n, len(args))
		}
		n.Fn = fn
	}
	return n.Fn(args)
}

func (e *Evaluator) unresolved(n *ast.Call, nargs int) error {
	err := &Error{Kind: ErrUnresolvedFunction, Name: n.Name, Pos: n.Pos()}
	if f, ok := e.funcs[n.Name]; ok {
		err.Detail = arityText(f.arity) + ", got " + strconv.Itoa(nargs)
		return err
	}
	err.Suggestion = suggest(n.Name, slices.Collect(maps.Keys(e.funcs)))
	return err
}

func (e *Evaluator) cond(n *ast.Cond) (float64, error) {
	if len(n.Branches) < 1 || len(n.Branches) > 2 {
		return 0, &Error{
			Kind:   ErrMalformedConditional,
			Detail: strconv.Itoa(len(n.Branches)) + " branches",
			Pos:    n.Pos(),
		}
	}

	test, err := e.Eval(n.Test)
	if err != nil {
		return 0, err
	}
	switch {
	case Truthy(test):
		return e.Eval(n.Branches[0])
	case len(n.Branches) == 2:
		return e.Eval(n.Branches[1])
	default:
		return 0, nil
	}
}

func (e *Evaluator) product(n *ast.Product) (float64, error) {
	result := 1.0
	for _, o := range n.Operands {
		v, err := e.Eval(o.X)
		if err != nil {
			return 0, err
		}
		if o.Invert {
			result /= v
		} else {
			result *= v
		}
	}
	return result, nil
}

func (e *Evaluator) sum(n *ast.Sum) (float64, error) {
	var result float64
	for _, t := range n.Terms {
		v, err := e.Eval(t.X)
		if err != nil {
			return 0, err
		}
		if t.Neg {
			result -= v
		} else {
			result += v
		}
	}
	return result, nil
}

func (e *Evaluator) rel(n *ast.Rel) (float64, error) {
	l, err := e.Eval(n.Left)
	if err != nil {
		return 0, err
	}
	r, err := e.Eval(n.Right)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case token.EQUALS:
		return bool2num(l == r), nil
	case token.NOT_EQUALS:
		return bool2num(l != r), nil
	case token.LESS:
		return bool2num(l < r), nil
	case token.LTE:
		return bool2num(l <= r), nil
	case token.GREATER:
		return bool2num(l > r), nil
	case token.GTE:
		return bool2num(l >= r), nil
	}
	return 0, &Error{Kind: ErrUnresolvedFunction, Name: n.Op.String(), Detail: "unknown comparison", Pos: n.Pos()}
}

// logic evaluates every operand, then combines them.
func (e *Evaluator) logic(operands []ast.Expr, and bool) (float64, error) {
	result := and
	for _, o := range operands {
		v, err := e.Eval(o)
		if err != nil {
			return 0, err
		}
		if and {
			result = result && Truthy(v)
		} else {
			result = result || Truthy(v)
		}
	}
	return bool2num(result), nil
}

// define registers a user function. Parameters are renamed to positional
// slots so the body can be evaluated against the shared constant table.
func (e *Evaluator) define(n *ast.FuncDef) {
	slots := make([]string, len(n.Params))
	rule := make(map[string]string, len(n.Params))
	for i, p := range n.Params {
		slots[i] = slotPrefix + strconv.Itoa(i)
		rule[p] = slots[i]
	}
	body := ast.Rename(n.Body, rule)

	e.Define(n.Name, len(slots), func(args []float64) (float64, error) {
		for i, s := range slots {
			e.consts[s] = args[i]
		}
		return e.Eval(body)
	})

	e.logger.Debug("function defined",
		slog.String("name", n.Name),
		slog.Int("arity", len(slots)))
}
