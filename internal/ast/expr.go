package ast

import "github.com/kolkov/elvas/internal/token"

// -----------------------------------------------------------------------------
// Leaves
// -----------------------------------------------------------------------------

// Num represents a numeric literal.
// Examples: 42, 3.14, 1e10, .5, inf
type Num struct {
	BaseExpr
	Value float64 // Parsed numeric value
	Raw   string  // Original source text
}

// Const represents a reference to a named constant.
// A name with no constant bound falls back to a zero-arity function.
type Const struct {
	BaseExpr
	Name string
}

// -----------------------------------------------------------------------------
// Calls
// -----------------------------------------------------------------------------

// Call represents a function call.
// Examples: sqrt(2), max(a, b, c), exit()
type Call struct {
	BaseExpr
	Name string
	Args []Expr

	// Fn caches the callable resolved on first evaluation. It is never
	// re-resolved, so redefining Name later does not affect this call site.
	Fn Func
}

// Cond represents if(test, then[, else]).
type Cond struct {
	BaseExpr
	Test     Expr
	Branches []Expr // one or two branches
}

// -----------------------------------------------------------------------------
// Arithmetic
// -----------------------------------------------------------------------------

// Signed represents a primary with a leading + or -.
type Signed struct {
	BaseExpr
	Neg bool
	X   Expr
}

// Power represents base^exp with a general exponent.
type Power struct {
	BaseExpr
	Base Expr
	Exp  Expr
}

// PowerInt represents base^n where n was written as an integer literal.
type PowerInt struct {
	BaseExpr
	Base Expr
	Exp  int32
}

// Operand is one factor of a Product. Invert marks a divisor.
type Operand struct {
	Invert bool
	X      Expr
}

// Product represents a left-associative chain of * and /.
// The first operand never has Invert set.
type Product struct {
	BaseExpr
	Operands []Operand
}

// Term is one addend of a Sum. Neg marks a subtracted term.
type Term struct {
	Neg bool
	X   Expr
}

// Sum represents a left-associative chain of + and -.
// The first term never has Neg set.
type Sum struct {
	BaseExpr
	Terms []Term
}

// -----------------------------------------------------------------------------
// Comparison and logic
// -----------------------------------------------------------------------------

// Rel represents a single comparison.
type Rel struct {
	BaseExpr
	Left  Expr
	Op    token.Token // EQUALS, NOT_EQUALS, LESS, LTE, GREATER, GTE
	Right Expr
}

// And represents a chain of & operands. All operands are evaluated.
type And struct {
	BaseExpr
	Operands []Expr
}

// Or represents a chain of | operands. All operands are evaluated.
type Or struct {
	BaseExpr
	Operands []Expr
}

// -----------------------------------------------------------------------------
// Bindings
// -----------------------------------------------------------------------------

// Assign represents x = y = value.
type Assign struct {
	BaseExpr
	Names []string
	Value Expr
}

// FuncDef represents name(params...) := body.
type FuncDef struct {
	BaseExpr
	Name   string
	Params []string
	Body   Expr
}

// -----------------------------------------------------------------------------
// Literal output
// -----------------------------------------------------------------------------

// Echo represents print("text") as written in the source.
type Echo struct {
	BaseExpr
	Text string
}

// Emit writes the stored literal with the given index.
// Routine lists hold Emit in place of Echo.
type Emit struct {
	BaseExpr
	Index int
}

// Compile-time interface checks
var (
	_ Expr = (*Num)(nil)
	_ Expr = (*Const)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Cond)(nil)
	_ Expr = (*Signed)(nil)
	_ Expr = (*Power)(nil)
	_ Expr = (*PowerInt)(nil)
	_ Expr = (*Product)(nil)
	_ Expr = (*Sum)(nil)
	_ Expr = (*Rel)(nil)
	_ Expr = (*And)(nil)
	_ Expr = (*Or)(nil)
	_ Expr = (*Assign)(nil)
	_ Expr = (*FuncDef)(nil)
	_ Expr = (*Echo)(nil)
	_ Expr = (*Emit)(nil)
)
