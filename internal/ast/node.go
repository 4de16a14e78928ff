// Package ast defines the abstract syntax tree for ELVAS script statements.
//
// Node hierarchy:
//
//	Node (interface)
//	└── Expr (interface) - everything a statement can be
//	    ├── Num, Const - leaves
//	    ├── Call, Cond - calls and conditionals
//	    ├── Signed, Power, PowerInt - unary and exponent forms
//	    ├── Product, Sum - arithmetic chains
//	    ├── Rel, And, Or - comparison and logic
//	    ├── Assign, FuncDef - bindings
//	    └── Echo, Emit - print("...") literal output
//
// Every node owns its children. A tree is immutable once parsed, except for
// the callable cache on Call nodes.
package ast

import "github.com/kolkov/elvas/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position

	// End returns the position of the first character immediately after this node.
	End() token.Position
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// BaseExpr provides common fields for all expression nodes.
// Embedded in concrete expression types for position tracking.
type BaseExpr struct {
	StartPos token.Position // Position of first token
	EndPos   token.Position // Position after last token
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) End() token.Position { return b.EndPos }
func (b *BaseExpr) exprNode()           {}

// MakeBaseExpr creates a BaseExpr with the given positions.
func MakeBaseExpr(start, end token.Position) BaseExpr {
	return BaseExpr{StartPos: start, EndPos: end}
}

// Func is a callable bound to a function name: builtins, host functions and
// user definitions all share this shape.
type Func func(args []float64) (float64, error)
