package ast

// Walk traverses an AST in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: collect every constant reference
//
//	var names []string
//	ast.Walk(expr, func(n ast.Node) bool {
//	    if c, ok := n.(*ast.Const); ok {
//	        names = append(names, c.Name)
//	    }
//	    return true
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Num, *Const, *Echo, *Emit:
		// no children

	case *Call:
		for _, a := range n.Args {
			Walk(a, fn)
		}

	case *Cond:
		Walk(n.Test, fn)
		for _, b := range n.Branches {
			Walk(b, fn)
		}

	case *Signed:
		Walk(n.X, fn)

	case *Power:
		Walk(n.Base, fn)
		Walk(n.Exp, fn)

	case *PowerInt:
		Walk(n.Base, fn)

	case *Product:
		for _, o := range n.Operands {
			Walk(o.X, fn)
		}

	case *Sum:
		for _, t := range n.Terms {
			Walk(t.X, fn)
		}

	case *Rel:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *And:
		for _, o := range n.Operands {
			Walk(o, fn)
		}

	case *Or:
		for _, o := range n.Operands {
			Walk(o, fn)
		}

	case *Assign:
		Walk(n.Value, fn)

	case *FuncDef:
		Walk(n.Body, fn)
	}
}

// Copy returns a deep copy of expr. Call caches are not carried over.
func Copy(expr Expr) Expr {
	return Rename(expr, nil)
}

// Rename returns a deep copy of expr in which every constant reference whose
// name is a key of rule is replaced by rule's value. Assignment targets and
// nested definition parameters are left untouched. Call caches are reset.
func Rename(expr Expr, rule map[string]string) Expr {
	if expr == nil {
		return nil
	}

	switch n := expr.(type) {
	case *Num:
		c := *n
		return &c

	case *Const:
		c := *n
		if to, ok := rule[n.Name]; ok {
			c.Name = to
		}
		return &c

	case *Call:
		return &Call{BaseExpr: n.BaseExpr, Name: n.Name, Args: renameList(n.Args, rule)}

	case *Cond:
		return &Cond{BaseExpr: n.BaseExpr, Test: Rename(n.Test, rule), Branches: renameList(n.Branches, rule)}

	case *Signed:
		return &Signed{BaseExpr: n.BaseExpr, Neg: n.Neg, X: Rename(n.X, rule)}

	case *Power:
		return &Power{BaseExpr: n.BaseExpr, Base: Rename(n.Base, rule), Exp: Rename(n.Exp, rule)}

	case *PowerInt:
		return &PowerInt{BaseExpr: n.BaseExpr, Base: Rename(n.Base, rule), Exp: n.Exp}

	case *Product:
		ops := make([]Operand, len(n.Operands))
		for i, o := range n.Operands {
			ops[i] = Operand{Invert: o.Invert, X: Rename(o.X, rule)}
		}
		return &Product{BaseExpr: n.BaseExpr, Operands: ops}

	case *Sum:
		terms := make([]Term, len(n.Terms))
		for i, t := range n.Terms {
			terms[i] = Term{Neg: t.Neg, X: Rename(t.X, rule)}
		}
		return &Sum{BaseExpr: n.BaseExpr, Terms: terms}

	case *Rel:
		return &Rel{BaseExpr: n.BaseExpr, Left: Rename(n.Left, rule), Op: n.Op, Right: Rename(n.Right, rule)}

	case *And:
		return &And{BaseExpr: n.BaseExpr, Operands: renameList(n.Operands, rule)}

	case *Or:
		return &Or{BaseExpr: n.BaseExpr, Operands: renameList(n.Operands, rule)}

	case *Assign:
		return &Assign{BaseExpr: n.BaseExpr, Names: append([]string(nil), n.Names...), Value: Rename(n.Value, rule)}

	case *FuncDef:
		return &FuncDef{
			BaseExpr: n.BaseExpr,
			Name:     n.Name,
			Params:   append([]string(nil), n.Params...),
			Body:     Rename(n.Body, rule),
		}

	case *Echo:
		c := *n
		return &c

	case *Emit:
		c := *n
		return &c
	}
	return expr
}

func renameList(list []Expr, rule map[string]string) []Expr {
	if list == nil {
		return nil
	}
	out := make([]Expr, len(list))
	for i, e := range list {
		out[i] = Rename(e, rule)
	}
	return out
}
