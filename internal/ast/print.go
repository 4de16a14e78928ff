package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer renders an AST as an indented tree for interactive inspection.
// The output is diagnostic only and is not meant to be parsed back.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the tree form of node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

// String returns the tree form of node.
func String(node Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb).Print(node)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, strings.Repeat("  ", p.indent))
}

// open writes name[ and starts a new, deeper indented line.
func (p *Printer) open(name string) {
	p.printf("%s[\n", name)
	p.indent++
	p.writeIndent()
}

// sep separates two children of the current bracket.
func (p *Printer) sep() {
	p.printf(",\n")
	p.writeIndent()
}

// close ends the current bracket on its own line.
func (p *Printer) close() {
	p.printf("\n")
	p.indent--
	p.writeIndent()
	p.printf("]")
}

func (p *Printer) printList(list []Expr) {
	for i, e := range list {
		if i > 0 {
			p.sep()
		}
		p.printNode(e)
	}
}

func (p *Printer) printNode(node Node) {
	if node == nil {
		p.printf("<nil>")
		return
	}

	switch n := node.(type) {
	case *Num:
		p.printf("%s", strconv.FormatFloat(n.Value, 'g', -1, 64))

	case *Const:
		p.printf("%q", n.Name)

	case *Call:
		p.open(n.Name)
		if len(n.Args) == 0 {
			p.printf("(no_args)")
		}
		p.printList(n.Args)
		p.close()

	case *Cond:
		p.open("if")
		p.printNode(n.Test)
		for _, b := range n.Branches {
			p.sep()
			p.printNode(b)
		}
		p.close()

	case *Signed:
		p.open("Signed")
		sign := "+"
		if n.Neg {
			sign = "-"
		}
		p.printf("sign = %q", sign)
		p.sep()
		p.printNode(n.X)
		p.close()

	case *Power:
		p.open("Power")
		p.printNode(n.Base)
		p.sep()
		p.printNode(n.Exp)
		p.close()

	case *PowerInt:
		p.open("PowerInt")
		p.printNode(n.Base)
		p.sep()
		p.printf("%d", n.Exp)
		p.close()

	case *Product:
		p.open("Times")
		for i, o := range n.Operands {
			if i > 0 {
				p.sep()
				op := "*"
				if o.Invert {
					op = "/"
				}
				p.printf("op = %q", op)
				p.sep()
			}
			p.printNode(o.X)
		}
		p.close()

	case *Sum:
		p.open("Plus")
		for i, t := range n.Terms {
			if i > 0 {
				p.sep()
				op := "+"
				if t.Neg {
					op = "-"
				}
				p.printf("op = %q", op)
				p.sep()
			}
			p.printNode(t.X)
		}
		p.close()

	case *Rel:
		p.open("Rel")
		p.printNode(n.Left)
		p.sep()
		p.printf("op = %q", n.Op.String())
		p.sep()
		p.printNode(n.Right)
		p.close()

	case *And:
		p.open("And")
		p.printList(n.Operands)
		p.close()

	case *Or:
		p.open("Or")
		p.printList(n.Operands)
		p.close()

	case *Assign:
		for _, name := range n.Names {
			p.printf("%q =\n", name)
			p.writeIndent()
		}
		p.printNode(n.Value)

	case *FuncDef:
		p.printf("%s(%s) :=\n", n.Name, strings.Join(n.Params, ", "))
		p.writeIndent()
		p.printNode(n.Body)

	case *Echo:
		p.printf("print[%q]", n.Text)

	case *Emit:
		p.printf("print[#%d]", n.Index)

	default:
		p.printf("<%T>", node)
	}
}
