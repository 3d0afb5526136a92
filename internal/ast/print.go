package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes AST nodes back out as surface syntax. The output is valid
// source: unparsing a parsed program and parsing the result yields a
// structurally equal tree (positions aside). Blocks use four-space
// indentation.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the surface form of node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
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
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, "    ")
	}
}

func (p *Printer) printNode(node Node) {
	if node == nil {
		p.printf("<nil>")
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			p.printStmt(s)
		}
	case Stmt:
		p.printStmt(n)
	case Expr:
		p.printExpr(n)
	case Pattern:
		p.printPattern(n)
	default:
		p.printf("<%T>", node)
	}
}

// printStmt writes one statement including its indentation and trailing
// newline. Compound statements recurse with indent+1 for their bodies.
func (p *Printer) printStmt(s Stmt) {
	if s == nil {
		return
	}

	switch n := s.(type) {
	case *Say:
		p.writeIndent()
		p.printf("say ")
		p.printExpr(n.Text)
		p.printf("\n")

	case *Print:
		p.writeIndent()
		p.printf("print ")
		p.printExpr(n.Text)
		p.printf("\n")

	case *Assign:
		p.writeIndent()
		p.printf("let %s = ", n.Name)
		p.printExpr(n.Value)
		p.printf("\n")

	case *Return:
		p.writeIndent()
		p.printf("return")
		if n.Value != nil {
			p.printf(" ")
			p.printExpr(n.Value)
		}
		p.printf("\n")

	case *ExprStmt:
		p.writeIndent()
		p.printExpr(n.X)
		p.printf("\n")

	case *If:
		p.writeIndent()
		p.printf("if ")
		p.printExpr(n.Cond)
		p.printf(":\n")
		p.printBody(n.Body)
		if n.Orelse != nil {
			p.writeIndent()
			p.printf("else:\n")
			p.printBody(n.Orelse)
		}

	case *While:
		p.writeIndent()
		p.printf("while ")
		p.printExpr(n.Cond)
		p.printf(":\n")
		p.printBody(n.Body)

	case *ForLoop:
		p.writeIndent()
		p.printf("for %s in ", n.Var)
		p.printExpr(n.Stop)
		p.printf(":\n")
		p.printBody(n.Body)

	case *FunctionDef:
		p.writeIndent()
		if n.IsAsync {
			p.printf("async ")
		}
		p.printf("def %s(%s):\n", n.Name, strings.Join(n.Params, ", "))
		p.printBody(n.Body)

	case *DoBlock:
		p.writeIndent()
		p.printf("do:\n")
		p.printBody(n.Body)

	case *Match:
		p.writeIndent()
		p.printf("match ")
		p.printExpr(n.Subject)
		p.printf(":\n")
		p.indent++
		for _, c := range n.Cases {
			p.writeIndent()
			p.printf("case ")
			p.printPattern(c.Pattern)
			p.printf(":\n")
			p.printBody(c.Body)
		}
		p.indent--

	case *MacroDef:
		p.writeIndent()
		p.printf("macro %s(%s):\n", n.Name, strings.Join(n.Params, ", "))
		p.printBody(n.Body)

	case *MacroCall:
		p.writeIndent()
		p.printf("@%s(", n.Name)
		p.printArgs(n.Args)
		p.printf(")\n")

	case *AgentCall:
		p.writeIndent()
		p.printf("agent %s [%s]\n", n.Agent, n.Payload)

	default:
		p.writeIndent()
		p.printf("<%T>\n", s)
	}
}

// printBody writes an indented statement block. An empty body gets a pass
// line so the block stays syntactically well-formed.
func (p *Printer) printBody(body []Stmt) {
	p.indent++
	if len(body) == 0 {
		p.writeIndent()
		p.printf("pass\n")
	}
	for _, s := range body {
		p.printStmt(s)
	}
	p.indent--
}

func (p *Printer) printExpr(e Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}

	switch n := e.(type) {
	case *LiteralString:
		p.printf("%q", n.Value)

	case *LiteralInt:
		p.printf("%d", n.Value)

	case *NameExpr:
		p.printf("%s", n.Name)

	case *ListLiteral:
		p.printf("[")
		p.printArgs(n.Elements)
		p.printf("]")

	case *FunctionCall:
		p.printf("%s(", n.Name)
		p.printArgs(n.Args)
		p.printf(")")

	case *BinaryOp:
		p.printf("(")
		p.printExpr(n.Left)
		p.printf(" %s ", n.Op.String())
		p.printExpr(n.Right)
		p.printf(")")

	case *UnaryOp:
		p.printf("%s", n.Op.String())
		p.printExpr(n.Operand)

	case *Await:
		p.printf("await ")
		p.printExpr(n.X)

	default:
		p.printf("<%T>", e)
	}
}

func (p *Printer) printPattern(pat Pattern) {
	switch n := pat.(type) {
	case *WildcardPattern:
		p.printf("_")
	case *NamePattern:
		p.printf("%s", n.Name)
	case *LiteralPattern:
		p.printExpr(n.Value)
	case *ListPattern:
		p.printf("[")
		for i, e := range n.Elements {
			if i > 0 {
				p.printf(", ")
			}
			p.printPattern(e)
		}
		p.printf("]")
	default:
		p.printf("<%T>", pat)
	}
}

func (p *Printer) printArgs(args []Expr) {
	for i, a := range args {
		if i > 0 {
			p.printf(", ")
		}
		p.printExpr(a)
	}
}

// Unparse returns the surface form of node as a string.
func Unparse(node Node) string {
	var sb strings.Builder
	p := NewPrinter(&sb)
	p.Print(node)
	return sb.String()
}
