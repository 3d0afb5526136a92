package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metascript-lang/metascript/internal/ast"
	"github.com/metascript-lang/metascript/internal/macro"
	"github.com/metascript-lang/metascript/internal/payload"
)

// JS lowers a program to JavaScript source text. Macros are expanded first;
// the input tree is not modified.
func JS(prog *ast.Program) (string, error) {
	expanded, err := macro.Expand(prog)
	if err != nil {
		return "", err
	}
	if err := verifyExpanded(expanded); err != nil {
		return "", err
	}

	e := &jsEmitter{}
	parts := make([]string, 0, len(expanded.Statements))
	for _, s := range expanded.Statements {
		parts = append(parts, e.stmt(s))
	}
	if e.err != nil {
		return "", e.err
	}
	return strings.Join(parts, "\n") + "\n", nil
}

// jsEmitter builds JavaScript statement text. Compound statements carry
// their bodies inline between braces, one inner statement per line.
type jsEmitter struct {
	err error
}

func (e *jsEmitter) fail(construct string, n ast.Node) {
	if e.err == nil {
		e.err = &UnsupportedConstructError{Construct: construct, Pos: n.Pos()}
	}
}

func (e *jsEmitter) block(stmts []ast.Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = e.stmt(s)
	}
	return strings.Join(parts, "\n")
}

func (e *jsEmitter) stmt(s ast.Stmt) string {
	switch n := s.(type) {
	case *ast.Say:
		return fmt.Sprintf("console.log(%s);", e.expr(n.Text))
	case *ast.Print:
		return fmt.Sprintf("console.log(%s);", e.expr(n.Text))

	case *ast.Assign:
		return fmt.Sprintf("let %s = %s;", n.Name, e.expr(n.Value))

	case *ast.Return:
		if n.Value == nil {
			return "return;"
		}
		return fmt.Sprintf("return %s;", e.expr(n.Value))

	case *ast.ExprStmt:
		return e.expr(n.X) + ";"

	case *ast.If:
		out := fmt.Sprintf("if (%s) { %s }", e.expr(n.Cond), e.block(n.Body))
		if n.Orelse != nil {
			out += fmt.Sprintf(" else { %s }", e.block(n.Orelse))
		}
		return out

	case *ast.While:
		return fmt.Sprintf("while (%s) { %s }", e.expr(n.Cond), e.block(n.Body))

	case *ast.ForLoop:
		return e.forLoop(n)

	case *ast.FunctionDef:
		prefix := ""
		if n.IsAsync {
			prefix = "async "
		}
		return fmt.Sprintf("%sfunction %s(%s) { %s }",
			prefix, n.Name, strings.Join(n.Params, ", "), e.block(n.Body))

	case *ast.DoBlock:
		// grouping only; the statements flatten into the enclosing block
		return e.block(n.Body)

	case *ast.Match:
		return e.matchStmt(n)

	case *ast.AgentCall:
		canonical, err := payload.Canonical(n.Payload)
		if err != nil {
			if e.err == nil {
				e.err = err
			}
			return ""
		}
		return fmt.Sprintf("agentCall(%s, %s);", jsQuote(n.Agent), canonical)

	default:
		e.fail(fmt.Sprintf("statement %T", s), s)
		return ""
	}
}

// forLoop lowers the three loop shapes: a range(...) call or integer bound
// becomes a counting loop, anything else a for-of over the iterable.
func (e *jsEmitter) forLoop(n *ast.ForLoop) string {
	body := e.block(n.Body)

	if call, ok := rangeCall(n.Stop); ok {
		switch len(call.Args) {
		case 1:
			stop := e.expr(call.Args[0])
			return fmt.Sprintf("for (let %s=0; %s<%s; %s++) { %s }", n.Var, n.Var, stop, n.Var, body)
		case 2:
			start := e.expr(call.Args[0])
			stop := e.expr(call.Args[1])
			return fmt.Sprintf("for (let %s=%s; %s<%s; %s++) { %s }", n.Var, start, n.Var, stop, n.Var, body)
		default:
			start := e.expr(call.Args[0])
			stop := e.expr(call.Args[1])
			step := e.expr(call.Args[2])
			return fmt.Sprintf("for (let %s=%s; %s<%s; %s+= %s) { %s }", n.Var, start, n.Var, stop, n.Var, step, body)
		}
	}
	if _, ok := n.Stop.(*ast.LiteralInt); ok {
		stop := e.expr(n.Stop)
		return fmt.Sprintf("for (let %s=0; %s<%s; %s++) { %s }", n.Var, n.Var, stop, n.Var, body)
	}
	return fmt.Sprintf("for (const %s of %s) { %s }", n.Var, e.expr(n.Stop), body)
}

// matchStmt lowers a match to a const subject binding followed by an
// if/else-if chain in source case order.
func (e *jsEmitter) matchStmt(n *ast.Match) string {
	out := []string{fmt.Sprintf("const %s = %s;", matchTemp, e.expr(n.Subject))}
	for i, c := range n.Cases {
		cond, binds := e.patternCheck(c.Pattern)
		prefix := "else if"
		if i == 0 {
			prefix = "if"
		}
		out = append(out, fmt.Sprintf("%s (%s) {", prefix, cond))
		out = append(out, binds...)
		for _, s := range c.Body {
			out = append(out, e.stmt(s))
		}
		out = append(out, "}")
	}
	return strings.Join(out, "\n")
}

// patternCheck returns the branch condition and binding statements for one
// case.
func (e *jsEmitter) patternCheck(pat ast.Pattern) (string, []string) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return "true", nil

	case *ast.NamePattern:
		return "true", []string{fmt.Sprintf("let %s = %s;", p.Name, matchTemp)}

	case *ast.LiteralPattern:
		return fmt.Sprintf("%s === %s", matchTemp, e.expr(p.Value)), nil

	case *ast.ListPattern:
		checks := []string{
			fmt.Sprintf("Array.isArray(%s)", matchTemp),
			fmt.Sprintf("%s.length === %d", matchTemp, len(p.Elements)),
		}
		var binds []string
		for i, sub := range p.Elements {
			switch sp := sub.(type) {
			case *ast.NamePattern:
				binds = append(binds, fmt.Sprintf("let %s = %s[%d];", sp.Name, matchTemp, i))
			case *ast.WildcardPattern:
				// position exists, nothing to check or bind
			case *ast.LiteralPattern:
				checks = append(checks, fmt.Sprintf("%s[%d] === %s", matchTemp, i, e.expr(sp.Value)))
			default:
				// one level of destructuring only
				e.fail("nested list pattern", sub)
				return "false", nil
			}
		}
		return strings.Join(checks, " && "), binds

	default:
		e.fail(fmt.Sprintf("pattern %T", pat), pat)
		return "false", nil
	}
}

func (e *jsEmitter) expr(x ast.Expr) string {
	switch n := x.(type) {
	case *ast.LiteralString:
		return jsQuote(n.Value)
	case *ast.LiteralInt:
		return strconv.Itoa(n.Value)
	case *ast.NameExpr:
		return n.Name
	case *ast.ListLiteral:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = e.expr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.FunctionCall:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = e.expr(a)
		}
		return n.Name + "(" + strings.Join(parts, ", ") + ")"
	case *ast.BinaryOp:
		return fmt.Sprintf("(%s %s %s)", e.expr(n.Left), n.Op.String(), e.expr(n.Right))
	case *ast.UnaryOp:
		return n.Op.String() + e.expr(n.Operand)
	case *ast.Await:
		return "await " + e.expr(n.X)
	default:
		e.fail(fmt.Sprintf("expression %T", x), x)
		return "undefined"
	}
}

// jsQuote renders a string as a double-quoted JavaScript literal.
func jsQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
