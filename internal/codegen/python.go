package codegen

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/metascript-lang/metascript/internal/ast"
	"github.com/metascript-lang/metascript/internal/macro"
	"github.com/metascript-lang/metascript/internal/payload"
)

// Python lowers a program to Python source text. Macros are expanded first;
// the input tree is not modified.
func Python(prog *ast.Program) (string, error) {
	expanded, err := macro.Expand(prog)
	if err != nil {
		return "", err
	}
	if err := verifyExpanded(expanded); err != nil {
		return "", err
	}

	e := &pyEmitter{}
	for _, s := range expanded.Statements {
		e.stmt(s, 0)
	}
	if e.err != nil {
		return "", e.err
	}
	return e.sb.String(), nil
}

// pyEmitter accumulates Python output. The first unsupported construct
// aborts generation; subsequent writes are discarded.
type pyEmitter struct {
	sb  strings.Builder
	err error
}

func (e *pyEmitter) fail(construct string, n ast.Node) {
	if e.err == nil {
		e.err = &UnsupportedConstructError{Construct: construct, Pos: n.Pos()}
	}
}

// line writes one indented output line.
func (e *pyEmitter) line(indent int, format string, args ...any) {
	if e.err != nil {
		return
	}
	e.sb.WriteString(strings.Repeat("    ", indent))
	fmt.Fprintf(&e.sb, format, args...)
	e.sb.WriteByte('\n')
}

func (e *pyEmitter) stmt(s ast.Stmt, indent int) {
	if e.err != nil {
		return
	}

	switch n := s.(type) {
	case *ast.Say:
		e.line(indent, "print(%s)", e.expr(n.Text))
	case *ast.Print:
		e.line(indent, "print(%s)", e.expr(n.Text))

	case *ast.Assign:
		e.line(indent, "%s = %s", n.Name, e.expr(n.Value))

	case *ast.Return:
		if n.Value == nil {
			e.line(indent, "return")
		} else {
			e.line(indent, "return %s", e.expr(n.Value))
		}

	case *ast.ExprStmt:
		e.line(indent, "%s", e.expr(n.X))

	case *ast.If:
		e.line(indent, "if %s:", e.expr(n.Cond))
		e.body(n.Body, indent+1)
		if n.Orelse != nil {
			e.line(indent, "else:")
			e.body(n.Orelse, indent+1)
		}

	case *ast.While:
		e.line(indent, "while %s:", e.expr(n.Cond))
		e.body(n.Body, indent+1)

	case *ast.ForLoop:
		if _, ok := n.Stop.(*ast.LiteralInt); ok {
			e.line(indent, "for %s in range(%s):", n.Var, e.expr(n.Stop))
		} else {
			// range(...) calls and iterables both render inline
			e.line(indent, "for %s in %s:", n.Var, e.expr(n.Stop))
		}
		e.body(n.Body, indent+1)

	case *ast.FunctionDef:
		prefix := ""
		if n.IsAsync {
			prefix = "async "
		}
		e.line(indent, "%sdef %s(%s):", prefix, n.Name, strings.Join(n.Params, ", "))
		e.body(n.Body, indent+1)

	case *ast.DoBlock:
		// grouping only; the statements flatten into the enclosing block
		for _, b := range n.Body {
			e.stmt(b, indent)
		}

	case *ast.Match:
		e.matchStmt(n, indent)

	case *ast.AgentCall:
		v, err := payload.Decode(n.Payload)
		if err != nil {
			if e.err == nil {
				e.err = err
			}
			return
		}
		e.line(indent, "agent_call(%s, %s)", pyQuote(n.Agent), pyLiteral(v))

	default:
		e.fail(fmt.Sprintf("statement %T", s), s)
	}
}

// body emits an indented block, or pass when empty.
func (e *pyEmitter) body(stmts []ast.Stmt, indent int) {
	if len(stmts) == 0 {
		e.line(indent, "pass")
		return
	}
	for _, s := range stmts {
		e.stmt(s, indent)
	}
}

// matchStmt lowers a match to a single subject assignment followed by an
// if/elif chain in source case order.
func (e *pyEmitter) matchStmt(n *ast.Match, indent int) {
	e.line(indent, "%s = %s", matchTemp, e.expr(n.Subject))
	for i, c := range n.Cases {
		cond, binds := e.patternCheck(c.Pattern)
		prefix := "elif"
		if i == 0 {
			prefix = "if"
		}
		e.line(indent, "%s %s:", prefix, cond)
		for _, b := range binds {
			e.line(indent+1, "%s", b)
		}
		e.body(c.Body, indent+1)
	}
}

// patternCheck returns the branch condition and binding lines for one case.
func (e *pyEmitter) patternCheck(pat ast.Pattern) (string, []string) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return "True", nil

	case *ast.NamePattern:
		return "True", []string{fmt.Sprintf("%s = %s", p.Name, matchTemp)}

	case *ast.LiteralPattern:
		return fmt.Sprintf("%s == %s", matchTemp, e.expr(p.Value)), nil

	case *ast.ListPattern:
		checks := []string{
			fmt.Sprintf("isinstance(%s, list)", matchTemp),
			fmt.Sprintf("len(%s) == %d", matchTemp, len(p.Elements)),
		}
		var binds []string
		for i, sub := range p.Elements {
			switch sp := sub.(type) {
			case *ast.NamePattern:
				binds = append(binds, fmt.Sprintf("%s = %s[%d]", sp.Name, matchTemp, i))
			case *ast.WildcardPattern:
				// position exists, nothing to check or bind
			case *ast.LiteralPattern:
				checks = append(checks, fmt.Sprintf("%s[%d] == %s", matchTemp, i, e.expr(sp.Value)))
			default:
				// one level of destructuring only
				e.fail("nested list pattern", sub)
				return "False", nil
			}
		}
		return strings.Join(checks, " and "), binds

	default:
		e.fail(fmt.Sprintf("pattern %T", pat), pat)
		return "False", nil
	}
}

func (e *pyEmitter) expr(x ast.Expr) string {
	switch n := x.(type) {
	case *ast.LiteralString:
		return pyQuote(n.Value)
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
		return "None"
	}
}

// pyQuote renders a string as a Python literal: single-quoted by default,
// double-quoted when the value contains a single quote but no double quote.
func pyQuote(s string) string {
	quote := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = '"'
	}

	var sb strings.Builder
	sb.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case quote:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}

// pyLiteral renders a decoded JSON value as a Python literal. Map keys are
// emitted in sorted order so generation is deterministic.
func pyLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case string:
		return pyQuote(val)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, el := range val {
			parts[i] = pyLiteral(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = pyQuote(k) + ": " + pyLiteral(val[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", val)
	}
}
