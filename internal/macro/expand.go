// Package macro implements compile-time macro expansion.
//
// Expansion is hygienic and lexically scoped: a macro defined inside a block
// is visible only within that block, names bound inside a macro body are
// alpha-renamed to fresh names at each call site so they cannot collide with
// surrounding code, and parameters are substituted by the argument
// expressions. Macro definitions never emit runtime statements; a fully
// expanded tree contains no MacroDef or MacroCall nodes.
package macro

import (
	"fmt"

	"github.com/metascript-lang/metascript/internal/ast"
)

// maxDepth bounds recursive expansion so self-referential macros fail with
// an ExpansionDepthError instead of looping forever.
const maxDepth = 128

// Expand returns a copy of prog with all macros expanded. The input tree is
// not modified. Fresh-name numbering restarts at one for every call, so
// expanding the same tree twice yields byte-identical results.
func Expand(prog *ast.Program) (*ast.Program, error) {
	e := &expander{}
	stmts, err := e.expandBlock(prog.Statements, 0)
	if err != nil {
		return nil, err
	}
	return &ast.Program{
		Filename:   prog.Filename,
		Statements: stmts,
		StartPos:   prog.StartPos,
		EndPos:     prog.EndPos,
	}, nil
}

// expander carries the state of one Expand invocation: the lexical macro
// environment stack and the fresh-name counter.
type expander struct {
	envs    []map[string]*ast.MacroDef
	counter int
}

// freshName returns the next hygienic name derived from base.
func (e *expander) freshName(base string) string {
	e.counter++
	return fmt.Sprintf("__ms_macro_%s_%d", base, e.counter)
}

// lookup resolves a macro name against the environment stack, innermost
// scope first.
func (e *expander) lookup(name string) *ast.MacroDef {
	for i := len(e.envs) - 1; i >= 0; i-- {
		if def, ok := e.envs[i][name]; ok {
			return def
		}
	}
	return nil
}

func (e *expander) pushEnv() {
	e.envs = append(e.envs, make(map[string]*ast.MacroDef))
}

func (e *expander) popEnv() {
	e.envs = e.envs[:len(e.envs)-1]
}

// expandBlock expands a statement list in a new lexical scope. Macro
// definitions register in the scope and vanish; macro calls splice their
// expansions into the output in place.
func (e *expander) expandBlock(stmts []ast.Stmt, depth int) ([]ast.Stmt, error) {
	e.pushEnv()
	defer e.popEnv()

	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if def, ok := s.(*ast.MacroDef); ok {
			e.envs[len(e.envs)-1][def.Name] = def
			continue
		}
		res, err := e.expandStmt(s, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, res...)
	}
	return out, nil
}

// expandStmt expands one statement into zero or more output statements.
func (e *expander) expandStmt(s ast.Stmt, depth int) ([]ast.Stmt, error) {
	switch n := s.(type) {
	case *ast.MacroCall:
		return e.expandCall(n, depth)

	case *ast.MacroDef:
		// Reached only for a definition in a spliced macro body; handled by
		// the caller's scope, never emitted.
		return nil, nil

	case *ast.If:
		body, err := e.expandBlock(n.Body, depth)
		if err != nil {
			return nil, err
		}
		var orelse []ast.Stmt
		if n.Orelse != nil {
			orelse, err = e.expandBlock(n.Orelse, depth)
			if err != nil {
				return nil, err
			}
		}
		return []ast.Stmt{&ast.If{
			BaseStmt: n.BaseStmt,
			Cond:     ast.CloneExpr(n.Cond),
			Body:     body,
			Orelse:   orelse,
		}}, nil

	case *ast.While:
		body, err := e.expandBlock(n.Body, depth)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.While{BaseStmt: n.BaseStmt, Cond: ast.CloneExpr(n.Cond), Body: body}}, nil

	case *ast.ForLoop:
		body, err := e.expandBlock(n.Body, depth)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.ForLoop{
			BaseStmt: n.BaseStmt,
			Var:      n.Var,
			Stop:     ast.CloneExpr(n.Stop),
			Body:     body,
		}}, nil

	case *ast.FunctionDef:
		body, err := e.expandBlock(n.Body, depth)
		if err != nil {
			return nil, err
		}
		def := ast.CloneStmt(n).(*ast.FunctionDef)
		def.Body = body
		return []ast.Stmt{def}, nil

	case *ast.DoBlock:
		body, err := e.expandBlock(n.Body, depth)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.DoBlock{BaseStmt: n.BaseStmt, Body: body}}, nil

	case *ast.Match:
		cases := make([]*ast.MatchCase, len(n.Cases))
		for i, c := range n.Cases {
			body, err := e.expandBlock(c.Body, depth)
			if err != nil {
				return nil, err
			}
			cases[i] = &ast.MatchCase{
				BaseStmt: c.BaseStmt,
				Pattern:  ast.ClonePattern(c.Pattern),
				Body:     body,
			}
		}
		return []ast.Stmt{&ast.Match{
			BaseStmt: n.BaseStmt,
			Subject:  ast.CloneExpr(n.Subject),
			Cases:    cases,
		}}, nil

	default:
		return []ast.Stmt{ast.CloneStmt(s)}, nil
	}
}

// expandCall expands one macro invocation: alpha-rename the bindings local
// to the macro body, substitute parameters by the argument expressions, then
// recursively expand the result and splice it into the caller's block.
func (e *expander) expandCall(call *ast.MacroCall, depth int) ([]ast.Stmt, error) {
	if depth >= maxDepth {
		return nil, &ExpansionDepthError{Name: call.Name, Depth: maxDepth}
	}
	def := e.lookup(call.Name)
	if def == nil {
		return nil, &UndefinedMacroError{Name: call.Name, Pos: call.Pos()}
	}

	params := make(map[string]bool, len(def.Params))
	for _, p := range def.Params {
		params[p] = true
	}

	// Collect names bound inside the body, in first-occurrence order so
	// fresh-name numbering is deterministic. Parameters are not renamed;
	// they are substituted below.
	var bound []string
	seen := make(map[string]bool)
	for _, b := range def.Body {
		collectBindings(b, &bound, seen)
	}
	renames := make(map[string]string)
	for _, name := range bound {
		if params[name] {
			continue
		}
		renames[name] = e.freshName(name)
	}

	// Parameter -> argument expression; a missing argument substitutes the
	// parameter name itself.
	mapping := make(map[string]ast.Expr, len(def.Params))
	for i, pname := range def.Params {
		if i < len(call.Args) {
			mapping[pname] = call.Args[i]
		} else {
			mapping[pname] = &ast.NameExpr{Name: pname}
		}
	}

	// The macro body opens its own scope for any nested macro definitions.
	e.pushEnv()
	defer e.popEnv()

	var out []ast.Stmt
	for _, b := range def.Body {
		s := ast.CloneStmt(b)
		renameStmt(s, renames, params)
		s = substituteStmt(s, mapping)
		if nested, ok := s.(*ast.MacroDef); ok {
			e.envs[len(e.envs)-1][nested.Name] = nested
			continue
		}
		expanded, err := e.expandStmt(s, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Binding collection
// -----------------------------------------------------------------------------

// collectBindings appends the names declared inside a statement (assignment
// targets, function names and parameters, loop variables, pattern names) to
// bound in first-occurrence order.
func collectBindings(s ast.Stmt, bound *[]string, seen map[string]bool) {
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			*bound = append(*bound, name)
		}
	}

	switch n := s.(type) {
	case *ast.Assign:
		add(n.Name)
	case *ast.FunctionDef:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		collectBindingsList(n.Body, bound, seen)
	case *ast.ForLoop:
		add(n.Var)
		collectBindingsList(n.Body, bound, seen)
	case *ast.If:
		collectBindingsList(n.Body, bound, seen)
		collectBindingsList(n.Orelse, bound, seen)
	case *ast.While:
		collectBindingsList(n.Body, bound, seen)
	case *ast.DoBlock:
		collectBindingsList(n.Body, bound, seen)
	case *ast.Match:
		for _, c := range n.Cases {
			collectPatternBindings(c.Pattern, bound, seen)
			collectBindingsList(c.Body, bound, seen)
		}
	case *ast.MacroDef:
		collectBindingsList(n.Body, bound, seen)
	}
}

func collectBindingsList(stmts []ast.Stmt, bound *[]string, seen map[string]bool) {
	for _, s := range stmts {
		collectBindings(s, bound, seen)
	}
}

func collectPatternBindings(p ast.Pattern, bound *[]string, seen map[string]bool) {
	switch n := p.(type) {
	case *ast.NamePattern:
		if !seen[n.Name] {
			seen[n.Name] = true
			*bound = append(*bound, n.Name)
		}
	case *ast.ListPattern:
		for _, e := range n.Elements {
			collectPatternBindings(e, bound, seen)
		}
	}
}

// -----------------------------------------------------------------------------
// Alpha renaming
// -----------------------------------------------------------------------------

// renameStmt rewrites bound-identifier occurrences in place using renames.
// The statement must be a private clone. Names in params are left alone.
func renameStmt(s ast.Stmt, renames map[string]string, params map[string]bool) {
	rename := func(name string) string {
		if r, ok := renames[name]; ok && !params[name] {
			return r
		}
		return name
	}

	switch n := s.(type) {
	case *ast.Say:
		renameExpr(n.Text, renames, params)
	case *ast.Print:
		renameExpr(n.Text, renames, params)
	case *ast.Assign:
		n.Name = rename(n.Name)
		renameExpr(n.Value, renames, params)
	case *ast.Return:
		renameExpr(n.Value, renames, params)
	case *ast.ExprStmt:
		renameExpr(n.X, renames, params)
	case *ast.If:
		renameExpr(n.Cond, renames, params)
		renameStmts(n.Body, renames, params)
		renameStmts(n.Orelse, renames, params)
	case *ast.While:
		renameExpr(n.Cond, renames, params)
		renameStmts(n.Body, renames, params)
	case *ast.ForLoop:
		n.Var = rename(n.Var)
		renameExpr(n.Stop, renames, params)
		renameStmts(n.Body, renames, params)
	case *ast.FunctionDef:
		n.Name = rename(n.Name)
		for i, p := range n.Params {
			n.Params[i] = rename(p)
		}
		renameStmts(n.Body, renames, params)
	case *ast.DoBlock:
		renameStmts(n.Body, renames, params)
	case *ast.Match:
		renameExpr(n.Subject, renames, params)
		for _, c := range n.Cases {
			renamePattern(c.Pattern, renames, params)
			renameStmts(c.Body, renames, params)
		}
	case *ast.MacroDef:
		renameStmts(n.Body, renames, params)
	case *ast.MacroCall:
		for _, a := range n.Args {
			renameExpr(a, renames, params)
		}
	case *ast.AgentCall:
		// payload is opaque text
	}
}

func renameStmts(stmts []ast.Stmt, renames map[string]string, params map[string]bool) {
	for _, s := range stmts {
		renameStmt(s, renames, params)
	}
}

func renameExpr(e ast.Expr, renames map[string]string, params map[string]bool) {
	switch n := e.(type) {
	case *ast.NameExpr:
		if r, ok := renames[n.Name]; ok && !params[n.Name] {
			n.Name = r
		}
	case *ast.ListLiteral:
		for _, el := range n.Elements {
			renameExpr(el, renames, params)
		}
	case *ast.FunctionCall:
		// The callee name is a reference to surrounding code, not a macro
		// binding; only the arguments are rewritten.
		for _, a := range n.Args {
			renameExpr(a, renames, params)
		}
	case *ast.BinaryOp:
		renameExpr(n.Left, renames, params)
		renameExpr(n.Right, renames, params)
	case *ast.UnaryOp:
		renameExpr(n.Operand, renames, params)
	case *ast.Await:
		renameExpr(n.X, renames, params)
	}
}

func renamePattern(p ast.Pattern, renames map[string]string, params map[string]bool) {
	switch n := p.(type) {
	case *ast.NamePattern:
		if r, ok := renames[n.Name]; ok && !params[n.Name] {
			n.Name = r
		}
	case *ast.ListPattern:
		for _, e := range n.Elements {
			renamePattern(e, renames, params)
		}
	case *ast.LiteralPattern:
		renameExpr(n.Value, renames, params)
	}
}

// -----------------------------------------------------------------------------
// Parameter substitution
// -----------------------------------------------------------------------------

// substituteStmt replaces parameter references in a statement with clones of
// the mapped argument expressions. The statement must be a private clone;
// expression fields are rebuilt because a name may substitute to any shape.
func substituteStmt(s ast.Stmt, mapping map[string]ast.Expr) ast.Stmt {
	switch n := s.(type) {
	case *ast.Say:
		n.Text = substituteExpr(n.Text, mapping)
	case *ast.Print:
		n.Text = substituteExpr(n.Text, mapping)
	case *ast.Assign:
		n.Value = substituteExpr(n.Value, mapping)
	case *ast.Return:
		n.Value = substituteExpr(n.Value, mapping)
	case *ast.ExprStmt:
		n.X = substituteExpr(n.X, mapping)
	case *ast.If:
		n.Cond = substituteExpr(n.Cond, mapping)
		substituteStmts(n.Body, mapping)
		substituteStmts(n.Orelse, mapping)
	case *ast.While:
		n.Cond = substituteExpr(n.Cond, mapping)
		substituteStmts(n.Body, mapping)
	case *ast.ForLoop:
		n.Stop = substituteExpr(n.Stop, mapping)
		substituteStmts(n.Body, mapping)
	case *ast.FunctionDef:
		substituteStmts(n.Body, mapping)
	case *ast.DoBlock:
		substituteStmts(n.Body, mapping)
	case *ast.Match:
		n.Subject = substituteExpr(n.Subject, mapping)
		for _, c := range n.Cases {
			substituteStmts(c.Body, mapping)
		}
	case *ast.MacroDef:
		substituteStmts(n.Body, mapping)
	case *ast.MacroCall:
		for i, a := range n.Args {
			n.Args[i] = substituteExpr(a, mapping)
		}
	case *ast.AgentCall:
		// payload is opaque text
	}
	return s
}

func substituteStmts(stmts []ast.Stmt, mapping map[string]ast.Expr) {
	for i, s := range stmts {
		stmts[i] = substituteStmt(s, mapping)
	}
}

func substituteExpr(e ast.Expr, mapping map[string]ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.NameExpr:
		if repl, ok := mapping[n.Name]; ok {
			return ast.CloneExpr(repl)
		}
		return n
	case *ast.ListLiteral:
		for i, el := range n.Elements {
			n.Elements[i] = substituteExpr(el, mapping)
		}
		return n
	case *ast.FunctionCall:
		for i, a := range n.Args {
			n.Args[i] = substituteExpr(a, mapping)
		}
		return n
	case *ast.BinaryOp:
		n.Left = substituteExpr(n.Left, mapping)
		n.Right = substituteExpr(n.Right, mapping)
		return n
	case *ast.UnaryOp:
		n.Operand = substituteExpr(n.Operand, mapping)
		return n
	case *ast.Await:
		n.X = substituteExpr(n.X, mapping)
		return n
	default:
		return e
	}
}
