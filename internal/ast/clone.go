package ast

import "fmt"

// This file implements the explicit deep clone for every node variant.
// There is deliberately no reflective or generic fallback: an unhandled
// variant panics with its type name so it cannot silently alias
// substructure. Clones share no nodes with their originals.

// CloneProgram returns a deep copy of prog.
func CloneProgram(prog *Program) *Program {
	return &Program{
		Filename:   prog.Filename,
		Statements: CloneStmts(prog.Statements),
		StartPos:   prog.StartPos,
		EndPos:     prog.EndPos,
	}
}

// CloneStmts returns a deep copy of a statement list.
func CloneStmts(stmts []Stmt) []Stmt {
	if stmts == nil {
		return nil
	}
	out := make([]Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = CloneStmt(s)
	}
	return out
}

// CloneStmt returns a deep copy of a statement.
func CloneStmt(s Stmt) Stmt {
	switch n := s.(type) {
	case *Say:
		return &Say{BaseStmt: n.BaseStmt, Text: CloneExpr(n.Text)}
	case *Print:
		return &Print{BaseStmt: n.BaseStmt, Text: CloneExpr(n.Text)}
	case *Assign:
		return &Assign{BaseStmt: n.BaseStmt, Name: n.Name, Value: CloneExpr(n.Value)}
	case *Return:
		return &Return{BaseStmt: n.BaseStmt, Value: CloneExpr(n.Value)}
	case *ExprStmt:
		return &ExprStmt{BaseStmt: n.BaseStmt, X: CloneExpr(n.X)}
	case *If:
		return &If{
			BaseStmt: n.BaseStmt,
			Cond:     CloneExpr(n.Cond),
			Body:     CloneStmts(n.Body),
			Orelse:   CloneStmts(n.Orelse),
		}
	case *While:
		return &While{BaseStmt: n.BaseStmt, Cond: CloneExpr(n.Cond), Body: CloneStmts(n.Body)}
	case *ForLoop:
		return &ForLoop{BaseStmt: n.BaseStmt, Var: n.Var, Stop: CloneExpr(n.Stop), Body: CloneStmts(n.Body)}
	case *FunctionDef:
		return &FunctionDef{
			BaseStmt: n.BaseStmt,
			Name:     n.Name,
			Params:   cloneStrings(n.Params),
			Body:     CloneStmts(n.Body),
			IsAsync:  n.IsAsync,
		}
	case *DoBlock:
		return &DoBlock{BaseStmt: n.BaseStmt, Body: CloneStmts(n.Body)}
	case *Match:
		cases := make([]*MatchCase, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = CloneMatchCase(c)
		}
		return &Match{BaseStmt: n.BaseStmt, Subject: CloneExpr(n.Subject), Cases: cases}
	case *MacroDef:
		return &MacroDef{
			BaseStmt: n.BaseStmt,
			Name:     n.Name,
			Params:   cloneStrings(n.Params),
			Body:     CloneStmts(n.Body),
		}
	case *MacroCall:
		return &MacroCall{BaseStmt: n.BaseStmt, Name: n.Name, Args: cloneExprs(n.Args)}
	case *AgentCall:
		return &AgentCall{BaseStmt: n.BaseStmt, Agent: n.Agent, Payload: n.Payload}
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("ast: CloneStmt: unhandled statement %T", s))
	}
}

// CloneMatchCase returns a deep copy of a match case.
func CloneMatchCase(c *MatchCase) *MatchCase {
	return &MatchCase{
		BaseStmt: c.BaseStmt,
		Pattern:  ClonePattern(c.Pattern),
		Body:     CloneStmts(c.Body),
	}
}

// CloneExpr returns a deep copy of an expression.
func CloneExpr(e Expr) Expr {
	switch n := e.(type) {
	case *LiteralString:
		return &LiteralString{BaseExpr: n.BaseExpr, Value: n.Value}
	case *LiteralInt:
		return &LiteralInt{BaseExpr: n.BaseExpr, Value: n.Value}
	case *ListLiteral:
		return &ListLiteral{BaseExpr: n.BaseExpr, Elements: cloneExprs(n.Elements)}
	case *NameExpr:
		return &NameExpr{BaseExpr: n.BaseExpr, Name: n.Name}
	case *FunctionCall:
		return &FunctionCall{BaseExpr: n.BaseExpr, Name: n.Name, Args: cloneExprs(n.Args)}
	case *BinaryOp:
		return &BinaryOp{BaseExpr: n.BaseExpr, Op: n.Op, Left: CloneExpr(n.Left), Right: CloneExpr(n.Right)}
	case *UnaryOp:
		return &UnaryOp{BaseExpr: n.BaseExpr, Op: n.Op, Operand: CloneExpr(n.Operand)}
	case *Await:
		return &Await{BaseExpr: n.BaseExpr, X: CloneExpr(n.X)}
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("ast: CloneExpr: unhandled expression %T", e))
	}
}

// ClonePattern returns a deep copy of a pattern.
func ClonePattern(p Pattern) Pattern {
	switch n := p.(type) {
	case *WildcardPattern:
		return &WildcardPattern{BasePattern: n.BasePattern}
	case *NamePattern:
		return &NamePattern{BasePattern: n.BasePattern, Name: n.Name}
	case *LiteralPattern:
		return &LiteralPattern{BasePattern: n.BasePattern, Value: CloneExpr(n.Value)}
	case *ListPattern:
		elems := make([]Pattern, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = ClonePattern(e)
		}
		return &ListPattern{BasePattern: n.BasePattern, Elements: elems}
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("ast: ClonePattern: unhandled pattern %T", p))
	}
}

func cloneExprs(exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = CloneExpr(e)
	}
	return out
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}
