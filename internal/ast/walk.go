package ast

// Walk traverses an AST in depth-first order. For each node it calls
// fn(node); if fn returns false the children of that node are not visited.
//
// Example: count all name references
//
//	count := 0
//	ast.Walk(prog, func(n ast.Node) bool {
//		if _, ok := n.(*ast.NameExpr); ok {
//			count++
//		}
//		return true
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkStmts(n.Statements, fn)

	// Statements
	case *Say:
		Walk(n.Text, fn)
	case *Print:
		Walk(n.Text, fn)
	case *Assign:
		Walk(n.Value, fn)
	case *Return:
		Walk(n.Value, fn)
	case *ExprStmt:
		Walk(n.X, fn)
	case *If:
		Walk(n.Cond, fn)
		walkStmts(n.Body, fn)
		walkStmts(n.Orelse, fn)
	case *While:
		Walk(n.Cond, fn)
		walkStmts(n.Body, fn)
	case *ForLoop:
		Walk(n.Stop, fn)
		walkStmts(n.Body, fn)
	case *FunctionDef:
		walkStmts(n.Body, fn)
	case *DoBlock:
		walkStmts(n.Body, fn)
	case *Match:
		Walk(n.Subject, fn)
		for _, c := range n.Cases {
			Walk(c, fn)
		}
	case *MatchCase:
		Walk(n.Pattern, fn)
		walkStmts(n.Body, fn)
	case *MacroDef:
		walkStmts(n.Body, fn)
	case *MacroCall:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *AgentCall:
		// no children; payload is opaque text

	// Expressions
	case *LiteralString, *LiteralInt, *NameExpr:
		// no children
	case *ListLiteral:
		for _, e := range n.Elements {
			Walk(e, fn)
		}
	case *FunctionCall:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *BinaryOp:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *UnaryOp:
		Walk(n.Operand, fn)
	case *Await:
		Walk(n.X, fn)

	// Patterns
	case *WildcardPattern, *NamePattern:
		// no children
	case *LiteralPattern:
		Walk(n.Value, fn)
	case *ListPattern:
		for _, e := range n.Elements {
			Walk(e, fn)
		}
	}
}

func walkStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		Walk(s, fn)
	}
}
