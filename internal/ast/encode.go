package ast

import (
	"encoding/json"
	"fmt"
)

// Dict converts a node into a canonical keyed/ordered representation built
// from maps, slices and scalars. It is the structural serialization used by
// tests, debugging output and the CLI ast command. Statement order and match
// case order are preserved; map keys are stable under JSON marshaling, so
// the encoding is deterministic.
func Dict(node Node) any {
	switch n := node.(type) {
	case *Program:
		return map[string]any{"Program": dictStmts(n.Statements)}

	// Statements
	case *Say:
		return map[string]any{"Say": Dict(n.Text)}
	case *Print:
		return map[string]any{"Print": Dict(n.Text)}
	case *Assign:
		return map[string]any{"Assign": map[string]any{"name": n.Name, "value": Dict(n.Value)}}
	case *Return:
		return map[string]any{"Return": Dict(n.Value)}
	case *ExprStmt:
		// Bare expression statements encode as the expression itself.
		return Dict(n.X)
	case *If:
		m := map[string]any{"cond": Dict(n.Cond), "body": dictStmts(n.Body)}
		if n.Orelse != nil {
			m["orelse"] = dictStmts(n.Orelse)
		} else {
			m["orelse"] = nil
		}
		return map[string]any{"If": m}
	case *While:
		return map[string]any{"While": map[string]any{"cond": Dict(n.Cond), "body": dictStmts(n.Body)}}
	case *ForLoop:
		return map[string]any{"ForLoop": map[string]any{"var": n.Var, "end": Dict(n.Stop), "body": dictStmts(n.Body)}}
	case *FunctionDef:
		return map[string]any{"FunctionDef": map[string]any{
			"name":     n.Name,
			"params":   n.Params,
			"is_async": n.IsAsync,
			"body":     dictStmts(n.Body),
		}}
	case *DoBlock:
		return map[string]any{"DoBlock": dictStmts(n.Body)}
	case *Match:
		cases := make([]any, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = map[string]any{"pattern": Dict(c.Pattern), "body": dictStmts(c.Body)}
		}
		return map[string]any{"Match": map[string]any{"subject": Dict(n.Subject), "cases": cases}}
	case *MatchCase:
		return map[string]any{"MatchCase": map[string]any{"pattern": Dict(n.Pattern), "body": dictStmts(n.Body)}}
	case *MacroDef:
		return map[string]any{"MacroDef": map[string]any{"name": n.Name, "params": n.Params, "body": dictStmts(n.Body)}}
	case *MacroCall:
		return map[string]any{"MacroCall": map[string]any{"name": n.Name, "args": dictExprs(n.Args)}}
	case *AgentCall:
		return map[string]any{"AgentCall": map[string]any{"agent": n.Agent, "payload": n.Payload}}

	// Patterns
	case *WildcardPattern:
		return map[string]any{"Pattern": "_"}
	case *NamePattern:
		return map[string]any{"Pattern": map[string]any{"name": n.Name}}
	case *LiteralPattern:
		return map[string]any{"Pattern": map[string]any{"lit": Dict(n.Value)}}
	case *ListPattern:
		elems := make([]any, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = Dict(e)
		}
		return map[string]any{"Pattern": elems}

	// Expressions
	case *FunctionCall:
		return map[string]any{"FunctionCall": map[string]any{"name": n.Name, "args": dictExprs(n.Args)}}
	case *BinaryOp:
		return map[string]any{"BinaryOp": map[string]any{"op": n.Op.String(), "left": Dict(n.Left), "right": Dict(n.Right)}}
	case *UnaryOp:
		return map[string]any{"UnaryOp": map[string]any{"op": n.Op.String(), "operand": Dict(n.Operand)}}
	case *Await:
		return map[string]any{"Await": Dict(n.X)}
	case *ListLiteral:
		return map[string]any{"List": dictExprs(n.Elements)}
	case *LiteralString:
		return map[string]any{"String": n.Value}
	case *LiteralInt:
		return map[string]any{"Int": n.Value}
	case *NameExpr:
		return map[string]any{"Name": n.Name}

	case nil:
		return nil
	default:
		panic(fmt.Sprintf("ast: Dict: unhandled node %T", node))
	}
}

// DumpJSON returns the canonical serialization of node as indented JSON.
func DumpJSON(node Node) (string, error) {
	b, err := json.MarshalIndent(Dict(node), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func dictStmts(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = Dict(s)
	}
	return out
}

func dictExprs(exprs []Expr) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = Dict(e)
	}
	return out
}
