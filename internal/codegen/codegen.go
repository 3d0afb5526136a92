// Package codegen lowers expanded trees into executable source text for the
// two host targets (Python and JavaScript).
//
// Both generators expand macros internally before emitting, so callers may
// hand them a raw parse tree; expansion is idempotent on an already-expanded
// tree. Generators fail hard: a node with no lowering rule produces an
// UnsupportedConstructError, never placeholder text in the output.
package codegen

import (
	"github.com/metascript-lang/metascript/internal/ast"
)

// matchTemp is the synthetic temporary the match lowering assigns the
// subject to before the branch chain.
const matchTemp = "__ms_match_val"

// verifyExpanded checks that no compile-time constructs survived expansion.
// Reaching a macro node here means the expander broke its contract, so the
// error is an internal invariant failure rather than a user-facing one.
func verifyExpanded(prog *ast.Program) error {
	var err error
	ast.Walk(prog, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch m := n.(type) {
		case *ast.MacroDef:
			err = &UnsupportedConstructError{Construct: "unexpanded macro definition '" + m.Name + "'", Pos: m.Pos()}
			return false
		case *ast.MacroCall:
			err = &UnsupportedConstructError{Construct: "unexpanded macro call '" + m.Name + "'", Pos: m.Pos()}
			return false
		}
		return true
	})
	return err
}

// rangeCall reports whether a for-loop end expression is a range(...) call
// with a supported argument count.
func rangeCall(e ast.Expr) (*ast.FunctionCall, bool) {
	call, ok := e.(*ast.FunctionCall)
	if !ok || call.Name != "range" {
		return nil, false
	}
	if len(call.Args) < 1 || len(call.Args) > 3 {
		return nil, false
	}
	return call, true
}
