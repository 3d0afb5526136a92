package metascript

import (
	"github.com/metascript-lang/metascript/internal/ast"
	"github.com/metascript-lang/metascript/internal/codegen"
	"github.com/metascript-lang/metascript/internal/macro"
)

// Program represents a parsed metascript program. It is immutable and safe
// for concurrent use; every transformation returns a new Program.
type Program struct {
	tree   *ast.Program
	source string // Original source for debugging
}

// Expand returns a copy of the program with all macros expanded. The result
// contains no macro definitions or macro calls. Expanding an already
// expanded program is a no-op that returns a structurally identical tree.
func (p *Program) Expand() (*Program, error) {
	expanded, err := macro.Expand(p.tree)
	if err != nil {
		return nil, convertExpandErr(err)
	}
	return &Program{tree: expanded, source: p.source}, nil
}

// Python lowers the program to Python source text. Macros are expanded
// internally, so Expand need not be called first.
func (p *Program) Python() (string, error) {
	out, err := codegen.Python(p.tree)
	if err != nil {
		return "", convertGenErr(err)
	}
	return out, nil
}

// JS lowers the program to JavaScript source text. Macros are expanded
// internally, so Expand need not be called first.
func (p *Program) JS() (string, error) {
	out, err := codegen.JS(p.tree)
	if err != nil {
		return "", convertGenErr(err)
	}
	return out, nil
}

// Surface renders the program back into metascript surface syntax. Run on
// an expanded program, the output contains no macro constructs and parses
// to a structurally equal tree.
func (p *Program) Surface() string {
	return ast.Unparse(p.tree)
}

// Dump returns the canonical keyed JSON serialization of the tree, used for
// introspection and golden-file testing.
func (p *Program) Dump() (string, error) {
	return ast.DumpJSON(p.tree)
}

// Source returns the original source code the program was parsed from.
func (p *Program) Source() string {
	return p.source
}
