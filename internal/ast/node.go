// Package ast defines the abstract syntax tree for metascript programs.
//
// The tree is a closed discriminated union: every node kind is declared in
// this package and implements exactly one of the marker interfaces below.
// Nodes are immutable once built; transformations (macro expansion) produce
// new trees via the explicit per-variant clone in clone.go rather than
// mutating in place.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Stmt (interface) - statements
//	│   ├── Say, Print, Assign, Return, ExprStmt - simple
//	│   ├── If, While, ForLoop, FunctionDef, DoBlock, Match - compound
//	│   ├── MacroDef, MacroCall - compile-time, removed by expansion
//	│   └── AgentCall - opaque boundary to the agent layer
//	├── Expr (interface) - expressions that produce values
//	│   ├── LiteralString, LiteralInt, ListLiteral - literals
//	│   ├── NameExpr, FunctionCall - references and calls
//	│   └── BinaryOp, UnaryOp, Await - operations
//	└── Pattern (interface) - match patterns
//	    └── WildcardPattern, NamePattern, LiteralPattern, ListPattern
package ast

import "github.com/metascript-lang/metascript/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character belonging to this node.
	Pos() token.Position

	// End returns the position of the first character immediately after this node.
	End() token.Position
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	stmtNode() // marker method to prevent external implementations
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// Pattern is the interface for all match-pattern nodes.
type Pattern interface {
	Node
	patternNode() // marker method to prevent external implementations
}

// BaseStmt provides common position fields for statement nodes.
type BaseStmt struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b *BaseStmt) Pos() token.Position { return b.StartPos }
func (b *BaseStmt) End() token.Position { return b.EndPos }
func (b *BaseStmt) stmtNode()           {}

// BaseExpr provides common position fields for expression nodes.
type BaseExpr struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) End() token.Position { return b.EndPos }
func (b *BaseExpr) exprNode()           {}

// BasePattern provides common position fields for pattern nodes.
type BasePattern struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b *BasePattern) Pos() token.Position { return b.StartPos }
func (b *BasePattern) End() token.Position { return b.EndPos }
func (b *BasePattern) patternNode()        {}

// MakeBaseStmt creates a BaseStmt with the given positions.
func MakeBaseStmt(start, end token.Position) BaseStmt {
	return BaseStmt{StartPos: start, EndPos: end}
}

// MakeBaseExpr creates a BaseExpr with the given positions.
func MakeBaseExpr(start, end token.Position) BaseExpr {
	return BaseExpr{StartPos: start, EndPos: end}
}

// MakeBasePattern creates a BasePattern with the given positions.
func MakeBasePattern(start, end token.Position) BasePattern {
	return BasePattern{StartPos: start, EndPos: end}
}
