package ast

import "github.com/metascript-lang/metascript/internal/token"

// -----------------------------------------------------------------------------
// Literals
// -----------------------------------------------------------------------------

// LiteralString represents a string literal.
// Examples: "hello", 'world'
type LiteralString struct {
	BaseExpr
	Value string // Unescaped string value
}

// LiteralInt represents an integer literal.
type LiteralInt struct {
	BaseExpr
	Value int
}

// ListLiteral represents a list literal.
// Example: [1, 2, 3]
type ListLiteral struct {
	BaseExpr
	Elements []Expr
}

// -----------------------------------------------------------------------------
// References and calls
// -----------------------------------------------------------------------------

// NameExpr represents an identifier reference.
type NameExpr struct {
	BaseExpr
	Name string
}

// FunctionCall represents a function call expression.
// Example: max(5, m)
type FunctionCall struct {
	BaseExpr
	Name string
	Args []Expr
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// BinaryOp represents a binary arithmetic operation.
// Example: a + b * 2
type BinaryOp struct {
	BaseExpr
	Op    token.Token // ADD, SUB, MUL or DIV
	Left  Expr
	Right Expr
}

// UnaryOp represents a unary operation.
// Example: -x
type UnaryOp struct {
	BaseExpr
	Op      token.Token // SUB
	Operand Expr
}

// Await represents an await expression.
// Example: await get(url)
type Await struct {
	BaseExpr
	X Expr
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Expr = (*LiteralString)(nil)
	_ Expr = (*LiteralInt)(nil)
	_ Expr = (*ListLiteral)(nil)
	_ Expr = (*NameExpr)(nil)
	_ Expr = (*FunctionCall)(nil)
	_ Expr = (*BinaryOp)(nil)
	_ Expr = (*UnaryOp)(nil)
	_ Expr = (*Await)(nil)
)
