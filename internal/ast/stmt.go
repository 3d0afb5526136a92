package ast

// -----------------------------------------------------------------------------
// Simple statements
// -----------------------------------------------------------------------------

// Say represents a say statement.
// Example: say "Hello"
type Say struct {
	BaseStmt
	Text Expr // Expression to print
}

// Print represents a print statement. Identical lowering to Say; kept as a
// distinct node so the unparser can reproduce the source keyword.
type Print struct {
	BaseStmt
	Text Expr
}

// Assign represents a variable assignment, with or without the let keyword.
// Examples: let x = 1, x = f(2)
type Assign struct {
	BaseStmt
	Name  string // Target variable name
	Value Expr   // Value expression
}

// Return represents a return statement.
// Example: return a + b
type Return struct {
	BaseStmt
	Value Expr
}

// ExprStmt represents an expression used in statement position: a bare
// function call line, or a bare name (the recovery form for unrecognized
// statements).
type ExprStmt struct {
	BaseStmt
	X Expr
}

// -----------------------------------------------------------------------------
// Compound statements
// -----------------------------------------------------------------------------

// If represents an if statement with an optional else branch.
// Example: if cond: body else: other
type If struct {
	BaseStmt
	Cond   Expr   // Condition expression
	Body   []Stmt // Then branch
	Orelse []Stmt // Else branch (nil if absent)
}

// While represents a while loop.
type While struct {
	BaseStmt
	Cond Expr
	Body []Stmt
}

// ForLoop represents a for loop. The shape of Stop determines lowering:
//   - FunctionCall("range", 1..3 args): counting loop
//   - LiteralInt: counting loop from 0
//   - anything else: iteration over a collection
//
// Inclusive a..b ranges are normalized by the parser into
// FunctionCall("range", [a, b+1]) and never reach this node directly.
type ForLoop struct {
	BaseStmt
	Var  string // Loop variable name
	Stop Expr   // Bound or iterable expression
	Body []Stmt
}

// FunctionDef represents a function definition.
// Example: async def fetch(url): return await get(url)
type FunctionDef struct {
	BaseStmt
	Name    string
	Params  []string
	Body    []Stmt
	IsAsync bool
}

// DoBlock represents a do: grouping block.
type DoBlock struct {
	BaseStmt
	Body []Stmt
}

// Match represents a match statement. Case order is significant and
// preserved: the first matching case wins.
type Match struct {
	BaseStmt
	Subject Expr
	Cases   []*MatchCase
}

// MatchCase is one case arm of a Match, owned by its Match.
type MatchCase struct {
	BaseStmt
	Pattern Pattern
	Body    []Stmt
}

// -----------------------------------------------------------------------------
// Compile-time statements
// -----------------------------------------------------------------------------

// MacroDef represents a macro definition. Macro definitions are lexically
// scoped to the block that contains them and never survive expansion.
type MacroDef struct {
	BaseStmt
	Name   string
	Params []string
	Body   []Stmt
}

// MacroCall represents a macro invocation in statement position.
// Example: @twice("Hi")
type MacroCall struct {
	BaseStmt
	Name string
	Args []Expr
}

// -----------------------------------------------------------------------------
// External boundary
// -----------------------------------------------------------------------------

// AgentCall represents a call into the external agent layer. The payload is
// raw JSON-like text, opaque to the compiler core apart from validation and
// re-encoding at generation time.
// Example: agent frontend ["type": "intent-draft"]
type AgentCall struct {
	BaseStmt
	Agent   string // Target agent name
	Payload string // Raw payload text (brackets stripped)
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Stmt = (*Say)(nil)
	_ Stmt = (*Print)(nil)
	_ Stmt = (*Assign)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*If)(nil)
	_ Stmt = (*While)(nil)
	_ Stmt = (*ForLoop)(nil)
	_ Stmt = (*FunctionDef)(nil)
	_ Stmt = (*DoBlock)(nil)
	_ Stmt = (*Match)(nil)
	_ Stmt = (*MacroDef)(nil)
	_ Stmt = (*MacroCall)(nil)
	_ Stmt = (*AgentCall)(nil)
)
