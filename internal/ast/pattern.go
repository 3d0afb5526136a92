package ast

// WildcardPattern matches any subject and binds nothing.
// Surface syntax: _
type WildcardPattern struct {
	BasePattern
}

// NamePattern matches any subject and binds it to Name.
type NamePattern struct {
	BasePattern
	Name string
}

// LiteralPattern matches by exact-value equality. Value is always a
// LiteralInt or LiteralString.
type LiteralPattern struct {
	BasePattern
	Value Expr
}

// ListPattern destructures a fixed-length list positionally.
// Example: [a, 2, _]
type ListPattern struct {
	BasePattern
	Elements []Pattern
}

var (
	_ Pattern = (*WildcardPattern)(nil)
	_ Pattern = (*NamePattern)(nil)
	_ Pattern = (*LiteralPattern)(nil)
	_ Pattern = (*ListPattern)(nil)
)
