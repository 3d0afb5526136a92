// Package token defines lexical tokens for metascript.
package token

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF
	NEWLINE
	INDENT
	DEDENT

	// Operators and delimiters
	operatorStart
	ADD      // +
	SUB      // -
	MUL      // *
	DIV      // /
	ASSIGN   // =
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	COLON    // :
	AT       // @
	DOTDOT   // ..
	operatorEnd

	// Keywords
	keywordStart
	SAY    // say
	PRINT  // print
	LET    // let
	IF     // if
	ELSE   // else
	WHILE  // while
	FOR    // for
	IN     // in
	DEF    // def
	ASYNC  // async
	RETURN // return
	MACRO  // macro
	MATCH  // match
	CASE   // case
	AGENT  // agent
	DO     // do
	AWAIT  // await
	keywordEnd

	// Literals
	NAME   // identifier
	INT    // integer literal
	STRING // string literal
)

// IsOperator returns true if the token is an operator or delimiter.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a literal (name, int, string).
func (t Token) IsLiteral() bool {
	return t == NAME || t == INT || t == STRING
}

// String returns the source text of operators and keywords, and a
// descriptive name otherwise.
func (t Token) String() string {
	switch t {
	case ILLEGAL:
		return "<illegal>"
	case EOF:
		return "EOF"
	case NEWLINE:
		return "<newline>"
	case INDENT:
		return "<indent>"
	case DEDENT:
		return "<dedent>"
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case ASSIGN:
		return "="
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case LBRACKET:
		return "["
	case RBRACKET:
		return "]"
	case COMMA:
		return ","
	case COLON:
		return ":"
	case AT:
		return "@"
	case DOTDOT:
		return ".."
	case SAY:
		return "say"
	case PRINT:
		return "print"
	case LET:
		return "let"
	case IF:
		return "if"
	case ELSE:
		return "else"
	case WHILE:
		return "while"
	case FOR:
		return "for"
	case IN:
		return "in"
	case DEF:
		return "def"
	case ASYNC:
		return "async"
	case RETURN:
		return "return"
	case MACRO:
		return "macro"
	case MATCH:
		return "match"
	case CASE:
		return "case"
	case AGENT:
		return "agent"
	case DO:
		return "do"
	case AWAIT:
		return "await"
	case NAME:
		return "name"
	case INT:
		return "int"
	case STRING:
		return "string"
	default:
		return "<unknown>"
	}
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Token{
	"say":    SAY,
	"print":  PRINT,
	"let":    LET,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"in":     IN,
	"def":    DEF,
	"async":  ASYNC,
	"return": RETURN,
	"macro":  MACRO,
	"match":  MATCH,
	"case":   CASE,
	"agent":  AGENT,
	"do":     DO,
	"await":  AWAIT,
}

// LookupIdent returns the token type for a given identifier.
// Returns a keyword token if found, otherwise NAME.
func LookupIdent(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}
