// Package lexer provides metascript source code tokenization.
//
// The lexer is indentation-aware: it tracks an indent stack and emits
// synthetic INDENT and DEDENT tokens around nested blocks, Python style.
// Newlines and indentation are suppressed inside parentheses and brackets
// so expressions may span lines.
package lexer

import (
	"github.com/metascript-lang/metascript/internal/token"
)

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Lexer tokenizes metascript source code.
type Lexer struct {
	src     []byte         // Source code
	ch      byte           // Current character (0 at EOF)
	offset  int            // Offset of the next unread character
	pos     token.Position // Position of current character
	nextPos token.Position // Position of next character

	indents     []int   // Indentation stack, always starts with 0
	pending     []Token // Queued INDENT/DEDENT tokens
	atLineStart bool    // True before indentation of the current line is consumed
	depth       int     // Bracket/paren nesting; newlines are ignored inside
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	return NewFile(src, "")
}

// NewFile creates a new Lexer whose token positions carry filename.
func NewFile(src []byte, filename string) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Filename: filename,
			Line:     1,
			Column:   1,
		},
		indents:     []int{0},
		atLineStart: true,
	}
	l.next()
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	for {
		if len(l.pending) > 0 {
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok
		}
		if l.atLineStart && l.depth == 0 {
			l.scanIndentation()
			continue
		}
		return l.scan()
	}
}

// scanIndentation consumes leading whitespace of a line, skips blank and
// comment-only lines, and queues INDENT/DEDENT tokens against the stack.
func (l *Lexer) scanIndentation() {
	width := 0
	for l.ch == ' ' || l.ch == '\t' {
		width++
		l.next()
	}

	// Blank line: consume and stay at line start.
	if l.ch == '\n' {
		l.next()
		return
	}
	// Comment-only line.
	if l.ch == '#' {
		l.skipComment()
		if l.ch == '\n' {
			l.next()
		}
		return
	}

	l.atLineStart = false
	if l.ch == 0 {
		return
	}

	top := l.indents[len(l.indents)-1]
	switch {
	case width > top:
		l.indents = append(l.indents, width)
		l.pending = append(l.pending, Token{Type: token.INDENT, Pos: l.pos})
	case width < top:
		for len(l.indents) > 1 && width < l.indents[len(l.indents)-1] {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, Token{Type: token.DEDENT, Pos: l.pos})
		}
		if width != l.indents[len(l.indents)-1] {
			l.pending = append(l.pending, Token{
				Type:  token.ILLEGAL,
				Pos:   l.pos,
				Value: "inconsistent indentation",
			})
		}
	}
}

func (l *Lexer) scan() Token {
	for {
		l.skipSpaces()
		if l.ch == '#' {
			l.skipComment()
		}
		if l.ch != '\n' {
			break
		}
		// Newline: a statement terminator at depth 0, ignored inside
		// brackets (implicit line joining).
		pos := l.pos
		l.next()
		if l.depth == 0 {
			l.atLineStart = true
			return Token{Type: token.NEWLINE, Pos: pos}
		}
	}

	pos := l.pos

	// EOF: close any open indentation levels first.
	if l.ch == 0 {
		if len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			return Token{Type: token.DEDENT, Pos: pos}
		}
		return Token{Type: token.EOF, Pos: pos}
	}

	switch l.ch {
	case '+':
		l.next()
		return Token{Type: token.ADD, Pos: pos, Value: "+"}
	case '-':
		l.next()
		return Token{Type: token.SUB, Pos: pos, Value: "-"}
	case '*':
		l.next()
		return Token{Type: token.MUL, Pos: pos, Value: "*"}
	case '/':
		l.next()
		return Token{Type: token.DIV, Pos: pos, Value: "/"}
	case '=':
		l.next()
		return Token{Type: token.ASSIGN, Pos: pos, Value: "="}
	case '(':
		l.next()
		l.depth++
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}
	case ')':
		l.next()
		if l.depth > 0 {
			l.depth--
		}
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}
	case '[':
		l.next()
		l.depth++
		return Token{Type: token.LBRACKET, Pos: pos, Value: "["}
	case ']':
		l.next()
		if l.depth > 0 {
			l.depth--
		}
		return Token{Type: token.RBRACKET, Pos: pos, Value: "]"}
	case ',':
		l.next()
		return Token{Type: token.COMMA, Pos: pos, Value: ","}
	case ':':
		l.next()
		return Token{Type: token.COLON, Pos: pos, Value: ":"}
	case '@':
		l.next()
		return Token{Type: token.AT, Pos: pos, Value: "@"}
	case '.':
		l.next()
		if l.ch == '.' {
			l.next()
			return Token{Type: token.DOTDOT, Pos: pos, Value: ".."}
		}
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unexpected '.'"}
	case '"', '\'':
		return l.scanString(pos)
	default:
		if isDigit(l.ch) {
			return l.scanInt(pos)
		}
		if isIdentStart(l.ch) {
			return l.scanIdent(pos)
		}
		ch := l.ch
		l.next()
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unexpected character " + string(rune(ch))}
	}
}

// ScanPayload scans the raw text of an agent payload. Called by the parser
// after it has consumed the opening '[' of an agent statement; the capture
// runs to the matching ']' and respects nested brackets and quoted strings.
func (l *Lexer) ScanPayload() Token {
	pos := l.pos
	// The parser consumed '[' as a token, which bumped the bracket depth;
	// the raw capture closes it by hand.
	if l.depth > 0 {
		l.depth--
	}

	var sb []byte
	nesting := 0
	for l.ch != 0 {
		switch l.ch {
		case '[':
			nesting++
		case ']':
			if nesting == 0 {
				l.next() // consume closing ]
				return Token{Type: token.STRING, Pos: pos, Value: string(sb)}
			}
			nesting--
		case '"', '\'':
			quote := l.ch
			sb = append(sb, l.ch)
			l.next()
			for l.ch != 0 && l.ch != quote {
				if l.ch == '\\' {
					sb = append(sb, l.ch)
					l.next()
					if l.ch == 0 {
						break
					}
				}
				sb = append(sb, l.ch)
				l.next()
			}
			if l.ch == 0 {
				return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated agent payload"}
			}
			// fall through to append the closing quote below
		}
		sb = append(sb, l.ch)
		l.next()
	}
	return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated agent payload"}
}

func (l *Lexer) scanString(pos token.Position) Token {
	quote := l.ch
	l.next() // consume opening quote

	var sb []byte
	for l.ch != 0 && l.ch != quote && l.ch != '\n' {
		if l.ch == '\\' {
			l.next()
			switch l.ch {
			case 'n':
				sb = append(sb, '\n')
			case 't':
				sb = append(sb, '\t')
			case 'r':
				sb = append(sb, '\r')
			case '\\':
				sb = append(sb, '\\')
			case '"':
				sb = append(sb, '"')
			case '\'':
				sb = append(sb, '\'')
			default:
				sb = append(sb, l.ch)
			}
			l.next()
		} else {
			sb = append(sb, l.ch)
			l.next()
		}
	}

	if l.ch != quote {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated string"}
	}
	l.next() // consume closing quote

	return Token{Type: token.STRING, Pos: pos, Value: string(sb)}
}

func (l *Lexer) scanInt(pos token.Position) Token {
	start := pos.Offset
	for isDigit(l.ch) {
		l.next()
	}
	// A '.' after digits is never consumed here: "1..3" lexes as
	// INT DOTDOT INT.
	return Token{Type: token.INT, Pos: pos, Value: string(l.src[start:l.pos.Offset])}
}

func (l *Lexer) scanIdent(pos token.Position) Token {
	start := pos.Offset
	for isIdentPart(l.ch) {
		l.next()
	}
	value := string(l.src[start:l.pos.Offset])
	return Token{Type: token.LookupIdent(value), Pos: pos, Value: value}
}

func (l *Lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.next()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.next()
	}
}

// next advances to the next character.
func (l *Lexer) next() {
	l.pos = l.nextPos
	if l.offset >= len(l.src) {
		l.ch = 0
		return
	}
	l.ch = l.src[l.offset]
	l.offset++
	if l.ch == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
	} else {
		l.nextPos.Column++
	}
	l.nextPos.Offset = l.offset
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
