package parser

import (
	"fmt"
	"strconv"

	"github.com/metascript-lang/metascript/internal/ast"
	"github.com/metascript-lang/metascript/internal/lexer"
	"github.com/metascript-lang/metascript/internal/payload"
	"github.com/metascript-lang/metascript/internal/token"
)

// tokenName returns a human-readable name for a token type.
func tokenName(t token.Token) string {
	switch t {
	case token.ILLEGAL:
		return "illegal"
	case token.EOF:
		return "end of file"
	case token.NEWLINE:
		return "newline"
	case token.INDENT:
		return "indent"
	case token.DEDENT:
		return "dedent"
	case token.NAME:
		return "name"
	case token.INT:
		return "integer"
	case token.STRING:
		return "string"
	default:
		if t.IsOperator() || t.IsKeyword() {
			return t.String()
		}
		return fmt.Sprintf("token(%d)", t)
	}
}

// Parser is a recursive descent parser for metascript programs.
//
// The parser is the single front end: it handles both block bodies
// (NEWLINE INDENT ... DEDENT) and inline bodies (a single statement after
// the colon on the same line), so one-liner forms like
//
//	if x: say "yes" else: say "no"
//
// parse to the same shapes as their indented equivalents.
type Parser struct {
	lexer  *lexer.Lexer // Lexer instance
	tok    lexer.Token  // Current token
	errors ErrorList    // Accumulated errors

	// consumedTerm is set when a compound statement already consumed its
	// trailing terminator (block DEDENT, or the newline peeked past while
	// looking for an else branch).
	consumedTerm bool
}

// Parse parses a metascript program from source code.
// Returns the AST and any parse errors encountered.
func Parse(src string) (*ast.Program, error) {
	return ParseFile([]byte(src), "")
}

// ParseBytes parses a metascript program from a byte slice.
func ParseBytes(src []byte) (*ast.Program, error) {
	return ParseFile(src, "")
}

// ParseFile parses a metascript program whose positions carry filename.
func ParseFile(src []byte, filename string) (*ast.Program, error) {
	p := &Parser{
		lexer: lexer.NewFile(src, filename),
	}
	p.next() // Initialize first token

	prog := p.parseProgram()
	prog.Filename = filename

	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (ast.Expr, error) {
	p := &Parser{
		lexer: lexer.NewFromString(src),
	}
	p.next()

	expr := p.parseExpr()

	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return expr, nil
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token.
func (p *Parser) next() {
	p.tok = p.lexer.Scan()
}

// expect checks that the current token is tok and advances.
// If not, it records an error.
func (p *Parser) expect(tok token.Token) bool {
	if p.tok.Type != tok {
		p.error(expectedError(p.tok.Pos, tokenName(tok), p.tokenDesc()))
		return false
	}
	p.next()
	return true
}

// expectName expects a NAME token and returns its value and position.
func (p *Parser) expectName() (string, token.Position) {
	name := p.tok.Value
	pos := p.tok.Pos
	if !p.expect(token.NAME) {
		return "", pos
	}
	return name, pos
}

// match returns true if current token matches any of the given types.
func (p *Parser) match(types ...token.Token) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.NAME, token.INT, token.STRING:
		return p.tok.Value
	case token.ILLEGAL:
		// ILLEGAL token's Value contains the actual error message
		return p.tok.Value
	default:
		return tokenName(p.tok.Type)
	}
}

// error records a parse error.
func (p *Parser) error(err *ParseError) {
	p.errors = append(p.errors, err)
}

// errorf records a formatted parse error at current position.
func (p *Parser) errorf(format string, args ...any) {
	p.error(errorf(p.tok.Pos, format, args...))
}

// endOf returns the position just past a token.
func endOf(t lexer.Token) token.Position {
	end := t.Pos
	end.Column += len(t.Value)
	end.Offset += len(t.Value)
	return end
}

// skipNewlines skips any number of newline tokens.
func (p *Parser) skipNewlines() {
	for p.tok.Type == token.NEWLINE {
		p.next()
	}
}

// synchronize skips tokens until a statement boundary, so one syntax error
// does not cascade into a wall of followups.
func (p *Parser) synchronize() {
	for !p.match(token.NEWLINE, token.DEDENT, token.EOF) {
		p.next()
	}
}

// terminator consumes the statement terminator after a statement inside a
// block. Compound statements that already swallowed theirs set consumedTerm.
func (p *Parser) terminator() {
	if p.consumedTerm {
		p.consumedTerm = false
		return
	}
	switch p.tok.Type {
	case token.NEWLINE:
		p.next()
	case token.DEDENT, token.EOF:
		// block close terminates the statement
	default:
		p.errorf("expected newline after statement, got %s", p.tokenDesc())
		p.synchronize()
	}
}

// -----------------------------------------------------------------------------
// Program and blocks
// -----------------------------------------------------------------------------

// parseProgram parses a complete program: top-level statements separated by
// newlines.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{
		StartPos: p.tok.Pos,
	}

	for {
		p.skipNewlines()
		if p.tok.Type == token.EOF {
			break
		}
		s := p.parseStmt()
		if s == nil {
			p.synchronize()
			p.consumedTerm = false
			continue
		}
		prog.Statements = append(prog.Statements, s)
		p.terminator()
	}

	prog.EndPos = p.tok.Pos
	return prog
}

// parseBody parses the body after a colon: either a single inline statement
// on the same line, or an indented block.
func (p *Parser) parseBody() []ast.Stmt {
	if !p.expect(token.COLON) {
		return nil
	}
	if p.tok.Type == token.NEWLINE {
		return p.parseIndentedBlock()
	}
	s := p.parseStmt()
	if s == nil {
		return nil
	}
	return []ast.Stmt{s}
}

// parseIndentedBlock parses NEWLINE INDENT stmt+ DEDENT and consumes the
// closing DEDENT (setting consumedTerm for the enclosing statement).
func (p *Parser) parseIndentedBlock() []ast.Stmt {
	p.expect(token.NEWLINE)
	if !p.expect(token.INDENT) {
		return nil
	}

	var stmts []ast.Stmt
	for {
		p.skipNewlines()
		if p.match(token.DEDENT, token.EOF) {
			break
		}
		s := p.parseStmt()
		if s == nil {
			p.synchronize()
			p.consumedTerm = false
			continue
		}
		stmts = append(stmts, s)
		p.terminator()
	}

	if p.tok.Type == token.DEDENT {
		p.next()
	}
	if len(stmts) == 0 {
		p.errorf("empty block")
	}
	p.consumedTerm = true
	return stmts
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Type {
	case token.SAY:
		return p.parseSay()
	case token.PRINT:
		return p.parsePrint()
	case token.LET:
		return p.parseLet()
	case token.RETURN:
		return p.parseReturn()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.DEF:
		return p.parseDef(false, p.tok.Pos)
	case token.ASYNC:
		pos := p.tok.Pos
		p.next()
		if p.tok.Type != token.DEF {
			p.error(expectedError(p.tok.Pos, "def", p.tokenDesc()))
			return nil
		}
		return p.parseDef(true, pos)
	case token.DO:
		return p.parseDo()
	case token.MATCH:
		return p.parseMatch()
	case token.MACRO:
		return p.parseMacroDef()
	case token.AT:
		return p.parseMacroCall()
	case token.AGENT:
		return p.parseAgent()
	case token.NAME:
		return p.parseNameStmt()
	case token.ILLEGAL:
		p.errorf("%s", p.tok.Value)
		p.next()
		return nil
	default:
		p.errorf("unexpected %s at start of statement", p.tokenDesc())
		return nil
	}
}

func (p *Parser) parseSay() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume 'say'
	text := p.parseExpr()
	if text == nil {
		return nil
	}
	return &ast.Say{BaseStmt: ast.MakeBaseStmt(pos, text.End()), Text: text}
}

func (p *Parser) parsePrint() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume 'print'
	text := p.parseExpr()
	if text == nil {
		return nil
	}
	return &ast.Print{BaseStmt: ast.MakeBaseStmt(pos, text.End()), Text: text}
}

func (p *Parser) parseLet() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume 'let'
	name, _ := p.expectName()
	if name == "" {
		return nil
	}
	if !p.expect(token.ASSIGN) {
		return nil
	}
	value := p.parseExpr()
	if value == nil {
		return nil
	}
	return &ast.Assign{BaseStmt: ast.MakeBaseStmt(pos, value.End()), Name: name, Value: value}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.tok.Pos
	end := endOf(p.tok)
	p.next() // consume 'return'

	var value ast.Expr
	if !p.match(token.NEWLINE, token.DEDENT, token.EOF, token.ELSE) {
		value = p.parseExpr()
		if value == nil {
			return nil
		}
		end = value.End()
	}
	return &ast.Return{BaseStmt: ast.MakeBaseStmt(pos, end), Value: value}
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume 'if'

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	body := p.parseBody()

	// An else may follow on the same line (inline form) or on the next line
	// at the same indentation. Peeking past a newline either finds the else
	// or leaves the terminator consumed.
	if p.tok.Type == token.NEWLINE {
		p.next()
		if p.tok.Type != token.ELSE {
			p.consumedTerm = true
		}
	}

	var orelse []ast.Stmt
	if p.tok.Type == token.ELSE {
		p.next()
		orelse = p.parseBody()
	}

	return &ast.If{
		BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos),
		Cond:     cond,
		Body:     body,
		Orelse:   orelse,
	}
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume 'while'

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	body := p.parseBody()
	return &ast.While{BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos), Cond: cond, Body: body}
}

// parseFor parses a for loop. The iterable clause may be an inclusive range
// (a..b), which normalizes to range(a, b+1) here so downstream passes only
// ever see the range call form, a bare integer bound, or an iterable
// expression.
func (p *Parser) parseFor() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume 'for'

	name, _ := p.expectName()
	if name == "" {
		return nil
	}
	if !p.expect(token.IN) {
		return nil
	}

	end := p.parseExpr()
	if end == nil {
		return nil
	}
	if p.tok.Type == token.DOTDOT {
		p.next()
		hi := p.parseExpr()
		if hi == nil {
			return nil
		}
		plusOne := &ast.BinaryOp{
			BaseExpr: ast.MakeBaseExpr(hi.Pos(), hi.End()),
			Op:       token.ADD,
			Left:     hi,
			Right:    &ast.LiteralInt{BaseExpr: ast.MakeBaseExpr(hi.End(), hi.End()), Value: 1},
		}
		end = &ast.FunctionCall{
			BaseExpr: ast.MakeBaseExpr(end.Pos(), hi.End()),
			Name:     "range",
			Args:     []ast.Expr{end, plusOne},
		}
	}

	body := p.parseBody()
	return &ast.ForLoop{
		BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos),
		Var:      name,
		Stop:     end,
		Body:     body,
	}
}

func (p *Parser) parseDef(isAsync bool, pos token.Position) ast.Stmt {
	p.next() // consume 'def'

	name, _ := p.expectName()
	if name == "" {
		return nil
	}
	params := p.parseParams()
	body := p.parseBody()

	return &ast.FunctionDef{
		BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos),
		Name:     name,
		Params:   params,
		Body:     body,
		IsAsync:  isAsync,
	}
}

func (p *Parser) parseDo() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume 'do'
	body := p.parseBody()
	return &ast.DoBlock{BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos), Body: body}
}

// parseMatch parses a match statement. Cases live in an indented block;
// each case body may be inline or indented.
func (p *Parser) parseMatch() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume 'match'

	subject := p.parseExpr()
	if subject == nil {
		return nil
	}
	if !p.expect(token.COLON) {
		return nil
	}
	p.expect(token.NEWLINE)
	if !p.expect(token.INDENT) {
		return nil
	}

	var cases []*ast.MatchCase
	for {
		p.skipNewlines()
		if p.match(token.DEDENT, token.EOF) {
			break
		}
		c := p.parseMatchCase()
		if c == nil {
			p.synchronize()
			p.consumedTerm = false
			continue
		}
		cases = append(cases, c)
		p.terminator()
	}

	if p.tok.Type == token.DEDENT {
		p.next()
	}
	if len(cases) == 0 {
		p.errorf("match statement has no cases")
	}
	p.consumedTerm = true

	return &ast.Match{BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos), Subject: subject, Cases: cases}
}

func (p *Parser) parseMatchCase() *ast.MatchCase {
	pos := p.tok.Pos
	if !p.expect(token.CASE) {
		return nil
	}
	pat := p.parsePattern()
	if pat == nil {
		return nil
	}
	body := p.parseBody()
	return &ast.MatchCase{
		BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos),
		Pattern:  pat,
		Body:     body,
	}
}

func (p *Parser) parseMacroDef() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume 'macro'

	name, _ := p.expectName()
	if name == "" {
		return nil
	}
	params := p.parseParams()
	body := p.parseBody()

	return &ast.MacroDef{
		BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos),
		Name:     name,
		Params:   params,
		Body:     body,
	}
}

func (p *Parser) parseMacroCall() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume '@'

	name, _ := p.expectName()
	if name == "" {
		return nil
	}
	if !p.expect(token.LPAREN) {
		return nil
	}
	args := p.parseArgs()
	endPos := endOf(p.tok)
	if !p.expect(token.RPAREN) {
		return nil
	}

	return &ast.MacroCall{
		BaseStmt: ast.MakeBaseStmt(pos, endPos),
		Name:     name,
		Args:     args,
	}
}

// parseAgent parses an agent statement. The payload between the brackets is
// captured raw by the lexer rather than tokenized: it is JSON-like text the
// core treats as opaque.
func (p *Parser) parseAgent() ast.Stmt {
	pos := p.tok.Pos
	p.next() // consume 'agent'

	name, _ := p.expectName()
	if name == "" {
		return nil
	}
	if p.tok.Type != token.LBRACKET {
		p.error(expectedError(p.tok.Pos, "[", p.tokenDesc()))
		return nil
	}

	// The current token is the '['; switch the lexer into raw capture for
	// the payload text, then resume normal scanning after the ']'.
	raw := p.lexer.ScanPayload()
	if raw.Type == token.ILLEGAL {
		p.error(errorf(raw.Pos, "%s", raw.Value))
		p.next()
		return nil
	}
	p.next()

	text := payload.Normalize(raw.Value)
	if _, err := payload.Decode(text); err != nil {
		p.error(errorf(raw.Pos, "%v", err))
		return nil
	}

	return &ast.AgentCall{
		BaseStmt: ast.MakeBaseStmt(pos, p.tok.Pos),
		Agent:    name,
		Payload:  text,
	}
}

// parseNameStmt parses a statement that begins with a name: an assignment,
// a call, or a bare expression.
func (p *Parser) parseNameStmt() ast.Stmt {
	nameTok := p.tok
	p.next()

	if p.tok.Type == token.ASSIGN {
		p.next()
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		return &ast.Assign{
			BaseStmt: ast.MakeBaseStmt(nameTok.Pos, value.End()),
			Name:     nameTok.Value,
			Value:    value,
		}
	}

	expr := p.parseExprFromName(nameTok)
	if expr == nil {
		return nil
	}
	return &ast.ExprStmt{BaseStmt: ast.MakeBaseStmt(expr.Pos(), expr.End()), X: expr}
}

// -----------------------------------------------------------------------------
// Patterns
// -----------------------------------------------------------------------------

func (p *Parser) parsePattern() ast.Pattern {
	pos := p.tok.Pos
	switch p.tok.Type {
	case token.NAME:
		name := p.tok.Value
		end := endOf(p.tok)
		p.next()
		if name == "_" {
			return &ast.WildcardPattern{BasePattern: ast.MakeBasePattern(pos, end)}
		}
		return &ast.NamePattern{BasePattern: ast.MakeBasePattern(pos, end), Name: name}

	case token.INT, token.STRING, token.SUB:
		lit := p.parseAtom()
		if lit == nil {
			return nil
		}
		// A leading minus parses as a unary op; fold it so a literal
		// pattern always holds a plain LiteralInt or LiteralString.
		if neg, ok := lit.(*ast.UnaryOp); ok {
			inner, ok := neg.Operand.(*ast.LiteralInt)
			if !ok {
				p.error(errorf(neg.Pos(), "pattern literal must be an integer or string"))
				return nil
			}
			lit = &ast.LiteralInt{
				BaseExpr: ast.MakeBaseExpr(neg.Pos(), inner.End()),
				Value:    -inner.Value,
			}
		}
		return &ast.LiteralPattern{BasePattern: ast.MakeBasePattern(pos, lit.End()), Value: lit}

	case token.LBRACKET:
		p.next()
		var elems []ast.Pattern
		for p.tok.Type != token.RBRACKET && p.tok.Type != token.EOF {
			if len(elems) > 0 && !p.expect(token.COMMA) {
				return nil
			}
			e := p.parsePattern()
			if e == nil {
				return nil
			}
			elems = append(elems, e)
		}
		end := endOf(p.tok)
		if !p.expect(token.RBRACKET) {
			return nil
		}
		return &ast.ListPattern{BasePattern: ast.MakeBasePattern(pos, end), Elements: elems}

	default:
		p.error(expectedError(p.tok.Pos, "pattern", p.tokenDesc()))
		return nil
	}
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// parseExpr parses an additive expression: term (('+'|'-') term)*.
func (p *Parser) parseExpr() ast.Expr {
	left := p.parseTerm()
	if left == nil {
		return nil
	}
	return p.parseExprRest(left)
}

func (p *Parser) parseExprRest(left ast.Expr) ast.Expr {
	for p.match(token.ADD, token.SUB) {
		op := p.tok.Type
		p.next()
		right := p.parseTerm()
		if right == nil {
			return nil
		}
		left = &ast.BinaryOp{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}
	return left
}

// parseTerm parses a multiplicative expression: unary (('*'|'/') unary)*.
func (p *Parser) parseTerm() ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	return p.parseTermRest(left)
}

func (p *Parser) parseTermRest(left ast.Expr) ast.Expr {
	for p.match(token.MUL, token.DIV) {
		op := p.tok.Type
		p.next()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = &ast.BinaryOp{
			BaseExpr: ast.MakeBaseExpr(left.Pos(), right.End()),
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.tok.Type {
	case token.SUB:
		pos := p.tok.Pos
		p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryOp{
			BaseExpr: ast.MakeBaseExpr(pos, operand.End()),
			Op:       token.SUB,
			Operand:  operand,
		}
	case token.AWAIT:
		pos := p.tok.Pos
		p.next()
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		return &ast.Await{BaseExpr: ast.MakeBaseExpr(pos, x.End()), X: x}
	default:
		return p.parseAtom()
	}
}

func (p *Parser) parseAtom() ast.Expr {
	pos := p.tok.Pos
	switch p.tok.Type {
	case token.INT:
		value, err := strconv.Atoi(p.tok.Value)
		if err != nil {
			p.errorf("invalid integer literal %q", p.tok.Value)
			p.next()
			return nil
		}
		end := endOf(p.tok)
		p.next()
		return &ast.LiteralInt{BaseExpr: ast.MakeBaseExpr(pos, end), Value: value}

	case token.STRING:
		value := p.tok.Value
		end := endOf(p.tok)
		p.next()
		return &ast.LiteralString{BaseExpr: ast.MakeBaseExpr(pos, end), Value: value}

	case token.NAME:
		nameTok := p.tok
		p.next()
		return p.parseAtomFromName(nameTok)

	case token.SUB:
		return p.parseUnary()

	case token.LPAREN:
		p.next()
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return expr

	case token.LBRACKET:
		p.next()
		var elems []ast.Expr
		for p.tok.Type != token.RBRACKET && p.tok.Type != token.EOF {
			if len(elems) > 0 && !p.expect(token.COMMA) {
				return nil
			}
			e := p.parseExpr()
			if e == nil {
				return nil
			}
			elems = append(elems, e)
		}
		end := endOf(p.tok)
		if !p.expect(token.RBRACKET) {
			return nil
		}
		return &ast.ListLiteral{BaseExpr: ast.MakeBaseExpr(pos, end), Elements: elems}

	case token.ILLEGAL:
		p.errorf("%s", p.tok.Value)
		p.next()
		return nil

	default:
		p.error(expectedError(p.tok.Pos, "expression", p.tokenDesc()))
		return nil
	}
}

// parseAtomFromName finishes an atom whose leading NAME token is already
// consumed: a reference, or a call if a parenthesized argument list follows.
func (p *Parser) parseAtomFromName(nameTok lexer.Token) ast.Expr {
	if p.tok.Type != token.LPAREN {
		return &ast.NameExpr{
			BaseExpr: ast.MakeBaseExpr(nameTok.Pos, endOf(nameTok)),
			Name:     nameTok.Value,
		}
	}
	p.next() // consume '('
	args := p.parseArgs()
	end := endOf(p.tok)
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.FunctionCall{
		BaseExpr: ast.MakeBaseExpr(nameTok.Pos, end),
		Name:     nameTok.Value,
		Args:     args,
	}
}

// parseExprFromName parses a full expression whose leading NAME token is
// already consumed (used by statement dispatch).
func (p *Parser) parseExprFromName(nameTok lexer.Token) ast.Expr {
	atom := p.parseAtomFromName(nameTok)
	if atom == nil {
		return nil
	}
	left := p.parseTermRest(atom)
	if left == nil {
		return nil
	}
	return p.parseExprRest(left)
}

// parseArgs parses a comma-separated expression list up to a closing paren.
func (p *Parser) parseArgs() []ast.Expr {
	var args []ast.Expr
	for p.tok.Type != token.RPAREN && p.tok.Type != token.EOF {
		if len(args) > 0 && !p.expect(token.COMMA) {
			return args
		}
		e := p.parseExpr()
		if e == nil {
			return args
		}
		args = append(args, e)
	}
	return args
}

// parseParams parses a parenthesized parameter name list.
func (p *Parser) parseParams() []string {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var params []string
	for p.tok.Type != token.RPAREN && p.tok.Type != token.EOF {
		if len(params) > 0 && !p.expect(token.COMMA) {
			return params
		}
		name, _ := p.expectName()
		if name == "" {
			return params
		}
		params = append(params, name)
	}
	p.expect(token.RPAREN)
	return params
}
