package parser

import (
	"fmt"
	"slices"

	"github.com/arnavsurve/glox/internal/compiler/ast"
	"github.com/arnavsurve/glox/internal/compiler/token"
	"github.com/arnavsurve/glox/internal/diag"
)

/*
Grammar, lowest to highest precedence:

	program     → declaration* EOF ;
	declaration → varDecl | statement ;
	varDecl     → "var" IDENTIFIER ( "=" expression )? ";" ;
	statement   → printStmt | block | exprStmt ;
	printStmt   → "print" expression ";" ;
	block       → "{" declaration* "}" ;
	exprStmt    → expression ";" ;
	expression  → assignment ;
	assignment  → IDENTIFIER "=" assignment | equality ;
	equality    → comparison ( ( "!=" | "==" ) comparison )* ;
	comparison  → term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
	term        → factor ( ( "-" | "+" ) factor )* ;
	factor      → unary ( ( "/" | "*" ) unary )* ;
	unary       → ( "!" | "-" ) unary | primary ;
	primary     → NUMBER | STRING | "true" | "false" | "nil"
	            | IDENTIFIER | "(" expression ")" ;
*/

// Error is a syntax error located at the token where parsing failed.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	where := fmt.Sprintf(" at '%s'", e.Token.Lexeme)
	if e.Token.Type == token.TokenEOF {
		where = " at end"
	}
	return diag.Format(e.Token.Line, where, e.Message)
}

type Parser struct {
	tokens  []token.Token
	current int
	errors  []error
}

// NewParser returns a parser over tokens. A missing trailing EOF token is
// supplied so the parser never indexes past the end.
func NewParser(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.TokenEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(slices.Clip(tokens), token.Token{Type: token.TokenEOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse parses a whole program. Statements that failed to parse are left
// out of the result; the returned errors describe them.
func Parse(tokens []token.Token) ([]ast.Statement, []error) {
	p := NewParser(tokens)
	program := p.ParseProgram()
	return program.Statements, p.Errors()
}

// --- Error Handling ---
func (p *Parser) addError(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, &Error{Token: tok, Message: fmt.Sprintf(format, args...)})
}

// Errors returns every syntax error found, in source order.
func (p *Parser) Errors() []error {
	return p.errors
}

// --- Program Parsing ---

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program
}

// declaration is the recovery point: when a statement fails to parse, the
// parser skips to the next statement boundary and keeps going so later
// errors are reported in the same run.
func (p *Parser) declaration() ast.Statement {
	var stmt ast.Statement
	if p.match(token.TokenVar) {
		stmt = p.parseVarStatement()
	} else {
		stmt = p.parseStatement()
	}
	if stmt == nil {
		p.synchronize()
		return nil
	}
	return stmt
}

// synchronize discards tokens until just past a ';' or up to a token that
// starts a new statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.TokenSemicolon {
			return
		}
		if p.peek().Type.StartsStatement() {
			return
		}
		p.advance()
	}
}

// --- Statement Parsing ---

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.match(token.TokenPrint):
		return p.parsePrintStatement()
	case p.match(token.TokenLBrace):
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseVarStatement parses `var name;` or `var name = value;`. The 'var'
// token has already been consumed.
func (p *Parser) parseVarStatement() ast.Statement {
	stmt := &ast.VarStatement{Token: p.previous()}

	name, ok := p.consume(token.TokenIdent, "Expect variable name.")
	if !ok {
		return nil
	}
	stmt.Name = name

	if p.match(token.TokenAssign) {
		stmt.Initializer = p.parseExpression()
		if stmt.Initializer == nil {
			return nil
		}
	}

	if _, ok := p.consume(token.TokenSemicolon, "Expect ';' after variable declaration."); !ok {
		return nil
	}
	return stmt
}

// parsePrintStatement parses `print expression;`
func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.previous()}

	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		return nil
	}

	if _, ok := p.consume(token.TokenSemicolon, "Expect ';' after value."); !ok {
		return nil
	}
	return stmt
}

// parseBlockStatement parses `{ declarations... }`. The '{' has already
// been consumed. Errors inside the block are recovered from inside the
// block, so one bad line does not drop its siblings.
func (p *Parser) parseBlockStatement() ast.Statement {
	block := &ast.BlockStatement{Token: p.previous(), Statements: []ast.Statement{}}

	for !p.check(token.TokenRBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}

	if _, ok := p.consume(token.TokenRBrace, "Expect '}' after block."); !ok {
		return nil
	}
	return block
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.peek()}

	stmt.Expression = p.parseExpression()
	if stmt.Expression == nil {
		return nil
	}

	if _, ok := p.consume(token.TokenSemicolon, "Expect ';' after value."); !ok {
		return nil
	}
	return stmt
}

// --- Expression Parsing ---

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment is right-associative: `a = b = c` assigns c to b, then
// the result to a. A bad target is reported but does not unwind the parse.
func (p *Parser) parseAssignment() ast.Expression {
	expr := p.parseEquality()
	if expr == nil {
		return nil
	}

	if p.match(token.TokenAssign) {
		equals := p.previous()
		value := p.parseAssignment()
		if value == nil {
			return nil
		}

		if ident, ok := expr.(*ast.Identifier); ok {
			return &ast.AssignExpression{Name: ident.Token, Value: value}
		}
		p.addError(equals, "Invalid assignment target.")
	}

	return expr
}

func (p *Parser) parseEquality() ast.Expression {
	return p.parseBinary(p.parseComparison, token.TokenBangEqual, token.TokenEqualEqual)
}

func (p *Parser) parseComparison() ast.Expression {
	return p.parseBinary(p.parseTerm,
		token.TokenGreater, token.TokenGreaterEqual, token.TokenLess, token.TokenLessEqual)
}

func (p *Parser) parseTerm() ast.Expression {
	return p.parseBinary(p.parseFactor, token.TokenMinus, token.TokenPlus)
}

func (p *Parser) parseFactor() ast.Expression {
	return p.parseBinary(p.parseUnary, token.TokenSlash, token.TokenAsterisk)
}

// parseBinary parses one left-associative precedence level: an operand from
// the next level up, then any number of `op operand` pairs folded left.
func (p *Parser) parseBinary(next func() ast.Expression, ops ...token.TokenType) ast.Expression {
	left := next()
	if left == nil {
		return nil
	}

	for p.match(ops...) {
		op := p.previous()
		right := next()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpression{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.match(token.TokenBang, token.TokenMinus) {
		op := p.previous()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		return &ast.UnaryExpression{Operator: op, Right: right}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()

	switch tok.Type {
	case token.TokenNumber:
		p.advance()
		val, _ := tok.Literal.(float64)
		return &ast.NumberLiteral{Token: tok, Value: val}
	case token.TokenString:
		p.advance()
		val, _ := tok.Literal.(string)
		return &ast.StringLiteral{Token: tok, Value: val}
	case token.TokenTrue, token.TokenFalse:
		p.advance()
		return &ast.BoolLiteral{Token: tok, Value: tok.Type == token.TokenTrue}
	case token.TokenNil:
		p.advance()
		return &ast.NilLiteral{Token: tok}
	case token.TokenIdent:
		p.advance()
		return &ast.Identifier{Token: tok}
	case token.TokenLParen:
		return p.parseGroupedExpression()
	}

	p.addError(tok, "Expect expression.")
	return nil
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	startToken := p.advance() // Consume '('

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	if _, ok := p.consume(token.TokenRParen, "Expect ')' after expression."); !ok {
		return nil
	}
	return &ast.GroupedExpression{Token: startToken, Expression: expr}
}

// --- Utility Functions ---

// match consumes the current token if it has one of the given types.
func (p *Parser) match(types ...token.TokenType) bool {
	if slices.ContainsFunc(types, p.check) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) check(tokenType token.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// consume returns the current token and advances if it has the expected
// type. Otherwise it records msg at the current token and returns false.
func (p *Parser) consume(expectedType token.TokenType, msg string) (token.Token, bool) {
	if p.check(expectedType) {
		return p.advance(), true
	}
	p.addError(p.peek(), "%s", msg)
	return token.Token{}, false
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.TokenEOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}
