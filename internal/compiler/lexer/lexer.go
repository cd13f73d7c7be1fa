package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/arnavsurve/glox/internal/compiler/token"
	"github.com/arnavsurve/glox/internal/diag"
)

const eof rune = -1

// MsgUnterminatedString is the message of the error reported for a string
// that reaches end of input.
const MsgUnterminatedString = "Unterminated string."

// Error is a lexical error. Lexical errors carry a line but no lexeme.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return diag.Format(e.Line, "", e.Message)
}

type Lexer struct {
	input        string
	position     int  // start of current char
	readPosition int  // start of next char
	ch           rune // current char, eof at end of input

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)

	errors []error
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Scan tokenizes src in one pass. The returned slice always ends with a
// single EOF token, even when errors were found.
func Scan(src string) ([]token.Token, []error) {
	l := NewLexer(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF {
			break
		}
	}
	return toks, l.Errors()
}

// Errors returns the lexical errors collected so far, in source order.
func (l *Lexer) Errors() []error {
	return l.errors
}

// readChar advances to the next rune, keeping line and column in step.
// The line counter moves when we step past a newline, so the newline itself
// belongs to the line it ends.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = eof
		return
	}

	r, width := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += width
	l.column++
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) addError(line int, format string, args ...any) {
	l.errors = append(l.errors, &Error{Line: line, Message: fmt.Sprintf(format, args...)})
}

// NextToken returns the next token. Comments, whitespace and characters
// that cannot start a token are skipped; the latter are recorded as errors.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()

		startPos := l.position
		startLine := l.line
		startCol := l.column

		switch l.ch {
		case eof:
			return token.Token{Type: token.TokenEOF, Lexeme: "", Line: startLine, Column: startCol}
		case '(':
			return l.single(token.TokenLParen, startLine, startCol)
		case ')':
			return l.single(token.TokenRParen, startLine, startCol)
		case '{':
			return l.single(token.TokenLBrace, startLine, startCol)
		case '}':
			return l.single(token.TokenRBrace, startLine, startCol)
		case ',':
			return l.single(token.TokenComma, startLine, startCol)
		case '.':
			return l.single(token.TokenDot, startLine, startCol)
		case '-':
			return l.single(token.TokenMinus, startLine, startCol)
		case '+':
			return l.single(token.TokenPlus, startLine, startCol)
		case ';':
			return l.single(token.TokenSemicolon, startLine, startCol)
		case '*':
			return l.single(token.TokenAsterisk, startLine, startCol)
		case '!':
			return l.either('=', token.TokenBangEqual, token.TokenBang, startLine, startCol)
		case '=':
			return l.either('=', token.TokenEqualEqual, token.TokenAssign, startLine, startCol)
		case '<':
			return l.either('=', token.TokenLessEqual, token.TokenLess, startLine, startCol)
		case '>':
			return l.either('=', token.TokenGreaterEqual, token.TokenGreater, startLine, startCol)
		case '/':
			if l.peekChar() == '/' {
				l.readComment()
				continue
			}
			return l.single(token.TokenSlash, startLine, startCol)
		case '"':
			tok, ok := l.readString(startLine, startCol)
			if !ok {
				continue
			}
			return tok
		default:
			if isLetter(l.ch) {
				ident := l.readIdentifier()
				return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Line: startLine, Column: startCol}
			}
			if isDigit(l.ch) {
				return l.readNumber(startLine, startCol)
			}
			l.addError(startLine, "Unexpected character '%s'.", printable(l.input[startPos:l.readPosition]))
			l.readChar()
		}
	}
}

// single emits a one-character token for the current char and consumes it.
func (l *Lexer) single(tokenType token.TokenType, line, col int) token.Token {
	tok := token.Token{Type: tokenType, Lexeme: string(l.ch), Line: line, Column: col}
	l.readChar()
	return tok
}

// either emits the two-character token if the next char is second,
// otherwise the one-character variant.
func (l *Lexer) either(second rune, two, one token.TokenType, line, col int) token.Token {
	if l.peekChar() != second {
		return l.single(one, line, col)
	}
	lexeme := string(l.ch) + string(second)
	l.readChar()
	l.readChar()
	return token.Token{Type: two, Lexeme: lexeme, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\n' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readComment() {
	for l.ch != '\n' && l.ch != eof {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readString consumes a string literal. Strings may span lines. An
// unterminated string is reported at the line it started on and produces no
// token.
func (l *Lexer) readString(startLine, startCol int) (token.Token, bool) {
	start := l.position
	l.readChar() // Consume opening "

	for l.ch != '"' && l.ch != eof {
		l.readChar()
	}

	if l.ch == eof {
		l.addError(startLine, MsgUnterminatedString)
		return token.Token{}, false
	}

	l.readChar() // Consume closing "
	lexeme := l.input[start:l.position]
	return token.Token{
		Type:    token.TokenString,
		Lexeme:  lexeme,
		Literal: lexeme[1 : len(lexeme)-1],
		Line:    startLine,
		Column:  startCol,
	}, true
}

// readNumber consumes digits with an optional fractional part. A '.' that
// is not followed by a digit is left for the next token.
func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // Consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lexeme := l.input[start:l.position]
	val, err := strconv.ParseFloat(lexeme, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		l.addError(startLine, "Invalid number literal '%s'.", lexeme)
	}
	return token.Token{Type: token.TokenNumber, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
}

// printable returns ch as is, or with its bytes escaped (e.g. \xff) when
// it is not valid UTF-8.
func printable(ch string) string {
	if utf8.ValidString(ch) {
		return ch
	}
	q := strconv.Quote(ch)
	return q[1 : len(q)-1]
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
