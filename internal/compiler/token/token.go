package token

import "fmt"

type TokenType string

const (
	// Single character tokens
	TokenLParen    TokenType = "LPAREN"    // (
	TokenRParen    TokenType = "RPAREN"    // )
	TokenLBrace    TokenType = "LBRACE"    // {
	TokenRBrace    TokenType = "RBRACE"    // }
	TokenComma     TokenType = "COMMA"     // ,
	TokenDot       TokenType = "DOT"       // .
	TokenMinus     TokenType = "MINUS"     // -
	TokenPlus      TokenType = "PLUS"      // +
	TokenSemicolon TokenType = "SEMICOLON" // ;
	TokenSlash     TokenType = "SLASH"     // /
	TokenAsterisk  TokenType = "ASTERISK"  // *

	// One or two character tokens
	TokenBang         TokenType = "BANG"          // !
	TokenBangEqual    TokenType = "BANG_EQUAL"    // !=
	TokenAssign       TokenType = "ASSIGN"        // =
	TokenEqualEqual   TokenType = "EQUAL_EQUAL"   // ==
	TokenGreater      TokenType = "GREATER"       // >
	TokenGreaterEqual TokenType = "GREATER_EQUAL" // >=
	TokenLess         TokenType = "LESS"          // <
	TokenLessEqual    TokenType = "LESS_EQUAL"    // <=

	// Literals & Identifiers
	TokenIdent  TokenType = "IDENT"  // Identifier (e.g. variable name)
	TokenString TokenType = "STRING" // "..."
	TokenNumber TokenType = "NUMBER" // 43, 4.5

	// Keywords
	TokenAnd    TokenType = "AND"
	TokenClass  TokenType = "CLASS"
	TokenElse   TokenType = "ELSE"
	TokenFalse  TokenType = "FALSE"
	TokenFor    TokenType = "FOR"
	TokenFun    TokenType = "FUN"
	TokenIf     TokenType = "IF"
	TokenNil    TokenType = "NIL"
	TokenOr     TokenType = "OR"
	TokenPrint  TokenType = "PRINT"
	TokenReturn TokenType = "RETURN"
	TokenSuper  TokenType = "SUPER"
	TokenThis   TokenType = "THIS"
	TokenTrue   TokenType = "TRUE"
	TokenVar    TokenType = "VAR"
	TokenWhile  TokenType = "WHILE"

	// Special
	TokenEOF TokenType = "EOF"
)

// Token is a classified, located piece of source text. Literal holds a
// float64 for TokenNumber, a string for TokenString and nil for everything
// else.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
	Column  int
}

func (t Token) String() string {
	lit := "nil"
	switch v := t.Literal.(type) {
	case string:
		lit = v
	case float64:
		lit = fmt.Sprint(v)
	}
	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, lit)
}

// keywords maps reserved words to their token types.
var keywords = map[string]TokenType{
	"and":    TokenAnd,
	"class":  TokenClass,
	"else":   TokenElse,
	"false":  TokenFalse,
	"for":    TokenFor,
	"fun":    TokenFun,
	"if":     TokenIf,
	"nil":    TokenNil,
	"or":     TokenOr,
	"print":  TokenPrint,
	"return": TokenReturn,
	"super":  TokenSuper,
	"this":   TokenThis,
	"true":   TokenTrue,
	"var":    TokenVar,
	"while":  TokenWhile,
}

// LookupIdent returns the keyword type for ident, or TokenIdent if ident is
// not reserved. Lookup is case-sensitive.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return TokenIdent
}

// StartsStatement reports whether a token of this type begins a statement.
// The parser resynchronizes on these after a syntax error.
func (t TokenType) StartsStatement() bool {
	switch t {
	case TokenClass, TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
		return true
	default:
		return false
	}
}
