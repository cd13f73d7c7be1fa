package ast

import (
	"bytes"

	"github.com/arnavsurve/glox/internal/compiler/token"
)

// --- Interfaces ---

// Node is implemented by every expression and statement. The marker methods
// below keep both families closed to this package.
type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// --- Program ---
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// String for Program concatenates the string representations of its statements
func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// --- Statements ---

// ExpressionStatement -> a = 1;
type ExpressionStatement struct {
	Token      token.Token // first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) String() string       { return Dump(es) }

// PrintStatement -> print expr;
type PrintStatement struct {
	Token token.Token // print
	Value Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Lexeme }
func (ps *PrintStatement) String() string       { return Dump(ps) }

// VarStatement -> var name; or var name = expr;
type VarStatement struct {
	Token       token.Token // var
	Name        token.Token
	Initializer Expression // nil when absent
}

func (vs *VarStatement) statementNode()       {}
func (vs *VarStatement) TokenLiteral() string { return vs.Token.Lexeme }
func (vs *VarStatement) String() string       { return Dump(vs) }

// BlockStatement -> { declarations... }
type BlockStatement struct {
	Token      token.Token // {
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) String() string       { return Dump(bs) }

// --- Expressions ---

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NumberLiteral) String() string       { return Print(nl) }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) String() string       { return Print(sl) }

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BoolLiteral) expressionNode()      {}
func (bl *BoolLiteral) TokenLiteral() string { return bl.Token.Lexeme }
func (bl *BoolLiteral) String() string       { return Print(bl) }

type NilLiteral struct {
	Token token.Token
}

func (nl *NilLiteral) expressionNode()      {}
func (nl *NilLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NilLiteral) String() string       { return Print(nl) }

// GroupedExpression -> ( expr )
type GroupedExpression struct {
	Token      token.Token // (
	Expression Expression
}

func (ge *GroupedExpression) expressionNode()      {}
func (ge *GroupedExpression) TokenLiteral() string { return ge.Token.Lexeme }
func (ge *GroupedExpression) String() string       { return Print(ge) }

// UnaryExpression -> -x or !x
type UnaryExpression struct {
	Operator token.Token
	Right    Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Operator.Lexeme }
func (ue *UnaryExpression) String() string       { return Print(ue) }

// BinaryExpression -> left op right
type BinaryExpression struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Operator.Lexeme }
func (be *BinaryExpression) String() string       { return Print(be) }

// Identifier is a variable read.
type Identifier struct {
	Token token.Token
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) String() string       { return Print(i) }

// Name returns the variable name being read.
func (i *Identifier) Name() string { return i.Token.Lexeme }

// AssignExpression -> name = value
type AssignExpression struct {
	Name  token.Token
	Value Expression
}

func (ae *AssignExpression) expressionNode()      {}
func (ae *AssignExpression) TokenLiteral() string { return ae.Name.Lexeme }
func (ae *AssignExpression) String() string       { return Print(ae) }
