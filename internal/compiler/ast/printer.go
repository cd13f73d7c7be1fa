package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders an expression in fully parenthesized prefix form, e.g.
// "(* (- 123) (group 45.67))". It exists to make tree shape visible.
func Print(expr Expression) string {
	switch e := expr.(type) {
	case *NumberLiteral:
		return strconv.FormatFloat(e.Value, 'f', -1, 64)
	case *StringLiteral:
		return strconv.Quote(e.Value)
	case *BoolLiteral:
		return strconv.FormatBool(e.Value)
	case *NilLiteral:
		return "nil"
	case *GroupedExpression:
		return parenthesize("group", e.Expression)
	case *UnaryExpression:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *BinaryExpression:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Identifier:
		return e.Name()
	case *AssignExpression:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case nil:
		return "<nil>"
	default:
		panic(fmt.Sprintf("ast: unhandled expression %T", expr))
	}
}

// Dump renders a statement in the same prefix form as Print. Expression
// statements render as their bare expression.
func Dump(stmt Statement) string {
	switch s := stmt.(type) {
	case *ExpressionStatement:
		return Print(s.Expression)
	case *PrintStatement:
		return parenthesize("print", s.Value)
	case *VarStatement:
		if s.Initializer == nil {
			return "(var " + s.Name.Lexeme + ")"
		}
		return parenthesize("var "+s.Name.Lexeme, s.Initializer)
	case *BlockStatement:
		var out strings.Builder
		out.WriteString("(block")
		for _, inner := range s.Statements {
			out.WriteString(" ")
			out.WriteString(Dump(inner))
		}
		out.WriteString(")")
		return out.String()
	default:
		panic(fmt.Sprintf("ast: unhandled statement %T", stmt))
	}
}

func parenthesize(name string, exprs ...Expression) string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(name)
	for _, e := range exprs {
		out.WriteString(" ")
		out.WriteString(Print(e))
	}
	out.WriteString(")")
	return out.String()
}
