package interpreter

import (
	"errors"
	"fmt"
	"io"

	"github.com/arnavsurve/glox/internal/compiler/ast"
	"github.com/arnavsurve/glox/internal/compiler/token"
	"github.com/arnavsurve/glox/internal/runtime/scope"
	"github.com/arnavsurve/glox/internal/runtime/value"
)

// RuntimeError is a failure while evaluating a statement. Token is the
// operator or name that triggered it and locates the error for reporting.
type RuntimeError struct {
	Token   token.Token
	Message string
	Err     error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func newRuntimeError(tok token.Token, msg string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: msg}
}

// Interpreter walks statements and evaluates them directly. Its global scope
// lives as long as the interpreter, so successive Interpret calls (REPL
// lines) see each other's variables.
type Interpreter struct {
	out     io.Writer
	trace   io.Writer
	globals *scope.Scope
	env     *scope.Scope
}

func New(out io.Writer) *Interpreter {
	globals := scope.NewScope(nil)
	return &Interpreter{out: out, globals: globals, env: globals}
}

// SetTrace sends a line per block entry to w. A nil w turns tracing off.
func (in *Interpreter) SetTrace(w io.Writer) {
	in.trace = w
}

// Globals returns the outermost scope.
func (in *Interpreter) Globals() *scope.Scope {
	return in.globals
}

// Interpret executes statements in order. The first runtime error stops
// execution and is returned; statements before it keep their effects.
func (in *Interpreter) Interpret(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := in.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs a single statement in the current scope.
func (in *Interpreter) Execute(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := in.Evaluate(s.Expression)
		return err

	case *ast.PrintStatement:
		v, err := in.Evaluate(s.Value)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(in.out, value.Stringify(v)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil

	case *ast.VarStatement:
		var v value.Value = value.Nil{}
		if s.Initializer != nil {
			var err error
			if v, err = in.Evaluate(s.Initializer); err != nil {
				return err
			}
		}
		in.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.BlockStatement:
		return in.executeBlock(s.Statements, scope.NewScope(in.env))

	default:
		return fmt.Errorf("interpreter: unhandled statement %T", stmt)
	}
}

// executeBlock runs stmts with env as the current scope and puts the
// previous scope back on every return path.
func (in *Interpreter) executeBlock(stmts []ast.Statement, env *scope.Scope) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	if in.trace != nil {
		fmt.Fprintf(in.trace, "↪ entering block at depth %d ...\n", env.Depth())
	}

	for _, stmt := range stmts {
		if err := in.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate computes the value of expr in the current scope.
func (in *Interpreter) Evaluate(expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return value.Number(e.Value), nil
	case *ast.StringLiteral:
		return value.String(e.Value), nil
	case *ast.BoolLiteral:
		return value.Bool(e.Value), nil
	case *ast.NilLiteral:
		return value.Nil{}, nil

	case *ast.GroupedExpression:
		return in.Evaluate(e.Expression)

	case *ast.UnaryExpression:
		return in.evalUnary(e)

	case *ast.BinaryExpression:
		return in.evalBinary(e)

	case *ast.Identifier:
		v, err := in.env.Get(e.Name())
		if err != nil {
			return nil, wrapScopeError(e.Token, err)
		}
		return v, nil

	case *ast.AssignExpression:
		v, err := in.Evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if _, err := in.env.Assign(e.Name.Lexeme, v); err != nil {
			return nil, wrapScopeError(e.Name, err)
		}
		return v, nil

	default:
		return nil, fmt.Errorf("interpreter: unhandled expression %T", expr)
	}
}

func wrapScopeError(tok token.Token, err error) error {
	var undef *scope.UndefinedError
	if errors.As(err, &undef) {
		return &RuntimeError{Token: tok, Message: undef.Error(), Err: err}
	}
	return err
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpression) (value.Value, error) {
	right, err := in.Evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.TokenMinus:
		n, ok := right.(value.Number)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a number")
		}
		return -n, nil
	case token.TokenBang:
		b, ok := right.(value.Bool)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a boolean")
		}
		return !b, nil
	}
	return nil, newRuntimeError(e.Operator, fmt.Sprintf("Unknown unary operator '%s'", e.Operator.Lexeme))
}

// evalBinary evaluates both operands left to right before checking types.
func (in *Interpreter) evalBinary(e *ast.BinaryExpression) (value.Value, error) {
	left, err := in.Evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.Evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	op := e.Operator
	switch op.Type {
	case token.TokenEqualEqual:
		return value.Bool(value.Equal(left, right)), nil
	case token.TokenBangEqual:
		return value.Bool(!value.Equal(left, right)), nil

	case token.TokenPlus:
		switch l := left.(type) {
		case value.Number:
			if r, ok := right.(value.Number); ok {
				return l + r, nil
			}
		case value.String:
			if r, ok := right.(value.String); ok {
				return l + r, nil
			}
		}
		return nil, newRuntimeError(op, "Operands must be both numbers or strings")
	}

	l, r, ok := numberOperands(left, right)
	if !ok {
		return nil, newRuntimeError(op, "Operands must be numbers")
	}

	switch op.Type {
	case token.TokenMinus:
		return l - r, nil
	case token.TokenAsterisk:
		return l * r, nil
	case token.TokenSlash:
		return l / r, nil
	case token.TokenGreater:
		return value.Bool(l > r), nil
	case token.TokenGreaterEqual:
		return value.Bool(l >= r), nil
	case token.TokenLess:
		return value.Bool(l < r), nil
	case token.TokenLessEqual:
		return value.Bool(l <= r), nil
	}
	return nil, newRuntimeError(op, fmt.Sprintf("Unknown binary operator '%s'", op.Lexeme))
}

func numberOperands(left, right value.Value) (value.Number, value.Number, bool) {
	l, lok := left.(value.Number)
	r, rok := right.(value.Number)
	return l, r, lok && rok
}
