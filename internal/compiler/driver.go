package compiler

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arnavsurve/glox/internal/compiler/ast"
	"github.com/arnavsurve/glox/internal/compiler/lexer"
	"github.com/arnavsurve/glox/internal/compiler/parser"
	"github.com/arnavsurve/glox/internal/compiler/token"
	"github.com/arnavsurve/glox/internal/diag"
	"github.com/arnavsurve/glox/internal/interpreter"
)

// Result summarizes one run. HadError covers scan and parse errors, which
// prevent execution; HadRuntimeError means execution started and stopped
// early.
type Result struct {
	HadError        bool
	HadRuntimeError bool
}

// Session chains scanner, parser and interpreter. The interpreter (and its
// globals) persists across Run calls; diagnostics are reset per run.
type Session struct {
	Interp   *interpreter.Interpreter
	Reporter *diag.Reporter

	// Trace, when set, receives one progress line per stage.
	Trace io.Writer
	// DumpAST, when set, receives the parsed program before it runs.
	DumpAST io.Writer
}

// NewSession returns a session printing program output to out and
// diagnostics to errOut.
func NewSession(out, errOut io.Writer) *Session {
	return &Session{
		Interp:   interpreter.New(out),
		Reporter: diag.NewReporter(errOut),
	}
}

// RunFile reads path and runs it. The error is non-nil only when the file
// cannot be read; language errors are reported and summarized in Result.
func (s *Session) RunFile(path string) (Result, error) {
	content, err := readSource(path)
	if err != nil {
		return Result{}, err
	}
	return s.Run(content), nil
}

// Run scans, parses and executes src. Execution only starts when scanning
// and parsing were clean.
func (s *Session) Run(src string) Result {
	s.Reporter.Reset()

	s.tracef("↪ scanning %d bytes ...", len(src))
	toks, scanErrs := lexer.Scan(src)
	for _, err := range scanErrs {
		s.Reporter.Error(err)
	}
	if s.Reporter.HadError() {
		return s.result()
	}

	s.tracef("↪ parsing %d tokens ...", len(toks))
	stmts, parseErrs := parser.Parse(toks)
	for _, err := range parseErrs {
		s.Reporter.Error(err)
	}
	if s.Reporter.HadError() {
		return s.result()
	}

	if s.DumpAST != nil {
		for _, stmt := range stmts {
			fmt.Fprintln(s.DumpAST, ast.Dump(stmt))
		}
	}

	s.tracef("↪ running %d statements ...", len(stmts))
	s.Interp.SetTrace(s.Trace)
	if err := s.Interp.Interpret(stmts); err != nil {
		var rtErr *interpreter.RuntimeError
		if errors.As(err, &rtErr) {
			s.Reporter.RuntimeError(rtErr)
		} else {
			s.Reporter.RuntimeError(err)
		}
	}
	return s.result()
}

func (s *Session) result() Result {
	return Result{HadError: s.Reporter.HadError(), HadRuntimeError: s.Reporter.HadRuntimeError()}
}

func (s *Session) tracef(format string, args ...any) {
	if s.Trace != nil {
		fmt.Fprintf(s.Trace, format+"\n", args...)
	}
}

// Tokens scans src without parsing it.
func Tokens(src string) ([]token.Token, []error) {
	return lexer.Scan(src)
}

// ParseSource scans and parses src. Scan errors are returned before any
// parsing is attempted.
func ParseSource(src string) ([]ast.Statement, []error) {
	toks, errs := lexer.Scan(src)
	if len(errs) > 0 {
		return nil, errs
	}
	return parser.Parse(toks)
}

// NeedsMoreInput reports whether src stops in the middle of a block or a
// string, so an interactive prompt should keep reading lines.
func NeedsMoreInput(src string) bool {
	toks, errs := lexer.Scan(src)
	for _, err := range errs {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) && lexErr.Message == lexer.MsgUnterminatedString {
			return true
		}
	}
	depth := 0
	for _, tok := range toks {
		switch tok.Type {
		case token.TokenLBrace:
			depth++
		case token.TokenRBrace:
			depth--
		}
	}
	return depth > 0
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}
