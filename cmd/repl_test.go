package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"

	"github.com/arnavsurve/glox/internal/compiler"
	"github.com/arnavsurve/glox/internal/config"
)

// scriptedReader feeds canned lines to the prompt loop. An entry that is an
// error is returned instead of a line.
type scriptedReader struct {
	inputs  []any
	prompts []string
	history []string
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.inputs) == 0 {
		return "", io.EOF
	}
	next := r.inputs[0]
	r.inputs = r.inputs[1:]
	if err, ok := next.(error); ok {
		return "", err
	}
	return next.(string), nil
}

func (r *scriptedReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func runRepl(t *testing.T, inputs ...any) (*scriptedReader, string, string) {
	t.Helper()
	cfg = config.Default()

	var stdout, stderr bytes.Buffer
	r := &scriptedReader{inputs: inputs}
	session := compiler.NewSession(&stdout, &stderr)
	if err := replLoop(r, session, &stdout); err != nil {
		t.Fatalf("replLoop: %v", err)
	}
	return r, stdout.String(), stderr.String()
}

func TestReplKeepsStateAcrossLines(t *testing.T) {
	r, stdout, stderr := runRepl(t,
		"var a = 1;",
		"{",
		"  print a;",
		"}",
		"a = a + 1;",
		"print a;",
		":quit",
		"print \"never\";",
	)

	if stderr != "" {
		t.Errorf("unexpected diagnostics: %q", stderr)
	}
	if stdout != "1\n2\n" {
		t.Errorf("stdout expected=%q, got=%q", "1\n2\n", stdout)
	}

	expectedPrompts := []string{"> ", "> ", "... ", "... ", "> ", "> ", "> "}
	if strings.Join(r.prompts, "|") != strings.Join(expectedPrompts, "|") {
		t.Errorf("prompts expected=%q, got=%q", expectedPrompts, r.prompts)
	}

	// Multi-line input is stored as one history entry
	if len(r.history) != 5 || r.history[1] != "{   print a; }" {
		t.Errorf("history got=%q", r.history)
	}
}

func TestReplReportsErrorsAndContinues(t *testing.T) {
	_, stdout, stderr := runRepl(t,
		"print nope;",
		"print 1 +;",
		"print 2;",
	)

	if !strings.Contains(stderr, "Undefined variable 'nope'.\n[line 1]") {
		t.Errorf("missing runtime error in %q", stderr)
	}
	if !strings.Contains(stderr, "[line 1] Error at ';': Expect expression.") {
		t.Errorf("missing syntax error in %q", stderr)
	}
	// EOF ends the session with a newline after the output
	if stdout != "2\n\n" {
		t.Errorf("stdout expected=%q, got=%q", "2\n\n", stdout)
	}
}

func TestReplAbortDropsPendingInput(t *testing.T) {
	_, stdout, stderr := runRepl(t,
		"{ print 1;",
		liner.ErrPromptAborted,
		"print 3;",
	)

	if stderr != "" {
		t.Errorf("unexpected diagnostics: %q", stderr)
	}
	if stdout != "3\n\n" {
		t.Errorf("stdout expected=%q, got=%q", "3\n\n", stdout)
	}
}

func TestReplEOFRunsPendingInput(t *testing.T) {
	_, _, stderr := runRepl(t, "{ print 1;")

	if stderr != "[line 1] Error at end: Expect '}' after block.\n" {
		t.Errorf("stderr got=%q", stderr)
	}
}

func TestReplCommands(t *testing.T) {
	_, stdout, _ := runRepl(t,
		"var b = \"two\";",
		"var a = 1;",
		"var c;",
		":env",
		":nope",
		"",
		":EXIT",
	)

	expected := "a = 1 (number)\nb = two (string)\nc = nil (nil)\n" +
		"unknown command. Type :quit to exit or :env to list variables.\n"
	if stdout != expected {
		t.Errorf("stdout expected=%q, got=%q", expected, stdout)
	}
}

func TestReadStatement(t *testing.T) {
	r := &scriptedReader{inputs: []any{`print "a`, `b";`}}

	src, ok, err := readStatement(r, "$ ", "+ ")
	if err != nil || !ok {
		t.Fatalf("readStatement: ok=%t err=%v", ok, err)
	}
	if src != "print \"a\nb\";" {
		t.Errorf("src expected=%q, got=%q", "print \"a\nb\";", src)
	}
	if strings.Join(r.prompts, "|") != "$ |+ " {
		t.Errorf("prompts got=%q", r.prompts)
	}

	_, ok, err = readStatement(r, "$ ", "+ ")
	if err != nil || ok {
		t.Errorf("at EOF expected ok=false err=nil, got ok=%t err=%v", ok, err)
	}
}
