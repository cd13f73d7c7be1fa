package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavsurve/glox/internal/config"
)

// execute runs the root command with args and isolated config lookup.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvVar, "")

	configPath, verbose, dumpAST = "", false, false
	cfg = config.Default()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := Execute()
	return stdout.String(), stderr.String(), err
}

func script(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lox")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got=%T (%v)", err, err)
	}
	return exitErr.Code
}

func TestExitCodes(t *testing.T) {
	good := script(t, "print 1 + 1;")
	syntax := script(t, "print ;")
	runtime := script(t, "print -nil;")
	missing := filepath.Join(t.TempDir(), "missing.lox")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"run ok", []string{"run", good}, 0},
		{"root ok", []string{good}, 0},
		{"syntax error", []string{"run", syntax}, ExitDataErr},
		{"too many args", []string{good, "extra"}, ExitUsage},
		{"runtime error", []string{runtime}, ExitRuntime},
		{"missing file", []string{"run", missing}, ExitIOErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if got := exitCode(t, err); got != tt.code {
				t.Errorf("exit code expected=%d, got=%d (%v)", tt.code, got, err)
			}
		})
	}
}

func TestRunOutput(t *testing.T) {
	path := script(t, "var a = \"x\";\nprint a + a;\nprint -a;")

	stdout, stderr, err := execute(t, "run", path)
	if exitCode(t, err) != ExitRuntime {
		t.Fatalf("expected runtime exit, got=%v", err)
	}
	if stdout != "xx\n" {
		t.Errorf("stdout expected=%q, got=%q", "xx\n", stdout)
	}
	if stderr != "Operand must be a number\n[line 3]\n" {
		t.Errorf("stderr got=%q", stderr)
	}
}

func TestDumpASTFlag(t *testing.T) {
	path := script(t, "print 1 + 2;")

	stdout, _, err := execute(t, "--dump-ast", "run", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "(print (+ 1 2))\n3\n" {
		t.Errorf("stdout got=%q", stdout)
	}
}

func TestBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(cfgPath, []byte("repl:\n  prompt: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "--config", cfgPath, "run", script(t, "print 1;"))
	if got := exitCode(t, err); got != ExitConfig {
		t.Errorf("exit code expected=%d, got=%d (%v)", ExitConfig, got, err)
	}
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected the validation error to be wrapped, got=%v", err)
	}
}

func TestTokensCommand(t *testing.T) {
	stdout, _, err := execute(t, "tokens", script(t, "print \"hi\";"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "1:1 PRINT print nil\n1:7 STRING \"hi\" hi\n1:11 SEMICOLON ; nil\n1:11 EOF  nil\n"
	if stdout != expected {
		t.Errorf("stdout expected=%q, got=%q", expected, stdout)
	}

	_, stderr, err := execute(t, "tokens", script(t, "@"))
	if exitCode(t, err) != ExitDataErr {
		t.Errorf("expected data error exit, got=%v", err)
	}
	if !strings.Contains(stderr, "Unexpected character '@'.") {
		t.Errorf("stderr got=%q", stderr)
	}
}

func TestAstCommand(t *testing.T) {
	stdout, _, err := execute(t, "ast", script(t, "var a = -1;\n{ print a == 1; }"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "(var a (- 1))\n(block (print (== a 1)))\n" {
		t.Errorf("stdout got=%q", stdout)
	}
}

func TestInitScaffoldsRunnableScript(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")

	if _, _, err := execute(t, "init", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, name := range []string{"hello.lox", ".glox.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}

	stdout, stderr, err := execute(t, "--config", filepath.Join(dir, ".glox.yml"), "run", filepath.Join(dir, "hello.lox"))
	if err != nil {
		t.Fatalf("run scaffolded script: %v\n%s", err, stderr)
	}
	if stdout != "hello, demo\nshadowed\nhello\n" {
		t.Errorf("stdout got=%q", stdout)
	}

	// A second init into the same directory refuses to overwrite it
	if _, _, err := execute(t, "init", dir); err == nil {
		t.Errorf("expected an error for an existing directory")
	}
}

func TestInitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	existing := "print \"mine\";\n"
	if err := os.WriteFile("hello.lox", []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err = execute(t, "init")
	if err == nil || !strings.Contains(err.Error(), "hello.lox already exists") {
		t.Fatalf("expected an already-exists error, got=%v", err)
	}

	got, err := os.ReadFile("hello.lox")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != existing {
		t.Errorf("hello.lox was overwritten: %q", got)
	}
	// Nothing is written when any target exists
	if _, err := os.Stat(".glox.yml"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf(".glox.yml should not have been created, stat err=%v", err)
	}
}
