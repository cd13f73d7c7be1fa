// Package diag collects and prints diagnostics for a single run. It takes
// the place of a process-wide "had error" flag: each run owns a Reporter and
// asks it afterwards whether anything failed.
package diag

import (
	"fmt"
	"io"
)

// Format renders a compile-time diagnostic. where is "", " at end" or
// " at '<lexeme>'".
func Format(line int, where, message string) string {
	return fmt.Sprintf("[line %d] Error%s: %s", line, where, message)
}

type Reporter struct {
	w               io.Writer
	hadError        bool
	hadRuntimeError bool
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Error reports a scan or parse error.
func (r *Reporter) Error(err error) {
	r.hadError = true
	r.print(err)
}

// RuntimeError reports an error raised while executing statements.
func (r *Reporter) RuntimeError(err error) {
	r.hadRuntimeError = true
	r.print(err)
}

func (r *Reporter) print(err error) {
	if r.w != nil {
		fmt.Fprintln(r.w, err)
	}
}

// HadError reports whether a scan or parse error was seen since the last
// Reset.
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError reports whether a runtime error was seen since the last
// Reset.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Reset clears the status flags. The REPL calls it between lines.
func (r *Reporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}
