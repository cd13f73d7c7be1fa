package cmd

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/glox/internal/compiler"
	"github.com/arnavsurve/glox/internal/runtime/value"
)

const banner = "glox REPL. Type :quit or press Ctrl-D to exit."

// repl: interactive prompt
var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive prompt",
	Args:  cobra.NoArgs,
	RunE:  replRun,
}

// lineReader is the part of *liner.State the prompt loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func replRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if cfg.REPL.Banner {
		fmt.Fprintln(out, banner)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	return replLoop(ln, newSession(cmd), out)
}

// replLoop reads statements until EOF or :quit and runs each one in the
// same session, so variables survive from line to line. Errors are
// reported and the loop carries on.
func replLoop(r lineReader, session *compiler.Session, out io.Writer) error {
	for {
		src, ok, err := readStatement(r, cfg.REPL.Prompt, cfg.REPL.Continuation)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out)
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		r.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":exit":
				return nil
			case ":env":
				printGlobals(out, session)
			default:
				fmt.Fprintln(out, "unknown command. Type :quit to exit or :env to list variables.")
			}
			continue
		}

		session.Run(src)
	}
}

// readStatement reads one line, then more lines while the input is inside
// an open block or string. ok is false at end of input. Ctrl-C drops the
// pending input and starts over.
func readStatement(r lineReader, prompt, cont string) (src string, ok bool, err error) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := r.Prompt(p)
		switch {
		case errors.Is(err, io.EOF):
			if b.Len() > 0 {
				return b.String(), true, nil
			}
			return "", false, nil
		case errors.Is(err, liner.ErrPromptAborted):
			b.Reset()
			continue
		case err != nil:
			return "", false, fmt.Errorf("reading input: %w", err)
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !compiler.NeedsMoreInput(b.String()) {
			return b.String(), true, nil
		}
	}
}

func printGlobals(out io.Writer, session *compiler.Session) {
	globals := session.Interp.Globals().Values
	for _, name := range slices.Sorted(maps.Keys(globals)) {
		v := globals[name]
		fmt.Fprintf(out, "%s = %s (%s)\n", name, value.Stringify(v), v.Kind())
	}
}
