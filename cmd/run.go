package cmd

import (
	"github.com/spf13/cobra"
)

// run: execute a script file
var RunCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a Lox script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(cmd, args[0])
	},
}

// runScript runs path and maps the outcome to an exit status: 65 for scan
// or parse errors, 70 for a runtime error, 74 if the file can't be read.
func runScript(cmd *cobra.Command, path string) error {
	logf(cmd.ErrOrStderr(), "↪ running %q ...", path)

	session := newSession(cmd)
	res, err := session.RunFile(path)
	if err != nil {
		return &ExitError{Code: ExitIOErr, Err: err}
	}

	switch {
	case res.HadError:
		return &ExitError{Code: ExitDataErr}
	case res.HadRuntimeError:
		return &ExitError{Code: ExitRuntime}
	}
	return nil
}
