package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/glox/internal/compiler"
	"github.com/arnavsurve/glox/internal/config"
)

var (
	configPath string
	verbose    bool
	dumpAST    bool

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "glox [script]",
	Short: "glox is a tree-walking Lox interpreter",
	Long: `glox scans, parses and evaluates Lox scripts.

With no arguments it starts an interactive prompt; with one it runs the script.

Commands:
  run     Run a script
  repl    Start the interactive prompt
  tokens  Print the tokens of a script
  ast     Print the syntax tree of a script
  init    Scaffold a new script directory
`,
	Args:              usageArgs,
	PersistentPreRunE: loadConfig,
	SilenceErrors:     true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return replRun(cmd, args)
		}
		return runScript(cmd, args[0])
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $GLOX_CONFIG or ~/.glox.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress for each stage to stderr")
	rootCmd.PersistentFlags().BoolVar(&dumpAST, "dump-ast", false, "print the syntax tree before running")

	rootCmd.AddCommand(RunCmd, ReplCmd, TokensCmd, AstCmd, InitCmd)
}

// usageArgs accepts at most one script.
func usageArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return &ExitError{Code: ExitUsage, Err: fmt.Errorf("Usage: %s", cmd.UseLine())}
	}
	return nil
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Resolve(configPath)
	if err != nil {
		return &ExitError{Code: ExitConfig, Err: err}
	}
	cfg = loaded
	return nil
}

// newSession wires a compiler session to the command's writers, honoring
// --verbose and --dump-ast as well as their config counterparts.
func newSession(cmd *cobra.Command) *compiler.Session {
	s := compiler.NewSession(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if verbose || cfg.Run.Verbose {
		s.Trace = cmd.ErrOrStderr()
	}
	if dumpAST || cfg.Run.DumpAST {
		s.DumpAST = cmd.OutOrStdout()
	}
	return s
}

func logf(w io.Writer, format string, args ...any) {
	if verbose || cfg.Run.Verbose {
		fmt.Fprintf(w, format+"\n", args...)
	}
}
