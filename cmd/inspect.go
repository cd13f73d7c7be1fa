package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/glox/internal/compiler"
	"github.com/arnavsurve/glox/internal/compiler/ast"
)

// tokens: dump the scanner output
var TokensCmd = &cobra.Command{
	Use:   "tokens <script>",
	Short: "Print the tokens of a script, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return &ExitError{Code: ExitIOErr, Err: err}
		}

		toks, errs := compiler.Tokens(string(src))
		for _, tok := range toks {
			fmt.Fprintf(cmd.OutOrStdout(), "%d:%d %s\n", tok.Line, tok.Column, tok)
		}
		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		if len(errs) > 0 {
			return &ExitError{Code: ExitDataErr}
		}
		return nil
	},
}

// ast: dump the parsed program in prefix form
var AstCmd = &cobra.Command{
	Use:   "ast <script>",
	Short: "Print the syntax tree of a script in parenthesized prefix form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return &ExitError{Code: ExitIOErr, Err: err}
		}

		stmts, errs := compiler.ParseSource(string(src))
		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		if len(errs) > 0 {
			return &ExitError{Code: ExitDataErr}
		}
		for _, stmt := range stmts {
			fmt.Fprintln(cmd.OutOrStdout(), ast.Dump(stmt))
		}
		return nil
	},
}
