package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
)

//go:embed templates/*
var tplFS embed.FS

// init: scaffold a new script directory
var InitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a directory with a sample script and config",
	Args:  cobra.MaximumNArgs(1),
	RunE:  initRun,
}

func initRun(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) == 1 {
		targetDir = args[0]
	}
	abs, err := filepath.Abs(targetDir)
	if err != nil {
		return err
	}
	name := filepath.Base(abs)

	// A new subdirectory must not already exist
	if targetDir != "." {
		if _, err := os.Stat(targetDir); err == nil {
			return fmt.Errorf("directory %q already exists", targetDir)
		}
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "↪ scaffolding %q ...\n", name)

	data := map[string]string{"Name": name}
	files := map[string]string{
		"templates/hello.lox.tpl": "hello.lox",
		"templates/glox.yml.tpl":  ".glox.yml",
	}
	// Never overwrite an existing script or config
	for _, outName := range files {
		outPath := filepath.Join(targetDir, outName)
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists", outPath)
		}
	}
	for tplPath, outName := range files {
		if err := writeTpl(tplPath, filepath.Join(targetDir, outName), data); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %q initialized! Try: glox --config %s run %s\n",
		name, filepath.Join(targetDir, ".glox.yml"), filepath.Join(targetDir, "hello.lox"))
	return nil
}

// writeTpl loads tplName from tplFS, executes it with data, and writes to outPath
func writeTpl(tplName, outPath string, data any) error {
	t, err := template.ParseFS(tplFS, tplName)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return t.Execute(f, data)
}
