package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "GLOX_CONFIG"

// DefaultFileName is looked up in the user's home directory.
const DefaultFileName = ".glox.yml"

// Config is the decoded form of .glox.yml.
type Config struct {
	Path string `yaml:"-"`
	REPL REPL   `yaml:"repl"`
	Run  Run    `yaml:"run"`
}

// REPL configures the interactive prompt.
type REPL struct {
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
	HistoryFile  string `yaml:"history_file"`
	Banner       bool   `yaml:"banner"`
}

// Run configures script execution.
type Run struct {
	DumpAST bool `yaml:"dump_ast"`
	Verbose bool `yaml:"verbose"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

func Default() *Config {
	return &Config{
		REPL: REPL{
			Prompt:       "> ",
			Continuation: "... ",
			HistoryFile:  "~/.glox_history",
			Banner:       true,
		},
	}
}

// Load reads the config at path. Fields missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Decode parses YAML from r on top of Default and validates the result.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	var issues []string
	if c.REPL.Prompt == "" {
		issues = append(issues, "repl.prompt must not be empty")
	}
	if strings.ContainsAny(c.REPL.Prompt, "\n\r") {
		issues = append(issues, "repl.prompt must be a single line")
	}
	if strings.ContainsAny(c.REPL.Continuation, "\n\r") {
		issues = append(issues, "repl.continuation must be a single line")
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// Resolve picks the config file to use: explicit wins, then $GLOX_CONFIG,
// then ~/.glox.yml if it exists. With none of those it returns Default().
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if env := os.Getenv(EnvVar); env != "" {
		return Load(env)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	candidate := filepath.Join(home, DefaultFileName)
	if _, err := os.Stat(candidate); err != nil {
		return Default(), nil
	}
	return Load(candidate)
}

// HistoryPath expands a leading "~/" in the history file setting. An empty
// setting disables history.
func (c *Config) HistoryPath() string {
	p := c.REPL.HistoryFile
	if p == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, rest)
	}
	return p
}
