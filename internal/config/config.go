// Package config loads and validates the optional .content-creator YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the project root.
const FileName = ".content-creator"

// MarkerFile identifies the Content Creator project root.
const MarkerFile = "package.json"

// Default values for runner and task configuration.
const (
	DefaultTimeout      = 10 * time.Minute
	DefaultMaxOutput    = 1 << 20 // 1 MB
	DefaultCLICommand   = "npm run"
	DefaultScriptPrefix = "cli"
	DefaultMinWords     = 500
	DefaultMaxWords     = 1000
	DefaultMode         = "sync"
)

// Config holds the parsed .content-creator configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version      int            `yaml:"version"`
	RawTimeout   string         `yaml:"timeout"`    // e.g. "10m", "30s"
	RawMaxOutput int            `yaml:"max_output"` // bytes
	CLI          CLIConfig      `yaml:"cli"`
	Defaults     DefaultsConfig `yaml:"defaults"`
}

// CLIConfig controls how the external Content Creator CLI is invoked.
type CLIConfig struct {
	// Command is the invocation prefix, e.g. "npm run" or a binary path.
	Command string `yaml:"command"`
	// ScriptPrefix is the npm script namespace, e.g. "cli" for cli:create.
	// An empty prefix invokes bare subcommands (create, status, ...).
	ScriptPrefix string `yaml:"script_prefix"`
}

// DefaultsConfig holds default task parameters applied when the caller
// leaves them unset.
type DefaultsConfig struct {
	MinWords int    `yaml:"min_words"`
	MaxWords int    `yaml:"max_words"`
	Mode     string `yaml:"mode"` // sync or async
}

// Timeout returns the configured timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultTimeout
}

// MaxOutputBytes returns the configured max output size or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// CLICommand returns the configured invocation prefix or the default.
func (c *Config) CLICommand() string {
	if c.CLI.Command != "" {
		return c.CLI.Command
	}
	return DefaultCLICommand
}

// ScriptPrefix returns the configured npm script namespace or the
// default. The literal value "none" disables the namespace, for
// external CLIs that are standalone binaries rather than npm scripts.
func (c *Config) ScriptPrefix() string {
	switch c.CLI.ScriptPrefix {
	case "":
		return DefaultScriptPrefix
	case "none":
		return ""
	}
	return c.CLI.ScriptPrefix
}

// MinWords returns the default minimum word count for created tasks.
func (c *Config) MinWords() int {
	if c.Defaults.MinWords > 0 {
		return c.Defaults.MinWords
	}
	return DefaultMinWords
}

// MaxWords returns the default maximum word count for created tasks.
func (c *Config) MaxWords() int {
	if c.Defaults.MaxWords > 0 {
		return c.Defaults.MaxWords
	}
	return DefaultMaxWords
}

// Mode returns the default execution mode for created tasks.
func (c *Config) Mode() string {
	if c.Defaults.Mode != "" {
		return c.Defaults.Mode
	}
	return DefaultMode
}

// LoadResult holds the parsed config and the discovered project root.
type LoadResult struct {
	Config *Config
	Root   string // directory containing package.json; falls back to workspace
}

// Load reads the .content-creator file from the project root.
// The project root is discovered by walking upward from workspace
// looking for package.json. If no .content-creator file exists, a
// default Config is returned.
func Load(workspace string) (*LoadResult, error) {
	root, err := FindProjectRoot(workspace)
	if err != nil {
		// No package.json found; use workspace as root.
		root = workspace
	}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Config: &Config{}, Root: root}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &LoadResult{Config: cfg, Root: root}, nil
}

// FindProjectRoot walks upward from dir looking for a directory
// containing the package.json marker file.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, MarkerFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found", MarkerFile)
		}
		dir = parent
	}
}
