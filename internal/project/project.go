// Package project locates and validates the Content Creator project
// that the wrapper drives.
//
// The project root is the nearest ancestor directory containing a
// package.json file. That manifest is parsed tolerantly (comments and
// trailing commas allowed) with github.com/tidwall/jsonc before being
// decoded by encoding/json, and its npm scripts are checked against the
// CLI scripts the wrapper expects to invoke.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/jsonc"

	"github.com/oychao1988/content-creator/internal/config"
)

// Operations lists the external CLI subcommands driven by the wrapper.
var Operations = []string{"create", "status", "list", "result", "retry", "cancel"}

// Manifest represents the fields of package.json the wrapper cares
// about; other fields are silently ignored during parsing.
type Manifest struct {
	Name    string            `json:"name"`
	Scripts map[string]string `json:"scripts"`
}

// Project describes a located Content Creator project.
type Project struct {
	Root     string
	Manifest *Manifest
}

// Find walks upward from dir to the package.json marker and loads the
// manifest. A missing marker is the precondition failure: the returned
// error names the starting directory and no command may be invoked.
func Find(dir string) (*Project, error) {
	root, err := config.FindProjectRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("no %s found in %s or any parent: run from the Content Creator project root", config.MarkerFile, dir)
	}

	m, err := LoadManifest(filepath.Join(root, config.MarkerFile))
	if err != nil {
		return nil, err
	}
	return &Project{Root: root, Manifest: m}, nil
}

// LoadManifest reads and parses a package.json file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

// MissingScripts returns the expected CLI scripts the manifest does not
// declare, sorted for stable output. prefix is the npm script namespace
// (e.g. "cli" expects "cli:create"). With an empty prefix the external
// command is a standalone binary and the manifest only serves as the
// root marker, so nothing is reported missing.
func (m *Manifest) MissingScripts(prefix string) []string {
	if prefix == "" {
		return nil
	}

	var missing []string
	for _, op := range Operations {
		script := prefix + ":" + op
		if _, ok := m.Scripts[script]; !ok {
			missing = append(missing, script)
		}
	}
	sort.Strings(missing)
	return missing
}
