package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oychao1988/content-creator/internal/config"
	"github.com/oychao1988/content-creator/internal/project"
	"github.com/oychao1988/content-creator/internal/report"
	"github.com/oychao1988/content-creator/internal/runner"
	"github.com/oychao1988/content-creator/internal/workflow"
)

// runsDir is the per-project directory holding invocation records.
const runsDir = ".content-creator-runs"

// env holds the wired-up dependencies for one command execution.
type env struct {
	Project *project.Project
	Config  *config.Config
	Engine  *workflow.Engine
	Store   report.Store
}

// newEnv locates the project from the working directory, loads the
// config, and builds the engine and the record store. It fails when the
// package.json marker is missing, before any command could run.
func newEnv() (*env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}

	proj, err := project.Find(cwd)
	if err != nil {
		return nil, err
	}

	loaded, err := config.Load(proj.Root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := loaded.Config

	eng := &workflow.Engine{
		Config: cfg,
		Runner: &runner.Runner{
			Workspace: proj.Root,
			Timeout:   cfg.Timeout(),
			MaxOutput: cfg.MaxOutputBytes(),
		},
		Root: proj.Root,
	}
	if verbose {
		eng.Log = log.New(os.Stderr, "content-creator: ", 0)
	}

	store := report.NewLRUStore(5, report.NewDiskStoreAt(filepath.Join(proj.Root, runsDir)))

	return &env{Project: proj, Config: cfg, Engine: eng, Store: store}, nil
}

// emitRecord saves the record and prints it in the selected format.
// A non-zero exit code becomes an ExitCodeError after printing, so the
// wrapper's own exit status mirrors the external tool's.
func emitRecord(cmd *cobra.Command, e *env, rec *report.Record) error {
	// Best effort; an unwritable store must not mask the CLI output.
	_ = e.Store.Save(rec)

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return err
		}
	} else if rec.OK() {
		fmt.Fprint(cmd.OutOrStdout(), rec.Stdout)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "command failed (exit code: %d): %s\n", rec.ExitCode, rec.Command)
		if rec.Stdout != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "stdout: %s\n", rec.Stdout)
		}
		if rec.Stderr != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "stderr: %s\n", rec.Stderr)
		}
	}

	if !rec.OK() {
		return &ExitCodeError{Code: rec.ExitCode}
	}
	return nil
}
