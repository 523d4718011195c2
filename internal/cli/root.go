// Package cli implements the cobra-based CLI commands for the Content
// Creator wrapper.
//
// Each subcommand (create, status, list, result, retry, cancel,
// workflow, history, mcp) is defined in its own file within this
// package. This file defines the root command, the global flags, and
// the exit-code handling.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	contentcreator "github.com/oychao1988/content-creator"
)

// Global flag variables shared across all subcommands, bound to cobra
// persistent flags on the root command.
var (
	// jsonOutput switches command output to the JSON invocation record.
	jsonOutput bool

	// verbose logs each external command line to stderr before running it.
	verbose bool
)

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "content-creator",
		Short: "Drive the Content Creator CLI from Go",
		Long: `content-creator wraps the Content Creator command-line tool of the
current project. It builds the tool's command lines, executes them
without a shell, and records every invocation for later inspection.

Run it from inside a Content Creator project (the directory tree
containing package.json).`,

		SilenceUsage:  true,
		SilenceErrors: true,

		Version: contentcreator.Version,
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the invocation record as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log external command lines to stderr")

	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewResultCommand())
	rootCmd.AddCommand(NewRetryCommand())
	rootCmd.AddCommand(NewCancelCommand())
	rootCmd.AddCommand(NewWorkflowCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewMCPCommand())

	return rootCmd
}

// ExitCodeError propagates the external CLI's exit code to the wrapper
// process, so the wrapper composes in scripts the same way the wrapped
// tool does.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// Execute runs the root command and translates errors into exit codes.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		// The failure banner was already printed by the command.
		if exitErr.Code > 0 {
			os.Exit(exitErr.Code)
		}
		// Start failures carry the -1 sentinel; report them as 1.
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "content-creator: %v\n", err)
	os.Exit(1)
}
