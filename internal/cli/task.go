package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oychao1988/content-creator/internal/report"
)

// newTaskCommand builds one of the id-taking commands (status, result,
// retry, cancel); they differ only in name, help text, and engine call.
func newTaskCommand(use, short, long string, op func(e *env, ctx context.Context, id string) (*report.Record, error)) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			rec, err := op(env, cmd.Context(), id)
			if err != nil {
				return err
			}
			return emitRecord(cmd, env, rec)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Task id (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	return newTaskCommand("status", "Query the state of a task",
		`Query the state of a task by id.

The external CLI's output is printed verbatim; this wrapper does not
interpret it.`,
		func(e *env, ctx context.Context, id string) (*report.Record, error) {
			return e.Engine.Status(ctx, id)
		})
}

// NewResultCommand creates the "result" cobra command.
func NewResultCommand() *cobra.Command {
	return newTaskCommand("result", "Fetch the generated content of a completed task",
		`Fetch the generated content of a completed task by id.`,
		func(e *env, ctx context.Context, id string) (*report.Record, error) {
			return e.Engine.Result(ctx, id)
		})
}

// NewRetryCommand creates the "retry" cobra command.
func NewRetryCommand() *cobra.Command {
	return newTaskCommand("retry", "Re-queue a failed task",
		`Re-queue a failed task by id. Which tasks are retryable is up to
the external CLI.`,
		func(e *env, ctx context.Context, id string) (*report.Record, error) {
			return e.Engine.Retry(ctx, id)
		})
}

// NewCancelCommand creates the "cancel" cobra command.
func NewCancelCommand() *cobra.Command {
	return newTaskCommand("cancel", "Cancel a pending or running task",
		`Cancel a pending or running task by id.`,
		func(e *env, ctx context.Context, id string) (*report.Record, error) {
			return e.Engine.Cancel(ctx, id)
		})
}
