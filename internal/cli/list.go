package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Long: `List all tasks known to the external CLI.

The listing is printed verbatim; use --json to get the invocation
record instead.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			rec, err := env.Engine.List(cmd.Context())
			if err != nil {
				return err
			}
			return emitRecord(cmd, env, rec)
		},
	}
}
