package cli

import (
	"github.com/spf13/cobra"

	"github.com/oychao1988/content-creator/internal/workflow"
)

// createFlags holds the flag values for the create command.
type createFlags struct {
	topic        string
	requirements string
	keywords     string
	minWords     int
	maxWords     int
	mode         string
}

// NewCreateCommand creates the "create" cobra command.
func NewCreateCommand() *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a content-generation task",
		Long: `Create a content-generation task through the external CLI.

In sync mode the command blocks until the content has been generated
and prints it. In async mode it returns immediately; track the task
with "content-creator status --id <task-id>".

Examples:
  content-creator create --topic "AI 技术的发展趋势" --keywords "AI,人工智能"
  content-creator create --topic "Web 开发的最佳实践" --mode async --min-words 800`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			rec, err := env.Engine.Create(cmd.Context(), workflow.TaskSpec{
				Topic:        flags.topic,
				Requirements: flags.requirements,
				Keywords:     flags.keywords,
				MinWords:     flags.minWords,
				MaxWords:     flags.maxWords,
				Mode:         flags.mode,
			})
			if err != nil {
				return err
			}
			return emitRecord(cmd, env, rec)
		},
	}

	cmd.Flags().StringVar(&flags.topic, "topic", "", "Subject of the content to generate (required)")
	cmd.Flags().StringVar(&flags.requirements, "requirements", "", "Free-form requirements for the content")
	cmd.Flags().StringVar(&flags.keywords, "keywords", "", "Comma-separated keywords")
	cmd.Flags().IntVar(&flags.minWords, "min-words", 0, "Minimum word count (default from config)")
	cmd.Flags().IntVar(&flags.maxWords, "max-words", 0, "Maximum word count (default from config)")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "Execution mode: sync or async (default from config)")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}
