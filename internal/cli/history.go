package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oychao1988/content-creator/internal/report"
)

// NewHistoryCommand creates the "history" cobra command.
func NewHistoryCommand() *cobra.Command {
	var (
		limit  int
		op     string
		taskID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent invocations of the external CLI",
		Long: `Show the invocations this wrapper has performed for the current
project, newest first. Records live under ` + runsDir + ` at the
project root.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}

			records, err := env.Store.Recent(limit)
			if err != nil {
				return err
			}
			if op != "" {
				records = report.FilterOp(records, report.Op(op))
			}
			if taskID != "" {
				records = report.FilterTask(records, taskID)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No invocations recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tOP\tSTATUS\tTASK\tID")
			for _, rec := range records {
				status := "ok"
				if !rec.OK() {
					status = fmt.Sprintf("exit %d", rec.ExitCode)
				}
				task := rec.TaskID
				if task == "" {
					task = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					rec.StartedAt.Format("2006-01-02 15:04:05"), rec.Op, status, task, rec.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")
	cmd.Flags().StringVar(&op, "op", "", "Only show invocations of this operation (create, status, ...)")
	cmd.Flags().StringVar(&taskID, "task", "", "Only show invocations touching this task id")

	return cmd
}
