package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/core"
)

var (
	editLabel  string
	editDate   string
	editEffort string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the label, date or effort of a task",
	Long: `Change the fields of a task. Only the flags that are given are
changed. The edited task moves to the end of its column.

An empty label is rejected; use 'tb rm' to delete a task.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("board not initialized")
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if !flags.Changed("label") && !flags.Changed("date") && !flags.Changed("effort") {
			return fmt.Errorf("nothing to change: use --label, --date or --effort")
		}

		task, col, row, err := findTask(id)
		if err != nil {
			return err
		}
		if flags.Changed("label") {
			task.Label = strings.TrimSpace(editLabel)
		}
		if flags.Changed("date") {
			task.Date = editDate
		}
		if flags.Changed("effort") {
			task.Effort = editEffort
		}

		err = runIntents(
			core.SelectIntent{Column: col, Row: row},
			core.BufferIntent{Task: task},
			core.CommitEditIntent{},
		)
		if errors.Is(err, core.ErrValidationRejected) {
			return fmt.Errorf("label must not be empty (use 'tb rm %d' to delete the task)", id)
		}
		if err != nil && !errors.Is(err, core.ErrPersistence) {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d %q\n", id, task.Label)
		return err
	},
}

func init() {
	editCmd.Flags().StringVar(&editLabel, "label", "", "new label")
	editCmd.Flags().StringVar(&editDate, "date", "", "new date")
	editCmd.Flags().StringVar(&editEffort, "effort", "", "new effort")
	rootCmd.AddCommand(editCmd)
}
