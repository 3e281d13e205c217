package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

var (
	addDate   string
	addEffort string
)

var addCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Add a task to the planned column",
	Long: `Add a task to the end of the planned column.

The date defaults to today in the configured date format and the effort
to the configured default effort. Multiple arguments are joined with
spaces to form the label.

Examples:
  tb add Education Rust
  tb add "Write report" --date 01.03.25 --effort 2h:0m`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("board not initialized")
		}

		task := Controller.Board().NewTask()
		task.Label = strings.TrimSpace(strings.Join(args, " "))
		if cmd.Flags().Changed("date") {
			task.Date = addDate
		}
		if cmd.Flags().Changed("effort") {
			task.Effort = addEffort
		}

		err := runIntents(core.CreateIntent{Task: task})
		if errors.Is(err, core.ErrValidationRejected) {
			return fmt.Errorf("label must not be empty")
		}
		if err != nil && !errors.Is(err, core.ErrPersistence) {
			return err
		}

		planned := Controller.Board().Snapshot().Column(models.ColumnPlanned)
		created := planned[len(planned)-1]
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d %q in %s\n", created.ID, created.Label, models.ColumnPlanned)
		return err
	},
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "task date (default: today)")
	addCmd.Flags().StringVar(&addEffort, "effort", "", "estimated effort (default: board.default_effort)")
	rootCmd.AddCommand(addCmd)
}
