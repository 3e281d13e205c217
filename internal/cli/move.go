package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

var moveCmd = &cobra.Command{
	Use:   "move <id> <column>",
	Short: "Move a task to the end of a column",
	Long: `Move a task to the end of another column. Moving a task to its own
column sends it to the end of that column.

Columns: planned, in_progress, done (or 0, 1, 2).`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return completeColumns(cmd, args, toComplete)
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("board not initialized")
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		dest, err := models.ParseColumn(args[1])
		if err != nil {
			return err
		}

		task, col, row, err := findTask(id)
		if err != nil {
			return err
		}

		err = runIntents(
			core.BeginDragIntent{Column: col, Row: row},
			core.HoverIntent{Column: dest},
			core.EndDragIntent{Released: true},
		)
		if err != nil && !errors.Is(err, core.ErrPersistence) {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved task #%d %q from %s to %s\n", id, task.Label, col, dest)
		return err
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
