package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/core"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a task from the board",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("board not initialized")
		}

		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		task, col, row, err := findTask(id)
		if err != nil {
			return err
		}

		err = runIntents(core.RemoveIntent{Column: col, Row: row})
		if err != nil && !errors.Is(err, core.ErrPersistence) {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed task #%d %q from %s\n", id, task.Label, col)
		return err
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
