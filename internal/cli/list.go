package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

var (
	listColumn string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks by column",
	Long: `List the tasks on the board, grouped by column in display order.

Use --column to show a single column (planned, in progress, done).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("board not initialized")
		}

		columns := models.AllColumns()
		if listColumn != "" {
			col, err := models.ParseColumn(listColumn)
			if err != nil {
				return err
			}
			columns = []models.Column{col}
		}

		board := Controller.Board().Snapshot()
		out := cmd.OutOrStdout()

		if listJSON {
			return printBoardJSON(out, board, columns)
		}

		for i, col := range columns {
			if i > 0 {
				_, _ = fmt.Fprintln(out)
			}
			printColumn(out, col, board.Column(col))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listColumn, "column", "c", "", "show only this column")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	_ = listCmd.RegisterFlagCompletionFunc("column", completeColumns)
	rootCmd.AddCommand(listCmd)
}

func printColumn(w io.Writer, col models.Column, tasks []models.Task) {
	_, _ = fmt.Fprintf(w, "%s (%d)\n", col, len(tasks))
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "  (empty)")
		return
	}
	for _, t := range tasks {
		_, _ = fmt.Fprintf(w, "  #%-4d %-32s %-10s %s\n", t.ID, t.Label, t.Date, t.Effort)
	}
}

type listedColumn struct {
	Name  string        `json:"name"`
	Tasks []models.Task `json:"tasks"`
}

func printBoardJSON(w io.Writer, board models.Board, columns []models.Column) error {
	out := make([]listedColumn, 0, len(columns))
	for _, col := range columns {
		out = append(out, listedColumn{Name: col.String(), Tasks: board.Column(col)})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting board as JSON: %w", err)
	}
	_, _ = fmt.Fprintln(w, string(data))
	return nil
}

// completeColumns offers column names without spaces so they need no
// quoting on the command line.
func completeColumns(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"planned", "in_progress", "done"}, cobra.ShellCompDirectiveNoFileComp
}
