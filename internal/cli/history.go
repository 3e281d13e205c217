package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/observability"
)

var (
	historyLimit int
	historyType  string
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show recent board activity from the event log",
	Long: `Show the most recent board events, oldest first. Give a task ID to
see only the history of that task.

Event types: task.created, task.edited, task.removed, task.moved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if EventLog == nil {
			return fmt.Errorf("event log not initialized")
		}

		filter := observability.EventFilter{Type: historyType, Limit: historyLimit}
		if len(args) == 1 {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			filter.TaskID = id
		}

		events, err := EventLog.Read(filter)
		if err != nil {
			return fmt.Errorf("reading event log: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			_, _ = fmt.Fprintln(out, "No events recorded.")
			return nil
		}
		for _, e := range events {
			printEvent(out, e)
		}
		return nil
	},
}

func printEvent(w io.Writer, e observability.Event) {
	var detail []string
	if id, ok := e.TaskID(); ok {
		detail = append(detail, fmt.Sprintf("#%d", id))
	}
	if label := e.String("label"); label != "" {
		detail = append(detail, fmt.Sprintf("%q", label))
	}
	if from, to := e.String("from"), e.String("to"); to != "" {
		detail = append(detail, fmt.Sprintf("%s -> %s", from, to))
	} else if col := e.String("column"); col != "" {
		detail = append(detail, "in "+col)
	}
	if via := e.String("via"); via != "" {
		detail = append(detail, "via "+via)
	}
	_, _ = fmt.Fprintf(w, "%s  %-13s %s\n", e.Time.Local().Format("2006-01-02 15:04"), e.Type, strings.Join(detail, " "))
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "show at most this many events (0 for all)")
	historyCmd.Flags().StringVar(&historyType, "type", "", "only show events of this type")
	rootCmd.AddCommand(historyCmd)
}
