package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/observability"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

var (
	statsJSON  bool
	statsSince string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display board activity metrics",
	Long: `Display metrics derived from the event log: tasks created, edited,
removed, moved and completed (moved into done) within the time window,
along with the current size of every column.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized")
		}

		sinceTime, err := observability.ParseSince(statsSince, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		metrics, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		out := cmd.OutOrStdout()
		if statsJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			_, _ = fmt.Fprintln(out, string(data))
			return nil
		}

		printMetrics(out, metrics, sinceTime)
		return nil
	},
}

func printMetrics(w io.Writer, m *observability.Metrics, since time.Time) {
	_, _ = fmt.Fprintf(w, "Metrics (since %s)\n\n", since.Format("2006-01-02"))
	_, _ = fmt.Fprintf(w, "  %-20s %d\n", "Events recorded:", m.EventCount)
	_, _ = fmt.Fprintf(w, "  %-20s %d\n", "Tasks created:", m.TasksCreated)
	_, _ = fmt.Fprintf(w, "  %-20s %d\n", "Tasks edited:", m.TasksEdited)
	_, _ = fmt.Fprintf(w, "  %-20s %d\n", "Tasks removed:", m.TasksRemoved)
	_, _ = fmt.Fprintf(w, "  %-20s %d\n", "Tasks moved:", m.TasksMoved)
	_, _ = fmt.Fprintf(w, "  %-20s %d\n", "Tasks completed:", m.TasksCompleted)

	if len(m.MovesInto) > 0 {
		_, _ = fmt.Fprintln(w, "\n  Moves into:")
		names := make([]string, 0, len(m.MovesInto))
		for name := range m.MovesInto {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = fmt.Fprintf(w, "    %-18s %d\n", name+":", m.MovesInto[name])
		}
	}

	if len(m.TasksByColumn) > 0 {
		_, _ = fmt.Fprintln(w, "\n  On the board now:")
		for _, c := range models.AllColumns() {
			_, _ = fmt.Fprintf(w, "    %-18s %d\n", c.String()+":", m.TasksByColumn[c.String()])
		}
	}

	if m.OldestEvent != nil {
		_, _ = fmt.Fprintf(w, "\n  %-20s %s\n", "Oldest event:", m.OldestEvent.Format(time.RFC3339))
	}
	if m.NewestEvent != nil {
		_, _ = fmt.Fprintf(w, "  %-20s %s\n", "Newest event:", m.NewestEvent.Format(time.RFC3339))
	}
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output metrics as JSON")
	statsCmd.Flags().StringVar(&statsSince, "since", "7d", "time window for metrics (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(statsCmd)
}
