package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show active board alerts",
	Long: `Evaluate the alert conditions and display any that fired.

Alerts fire when the in progress column exceeds alerts.wip_limit, when the
planned column exceeds alerts.max_planned, and when a task has sat in
progress without activity for more than alerts.stale_days.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if AlertEngine == nil {
			return fmt.Errorf("alert engine not initialized")
		}

		alerts, err := AlertEngine.Evaluate()
		if err != nil {
			return fmt.Errorf("evaluating alerts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(alerts) == 0 {
			_, _ = fmt.Fprintln(out, "No active alerts.")
			return nil
		}

		_, _ = fmt.Fprintf(out, "%d active alert(s):\n\n", len(alerts))
		for _, alert := range alerts {
			severity := strings.ToUpper(string(alert.Severity))
			_, _ = fmt.Fprintf(out, "  [%s] %s\n", severity, alert.Message)
			_, _ = fmt.Fprintf(out, "         triggered at %s\n\n", alert.TriggeredAt.Format("2006-01-02 15:04 UTC"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}
