package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/monitor"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/storage"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded training runs",
	Long: `Show the training run history kept in the data directory.

Examples:
  predmaint runs             # All recorded runs
  predmaint runs --last 5    # Five most recent runs`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

var lastRuns int

func init() {
	runsCmd.Flags().IntVar(&lastRuns, "last", 0, "only show the most recent n runs")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	sess, closeLog, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	runs := sess.History()
	if lastRuns > 0 && len(runs) > lastRuns {
		runs = runs[len(runs)-lastRuns:]
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		if runs == nil {
			runs = []storage.Run{}
		}
		return printJSON(out, runs)
	}

	fmt.Fprintf(out, "=== Training Runs ===\n")
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(out, "%s  %s\n", r.StartedAt.Format(time.DateTime), r.ID)
		fmt.Fprintf(out, "  Source: %s\n", r.Source)
		fmt.Fprintf(out, "  Model:  %s\n", r.ModelType)
		if r.Rows > 0 {
			fmt.Fprintf(out, "  Rows: %d  Features: %s\n", r.Rows, strings.Join(r.Features, ", "))
			fmt.Fprintf(out, "  Labels: %s  Accuracy: %.1f%%\n", formatCounts(r.LabelCounts), r.Accuracy*100)
		}
		fmt.Fprintf(out, "  Duration: %s  RSS: %s  Saved: %t\n",
			r.Duration.Round(time.Millisecond), monitor.FormatBytes(r.RSSBytes), r.Persisted)
		if r.Error != "" {
			fmt.Fprintf(out, "  Error: %s\n", r.Error)
		}
		fmt.Fprintln(out)
	}
	return nil
}
