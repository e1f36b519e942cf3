package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/monitor"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Show or delete the saved model",
	Long: `Show the saved model and scaler artifacts, or delete them.

Examples:
  predmaint model            # Show the saved model
  predmaint model --delete   # Delete the saved model and scaler`,
	Args: cobra.NoArgs,
	RunE: runModel,
}

var deleteModel bool

func init() {
	modelCmd.Flags().BoolVar(&deleteModel, "delete", false, "delete the saved model and scaler")
	rootCmd.AddCommand(modelCmd)
}

func runModel(cmd *cobra.Command, args []string) error {
	sess, closeLog, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	out := cmd.OutOrStdout()

	if deleteModel {
		if err := sess.DeleteModel(); err != nil {
			return err
		}
		if jsonOut {
			fmt.Fprintln(out, `{"deleted":true}`)
		} else {
			fmt.Fprintln(out, "Saved model deleted.")
		}
		return nil
	}

	if _, err := sess.Resume(); err != nil {
		return err
	}
	report := sess.ModelInfo()

	if jsonOut {
		return printJSON(out, report)
	}

	fmt.Fprintf(out, "=== Model ===\n")
	fmt.Fprintf(out, "State: %s\n", report.State)
	if m := report.Model; m != nil {
		fmt.Fprintf(out, "ID:         %s\n", m.ID)
		fmt.Fprintf(out, "Type:       %s\n", m.Type)
		fmt.Fprintf(out, "Features:   %s\n", strings.Join(m.Features, ", "))
		fmt.Fprintf(out, "Classes:    %s\n", strings.Join(m.Classes, ", "))
		fmt.Fprintf(out, "Rows:       %d\n", m.Rows)
		fmt.Fprintf(out, "Trained at: %s\n", m.TrainedAt.Format(time.DateTime))
	}

	if len(report.Artifacts) == 0 {
		fmt.Fprintln(out, "Persistence is disabled.")
		return nil
	}
	fmt.Fprintln(out, "Artifacts:")
	for _, a := range report.Artifacts {
		if !a.Exists {
			fmt.Fprintf(out, "  %s: missing\n", a.Path)
			continue
		}
		fmt.Fprintf(out, "  %s: %s, updated %s\n",
			a.Path, monitor.FormatBytes(uint64(a.Size)), a.UpdatedAt.Format(time.DateTime))
	}
	return nil
}
