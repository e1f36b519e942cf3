package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict [data.csv]",
	Short: "Predict failures with the saved model",
	Long: `Load a CSV dataset with the training feature columns and print one
predicted label per row, in row order. A label column in the data is ignored.

Examples:
  predmaint predict new_readings.csv          # One prediction per row
  predmaint predict new_readings.csv --json   # JSON output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPredict,
}

var summaryOnly bool

func init() {
	predictCmd.Flags().BoolVar(&summaryOnly, "summary", false, "only print counts per label")
	rootCmd.AddCommand(predictCmd)
}

type predictOutput struct {
	Source      string         `json:"source"`
	Rows        int            `json:"rows"`
	Predictions []string       `json:"predictions,omitempty"`
	Counts      map[string]int `json:"counts"`
}

func runPredict(cmd *cobra.Command, args []string) error {
	sess, closeLog, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	if _, err := sess.Resume(); err != nil {
		return err
	}

	if _, err := sess.Load(dataArg(args)); err != nil {
		return err
	}

	predictions, err := sess.Predict()
	if err != nil {
		return err
	}

	_, source, _ := sess.Dataset()
	result := predictOutput{
		Source: source,
		Rows:   len(predictions),
		Counts: predictions.Counts(),
	}
	if !summaryOnly {
		result.Predictions = predictions
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, result)
	}

	if !summaryOnly {
		for i, label := range predictions {
			fmt.Fprintf(out, "%d\t%s\n", i+1, label)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Predicted %d rows from %s: %s\n", result.Rows, source, formatCounts(result.Counts))
	return nil
}
