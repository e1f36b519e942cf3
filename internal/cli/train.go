package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/maintenance"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/session"
)

var trainCmd = &cobra.Command{
	Use:   "train [data.csv]",
	Short: "Train the failure classifier on a labelled dataset",
	Long: `Load a CSV dataset with a failure label column, train a classifier on it
and save the model and scaler to the data directory.

Examples:
  predmaint train machines.csv                # Train on machines.csv
  predmaint train                             # Train on data.path from config
  predmaint train machines.csv --no-progress  # Without progress bar`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrain,
}

var noProgress bool

func init() {
	trainCmd.Flags().BoolVar(&noProgress, "no-progress", false, "don't show a progress bar")
	rootCmd.AddCommand(trainCmd)
}

type trainOutput struct {
	*maintenance.TrainReport
	DurationMs   int64  `json:"duration_ms"`
	PersistError string `json:"persist_error,omitempty"`
}

func runTrain(cmd *cobra.Command, args []string) error {
	sess, closeLog, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	if _, err := sess.Load(dataArg(args)); err != nil {
		return err
	}

	var opts []maintenance.TrainOption
	var bar *pb.ProgressBar
	if !jsonOut && !noProgress {
		opts = append(opts, maintenance.WithProgress(func(done, total int) {
			if bar == nil {
				bar = pb.New(total).SetWriter(cmd.ErrOrStderr()).Start()
			}
			bar.SetCurrent(int64(done))
		}))
	}

	report, err := sess.Train(opts...)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, trainOutput{
			TrainReport:  report,
			DurationMs:   report.Duration.Milliseconds(),
			PersistError: session.Message(report.PersistErr),
		})
	}

	printTrainReport(out, report)
	return nil
}

func printTrainReport(w io.Writer, r *maintenance.TrainReport) {
	fmt.Fprintf(w, "=== Model Trained ===\n")
	fmt.Fprintf(w, "Model:    %s\n", r.ModelType)
	fmt.Fprintf(w, "Rows:     %d\n", r.Rows)
	fmt.Fprintf(w, "Features: %s\n", strings.Join(r.Features, ", "))
	fmt.Fprintf(w, "Classes:  %s\n", strings.Join(r.Classes, ", "))
	fmt.Fprintf(w, "Labels:   %s\n", formatCounts(r.LabelCounts))
	fmt.Fprintf(w, "Training accuracy: %.1f%%\n", r.Accuracy*100)
	fmt.Fprintf(w, "Duration: %s\n", r.Duration.Round(time.Millisecond))

	switch {
	case r.PersistErr != nil:
		fmt.Fprintf(w, "Warning: model not saved: %s\n", session.Message(r.PersistErr))
	case r.Persisted:
		fmt.Fprintf(w, "Model saved.\n")
	}
}

// dataArg returns the data file argument, or "" to use the configured path.
func dataArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// formatCounts renders label counts sorted by label.
func formatCounts(counts map[string]int) string {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf("%s=%d", label, counts[label])
	}
	return strings.Join(parts, " ")
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}
