package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/cli/tui"
)

var (
	refreshInterval time.Duration
	watchData       bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui [data.csv]",
	Short: "Launch interactive TUI",
	Long: `Launch an interactive terminal user interface to upload data, train,
predict and visualize the failure distribution. A saved model is restored on
start. Logs go to logging.file when configured.

Examples:
  predmaint tui                          # Use data.path from config
  predmaint tui machines.csv             # Load machines.csv on start
  predmaint tui machines.csv --watch     # Reload when the file changes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().DurationVar(&refreshInterval, "refresh", 2*time.Second, "process stats refresh interval")
	tuiCmd.Flags().BoolVar(&watchData, "watch", false, "reload the data file when it changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The screen belongs to the TUI, so logs only go to a configured file.
	sess, closeLog, err := openSession(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := sess.Config()
	dataPath := dataArg(args)
	if dataPath == "" {
		dataPath = cfg.Data.Path
	}

	if _, err := sess.Resume(); err != nil {
		return err
	}

	return tui.Run(tui.Config{
		DataPath:        dataPath,
		Watch:           watchData || cfg.TUI.Watch,
		RefreshInterval: refreshInterval,
	}, sess)
}
