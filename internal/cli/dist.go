package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/viz"
)

var distCmd = &cobra.Command{
	Use:   "dist [data.csv]",
	Short: "Show the failure distribution of a dataset",
	Long: `Count the rows per failure label and draw them as bars. With --png the
chart is also saved as an image (red bars for failures, green otherwise).

Examples:
  predmaint dist machines.csv                  # Text bars
  predmaint dist machines.csv --png dist.png   # Also save a bar chart`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDist,
}

var chartPath string

func init() {
	distCmd.Flags().StringVar(&chartPath, "png", "", "save the bar chart to this file (.png, .svg or .pdf)")
	rootCmd.AddCommand(distCmd)
}

func runDist(cmd *cobra.Command, args []string) error {
	sess, closeLog, err := openSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	if _, err := sess.Load(dataArg(args)); err != nil {
		return err
	}

	var d *viz.Distribution
	if chartPath != "" {
		d, err = sess.SaveChart(chartPath)
	} else {
		d, err = sess.Distribution()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, d)
	}

	fmt.Fprint(out, viz.Render(d, 40))
	if chartPath != "" {
		fmt.Fprintf(out, "\nChart saved to %s\n", chartPath)
	}
	return nil
}
