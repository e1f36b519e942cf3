package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/config"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/logger"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/session"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	verbose bool

	// Version info (set from main)
	Version = "0.1.0"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "predmaint",
	Short: "Predictive maintenance from machine sensor data",
	Long: `Predmaint loads machine sensor data from CSV files, trains a failure
classifier on a labelled dataset, predicts failures for new readings and
shows the failure distribution, from the command line or an interactive TUI.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", session.Message(err))
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SilenceErrors = true
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// IsJSON returns whether JSON output is enabled
func IsJSON() bool {
	return jsonOut
}

// IsVerbose returns whether verbose output is enabled
func IsVerbose() bool {
	return verbose
}

// openSession loads the configuration and wires a session. Logs go to
// logOut unless a log file is configured. The returned func closes the
// log file.
func openSession(logOut io.Writer) (*session.Session, func(), error) {
	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if cfg.Logging.File != "" {
		logOut = nil
	}

	log, closer := logger.NewWithOptions(logOut, logger.Options{
		Level:      level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	log.Debug("predmaint starting",
		"version", Version,
		"config", cfgFile,
		"model", cfg.Model.Type,
	)

	sess := session.New(cfg, session.Deps{Logger: log})
	return sess, func() { closer.Close() }, nil
}
