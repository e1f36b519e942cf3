package config

import "unicode/utf8"

type Config struct {
	Data        DataConfig        `yaml:"data" json:"data"`
	Model       ModelConfig       `yaml:"model" json:"model"`
	Persistence PersistenceConfig `yaml:"persistence" json:"persistence"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
	TUI         TUIConfig         `yaml:"tui" json:"tui"`
	Chart       ChartConfig       `yaml:"chart" json:"chart"`
}

// DataConfig describes the input data files.
type DataConfig struct {
	// Path of the dataset loaded when no path is given on the command line.
	Path string `yaml:"path" json:"path"`
	// LabelColumn holds the failure outcome.
	LabelColumn string `yaml:"label_column" json:"label_column"`
	// Delimiter is a single character, "\t" for tab.
	Delimiter string `yaml:"delimiter" json:"delimiter"`
}

// ModelConfig holds classifier hyperparameters.
type ModelConfig struct {
	// Type: random_forest, decision_tree
	Type string `yaml:"type" json:"type"`

	NEstimators     int   `yaml:"n_estimators" json:"n_estimators"`
	MaxDepth        int   `yaml:"max_depth" json:"max_depth"`
	MinSamplesSplit int   `yaml:"min_samples_split" json:"min_samples_split"`
	MaxFeatures     int   `yaml:"max_features" json:"max_features"`
	Seed            int64 `yaml:"seed" json:"seed"`
}

type PersistenceConfig struct {
	Enabled        bool   `yaml:"enabled" json:"enabled"`
	DataDir        string `yaml:"data_dir" json:"data_dir"`
	ClassifierFile string `yaml:"classifier_file" json:"classifier_file"`
	ScalerFile     string `yaml:"scaler_file" json:"scaler_file"`
	HistoryLimit   int    `yaml:"history_limit" json:"history_limit"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`

	// File, when set, receives logs instead of stderr and is rotated.
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
}

type TUIConfig struct {
	// Watch reloads the dataset when its file changes.
	Watch bool `yaml:"watch" json:"watch"`
}

// ChartConfig sets the size of saved charts in inches.
type ChartConfig struct {
	WidthIn  float64 `yaml:"width_in" json:"width_in"`
	HeightIn float64 `yaml:"height_in" json:"height_in"`
}

// DelimiterRune returns the field delimiter, or 0 for the default comma.
func (d *DataConfig) DelimiterRune() rune {
	switch d.Delimiter {
	case "":
		return 0
	case `\t`, "tab":
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(d.Delimiter)
	return r
}
