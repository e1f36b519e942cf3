package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Data.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("data: %w", err))
	}

	if err := c.Model.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("model: %w", err))
	}

	if err := c.Persistence.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("persistence: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Chart.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("chart: %w", err))
	}

	return errors.Join(errs...)
}

func (d *DataConfig) Validate() error {
	var errs []error

	if d.LabelColumn == "" {
		errs = append(errs, fmt.Errorf("label_column cannot be empty"))
	}

	switch d.Delimiter {
	case "", `\t`, "tab":
	default:
		r, size := utf8.DecodeRuneInString(d.Delimiter)
		if size != len(d.Delimiter) || r == utf8.RuneError {
			errs = append(errs, fmt.Errorf("delimiter must be a single character, got %q", d.Delimiter))
		} else if r == '"' || r == '\r' || r == '\n' {
			errs = append(errs, fmt.Errorf("invalid delimiter %q", d.Delimiter))
		}
	}

	return errors.Join(errs...)
}

func (m *ModelConfig) Validate() error {
	var errs []error

	validTypes := map[string]bool{
		"random_forest": true,
		"decision_tree": true,
	}
	if !validTypes[m.Type] {
		errs = append(errs, fmt.Errorf("invalid model type: %s (valid: random_forest, decision_tree)", m.Type))
	}

	if m.NEstimators < 1 {
		errs = append(errs, fmt.Errorf("n_estimators must be at least 1, got %d", m.NEstimators))
	}

	if m.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must be non-negative"))
	}

	if m.MinSamplesSplit < 2 {
		errs = append(errs, fmt.Errorf("min_samples_split must be at least 2, got %d", m.MinSamplesSplit))
	}

	if m.MaxFeatures < 0 {
		errs = append(errs, fmt.Errorf("max_features must be non-negative"))
	}

	return errors.Join(errs...)
}

func (p *PersistenceConfig) Validate() error {
	if !p.Enabled {
		return nil
	}

	var errs []error
	if p.DataDir == "" {
		errs = append(errs, fmt.Errorf("data_dir cannot be empty"))
	}
	if p.ClassifierFile == "" || p.ScalerFile == "" {
		errs = append(errs, fmt.Errorf("classifier_file and scaler_file cannot be empty"))
	}
	if p.ClassifierFile != "" && p.ClassifierFile == p.ScalerFile {
		errs = append(errs, fmt.Errorf("classifier_file and scaler_file must differ"))
	}
	if p.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("history_limit must be non-negative"))
	}
	return errors.Join(errs...)
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", l.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[l.Format] {
		return fmt.Errorf("invalid log format: %s (valid: json, text)", l.Format)
	}

	if l.File != "" && (l.MaxSizeMB < 0 || l.MaxBackups < 0 || l.MaxAgeDays < 0) {
		return fmt.Errorf("max_size_mb, max_backups and max_age_days must be non-negative")
	}

	return nil
}

func (c *ChartConfig) Validate() error {
	if c.WidthIn <= 0 || c.HeightIn <= 0 {
		return fmt.Errorf("width_in and height_in must be positive, got %gx%g", c.WidthIn, c.HeightIn)
	}
	return nil
}
