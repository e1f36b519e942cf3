package config

func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path:        "",
			LabelColumn: "Failure",
			Delimiter:   ",",
		},
		Model: ModelConfig{
			Type:            "random_forest",
			NEstimators:     100,
			MaxDepth:        0,
			MinSamplesSplit: 2,
			MaxFeatures:     0,
			Seed:            42,
		},
		Persistence: PersistenceConfig{
			Enabled:        true,
			DataDir:        ".predmaint",
			ClassifierFile: "failure_model.json",
			ScalerFile:     "scaler.json",
			HistoryLimit:   100,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		TUI: TUIConfig{
			Watch: false,
		},
		Chart: ChartConfig{
			WidthIn:  6,
			HeightIn: 4,
		},
	}
}
