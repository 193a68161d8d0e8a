package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			File: "watch-history.html",
		},
		Timezone: TimezoneConfig{
			Name: "UTC",
		},
		Output: OutputConfig{
			Limit:      10,
			ChartWidth: 50,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
