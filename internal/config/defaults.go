package config

const (
	defaultLines        = 10
	defaultPollInterval = 1
	defaultDelimiter    = "\n"
	defaultEndMarker    = "\x00"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Follow: Follow{
			Lines:        defaultLines,
			PollInterval: defaultPollInterval,
			Delimiter:    defaultDelimiter,
			EndMarker:    defaultEndMarker,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
