package logger

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	DefaultLevel string            // default log level for all modules
	Timezone     string            // "Local", "UTC", or IANA timezone name like "Europe/Helsinki"
	Console      *ConsoleOutput    // console output configuration
	FileOutput   *FileOutput       // file output configuration
	ModuleLevels map[string]string // per-module log levels
}

// ConsoleOutput represents console logging configuration.
// Console output uses human-readable text format without timestamps.
type ConsoleOutput struct {
	Enabled bool   // enable console output
	Level   string // log level for console output
}

// FileOutput represents file logging configuration.
// File output uses JSON format with RFC3339 timestamps.
type FileOutput struct {
	Enabled bool   // enable file output
	Path    string // log file path
	Level   string // log level for file output
}

// Default values for logging configuration.
const (
	DefaultLogLevel       = "warn"
	DefaultLogPath        = "logs/weatherdash.log"
	DefaultConsoleEnabled = true
	DefaultFileEnabled    = false
)

// DefaultLoggingConfig returns the configuration used when nothing is configured.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		DefaultLevel: DefaultLogLevel,
		Timezone:     "Local",
		Console: &ConsoleOutput{
			Enabled: DefaultConsoleEnabled,
			Level:   DefaultLogLevel,
		},
		FileOutput: &FileOutput{
			Enabled: DefaultFileEnabled,
			Path:    DefaultLogPath,
			Level:   "info",
		},
	}
}

// applyConfigDefaults fills nil output sections so an empty config still logs somewhere.
func applyConfigDefaults(cfg *LoggingConfig) {
	defaults := DefaultLoggingConfig()
	if cfg.DefaultLevel == "" {
		cfg.DefaultLevel = defaults.DefaultLevel
	}
	if cfg.Console == nil {
		cfg.Console = defaults.Console
	}
	if cfg.Console.Level == "" {
		cfg.Console.Level = cfg.DefaultLevel
	}
	if cfg.FileOutput == nil {
		cfg.FileOutput = defaults.FileOutput
	}
	if cfg.FileOutput.Path == "" {
		cfg.FileOutput.Path = DefaultLogPath
	}
	if cfg.FileOutput.Level == "" {
		cfg.FileOutput.Level = cfg.DefaultLevel
	}
}
