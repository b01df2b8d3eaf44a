// Package conf loads weatherdash settings from config.yaml, .env and the environment.
package conf

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/weatherdash/internal/errors"
)

//go:embed config.yaml
var configFiles embed.FS

// APIConfig holds the Remote Weather API connection settings.
type APIConfig struct {
	BaseURL   string        // base URL of the favorites collection, e.g. http://localhost:9091/api/cities
	Timeout   time.Duration // per-request timeout
	UserAgent string        // User-Agent header sent with every request
	RateLimit float64       // requests per second, 0 disables pacing
	Burst     int           // rate limiter burst size
}

// DashboardConfig controls how the dashboard is rendered.
type DashboardConfig struct {
	Color       string // auto, always or never
	ASCII       bool   // use ASCII glyphs instead of emoji icons
	Width       int    // card width in columns
	Conditions  bool   // fetch live conditions for each card by default
	Concurrency int    // maximum concurrent condition lookups
}

// LogFileConfig configures the JSON log file.
type LogFileConfig struct {
	Enabled bool
	Path    string
	Level   string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level        string            // console and default module level
	Timezone     string            // timezone for file timestamps
	File         LogFileConfig     // JSON log file output
	ModuleLevels map[string]string // per-module overrides
}

// NotificationConfig holds shoutrrr notification settings.
type NotificationConfig struct {
	URLs    []string      // shoutrrr service URLs, empty disables the sink
	Title   string        // notification title
	Timeout time.Duration // send timeout
}

// MQTTConfig holds MQTT alert publishing settings.
type MQTTConfig struct {
	Broker   string // e.g. tcp://localhost:1883, empty disables the sink
	Topic    string
	ClientID string
	Username string
	Password string
	QoS      int
	Retain   bool
	Timeout  time.Duration
}

// KafkaConfig holds Kafka alert publishing settings.
type KafkaConfig struct {
	Brokers  []string // host:port list, empty disables the sink
	Topic    string
	ClientID string
	Timeout  time.Duration
}

// SentryConfig holds optional error telemetry settings.
type SentryConfig struct {
	DSN         string // empty disables telemetry
	Environment string
	SampleRate  float64
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	Textfile string // write Prometheus text format here on exit, empty disables
}

// Settings contains all configuration options for weatherdash.
type Settings struct {
	Debug bool // enable debug logging

	API          APIConfig
	Dashboard    DashboardConfig
	Logging      LoggingConfig
	Notification NotificationConfig
	MQTT         MQTTConfig
	Kafka        KafkaConfig
	Sentry       SentryConfig
	Metrics      MetricsConfig

	// ConfigFile is the config file that was read, empty when defaults were used.
	ConfigFile string `yaml:"-" mapstructure:"-"`
}

// flagBindings maps command line flags onto config keys.
var flagBindings = map[string]string{
	"api-url":   "api.baseurl",
	"timeout":   "api.timeout",
	"debug":     "debug",
	"log-level": "logging.level",
	"color":     "dashboard.color",
	"ascii":     "dashboard.ascii",
}

// Load reads settings in precedence order: flags, environment (including .env),
// config file and defaults. An empty configFile searches the default paths; a
// missing config file is not an error.
func Load(configFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaultConfig(v)

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, configError(err, "load-dotenv")
	}
	if err := bindEnvVars(v); err != nil {
		return nil, configError(err, "bind-env")
	}
	if err := bindFlags(v, flags); err != nil {
		return nil, configError(err, "bind-flags")
	}

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, configError(fmt.Errorf("error unmarshaling config into struct: %w", err), "unmarshal")
	}
	settings.ConfigFile = v.ConfigFileUsed()

	if settings.Debug {
		settings.Logging.Level = "debug"
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, configError(err, "validate")
	}
	return settings, nil
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	v := viper.New()
	setDefaultConfig(v)
	settings := &Settings{}
	// defaults are static and always decode
	_ = v.Unmarshal(settings)
	return settings
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.New(fmt.Errorf("error reading config file %s: %w", configFile, err)).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Context("config_file", configFile).
				Build()
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	paths, err := ConfigSearchPaths()
	if err != nil {
		return configError(err, "config-paths")
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return configError(fmt.Errorf("error reading config file: %w", err), "read-config")
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("error binding flag --%s: %w", name, err)
		}
	}
	return nil
}

func configError(err error, operation string) error {
	return errors.New(err).
		Component("conf").
		Category(errors.CategoryConfiguration).
		Context("operation", operation).
		Build()
}

// DefaultConfigTemplate returns the commented default config.yaml.
func DefaultConfigTemplate() ([]byte, error) {
	return fs.ReadFile(configFiles, "config.yaml")
}

// WriteDefaultConfig writes the commented default config to path. An existing
// file is only replaced when overwrite is set.
func WriteDefaultConfig(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.Newf("config file %s already exists", path).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Context("config_file", path).
				Build()
		}
	}
	data, err := DefaultConfigTemplate()
	if err != nil {
		return fmt.Errorf("error reading default config: %w", err)
	}
	return writeFileAtomic(path, data)
}

// MarshalYAML renders settings as YAML.
func MarshalYAML(settings *Settings) ([]byte, error) {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("error marshaling settings to YAML: %w", err)
	}
	return data, nil
}

// SaveYAMLConfig writes settings to configPath. It overwrites the existing
// file, not preserving comments or structure.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := MarshalYAML(settings)
	if err != nil {
		return err
	}
	return writeFileAtomic(configPath, yamlData)
}

// writeFileAtomic writes through a temporary file in the target directory and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tempFileName := tempFile.Name()
	defer os.Remove(tempFileName)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("error writing to temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}
	if err := os.Chmod(tempFileName, 0o644); err != nil {
		return fmt.Errorf("error setting config file permissions: %w", err)
	}

	if err := os.Rename(tempFileName, path); err != nil {
		return fmt.Errorf("error replacing config file: %w", err)
	}
	return nil
}
