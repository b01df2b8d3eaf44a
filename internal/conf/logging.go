package conf

import (
	"maps"
	"slices"

	"github.com/tphakala/weatherdash/internal/errors"
	"github.com/tphakala/weatherdash/internal/logger"
)

const redacted = "[REDACTED]"

// LoggerConfig converts the logging section into a logger configuration.
func (s *Settings) LoggerConfig() logger.LoggingConfig {
	return logger.LoggingConfig{
		DefaultLevel: s.Logging.Level,
		Timezone:     s.Logging.Timezone,
		Console: &logger.ConsoleOutput{
			Enabled: true,
			Level:   s.Logging.Level,
		},
		FileOutput: &logger.FileOutput{
			Enabled: s.Logging.File.Enabled,
			Path:    s.Logging.File.Path,
			Level:   s.Logging.File.Level,
		},
		ModuleLevels: maps.Clone(s.Logging.ModuleLevels),
	}
}

// Redacted returns a copy safe to print: passwords are masked and URL
// credentials and query strings are scrubbed.
func (s *Settings) Redacted() *Settings {
	c := *s
	c.Logging.ModuleLevels = maps.Clone(s.Logging.ModuleLevels)
	c.Kafka.Brokers = slices.Clone(s.Kafka.Brokers)

	c.Notification.URLs = make([]string, len(s.Notification.URLs))
	for i, u := range s.Notification.URLs {
		c.Notification.URLs[i] = errors.ScrubMessage(u)
	}
	c.MQTT.Broker = errors.ScrubMessage(s.MQTT.Broker)
	if c.MQTT.Password != "" {
		c.MQTT.Password = redacted
	}
	if c.Sentry.DSN != "" {
		c.Sentry.DSN = errors.ScrubMessage(s.Sentry.DSN)
	}
	return &c
}
