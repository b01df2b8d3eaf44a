package conf

import (
	"fmt"
	"time"

	"github.com/tphakala/weatherdash/internal/logger"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	ve.Errors = append(ve.Errors, validateAPISettings(&settings.API)...)
	ve.Errors = append(ve.Errors, validateDashboardSettings(&settings.Dashboard)...)
	ve.Errors = append(ve.Errors, validateLoggingSettings(&settings.Logging)...)
	ve.Errors = append(ve.Errors, validateNotificationSettings(&settings.Notification)...)
	ve.Errors = append(ve.Errors, validateMQTTSettings(&settings.MQTT)...)
	ve.Errors = append(ve.Errors, validateKafkaSettings(&settings.Kafka)...)
	ve.Errors = append(ve.Errors, validateSentrySettings(&settings.Sentry)...)

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateAPISettings(settings *APIConfig) []string {
	var errs []string

	if err := checkHTTPURL(settings.BaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("api.baseurl %q: %v", settings.BaseURL, err))
	}
	if settings.Timeout <= 0 {
		errs = append(errs, "api.timeout must be greater than 0")
	}
	if settings.RateLimit < 0 {
		errs = append(errs, "api.ratelimit must not be negative")
	}
	if settings.Burst < 0 {
		errs = append(errs, "api.burst must not be negative")
	}
	return errs
}

func validateDashboardSettings(settings *DashboardConfig) []string {
	var errs []string

	switch settings.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Sprintf("dashboard.color must be auto, always or never, got %q", settings.Color))
	}
	if settings.Concurrency < 1 || settings.Concurrency > maxDashboardConcurrency {
		errs = append(errs, fmt.Sprintf("dashboard.concurrency must be between 1 and %d", maxDashboardConcurrency))
	}
	if settings.Width < 0 {
		errs = append(errs, "dashboard.width must not be negative")
	}
	return errs
}

func validateLoggingSettings(settings *LoggingConfig) []string {
	var errs []string

	if !logger.ValidLevel(settings.Level) {
		errs = append(errs, fmt.Sprintf("logging.level %q is not a valid level", settings.Level))
	}
	if settings.File.Enabled {
		if settings.File.Path == "" {
			errs = append(errs, "logging.file.path is required when file logging is enabled")
		}
		if !logger.ValidLevel(settings.File.Level) {
			errs = append(errs, fmt.Sprintf("logging.file.level %q is not a valid level", settings.File.Level))
		}
	}
	if settings.Timezone != "" && settings.Timezone != "Local" {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("logging.timezone %q is not a known timezone", settings.Timezone))
		}
	}
	for module, level := range settings.ModuleLevels {
		if !logger.ValidLevel(level) {
			errs = append(errs, fmt.Sprintf("logging.modulelevels.%s %q is not a valid level", module, level))
		}
	}
	return errs
}

func validateNotificationSettings(settings *NotificationConfig) []string {
	if len(settings.URLs) > 0 && settings.Timeout <= 0 {
		return []string{"notification.timeout must be greater than 0"}
	}
	return nil
}

func validateMQTTSettings(settings *MQTTConfig) []string {
	if settings.Broker == "" {
		return nil
	}

	var errs []string
	if err := checkBrokerURL(settings.Broker); err != nil {
		errs = append(errs, fmt.Sprintf("mqtt.broker: %v", err))
	}
	if settings.Topic == "" {
		errs = append(errs, "mqtt.topic is required when a broker is set")
	}
	if settings.QoS < 0 || settings.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1 or 2")
	}
	if settings.Timeout <= 0 {
		errs = append(errs, "mqtt.timeout must be greater than 0")
	}
	return errs
}

func validateKafkaSettings(settings *KafkaConfig) []string {
	if len(settings.Brokers) == 0 {
		return nil
	}

	var errs []string
	for _, broker := range settings.Brokers {
		if err := checkHostPort(broker); err != nil {
			errs = append(errs, fmt.Sprintf("kafka.brokers: %v", err))
		}
	}
	if settings.Topic == "" {
		errs = append(errs, "kafka.topic is required when brokers are set")
	}
	if settings.Timeout <= 0 {
		errs = append(errs, "kafka.timeout must be greater than 0")
	}
	return errs
}

func validateSentrySettings(settings *SentryConfig) []string {
	if settings.DSN == "" {
		return nil
	}

	var errs []string
	if err := checkHTTPURL(settings.DSN); err != nil {
		errs = append(errs, fmt.Sprintf("sentry.dsn: %v", err))
	}
	if settings.SampleRate < 0 || settings.SampleRate > 1 {
		errs = append(errs, "sentry.samplerate must be between 0 and 1")
	}
	return errs
}
