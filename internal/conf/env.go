// env.go - Environment variable configuration and validation for weatherdash
package conf

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tphakala/weatherdash/internal/errors"
	"github.com/tphakala/weatherdash/internal/logger"
)

// envBinding holds metadata for environment variable bindings (internal use)
type envBinding struct {
	ConfigKey string             // Viper config key
	EnvVar    string             // Environment variable name
	Validate  func(string) error // Optional validation function
}

// getEnvBindings returns all environment variable bindings with validation
func getEnvBindings() []envBinding {
	return []envBinding{
		{"api.baseurl", "WEATHER_API_URL", validateEnvHTTPURL},
		{"api.timeout", "WEATHERDASH_API_TIMEOUT", validateEnvDuration},
		{"debug", "WEATHERDASH_DEBUG", validateEnvBool},
		{"logging.level", "WEATHERDASH_LOG_LEVEL", validateEnvLogLevel},

		// Integrations
		{"sentry.dsn", "WEATHERDASH_SENTRY_DSN", validateEnvHTTPURL},
		{"notification.urls", "WEATHERDASH_NOTIFY_URLS", validateEnvServiceURLs},
		{"mqtt.broker", "WEATHERDASH_MQTT_BROKER", validateEnvBrokerURL},
		{"kafka.brokers", "WEATHERDASH_KAFKA_BROKERS", validateEnvHostPorts},
	}
}

// bindEnvVars sets up environment variable bindings with validation (internal)
func bindEnvVars(v *viper.Viper) error {
	var problems []string

	for _, binding := range getEnvBindings() {
		if err := v.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			problems = append(problems, fmt.Sprintf("Failed to bind %s: %v", binding.EnvVar, err))
			continue
		}

		if binding.Validate != nil {
			if envValue := os.Getenv(binding.EnvVar); envValue != "" {
				if err := binding.Validate(envValue); err != nil {
					problems = append(problems, fmt.Sprintf("Invalid %s value '%s': %v",
						binding.EnvVar, errors.ScrubMessage(envValue), err))
				}
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("environment variable issues:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// loadDotEnv loads a .env file into the process environment. Variables that
// are already set keep their values and a missing file is ignored.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error checking %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// Environment variable validation functions

func validateEnvBool(value string) error {
	if _, err := strconv.ParseBool(value); err != nil {
		return fmt.Errorf("must be true or false")
	}
	return nil
}

func validateEnvDuration(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("must be a duration such as 10s")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateEnvLogLevel(value string) error {
	if !logger.ValidLevel(value) {
		return fmt.Errorf("must be one of trace, debug, info, warn, error")
	}
	return nil
}

func validateEnvHTTPURL(value string) error {
	return checkHTTPURL(value)
}

func validateEnvServiceURLs(value string) error {
	for raw := range strings.SplitSeq(value, ",") {
		raw = strings.TrimSpace(raw)
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" {
			return fmt.Errorf("%q is not a service URL", errors.ScrubMessage(raw))
		}
	}
	return nil
}

func validateEnvBrokerURL(value string) error {
	return checkBrokerURL(value)
}

func validateEnvHostPorts(value string) error {
	for hostPort := range strings.SplitSeq(value, ",") {
		if err := checkHostPort(strings.TrimSpace(hostPort)); err != nil {
			return err
		}
	}
	return nil
}

func checkHTTPURL(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include a host")
	}
	return nil
}

func checkBrokerURL(value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid broker URL: %w", err)
	}
	switch u.Scheme {
	case "tcp", "ssl", "tls", "mqtt", "mqtts", "ws", "wss":
	default:
		return fmt.Errorf("broker URL scheme must be tcp, ssl, tls, mqtt, mqtts, ws or wss")
	}
	if u.Host == "" {
		return fmt.Errorf("broker URL must include a host")
	}
	return nil
}

func checkHostPort(value string) error {
	host, port, err := net.SplitHostPort(value)
	if err != nil {
		return fmt.Errorf("%q must be host:port", value)
	}
	if host == "" {
		return fmt.Errorf("%q is missing a host", value)
	}
	if p, err := strconv.Atoi(port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("%q has an invalid port", value)
	}
	return nil
}
