package conf

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is used when WEATHER_API_URL and api.baseurl are unset.
	DefaultBaseURL = "http://localhost:9091/api/cities"

	dotEnvFile = ".env"

	maxDashboardConcurrency = 16
)

// setDefaultConfig sets default values for every configuration key.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("api.baseurl", DefaultBaseURL)
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.useragent", "weatherdash")
	v.SetDefault("api.ratelimit", 0.0)
	v.SetDefault("api.burst", 1)

	v.SetDefault("dashboard.color", "auto")
	v.SetDefault("dashboard.ascii", false)
	v.SetDefault("dashboard.width", 40)
	v.SetDefault("dashboard.conditions", false)
	v.SetDefault("dashboard.concurrency", 4)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.timezone", "Local")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "logs/weatherdash.log")
	v.SetDefault("logging.file.level", "info")
	v.SetDefault("logging.modulelevels", map[string]string{})

	v.SetDefault("notification.urls", []string{})
	v.SetDefault("notification.title", "Weather alert")
	v.SetDefault("notification.timeout", 10*time.Second)

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.topic", "weatherdash/alerts")
	v.SetDefault("mqtt.clientid", "weatherdash")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.qos", 1)
	v.SetDefault("mqtt.retain", false)
	v.SetDefault("mqtt.timeout", 5*time.Second)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "weatherdash.alerts")
	v.SetDefault("kafka.clientid", "weatherdash")
	v.SetDefault("kafka.timeout", 5*time.Second)

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
	v.SetDefault("sentry.samplerate", 1.0)

	v.SetDefault("metrics.textfile", "")
}
