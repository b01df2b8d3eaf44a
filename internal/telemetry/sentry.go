// Package telemetry wires optional Sentry error reporting. Nothing is sent
// unless a DSN is configured.
package telemetry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/tphakala/weatherdash/internal/conf"
	"github.com/tphakala/weatherdash/internal/errors"
	"github.com/tphakala/weatherdash/internal/logger"
)

// Option customises Sentry initialisation.
type Option func(*sentry.ClientOptions)

// WithTransport replaces the HTTP transport, used by tests.
func WithTransport(t sentry.Transport) Option {
	return func(o *sentry.ClientOptions) {
		o.Transport = t
	}
}

// Init initialises Sentry and routes EnhancedErrors to it. It reports
// whether telemetry was enabled; an empty DSN leaves it disabled.
func Init(cfg *conf.SentryConfig, version string, log logger.Logger, opts ...Option) (bool, error) {
	if cfg.DSN == "" {
		return false, nil
	}

	options := sentry.ClientOptions{
		Dsn:              cfg.DSN,
		SampleRate:       cfg.SampleRate,
		Environment:      cfg.Environment,
		Release:          fmt.Sprintf("weatherdash@%s", version),
		AttachStacktrace: false,
		ServerName:       "", // never leak the hostname
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			return applyPrivacyFilters(event)
		},
	}
	for _, opt := range opts {
		opt(&options)
	}

	if err := sentry.Init(options); err != nil {
		return false, fmt.Errorf("sentry initialization failed: %w", err)
	}
	errors.SetTelemetryReporter(errors.NewSentryReporter(true))

	if log != nil {
		log.Module("telemetry").Info("error telemetry enabled",
			logger.String("environment", cfg.Environment),
			logger.String("release", options.Release))
	}
	return true, nil
}

// Shutdown flushes pending events and detaches the reporter.
func Shutdown(timeout time.Duration) bool {
	reporter := errors.GetTelemetryReporter()
	if reporter == nil {
		return true
	}
	errors.SetTelemetryReporter(nil)
	return sentry.Flush(timeout)
}

// applyPrivacyFilters applies privacy filters to a Sentry event
func applyPrivacyFilters(event *sentry.Event) *sentry.Event {
	event.User = sentry.User{}
	event.ServerName = ""

	if event.Contexts != nil {
		delete(event.Contexts, "device")
		delete(event.Contexts, "os")
		delete(event.Contexts, "runtime")
	}
	if event.Tags != nil {
		delete(event.Tags, "server_name")
		delete(event.Tags, "hostname")
	}

	event.Message = errors.ScrubMessage(event.Message)
	for i := range event.Exception {
		event.Exception[i].Value = errors.ScrubMessage(event.Exception[i].Value)
	}
	event.Request = nil
	return event
}
