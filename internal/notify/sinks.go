package notify

import (
	"context"

	"github.com/tphakala/weatherdash/internal/conf"
	"github.com/tphakala/weatherdash/internal/errors"
)

// SinksFromSettings builds a sink for every configured destination. When one
// fails to start, the sinks already built are closed and the error returned.
func SinksFromSettings(ctx context.Context, settings *conf.Settings) ([]Sink, error) {
	var sinks []Sink
	fail := func(err error, sink string) ([]Sink, error) {
		for _, s := range sinks {
			_ = s.Close()
		}
		return nil, errors.New(err).
			Component(componentName).
			Category(errors.CategoryIntegration).
			Context("sink", sink).
			Build()
	}

	if len(trimAll(settings.Notification.URLs)) > 0 {
		s, err := NewShoutrrrSink(settings.Notification.URLs, settings.Notification.Title, settings.Notification.Timeout)
		if err != nil {
			return fail(err, "shoutrrr")
		}
		sinks = append(sinks, s)
	}

	if settings.MQTT.Broker != "" {
		s, err := NewMQTTSink(ctx, &settings.MQTT)
		if err != nil {
			return fail(err, "mqtt")
		}
		sinks = append(sinks, s)
	}

	if len(trimAll(settings.Kafka.Brokers)) > 0 {
		s, err := NewKafkaSink(&settings.Kafka)
		if err != nil {
			return fail(err, "kafka")
		}
		sinks = append(sinks, s)
	}

	return sinks, nil
}
