package notify

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tphakala/weatherdash/internal/conf"
)

const disconnectQuiesceMs = 250

// mqttPublisher is the part of the paho client the sink uses.
type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload any) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTSink publishes alerts as JSON to an MQTT topic.
type MQTTSink struct {
	client  mqttPublisher
	topic   string
	qos     byte
	retain  bool
	timeout time.Duration
}

// NewMQTTSink connects to the configured broker.
func NewMQTTSink(ctx context.Context, cfg *conf.MQTTConfig) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(cfg.Timeout)
	opts.SetAutoReconnect(false)

	client := mqtt.NewClient(opts)
	if err := waitToken(ctx, client.Connect(), cfg.Timeout); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return newMQTTSink(client, cfg), nil
}

func newMQTTSink(client mqttPublisher, cfg *conf.MQTTConfig) *MQTTSink {
	return &MQTTSink{
		client:  client,
		topic:   cfg.Topic,
		qos:     byte(cfg.QoS),
		retain:  cfg.Retain,
		timeout: cfg.Timeout,
	}
}

// Name implements Sink.
func (s *MQTTSink) Name() string { return "mqtt" }

// Send implements Sink.
func (s *MQTTSink) Send(ctx context.Context, alert Alert) error {
	data, err := alert.JSON()
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	if err := waitToken(ctx, s.client.Publish(s.topic, s.qos, s.retain, data), s.timeout); err != nil {
		return fmt.Errorf("mqtt publish to %s: %w", s.topic, err)
	}
	return nil
}

// Close implements Sink.
func (s *MQTTSink) Close() error {
	s.client.Disconnect(disconnectQuiesceMs)
	return nil
}

// waitToken waits for token completion, the timeout or ctx, whichever is first.
func waitToken(ctx context.Context, token mqtt.Token, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-timer.C:
		return fmt.Errorf("timed out after %v", timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}
