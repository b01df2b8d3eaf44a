package notify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"

	"github.com/tphakala/weatherdash/internal/conf"
)

// KafkaSink produces alerts as JSON messages keyed by city id.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaConfig returns the producer configuration used for alerts.
func NewKafkaConfig(cfg *conf.KafkaConfig) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = cfg.ClientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 0
	config.Producer.Timeout = cfg.Timeout
	config.Net.DialTimeout = cfg.Timeout
	config.Net.ReadTimeout = cfg.Timeout
	config.Net.WriteTimeout = cfg.Timeout
	return config
}

// NewKafkaSink connects a synchronous producer to the configured brokers.
func NewKafkaSink(cfg *conf.KafkaConfig) (*KafkaSink, error) {
	producer, err := sarama.NewSyncProducer(trimAll(cfg.Brokers), NewKafkaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return newKafkaSink(producer, cfg.Topic), nil
}

func newKafkaSink(producer sarama.SyncProducer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

// Name implements Sink.
func (s *KafkaSink) Name() string { return "kafka" }

// Send implements Sink. The producer is not context aware, so ctx is only
// checked before sending.
func (s *KafkaSink) Send(ctx context.Context, alert Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := alert.JSON()
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(alert.CityID, 10)),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err := s.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("kafka send to %s: %w", s.topic, err)
	}
	return nil
}

// Close implements Sink.
func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
