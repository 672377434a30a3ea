package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Writer is the subset of kafka.Writer the producer needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher publishes member events.
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// KafkaProducer writes JSON encoded events to one topic.
type KafkaProducer struct {
	writer Writer
	topic  string
}

// NewKafkaProducer creates a producer for topic on brokerURL.
func NewKafkaProducer(brokerURL, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokerURL),
			Topic:                  topic,
			Balancer:               &kafka.Hash{}, // same member id, same partition
			AllowAutoTopicCreation: true,
		},
		topic: topic,
	}
}

// NewKafkaProducerWithWriter allows injecting a test writer.
func NewKafkaProducerWithWriter(w Writer, topic string) *KafkaProducer {
	return &KafkaProducer{writer: w, topic: topic}
}

func (p *KafkaProducer) Publish(ctx context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{Key: []byte(key), Value: b}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to %s: %w", p.topic, err)
	}
	log.Ctx(ctx).Debug().Str("topic", p.topic).Str("key", key).Msg("Event published")
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (NopPublisher) Close() error { return nil }

// NewPublisher returns a Kafka producer, or a NopPublisher when brokerURL is empty.
func NewPublisher(brokerURL, topic string) Publisher {
	if brokerURL == "" {
		log.Warn().Msg("KAFKA_BROKER is not set, member events are not published")
		return NopPublisher{}
	}
	return NewKafkaProducer(brokerURL, topic)
}
