// Package kafka publishes SLA events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventProducer sends keyed events. Implementations are best-effort.
type EventProducer interface {
	Produce(ctx context.Context, key string, event any)
}

// Producer writes JSON events to a single topic. Without brokers or a topic
// every method is a no-op.
type Producer struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

// NewProducer builds a producer for topic on brokers.
func NewProducer(brokers []string, topic string, logger *zap.Logger) *Producer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(brokers) == 0 || topic == "" {
		return &Producer{logger: logger}
	}
	return &Producer{
		topic:  topic,
		logger: logger,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Enabled reports whether messages are actually written.
func (p *Producer) Enabled() bool {
	return p != nil && p.writer != nil
}

// Produce marshals event and writes it under key. Failures are logged.
func (p *Producer) Produce(ctx context.Context, key string, event any) {
	if !p.Enabled() {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("kafka: marshal event", zap.Error(err))
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: body}); err != nil {
		p.logger.Warn("kafka: write event", zap.String("topic", p.topic), zap.Error(err))
	}
}

// Close flushes and closes the writer.
func (p *Producer) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
