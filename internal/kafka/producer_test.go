package kafka

import (
	"context"
	"testing"
)

func TestProducerDisabledIsNoop(t *testing.T) {
	tests := []struct {
		name    string
		brokers []string
		topic   string
	}{
		{name: "no brokers", topic: "ticket-sla-events"},
		{name: "no topic", brokers: []string{"localhost:9092"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProducer(tt.brokers, tt.topic, nil)
			if p.Enabled() {
				t.Fatal("expected producer to be disabled")
			}
			p.Produce(context.Background(), "key", map[string]string{"a": "b"})
			if err := p.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
		})
	}
}

func TestProducerEnabled(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "ticket-sla-events", nil)
	if !p.Enabled() {
		t.Fatal("expected producer to be enabled")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
