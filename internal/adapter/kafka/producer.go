package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/polkiloo/ordersvc/internal/events"
)

const maxAttempts = 8

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes order events. The topic is chosen per message.
type Producer struct {
	writer messageWriter
}

// NewProducer builds a writer that keeps all messages of an order on one partition.
func NewProducer(brokers []string, clientID string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  maxAttempts,
		RequiredAcks: kafka.RequireAll,
		Transport:    &kafka.Transport{ClientID: clientID},
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, msg events.Message) error {
	data, err := json.Marshal(msg.Payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", msg.Topic, err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: msg.Topic,
		Key:   []byte(msg.Key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
