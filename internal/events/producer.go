// Package events publishes domain events for the out-of-process mail and
// notification pipeline.
package events

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/famtask/famtask-backend/internal/config"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	TypeUserRegistered = "user.registered"
	TypeTaskCompleted  = "task.completed"
)

type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email,omitempty"`
	TaskID     string    `json:"task_id,omitempty"`
	Points     int       `json:"points,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is the surface services depend on; nil-safe.
type Publisher interface {
	Publish(event Event) error
}

type Producer struct {
	writer *kafka.Writer
}

// NewProducer builds a Kafka-backed publisher. Returns a producer with a nil
// writer when no broker is configured; Publish then skips silently, so event
// delivery never blocks the request path in environments without Kafka.
func NewProducer(cfg *config.Config) *Producer {
	if cfg.KafkaBroker == "" {
		return &Producer{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBroker),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}

	// Leave Transport unset for plaintext brokers so the writer falls back
	// to kafka.DefaultTransport. Assigning a typed-nil *kafka.Transport
	// would defeat that fallback.
	if cfg.KafkaUsername != "" {
		writer.Transport = &kafka.Transport{
			SASL: plain.Mechanism{
				Username: cfg.KafkaUsername,
				Password: cfg.KafkaPassword,
			},
			TLS: &tls.Config{},
		}
	}

	return &Producer{writer: writer}
}

func (p *Producer) Publish(event Event) error {
	if p == nil || p.writer == nil {
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: value,
		Time:  event.OccurredAt,
	})
}

func (p *Producer) Close() {
	if p == nil || p.writer == nil {
		return
	}
	if err := p.writer.Close(); err != nil {
		slog.Error("kafka writer close failed", "error", err)
	}
}
