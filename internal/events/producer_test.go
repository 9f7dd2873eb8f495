package events

import (
	"testing"
	"time"

	"github.com/famtask/famtask-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerWithoutBroker(t *testing.T) {
	p := NewProducer(&config.Config{})
	require.NotNil(t, p)
	assert.Nil(t, p.writer)

	// Publishing without a broker is a silent no-op.
	err := p.Publish(Event{Type: TypeUserRegistered, UserID: "u", OccurredAt: time.Now()})
	assert.NoError(t, err)
	p.Close()
}

func TestNewProducerPlaintextBroker(t *testing.T) {
	p := NewProducer(&config.Config{
		KafkaBroker: "localhost:9092",
		KafkaTopic:  "events",
	})
	require.NotNil(t, p.writer)

	// Without SASL credentials the transport must stay unset so the writer
	// uses kafka.DefaultTransport; a typed-nil *kafka.Transport here would
	// make every Publish dereference a nil pointer.
	assert.Nil(t, p.writer.Transport)
}

func TestNewProducerSASLBroker(t *testing.T) {
	p := NewProducer(&config.Config{
		KafkaBroker:   "localhost:9092",
		KafkaTopic:    "events",
		KafkaUsername: "svc",
		KafkaPassword: "secret",
	})
	require.NotNil(t, p.writer)
	assert.NotNil(t, p.writer.Transport)
}

func TestNilProducerIsSafe(t *testing.T) {
	var p *Producer
	assert.NoError(t, p.Publish(Event{Type: TypeTaskCompleted}))
	p.Close()
}
