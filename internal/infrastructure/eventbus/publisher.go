// Package eventbus delivers serialized meetup events to a message broker.
package eventbus

import (
	"context"

	"github.com/rs/zerolog"
)

// Publisher sends a payload under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// LogPublisher writes events to the log instead of a broker.
// Used when no broker URL is configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.log.Info().
		Str("routing_key", routingKey).
		RawJSON("event", payload).
		Msg("event published")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
