// Package bus carries host notifications between the loop and whoever
// listens for them. The in-memory bus is the default; NATS is used when a
// server URL is configured.
package bus

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned when operating on a closed bus.
var ErrClosed = errors.New("bus closed")

// Bus is a fire-and-forget publish/subscribe transport, safe for
// concurrent use.
type Bus interface {
	Publish(ctx context.Context, subject string, data []byte) error

	// Subscribe delivers messages matching subject to handler until the
	// subscription is dropped or ctx ends. Subjects are dot separated;
	// "*" matches one token and a trailing ">" matches the rest.
	Subscribe(ctx context.Context, subject string, handler Handler) (Subscription, error)

	Close() error
}

// Handler processes one delivered message.
type Handler func(msg *Message)

// Message is a delivered payload and the subject it was published on.
type Message struct {
	Subject string
	Data    []byte
}

// Subscription is a live registration on a Bus.
type Subscription interface {
	Unsubscribe() error
	Subject() string
}

// NATSConfig holds the connection settings for a NATS bus.
type NATSConfig struct {
	URL     string
	Name    string
	Timeout time.Duration
}

// DefaultNATSConfig targets a local server.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:     "nats://localhost:4222",
		Name:    "shadotui",
		Timeout: 5 * time.Second,
	}
}
