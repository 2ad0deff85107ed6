package bus

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSBus publishes over core NATS. Delivery is at most once, matching the
// in-memory bus.
type NATSBus struct {
	conn   *nats.Conn
	closed atomic.Bool
}

// NewNATSBus connects to cfg.URL. The connection reconnects forever once
// established; only the initial dial can fail.
func NewNATSBus(cfg NATSConfig) (*NATSBus, error) {
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.Timeout(cfg.Timeout),
		nats.DrainTimeout(cfg.Timeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", cfg.URL, err)
	}
	return &NATSBus{conn: conn}, nil
}

// Publish queues data on the connection. When ctx carries a deadline the
// call also waits for the server to acknowledge the flush.
func (b *NATSBus) Publish(ctx context.Context, subject string, data []byte) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.conn.Publish(subject, data); err != nil {
		return err
	}
	if _, ok := ctx.Deadline(); ok {
		return b.conn.FlushWithContext(ctx)
	}
	return nil
}

// Subscribe registers handler; the subscription is dropped when ctx ends.
func (b *NATSBus) Subscribe(ctx context.Context, subject string, handler Handler) (Subscription, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	sub, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{Subject: msg.Subject, Data: msg.Data})
	})
	if err != nil {
		return nil, fmt.Errorf("nats subscribe %s: %w", subject, err)
	}

	if done := ctx.Done(); done != nil {
		go func() {
			<-done
			_ = sub.Unsubscribe()
		}()
	}
	return natsSubscription{sub: sub}, nil
}

// Close drains pending publishes before closing the connection.
func (b *NATSBus) Close() error {
	if b.closed.Swap(true) {
		return ErrClosed
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return err
	}
	return nil
}

type natsSubscription struct {
	sub *nats.Subscription
}

func (s natsSubscription) Unsubscribe() error { return s.sub.Unsubscribe() }
func (s natsSubscription) Subject() string    { return s.sub.Subject }
