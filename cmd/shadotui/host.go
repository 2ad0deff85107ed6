package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/shadotui/pkg/bus"
	"github.com/odvcencio/shadotui/pkg/logging"
	"github.com/odvcencio/shadotui/pkg/telemetry"
	"github.com/odvcencio/shadotui/pkg/ui/crash"
	"github.com/odvcencio/shadotui/pkg/ui/runtime"
)

// Notification is the JSON payload published for each host message.
type Notification struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	Text      string    `json:"text,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// appRunner is the part of runtime.App the host drives.
type appRunner interface {
	Run(ctx context.Context) error
}

// host consumes the UI outbox and republishes it on the bus.
type host struct {
	bus       bus.Bus
	subject   string
	sessionID string
	logger    *logging.Logger
	metrics   *telemetry.Metrics
}

// run starts app and forwards its messages until a QuitMessage arrives or
// the app returns. After a QuitMessage it waits for the app's result.
func (h *host) run(ctx context.Context, app appRunner, outbox *runtime.Queue[runtime.Message]) error {
	result := make(chan error, 1)
	go func() {
		defer crash.Recover()
		result <- app.Run(ctx)
	}()

	for {
		select {
		case err := <-result:
			h.drain(ctx, outbox)
			return err
		case <-outbox.Ready():
			for {
				msg, ok := outbox.TryRecv()
				if !ok {
					break
				}
				h.forward(ctx, msg)
				if _, quit := msg.(runtime.QuitMessage); quit {
					return <-result
				}
			}
		}
	}
}

func (h *host) drain(ctx context.Context, outbox *runtime.Queue[runtime.Message]) {
	for {
		msg, ok := outbox.TryRecv()
		if !ok {
			return
		}
		h.forward(ctx, msg)
	}
}

// forward publishes one message. Failures are logged and counted, never
// fatal.
func (h *host) forward(ctx context.Context, msg runtime.Message) {
	n := Notification{
		ID:        ulid.Make().String(),
		SessionID: h.sessionID,
		Timestamp: time.Now().UTC(),
	}
	switch m := msg.(type) {
	case runtime.TextMessage:
		n.Kind = "text"
		n.Text = m.Text
	case runtime.QuitMessage:
		n.Kind = "quit"
	default:
		n.Kind = "unknown"
	}

	err := h.publish(ctx, n)
	h.metrics.ObserveNotification(n.Kind, err)
	if err != nil {
		_ = h.logger.Warn(logging.CategoryHost, "publish_failed", "notification not published", map[string]any{
			"id":    n.ID,
			"kind":  n.Kind,
			"error": err.Error(),
		})
		return
	}
	_ = h.logger.Info(logging.CategoryHost, "notification", n.Kind, map[string]any{
		"id":   n.ID,
		"text": n.Text,
	})
}

// publishTimeout bounds each publish. It is detached from the run context
// so the final quit notification still goes out after cancellation.
const publishTimeout = 2 * time.Second

func (h *host) publish(ctx context.Context, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	return h.bus.Publish(ctx, h.subject, data)
}

// relay passes delivered notifications on to websocket clients.
func relay(stream *telemetry.NotificationStream, logger *logging.Logger) bus.Handler {
	return func(m *bus.Message) {
		var n Notification
		if err := json.Unmarshal(m.Data, &n); err != nil {
			_ = logger.Warn(logging.CategoryHost, "bad_notification", "undecodable notification", map[string]any{
				"subject": m.Subject,
				"error":   err.Error(),
			})
			return
		}
		_ = logger.Debug(logging.CategoryHost, "delivered", n.Kind, map[string]any{
			"subject": m.Subject,
			"id":      n.ID,
		})
		if stream != nil {
			stream.Broadcast(n.Kind, m.Data)
		}
	}
}

// closeBus shuts b down and records deliveries it dropped on the way.
func closeBus(b bus.Bus, logger *logging.Logger) {
	if counted, ok := b.(interface{ Dropped() uint64 }); ok {
		if n := counted.Dropped(); n > 0 {
			_ = logger.Warn(logging.CategoryHost, "notifications_dropped", "slow subscriber lost notifications", map[string]any{
				"dropped": n,
			})
		}
	}
	if err := b.Close(); err != nil {
		_ = logger.Warn(logging.CategoryHost, "bus_close_failed", err.Error(), nil)
	}
}
