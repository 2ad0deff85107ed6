package telemetry

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// NotificationStream fans host notifications out to websocket clients.
// A client may pass ?kind=<kind> to receive only that kind.
type NotificationStream struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	upgrader    websocket.Upgrader
}

type subscriber struct {
	conn *websocket.Conn
	kind string
	send chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

// NewNotificationStream creates an empty stream.
func NewNotificationStream() *NotificationStream {
	return &NotificationStream{
		subscribers: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Subscribers returns the number of connected clients.
func (st *NotificationStream) Subscribers() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.subscribers)
}

// Broadcast queues data for every interested client. Slow clients drop
// messages rather than block the caller.
func (st *NotificationStream) Broadcast(kind string, data []byte) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for sub := range st.subscribers {
		if sub.kind != "" && sub.kind != kind {
			continue
		}
		select {
		case sub.send <- data:
		default:
		}
	}
}

// Close disconnects every client.
func (st *NotificationStream) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for sub := range st.subscribers {
		sub.close()
		delete(st.subscribers, sub)
	}
}

// ServeHTTP upgrades the request and registers the client.
func (st *NotificationStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := st.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	sub := &subscriber{
		conn: conn,
		kind: r.URL.Query().Get("kind"),
		send: make(chan []byte, 64),
	}

	st.mu.Lock()
	st.subscribers[sub] = struct{}{}
	st.mu.Unlock()

	go sub.writePump()
	go st.readPump(sub)
}

func (st *NotificationStream) remove(sub *subscriber) {
	st.mu.Lock()
	delete(st.subscribers, sub)
	st.mu.Unlock()
	sub.close()
}

// readPump only watches for the client going away.
func (st *NotificationStream) readPump(sub *subscriber) {
	defer st.remove(sub)

	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := sub.conn.NextReader(); err != nil {
			return
		}
	}
}

func (sub *subscriber) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = sub.conn.Close()
	}()

	for {
		select {
		case data, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
