package bus

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
)

const defaultBuffer = 256

// MemoryBus delivers in process. Each subscription has its own buffer and
// goroutine; a full buffer drops the message and counts it.
type MemoryBus struct {
	mu      sync.RWMutex
	subs    []*memorySubscription
	buffer  int
	closed  atomic.Bool
	dropped atomic.Uint64
}

// MemoryOption configures a MemoryBus.
type MemoryOption func(*MemoryBus)

// WithBuffer sets the per-subscription buffer size.
func WithBuffer(n int) MemoryOption {
	return func(b *MemoryBus) {
		if n > 0 {
			b.buffer = n
		}
	}
}

func NewMemoryBus(opts ...MemoryOption) *MemoryBus {
	b := &MemoryBus{buffer: defaultBuffer}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Dropped reports how many deliveries were lost to full buffers.
func (b *MemoryBus) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *MemoryBus) Publish(ctx context.Context, subject string, data []byte) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := &Message{Subject: subject, Data: data}
	tokens := strings.Split(subject, ".")

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if !sub.pattern.match(tokens) {
			continue
		}
		select {
		case sub.inbox <- msg:
		default:
			b.dropped.Add(1)
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, subject string, handler Handler) (Subscription, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	sub := &memorySubscription{
		bus:     b,
		subject: subject,
		pattern: compilePattern(subject),
		inbox:   make(chan *Message, b.buffer),
		done:    make(chan struct{}),
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	go sub.deliver(ctx, handler)
	return sub, nil
}

// Close stops every subscription. Messages still buffered are discarded.
func (b *MemoryBus) Close() error {
	if b.closed.Swap(true) {
		return ErrClosed
	}

	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
	}
	return nil
}

func (b *MemoryBus) remove(target *memorySubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub == target {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

type memorySubscription struct {
	bus     *MemoryBus
	subject string
	pattern pattern
	inbox   chan *Message
	done    chan struct{}
	once    sync.Once
}

func (s *memorySubscription) Unsubscribe() error {
	s.bus.remove(s)
	s.stop()
	return nil
}

func (s *memorySubscription) Subject() string {
	return s.subject
}

func (s *memorySubscription) stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *memorySubscription) deliver(ctx context.Context, handler Handler) {
	defer s.bus.remove(s)
	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case msg := <-s.inbox:
			select {
			case <-s.done:
				return
			default:
			}
			handler(msg)
		}
	}
}

// pattern is a subject split into tokens once at subscribe time.
type pattern []string

func compilePattern(subject string) pattern {
	return strings.Split(subject, ".")
}

func (p pattern) match(subject []string) bool {
	for i, tok := range p {
		if tok == ">" {
			return len(subject) > i
		}
		if i >= len(subject) {
			return false
		}
		if tok != "*" && tok != subject[i] {
			return false
		}
	}
	return len(p) == len(subject)
}

// matchSubject reports whether subject matches the wildcard pattern.
func matchSubject(p, subject string) bool {
	return compilePattern(p).match(strings.Split(subject, "."))
}
