package runtime

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Send after Close, and by Recv once a closed
// queue has drained.
var ErrQueueClosed = errors.New("queue closed")

// Queue is an unbounded multi-producer FIFO. Send never blocks.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	ready  chan struct{}
	done   chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{ready: make(chan struct{}, 1), done: make(chan struct{})}
}

// Send appends v.
func (q *Queue[T]) Send(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, v)
	q.signal()
	return nil
}

// Ready fires when items may be available or the queue was closed. After a
// receive from Ready, drain with TryRecv; the signal is re-armed while items
// remain.
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}

// TryRecv pops the oldest item without blocking.
func (q *Queue[T]) TryRecv() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) > 0 {
		q.signal()
	}
	return v, true
}

// Recv blocks until an item is available, ctx is done, or the queue is
// closed and empty.
func (q *Queue[T]) Recv(ctx context.Context) (T, error) {
	for {
		if v, ok := q.TryRecv(); ok {
			return v, nil
		}
		if q.Closed() {
			var zero T
			return zero, ErrQueueClosed
		}
		select {
		case <-q.ready:
		case <-q.done:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close rejects further sends. Items already queued can still be received.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
	q.signal()
}

// signal must be called with mu held.
func (q *Queue[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
