package runtime

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odvcencio/shadotui/pkg/ui/backend"
	"github.com/odvcencio/shadotui/pkg/ui/terminal"
)

// keyAction is what recorder produces for a key press.
type keyAction struct{ r rune }

func (keyAction) ActionName() string { return "Key" }

// step is a domain action used to check dispatch order.
type step struct{ n int }

func (step) ActionName() string { return "Step" }

// bump increments recorder.count and optionally asks for a follow-up.
type bump struct{ then Action }

func (bump) ActionName() string { return "Bump" }

type mouseAction struct{ e terminal.MouseEvent }

func (mouseAction) ActionName() string { return "Mouse" }

type eventAction struct{ ev Event }

func (eventAction) ActionName() string { return "Event" }

// recorder is a root component that remembers everything dispatched to it.
type recorder struct {
	mu         sync.Mutex
	dispatched []Action
	count      int
	renderErr  error
	rawEvents  bool
	cursor     bool
	inits      int
	actions    Sender[Action]
	outbox     Sender[Message]
}

func (r *recorder) Init(actions Sender[Action], outbox Sender[Message]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inits++
	r.actions, r.outbox = actions, outbox
	return nil
}

func (r *recorder) HandleEvents(ev Event) Action {
	if r.rawEvents {
		switch ev.(type) {
		case ClosedEvent, ErrorEvent:
			return eventAction{ev: ev}
		}
	}
	return DefaultHandleEvents(r, ev)
}

func (r *recorder) HandleKeyEvents(key terminal.KeyEvent) Action {
	if key.Key == terminal.KeyCtrlZ {
		return Suspend{}
	}
	return keyAction{r: key.Rune}
}

func (r *recorder) HandleMouseEvents(m terminal.MouseEvent) Action {
	return mouseAction{e: m}
}

func (r *recorder) Dispatch(a Action) Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatched = append(r.dispatched, a)
	if b, ok := a.(bump); ok {
		r.count++
		return b.then
	}
	return nil
}

func (r *recorder) Render(f *Frame, area Rect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderErr != nil {
		return r.renderErr
	}
	f.SetString(area.X, area.Y, fmt.Sprintf("count=%d", r.count), backend.DefaultStyle(), -1)
	if r.cursor {
		f.SetCursor(3, 1)
	}
	return nil
}

func (r *recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Steps returns dispatched step numbers in order.
func (r *recorder) Steps() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for _, a := range r.dispatched {
		if s, ok := a.(step); ok {
			out = append(out, s.n)
		}
	}
	return out
}

func (r *recorder) Dispatched() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Action(nil), r.dispatched...)
}

// fakeSource feeds scripted terminal events to a multiplexer.
type fakeSource struct {
	events chan terminal.Event
	once   sync.Once
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan terminal.Event, 64)}
}

func (s *fakeSource) PollEvent() terminal.Event {
	ev, ok := <-s.events
	if !ok {
		return nil
	}
	return ev
}

func (s *fakeSource) Close() {
	s.once.Do(func() { close(s.events) })
}

// recvUntil pulls actions from q until match returns true.
func recvUntil(t *testing.T, q *Queue[Action], match func(Action) bool) []Action {
	t.Helper()
	var seen []Action
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-q.Ready():
			for {
				a, ok := q.TryRecv()
				if !ok {
					break
				}
				seen = append(seen, a)
				if match(a) {
					return seen
				}
			}
		case <-deadline:
			require.FailNow(t, "timed out waiting for action", "seen %v", seen)
			return nil
		}
	}
}
