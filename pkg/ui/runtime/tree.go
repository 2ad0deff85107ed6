package runtime

import "sync"

// Tree guards the root component. Every access from the loop, the
// multiplexer and the render driver goes through its lock.
type Tree struct {
	mu   sync.Mutex
	root Component
}

// NewTree wraps root.
func NewTree(root Component) *Tree {
	return &Tree{root: root}
}

func (t *Tree) Init(actions Sender[Action], outbox Sender[Message]) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Init(t.root, actions, outbox)
}

// HandleEvents translates one raw event. A nil result becomes Noop.
func (t *Tree) HandleEvents(ev Event) Action {
	t.mu.Lock()
	defer t.mu.Unlock()
	return orNoop(HandleEvents(t.root, ev))
}

func (t *Tree) Dispatch(a Action) Action {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Dispatch(t.root, a)
}

// Render draws the root into the whole frame.
func (t *Tree) Render(f *Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root.Render(f, f.Area())
}

// Inspect runs fn with the lock held.
func (t *Tree) Inspect(fn func(Component)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.root)
}
