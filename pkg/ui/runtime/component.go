package runtime

import "github.com/odvcencio/shadotui/pkg/ui/terminal"

// Component is a node in the UI state tree. Render is the only required
// capability; the rest are optional interfaces checked at call time.
type Component interface {
	Render(f *Frame, area Rect) error
}

// Initializer receives the action sender and the optional host outbox
// before the loop starts. outbox may be nil.
type Initializer interface {
	Init(actions Sender[Action], outbox Sender[Message]) error
}

// EventHandler replaces the default raw event translation.
type EventHandler interface {
	HandleEvents(ev Event) Action
}

// KeyHandler translates key presses under the default event translation.
type KeyHandler interface {
	HandleKeyEvents(key terminal.KeyEvent) Action
}

// MouseHandler translates mouse events under the default event translation.
type MouseHandler interface {
	HandleMouseEvents(mouse terminal.MouseEvent) Action
}

// Dispatcher mutates state in response to an action and may return a
// follow-up action for the loop to enqueue. nil means none.
type Dispatcher interface {
	Dispatch(a Action) Action
}

// Init calls c's Initializer if it has one.
func Init(c Component, actions Sender[Action], outbox Sender[Message]) error {
	if i, ok := c.(Initializer); ok {
		return i.Init(actions, outbox)
	}
	return nil
}

// HandleEvents translates ev with c's EventHandler, falling back to
// DefaultHandleEvents.
func HandleEvents(c Component, ev Event) Action {
	if h, ok := c.(EventHandler); ok {
		return h.HandleEvents(ev)
	}
	return DefaultHandleEvents(c, ev)
}

// DefaultHandleEvents maps ticks, resizes and quit to their orchestration
// actions and routes keys and mouse to c's handlers. Everything else,
// including errors and a closed source, becomes Noop.
func DefaultHandleEvents(c Component, ev Event) Action {
	switch e := ev.(type) {
	case QuitEvent:
		return Quit{}
	case AppTickEvent:
		return Tick{}
	case RenderTickEvent:
		return RenderTick{}
	case ResizeEvent:
		return Resize{Width: e.Width, Height: e.Height}
	case KeyEvent:
		if h, ok := c.(KeyHandler); ok {
			return orNoop(h.HandleKeyEvents(e.KeyEvent))
		}
	case MouseEvent:
		if h, ok := c.(MouseHandler); ok {
			return orNoop(h.HandleMouseEvents(e.MouseEvent))
		}
	}
	return Noop{}
}

// Dispatch calls c's Dispatcher if it has one.
func Dispatch(c Component, a Action) Action {
	if d, ok := c.(Dispatcher); ok {
		return d.Dispatch(a)
	}
	return nil
}

func orNoop(a Action) Action {
	if a == nil {
		return Noop{}
	}
	return a
}
