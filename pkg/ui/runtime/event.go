package runtime

import (
	"fmt"

	"github.com/odvcencio/shadotui/pkg/ui/terminal"
)

// Event is a raw event produced by the Multiplexer. Events never reach the
// loop directly; the tree translates them into actions first.
type Event interface {
	isEvent()
}

// QuitEvent is produced when the process receives an interrupt signal.
type QuitEvent struct{}

func (QuitEvent) isEvent() {}

// ErrorEvent reports a failed terminal read. Input continues afterwards.
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}

// ClosedEvent is produced once when the input source ends.
type ClosedEvent struct{}

func (ClosedEvent) isEvent() {}

// RenderTickEvent fires on the render period.
type RenderTickEvent struct{}

func (RenderTickEvent) isEvent() {}

// AppTickEvent fires on the logic period.
type AppTickEvent struct{}

func (AppTickEvent) isEvent() {}

// KeyEvent wraps a key press.
type KeyEvent struct {
	terminal.KeyEvent
}

func (KeyEvent) isEvent() {}

// MouseEvent wraps a mouse press, release or wheel report.
type MouseEvent struct {
	terminal.MouseEvent
}

func (MouseEvent) isEvent() {}

// ResizeEvent reports the new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}

// eventKind labels events for logs and metrics.
func eventKind(ev Event) string {
	switch ev.(type) {
	case QuitEvent:
		return "quit"
	case ErrorEvent:
		return "error"
	case ClosedEvent:
		return "closed"
	case RenderTickEvent:
		return "render_tick"
	case AppTickEvent:
		return "app_tick"
	case KeyEvent:
		return "key"
	case MouseEvent:
		return "mouse"
	case ResizeEvent:
		return "resize"
	default:
		return "unknown"
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
