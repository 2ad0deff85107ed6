// Package terminal provides the raw terminal input events read from a surface.
package terminal

// Event represents a terminal input event.
type Event interface {
	eventMarker()
}

// KeyKind distinguishes presses from the repeat and release reports some
// terminals send. The zero value is KeyPress.
type KeyKind int

const (
	KeyPress KeyKind = iota
	KeyRepeat
	KeyRelease
)

func (k KeyKind) String() string {
	switch k {
	case KeyPress:
		return "press"
	case KeyRepeat:
		return "repeat"
	case KeyRelease:
		return "release"
	default:
		return "unknown"
	}
}

// KeyEvent represents a keyboard report.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Kind  KeyKind
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) eventMarker() {}

// IsRune reports whether the event is the plain character r.
func (e KeyEvent) IsRune(r rune) bool {
	return e.Key == KeyRune && e.Rune == r
}

// ResizeEvent indicates terminal size changed.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// MouseEvent represents a mouse input event.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseEvent) eventMarker() {}

// PasteEvent represents bracketed paste content.
type PasteEvent struct {
	Text string
}

func (PasteEvent) eventMarker() {}

// ErrorEvent reports a failed read from the terminal. Readers keep going
// after delivering one.
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) eventMarker() {}

// MouseButton identifies which mouse button was involved.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction identifies what happened with the mouse.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// Key represents special keys.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyCtrlC
	KeyCtrlD
	KeyCtrlZ
)
