// Package tcell provides a Surface implementation using tcell.
package tcell

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/shadotui/pkg/errors"
	"github.com/odvcencio/shadotui/pkg/ui/backend"
	"github.com/odvcencio/shadotui/pkg/ui/terminal"
)

var (
	activeMu sync.Mutex
	active   *Surface
)

// RestoreActive exits whichever surface is currently entered.
// It is meant for crash handlers that have no handle on the surface.
func RestoreActive() {
	activeMu.Lock()
	s := active
	activeMu.Unlock()
	if s != nil {
		_ = s.Exit()
	}
}

// Surface implements backend.Surface using tcell.
type Surface struct {
	screen tcell.Screen

	mu      sync.Mutex
	entered bool
	exited  bool

	// Bracketed paste and held mouse buttons, only touched by PollEvent
	inPaste     bool
	pasteBuffer strings.Builder
	mouse       mouseTracker
}

// New creates a surface over a fresh terminal screen.
func New() (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTerminalEnter, "create terminal screen")
	}
	return &Surface{screen: screen}, nil
}

// NewWithScreen creates a surface with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen) *Surface {
	return &Surface{screen: screen}
}

// Enter initializes the screen.
func (s *Surface) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exited {
		return errors.New(errors.ErrCodeTerminalEnter, "surface already exited")
	}
	if s.entered {
		return nil
	}
	if err := s.screen.Init(); err != nil {
		return errors.Wrap(err, errors.ErrCodeTerminalEnter, "init terminal screen")
	}
	s.screen.EnableMouse()
	s.screen.EnablePaste()
	s.screen.HideCursor()
	s.entered = true

	activeMu.Lock()
	active = s
	activeMu.Unlock()
	return nil
}

// Exit restores the terminal.
func (s *Surface) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.entered || s.exited {
		s.exited = true
		return nil
	}
	s.exited = true

	activeMu.Lock()
	if active == s {
		active = nil
	}
	activeMu.Unlock()

	s.screen.DisableMouse()
	s.screen.DisablePaste()
	s.screen.Fini()
	return nil
}

// Suspend exits and stops the process until it is continued.
func (s *Surface) Suspend() error {
	if err := s.Exit(); err != nil {
		return err
	}
	if err := raiseStop(); err != nil {
		return errors.Wrap(err, errors.ErrCodeTerminalExit, "raise SIGTSTP")
	}
	return nil
}

// Size returns the terminal dimensions.
func (s *Surface) Size() (width, height int) {
	return s.screen.Size()
}

// SetContent sets a cell at position (x, y).
func (s *Surface) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	s.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

// Show synchronizes the buffer to the terminal.
func (s *Surface) Show() {
	s.screen.Show()
}

// Clear clears the screen.
func (s *Surface) Clear() {
	s.screen.Clear()
}

// HideCursor hides the cursor.
func (s *Surface) HideCursor() {
	s.screen.HideCursor()
}

// SetCursorPos shows the cursor at the position.
func (s *Surface) SetCursorPos(x, y int) {
	s.screen.ShowCursor(x, y)
}

// PollEvent blocks until an event is available.
func (s *Surface) PollEvent() terminal.Event {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventPaste:
			if e.Start() {
				s.inPaste = true
				s.pasteBuffer.Reset()
				continue
			}
			if e.End() {
				s.inPaste = false
				text := s.pasteBuffer.String()
				s.pasteBuffer.Reset()
				if text != "" {
					return terminal.PasteEvent{Text: text}
				}
				continue
			}

		case *tcell.EventKey:
			if s.inPaste {
				switch e.Key() {
				case tcell.KeyRune:
					s.pasteBuffer.WriteRune(e.Rune())
				case tcell.KeyEnter:
					s.pasteBuffer.WriteRune('\n')
				case tcell.KeyTab:
					s.pasteBuffer.WriteRune('\t')
				}
				continue
			}
		}

		if converted := convertEvent(ev, &s.mouse); converted != nil {
			return converted
		}
	}
}

// PostEvent injects an event into the queue.
func (s *Surface) PostEvent(ev terminal.Event) error {
	if tev := reverseConvertEvent(ev); tev != nil {
		return s.screen.PostEvent(tev)
	}
	return nil
}

func convertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	style := tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg))

	if attrs&backend.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&backend.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&backend.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	if attrs&backend.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	return style
}

func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

// convertEvent translates ev. Mouse reports are classified against the
// buttons mouse last saw held.
func convertEvent(ev tcell.Event, mouse *mouseTracker) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		key, r := convertKey(e.Key(), e.Rune())
		mods := e.Modifiers()
		if key == terminal.KeyRune && mods&tcell.ModCtrl != 0 {
			if ctrl, ok := ctrlRunes[r]; ok {
				key, r = ctrl, 0
			}
		}
		return terminal.KeyEvent{
			Key:   key,
			Rune:  r,
			Kind:  terminal.KeyPress,
			Alt:   mods&tcell.ModAlt != 0,
			Ctrl:  mods&tcell.ModCtrl != 0,
			Shift: mods&tcell.ModShift != 0,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		return mouse.convert(e)
	case *tcell.EventError:
		return terminal.ErrorEvent{Err: e}
	default:
		return nil
	}
}

// Some terminals report control chords as runes with ModCtrl.
var ctrlRunes = map[rune]terminal.Key{
	'c': terminal.KeyCtrlC,
	'd': terminal.KeyCtrlD,
	'z': terminal.KeyCtrlZ,
}

func convertKey(k tcell.Key, r rune) (terminal.Key, rune) {
	switch k {
	case tcell.KeyRune:
		return terminal.KeyRune, r
	case tcell.KeyUp:
		return terminal.KeyUp, 0
	case tcell.KeyDown:
		return terminal.KeyDown, 0
	case tcell.KeyRight:
		return terminal.KeyRight, 0
	case tcell.KeyLeft:
		return terminal.KeyLeft, 0
	case tcell.KeyPgUp:
		return terminal.KeyPageUp, 0
	case tcell.KeyPgDn:
		return terminal.KeyPageDown, 0
	case tcell.KeyHome:
		return terminal.KeyHome, 0
	case tcell.KeyEnd:
		return terminal.KeyEnd, 0
	case tcell.KeyInsert:
		return terminal.KeyInsert, 0
	case tcell.KeyDelete:
		return terminal.KeyDelete, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return terminal.KeyBackspace, 0
	case tcell.KeyTab:
		return terminal.KeyTab, 0
	case tcell.KeyEnter:
		return terminal.KeyEnter, 0
	case tcell.KeyEscape:
		return terminal.KeyEscape, 0
	case tcell.KeyCtrlC:
		return terminal.KeyCtrlC, 0
	case tcell.KeyCtrlD:
		return terminal.KeyCtrlD, 0
	case tcell.KeyCtrlZ:
		return terminal.KeyCtrlZ, 0
	default:
		return terminal.KeyNone, 0
	}
}

func convertMouseButton(buttons tcell.ButtonMask) terminal.MouseButton {
	switch {
	case buttons&tcell.WheelUp != 0:
		return terminal.MouseWheelUp
	case buttons&tcell.WheelDown != 0:
		return terminal.MouseWheelDown
	case buttons&tcell.Button1 != 0:
		return terminal.MouseLeft
	case buttons&tcell.Button2 != 0:
		return terminal.MouseMiddle
	case buttons&tcell.Button3 != 0:
		return terminal.MouseRight
	default:
		return terminal.MouseNone
	}
}

const (
	pointerButtons = tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.Button4 |
		tcell.Button5 | tcell.Button6 | tcell.Button7 | tcell.Button8
	wheelButtons = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight
)

// mouseTracker remembers the held buttons. tcell reports every mouse
// update as the current button mask, so press, release and motion are only
// told apart by comparing with the previous report.
type mouseTracker struct {
	held tcell.ButtonMask
}

func (m *mouseTracker) convert(e *tcell.EventMouse) terminal.MouseEvent {
	x, y := e.Position()
	mods := e.Modifiers()
	buttons := e.Buttons()
	pressed := buttons & pointerButtons
	prev := m.held
	m.held = pressed

	ev := terminal.MouseEvent{
		X:     x,
		Y:     y,
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}
	switch {
	case buttons&wheelButtons != 0:
		ev.Button, ev.Action = convertMouseButton(buttons), terminal.MousePress
	case pressed&^prev != 0:
		ev.Button, ev.Action = convertMouseButton(pressed&^prev), terminal.MousePress
	case prev&^pressed != 0:
		ev.Button, ev.Action = convertMouseButton(prev&^pressed), terminal.MouseRelease
	default:
		ev.Button, ev.Action = convertMouseButton(pressed), terminal.MouseMove
	}
	return ev
}

func reverseConvertEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	case terminal.KeyEvent:
		var mods tcell.ModMask
		if e.Alt {
			mods |= tcell.ModAlt
		}
		if e.Ctrl {
			mods |= tcell.ModCtrl
		}
		if e.Shift {
			mods |= tcell.ModShift
		}
		return tcell.NewEventKey(reverseKey(e.Key), e.Rune, mods)
	case terminal.ErrorEvent:
		return tcell.NewEventError(e.Err)
	default:
		return nil
	}
}

func reverseKey(k terminal.Key) tcell.Key {
	switch k {
	case terminal.KeyEnter:
		return tcell.KeyEnter
	case terminal.KeyBackspace:
		return tcell.KeyBackspace2
	case terminal.KeyTab:
		return tcell.KeyTab
	case terminal.KeyEscape:
		return tcell.KeyEscape
	case terminal.KeyUp:
		return tcell.KeyUp
	case terminal.KeyDown:
		return tcell.KeyDown
	case terminal.KeyLeft:
		return tcell.KeyLeft
	case terminal.KeyRight:
		return tcell.KeyRight
	case terminal.KeyHome:
		return tcell.KeyHome
	case terminal.KeyEnd:
		return tcell.KeyEnd
	case terminal.KeyPageUp:
		return tcell.KeyPgUp
	case terminal.KeyPageDown:
		return tcell.KeyPgDn
	case terminal.KeyDelete:
		return tcell.KeyDelete
	case terminal.KeyInsert:
		return tcell.KeyInsert
	case terminal.KeyCtrlC:
		return tcell.KeyCtrlC
	case terminal.KeyCtrlD:
		return tcell.KeyCtrlD
	case terminal.KeyCtrlZ:
		return tcell.KeyCtrlZ
	default:
		return tcell.KeyRune
	}
}

var _ backend.Surface = (*Surface)(nil)
