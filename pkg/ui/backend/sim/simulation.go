// Package sim provides a simulation surface for testing.
package sim

import (
	"strings"
	"sync"
	"unicode/utf8"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/shadotui/pkg/ui/backend"
	"github.com/odvcencio/shadotui/pkg/ui/backend/tcell"
	"github.com/odvcencio/shadotui/pkg/ui/terminal"
)

// Surface is a testable surface using tcell's simulation screen.
// Suspend restores the screen but never signals the process.
type Surface struct {
	*tcell.Surface
	screen tcellv2.SimulationScreen
	width  int
	height int

	mu        sync.Mutex
	entered   bool
	exited    bool
	suspended bool
}

// New creates a new simulation surface with the given dimensions.
func New(width, height int) *Surface {
	screen := tcellv2.NewSimulationScreen("")
	screen.SetSize(width, height)

	return &Surface{
		Surface: tcell.NewWithScreen(screen),
		screen:  screen,
		width:   width,
		height:  height,
	}
}

// Enter initializes the simulation screen at the requested size.
func (s *Surface) Enter() error {
	if err := s.Surface.Enter(); err != nil {
		return err
	}
	// Init resets the simulated terminal to 80x25.
	s.screen.SetSize(s.width, s.height)
	s.mu.Lock()
	s.entered = true
	s.mu.Unlock()
	return nil
}

// Exit finalizes the simulation screen.
func (s *Surface) Exit() error {
	s.mu.Lock()
	s.exited = true
	s.mu.Unlock()
	return s.Surface.Exit()
}

// Suspend records the suspension and exits.
func (s *Surface) Suspend() error {
	s.mu.Lock()
	s.suspended = true
	s.mu.Unlock()
	return s.Exit()
}

// Entered reports whether Enter succeeded.
func (s *Surface) Entered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entered
}

// Exited reports whether Exit or Suspend was called.
func (s *Surface) Exited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exited
}

// Suspended reports whether Suspend was called.
func (s *Surface) Suspended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suspended
}

// Resize changes the simulation screen size.
func (s *Surface) Resize(width, height int) {
	s.screen.SetSize(width, height)
}

// InjectKey injects a key press.
func (s *Surface) InjectKey(key terminal.Key, r rune) {
	_ = s.PostEvent(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectKeyRune injects a regular character keypress.
func (s *Surface) InjectKeyRune(r rune) {
	s.InjectKey(terminal.KeyRune, r)
}

// InjectKeyString injects a string as a sequence of key events.
func (s *Surface) InjectKeyString(str string) {
	for _, r := range str {
		s.InjectKeyRune(r)
	}
}

// InjectResize resizes the screen and posts the matching event.
func (s *Surface) InjectResize(width, height int) {
	s.screen.SetSize(width, height)
	_ = s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// Capture captures the current screen content as a string.
func (s *Surface) Capture() string {
	w, h := s.screen.Size()
	lines := make([]string, 0, h)

	for y := 0; y < h; y++ {
		var line strings.Builder
		for x := 0; x < w; x++ {
			mainc, comb, _, _ := s.screen.GetContent(x, y)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
			for _, c := range comb {
				line.WriteRune(c)
			}
		}
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

// FindText searches for text on the screen and returns its cell position,
// or (-1, -1).
func (s *Surface) FindText(text string) (x, y int) {
	for row, line := range strings.Split(s.Capture(), "\n") {
		if i := strings.Index(line, text); i >= 0 {
			return utf8.RuneCountInString(line[:i]), row
		}
	}
	return -1, -1
}

// ContainsText returns true if the text appears anywhere on screen.
func (s *Surface) ContainsText(text string) bool {
	x, y := s.FindText(text)
	return x >= 0 && y >= 0
}

// CaptureStyle returns the foreground color and attributes at a cell.
func (s *Surface) CaptureStyle(x, y int) (backend.Color, backend.AttrMask) {
	_, _, ts, _ := s.screen.GetContent(x, y)
	fg, _, attrs := ts.Decompose()

	var mask backend.AttrMask
	if attrs&tcellv2.AttrBold != 0 {
		mask |= backend.AttrBold
	}
	if attrs&tcellv2.AttrDim != 0 {
		mask |= backend.AttrDim
	}
	if attrs&tcellv2.AttrReverse != 0 {
		mask |= backend.AttrReverse
	}
	return convertTcellColor(fg), mask
}

func convertTcellColor(tc tcellv2.Color) backend.Color {
	if tc == tcellv2.ColorDefault {
		return backend.ColorDefault
	}
	if tc&tcellv2.ColorIsRGB != 0 {
		r, g, b := tc.RGB()
		return backend.ColorRGB(uint8(r), uint8(g), uint8(b))
	}
	return backend.Color(tc & 0xFF)
}

var _ backend.Surface = (*Surface)(nil)
