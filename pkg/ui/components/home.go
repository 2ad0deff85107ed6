// Package components holds the example UI: a Home root with a counter, a
// ticker, a text input and a toggleable Other pane.
package components

import (
	"fmt"
	"math"
	"time"

	"github.com/odvcencio/shadotui/pkg/logging"
	"github.com/odvcencio/shadotui/pkg/ui/backend"
	"github.com/odvcencio/shadotui/pkg/ui/crash"
	"github.com/odvcencio/shadotui/pkg/ui/runtime"
	"github.com/odvcencio/shadotui/pkg/ui/terminal"
	"github.com/odvcencio/shadotui/pkg/ui/widgets"
)

// DefaultProcessingDelay is how long a scheduled counter update waits.
const DefaultProcessingDelay = 5 * time.Second

const helpText = "Press j or k to increment or decrement.\n\nCounter: %d\n\nTicker: %d"

var (
	textStyle      = backend.DefaultStyle().Foreground(backend.ColorCyan)
	highlightStyle = backend.DefaultStyle().Foreground(backend.ColorYellow)
	hintStyle      = backend.DefaultStyle().Foreground(backend.ColorGray)
	keyStyle       = backend.DefaultStyle().Foreground(backend.ColorWhite).Bold(true)
)

// HomeOption configures a Home.
type HomeOption func(*Home)

// WithProcessingDelay sets the wait before a scheduled update lands.
func WithProcessingDelay(d time.Duration) HomeOption {
	return func(h *Home) {
		if d >= 0 {
			h.delay = d
		}
	}
}

// WithLogger records pending operations that outlive the loop.
func WithLogger(l *logging.Logger) HomeOption {
	return func(h *Home) { h.logger = l }
}

// Home is the root component.
type Home struct {
	counter   uint
	ticker    uint
	mode      Mode
	input     *widgets.Input
	other     *Other
	showOther bool

	delay   time.Duration
	logger  *logging.Logger
	actions runtime.Sender[runtime.Action]
	outbox  runtime.Sender[runtime.Message]
}

// NewHome creates a Home in Normal mode.
func NewHome(opts ...HomeOption) *Home {
	h := &Home{
		input: widgets.NewInput(""),
		other: &Other{},
		delay: DefaultProcessingDelay,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Home) Counter() uint   { return h.counter }
func (h *Home) Ticker() uint    { return h.ticker }
func (h *Home) Mode() Mode      { return h.mode }
func (h *Home) ShowOther() bool { return h.showOther }

// InputValue returns the text typed so far.
func (h *Home) InputValue() string { return h.input.Value() }

func (h *Home) Init(actions runtime.Sender[runtime.Action], outbox runtime.Sender[runtime.Message]) error {
	h.actions = actions
	h.outbox = outbox
	return h.other.Init(actions, outbox)
}

func (h *Home) HandleKeyEvents(key terminal.KeyEvent) runtime.Action {
	if h.mode == ModeInsert {
		switch key.Key {
		case terminal.KeyEscape:
			return EnterNormal{}
		case terminal.KeyEnter:
			return CompleteInput{Text: h.input.Value()}
		default:
			h.input.HandleKey(key)
			return Update{}
		}
	}

	switch {
	case key.IsRune('q'), key.Key == terminal.KeyCtrlD, key.Key == terminal.KeyCtrlC:
		return runtime.Quit{}
	case key.Key == terminal.KeyCtrlZ:
		return runtime.Suspend{}
	case key.IsRune('l'):
		return ToggleShowOther{}
	case key.IsRune('j'):
		return ScheduleIncrement{}
	case key.IsRune('k'):
		return ScheduleDecrement{}
	case key.IsRune('/'):
		return EnterInsert{}
	default:
		return runtime.Tick{}
	}
}

func (h *Home) Dispatch(a runtime.Action) runtime.Action {
	switch a := a.(type) {
	case runtime.Tick:
		if h.ticker < math.MaxUint {
			h.ticker++
		}
	case ToggleShowOther:
		h.showOther = !h.showOther
	case ScheduleIncrement:
		h.schedule(Increment{N: 1})
	case ScheduleDecrement:
		h.schedule(Decrement{N: 1})
	case Increment:
		if h.counter > math.MaxUint-a.N {
			h.counter = math.MaxUint
		} else {
			h.counter += a.N
		}
	case Decrement:
		if a.N > h.counter {
			h.counter = 0
		} else {
			h.counter -= a.N
		}
	case EnterNormal, ExitProcessing:
		h.mode = ModeNormal
	case EnterInsert:
		h.mode = ModeInsert
	case EnterProcessing:
		h.mode = ModeProcessing
	case CompleteInput:
		if h.outbox != nil {
			if err := h.outbox.Send(runtime.TextMessage{Text: a.Text}); err != nil {
				_ = h.logger.Warn(logging.CategoryDispatch, "outbox_closed", "input not delivered", map[string]any{
					"error": err.Error(),
				})
			}
		}
		return EnterNormal{}
	}
	return nil
}

// schedule runs the processing sequence on its own goroutine. Sends after
// the loop has shut down are dropped.
func (h *Home) schedule(update runtime.Action) {
	actions, delay, logger := h.actions, h.delay, h.logger
	if actions == nil {
		return
	}
	go func() {
		defer crash.Recover()
		send := func(a runtime.Action) bool {
			if err := actions.Send(a); err != nil {
				_ = logger.Debug(logging.CategoryDispatch, "pending_dropped", "scheduled update dropped", map[string]any{
					"action": a.ActionName(),
				})
				return false
			}
			return true
		}
		if !send(EnterProcessing{}) {
			return
		}
		time.Sleep(delay)
		if send(update) {
			send(ExitProcessing{})
		}
	}()
}

func (h *Home) Render(f *runtime.Frame, area runtime.Rect) error {
	if h.showOther {
		cols := area.SplitHorizontal(50, 50)
		if err := h.other.Render(f, cols[1]); err != nil {
			return err
		}
		area = cols[0]
	}
	top, bottom := area.SplitBottom(3)

	border := textStyle
	if h.mode == ModeProcessing {
		border = highlightStyle
	}
	inner := f.DrawBlock(top, runtime.Block{
		Title:       []runtime.Span{runtime.Raw("Template")},
		TitleAlign:  runtime.AlignCenter,
		Border:      runtime.BorderRounded,
		BorderStyle: border,
	})
	f.DrawParagraph(inner, runtime.Paragraph{
		Text:  fmt.Sprintf(helpText, h.counter, h.ticker),
		Style: textStyle,
		Align: runtime.AlignCenter,
	})

	inputStyle := backend.DefaultStyle()
	if h.mode == ModeInsert {
		inputStyle = highlightStyle
	}
	// Two columns of border and one for the cursor.
	width := max(bottom.Width, 3) - 3
	scroll := h.input.VisualScroll(width)
	field := f.DrawBlock(bottom, runtime.Block{
		Title: []runtime.Span{
			runtime.Raw("Enter Input Mode "),
			{Text: "(Press ", Style: hintStyle},
			{Text: "/", Style: keyStyle},
			{Text: " to start, ", Style: hintStyle},
			{Text: "ESC", Style: keyStyle},
			{Text: " to finish)", Style: hintStyle},
		},
		Border:      runtime.BorderPlain,
		BorderStyle: inputStyle,
	})
	f.DrawParagraph(field, runtime.Paragraph{Text: h.input.Value(), Style: inputStyle, Scroll: scroll})

	if h.mode == ModeInsert {
		x := min(bottom.X+1+h.input.VisualCursor()-scroll, bottom.X+bottom.Width-2)
		f.SetCursor(x, bottom.Y+1)
	}
	return nil
}
