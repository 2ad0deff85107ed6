package components

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/shadotui/pkg/ui/backend"
	"github.com/odvcencio/shadotui/pkg/ui/backend/sim"
	"github.com/odvcencio/shadotui/pkg/ui/runtime"
	"github.com/odvcencio/shadotui/pkg/ui/terminal"
)

func char(r rune) terminal.KeyEvent {
	return terminal.KeyEvent{Key: terminal.KeyRune, Rune: r}
}

func key(k terminal.Key) terminal.KeyEvent {
	return terminal.KeyEvent{Key: k}
}

func TestHome_NormalKeys(t *testing.T) {
	tests := []struct {
		name string
		key  terminal.KeyEvent
		want runtime.Action
	}{
		{"q", char('q'), runtime.Quit{}},
		{"ctrl-c", key(terminal.KeyCtrlC), runtime.Quit{}},
		{"ctrl-d", key(terminal.KeyCtrlD), runtime.Quit{}},
		{"ctrl-z", key(terminal.KeyCtrlZ), runtime.Suspend{}},
		{"l", char('l'), ToggleShowOther{}},
		{"j", char('j'), ScheduleIncrement{}},
		{"k", char('k'), ScheduleDecrement{}},
		{"slash", char('/'), EnterInsert{}},
		{"other rune", char('x'), runtime.Tick{}},
		{"arrow", key(terminal.KeyUp), runtime.Tick{}},
	}

	for _, mode := range []Mode{ModeNormal, ModeProcessing} {
		for _, tt := range tests {
			t.Run(mode.String()+"/"+tt.name, func(t *testing.T) {
				h := NewHome()
				h.mode = mode
				assert.Equal(t, tt.want, h.HandleKeyEvents(tt.key))
			})
		}
	}
}

func TestHome_InsertKeys(t *testing.T) {
	h := NewHome()
	h.Dispatch(EnterInsert{})
	require.Equal(t, ModeInsert, h.Mode())

	assert.Equal(t, Update{}, h.HandleKeyEvents(char('h')))
	assert.Equal(t, Update{}, h.HandleKeyEvents(char('q')))
	assert.Equal(t, Update{}, h.HandleKeyEvents(key(terminal.KeyBackspace)))
	assert.Equal(t, Update{}, h.HandleKeyEvents(char('i')))
	assert.Equal(t, "hi", h.InputValue())

	assert.Equal(t, CompleteInput{Text: "hi"}, h.HandleKeyEvents(key(terminal.KeyEnter)))
	assert.Equal(t, EnterNormal{}, h.HandleKeyEvents(key(terminal.KeyEscape)))
	assert.Equal(t, ModeInsert, h.Mode(), "keys only produce actions")
}

func TestHome_TickSaturates(t *testing.T) {
	h := NewHome()
	for i := 0; i < 7; i++ {
		assert.Nil(t, h.Dispatch(runtime.Tick{}))
	}
	assert.Equal(t, uint(7), h.Ticker())

	h.ticker = math.MaxUint
	h.Dispatch(runtime.Tick{})
	assert.Equal(t, uint(math.MaxUint), h.Ticker())
}

func TestHome_CounterSaturates(t *testing.T) {
	h := NewHome()
	h.Dispatch(Increment{N: 3})
	h.Dispatch(Decrement{N: 1})
	assert.Equal(t, uint(2), h.Counter())

	h.Dispatch(Decrement{N: 5})
	assert.Equal(t, uint(0), h.Counter())

	h.counter = math.MaxUint - 1
	h.Dispatch(Increment{N: 10})
	assert.Equal(t, uint(math.MaxUint), h.Counter())
}

func TestHome_ModeTransitions(t *testing.T) {
	h := NewHome()
	steps := []struct {
		action runtime.Action
		want   Mode
	}{
		{EnterInsert{}, ModeInsert},
		{EnterNormal{}, ModeNormal},
		{EnterProcessing{}, ModeProcessing},
		{ExitProcessing{}, ModeNormal},
		{EnterInsert{}, ModeInsert},
		{ExitProcessing{}, ModeNormal},
	}
	for _, s := range steps {
		h.Dispatch(s.action)
		assert.Equal(t, s.want, h.Mode(), s.action.ActionName())
	}

	h.Dispatch(ToggleShowOther{})
	assert.True(t, h.ShowOther())
	h.Dispatch(ToggleShowOther{})
	assert.False(t, h.ShowOther())
}

func TestHome_CompleteInputNotifiesHost(t *testing.T) {
	outbox := runtime.NewQueue[runtime.Message]()
	h := NewHome()
	require.NoError(t, h.Init(runtime.NewQueue[runtime.Action](), outbox))
	h.Dispatch(EnterInsert{})

	next := h.Dispatch(CompleteInput{Text: "hello"})
	assert.Equal(t, EnterNormal{}, next)

	msg, ok := outbox.TryRecv()
	require.True(t, ok)
	assert.Equal(t, runtime.TextMessage{Text: "hello"}, msg)

	outbox.Close()
	assert.Equal(t, EnterNormal{}, h.Dispatch(CompleteInput{Text: "late"}))
}

func TestHome_ScheduleSequence(t *testing.T) {
	tests := []struct {
		name   string
		action runtime.Action
		update runtime.Action
	}{
		{"increment", ScheduleIncrement{}, Increment{N: 1}},
		{"decrement", ScheduleDecrement{}, Decrement{N: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := runtime.NewQueue[runtime.Action]()
			h := NewHome(WithProcessingDelay(0))
			require.NoError(t, h.Init(actions, nil))

			assert.Nil(t, h.Dispatch(tt.action))

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			var got []runtime.Action
			for i := 0; i < 3; i++ {
				a, err := actions.Recv(ctx)
				require.NoError(t, err)
				got = append(got, a)
			}
			assert.Equal(t, []runtime.Action{EnterProcessing{}, tt.update, ExitProcessing{}}, got)
		})
	}
}

func TestHome_ScheduleAfterShutdownIsDropped(t *testing.T) {
	actions := runtime.NewQueue[runtime.Action]()
	h := NewHome(WithProcessingDelay(0))
	require.NoError(t, h.Init(actions, nil))
	actions.Close()

	assert.NotPanics(t, func() { h.Dispatch(ScheduleIncrement{}) })
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 0, actions.Len())
}

func render(t *testing.T, h *Home, w, ht int) (*sim.Surface, *runtime.Frame) {
	t.Helper()
	s := sim.New(w, ht)
	require.NoError(t, s.Enter())
	t.Cleanup(func() { _ = s.Exit() })
	f := runtime.NewFrame(s)
	require.NoError(t, h.Render(f, f.Area()))
	return s, f
}

func TestHome_Render(t *testing.T) {
	h := NewHome()
	h.Dispatch(Increment{N: 4})
	h.Dispatch(runtime.Tick{})
	s, f := render(t, h, 60, 12)

	x, y := s.FindText("Template")
	assert.Equal(t, 26, x)
	assert.Equal(t, 0, y)
	assert.True(t, s.ContainsText("Press j or k to increment or decrement."))
	assert.True(t, s.ContainsText("Counter: 4"))
	assert.True(t, s.ContainsText("Ticker: 1"))

	_, y = s.FindText("Enter Input Mode (Press / to start, ESC to finish)")
	assert.Equal(t, 9, y)

	fg, _ := s.CaptureStyle(0, 0)
	assert.Equal(t, backend.ColorCyan, fg)
	fg, _ = s.CaptureStyle(0, 9)
	assert.Equal(t, backend.ColorDefault, fg)
	fg, attrs := s.CaptureStyle(25, 9)
	assert.Equal(t, backend.ColorWhite, fg, "the / hint")
	assert.NotZero(t, attrs&backend.AttrBold)

	_, _, ok := f.Cursor()
	assert.False(t, ok, "cursor only shows while inserting")
}

func TestHome_RenderProcessingBorder(t *testing.T) {
	h := NewHome()
	h.Dispatch(EnterProcessing{})
	s, _ := render(t, h, 60, 12)

	fg, _ := s.CaptureStyle(0, 0)
	assert.Equal(t, backend.ColorYellow, fg)
}

func TestHome_RenderInsertCursor(t *testing.T) {
	h := NewHome()
	h.Dispatch(EnterInsert{})
	for _, r := range "abc" {
		h.HandleKeyEvents(char(r))
	}
	s, f := render(t, h, 60, 12)

	x, y, ok := f.Cursor()
	require.True(t, ok)
	assert.Equal(t, 4, x)
	assert.Equal(t, 10, y)
	assert.True(t, s.ContainsText("│abc"))

	fg, _ := s.CaptureStyle(0, 9)
	assert.Equal(t, backend.ColorYellow, fg)
}

func TestHome_RenderScrollsLongInput(t *testing.T) {
	h := NewHome()
	h.Dispatch(EnterInsert{})
	for _, r := range strings.Repeat("x", 30) + "END" {
		h.HandleKeyEvents(char(r))
	}
	s, f := render(t, h, 20, 8)

	assert.True(t, s.ContainsText("END"))
	x, _, ok := f.Cursor()
	require.True(t, ok)
	assert.Equal(t, 18, x)
}

func TestHome_RenderWithOther(t *testing.T) {
	h := NewHome()
	h.Dispatch(ToggleShowOther{})
	s, _ := render(t, h, 60, 12)

	x, y := s.FindText("Other Window")
	assert.Equal(t, 31, x)
	assert.Equal(t, 0, y)
	assert.True(t, s.ContainsText("HI!"))

	fg, _ := s.CaptureStyle(30, 0)
	assert.Equal(t, backend.ColorGreen, fg)

	// The Template block now spans the left half only.
	x, _ = s.FindText("Template")
	assert.Equal(t, 11, x)
}
