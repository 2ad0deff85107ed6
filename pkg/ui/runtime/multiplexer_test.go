package runtime

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shaderrors "github.com/odvcencio/shadotui/pkg/errors"
	"github.com/odvcencio/shadotui/pkg/ui/terminal"
)

type muxHarness struct {
	root    *recorder
	source  *fakeSource
	sink    *Queue[Action]
	signals chan os.Signal
	mux     *Multiplexer
}

func startMux(t *testing.T, rates TickRates, opts ...func(*muxHarness)) *muxHarness {
	t.Helper()
	h := &muxHarness{
		root:    &recorder{},
		source:  newFakeSource(),
		sink:    NewQueue[Action](),
		signals: make(chan os.Signal, 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	mux, err := NewMultiplexer(MultiplexerConfig{
		TickRates: rates,
		Tree:      NewTree(h.root),
		Source:    h.source,
		Sink:      h.sink,
		Signals:   h.signals,
	})
	require.NoError(t, err)
	h.mux = mux
	t.Cleanup(func() {
		h.mux.Stop()
		h.source.Close()
		_ = h.mux.Wait()
	})
	return h
}

func rawEvents(h *muxHarness) { h.root.rawEvents = true }

func slowRates() TickRates {
	return TickRates{App: time.Hour, Render: time.Hour}
}

func TestNewMultiplexer_Validation(t *testing.T) {
	tree := NewTree(&recorder{})
	source := newFakeSource()
	defer source.Close()
	sink := NewQueue[Action]()

	tests := []struct {
		name string
		cfg  MultiplexerConfig
	}{
		{"zero app rate", MultiplexerConfig{TickRates: TickRates{Render: time.Second}, Tree: tree, Source: source, Sink: sink}},
		{"negative render rate", MultiplexerConfig{TickRates: TickRates{App: time.Second, Render: -1}, Tree: tree, Source: source, Sink: sink}},
		{"no tree", MultiplexerConfig{TickRates: slowRates(), Source: source, Sink: sink}},
		{"no source", MultiplexerConfig{TickRates: slowRates(), Tree: tree, Sink: sink}},
		{"no sink", MultiplexerConfig{TickRates: slowRates(), Tree: tree, Source: source}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mux *Multiplexer
			var err error
			require.NotPanics(t, func() { mux, err = NewMultiplexer(tt.cfg) })
			require.Error(t, err)
			assert.Nil(t, mux)
			assert.True(t, shaderrors.IsCode(err, shaderrors.ErrCodeInvalidInput))
		})
	}
}

func TestMultiplexer_FirstTicksAreImmediate(t *testing.T) {
	h := startMux(t, slowRates())

	seen := recvUntil(t, h.sink, func(a Action) bool { _, ok := a.(RenderTick); return ok })
	assert.Contains(t, seen, Action(Tick{}))
}

func TestMultiplexer_TicksRepeat(t *testing.T) {
	h := startMux(t, TickRates{App: time.Hour, Render: 5 * time.Millisecond})

	renders := 0
	recvUntil(t, h.sink, func(a Action) bool {
		if _, ok := a.(RenderTick); ok {
			renders++
		}
		return renders == 3
	})
}

func TestMultiplexer_OnlyKeyPressesPass(t *testing.T) {
	h := startMux(t, slowRates())

	h.source.events <- terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'a'}
	h.source.events <- terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'b', Kind: terminal.KeyRepeat}
	h.source.events <- terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'c', Kind: terminal.KeyRelease}
	h.source.events <- terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'd'}

	seen := recvUntil(t, h.sink, func(a Action) bool { return a == keyAction{r: 'd'} })

	var keys []rune
	for _, a := range seen {
		if k, ok := a.(keyAction); ok {
			keys = append(keys, k.r)
		}
	}
	assert.Equal(t, []rune{'a', 'd'}, keys)
}

func TestMultiplexer_MouseMotionDropped(t *testing.T) {
	h := startMux(t, slowRates())

	h.source.events <- terminal.MouseEvent{X: 1, Y: 1, Action: terminal.MouseMove}
	h.source.events <- terminal.PasteEvent{Text: "ignored"}
	press := terminal.MouseEvent{X: 4, Y: 2, Button: terminal.MouseLeft, Action: terminal.MousePress}
	h.source.events <- press

	seen := recvUntil(t, h.sink, func(a Action) bool { _, ok := a.(mouseAction); return ok })
	var mice []mouseAction
	for _, a := range seen {
		if m, ok := a.(mouseAction); ok {
			mice = append(mice, m)
		}
	}
	assert.Equal(t, []mouseAction{{e: press}}, mice)
}

func TestMultiplexer_ResizeBecomesAction(t *testing.T) {
	h := startMux(t, TickRates{App: time.Second, Render: 50 * time.Millisecond})

	h.source.events <- terminal.ResizeEvent{Width: 80, Height: 24}

	seen := recvUntil(t, h.sink, func(a Action) bool { _, ok := a.(Resize); return ok })
	assert.Equal(t, Resize{Width: 80, Height: 24}, seen[len(seen)-1])
}

func TestMultiplexer_ClosedInputYieldsClosedEventOnce(t *testing.T) {
	h := startMux(t, slowRates(), rawEvents)

	h.source.Close()

	seen := recvUntil(t, h.sink, func(a Action) bool { _, ok := a.(eventAction); return ok })
	assert.Equal(t, eventAction{ev: ClosedEvent{}}, seen[len(seen)-1])

	time.Sleep(20 * time.Millisecond)
	for {
		a, ok := h.sink.TryRecv()
		if !ok {
			break
		}
		assert.NotEqual(t, eventAction{ev: ClosedEvent{}}, a, "closed reported twice")
	}
	assert.NoError(t, h.mux.Task().Err())
}

func TestMultiplexer_ErrorEventsForwarded(t *testing.T) {
	h := startMux(t, slowRates(), rawEvents)

	boom := errors.New("read failed")
	h.source.events <- terminal.ErrorEvent{Err: boom}
	h.source.events <- terminal.ErrorEvent{Err: boom}

	count := 0
	recvUntil(t, h.sink, func(a Action) bool {
		if ev, ok := a.(eventAction); ok {
			assert.Equal(t, ErrorEvent{Err: boom}, ev.ev)
			count++
		}
		return count == 2
	})
}

func TestMultiplexer_SignalQuits(t *testing.T) {
	h := startMux(t, slowRates())

	h.signals <- os.Interrupt

	recvUntil(t, h.sink, func(a Action) bool { _, ok := a.(Quit); return ok })
}

func TestMultiplexer_StopEndsTask(t *testing.T) {
	h := startMux(t, slowRates())

	h.mux.Stop()
	h.mux.Stop()

	select {
	case <-h.mux.Task().Done():
	case <-time.After(time.Second):
		t.Fatal("multiplexer did not stop")
	}
	assert.NoError(t, h.mux.Wait())
}

func TestMultiplexer_ClosedSinkEndsTask(t *testing.T) {
	h := startMux(t, slowRates(), func(h *muxHarness) { h.sink.Close() })

	select {
	case <-h.mux.Task().Done():
	case <-time.After(time.Second):
		t.Fatal("multiplexer kept running with a closed sink")
	}
	err := h.mux.Wait()
	require.Error(t, err)
	assert.True(t, shaderrors.IsCode(err, shaderrors.ErrCodeChannelClosed))
}
