package runtime

import (
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/odvcencio/shadotui/pkg/errors"
	"github.com/odvcencio/shadotui/pkg/logging"
	"github.com/odvcencio/shadotui/pkg/telemetry"
	"github.com/odvcencio/shadotui/pkg/ui/backend"
	"github.com/odvcencio/shadotui/pkg/ui/crash"
	"github.com/odvcencio/shadotui/pkg/ui/terminal"
)

// MultiplexerConfig wires a Multiplexer.
type MultiplexerConfig struct {
	TickRates TickRates
	Tree      *Tree
	Source    backend.EventSource
	Sink      Sender[Action]

	// Signals, when set, produce a QuitEvent per delivery.
	Signals <-chan os.Signal

	Logger  *logging.Logger
	Metrics *telemetry.Metrics
}

// Multiplexer merges terminal input and the two tickers into raw events,
// translates each through the tree and sends the resulting action to the
// sink.
type Multiplexer struct {
	cfg    MultiplexerConfig
	input  chan terminal.Event
	events *Queue[Event]
	stop   chan struct{}
	once   sync.Once
	errLog rate.Sometimes
	task   *Task
}

// NewMultiplexer validates cfg and starts the multiplexer task.
func NewMultiplexer(cfg MultiplexerConfig) (*Multiplexer, error) {
	if cfg.Tree == nil || cfg.Source == nil || cfg.Sink == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "multiplexer needs a tree, an event source and a sink")
	}
	if err := cfg.TickRates.validate(); err != nil {
		return nil, err
	}
	m := &Multiplexer{
		cfg:    cfg,
		input:  make(chan terminal.Event),
		events: NewQueue[Event](),
		stop:   make(chan struct{}),
		errLog: rate.Sometimes{Interval: time.Second},
	}
	go m.pump()
	m.task = startTask("multiplexer", m.run)
	return m, nil
}

// Task returns the multiplexer's task handle.
func (m *Multiplexer) Task() *Task { return m.task }

// Stop cancels the multiplexer. It is safe to call more than once.
func (m *Multiplexer) Stop() {
	m.once.Do(func() { close(m.stop) })
}

// Wait blocks until the task has returned.
func (m *Multiplexer) Wait() error {
	return m.task.Wait()
}

// pump moves blocking reads onto a channel. It ends when the source is
// exhausted, which happens once the surface is exited.
func (m *Multiplexer) pump() {
	defer crash.Recover()
	defer close(m.input)
	for {
		ev := m.cfg.Source.PollEvent()
		if ev == nil {
			return
		}
		select {
		case m.input <- ev:
		case <-m.stop:
			return
		}
	}
}

func (m *Multiplexer) run() error {
	appTicker := time.NewTicker(m.cfg.TickRates.App)
	defer appTicker.Stop()
	renderTicker := time.NewTicker(m.cfg.TickRates.Render)
	defer renderTicker.Stop()

	// Both periods start with an immediate tick.
	m.enqueue(AppTickEvent{})
	m.enqueue(RenderTickEvent{})

	input := m.input
	for {
		select {
		case <-m.stop:
			return nil
		case ev, ok := <-input:
			if !ok {
				input = nil
				m.enqueue(ClosedEvent{})
				continue
			}
			m.accept(ev)
		case <-appTicker.C:
			m.enqueue(AppTickEvent{})
		case <-renderTicker.C:
			m.enqueue(RenderTickEvent{})
		case sig := <-m.cfg.Signals:
			_ = m.cfg.Logger.Info(logging.CategoryInput, "signal", "quit requested by signal", map[string]any{
				"signal": sig.String(),
			})
			m.enqueue(QuitEvent{})
		case <-m.events.Ready():
			ev, ok := m.events.TryRecv()
			if !ok {
				continue
			}
			action := m.cfg.Tree.HandleEvents(ev)
			if err := m.cfg.Sink.Send(action); err != nil {
				return errors.Wrap(err, errors.ErrCodeChannelClosed, "sending action").
					WithContext("action", action.ActionName())
			}
		}
	}
}

// accept filters raw terminal input. Only key presses pass; mouse motion
// and paste are dropped.
func (m *Multiplexer) accept(ev terminal.Event) {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		if e.Kind == terminal.KeyPress {
			m.enqueue(KeyEvent{KeyEvent: e})
		}
	case terminal.MouseEvent:
		if e.Action != terminal.MouseMove {
			m.enqueue(MouseEvent{MouseEvent: e})
		}
	case terminal.ResizeEvent:
		m.enqueue(ResizeEvent{Width: e.Width, Height: e.Height})
	case terminal.ErrorEvent:
		m.errLog.Do(func() {
			_ = m.cfg.Logger.Warn(logging.CategoryInput, "read_error", "terminal read failed", map[string]any{
				"error": e.Err.Error(),
			})
		})
		m.enqueue(ErrorEvent{Err: e.Err})
	default:
		_ = m.cfg.Logger.Debug(logging.CategoryInput, "dropped", "unhandled terminal event", map[string]any{
			"type": typeName(ev),
		})
	}
}

func (m *Multiplexer) enqueue(ev Event) {
	m.cfg.Metrics.ObserveRawEvent(eventKind(ev))
	_ = m.events.Send(ev)
}
