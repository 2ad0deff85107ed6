package runtime

import (
	"context"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/shadotui/pkg/errors"
	"github.com/odvcencio/shadotui/pkg/logging"
	"github.com/odvcencio/shadotui/pkg/telemetry"
	"github.com/odvcencio/shadotui/pkg/ui/backend"
)

// TickRates holds the logic and render periods.
type TickRates struct {
	App    time.Duration
	Render time.Duration
}

func (r TickRates) validate() error {
	if r.App <= 0 || r.Render <= 0 {
		return errors.Newf(errors.ErrCodeInvalidInput, "tick rates must be positive (app=%v render=%v)",
			r.App, r.Render)
	}
	return nil
}

// AppConfig configures a runtime App.
type AppConfig struct {
	Root      Component
	TickRates TickRates

	// NewSurface builds a fresh surface at start and after every resume.
	NewSurface func() (backend.Surface, error)

	// Outbox receives host notifications, including a final QuitMessage.
	Outbox Sender[Message]

	Signals <-chan os.Signal
	Logger  *logging.Logger
	Metrics *telemetry.Metrics
}

// State is a snapshot of the loop flags.
type State struct {
	ShouldQuit    bool
	ShouldSuspend bool
	Suspensions   int
}

// App is the application loop. It owns the action queue, routes
// orchestration actions itself and dispatches everything else to the tree.
type App struct {
	cfg     AppConfig
	tree    *Tree
	actions *Queue[Action]

	mu       sync.Mutex
	state    State
	renderer *Renderer
	mux      *Multiplexer
}

// NewApp validates cfg and builds an App that has not started yet.
func NewApp(cfg AppConfig) (*App, error) {
	if cfg.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "root component is required")
	}
	if cfg.NewSurface == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "surface factory is required")
	}
	if err := cfg.TickRates.validate(); err != nil {
		return nil, err
	}
	return &App{
		cfg:     cfg,
		tree:    NewTree(cfg.Root),
		actions: NewQueue[Action](),
	}, nil
}

// Tree returns the guarded root.
func (a *App) Tree() *Tree { return a.tree }

// Actions returns the sender half of the action queue.
func (a *App) Actions() Sender[Action] { return a.actions }

// State returns the current loop flags.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// TaskIDs returns the identities of the current render and multiplexer
// tasks. Both are empty before Run starts.
func (a *App) TaskIDs() (renderer, multiplexer string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.renderer != nil {
		renderer = a.renderer.Task().ID()
	}
	if a.mux != nil {
		multiplexer = a.mux.Task().ID()
	}
	return renderer, multiplexer
}

// Run initializes the tree, starts both tasks and processes actions until
// Quit, ctx cancellation, or a fatal error.
func (a *App) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.tree.Init(a.actions, a.cfg.Outbox); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "initializing components")
	}
	if err := a.start(); err != nil {
		return err
	}
	_ = a.cfg.Logger.Info(logging.CategoryLifecycle, "start", "application loop started", map[string]any{
		"app_tick_ms":    a.cfg.TickRates.App.Milliseconds(),
		"render_tick_ms": a.cfg.TickRates.Render.Milliseconds(),
	})

	for {
		action, err := a.next(ctx)
		if err != nil {
			return err
		}
		if action != nil {
			if err := a.handle(ctx, action); err != nil {
				return err
			}
		}

		state := a.State()
		switch {
		case state.ShouldSuspend:
			if err := a.suspendCycle(); err != nil {
				return err
			}
		case state.ShouldQuit:
			return a.shutdown()
		}
	}
}

// next waits for one action. A nil action with a nil error means the loop
// should re-check its flags.
func (a *App) next(ctx context.Context) (Action, error) {
	a.mu.Lock()
	renderer, mux := a.renderer, a.mux
	a.mu.Unlock()

	select {
	case <-ctx.Done():
		_ = a.cfg.Logger.Info(logging.CategoryLifecycle, "cancelled", "context cancelled, quitting", nil)
		a.setFlags(func(s *State) { s.ShouldQuit = true })
		return nil, nil
	case <-a.actions.Ready():
		action, _ := a.actions.TryRecv()
		return action, nil
	case <-renderer.Task().Done():
		return nil, a.taskExited(renderer.Task())
	case <-mux.Task().Done():
		return nil, a.taskExited(mux.Task())
	}
}

func (a *App) handle(ctx context.Context, action Action) error {
	name := action.ActionName()
	a.cfg.Metrics.ObserveAction(name)
	a.cfg.Metrics.SetQueueDepth(a.actions.Len())

	switch action.(type) {
	case RenderTick:
		a.mu.Lock()
		renderer := a.renderer
		a.mu.Unlock()
		if err := renderer.Render(); err != nil {
			return a.taskExited(renderer.Task())
		}
	case Quit:
		a.setFlags(func(s *State) { s.ShouldQuit = true })
	case Suspend:
		a.setFlags(func(s *State) { s.ShouldSuspend = true })
	case Resume:
		a.setFlags(func(s *State) { s.ShouldSuspend = false })
	default:
		return a.dispatch(ctx, action)
	}
	return nil
}

func (a *App) dispatch(ctx context.Context, action Action) error {
	name := action.ActionName()
	_, span := telemetry.StartSpan(ctx, "dispatch "+name,
		trace.WithAttributes(telemetry.AttrAction.String(name)))
	defer span.End()

	follow := a.tree.Dispatch(action)
	if follow == nil {
		_ = a.cfg.Logger.Debug(logging.CategoryDispatch, "dispatch", name, nil)
		return nil
	}

	span.SetAttributes(telemetry.AttrFollowUp.String(follow.ActionName()))
	_ = a.cfg.Logger.Debug(logging.CategoryDispatch, "dispatch", name, map[string]any{
		"follow_up": follow.ActionName(),
	})
	if err := a.actions.Send(follow); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return errors.Wrap(err, errors.ErrCodeChannelClosed, "enqueueing follow-up action").
			WithContext("action", follow.ActionName())
	}
	return nil
}

// start builds a fresh surface, render driver and multiplexer over the
// same tree.
func (a *App) start() error {
	surface, err := a.cfg.NewSurface()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeTerminalEnter, "creating surface")
	}
	renderer, err := NewRenderer(surface, a.tree, a.cfg.Logger, a.cfg.Metrics)
	if err != nil {
		return err
	}
	mux, err := NewMultiplexer(MultiplexerConfig{
		TickRates: a.cfg.TickRates,
		Tree:      a.tree,
		Source:    surface,
		Sink:      a.actions,
		Signals:   a.cfg.Signals,
		Logger:    a.cfg.Logger,
		Metrics:   a.cfg.Metrics,
	})
	if err != nil {
		_ = renderer.Stop()
		_ = renderer.Task().Wait()
		return err
	}

	a.mu.Lock()
	a.renderer, a.mux = renderer, mux
	a.mu.Unlock()
	return nil
}

// stopTasks asks both tasks to end, via stop or suspend, and joins them.
func (a *App) stopTasks(suspend bool) error {
	a.mu.Lock()
	renderer, mux := a.renderer, a.mux
	a.mu.Unlock()

	var sendErr error
	if suspend {
		sendErr = renderer.Suspend()
	} else {
		sendErr = renderer.Stop()
	}
	mux.Stop()

	if err := joinTasks(renderer.Task(), mux.Task()); err != nil {
		return err
	}
	return sendErr
}

func (a *App) suspendCycle() error {
	_ = a.cfg.Logger.Info(logging.CategoryLifecycle, "suspend", "suspending", nil)
	a.cfg.Metrics.ObserveLifecycle("suspend")

	if err := a.stopTasks(true); err != nil {
		return err
	}
	if err := a.start(); err != nil {
		return err
	}
	// Actions queued before Resume must not start a second cycle.
	a.setFlags(func(s *State) {
		s.ShouldSuspend = false
		s.Suspensions++
	})

	if err := a.actions.Send(Resume{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeChannelClosed, "enqueueing resume")
	}
	if err := a.actions.Send(RenderTick{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeChannelClosed, "enqueueing redraw")
	}

	rid, mid := a.TaskIDs()
	_ = a.cfg.Logger.Info(logging.CategoryLifecycle, "resume", "resumed", map[string]any{
		"renderer":    rid,
		"multiplexer": mid,
	})
	a.cfg.Metrics.ObserveLifecycle("resume")
	return nil
}

func (a *App) shutdown() error {
	err := a.stopTasks(false)
	a.actions.Close()
	a.cfg.Metrics.ObserveLifecycle("quit")

	if a.cfg.Outbox != nil {
		if sendErr := a.cfg.Outbox.Send(QuitMessage{}); sendErr != nil {
			_ = a.cfg.Logger.Warn(logging.CategoryLifecycle, "outbox_closed", "quit notification not delivered", map[string]any{
				"error": sendErr.Error(),
			})
		}
	}

	if err != nil {
		_ = a.cfg.Logger.Error(logging.CategoryLifecycle, "stop_failed", "shutdown failed", map[string]any{
			"error": err.Error(),
		})
		return err
	}
	_ = a.cfg.Logger.Info(logging.CategoryLifecycle, "stop", "application loop stopped", nil)
	return nil
}

// taskExited tears down the surviving task after one ended on its own.
func (a *App) taskExited(t *Task) error {
	cause := t.Wait()
	_ = a.stopTasks(false)
	a.actions.Close()

	details := map[string]any{"task": t.Name(), "id": t.ID()}
	if cause != nil {
		details["error"] = cause.Error()
	}
	_ = a.cfg.Logger.Error(logging.CategoryLifecycle, "task_exited", "background task ended unexpectedly", details)

	if cause == nil {
		return errors.New(errors.ErrCodeTaskExited, "background task ended unexpectedly").
			WithContext("task", t.Name())
	}
	return errors.Wrap(cause, errors.ErrCodeTaskExited, "background task failed").
		WithContext("task", t.Name())
}

func (a *App) setFlags(fn func(*State)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.state)
}
