package runtime

import (
	"context"
	"time"

	"github.com/odvcencio/shadotui/pkg/errors"
	"github.com/odvcencio/shadotui/pkg/logging"
	"github.com/odvcencio/shadotui/pkg/telemetry"
	"github.com/odvcencio/shadotui/pkg/ui/backend"
)

type renderCommand int

const (
	renderFrame renderCommand = iota
	renderSuspend
	renderStop
)

func (c renderCommand) String() string {
	switch c {
	case renderFrame:
		return "render"
	case renderSuspend:
		return "suspend"
	case renderStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Renderer owns a surface and draws the tree on request. It is single use:
// after Suspend or Stop a new Renderer is built on a fresh surface.
type Renderer struct {
	surface  backend.Surface
	tree     *Tree
	logger   *logging.Logger
	metrics  *telemetry.Metrics
	commands *Queue[renderCommand]
	task     *Task
}

// NewRenderer enters the surface and starts the render task. Enter
// failures are returned here and no task is started.
func NewRenderer(surface backend.Surface, tree *Tree, logger *logging.Logger, metrics *telemetry.Metrics) (*Renderer, error) {
	if err := surface.Enter(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTerminalEnter, "entering terminal")
	}
	r := &Renderer{
		surface:  surface,
		tree:     tree,
		logger:   logger,
		metrics:  metrics,
		commands: NewQueue[renderCommand](),
	}
	r.task = startTask("renderer", r.run)
	return r, nil
}

// Task returns the render task handle.
func (r *Renderer) Task() *Task { return r.task }

// Render requests one frame.
func (r *Renderer) Render() error { return r.send(renderFrame) }

// Suspend exits the surface, stops the process and ends the task.
func (r *Renderer) Suspend() error { return r.send(renderSuspend) }

// Stop exits the surface and ends the task.
func (r *Renderer) Stop() error { return r.send(renderStop) }

func (r *Renderer) send(cmd renderCommand) error {
	if err := r.commands.Send(cmd); err != nil {
		return errors.Wrap(err, errors.ErrCodeChannelClosed, "render driver has exited").
			WithContext("command", cmd.String())
	}
	return nil
}

func (r *Renderer) run() error {
	defer r.commands.Close()
	for {
		cmd, err := r.commands.Recv(context.Background())
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "render command queue")
		}
		switch cmd {
		case renderStop:
			if err := r.surface.Exit(); err != nil {
				return errors.Wrap(err, errors.ErrCodeTerminalExit, "exiting terminal")
			}
			return nil
		case renderSuspend:
			if err := r.surface.Suspend(); err != nil {
				return errors.Wrap(err, errors.ErrCodeTerminalExit, "suspending terminal")
			}
			return nil
		case renderFrame:
			if err := r.draw(); err != nil {
				_ = r.logger.Error(logging.CategoryRender, "draw_failed", "frame draw failed", map[string]any{
					"error": err.Error(),
				})
				_ = r.surface.Exit()
				return errors.Wrap(err, errors.ErrCodeRender, "drawing frame")
			}
		}
	}
}

func (r *Renderer) draw() (err error) {
	start := time.Now()
	defer func() { r.metrics.ObserveRender(time.Since(start), err) }()

	r.surface.HideCursor()
	r.surface.Clear()

	f := NewFrame(r.surface)
	if err := r.tree.Render(f); err != nil {
		return err
	}
	if x, y, ok := f.Cursor(); ok {
		r.surface.SetCursorPos(x, y)
	}
	r.surface.Show()
	return nil
}
