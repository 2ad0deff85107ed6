package runtime

// Action is an intent flowing through the application loop.
// Domain packages declare their own types; the loop forwards anything it
// does not recognize to the tree unchanged.
type Action interface {
	ActionName() string
}

// Quit stops both background tasks and ends Run.
type Quit struct{}

func (Quit) ActionName() string { return "Quit" }

// Suspend restores the terminal and stops the process until it is resumed.
type Suspend struct{}

func (Suspend) ActionName() string { return "Suspend" }

// Resume is enqueued by the loop after a suspend cycle completes.
type Resume struct{}

func (Resume) ActionName() string { return "Resume" }

// RenderTick asks the render driver to draw one frame.
type RenderTick struct{}

func (RenderTick) ActionName() string { return "RenderTick" }

// Tick is one logic step.
type Tick struct{}

func (Tick) ActionName() string { return "Tick" }

// Resize reports a new terminal size.
type Resize struct {
	Width  int
	Height int
}

func (Resize) ActionName() string { return "Resize" }

// Noop carries nothing; it is still dispatched.
type Noop struct{}

func (Noop) ActionName() string { return "Noop" }

// IsOrchestration reports whether the loop handles a itself instead of
// dispatching it to the tree.
func IsOrchestration(a Action) bool {
	switch a.(type) {
	case Quit, Suspend, Resume, RenderTick:
		return true
	default:
		return false
	}
}
