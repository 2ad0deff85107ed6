package components

import "fmt"

// Increment raises the counter by N, saturating.
type Increment struct{ N uint }

func (Increment) ActionName() string { return "Increment" }

// Decrement lowers the counter by N, stopping at zero.
type Decrement struct{ N uint }

func (Decrement) ActionName() string { return "Decrement" }

// ScheduleIncrement starts a delayed Increment(1).
type ScheduleIncrement struct{}

func (ScheduleIncrement) ActionName() string { return "ScheduleIncrement" }

// ScheduleDecrement starts a delayed Decrement(1).
type ScheduleDecrement struct{}

func (ScheduleDecrement) ActionName() string { return "ScheduleDecrement" }

// CompleteInput submits the input text to the host.
type CompleteInput struct{ Text string }

func (CompleteInput) ActionName() string { return "CompleteInput" }

type EnterNormal struct{}

func (EnterNormal) ActionName() string { return "EnterNormal" }

type EnterInsert struct{}

func (EnterInsert) ActionName() string { return "EnterInsert" }

type EnterProcessing struct{}

func (EnterProcessing) ActionName() string { return "EnterProcessing" }

type ExitProcessing struct{}

func (ExitProcessing) ActionName() string { return "ExitProcessing" }

// ToggleShowOther shows or hides the Other pane.
type ToggleShowOther struct{}

func (ToggleShowOther) ActionName() string { return "ToggleShowOther" }

// Update reports that the input changed and a redraw is due.
type Update struct{}

func (Update) ActionName() string { return "Update" }

// Mode is Home's input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeProcessing
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeProcessing:
		return "processing"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}
