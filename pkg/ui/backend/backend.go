// Package backend defines the render surface the UI loop draws into.
// Real terminals are served by the tcell package, tests by sim.
package backend

import "github.com/odvcencio/shadotui/pkg/ui/terminal"

//go:generate mockgen -package=runtime -destination=../runtime/mock_surface_test.go github.com/odvcencio/shadotui/pkg/ui/backend Surface

// EventSource yields raw terminal input.
type EventSource interface {
	// PollEvent blocks until an event is available.
	// Returns nil once the surface has been exited.
	PollEvent() terminal.Event
}

// RenderTarget is the drawing subset of a Surface.
type RenderTarget interface {
	Size() (width, height int)
	SetContent(x, y int, mainc rune, comb []rune, style Style)
}

// Surface is exclusive access to the terminal screen.
//
// A surface is single use: once Exit or Suspend has been called it cannot be
// entered again, and a fresh one must be constructed.
type Surface interface {
	EventSource
	RenderTarget

	// Enter switches the terminal to raw mode on the alternate screen with
	// the cursor hidden and mouse capture enabled.
	Enter() error

	// Exit restores the terminal. Calling it more than once is a no-op.
	Exit() error

	// Suspend exits and then stops the process (SIGTSTP) where the platform
	// supports job control.
	Suspend() error

	Clear()
	Show()
	HideCursor()
	SetCursorPos(x, y int)
}
