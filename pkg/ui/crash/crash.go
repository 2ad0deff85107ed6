// Package crash restores the terminal and prints a readable report when a
// goroutine panics.
package crash

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	mu        sync.Mutex
	installed bool
	restores  []func()

	out  io.Writer = os.Stderr
	exit           = os.Exit
)

// Install registers restore functions run before the report is printed.
// Only the first call takes effect; it reports whether it did.
func Install(restore ...func()) bool {
	mu.Lock()
	defer mu.Unlock()
	if installed {
		return false
	}
	installed = true
	restores = append([]func(){}, restore...)
	return true
}

// Recover must be deferred directly at the top of a goroutine.
func Recover() {
	if r := recover(); r != nil {
		handle(r, debug.Stack())
	}
}

func handle(value any, stack []byte) {
	mu.Lock()
	fns := append([]func(){}, restores...)
	w := out
	mu.Unlock()

	for _, fn := range fns {
		runRestore(fn)
	}

	fmt.Fprint(w, Report(value, stack))
	exit(1)
}

func runRestore(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// TerminalRestorer snapshots the terminal state of fd and returns a func
// that puts it back. It returns a no-op when fd is not a terminal.
func TerminalRestorer(fd int) func() {
	if !term.IsTerminal(fd) {
		return func() {}
	}
	state, err := term.GetState(fd)
	if err != nil {
		return func() {}
	}
	return func() { _ = term.Restore(fd, state) }
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F5F"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})
	panicStyle = lipgloss.NewStyle().
			Bold(true)
	stackStyle = lipgloss.NewStyle().
			Faint(true)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF5F5F")).
			Padding(0, 1)
)

// Report formats a panic value and its stack for the terminal.
func Report(value any, stack []byte) string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("shadotui crashed"),
		labelStyle.Render("panic: ")+panicStyle.Render(fmt.Sprint(value)),
	)
	body := stackStyle.Render(strings.TrimRight(string(stack), "\n"))
	return boxStyle.Render(header) + "\n" + body + "\n"
}
