package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/odvcencio/shadotui/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

type palette struct {
	banner lipgloss.Style
	label  lipgloss.Style
	err    lipgloss.Style
}

// paletteFor styles output for w, dropping color when NO_COLOR is set.
func paletteFor(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	if termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}
	return palette{
		banner: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FD7FF")),
		label:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}),
		err:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F")),
	}
}

func printVersion(w io.Writer) {
	p := paletteFor(w)
	fmt.Fprintln(w, p.banner.Render("shadotui "+version))
	if commit != "unknown" {
		fmt.Fprintln(w, p.label.Render("  Commit:     ")+commit)
	}
	if buildDate != "unknown" {
		fmt.Fprintln(w, p.label.Render("  Built:      ")+buildDate)
	}
	fmt.Fprintln(w, p.label.Render("  Go version: ")+runtime.Version())
}

func printError(w io.Writer, err error) {
	p := paletteFor(w)
	fmt.Fprintln(w, p.err.Render("Error:")+" "+err.Error())
	for _, tip := range errors.Remediation(err) {
		fmt.Fprintln(w, p.label.Render("  hint: ")+tip)
	}
}
