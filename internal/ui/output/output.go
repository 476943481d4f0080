// Package output picks the color profile for terminal output and builds the
// termenv and lipgloss writers on top of it.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorProfile resolves the profile from the environment. NO_COLOR and
// TERM=dumb disable color; CLICOLOR_FORCE keeps ANSI color on non-terminals.
func ColorProfile() termenv.Profile {
	switch {
	case os.Getenv("NO_COLOR") != "", os.Getenv("TERM") == "dumb":
		return termenv.Ascii
	case os.Getenv("CLICOLOR_FORCE") != "" && os.Getenv("CLICOLOR_FORCE") != "0":
		return termenv.ANSI256
	default:
		return termenv.EnvColorProfile()
	}
}

// New returns a termenv output for w (stderr when nil). Log lines go through
// it, so it is always treated as a terminal and ColorProfile alone decides
// whether escapes are written.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	opts = append(opts, termenv.WithProfile(ColorProfile()), termenv.WithTTY(true))
	return termenv.NewOutput(w, opts...)
}

// Renderer returns a lipgloss renderer for w (stdout when nil) using
// ColorProfile.
func Renderer(w io.Writer) *lipgloss.Renderer {
	if w == nil {
		w = os.Stdout
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(ColorProfile())
	return r
}
