// Package style holds the palette and markers shared by the log handler and
// the plan renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Palette, named by what it marks.
var (
	Heading   = lipgloss.Color("#8B5CF6")
	Muted     = lipgloss.Color("#667085")
	Built     = lipgloss.Color("#22A06B")
	Failed    = lipgloss.Color("#D93025")
	Attention = lipgloss.Color("#F59E0B")
)

// Markers prefixed to log lines and plan entries.
const (
	FailedMark = "✗"
	WarnMark   = "!"
	DebugMark  = "~"
	TargetMark = "●"
	OrderMark  = "○"
)
