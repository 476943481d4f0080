package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/rebuild/internal/ui/output"
	"go.trai.ch/rebuild/internal/ui/style"
)

// levelStyle is the marker and color of one severity band.
type levelStyle struct {
	mark  string
	color lipgloss.Color
}

func styleFor(level slog.Level) levelStyle {
	switch {
	case level >= slog.LevelError:
		return levelStyle{mark: style.FailedMark, color: style.Failed}
	case level >= slog.LevelWarn:
		return levelStyle{mark: style.WarnMark, color: style.Attention}
	case level < slog.LevelInfo:
		return levelStyle{mark: style.DebugMark, color: style.Muted}
	default:
		return levelStyle{color: style.Muted}
	}
}

// PrettyHandler writes one colored line per record: an optional severity
// marker, the message, then key=value attributes.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// prefix is the dotted group path applied to attributes added from now on.
	prefix string
	// attrs are already qualified with the group path active when added.
	attrs []string
}

// NewPrettyHandler creates a PrettyHandler writing to w, or to stderr when w
// is nil. Records below opts.Level are dropped; the default level is Info.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether records at level are written.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	ls := styleFor(r.Level)

	var line strings.Builder
	if ls.mark != "" {
		line.WriteString(ls.mark)
		line.WriteByte(' ')
	}
	line.WriteString(r.Message)
	for _, attr := range h.attrs {
		line.WriteByte(' ')
		line.WriteString(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		line.WriteByte(' ')
		line.WriteString(qualify(h.prefix, attr))
		return true
	})

	colored := h.out.String(line.String()).Foreground(termenv.RGBColor(string(ls.color)))
	_, err := h.out.WriteString(colored.String() + "\n")
	return err
}

// WithAttrs returns a handler that appends attrs to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]string, len(h.attrs), len(h.attrs)+len(attrs))
	copy(next.attrs, h.attrs)
	for _, attr := range attrs {
		next.attrs = append(next.attrs, qualify(h.prefix, attr))
	}
	return &next
}

// WithGroup returns a handler that qualifies attributes added after it with
// name. Attributes added earlier keep their keys.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// qualify renders attr as key=value under prefix. Values containing spaces,
// quotes or "=" are quoted so paths stay readable.
func qualify(prefix string, attr slog.Attr) string {
	value := attr.Value.Resolve().String()
	if value == "" || strings.ContainsAny(value, " \t\"=") {
		value = strconv.Quote(value)
	}
	return prefix + attr.Key + "=" + value
}
