package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/cjsguard/internal/ui/output"
	"go.trai.ch/cjsguard/internal/ui/style"
)

// PrettyHandler is a slog.Handler for terminal output. Records are printed on
// one colored line followed by their attributes as key=value pairs. Error
// attributes are expanded into an indented cause chain instead, with the
// metadata of each link.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []scopedAttr
	group string
}

// scopedAttr is an attribute together with the group that was open when it
// was added.
type scopedAttr struct {
	group string
	attr  slog.Attr
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
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

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var (
		parts []string
		chain []errorEntry
	)
	add := func(group string, attr slog.Attr) {
		if k := attr.Value.Kind(); k == slog.KindAny || k == slog.KindLogValuer {
			if err, ok := attr.Value.Any().(error); ok {
				chain = append(chain, collectErrorEntries(err)...)
				return
			}
		}
		parts = appendAttr(parts, group, attr)
	}

	for _, sa := range h.attrs {
		add(sa.group, sa.attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		add(h.group, attr)
		return true
	})

	msg := r.Message
	if len(chain) > 0 {
		if msg != "" {
			chain = append([]errorEntry{{msg: msg}}, chain...)
		}
		msg = formatErrorEntries(chain)
	}
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}

	var color termenv.Color
	switch {
	case r.Level >= slog.LevelError:
		msg = style.Cross + " " + msg
		color = termenv.RGBColor(string(style.Red))
	case r.Level >= slog.LevelWarn:
		msg = style.Warning + " " + msg
		color = termenv.RGBColor(string(style.Yellow))
	default:
		color = termenv.RGBColor(string(style.Slate))
	}

	styled := h.out.String(msg).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended. They keep
// the group that is open now, even if more groups are opened later.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	scoped := make([]scopedAttr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(scoped, h.attrs)
	for _, attr := range attrs {
		scoped = append(scoped, scopedAttr{group: h.group, attr: attr})
	}

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: scoped,
		group: h.group,
	}
}

// WithGroup returns a new Handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: qualify(h.group, name),
	}
}

// appendAttr appends attr as key=value pairs. Groups are flattened into dotted
// keys.
func appendAttr(parts []string, group string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}

	key := qualify(group, attr.Key)
	if attr.Value.Kind() == slog.KindGroup {
		for _, member := range attr.Value.Group() {
			parts = appendAttr(parts, key, member)
		}
		return parts
	}

	return append(parts, key+"="+formatValue(attr.Value.String()))
}

func qualify(group, key string) string {
	switch {
	case group == "":
		return key
	case key == "":
		return group
	default:
		return group + "." + key
	}
}

// formatValue quotes values that would otherwise be ambiguous in key=value
// output.
func formatValue(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
