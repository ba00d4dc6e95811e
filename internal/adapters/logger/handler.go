package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/tagger/internal/ui/output"
	"go.trai.ch/tagger/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes colored, human-readable lines.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
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

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var msg string
	var color termenv.Color

	switch {
	case r.Level >= slog.LevelError:
		msg = style.Cross + " " + r.Message
		color = termenv.RGBColor(string(style.Red))
	case r.Level >= slog.LevelWarn:
		msg = style.Warning + " " + r.Message
		color = termenv.RGBColor(string(style.Yellow))
	case r.Level < slog.LevelInfo:
		msg = style.Circle + " " + r.Message
		color = termenv.RGBColor(string(style.Iris))
	default:
		msg = r.Message
		color = termenv.RGBColor(string(style.Slate))
	}

	var task, file, row string
	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	collect := func(attr slog.Attr) bool {
		if h.group == "" {
			switch attr.Key {
			case "task":
				task = attr.Value.String()
				return true
			case "file":
				file = attr.Value.String()
				return true
			case "row":
				row = attr.Value.String()
				return true
			}
		}
		attrParts = append(attrParts, formatAttr(h.group, attr))
		return true
	}
	for _, attr := range h.attrs {
		collect(attr)
	}
	r.Attrs(collect)

	if task != "" {
		msg = insertTask(msg, r.Message, task)
	}
	// Attributes and location trail the first line of multi-line messages.
	head, tail, multiline := strings.Cut(msg, "\n")
	if len(attrParts) > 0 {
		head += " " + strings.Join(attrParts, " ")
	}
	if loc := location(file, row); loc != "" {
		head += " (" + loc + ")"
	}
	msg = head
	if multiline {
		msg += "\n" + tail
	}

	styled := h.out.String(msg).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler that prefixes attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: group,
	}
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}

// insertTask places "[task]" right before the message, after any level glyph.
func insertTask(line, message, task string) string {
	glyph := strings.TrimSuffix(line, message)
	return glyph + "[" + task + "] " + message
}

// location renders corpus coordinates as file:row.
func location(file, row string) string {
	switch {
	case file == "" && row == "":
		return ""
	case file == "":
		return "row " + row
	case row == "":
		return file
	default:
		return file + ":" + row
	}
}
