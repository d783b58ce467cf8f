package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler writes colorized records for a terminal, either as a single
// key=value line or as an indented JSON-like block.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	prefix string      // dotted group path for record attributes
	attrs  []slog.Attr // attributes added with WithAttrs, already qualified
	block  bool        // one field per line
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, block: true}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if h.block {
		buf.WriteString("{")
	}

	n := 0
	write := func(a slog.Attr, color string) {
		h.writeField(buf, n, a, color)
		n++
	}

	if !r.Time.IsZero() {
		if a, ok := h.replace(slog.Time(slog.TimeKey, r.Time)); ok {
			write(a, colorBlue)
		}
	}

	level := slog.String(slog.LevelKey, Level(r.Level).label())
	if a, ok := h.replace(level); ok {
		write(a, levelColor(r.Level))
	}

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			write(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)), "")
		}
	}

	write(slog.String(slog.MessageKey, r.Message), "")

	for _, a := range h.attrs {
		write(a, "")
	}

	r.Attrs(func(a slog.Attr) bool {
		for _, q := range flatten(h.prefix, a) {
			write(q, "")
		}

		return true
	})

	if h.block {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = qualify(h.attrs, attrs, h.prefix)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// replace applies the configured ReplaceAttr to a built-in attribute.
// It reports false if the attribute was removed.
func (h *prettyHandler) replace(a slog.Attr) (slog.Attr, bool) {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	return a, a.Key != ""
}

func (h *prettyHandler) writeField(buf *bytes.Buffer, i int, a slog.Attr, color string) {
	switch {
	case h.block && i > 0:
		buf.WriteString(",\n  ")
	case h.block:
		buf.WriteString("\n  ")
	case i > 0:
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)

	if h.block {
		buf.WriteString(": ")
	} else {
		buf.WriteByte('=')
	}

	if color != "" {
		buf.WriteString(color)
		buf.WriteString(a.Value.String())
		buf.WriteString(colorReset)

		return
	}

	writeValue(buf, a.Value)
}

func qualify(base, attrs []slog.Attr, prefix string) []slog.Attr {
	out := make([]slog.Attr, len(base), len(base)+len(attrs))
	copy(out, base)

	for _, a := range attrs {
		out = append(out, flatten(prefix, a)...)
	}

	return out
}

// flatten resolves a and expands groups into attributes with dotted keys.
func flatten(prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return nil
	}

	if a.Value.Kind() != slog.KindGroup {
		return []slog.Attr{{Key: prefix + a.Key, Value: a.Value}}
	}

	if a.Key != "" {
		prefix += a.Key + "."
	}

	var out []slog.Attr
	for _, ga := range a.Value.Group() {
		out = append(out, flatten(prefix, ga)...)
	}

	return out
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	case level >= slog.LevelDebug:
		return colorBlue
	default:
		return colorMagenta
	}
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	var color, text string

	switch v.Kind() {
	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		color, text = colorRed, "false"
		if v.Bool() {
			color, text = colorGreen, "true"
		}
	case slog.KindDuration:
		color, text = colorMagenta, v.Duration().String()
	case slog.KindTime:
		color, text = colorBlue, v.Time().String()
	case slog.KindAny:
		if v.Any() == nil {
			color, text = colorGray, "null"

			break
		}

		color, text = colorCyan, v.String()
	default:
		color, text = colorCyan, v.String()
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}
