package logging

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// Handler adapts a Logger to slog. Records are rendered as the message
// followed by key=value pairs and written with the Logger's line format.
// Records at or above LevelCriticalSlog are logged as CRITICAL but never
// exit the process.
type Handler struct {
	l      *Logger
	attrs  []slog.Attr
	groups []string
}

// Handler returns an slog.Handler writing through l.
func (l *Logger) Handler() slog.Handler {
	return &Handler{l: l}
}

// Slog returns an *slog.Logger writing through l.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(l.Handler())
}

// Enabled reports whether level passes the Logger's MinLevel.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.l.cfg.MinLevel.SlogLevel()
}

// Handle renders r and writes it through the Logger.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		appendAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, prefix, a)
		return true
	})

	h.l.Log(FromSlogLevel(r.Level), sb.String())
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	prefix := strings.Join(h.groups, ".")
	qualified := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		if prefix != "" && a.Key != "" {
			a.Key = prefix + "." + a.Key
		}
		qualified = append(qualified, a)
	}

	h2 := h.clone()
	h2.attrs = append(h2.attrs, qualified...)
	return h2
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *Handler) clone() *Handler {
	return &Handler{
		l:      h.l,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

// appendAttr writes " key=value", flattening groups into dotted keys.
func appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		// Inline groups (empty key) keep the enclosing prefix.
		if key == "" {
			key = prefix
		}
		for _, ga := range a.Value.Group() {
			appendAttr(sb, key, ga)
		}
		return
	}

	sb.WriteByte(' ')
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(formatValue(a.Value))
}

// formatValue quotes values containing spaces, quotes or newlines.
func formatValue(v slog.Value) string {
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
