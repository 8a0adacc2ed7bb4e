// File: envgrove/config/redact.go
package config

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

const redactedMarker = "[REDACTED]"

// RedactHandler is a slog.Handler middleware that masks known secret
// literals in log messages and string attribute values. Wire it with the
// values from Config.SecretValues.
type RedactHandler struct {
	inner   slog.Handler
	secrets []string
}

// NewRedactHandler wraps a handler so the given literals never reach its
// output unmasked.
func NewRedactHandler(inner slog.Handler, secrets ...string) *RedactHandler {
	return &RedactHandler{inner: inner, secrets: secrets}
}

func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, h.redact(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(h.redactAttr(a))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.redactAttr(a)
	}
	return &RedactHandler{inner: h.inner.WithAttrs(out), secrets: h.secrets}
}

func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{inner: h.inner.WithGroup(name), secrets: h.secrets}
}

func (h *RedactHandler) redactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.redact(v.String()))
	case slog.KindGroup:
		attrs := v.Group()
		out := make([]slog.Attr, len(attrs))
		for i, g := range attrs {
			out[i] = h.redactAttr(g)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

func (h *RedactHandler) redact(s string) string {
	for _, secret := range h.secrets {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, redactedMarker)
		}
	}
	return s
}

// RedactWriter masks secret literals in a raw output stream, for loggers
// that are not slog-based.
type RedactWriter struct {
	w       io.Writer
	secrets []string
}

// NewRedactWriter wraps a writer so the given literals never reach it
// unmasked.
func NewRedactWriter(w io.Writer, secrets ...string) *RedactWriter {
	return &RedactWriter{w: w, secrets: secrets}
}

func (r *RedactWriter) Write(p []byte) (int, error) {
	s := string(p)
	for _, secret := range r.secrets {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, redactedMarker)
		}
	}
	// Report the original length: callers track what they submitted, not
	// what the mask expanded it to.
	if _, err := r.w.Write([]byte(s)); err != nil {
		return 0, err
	}
	return len(p), nil
}
