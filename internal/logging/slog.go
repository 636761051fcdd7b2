package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Redacted replaces the value of any attribute listed in SensitiveKeys.
const Redacted = "[REDACTED]"

// SensitiveKeys are attribute keys whose values never reach the log output.
// Matching is case-insensitive.
var SensitiveKeys = []string{"password", "password_confirmation", "token", "access_token", "authorization", "secret"}

// SlogLogger adapts *slog.Logger to Logger.
type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// NewJSON writes JSON lines to w; the server logs this way.
func NewJSON(w io.Writer, level string) *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, handlerOptions(level))))
}

// NewText writes logfmt lines to w; the terminal client logs to stderr this way.
func NewText(w io.Writer, level string) *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(w, handlerOptions(level))))
}

func handlerOptions(level string) *slog.HandlerOptions {
	return &slog.HandlerOptions{Level: ParseLevel(level), ReplaceAttr: redact}
}

func redact(_ []string, a slog.Attr) slog.Attr {
	for _, k := range SensitiveKeys {
		if strings.EqualFold(a.Key, k) {
			return slog.String(a.Key, Redacted)
		}
	}
	return a
}

// ParseLevel maps "debug", "warn"/"warning" and "error" to slog levels.
// Anything else, including "", is Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

// Nop discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.DiscardHandler))
}
