// Package logging is the structured logger shared by the storefront server
// and terminal client. Components receive a Logger and derive a child with
// With("module", ...); the backing implementation is log/slog.
package logging

import "context"

// Logger takes a message plus alternating key/value attributes:
//
//	log.Info(ctx, "token issued", "user_id", u.ID, "jti", claims.ID)
//
// Values under sensitive keys (see SensitiveKeys) are masked by the
// handlers built with NewJSON and NewText.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
