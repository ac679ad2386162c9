// Package logging defines the structured logger the rest of the code logs
// through, so the concrete backend stays swappable.
package logging

import "context"

// Logger logs leveled messages with alternating key/value args:
//
//	log.Info(ctx, "upload accepted", "user", id, "file", name)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger whose every record carries the given pairs.
	With(args ...any) Logger
}
