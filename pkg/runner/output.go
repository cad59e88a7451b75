package runner

import (
	"context"

	"github.com/rs/zerolog"
)

type logKey struct{}

// Log returns the logger attached to ctx. Without one, events are discarded.
func Log(ctx context.Context) *zerolog.Logger {
	logger := ctx.Value(logKey{})
	if logger == nil {
		nop := zerolog.Nop()
		return &nop
	}

	return logger.(*zerolog.Logger)
}

// WithLogger attaches the given logger to the context
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, logKey{}, logger)
}

// WithTask returns a context whose logger tags every event with the given task name
func WithTask(ctx context.Context, task string) context.Context {
	logger := Log(ctx).With().Str("task", task).Logger()
	return WithLogger(ctx, &logger)
}
