package shutdown

import (
	"context"
	"os/signal"
	"syscall"
)

// WithSignals binds the context's lifetime to SIGINT/SIGTERM.
func WithSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
