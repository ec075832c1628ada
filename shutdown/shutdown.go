// Package shutdown turns termination signals into context cancellation.
package shutdown

import (
	"context"
	"os/signal"
)

// Context is cancelled on the first termination signal for the platform.
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}
