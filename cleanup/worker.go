// Package cleanup sweeps expired sessions on a fixed interval.
package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// Purger removes expired sessions and reports how many were deleted.
type Purger interface {
	Cleanup(ctx context.Context) (int64, error)
}

// StartWorker runs a background goroutine that periodically purges expired
// sessions. It stops when ctx is cancelled. Each sweep is idempotent; a
// sweep with nothing expired deletes nothing.
func StartWorker(ctx context.Context, purger Purger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		slog.Info("cleanup worker started", "interval", interval)

		for {
			select {
			case <-ctx.Done():
				slog.Info("cleanup worker stopped")
				return
			case <-ticker.C:
				deleted, err := purger.Cleanup(ctx)
				if err != nil {
					slog.Error("cleanup sweep failed", "error", err)
					continue
				}
				slog.Debug("cleanup sweep finished", "deleted", deleted)
			}
		}
	}()
}
