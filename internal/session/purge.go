package session

import (
	"context"
	"support-portal/internal/worker"
	"time"

	"go.uber.org/zap"
)

// SchedulePurge submits p.PurgeExpired to pool every interval until ctx is
// done.
func SchedulePurge(ctx context.Context, pool *worker.WorkerPool, p Purger, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pool.Submit(func(taskCtx context.Context) error {
					n, err := p.PurgeExpired(taskCtx)
					if err != nil {
						return err
					}
					if n > 0 {
						logger.Info("purged expired session items", zap.Int64("count", n))
					}
					return nil
				})
			}
		}
	}()
}
