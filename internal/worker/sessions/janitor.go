package sessions

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/worker"
)

// Evictor - хранилище сессий с вытеснением неактивных
type Evictor interface {
	EvictIdle(ttl time.Duration) int
	SessionCount() int
}

// Janitor периодически удаляет сессии, неактивные дольше ttl
type Janitor struct {
	*worker.BaseWorker
	sessions Evictor
	ttl      time.Duration
	interval time.Duration
}

func NewJanitor(sessions Evictor, ttl, interval time.Duration, logger *zap.Logger) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{
		BaseWorker: worker.NewBaseWorker("session-janitor", logger),
		sessions:   sessions,
		ttl:        ttl,
		interval:   interval,
	}
}

func (j *Janitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.Logger().Info("Session janitor started",
		zap.Duration("ttl", j.ttl),
		zap.Duration("interval", j.interval))

	for {
		select {
		case <-j.StopChan():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if evicted := j.sessions.EvictIdle(j.ttl); evicted > 0 {
				j.Logger().Info("Evicted idle sessions",
					zap.Int("evicted", evicted),
					zap.Int("remaining", j.sessions.SessionCount()))
			}
		}
	}
}
