package publish

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer periodically loads the newest published games so first plays
// hit the cache.
type CacheWarmer struct {
	svc      *Service
	logger   zerolog.Logger
	interval time.Duration
	topN     int
}

func NewCacheWarmer(svc *Service, interval time.Duration, topN int, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if topN <= 0 {
		topN = 50
	}
	return &CacheWarmer{
		svc:      svc,
		logger:   logger.With().Str("component", "publish_cache_warmer").Logger(),
		interval: interval,
		topN:     topN,
	}
}

// Run blocks until context cancellation.
func (w *CacheWarmer) Run(ctx context.Context) error {
	if w.svc == nil || w.svc.cache == nil {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *CacheWarmer) tick(ctx context.Context) int {
	ids, err := w.svc.RecentIDs(ctx, w.topN)
	if err != nil {
		w.logger.Warn().Err(err).Msg("list recent games failed")
		return 0
	}
	warmed := 0
	for _, id := range ids {
		if _, err := w.svc.Get(ctx, id); err != nil {
			w.logger.Warn().Err(err).Str("game_id", id).Msg("warm game failed")
			continue
		}
		warmed++
	}
	w.logger.Debug().Int("games", warmed).Msg("cache warmed")
	return warmed
}
