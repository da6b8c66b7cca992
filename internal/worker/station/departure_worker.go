package station

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/checkin-service/internal/config"
	"github.com/checkin-service/internal/domain/repository"
	"github.com/checkin-service/internal/worker"
)

// DepartureRefreshWorker keeps the departure boards of favorite stations
// warm in the cache, so opening the check-in screen for a pinned station
// never waits on the directory.
type DepartureRefreshWorker struct {
	*worker.BaseWorker
	favorites repository.FavoriteRepository
	directory repository.DirectoryRepository
	cache     repository.CacheRepository
	interval  time.Duration
	maxBoards int
	ttl       time.Duration
}

func NewDepartureRefreshWorker(
	favorites repository.FavoriteRepository,
	directory repository.DirectoryRepository,
	cache repository.CacheRepository,
	workerCfg config.WorkerConfig,
	cacheCfg config.CacheConfig,
	logger *zap.Logger,
) *DepartureRefreshWorker {
	return &DepartureRefreshWorker{
		BaseWorker: worker.NewBaseWorker("departure-refresh", logger),
		favorites:  favorites,
		directory:  directory,
		cache:      cache,
		interval:   workerCfg.RefreshInterval,
		maxBoards:  workerCfg.MaxDepartures,
		ttl:        cacheCfg.DeparturesTTL,
	}
}

// Start runs the refresh loop. One cycle runs immediately so the cache is
// warm right after startup.
func (w *DepartureRefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting DepartureRefreshWorker",
		zap.Duration("interval", w.interval),
		zap.Int("max_departures", w.maxBoards))

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

// refresh fetches a fresh board for every favorite and writes it to the
// cache. Failures are logged per station; one broken board does not stop
// the cycle.
func (w *DepartureRefreshWorker) refresh(ctx context.Context) {
	logger := w.Logger()

	favorites, err := w.favorites.List(ctx)
	if err != nil {
		logger.Error("Failed to list favorites for refresh", zap.Error(err))
		return
	}

	refreshed := 0
	for _, fav := range favorites {
		departures, err := w.directory.Departures(ctx, fav.ExternalID, w.maxBoards)
		if err != nil {
			logger.Warn("Failed to refresh departures",
				zap.String("ext_id", fav.ExternalID),
				zap.Error(err))
			continue
		}

		if err := w.cache.SetDepartures(ctx, fav.ExternalID, departures, w.ttl); err != nil {
			logger.Warn("Failed to cache departures",
				zap.String("ext_id", fav.ExternalID),
				zap.Error(err))
			continue
		}
		refreshed++
	}

	if len(favorites) > 0 {
		logger.Info("Departure boards refreshed",
			zap.Int("favorites", len(favorites)),
			zap.Int("refreshed", refreshed))
	}
}
