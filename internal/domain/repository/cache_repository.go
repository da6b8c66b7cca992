package repository

import (
	"context"
	"time"

	"github.com/checkin-service/internal/domain"
)

// CacheRepository caches directory responses. Misses are (nil, nil).
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetSearchResults returns cached normalized stations for a query.
	GetSearchResults(ctx context.Context, query string) ([]domain.Station, error)

	// SetSearchResults caches normalized stations for a query.
	SetSearchResults(ctx context.Context, query string, stations []domain.Station, ttl time.Duration) error

	// GetDepartures returns the cached departure board for a station.
	GetDepartures(ctx context.Context, stationID string) ([]domain.Departure, error)

	// SetDepartures caches the departure board for a station.
	SetDepartures(ctx context.Context, stationID string, departures []domain.Departure, ttl time.Duration) error
}
