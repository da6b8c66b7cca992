package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/checkin-service/internal/domain"
	"github.com/checkin-service/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// searchKey normalizes the query so case variants share an entry.
func searchKey(query string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(query))
}

func departuresKey(stationID string) string {
	return "departures:" + stationID
}

func (r *cacheRepository) GetSearchResults(ctx context.Context, query string) ([]domain.Station, error) {
	data, err := r.Get(ctx, searchKey(query))
	if err != nil || data == nil {
		return nil, err
	}

	var stations []domain.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		r.logger.Error("Failed to unmarshal cached search results", zap.Error(err))
		return nil, fmt.Errorf("unmarshal search results: %w", err)
	}
	return stations, nil
}

func (r *cacheRepository) SetSearchResults(ctx context.Context, query string, stations []domain.Station, ttl time.Duration) error {
	data, err := json.Marshal(stations)
	if err != nil {
		r.logger.Error("Failed to marshal search results", zap.Error(err))
		return fmt.Errorf("marshal search results: %w", err)
	}
	return r.Set(ctx, searchKey(query), data, ttl)
}

func (r *cacheRepository) GetDepartures(ctx context.Context, stationID string) ([]domain.Departure, error) {
	data, err := r.Get(ctx, departuresKey(stationID))
	if err != nil || data == nil {
		return nil, err
	}

	var departures []domain.Departure
	if err := json.Unmarshal(data, &departures); err != nil {
		r.logger.Error("Failed to unmarshal cached departures", zap.Error(err))
		return nil, fmt.Errorf("unmarshal departures: %w", err)
	}
	return departures, nil
}

func (r *cacheRepository) SetDepartures(ctx context.Context, stationID string, departures []domain.Departure, ttl time.Duration) error {
	data, err := json.Marshal(departures)
	if err != nil {
		r.logger.Error("Failed to marshal departures", zap.Error(err))
		return fmt.Errorf("marshal departures: %w", err)
	}
	return r.Set(ctx, departuresKey(stationID), data, ttl)
}
