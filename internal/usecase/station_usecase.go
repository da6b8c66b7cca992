package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/checkin-service/internal/config"
	"github.com/checkin-service/internal/domain"
	"github.com/checkin-service/internal/domain/repository"
	apperrors "github.com/checkin-service/internal/pkg/errors"
	"github.com/checkin-service/internal/usecase/dto"
)

// searchFailedMessage is surfaced inside the search response instead of
// failing the request; the client keeps its last rendered list.
const searchFailedMessage = "Failed to search stations"

// StationUseCase handles directory search and the favorites list.
//
// Favorites are written optimistically: the change is visible immediately
// through an in-memory overlay while the store write runs in the
// background, and the overlay is rolled back if the write fails.
type StationUseCase struct {
	directory repository.DirectoryRepository
	favorites repository.FavoriteRepository
	cache     repository.CacheRepository
	logger    *zap.Logger
	searchCfg config.SearchConfig
	cacheCfg  config.CacheConfig

	mu            sync.Mutex
	pendingAdd    map[string]domain.Station
	pendingRemove map[string]struct{}
}

func NewStationUseCase(
	directory repository.DirectoryRepository,
	favorites repository.FavoriteRepository,
	cache repository.CacheRepository,
	searchCfg config.SearchConfig,
	cacheCfg config.CacheConfig,
	logger *zap.Logger,
) *StationUseCase {
	return &StationUseCase{
		directory:     directory,
		favorites:     favorites,
		cache:         cache,
		logger:        logger,
		searchCfg:     searchCfg,
		cacheCfg:      cacheCfg,
		pendingAdd:    make(map[string]domain.Station),
		pendingRemove: make(map[string]struct{}),
	}
}

// Search looks stations up by name. Queries below the minimum length get
// an empty result set without touching the directory; directory failures
// are folded into the response as a message rather than an error.
func (uc *StationUseCase) Search(ctx context.Context, req dto.SearchRequest) *dto.SearchResponse {
	query := strings.TrimSpace(req.Query)
	resp := &dto.SearchResponse{Query: query, Stations: []dto.StationResult{}}

	if utf8.RuneCountInString(query) < uc.searchCfg.MinQueryLength {
		return resp
	}

	limit := req.Limit
	if limit <= 0 {
		limit = uc.searchCfg.MaxResults
	}

	if cached, err := uc.cache.GetSearchResults(ctx, query); err == nil && cached != nil {
		resp.Stations = uc.decorate(ctx, cached)
		return resp
	}

	stations, err := uc.directory.SearchStations(ctx, query, limit)
	if err != nil {
		uc.logger.Warn("Station search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		resp.Error = searchFailedMessage
		return resp
	}

	for i := range stations {
		stations[i] = stations[i].Normalized()
	}

	if err := uc.cache.SetSearchResults(ctx, query, stations, uc.cacheCfg.SearchTTL); err != nil {
		uc.logger.Warn("Failed to cache search results", zap.Error(err))
	}

	resp.Stations = uc.decorate(ctx, stations)
	return resp
}

// Nearby returns stations around a point, decorated with favorite state.
func (uc *StationUseCase) Nearby(ctx context.Context, req dto.NearbyRequest) ([]dto.StationResult, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = uc.searchCfg.MaxResults
	}
	maxDistance := req.MaxDistance
	if maxDistance <= 0 {
		maxDistance = 1000
	}

	stations, err := uc.directory.NearbyStops(ctx, req.Lat, req.Lng, maxDistance, limit)
	if err != nil {
		uc.logger.Error("Nearby stops lookup failed", zap.Error(err))
		return nil, apperrors.ErrDirectoryError
	}

	for i := range stations {
		stations[i] = stations[i].Normalized()
	}
	return uc.decorate(ctx, stations), nil
}

// Departures returns the departure board for a station, served from cache
// when a fresh board is available.
func (uc *StationUseCase) Departures(ctx context.Context, stationID string, limit int) (*dto.DepartureBoardResponse, error) {
	if limit <= 0 {
		limit = uc.searchCfg.MaxResults
	}

	if cached, err := uc.cache.GetDepartures(ctx, stationID); err == nil && cached != nil {
		return &dto.DepartureBoardResponse{StationID: stationID, Departures: cached, FromCache: true}, nil
	}

	departures, err := uc.directory.Departures(ctx, stationID, limit)
	if err != nil {
		uc.logger.Error("Departure board lookup failed",
			zap.String("station_id", stationID),
			zap.Error(err),
		)
		return nil, apperrors.ErrDirectoryError
	}

	if err := uc.cache.SetDepartures(ctx, stationID, departures, uc.cacheCfg.DeparturesTTL); err != nil {
		uc.logger.Warn("Failed to cache departures", zap.Error(err))
	}

	return &dto.DepartureBoardResponse{StationID: stationID, Departures: departures}, nil
}

// ListFavorites merges the persisted favorites with the optimistic
// overlay: pending removals are hidden, pending additions appended.
func (uc *StationUseCase) ListFavorites(ctx context.Context) ([]domain.Station, error) {
	records, err := uc.favorites.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list favorites", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	stations := make([]domain.Station, 0, len(records)+len(uc.pendingAdd))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		st := rec.Station()
		key := st.CanonicalKey()
		seen[key] = struct{}{}
		if _, removed := uc.pendingRemove[key]; removed {
			continue
		}
		stations = append(stations, st)
	}
	for key, st := range uc.pendingAdd {
		if _, ok := seen[key]; ok {
			continue
		}
		stations = append(stations, st)
	}
	return stations, nil
}

// AddFavorite pins a station. The addition is visible immediately; the
// store write happens in the background and is rolled back on failure.
// Adding a station that is already a favorite returns a conflict carrying
// the existing record.
func (uc *StationUseCase) AddFavorite(ctx context.Context, st domain.Station) (domain.Station, error) {
	st = st.Normalized()
	key := st.CanonicalKey()

	if existing := uc.lookupFavorite(ctx, key); existing != nil {
		return domain.Station{}, apperrors.ErrFavoriteExists.WithDetails(existing)
	}

	uc.mu.Lock()
	uc.pendingAdd[key] = st
	delete(uc.pendingRemove, key)
	uc.mu.Unlock()

	go uc.persistFavorite(context.WithoutCancel(ctx), key, st)
	return st, nil
}

func (uc *StationUseCase) persistFavorite(ctx context.Context, key string, st domain.Station) {
	fav := domain.NewFavoriteStation(st)
	_, err := uc.favorites.Create(ctx, &fav)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.pendingAdd[key]; !ok {
		// Superseded by a removal while the write was in flight.
		return
	}
	delete(uc.pendingAdd, key)

	if err != nil && !errors.Is(err, apperrors.ErrFavoriteExists) {
		uc.logger.Warn("Favorite write failed, rolling back",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// RemoveFavorite unpins a station by canonical key. The removal is visible
// immediately; a failed store delete rolls the overlay back so the
// favorite reappears. Removing a non-favorite is a no-op.
func (uc *StationUseCase) RemoveFavorite(ctx context.Context, key string) {
	uc.mu.Lock()
	delete(uc.pendingAdd, key)
	uc.pendingRemove[key] = struct{}{}
	uc.mu.Unlock()

	go uc.deleteFavorite(context.WithoutCancel(ctx), key)
}

func (uc *StationUseCase) deleteFavorite(ctx context.Context, key string) {
	err := uc.favorites.DeleteByKey(ctx, key)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	delete(uc.pendingRemove, key)
	if err != nil {
		uc.logger.Warn("Favorite delete failed, rolling back",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// IsFavorite reports whether the key is currently a favorite, overlay
// included.
func (uc *StationUseCase) IsFavorite(ctx context.Context, key string) bool {
	uc.mu.Lock()
	if _, ok := uc.pendingRemove[key]; ok {
		uc.mu.Unlock()
		return false
	}
	if _, ok := uc.pendingAdd[key]; ok {
		uc.mu.Unlock()
		return true
	}
	uc.mu.Unlock()

	fav, err := uc.favorites.GetByKey(ctx, key)
	return err == nil && fav != nil
}

// lookupFavorite returns the current record for the key, overlay included,
// or nil when the key is not a favorite.
func (uc *StationUseCase) lookupFavorite(ctx context.Context, key string) interface{} {
	uc.mu.Lock()
	if _, ok := uc.pendingRemove[key]; ok {
		uc.mu.Unlock()
		return nil
	}
	if st, ok := uc.pendingAdd[key]; ok {
		uc.mu.Unlock()
		return st
	}
	uc.mu.Unlock()

	fav, err := uc.favorites.GetByKey(ctx, key)
	if err != nil || fav == nil {
		return nil
	}
	return fav
}

// decorate marks each station with its favorite state.
func (uc *StationUseCase) decorate(ctx context.Context, stations []domain.Station) []dto.StationResult {
	keys := uc.favoriteKeySet(ctx)

	results := make([]dto.StationResult, 0, len(stations))
	for _, st := range stations {
		_, fav := keys[st.CanonicalKey()]
		results = append(results, dto.NewStationResult(st, fav))
	}
	return results
}

func (uc *StationUseCase) favoriteKeySet(ctx context.Context) map[string]struct{} {
	keys := make(map[string]struct{})

	records, err := uc.favorites.List(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load favorites for decoration", zap.Error(err))
	} else {
		for _, rec := range records {
			keys[rec.ExternalID] = struct{}{}
		}
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	for key := range uc.pendingAdd {
		keys[key] = struct{}{}
	}
	for key := range uc.pendingRemove {
		delete(keys, key)
	}
	return keys
}
