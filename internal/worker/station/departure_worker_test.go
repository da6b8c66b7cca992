package station

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/checkin-service/internal/config"
	"github.com/checkin-service/internal/domain"
)

type stubFavorites struct {
	favorites []domain.FavoriteStation
}

func (s *stubFavorites) Create(ctx context.Context, fav *domain.FavoriteStation) (*domain.FavoriteStation, error) {
	return fav, nil
}

func (s *stubFavorites) List(ctx context.Context) ([]domain.FavoriteStation, error) {
	return s.favorites, nil
}

func (s *stubFavorites) GetByKey(ctx context.Context, extID string) (*domain.FavoriteStation, error) {
	return nil, nil
}

func (s *stubFavorites) DeleteByKey(ctx context.Context, extID string) error {
	return nil
}

type stubDirectory struct {
	mu    sync.Mutex
	calls []string
}

func (s *stubDirectory) SearchStations(ctx context.Context, query string, maxResults int) ([]domain.Station, error) {
	return nil, nil
}

func (s *stubDirectory) NearbyStops(ctx context.Context, lat, lng float64, maxDistance, maxResults int) ([]domain.Station, error) {
	return nil, nil
}

func (s *stubDirectory) Departures(ctx context.Context, stationID string, maxDepartures int) ([]domain.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, stationID)
	return []domain.Departure{{Line: "Bus 3A", ScheduledTime: "14:32"}}, nil
}

func (s *stubDirectory) called() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

type stubCache struct {
	mu     sync.Mutex
	boards map[string][]domain.Departure
}

func newStubCache() *stubCache {
	return &stubCache{boards: make(map[string][]domain.Departure)}
}

func (s *stubCache) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }

func (s *stubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (s *stubCache) Delete(ctx context.Context, key string) error { return nil }

func (s *stubCache) GetSearchResults(ctx context.Context, query string) ([]domain.Station, error) {
	return nil, nil
}

func (s *stubCache) SetSearchResults(ctx context.Context, query string, stations []domain.Station, ttl time.Duration) error {
	return nil
}

func (s *stubCache) GetDepartures(ctx context.Context, stationID string) ([]domain.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boards[stationID], nil
}

func (s *stubCache) SetDepartures(ctx context.Context, stationID string, departures []domain.Departure, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[stationID] = departures
	return nil
}

func TestDepartureRefreshWorker_WarmsCacheImmediately(t *testing.T) {
	favorites := &stubFavorites{favorites: []domain.FavoriteStation{
		{ID: "f1", Name: "Godthåbsvej", ExternalID: "8600626"},
		{ID: "f2", Name: "Aarhus H", ExternalID: "8600053"},
	}}
	directory := &stubDirectory{}
	cache := newStubCache()

	w := NewDepartureRefreshWorker(
		favorites,
		directory,
		cache,
		config.WorkerConfig{RefreshInterval: time.Hour, MaxDepartures: 5},
		config.CacheConfig{DeparturesTTL: time.Minute},
		zap.NewNop(),
	)

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	assert.Eventually(t, func() bool {
		return len(directory.called()) == 2
	}, time.Second, 5*time.Millisecond)

	boards, err := cache.GetDepartures(context.Background(), "8600626")
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "Bus 3A", boards[0].Line)

	require.NoError(t, w.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestDepartureRefreshWorker_StopIsIdempotent(t *testing.T) {
	w := NewDepartureRefreshWorker(
		&stubFavorites{},
		&stubDirectory{},
		newStubCache(),
		config.WorkerConfig{RefreshInterval: time.Hour, MaxDepartures: 5},
		config.CacheConfig{DeparturesTTL: time.Minute},
		zap.NewNop(),
	)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}
