package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/checkin-service/internal/domain"
)

type mockPassengerRepo struct {
	mock.Mock
}

func (m *mockPassengerRepo) Create(ctx context.Context, p *domain.Passenger) (*domain.Passenger, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *mockPassengerRepo) List(ctx context.Context) ([]domain.Passenger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *mockPassengerRepo) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *mockPassengerRepo) Update(ctx context.Context, id string, fields domain.PassengerUpdate) (*domain.Passenger, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *mockPassengerRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockFavoriteRepo struct {
	mock.Mock
}

func (m *mockFavoriteRepo) Create(ctx context.Context, fav *domain.FavoriteStation) (*domain.FavoriteStation, error) {
	args := m.Called(ctx, fav)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteStation), args.Error(1)
}

func (m *mockFavoriteRepo) List(ctx context.Context) ([]domain.FavoriteStation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FavoriteStation), args.Error(1)
}

func (m *mockFavoriteRepo) GetByKey(ctx context.Context, extID string) (*domain.FavoriteStation, error) {
	args := m.Called(ctx, extID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FavoriteStation), args.Error(1)
}

func (m *mockFavoriteRepo) DeleteByKey(ctx context.Context, extID string) error {
	args := m.Called(ctx, extID)
	return args.Error(0)
}

type mockDirectoryRepo struct {
	mock.Mock
}

func (m *mockDirectoryRepo) SearchStations(ctx context.Context, query string, maxResults int) ([]domain.Station, error) {
	args := m.Called(ctx, query, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *mockDirectoryRepo) NearbyStops(ctx context.Context, lat, lng float64, maxDistance, maxResults int) ([]domain.Station, error) {
	args := m.Called(ctx, lat, lng, maxDistance, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *mockDirectoryRepo) Departures(ctx context.Context, stationID string, maxDepartures int) ([]domain.Departure, error) {
	args := m.Called(ctx, stationID, maxDepartures)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Departure), args.Error(1)
}

type mockCacheRepo struct {
	mock.Mock
}

func (m *mockCacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCacheRepo) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCacheRepo) GetSearchResults(ctx context.Context, query string) ([]domain.Station, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *mockCacheRepo) SetSearchResults(ctx context.Context, query string, stations []domain.Station, ttl time.Duration) error {
	args := m.Called(ctx, query, stations, ttl)
	return args.Error(0)
}

func (m *mockCacheRepo) GetDepartures(ctx context.Context, stationID string) ([]domain.Departure, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Departure), args.Error(1)
}

func (m *mockCacheRepo) SetDepartures(ctx context.Context, stationID string, departures []domain.Departure, ttl time.Duration) error {
	args := m.Called(ctx, stationID, departures, ttl)
	return args.Error(0)
}
