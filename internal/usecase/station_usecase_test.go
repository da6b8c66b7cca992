package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/checkin-service/internal/config"
	"github.com/checkin-service/internal/domain"
	apperrors "github.com/checkin-service/internal/pkg/errors"
	"github.com/checkin-service/internal/usecase/dto"
)

func newStationFixture() (*StationUseCase, *mockDirectoryRepo, *mockFavoriteRepo, *mockCacheRepo) {
	directory := new(mockDirectoryRepo)
	favorites := new(mockFavoriteRepo)
	cache := new(mockCacheRepo)

	uc := NewStationUseCase(
		directory,
		favorites,
		cache,
		config.SearchConfig{MinQueryLength: 2, MaxResults: 10, Debounce: 10 * time.Millisecond},
		config.CacheConfig{SearchTTL: 5 * time.Minute, DeparturesTTL: time.Minute},
		zap.NewNop(),
	)
	return uc, directory, favorites, cache
}

func storedFavorite() domain.FavoriteStation {
	mun := "Silkeborg Kom"
	return domain.FavoriteStation{
		ID:           "f1",
		Name:         "Godthåbsvej",
		ExternalID:   "8600626",
		Municipality: &mun,
		CreatedAt:    time.Now(),
	}
}

func (uc *StationUseCase) overlayDrained() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.pendingAdd) == 0 && len(uc.pendingRemove) == 0
}

func TestSearch_ShortQuerySkipsDirectory(t *testing.T) {
	uc, directory, _, _ := newStationFixture()

	resp := uc.Search(context.Background(), dto.SearchRequest{Query: " G "})

	assert.Empty(t, resp.Stations)
	assert.Empty(t, resp.Error)
	directory.AssertNotCalled(t, "SearchStations", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_NormalizesAndMarksFavorites(t *testing.T) {
	uc, directory, favorites, cache := newStationFixture()

	cache.On("GetSearchResults", mock.Anything, "Godthåbsvej").Return(nil, nil)
	cache.On("SetSearchResults", mock.Anything, "Godthåbsvej", mock.Anything, 5*time.Minute).Return(nil)
	directory.On("SearchStations", mock.Anything, "Godthåbsvej", 10).Return([]domain.Station{
		{ID: "A=1@L=8600626", Name: "Godthåbsvej (Silkeborg Kom)", ExternalID: "8600626"},
		{ID: "A=1@L=8600702", Name: "Godthåbsvej St.", ExternalID: "8600702"},
	}, nil)
	favorites.On("List", mock.Anything).Return([]domain.FavoriteStation{storedFavorite()}, nil)

	resp := uc.Search(context.Background(), dto.SearchRequest{Query: "Godthåbsvej"})

	require.Len(t, resp.Stations, 2)
	assert.Equal(t, "Godthåbsvej", resp.Stations[0].Name)
	assert.Equal(t, "Silkeborg Kom", resp.Stations[0].Municipality)
	assert.True(t, resp.Stations[0].IsFavorite)
	assert.False(t, resp.Stations[1].IsFavorite)
}

func TestSearch_DirectoryFailureIsFoldedIntoResponse(t *testing.T) {
	uc, directory, _, cache := newStationFixture()

	cache.On("GetSearchResults", mock.Anything, "Aarhus").Return(nil, nil)
	directory.On("SearchStations", mock.Anything, "Aarhus", 10).
		Return(nil, errors.New("connection refused"))

	resp := uc.Search(context.Background(), dto.SearchRequest{Query: "Aarhus"})

	assert.Empty(t, resp.Stations)
	assert.Equal(t, searchFailedMessage, resp.Error)
}

func TestSearch_CacheHitSkipsDirectory(t *testing.T) {
	uc, directory, favorites, cache := newStationFixture()

	cache.On("GetSearchResults", mock.Anything, "Aarhus").Return([]domain.Station{
		{Name: "Aarhus H", ExternalID: "8600053"},
	}, nil)
	favorites.On("List", mock.Anything).Return([]domain.FavoriteStation{}, nil)

	resp := uc.Search(context.Background(), dto.SearchRequest{Query: "Aarhus"})

	require.Len(t, resp.Stations, 1)
	assert.Equal(t, "Aarhus H", resp.Stations[0].Name)
	directory.AssertNotCalled(t, "SearchStations", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddFavorite_VisibleBeforePersisted(t *testing.T) {
	uc, _, favorites, _ := newStationFixture()
	stored := storedFavorite()

	favorites.On("GetByKey", mock.Anything, "8600626").Return(nil, nil).Once()
	favorites.On("Create", mock.Anything, mock.Anything).Return(&stored, nil).Once()
	favorites.On("GetByKey", mock.Anything, "8600626").Return(&stored, nil)

	_, err := uc.AddFavorite(context.Background(), domain.Station{
		Name:       "Godthåbsvej (Silkeborg Kom)",
		ExternalID: "8600626",
	})
	require.NoError(t, err)

	// Visible through the overlay before the store write completes.
	assert.True(t, uc.IsFavorite(context.Background(), "8600626"))

	assert.Eventually(t, uc.overlayDrained, time.Second, 5*time.Millisecond)
	// Still a favorite once served by the store.
	assert.True(t, uc.IsFavorite(context.Background(), "8600626"))
	favorites.AssertExpectations(t)
}

func TestAddFavorite_DuplicateCarriesExistingRecord(t *testing.T) {
	uc, _, favorites, _ := newStationFixture()
	stored := storedFavorite()

	favorites.On("GetByKey", mock.Anything, "8600626").Return(&stored, nil)

	_, err := uc.AddFavorite(context.Background(), domain.Station{
		Name:       "Godthåbsvej",
		ExternalID: "8600626",
	})

	require.ErrorIs(t, err, apperrors.ErrFavoriteExists)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, &stored, appErr.Details)
	favorites.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddFavorite_RollsBackOnWriteFailure(t *testing.T) {
	uc, _, favorites, _ := newStationFixture()

	favorites.On("GetByKey", mock.Anything, "8600626").Return(nil, nil)
	favorites.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDatabaseError)

	_, err := uc.AddFavorite(context.Background(), domain.Station{
		Name:       "Godthåbsvej",
		ExternalID: "8600626",
	})
	require.NoError(t, err)
	assert.True(t, uc.IsFavorite(context.Background(), "8600626"))

	assert.Eventually(t, uc.overlayDrained, time.Second, 5*time.Millisecond)
	// Rolled back: the store never took the write and the overlay is gone.
	assert.False(t, uc.IsFavorite(context.Background(), "8600626"))
}

func TestRemoveFavorite_RollsBackOnDeleteFailure(t *testing.T) {
	uc, _, favorites, _ := newStationFixture()
	stored := storedFavorite()

	favorites.On("GetByKey", mock.Anything, "8600626").Return(&stored, nil)
	favorites.On("DeleteByKey", mock.Anything, "8600626").Return(apperrors.ErrDatabaseError)

	uc.RemoveFavorite(context.Background(), "8600626")
	// Hidden immediately through the overlay.
	assert.False(t, uc.IsFavorite(context.Background(), "8600626"))

	assert.Eventually(t, uc.overlayDrained, time.Second, 5*time.Millisecond)
	// The delete failed, so the favorite reappears.
	assert.True(t, uc.IsFavorite(context.Background(), "8600626"))
}

func TestRemoveFavorite_Persisted(t *testing.T) {
	uc, _, favorites, _ := newStationFixture()

	favorites.On("DeleteByKey", mock.Anything, "8600626").Return(nil)
	favorites.On("GetByKey", mock.Anything, "8600626").Return(nil, nil)

	uc.RemoveFavorite(context.Background(), "8600626")

	assert.Eventually(t, uc.overlayDrained, time.Second, 5*time.Millisecond)
	assert.False(t, uc.IsFavorite(context.Background(), "8600626"))
	favorites.AssertCalled(t, "DeleteByKey", mock.Anything, "8600626")
}

func TestListFavorites_MergesOverlay(t *testing.T) {
	uc, _, favorites, _ := newStationFixture()

	favorites.On("List", mock.Anything).Return([]domain.FavoriteStation{storedFavorite()}, nil)

	uc.mu.Lock()
	uc.pendingRemove["8600626"] = struct{}{}
	uc.pendingAdd["8600053"] = domain.Station{Name: "Aarhus H", ExternalID: "8600053"}
	uc.mu.Unlock()

	stations, err := uc.ListFavorites(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "8600053", stations[0].CanonicalKey())
}

func TestDepartures_CacheHit(t *testing.T) {
	uc, directory, _, cache := newStationFixture()

	cache.On("GetDepartures", mock.Anything, "8600626").Return([]domain.Departure{
		{Line: "Bus 3A", Direction: "Silkeborg", ScheduledTime: "14:32"},
	}, nil)

	board, err := uc.Departures(context.Background(), "8600626", 5)
	require.NoError(t, err)
	assert.True(t, board.FromCache)
	require.Len(t, board.Departures, 1)
	directory.AssertNotCalled(t, "Departures", mock.Anything, mock.Anything, mock.Anything)
}

func TestDepartures_FetchesAndCaches(t *testing.T) {
	uc, directory, _, cache := newStationFixture()
	departures := []domain.Departure{{Line: "Bus 3A", ScheduledTime: "14:32"}}

	cache.On("GetDepartures", mock.Anything, "8600626").Return(nil, nil)
	directory.On("Departures", mock.Anything, "8600626", 5).Return(departures, nil)
	cache.On("SetDepartures", mock.Anything, "8600626", departures, time.Minute).Return(nil)

	board, err := uc.Departures(context.Background(), "8600626", 5)
	require.NoError(t, err)
	assert.False(t, board.FromCache)
	cache.AssertExpectations(t)
}

func TestDepartures_DirectoryFailure(t *testing.T) {
	uc, directory, _, cache := newStationFixture()

	cache.On("GetDepartures", mock.Anything, "8600626").Return(nil, nil)
	directory.On("Departures", mock.Anything, "8600626", 5).
		Return(nil, errors.New("timeout"))

	_, err := uc.Departures(context.Background(), "8600626", 5)
	assert.ErrorIs(t, err, apperrors.ErrDirectoryError)
}

func TestSearchStream_DebouncesAndDiscardsStale(t *testing.T) {
	uc, directory, favorites, cache := newStationFixture()
	stream := uc.NewSearchStream()
	defer stream.Close()

	cache.On("GetSearchResults", mock.Anything, mock.Anything).Return(nil, nil)
	cache.On("SetSearchResults", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	favorites.On("List", mock.Anything).Return([]domain.FavoriteStation{}, nil)
	directory.On("SearchStations", mock.Anything, "Godthåbsvej", 10).Return([]domain.Station{
		{Name: "Godthåbsvej (Silkeborg Kom)", ExternalID: "8600626"},
	}, nil)

	// The first input is superseded within the quiet period; only the
	// second one reaches the directory.
	stream.Input("Aarhus")
	stream.Input("Godthåbsvej")

	assert.Eventually(t, func() bool {
		_, resp := stream.Results()
		return resp != nil && len(resp.Stations) == 1
	}, time.Second, 5*time.Millisecond)

	query, resp := stream.Results()
	assert.Equal(t, "Godthåbsvej", query)
	assert.Equal(t, "Godthåbsvej", resp.Stations[0].Name)
	directory.AssertNotCalled(t, "SearchStations", mock.Anything, "Aarhus", mock.Anything)
}

func TestSearchStream_ShortQueryClearsResults(t *testing.T) {
	uc, directory, _, _ := newStationFixture()
	stream := uc.NewSearchStream()
	defer stream.Close()

	stream.Input("G")

	assert.Eventually(t, func() bool {
		_, resp := stream.Results()
		return resp != nil
	}, time.Second, 5*time.Millisecond)

	_, resp := stream.Results()
	assert.Empty(t, resp.Stations)
	directory.AssertNotCalled(t, "SearchStations", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchStream_ClosedIgnoresInput(t *testing.T) {
	uc, directory, _, _ := newStationFixture()
	stream := uc.NewSearchStream()

	stream.Close()
	stream.Input("Godthåbsvej")

	time.Sleep(30 * time.Millisecond)
	_, resp := stream.Results()
	assert.Nil(t, resp)
	directory.AssertNotCalled(t, "SearchStations", mock.Anything, mock.Anything, mock.Anything)
}
