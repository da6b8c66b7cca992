package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/checkin-service/internal/domain"
	"github.com/checkin-service/internal/domain/repository"
	apperrors "github.com/checkin-service/internal/pkg/errors"
	"github.com/checkin-service/internal/repository/postgres/testhelpers"
)

// FavoriteRepositoryTestSuite tests all methods of FavoriteRepository
type FavoriteRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.FavoriteRepository
	ctx    context.Context
}

func (s *FavoriteRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	_ = testhelpers.ApplyMigrations(
		s.testDB.DB.DB,
		"../../../migrations",
	)

	s.repo = testhelpers.NewFavoriteRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.ctx = context.Background()
}

func (s *FavoriteRepositoryTestSuite) SetupTest() {
	err := s.testDB.Cleanup(s.ctx)
	s.NoError(err, "Failed to cleanup test database")
}

func (s *FavoriteRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *FavoriteRepositoryTestSuite) newFavorite() *domain.FavoriteStation {
	st := domain.Station{
		Name:         "Godthåbsvej",
		Municipality: "Silkeborg Kom",
		ExternalID:   "8600626",
		Coordinates:  &domain.Coordinates{Lat: 56.1697, Lng: 9.5451},
	}
	fav := domain.NewFavoriteStation(st)
	return &fav
}

func (s *FavoriteRepositoryTestSuite) TestCreateAndGetByKey() {
	created, err := s.repo.Create(s.ctx, s.newFavorite())
	s.Require().NoError(err)
	s.NotEmpty(created.ID)
	s.Equal("8600626", created.ExternalID)
	s.False(created.CreatedAt.IsZero())

	got, err := s.repo.GetByKey(s.ctx, "8600626")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(created.ID, got.ID)
	s.Require().NotNil(got.Municipality)
	s.Equal("Silkeborg Kom", *got.Municipality)
}

func (s *FavoriteRepositoryTestSuite) TestGetByKeyMissing() {
	got, err := s.repo.GetByKey(s.ctx, "does-not-exist")
	s.NoError(err)
	s.Nil(got)
}

func (s *FavoriteRepositoryTestSuite) TestDuplicateKeyConflicts() {
	_, err := s.repo.Create(s.ctx, s.newFavorite())
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, s.newFavorite())
	s.ErrorIs(err, apperrors.ErrFavoriteExists)

	// The conflict did not create a second row.
	favorites, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(favorites, 1)
}

func (s *FavoriteRepositoryTestSuite) TestDeleteByKeyIdempotent() {
	_, err := s.repo.Create(s.ctx, s.newFavorite())
	s.Require().NoError(err)

	s.NoError(s.repo.DeleteByKey(s.ctx, "8600626"))
	s.NoError(s.repo.DeleteByKey(s.ctx, "8600626"))

	got, err := s.repo.GetByKey(s.ctx, "8600626")
	s.NoError(err)
	s.Nil(got)
}

func TestFavoriteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(FavoriteRepositoryTestSuite))
}
