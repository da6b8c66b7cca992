package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/checkin-service/internal/domain/repository"
	"github.com/checkin-service/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewPassengerRepositoryForTest creates a passenger repository with test database and logger
func NewPassengerRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PassengerRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewPassengerRepository(pgDB)
}

// NewFavoriteRepositoryForTest creates a favorite repository with test database and logger
func NewFavoriteRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.FavoriteRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewFavoriteRepository(pgDB)
}
