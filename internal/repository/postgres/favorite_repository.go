package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/checkin-service/internal/domain"
	"github.com/checkin-service/internal/domain/repository"
	apperrors "github.com/checkin-service/internal/pkg/errors"
)

// uniqueViolation is the postgres error code raised by the ext_id unique
// constraint on favorite_stations.
const uniqueViolation = "23505"

type favoriteRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewFavoriteRepository(db *DB) repository.FavoriteRepository {
	return &favoriteRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *favoriteRepository) Create(ctx context.Context, fav *domain.FavoriteStation) (*domain.FavoriteStation, error) {
	query := `
		INSERT INTO favorite_stations (name, ext_id, municipality, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, ext_id, municipality, latitude, longitude, created_at
	`

	var created domain.FavoriteStation
	err := r.db.GetContext(ctx, &created, query,
		fav.Name, fav.ExternalID, fav.Municipality, fav.Latitude, fav.Longitude,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrFavoriteExists
		}
		r.logger.Error("Failed to create favorite station",
			zap.String("ext_id", fav.ExternalID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &created, nil
}

func (r *favoriteRepository) List(ctx context.Context) ([]domain.FavoriteStation, error) {
	query := `
		SELECT id, name, ext_id, municipality, latitude, longitude, created_at
		FROM favorite_stations
		ORDER BY created_at
	`

	var favorites []domain.FavoriteStation
	if err := r.db.SelectContext(ctx, &favorites, query); err != nil {
		r.logger.Error("Failed to list favorite stations", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return favorites, nil
}

func (r *favoriteRepository) GetByKey(ctx context.Context, extID string) (*domain.FavoriteStation, error) {
	query := `
		SELECT id, name, ext_id, municipality, latitude, longitude, created_at
		FROM favorite_stations
		WHERE ext_id = $1
	`

	var fav domain.FavoriteStation
	err := r.db.GetContext(ctx, &fav, query, extID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get favorite station",
			zap.String("ext_id", extID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &fav, nil
}

func (r *favoriteRepository) DeleteByKey(ctx context.Context, extID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorite_stations WHERE ext_id = $1`, extID); err != nil {
		r.logger.Error("Failed to delete favorite station",
			zap.String("ext_id", extID), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	return nil
}
