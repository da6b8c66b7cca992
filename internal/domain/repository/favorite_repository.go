package repository

import (
	"context"

	"github.com/checkin-service/internal/domain"
)

// FavoriteRepository is the favorite-station record store. Records are
// keyed by the station's canonical key (ext_id).
type FavoriteRepository interface {
	// Create persists a favorite and returns the stored record, or
	// ErrFavoriteExists when the key is already taken.
	Create(ctx context.Context, fav *domain.FavoriteStation) (*domain.FavoriteStation, error)

	// List returns all favorites.
	List(ctx context.Context) ([]domain.FavoriteStation, error)

	// GetByKey returns the favorite with the given canonical key, or
	// (nil, nil) when absent.
	GetByKey(ctx context.Context, extID string) (*domain.FavoriteStation, error)

	// DeleteByKey removes the favorite with the given canonical key.
	// Idempotent on repeated calls.
	DeleteByKey(ctx context.Context, extID string) error
}
