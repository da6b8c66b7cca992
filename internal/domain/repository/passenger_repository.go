package repository

import (
	"context"

	"github.com/checkin-service/internal/domain"
)

// PassengerRepository is the passenger record store.
type PassengerRepository interface {
	// Create persists a new passenger and returns the stored record with
	// its generated id and timestamps.
	Create(ctx context.Context, p *domain.Passenger) (*domain.Passenger, error)

	// List returns all passengers.
	List(ctx context.Context) ([]domain.Passenger, error)

	// GetByID returns a passenger, or ErrPassengerNotFound.
	GetByID(ctx context.Context, id string) (*domain.Passenger, error)

	// Update applies a partial update and returns the updated record, or
	// ErrPassengerNotFound when the id is absent.
	Update(ctx context.Context, id string, fields domain.PassengerUpdate) (*domain.Passenger, error)

	// Delete removes a passenger. Idempotent on repeated calls.
	Delete(ctx context.Context, id string) error
}
