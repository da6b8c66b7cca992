package repository

import (
	"context"

	"github.com/checkin-service/internal/domain"
)

// DirectoryRepository is the external station/journey directory. Transport
// and format failures come back as errors; callers convert them into
// structured failures instead of propagating them raw.
type DirectoryRepository interface {
	// SearchStations looks stations up by name.
	SearchStations(ctx context.Context, query string, maxResults int) ([]domain.Station, error)

	// NearbyStops returns stations within maxDistance meters of a point.
	NearbyStops(ctx context.Context, lat, lng float64, maxDistance, maxResults int) ([]domain.Station, error)

	// Departures returns the departure board for a station, keyed by its
	// directory id.
	Departures(ctx context.Context, stationID string, maxDepartures int) ([]domain.Departure, error)
}
