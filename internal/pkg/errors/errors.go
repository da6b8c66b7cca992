package errors

import "net/http"

var (
	ErrPassengerNotFound = New(
		"PASSENGER_NOT_FOUND",
		"Passenger not found",
		http.StatusNotFound,
	)

	ErrFavoriteNotFound = New(
		"FAVORITE_NOT_FOUND",
		"Favorite station not found",
		http.StatusNotFound,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Check-in session not found",
		http.StatusNotFound,
	)

	// ErrFavoriteExists is the duplicate-favorite conflict. Handlers attach
	// the already-persisted record via WithDetails so the caller can reuse it.
	ErrFavoriteExists = New(
		"FAVORITE_EXISTS",
		"Station is already in favorites",
		http.StatusConflict,
	)

	ErrInvalidBirthDate = New(
		"INVALID_BIRTH_DATE",
		"Birth date must be in DD.MM.YYYY format",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDirectoryError = New(
		"DIRECTORY_ERROR",
		"Station directory request failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
