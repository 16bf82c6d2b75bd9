package errors

import "net/http"

var (
	ErrLocationUnavailable = New(
		"LOCATION_UNAVAILABLE",
		"User location is unavailable",
		http.StatusUnprocessableEntity,
	)

	ErrAuthenticationFailed = New(
		"AUTHENTICATION_FAILED",
		"Authentication failed",
		http.StatusUnauthorized,
	)

	ErrQueryFailed = New(
		"QUERY_FAILED",
		"Could not load places",
		http.StatusBadGateway,
	)

	ErrWriteFailed = New(
		"WRITE_FAILED",
		"Could not update wishlist",
		http.StatusBadGateway,
	)

	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Place not found",
		http.StatusNotFound,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Session not found",
		http.StatusNotFound,
	)

	ErrInvalidFilter = New(
		"INVALID_FILTER",
		"Unknown category filter",
		http.StatusBadRequest,
	)

	ErrInvalidSort = New(
		"INVALID_SORT",
		"Unknown sort key",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
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

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
