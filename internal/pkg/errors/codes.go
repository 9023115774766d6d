package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrTripNotFound = New(
		"TRIP_NOT_FOUND",
		"Trip not found",
		http.StatusNotFound,
	)

	ErrJobNotFound = New(
		"JOB_NOT_FOUND",
		"Render job not found",
		http.StatusNotFound,
	)

	// ErrNoTiles - раскладка вызвана с нулевым числом тайлов (ошибка вызывающего)
	ErrNoTiles = New(
		"NO_TILES",
		"Tile layout requires at least one tile",
		http.StatusBadRequest,
	)

	ErrInvalidCanvas = New(
		"INVALID_CANVAS",
		"Canvas dimensions must be positive",
		http.StatusBadRequest,
	)

	// ErrEmptyControlPoints - проекция вызвана без опорных точек (ошибка вызывающего)
	ErrEmptyControlPoints = New(
		"EMPTY_CONTROL_POINTS",
		"Projection requires at least one control point",
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

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
