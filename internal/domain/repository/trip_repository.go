package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/trip-atlas/internal/domain"
)

// TripRepository - интерфейс хранилища поездок
type TripRepository interface {
	// SaveTrip сохраняет поездку вместе с сегментами
	SaveTrip(ctx context.Context, trip *domain.Trip) error

	// GetTrip возвращает поездку с сегментами
	GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error)

	// ListTrips возвращает поездки без сегментов
	ListTrips(ctx context.Context, limit, offset int) ([]*domain.Trip, error)

	// GetSegments возвращает сегменты указанных поездок.
	// Пустой список tripIDs означает все поездки.
	GetSegments(ctx context.Context, tripIDs []uuid.UUID) ([]*domain.MoveSegment, error)
}
