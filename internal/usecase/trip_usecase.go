package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/domain/repository"
	"github.com/trip-atlas/internal/pkg/errors"
	"github.com/trip-atlas/internal/usecase/dto"
)

// TripUseCase - use case для импорта и чтения поездок
type TripUseCase struct {
	tripRepo repository.TripRepository
	logger   *zap.Logger
}

// NewTripUseCase создает новый TripUseCase
func NewTripUseCase(tripRepo repository.TripRepository, logger *zap.Logger) *TripUseCase {
	return &TripUseCase{
		tripRepo: tripRepo,
		logger:   logger,
	}
}

// ImportTrips сохраняет пачку поездок вместе с сегментами
func (uc *TripUseCase) ImportTrips(ctx context.Context, req *dto.ImportTripsRequest) (*dto.ImportTripsResponse, error) {
	summaries := make([]dto.TripSummary, 0, len(req.Trips))

	for i := range req.Trips {
		input := &req.Trips[i]
		trip := &domain.Trip{
			ID:        uuid.New(),
			Name:      input.Name,
			CreatedAt: time.Now().UTC(),
		}

		for j := range input.Segments {
			segment, err := input.Segments[j].ToDomain(trip.ID)
			if err != nil {
				return nil, errors.ErrInvalidRequest.WithReason(err.Error())
			}
			trip.Segments = append(trip.Segments, segment)
		}

		if err := uc.tripRepo.SaveTrip(ctx, trip); err != nil {
			uc.logger.Error("Failed to save trip",
				zap.String("name", trip.Name),
				zap.Error(err))
			return nil, err
		}

		summaries = append(summaries, dto.TripSummary{
			ID:        trip.ID,
			Name:      trip.Name,
			Segments:  len(trip.Segments),
			CreatedAt: trip.CreatedAt,
		})
	}

	uc.logger.Info("Trips imported", zap.Int("count", len(summaries)))

	return &dto.ImportTripsResponse{
		Trips: summaries,
		Total: len(summaries),
	}, nil
}

// GetTrip возвращает поездку с сегментами
func (uc *TripUseCase) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	return uc.tripRepo.GetTrip(ctx, id)
}

// ListTrips возвращает страницу поездок без сегментов
func (uc *TripUseCase) ListTrips(ctx context.Context, limit, offset int) (*dto.ListTripsResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	trips, err := uc.tripRepo.ListTrips(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.TripSummary, 0, len(trips))
	for _, t := range trips {
		summaries = append(summaries, dto.TripSummary{
			ID:        t.ID,
			Name:      t.Name,
			Segments:  len(t.Segments),
			CreatedAt: t.CreatedAt,
		})
	}

	return &dto.ListTripsResponse{
		Trips: summaries,
		Total: len(summaries),
	}, nil
}
