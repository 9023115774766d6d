package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/pkg/utils"
)

// ToDomain преобразует входной сегмент в доменный
func (s *SegmentInput) ToDomain(tripID uuid.UUID) (*domain.MoveSegment, error) {
	segment := &domain.MoveSegment{
		ID:       uuid.New(),
		TripID:   tripID,
		Kind:     s.Kind,
		Activity: s.Activity,
	}

	for _, p := range s.TrackPoints {
		if !utils.ValidateCoordinates(p.Lat, p.Lon) {
			return nil, fmt.Errorf("invalid coordinates (%f, %f)", p.Lat, p.Lon)
		}
		segment.TrackPoints = append(segment.TrackPoints, domain.Point{Lat: p.Lat, Lon: p.Lon})
	}

	var err error
	if segment.StartedAt, err = parseTime(s.StartedAt); err != nil {
		return nil, fmt.Errorf("invalid started_at: %w", err)
	}
	if segment.EndedAt, err = parseTime(s.EndedAt); err != nil {
		return nil, fmt.Errorf("invalid ended_at: %w", err)
	}

	return segment, nil
}

// ToDomainOptions накладывает заданные в запросе параметры на значения
// по умолчанию
func (o *AtlasOptions) ToDomainOptions(defaults domain.AtlasOptions) domain.AtlasOptions {
	opts := defaults
	if o.EpsilonMeters > 0 {
		opts.EpsilonMeters = o.EpsilonMeters
	}
	if o.MinPoints > 0 {
		opts.MinPoints = o.MinPoints
	}
	if o.Limit != nil {
		opts.Limit = *o.Limit
	}
	if o.Activity != "" {
		opts.Activity = o.Activity
	}
	if o.LabelFilter != "" {
		opts.LabelFilter = o.LabelFilter
	}
	if o.CanvasWidth > 0 {
		opts.CanvasWidth = o.CanvasWidth
	}
	if o.CanvasHeight > 0 {
		opts.CanvasHeight = o.CanvasHeight
	}
	if o.Theme != "" {
		opts.Theme = o.Theme
	}
	return opts.WithDefaults()
}

// ParseTripIDs разбирает строковые идентификаторы поездок
func ParseTripIDs(ids []string) ([]uuid.UUID, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trip id %q: %w", raw, err)
		}
		parsed = append(parsed, id)
	}
	return parsed, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
