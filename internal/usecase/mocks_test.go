package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/trip-atlas/internal/domain"
)

// MockTripRepository is a mock of TripRepository
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripRepository) ListTrips(ctx context.Context, limit, offset int) ([]*domain.Trip, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Trip), args.Error(1)
}

func (m *MockTripRepository) GetSegments(ctx context.Context, tripIDs []uuid.UUID) ([]*domain.MoveSegment, error) {
	args := m.Called(ctx, tripIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MoveSegment), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetAtlas(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) SetAtlas(ctx context.Context, key string, svg []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, svg, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetLabel(ctx context.Context, centroid domain.Point) (string, bool, error) {
	args := m.Called(ctx, centroid)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCacheRepository) SetLabel(ctx context.Context, centroid domain.Point, label string, ttl time.Duration) error {
	args := m.Called(ctx, centroid, label, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJob(ctx context.Context, id uuid.UUID) (*domain.AtlasJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AtlasJob), args.Error(1)
}

func (m *MockCacheRepository) SetJob(ctx context.Context, job *domain.AtlasJob, ttl time.Duration) error {
	args := m.Called(ctx, job, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockGeocoderRepository is a mock of GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) ReverseGeocode(ctx context.Context, p domain.Point) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}
