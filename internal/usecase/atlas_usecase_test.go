package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trip-atlas/internal/config"
	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/pkg/errors"
	"github.com/trip-atlas/internal/usecase"
	"github.com/trip-atlas/internal/usecase/dto"
)

var testCacheCfg = config.CacheConfig{
	AtlasCacheTTL: time.Hour,
	LabelCacheTTL: 24 * time.Hour,
	JobTTL:        24 * time.Hour,
}

var testDefaults = domain.AtlasOptions{
	EpsilonMeters: 12000,
	MinPoints:     4,
	Limit:         12,
	CanvasWidth:   800,
	CanvasHeight:  600,
	Theme:         "dark",
}

// segmentsAround builds n move segments whose endpoints form a dense
// group near (lat, lon); each segment contributes two unique endpoints
// roughly 100m apart.
func segmentsAround(lat, lon float64, n int) []*domain.MoveSegment {
	segments := make([]*domain.MoveSegment, 0, n)
	for i := 0; i < n; i++ {
		start := domain.Point{Lat: lat + 0.002*float64(i), Lon: lon}
		end := domain.Point{Lat: lat + 0.002*float64(i) + 0.001, Lon: lon}
		segments = append(segments, &domain.MoveSegment{
			ID:          uuid.New(),
			Kind:        domain.SegmentKindMove,
			Activity:    "walking",
			TrackPoints: []domain.Point{start, {Lat: start.Lat, Lon: lon + 0.0005}, end},
		})
	}
	return segments
}

func newGeocoderByHemisphere() *MockGeocoderRepository {
	geocoder := new(MockGeocoderRepository)
	geocoder.On("ReverseGeocode", mock.Anything, mock.MatchedBy(func(p domain.Point) bool {
		return p.Lat < 45
	})).Return("Barcelona", nil)
	geocoder.On("ReverseGeocode", mock.Anything, mock.MatchedBy(func(p domain.Point) bool {
		return p.Lat >= 45
	})).Return("Paris", nil)
	return geocoder
}

func TestAtlasUseCase_RenderAtlas(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	t.Run("renders atlas from stored trips", func(t *testing.T) {
		// Two dense endpoint groups far apart: Barcelona (4 segments,
		// 8 endpoints) and Paris (3 segments, 6 endpoints).
		segments := append(segmentsAround(41.39, 2.17, 4), segmentsAround(48.85, 2.35, 3)...)

		tripRepo := new(MockTripRepository)
		tripRepo.On("GetSegments", mock.Anything, mock.Anything).Return(segments, nil)

		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetAtlas", mock.Anything, mock.Anything).Return(nil, nil)
		cacheRepo.On("SetAtlas", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		cacheRepo.On("GetLabel", mock.Anything, mock.Anything).Return("", false, nil)
		cacheRepo.On("SetLabel", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		geocoder := newGeocoderByHemisphere()

		uc := usecase.NewAtlasUseCase(tripRepo, cacheRepo, nil, geocoder, logger, testDefaults, testCacheCfg)

		svg, err := uc.RenderAtlas(ctx, &dto.RenderAtlasRequest{})
		require.NoError(t, err)

		out := string(svg)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))
		assert.Contains(t, out, "<svg")
		assert.Contains(t, out, "Barcelona")
		assert.Contains(t, out, "Paris")
		// background plus one frame per cluster tile
		assert.Equal(t, 3, strings.Count(out, "<rect"))

		cacheRepo.AssertCalled(t, "SetAtlas", mock.Anything, mock.Anything, mock.Anything, testCacheCfg.AtlasCacheTTL)
	})

	t.Run("serves atlas from cache without touching storage", func(t *testing.T) {
		cached := []byte("<svg>cached</svg>")

		tripRepo := new(MockTripRepository)
		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetAtlas", mock.Anything, mock.Anything).Return(cached, nil)

		uc := usecase.NewAtlasUseCase(tripRepo, cacheRepo, nil, nil, logger, testDefaults, testCacheCfg)

		svg, err := uc.RenderAtlas(ctx, &dto.RenderAtlasRequest{})
		require.NoError(t, err)
		assert.Equal(t, cached, svg)
		tripRepo.AssertNotCalled(t, "GetSegments", mock.Anything, mock.Anything)
	})

	t.Run("inline segments bypass cache and storage", func(t *testing.T) {
		tripRepo := new(MockTripRepository)
		cacheRepo := new(MockCacheRepository)

		uc := usecase.NewAtlasUseCase(tripRepo, cacheRepo, nil, nil, logger, testDefaults, testCacheCfg)

		req := &dto.RenderAtlasRequest{
			Segments: []dto.SegmentInput{
				{Kind: "move", TrackPoints: []dto.Point{{Lat: 41.39, Lon: 2.17}, {Lat: 41.391, Lon: 2.17}}},
				{Kind: "move", TrackPoints: []dto.Point{{Lat: 41.392, Lon: 2.17}, {Lat: 41.393, Lon: 2.17}}},
				{Kind: "move", TrackPoints: []dto.Point{{Lat: 41.394, Lon: 2.17}, {Lat: 41.395, Lon: 2.17}}},
			},
		}
		svg, err := uc.RenderAtlas(ctx, req)
		require.NoError(t, err)
		assert.Contains(t, string(svg), "<svg")
		// one cluster of six endpoints
		assert.Equal(t, 2, strings.Count(string(svg), "<rect"))

		cacheRepo.AssertNotCalled(t, "GetAtlas", mock.Anything, mock.Anything)
		cacheRepo.AssertNotCalled(t, "SetAtlas", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		tripRepo.AssertNotCalled(t, "GetSegments", mock.Anything, mock.Anything)
	})

	t.Run("no clusters yields empty canvas", func(t *testing.T) {
		tripRepo := new(MockTripRepository)
		tripRepo.On("GetSegments", mock.Anything, mock.Anything).Return([]*domain.MoveSegment{}, nil)

		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetAtlas", mock.Anything, mock.Anything).Return(nil, nil)
		cacheRepo.On("SetAtlas", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewAtlasUseCase(tripRepo, cacheRepo, nil, nil, logger, testDefaults, testCacheCfg)

		svg, err := uc.RenderAtlas(ctx, &dto.RenderAtlasRequest{})
		require.NoError(t, err)
		assert.Contains(t, string(svg), "<svg")
		// background only, no tiles
		assert.Equal(t, 1, strings.Count(string(svg), "<rect"))
	})

	t.Run("cached labels skip the geocoder", func(t *testing.T) {
		segments := segmentsAround(41.39, 2.17, 4)

		tripRepo := new(MockTripRepository)
		tripRepo.On("GetSegments", mock.Anything, mock.Anything).Return(segments, nil)

		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetAtlas", mock.Anything, mock.Anything).Return(nil, nil)
		cacheRepo.On("SetAtlas", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		cacheRepo.On("GetLabel", mock.Anything, mock.Anything).Return("Cached City", true, nil)

		geocoder := new(MockGeocoderRepository)

		uc := usecase.NewAtlasUseCase(tripRepo, cacheRepo, nil, geocoder, logger, testDefaults, testCacheCfg)

		svg, err := uc.RenderAtlas(ctx, &dto.RenderAtlasRequest{})
		require.NoError(t, err)
		assert.Contains(t, string(svg), "Cached City")
		geocoder.AssertNotCalled(t, "ReverseGeocode", mock.Anything, mock.Anything)
	})

	t.Run("invalid trip id is rejected", func(t *testing.T) {
		uc := usecase.NewAtlasUseCase(nil, nil, nil, nil, logger, testDefaults, testCacheCfg)

		_, err := uc.RenderAtlas(ctx, &dto.RenderAtlasRequest{TripIDs: []string{"not-a-uuid"}})
		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrInvalidRequest.Code, appErr.Code)
	})
}

func TestAtlasUseCase_EnqueueRender(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	t.Run("publishes render event and stores pending job", func(t *testing.T) {
		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("SetJob", mock.Anything, mock.Anything, testCacheCfg.JobTTL).Return(nil)

		tripID := uuid.New()
		streamRepo := new(MockStreamRepository)
		streamRepo.On("PublishToStream", mock.Anything, domain.StreamAtlasRender, mock.MatchedBy(func(e domain.AtlasRenderEvent) bool {
			return len(e.TripIDs) == 1 && e.TripIDs[0] == tripID && e.Options.EpsilonMeters == 12000
		})).Return(nil)

		uc := usecase.NewAtlasUseCase(nil, cacheRepo, streamRepo, nil, logger, testDefaults, testCacheCfg)

		job, err := uc.EnqueueRender(ctx, &dto.RenderAtlasRequest{TripIDs: []string{tripID.String()}})
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPending, job.Status)
		assert.NotEqual(t, uuid.Nil, job.JobID)
		streamRepo.AssertExpectations(t)
	})

	t.Run("rejects inline segments", func(t *testing.T) {
		uc := usecase.NewAtlasUseCase(nil, nil, nil, nil, logger, testDefaults, testCacheCfg)

		_, err := uc.EnqueueRender(ctx, &dto.RenderAtlasRequest{
			Segments: []dto.SegmentInput{{Kind: "move"}},
		})
		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrInvalidRequest.Code, appErr.Code)
	})
}

func TestAtlasUseCase_GetJob(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	t.Run("returns stored job", func(t *testing.T) {
		id := uuid.New()
		stored := &domain.AtlasJob{JobID: id, Status: domain.JobStatusDone, Clusters: 2}

		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetJob", mock.Anything, id).Return(stored, nil)

		uc := usecase.NewAtlasUseCase(nil, cacheRepo, nil, nil, logger, testDefaults, testCacheCfg)

		job, err := uc.GetJob(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, stored, job)
	})

	t.Run("unknown job returns not found", func(t *testing.T) {
		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetJob", mock.Anything, mock.Anything).Return(nil, nil)

		uc := usecase.NewAtlasUseCase(nil, cacheRepo, nil, nil, logger, testDefaults, testCacheCfg)

		_, err := uc.GetJob(ctx, uuid.New())
		assert.Equal(t, errors.ErrJobNotFound, err)
	})
}

func TestAtlasUseCase_ProcessRenderEvent(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	t.Run("renders, caches and completes the job", func(t *testing.T) {
		segments := append(segmentsAround(41.39, 2.17, 4), segmentsAround(48.85, 2.35, 3)...)

		tripRepo := new(MockTripRepository)
		tripRepo.On("GetSegments", mock.Anything, mock.Anything).Return(segments, nil)

		var statuses []string
		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetJob", mock.Anything, mock.Anything).Return(nil, nil)
		cacheRepo.On("SetJob", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			statuses = append(statuses, args.Get(1).(*domain.AtlasJob).Status)
		}).Return(nil)
		cacheRepo.On("SetAtlas", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		cacheRepo.On("GetLabel", mock.Anything, mock.Anything).Return("", false, nil)
		cacheRepo.On("SetLabel", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		geocoder := newGeocoderByHemisphere()

		uc := usecase.NewAtlasUseCase(tripRepo, cacheRepo, nil, geocoder, logger, testDefaults, testCacheCfg)

		event := &domain.AtlasRenderEvent{
			JobID:   uuid.New(),
			Options: testDefaults,
		}
		done, err := uc.ProcessRenderEvent(ctx, event)
		require.NoError(t, err)
		assert.Equal(t, event.JobID, done.JobID)
		assert.Equal(t, 2, done.Clusters)
		assert.NotEmpty(t, done.CacheKey)
		assert.Empty(t, done.Error)
		assert.Equal(t, []string{domain.JobStatusProcessing, domain.JobStatusDone}, statuses)
	})

	t.Run("storage failure is returned for retry", func(t *testing.T) {
		tripRepo := new(MockTripRepository)
		tripRepo.On("GetSegments", mock.Anything, mock.Anything).Return(nil, errors.ErrDatabaseError)

		cacheRepo := new(MockCacheRepository)
		cacheRepo.On("GetJob", mock.Anything, mock.Anything).Return(nil, nil)
		cacheRepo.On("SetJob", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewAtlasUseCase(tripRepo, cacheRepo, nil, nil, logger, testDefaults, testCacheCfg)

		done, err := uc.ProcessRenderEvent(ctx, &domain.AtlasRenderEvent{JobID: uuid.New()})
		require.Error(t, err)
		assert.Nil(t, done)
	})
}
