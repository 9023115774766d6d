package usecase

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trip-atlas/internal/cluster"
	"github.com/trip-atlas/internal/config"
	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/domain/repository"
	"github.com/trip-atlas/internal/geo"
	"github.com/trip-atlas/internal/layout"
	"github.com/trip-atlas/internal/pkg/errors"
	"github.com/trip-atlas/internal/projection"
	"github.com/trip-atlas/internal/render"
	"github.com/trip-atlas/internal/usecase/dto"
)

// AtlasUseCase - use case конвейера атласа: кластеризация конечных точек,
// раскладка тайлов, проекция и отрисовка SVG
type AtlasUseCase struct {
	tripRepo   repository.TripRepository
	cacheRepo  repository.CacheRepository
	streamRepo repository.StreamRepository
	geocoder   repository.GeocoderRepository
	logger     *zap.Logger
	defaults   domain.AtlasOptions
	cacheCfg   config.CacheConfig
}

// NewAtlasUseCase создает новый AtlasUseCase
func NewAtlasUseCase(
	tripRepo repository.TripRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	geocoder repository.GeocoderRepository,
	logger *zap.Logger,
	defaults domain.AtlasOptions,
	cacheCfg config.CacheConfig,
) *AtlasUseCase {
	return &AtlasUseCase{
		tripRepo:   tripRepo,
		cacheRepo:  cacheRepo,
		streamRepo: streamRepo,
		geocoder:   geocoder,
		logger:     logger,
		defaults:   defaults.WithDefaults(),
		cacheCfg:   cacheCfg,
	}
}

// RenderAtlas синхронно строит SVG-атлас. Для запросов по сохраненным
// поездкам результат кэшируется; сегменты в теле запроса не кэшируются.
func (uc *AtlasUseCase) RenderAtlas(ctx context.Context, req *dto.RenderAtlasRequest) ([]byte, error) {
	opts := req.Options.ToDomainOptions(uc.defaults)

	if len(req.Segments) > 0 {
		segments, err := uc.inlineSegments(req.Segments)
		if err != nil {
			return nil, err
		}
		svg, _, err := uc.buildAtlas(ctx, segments, opts)
		return svg, err
	}

	tripIDs, err := dto.ParseTripIDs(req.TripIDs)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithReason(err.Error())
	}

	key := cacheKey(tripIDs, opts)
	if cached, err := uc.cacheRepo.GetAtlas(ctx, key); err == nil && cached != nil {
		uc.logger.Debug("Atlas served from cache", zap.String("cache_key", key))
		return cached, nil
	}

	segments, err := uc.tripRepo.GetSegments(ctx, tripIDs)
	if err != nil {
		return nil, err
	}

	svg, clusters, err := uc.buildAtlas(ctx, segments, opts)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetAtlas(ctx, key, svg, uc.cacheCfg.AtlasCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache atlas", zap.String("cache_key", key), zap.Error(err))
	}

	uc.logger.Info("Atlas rendered",
		zap.Int("segments", len(segments)),
		zap.Int("clusters", len(clusters)),
		zap.String("cache_key", key))

	return svg, nil
}

// EnqueueRender ставит задачу рендеринга в очередь. Асинхронный путь
// работает только с сохраненными поездками.
func (uc *AtlasUseCase) EnqueueRender(ctx context.Context, req *dto.RenderAtlasRequest) (*domain.AtlasJob, error) {
	if len(req.Segments) > 0 {
		return nil, errors.ErrInvalidRequest.WithReason("inline segments are not supported for async rendering")
	}

	tripIDs, err := dto.ParseTripIDs(req.TripIDs)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithReason(err.Error())
	}

	job := &domain.AtlasJob{
		JobID:     uuid.New(),
		Status:    domain.JobStatusPending,
		UpdatedAt: time.Now().UTC(),
	}

	if err := uc.cacheRepo.SetJob(ctx, job, uc.cacheCfg.JobTTL); err != nil {
		return nil, err
	}

	event := domain.AtlasRenderEvent{
		JobID:   job.JobID,
		TripIDs: tripIDs,
		Options: req.Options.ToDomainOptions(uc.defaults),
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamAtlasRender, event); err != nil {
		return nil, err
	}

	uc.logger.Info("Render job enqueued",
		zap.String("job_id", job.JobID.String()),
		zap.Int("trip_ids", len(tripIDs)))

	return job, nil
}

// GetJob возвращает состояние задачи рендеринга
func (uc *AtlasUseCase) GetJob(ctx context.Context, id uuid.UUID) (*domain.AtlasJob, error) {
	job, err := uc.cacheRepo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.ErrJobNotFound
	}
	return job, nil
}

// GetCachedAtlas возвращает отрисованный SVG по ключу из кэша
func (uc *AtlasUseCase) GetCachedAtlas(ctx context.Context, key string) ([]byte, error) {
	return uc.cacheRepo.GetAtlas(ctx, key)
}

// ProcessRenderEvent обрабатывает событие рендеринга (вызывается воркером).
// Ошибки конвейера записываются в состояние задачи; возвращаемая ошибка
// означает сбой инфраструктуры, при котором событие стоит повторить.
func (uc *AtlasUseCase) ProcessRenderEvent(ctx context.Context, event *domain.AtlasRenderEvent) (*domain.AtlasDoneEvent, error) {
	uc.setJobStatus(ctx, event.JobID, func(job *domain.AtlasJob) {
		job.Status = domain.JobStatusProcessing
	})

	opts := event.Options.WithDefaults()

	segments, err := uc.tripRepo.GetSegments(ctx, event.TripIDs)
	if err != nil {
		return nil, err
	}

	svg, clusters, err := uc.buildAtlas(ctx, segments, opts)
	if err != nil {
		uc.setJobStatus(ctx, event.JobID, func(job *domain.AtlasJob) {
			job.Status = domain.JobStatusFailed
			job.Error = err.Error()
		})
		return &domain.AtlasDoneEvent{JobID: event.JobID, Error: err.Error()}, nil
	}

	key := cacheKey(event.TripIDs, opts)
	if err := uc.cacheRepo.SetAtlas(ctx, key, svg, uc.cacheCfg.AtlasCacheTTL); err != nil {
		return nil, err
	}

	uc.setJobStatus(ctx, event.JobID, func(job *domain.AtlasJob) {
		job.Status = domain.JobStatusDone
		job.CacheKey = key
		job.Clusters = len(clusters)
	})

	return &domain.AtlasDoneEvent{
		JobID:    event.JobID,
		CacheKey: key,
		Clusters: len(clusters),
	}, nil
}

// buildAtlas выполняет конвейер: датасет конечных точек, кластеризация,
// ранжирование, раскладка, проекция, отрисовка
func (uc *AtlasUseCase) buildAtlas(ctx context.Context, segments []*domain.MoveSegment, opts domain.AtlasOptions) ([]byte, []domain.Cluster, error) {
	dataset := geo.EndpointDataset(segments, opts.Activity)

	engine := cluster.NewEngine(opts.EpsilonMeters, opts.MinPoints)
	groups := engine.Cluster(dataset)

	clusters := cluster.Rank(ctx, groups, dataset, uc.labelFunc(), cluster.RankOptions{
		Limit:       opts.Limit,
		LabelFilter: opts.LabelFilter,
	})

	renderer := render.NewRenderer(render.ThemeByName(opts.Theme), uc.logger)

	var buf bytes.Buffer
	if len(clusters) == 0 {
		// Пустой атлас - валидный результат: холст без тайлов
		renderer.Render(&buf, opts.CanvasWidth, opts.CanvasHeight, nil)
		return buf.Bytes(), clusters, nil
	}

	tiles, err := layout.Grid(len(clusters), opts.CanvasHeight, opts.CanvasWidth)
	if err != nil {
		return nil, nil, err
	}

	maps := make([]render.TileMap, 0, len(clusters))
	for i, c := range clusters {
		proj, err := projection.Fit(c.Points, tiles[i].Size, tiles[i].Size)
		if err != nil {
			return nil, nil, err
		}
		maps = append(maps, render.TileMap{
			Tile:    tiles[i],
			Cluster: c,
			Proj:    proj,
			Paths:   clusterPaths(segments, &c, opts.Activity),
		})
	}

	renderer.Render(&buf, opts.CanvasWidth, opts.CanvasHeight, maps)
	return buf.Bytes(), clusters, nil
}

// labelFunc оборачивает геокодер в LabelFunc с кэшированием меток.
// Без геокодера метки не разрешаются.
func (uc *AtlasUseCase) labelFunc() cluster.LabelFunc {
	if uc.geocoder == nil {
		return nil
	}
	return func(ctx context.Context, centroid domain.Point) string {
		if uc.cacheRepo != nil {
			if label, ok, err := uc.cacheRepo.GetLabel(ctx, centroid); err == nil && ok {
				return label
			}
		}

		label, err := uc.geocoder.ReverseGeocode(ctx, centroid)
		if err != nil {
			uc.logger.Warn("Reverse geocoding failed",
				zap.Float64("lat", centroid.Lat),
				zap.Float64("lon", centroid.Lon),
				zap.Error(err))
			return ""
		}

		if uc.cacheRepo != nil {
			if err := uc.cacheRepo.SetLabel(ctx, centroid, label, uc.cacheCfg.LabelCacheTTL); err != nil {
				uc.logger.Warn("Failed to cache label", zap.Error(err))
			}
		}
		return label
	}
}

// setJobStatus обновляет состояние задачи; сбой кэша не прерывает обработку
func (uc *AtlasUseCase) setJobStatus(ctx context.Context, id uuid.UUID, update func(*domain.AtlasJob)) {
	job, err := uc.cacheRepo.GetJob(ctx, id)
	if err != nil {
		uc.logger.Warn("Failed to load job for status update",
			zap.String("job_id", id.String()), zap.Error(err))
		return
	}
	if job == nil {
		job = &domain.AtlasJob{JobID: id}
	}
	update(job)
	job.UpdatedAt = time.Now().UTC()
	if err := uc.cacheRepo.SetJob(ctx, job, uc.cacheCfg.JobTTL); err != nil {
		uc.logger.Warn("Failed to update job status",
			zap.String("job_id", id.String()), zap.Error(err))
	}
}

func (uc *AtlasUseCase) inlineSegments(inputs []dto.SegmentInput) ([]*domain.MoveSegment, error) {
	segments := make([]*domain.MoveSegment, 0, len(inputs))
	for i := range inputs {
		segment, err := inputs[i].ToDomain(uuid.Nil)
		if err != nil {
			return nil, errors.ErrInvalidRequest.WithReason(err.Error())
		}
		segments = append(segments, segment)
	}
	return segments, nil
}

// clusterPaths возвращает траектории move-сегментов, чьи конечные точки
// попали в кластер
func clusterPaths(segments []*domain.MoveSegment, c *domain.Cluster, activity string) [][]domain.Point {
	members := make(map[domain.Point]struct{}, len(c.Points))
	for _, p := range c.Points {
		members[p] = struct{}{}
	}

	var paths [][]domain.Point
	for _, s := range segments {
		if !s.IsMove() || len(s.TrackPoints) == 0 {
			continue
		}
		if activity != "" && s.Activity != activity {
			continue
		}
		start, _ := s.Start()
		end, _ := s.End()
		if _, ok := members[start]; ok {
			paths = append(paths, s.TrackPoints)
			continue
		}
		if _, ok := members[end]; ok {
			paths = append(paths, s.TrackPoints)
		}
	}
	return paths
}

// cacheKey - детерминированный ключ кэша атласа: отпечаток опций плюс
// отсортированные идентификаторы поездок
func cacheKey(tripIDs []uuid.UUID, opts domain.AtlasOptions) string {
	ids := make([]string, 0, len(tripIDs))
	for _, id := range tripIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	sum := sha1.Sum([]byte(opts.Fingerprint() + "|" + strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:])
}
