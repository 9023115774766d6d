package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/domain/repository"
	"github.com/trip-atlas/internal/pkg/errors"
)

type cacheRepository struct {
	redis  *Redis
	logger *zap.Logger
}

// NewCacheRepository создает репозиторий кэша атласов, меток и задач
func NewCacheRepository(r *Redis, logger *zap.Logger) repository.CacheRepository {
	return &cacheRepository{
		redis:  r,
		logger: logger,
	}
}

func atlasKey(key string) string {
	return "atlas:svg:" + key
}

// labelKey округляет центроид до ~11 м, чтобы близкие центроиды
// переиспользовали одну метку
func labelKey(p domain.Point) string {
	return fmt.Sprintf("atlas:label:%.4f:%.4f", p.Lat, p.Lon)
}

func jobKey(id uuid.UUID) string {
	return "atlas:job:" + id.String()
}

func (r *cacheRepository) GetAtlas(ctx context.Context, key string) ([]byte, error) {
	data, err := r.redis.client.Get(ctx, atlasKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get atlas from cache", zap.String("key", key), zap.Error(err))
		return nil, errors.ErrCacheError
	}
	return data, nil
}

func (r *cacheRepository) SetAtlas(ctx context.Context, key string, svg []byte, ttl time.Duration) error {
	if err := r.redis.client.Set(ctx, atlasKey(key), svg, ttl).Err(); err != nil {
		r.logger.Error("Failed to set atlas in cache", zap.String("key", key), zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

func (r *cacheRepository) GetLabel(ctx context.Context, centroid domain.Point) (string, bool, error) {
	label, err := r.redis.client.Get(ctx, labelKey(centroid)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		r.logger.Error("Failed to get label from cache", zap.Error(err))
		return "", false, errors.ErrCacheError
	}
	return label, true, nil
}

func (r *cacheRepository) SetLabel(ctx context.Context, centroid domain.Point, label string, ttl time.Duration) error {
	// кэшируем и пустые метки: повторный неудачный геокодинг не нужен
	if err := r.redis.client.Set(ctx, labelKey(centroid), label, ttl).Err(); err != nil {
		r.logger.Error("Failed to set label in cache", zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

func (r *cacheRepository) GetJob(ctx context.Context, id uuid.UUID) (*domain.AtlasJob, error) {
	data, err := r.redis.client.Get(ctx, jobKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get job from cache", zap.String("job_id", id.String()), zap.Error(err))
		return nil, errors.ErrCacheError
	}

	var job domain.AtlasJob
	if err := json.Unmarshal(data, &job); err != nil {
		r.logger.Error("Failed to unmarshal job", zap.String("job_id", id.String()), zap.Error(err))
		return nil, errors.ErrCacheError
	}
	return &job, nil
}

func (r *cacheRepository) SetJob(ctx context.Context, job *domain.AtlasJob, ttl time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		r.logger.Error("Failed to marshal job", zap.Error(err))
		return errors.ErrCacheError
	}
	if err := r.redis.client.Set(ctx, jobKey(job.JobID), data, ttl).Err(); err != nil {
		r.logger.Error("Failed to set job in cache", zap.String("job_id", job.JobID.String()), zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}
