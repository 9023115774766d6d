package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trip-atlas/internal/domain"
)

// CacheRepository - интерфейс кэша атласов, меток и задач
type CacheRepository interface {
	// GetAtlas возвращает отрисованный SVG по ключу; (nil, nil) если нет
	GetAtlas(ctx context.Context, key string) ([]byte, error)

	// SetAtlas сохраняет отрисованный SVG
	SetAtlas(ctx context.Context, key string, svg []byte, ttl time.Duration) error

	// GetLabel возвращает закэшированную метку центроида.
	// ok == false — метка не кэшировалась.
	GetLabel(ctx context.Context, centroid domain.Point) (label string, ok bool, err error)

	// SetLabel кэширует метку центроида (в том числе пустую)
	SetLabel(ctx context.Context, centroid domain.Point, label string, ttl time.Duration) error

	// GetJob возвращает состояние задачи рендеринга; (nil, nil) если нет
	GetJob(ctx context.Context, id uuid.UUID) (*domain.AtlasJob, error)

	// SetJob сохраняет состояние задачи рендеринга
	SetJob(ctx context.Context, job *domain.AtlasJob, ttl time.Duration) error
}
