package repository

import (
	"context"

	"github.com/trip-atlas/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// CreateConsumerGroup создаёт consumer group для стрима
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch читает до count сообщений без блокировки
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream публикует сообщение в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
