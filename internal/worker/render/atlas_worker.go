package render

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/domain/repository"
	"github.com/trip-atlas/internal/worker"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
)

// RenderProcessor обрабатывает одно событие рендеринга
type RenderProcessor interface {
	ProcessRenderEvent(ctx context.Context, event *domain.AtlasRenderEvent) (*domain.AtlasDoneEvent, error)
}

// AtlasRenderWorker обрабатывает события рендеринга атласов
type AtlasRenderWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	atlasUC      RenderProcessor
	consumerName string
	maxBatchSize int
}

// NewAtlasRenderWorker создает новый AtlasRenderWorker
func NewAtlasRenderWorker(
	streamRepo repository.StreamRepository,
	atlasUC RenderProcessor,
	consumerGroup string,
	maxBatchSize int,
	logger *zap.Logger,
) *AtlasRenderWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if maxBatchSize <= 0 {
		maxBatchSize = 10
	}

	return &AtlasRenderWorker{
		BaseWorker:   worker.NewBaseWorker("atlas-render", consumerGroup, logger),
		streamRepo:   streamRepo,
		atlasUC:      atlasUC,
		consumerName: consumerName,
		maxBatchSize: maxBatchSize,
	}
}

// Start запускает воркер
func (w *AtlasRenderWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AtlasRenderWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", w.maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamAtlasRender, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает пачку сообщений.
// Возвращает количество обработанных сообщений.
func (w *AtlasRenderWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamAtlasRender,
		w.ConsumerGroup(),
		w.consumerName,
		w.maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	processed := 0
	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamAtlasRender, w.ConsumerGroup(), msg.ID)
			processed++
			continue
		}

		done, err := w.atlasUC.ProcessRenderEvent(ctx, event)
		if err != nil {
			// Сбой инфраструктуры: не ACK-аем, сообщение будет повторено
			logger.Error("Failed to process render event",
				zap.String("message_id", msg.ID),
				zap.String("job_id", event.JobID.String()),
				zap.Error(err))
			continue
		}

		if err := w.streamRepo.PublishToStream(ctx, domain.StreamAtlasDone, done); err != nil {
			logger.Warn("Failed to publish done event",
				zap.String("job_id", event.JobID.String()),
				zap.Error(err))
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamAtlasRender, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Warn("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
		processed++

		logger.Info("Render event processed",
			zap.String("job_id", event.JobID.String()),
			zap.Int("clusters", done.Clusters),
			zap.String("error", done.Error))
	}

	return processed, nil
}

// parseMessage разбирает событие рендеринга из сообщения стрима
func (w *AtlasRenderWorker) parseMessage(msg domain.StreamMessage) (*domain.AtlasRenderEvent, error) {
	var event domain.AtlasRenderEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
