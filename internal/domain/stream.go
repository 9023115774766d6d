package domain

import (
	"time"

	"github.com/google/uuid"
)

// Имена стримов для асинхронного рендеринга
const (
	StreamAtlasRender = "stream:atlas:render"
	StreamAtlasDone   = "stream:atlas:done"
)

// Статусы задачи рендеринга
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusDone       = "done"
	JobStatusFailed     = "failed"
)

// AtlasRenderEvent — входящее событие на рендеринг атласа
type AtlasRenderEvent struct {
	JobID   uuid.UUID    `json:"job_id"`
	TripIDs []uuid.UUID  `json:"trip_ids"`
	Options AtlasOptions `json:"options"`
}

// AtlasDoneEvent — результат рендеринга
type AtlasDoneEvent struct {
	JobID    uuid.UUID `json:"job_id"`
	CacheKey string    `json:"cache_key,omitempty"`
	Clusters int       `json:"clusters"`
	Error    string    `json:"error,omitempty"`
}

// AtlasJob — состояние задачи рендеринга в кэше
type AtlasJob struct {
	JobID     uuid.UUID `json:"job_id"`
	Status    string    `json:"status"`
	CacheKey  string    `json:"cache_key,omitempty"`
	Clusters  int       `json:"clusters"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
