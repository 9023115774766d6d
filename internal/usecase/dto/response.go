package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/trip-atlas/internal/domain"
)

// ImportTripsResponse - ответ на импорт поездок
type ImportTripsResponse struct {
	Trips []TripSummary `json:"trips"`
	Total int           `json:"total"`
}

// TripSummary - краткая информация о поездке
type TripSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Segments  int       `json:"segments"`
	CreatedAt time.Time `json:"created_at"`
}

// ListTripsResponse - ответ со списком поездок
type ListTripsResponse struct {
	Trips []TripSummary `json:"trips"`
	Total int           `json:"total"`
}

// EnqueueJobResponse - ответ на постановку задачи рендеринга в очередь
type EnqueueJobResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

// JobStatusResponse - состояние задачи рендеринга
type JobStatusResponse struct {
	JobID     uuid.UUID `json:"job_id"`
	Status    string    `json:"status"`
	Clusters  int       `json:"clusters"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobStatusFromDomain строит ответ из состояния задачи
func JobStatusFromDomain(job *domain.AtlasJob) JobStatusResponse {
	return JobStatusResponse{
		JobID:     job.JobID,
		Status:    job.Status,
		Clusters:  job.Clusters,
		Error:     job.Error,
		UpdatedAt: job.UpdatedAt,
	}
}
