package domain

import (
	"time"

	"github.com/google/uuid"
)

// Типы сегментов таймлайна. В кластеризации участвуют только
// move-сегменты; visit-сегменты (стационарные) игнорируются.
const (
	SegmentKindMove  = "move"
	SegmentKindVisit = "visit"
)

// Trip — импортированная поездка: именованный набор сегментов
type Trip struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Segments  []*MoveSegment `json:"segments,omitempty" db:"-"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// MoveSegment — сегмент перемещения с хронологически упорядоченным треком.
// Activity — вид активности ("walking", "driving", ...), по нему возможна
// фильтрация до кластеризации.
type MoveSegment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TripID      uuid.UUID `json:"trip_id" db:"trip_id"`
	Kind        string    `json:"kind" db:"kind"`
	Activity    string    `json:"activity" db:"activity"`
	TrackPoints []Point   `json:"track_points" db:"-"`
	StartedAt   time.Time `json:"started_at" db:"started_at"`
	EndedAt     time.Time `json:"ended_at" db:"ended_at"`
}

// IsMove сообщает, является ли сегмент перемещением
func (s *MoveSegment) IsMove() bool {
	return s.Kind == SegmentKindMove
}

// Start возвращает первую точку трека
func (s *MoveSegment) Start() (Point, bool) {
	if len(s.TrackPoints) == 0 {
		return Point{}, false
	}
	return s.TrackPoints[0], true
}

// End возвращает последнюю точку трека
func (s *MoveSegment) End() (Point, bool) {
	if len(s.TrackPoints) == 0 {
		return Point{}, false
	}
	return s.TrackPoints[len(s.TrackPoints)-1], true
}
