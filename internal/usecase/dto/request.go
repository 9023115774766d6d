package dto

// ImportTripsRequest - запрос на импорт поездок
type ImportTripsRequest struct {
	Trips []TripInput `json:"trips" validate:"required,min=1,max=50,dive"`
}

// TripInput - импортируемая поездка
type TripInput struct {
	Name     string         `json:"name" validate:"required,min=1,max=200"`
	Segments []SegmentInput `json:"segments" validate:"required,min=1,max=1000,dive"`
}

// SegmentInput - сегмент таймлайна поездки
type SegmentInput struct {
	Kind        string  `json:"kind" validate:"required,oneof=move visit"`
	Activity    string  `json:"activity,omitempty" validate:"omitempty,max=50"`
	TrackPoints []Point `json:"track_points" validate:"omitempty,dive"`
	StartedAt   string  `json:"started_at,omitempty"`
	EndedAt     string  `json:"ended_at,omitempty"`
}

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// RenderAtlasRequest - запрос на построение атласа. Источник данных -
// либо сохраненные поездки (trip_ids, пустой список = все), либо
// сегменты прямо в теле запроса (segments).
type RenderAtlasRequest struct {
	TripIDs  []string       `json:"trip_ids,omitempty" validate:"omitempty,dive,uuid"`
	Segments []SegmentInput `json:"segments,omitempty" validate:"omitempty,max=1000,dive"`
	Options  AtlasOptions   `json:"options"`
}

// AtlasOptions - необязательные параметры конвейера; нулевые значения
// заменяются значениями по умолчанию из конфигурации
type AtlasOptions struct {
	EpsilonMeters float64 `json:"epsilon_meters,omitempty" validate:"omitempty,min=10,max=1000000"`
	MinPoints     int     `json:"min_points,omitempty" validate:"omitempty,min=1,max=1000"`
	// Limit - указатель, чтобы отличать отсутствие поля от явного 0
	// (явный 0 дает пустой атлас)
	Limit *int `json:"limit,omitempty" validate:"omitempty,min=0,max=100"`
	Activity      string  `json:"activity,omitempty" validate:"omitempty,max=50"`
	LabelFilter   string  `json:"label_filter,omitempty" validate:"omitempty,max=100"`
	CanvasWidth   int     `json:"canvas_width,omitempty" validate:"omitempty,min=100,max=8192"`
	CanvasHeight  int     `json:"canvas_height,omitempty" validate:"omitempty,min=100,max=8192"`
	Theme         string  `json:"theme,omitempty" validate:"omitempty,oneof=dark light"`
}
