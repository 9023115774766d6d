package repository

import (
	"context"

	"github.com/trip-atlas/internal/domain"
)

// GeocoderRepository - интерфейс обратного геокодирования.
// Реализация может ходить по сети; не найденная локация — это
// пустая метка и nil-ошибка, а не отказ.
type GeocoderRepository interface {
	ReverseGeocode(ctx context.Context, p domain.Point) (string, error)
}
