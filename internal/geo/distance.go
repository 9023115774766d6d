// Package geo - географические примитивы конвейера атласа: метрика
// расстояния, датасет конечных точек, центроид и ограничивающая область.
package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/trip-atlas/internal/domain"
)

// Distance возвращает расстояние по большому кругу между двумя точками
// в метрах (гаверсинус на сферической модели Земли). Симметрична,
// ноль тогда и только тогда, когда точки совпадают.
func Distance(a, b domain.Point) float64 {
	return orbgeo.DistanceHaversine(
		orb.Point{a.Lon, a.Lat},
		orb.Point{b.Lon, b.Lat},
	)
}
