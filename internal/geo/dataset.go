package geo

import (
	"github.com/trip-atlas/internal/domain"
)

// EndpointDataset строит датасет для кластеризации: уникальные первая и
// последняя точки трека каждого move-сегмента. Порядок вставки стабилен,
// поэтому членство в кластерах по индексам воспроизводимо.
// Непустой activity оставляет только сегменты с этой активностью.
func EndpointDataset(segments []*domain.MoveSegment, activity string) []domain.Point {
	seen := make(map[domain.Point]struct{}, len(segments)*2)
	points := make([]domain.Point, 0, len(segments)*2)

	for _, s := range segments {
		if !s.IsMove() {
			continue
		}
		if activity != "" && s.Activity != activity {
			continue
		}
		start, ok := s.Start()
		if !ok {
			continue
		}
		end, _ := s.End()

		for _, p := range [2]domain.Point{start, end} {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			points = append(points, p)
		}
	}
	return points
}

// Centroid - среднее арифметическое координат (планарное приближение,
// используется только для поиска метки, не для кластеризации и раскладки)
func Centroid(points []domain.Point) domain.Point {
	if len(points) == 0 {
		return domain.Point{}
	}
	var lat, lon float64
	for _, p := range points {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(points))
	return domain.Point{Lat: lat / n, Lon: lon / n}
}

// BoundsOf возвращает ограничивающую область набора точек
func BoundsOf(points []domain.Point) domain.BoundingBox {
	if len(points) == 0 {
		return domain.BoundingBox{}
	}
	b := domain.NewBoundingBox(points[0])
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b
}
