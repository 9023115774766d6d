// Package cluster - плотностная кластеризация (DBSCAN) конечных точек
// перемещений и ранжирование найденных кластеров.
package cluster

import (
	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/geo"
)

// Engine выполняет DBSCAN над упорядоченным набором точек.
// Чистая функция от (points, eps, minPoints): никакого скрытого
// состояния, результат детерминирован при стабильном порядке входа.
type Engine struct {
	epsilonMeters float64
	minPoints     int
}

// NewEngine создает движок кластеризации.
// epsilonMeters - радиус соседства, minPoints - минимальная мощность
// окрестности ядровой точки (включая саму точку).
func NewEngine(epsilonMeters float64, minPoints int) *Engine {
	return &Engine{
		epsilonMeters: epsilonMeters,
		minPoints:     minPoints,
	}
}

// Cluster возвращает группы индексов точек. Каждая группа непуста и
// имеет размер >= minPoints; группы попарно не пересекаются. Точки,
// недостижимые ни от одной ядровой точки, - шум, в вывод не попадают.
//
// Обход строго в порядке датасета, поэтому состав и порядок групп
// воспроизводимы. minPoints <= 1 не является особым случаем: каждая
// точка ядровая и сеет собственный кластер (возможно, из одной точки).
func (e *Engine) Cluster(points []domain.Point) [][]int {
	n := len(points)
	if n == 0 {
		return nil
	}

	visited := make([]bool, n)
	claimed := make([]bool, n)
	var groups [][]int

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := e.neighborhood(points, i)
		if len(neighbors) < e.minPoints {
			// предварительно шум; позже может стать граничной точкой
			// другого кластера, но сеять свой уже не будет
			continue
		}

		// i - ядровая точка, растим кластер обходом в ширину
		group := make([]int, 0, len(neighbors))
		frontier := neighbors
		for f := 0; f < len(frontier); f++ {
			idx := frontier[f]
			if !visited[idx] {
				visited[idx] = true
				expansion := e.neighborhood(points, idx)
				if len(expansion) >= e.minPoints {
					frontier = append(frontier, expansion...)
				}
			}
			// точка принадлежит не более чем одному кластеру:
			// побеждает первый, кто её занял
			if !claimed[idx] {
				claimed[idx] = true
				group = append(group, idx)
			}
		}

		groups = append(groups, group)
	}

	return groups
}

// neighborhood возвращает индексы всех точек в радиусе epsilonMeters от
// points[i], включая саму i. Порядок - по возрастанию индекса.
func (e *Engine) neighborhood(points []domain.Point, i int) []int {
	var neighbors []int
	for j := range points {
		if geo.Distance(points[i], points[j]) <= e.epsilonMeters {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}
