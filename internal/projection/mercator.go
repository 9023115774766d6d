// Package projection - вписывание географического охвата кластера в
// пиксельный квадрат тайла через проекцию Меркатора.
package projection

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/pkg/errors"
)

// insetRatio - поле с каждой стороны тайла; охват кластера ложится на
// центральные 60% тайла по каждой оси
const insetRatio = 0.2

// defaultScale - масштаб (px на метр Меркатора) для вырожденного охвата,
// когда все опорные точки совпадают
const defaultScale = 1.0

// Projection отображает (lat, lon) в пиксели одного тайла. Действительна
// только для тайла, под который была подогнана; не разделяется между тайлами.
type Projection struct {
	width  float64
	height float64
	scale  float64

	// центр охвата в метрах Меркатора и центр тайла в пикселях
	centerX float64
	centerY float64
	tileX   float64
	tileY   float64
}

// Fit строит проекцию, вписывающую ограничивающую область опорных точек
// в центральные 60% тайла. Масштаб общий для обеих осей (без искажения
// пропорций): его задает более тесная ось, вторая центрируется.
//
// Вырожденная область (одна точка или нулевой охват) не ошибка: точка
// центрируется при масштабе по умолчанию. Пустой набор опорных точек -
// нарушение предусловия.
func Fit(controlPoints []domain.Point, tileHeight, tileWidth int) (*Projection, error) {
	if len(controlPoints) == 0 {
		return nil, errors.ErrEmptyControlPoints
	}

	bound := orb.Bound{
		Min: orb.Point{controlPoints[0].Lon, controlPoints[0].Lat},
		Max: orb.Point{controlPoints[0].Lon, controlPoints[0].Lat},
	}
	for _, p := range controlPoints[1:] {
		bound = bound.Extend(orb.Point{p.Lon, p.Lat})
	}

	min := project.WGS84.ToMercator(bound.Min)
	max := project.WGS84.ToMercator(bound.Max)

	w := float64(tileWidth)
	h := float64(tileHeight)
	extentW := w * (1 - 2*insetRatio)
	extentH := h * (1 - 2*insetRatio)

	dx := max[0] - min[0]
	dy := max[1] - min[1]

	scale := defaultScale
	if dx > 0 || dy > 0 {
		sx := math.Inf(1)
		sy := math.Inf(1)
		if dx > 0 {
			sx = extentW / dx
		}
		if dy > 0 {
			sy = extentH / dy
		}
		scale = math.Min(sx, sy)
	}

	return &Projection{
		width:   w,
		height:  h,
		scale:   scale,
		centerX: (min[0] + max[0]) / 2,
		centerY: (min[1] + max[1]) / 2,
		tileX:   w / 2,
		tileY:   h / 2,
	}, nil
}

// Project переводит точку в пиксели тайла. ok == false означает, что
// точка после проекции вышла за пределы тайла и рисоваться не должна.
func (p *Projection) Project(pt domain.Point) (x, y float64, ok bool) {
	m := project.WGS84.ToMercator(orb.Point{pt.Lon, pt.Lat})

	x = p.tileX + (m[0]-p.centerX)*p.scale
	// пиксельная ось Y направлена вниз
	y = p.tileY - (m[1]-p.centerY)*p.scale

	ok = x >= 0 && x <= p.width && y >= 0 && y <= p.height
	return x, y, ok
}
