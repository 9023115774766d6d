// Package render - отрисовка атласа в SVG: холст, рамки тайлов,
// спроецированные траектории, конечные точки и метки кластеров.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"go.uber.org/zap"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/projection"
)

// TileMap - все необходимое для отрисовки одного тайла: размещение,
// кластер, подогнанная под тайл проекция и траектории сегментов кластера
type TileMap struct {
	Tile    domain.Tile
	Cluster domain.Cluster
	Proj    *projection.Projection
	Paths   [][]domain.Point
}

// Renderer рисует атлас в SVG
type Renderer struct {
	theme  Theme
	logger *zap.Logger
}

// NewRenderer создает рендерер с заданной темой
func NewRenderer(theme Theme, logger *zap.Logger) *Renderer {
	return &Renderer{
		theme:  theme,
		logger: logger,
	}
}

// Render пишет SVG-атлас в w. Пустой список тайлов дает холст с фоном
// без тайлов - "кластеры не найдены" не является ошибкой.
func (r *Renderer) Render(w io.Writer, canvasWidth, canvasHeight int, maps []TileMap) {
	canvas := svg.New(w)
	canvas.Start(canvasWidth, canvasHeight)
	canvas.Rect(0, 0, canvasWidth, canvasHeight, "fill:"+r.theme.Background)

	for i := range maps {
		r.renderTile(canvas, &maps[i])
	}

	canvas.End()

	r.logger.Debug("Atlas rendered",
		zap.Int("tiles", len(maps)),
		zap.Int("width", canvasWidth),
		zap.Int("height", canvasHeight))
}

// renderTile рисует один тайл в его локальных координатах
func (r *Renderer) renderTile(canvas *svg.SVG, m *TileMap) {
	size := m.Tile.Size
	canvas.Translate(m.Tile.X, m.Tile.Y)

	canvas.Rect(0, 0, size, size,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", r.theme.TileFill, r.theme.TileStroke))

	for _, path := range m.Paths {
		r.renderPath(canvas, m.Proj, path)
	}

	for _, p := range m.Cluster.Points {
		x, y, ok := m.Proj.Project(p)
		if !ok {
			continue
		}
		canvas.Circle(int(x), int(y), 3, "fill:"+r.theme.Endpoint)
	}

	if m.Cluster.Label != "" {
		canvas.Text(size/2, r.theme.LabelSize+6, m.Cluster.Label,
			fmt.Sprintf("fill:%s;font-size:%dpx;font-family:sans-serif;text-anchor:middle",
				r.theme.Label, r.theme.LabelSize))
	}

	canvas.Gend()
}

// renderPath рисует траекторию; точки за границей тайла обрезаются,
// поэтому ломаная разбивается на видимые отрезки
func (r *Renderer) renderPath(canvas *svg.SVG, proj *projection.Projection, path []domain.Point) {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d;stroke-linejoin:round",
		r.theme.Path, r.theme.PathWidth)

	var xs, ys []int
	flush := func() {
		if len(xs) >= 2 {
			canvas.Polyline(xs, ys, style)
		}
		xs, ys = nil, nil
	}

	for _, p := range path {
		x, y, ok := proj.Project(p)
		if !ok {
			flush()
			continue
		}
		xs = append(xs, int(x))
		ys = append(ys, int(y))
	}
	flush()
}
