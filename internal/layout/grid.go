// Package layout - упаковка N почти квадратных тайлов в холст
// фиксированного размера.
package layout

import (
	"math"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/pkg/errors"
)

// Grid раскладывает count тайлов по холсту canvasHeight x canvasWidth.
//
// Сторона тайла выводится из бюджета площади: perTileArea = H*W/count,
// maxSide = sqrt(perTileArea); затем по каждой оси сторона ужимается
// так, чтобы целое число тайлов укладывалось без переполнения, и
// берется минимум по осям. Тайлы получаются конгруэнтными квадратами,
// заполняющими холст построчно слева направо, сверху вниз. Округление
// вниз может оставить поля справа и снизу - это ожидаемо.
//
// count <= 0 - нарушение предусловия (деление на ноль), ошибка вызывающего.
func Grid(count, canvasHeight, canvasWidth int) ([]domain.Tile, error) {
	if count <= 0 {
		return nil, errors.ErrNoTiles
	}
	if canvasHeight <= 0 || canvasWidth <= 0 {
		return nil, errors.ErrInvalidCanvas
	}

	perTileArea := float64(canvasHeight) * float64(canvasWidth) / float64(count)
	maxSide := math.Sqrt(perTileArea)

	height := canvasHeight / int(math.Ceil(float64(canvasHeight)/maxSide))
	width := canvasWidth / int(math.Ceil(float64(canvasWidth)/maxSide))

	size := height
	if width < size {
		size = width
	}

	across := canvasWidth / size

	tiles := make([]domain.Tile, count)
	for i := range tiles {
		row := i / across
		column := i % across
		tiles[i] = domain.Tile{
			Row:    row,
			Column: column,
			X:      column * size,
			Y:      row * size,
			Size:   size,
		}
	}
	return tiles, nil
}
