package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// Параметры атласа по умолчанию
const (
	DefaultEpsilonMeters = 12000.0
	DefaultMinPoints     = 4
	DefaultLimit         = 12
	DefaultCanvasWidth   = 1920
	DefaultCanvasHeight  = 1080
)

// Cluster — группа точек, найденная кластеризацией. Label разрешается
// лениво обратным геокодированием центроида; пустая строка — кластер
// без названия, это не ошибка.
type Cluster struct {
	Points []Point `json:"points"`
	Label  string  `json:"label"`
}

// Size возвращает количество точек кластера
func (c *Cluster) Size() int {
	return len(c.Points)
}

// Tile — квадрат сетки атласа: позиция (row, column), пиксельное
// начало (x, y) и сторона size. Тайлы одного атласа конгруэнтны,
// не пересекаются и целиком лежат внутри холста.
type Tile struct {
	Row    int `json:"row"`
	Column int `json:"column"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Size   int `json:"size"`
}

// Placement — пара (тайл, кластер), готовая к отрисовке
type Placement struct {
	Tile    Tile    `json:"tile"`
	Cluster Cluster `json:"cluster"`
}

// AtlasOptions — явная конфигурация конвейера атласа.
// Никаких глобальных параметров внутри конвейера нет.
type AtlasOptions struct {
	EpsilonMeters float64 `json:"epsilon_meters"`
	MinPoints     int     `json:"min_points"`
	Limit         int     `json:"limit"`
	Activity      string  `json:"activity,omitempty"`
	LabelFilter   string  `json:"label_filter,omitempty"`
	CanvasWidth   int     `json:"canvas_width"`
	CanvasHeight  int     `json:"canvas_height"`
	Theme         string  `json:"theme,omitempty"`
}

// WithDefaults заполняет незаданные поля значениями по умолчанию
func (o AtlasOptions) WithDefaults() AtlasOptions {
	if o.EpsilonMeters <= 0 {
		o.EpsilonMeters = DefaultEpsilonMeters
	}
	if o.MinPoints <= 0 {
		o.MinPoints = DefaultMinPoints
	}
	if o.Limit < 0 {
		o.Limit = 0
	}
	if o.CanvasWidth <= 0 {
		o.CanvasWidth = DefaultCanvasWidth
	}
	if o.CanvasHeight <= 0 {
		o.CanvasHeight = DefaultCanvasHeight
	}
	return o
}

// Fingerprint — детерминированный отпечаток опций для ключей кэша
func (o AtlasOptions) Fingerprint() string {
	canonical := fmt.Sprintf("%g|%d|%d|%s|%s|%d|%d|%s",
		o.EpsilonMeters, o.MinPoints, o.Limit,
		strings.ToLower(o.Activity), strings.ToLower(o.LabelFilter),
		o.CanvasWidth, o.CanvasHeight, o.Theme,
	)
	sum := sha1.Sum([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
