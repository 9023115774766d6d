package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/trip-atlas/internal/config"
	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/infrastructure/nominatim"
	"github.com/trip-atlas/internal/pkg/logger"
	"github.com/trip-atlas/internal/pkg/utils"
	"github.com/trip-atlas/internal/usecase"
	"github.com/trip-atlas/internal/usecase/dto"
)

// Офлайн-рендеринг атласа: читает сегменты из JSON-файла и пишет SVG,
// без PostgreSQL и Redis. Геокодирование меток опционально.
func main() {
	var (
		inputPath   = flag.String("input", "", "путь к JSON-файлу с сегментами (обязательный)")
		outputPath  = flag.String("output", "atlas.svg", "путь к выходному SVG-файлу")
		epsilon     = flag.Float64("epsilon", domain.DefaultEpsilonMeters, "радиус соседства кластеризации, метры")
		minPoints   = flag.Int("min-points", domain.DefaultMinPoints, "минимум точек в окрестности ядра")
		limit       = flag.Int("limit", domain.DefaultLimit, "максимум кластеров в атласе")
		width       = flag.Int("width", domain.DefaultCanvasWidth, "ширина холста, пиксели")
		height      = flag.Int("height", domain.DefaultCanvasHeight, "высота холста, пиксели")
		theme       = flag.String("theme", "dark", "тема оформления (dark, light)")
		activity    = flag.String("activity", "", "фильтр по виду активности")
		labelFilter = flag.String("label-filter", "", "фильтр по подстроке метки")
		offline     = flag.Bool("offline", false, "не обращаться к геокодеру, атлас без меток")
		logLevel    = flag.String("log-level", "info", "уровень логирования")
	)
	flag.Parse()

	log, err := logger.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if !utils.ValidateEpsilon(*epsilon) {
		log.Fatal("Epsilon out of range", zap.Float64("epsilon_meters", *epsilon))
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatal("Failed to read input file", zap.String("path", *inputPath), zap.Error(err))
	}

	var segments []dto.SegmentInput
	if err := json.Unmarshal(data, &segments); err != nil {
		log.Fatal("Failed to parse input file", zap.Error(err))
	}

	atlasUC := buildUseCase(log, *offline)

	req := &dto.RenderAtlasRequest{
		Segments: segments,
		Options: dto.AtlasOptions{
			EpsilonMeters: *epsilon,
			MinPoints:     *minPoints,
			Limit:         limit,
			Activity:      *activity,
			LabelFilter:   *labelFilter,
			CanvasWidth:   *width,
			CanvasHeight:  *height,
			Theme:         *theme,
		},
	}

	svg, err := atlasUC.RenderAtlas(context.Background(), req)
	if err != nil {
		log.Fatal("Failed to render atlas", zap.Error(err))
	}

	if err := os.WriteFile(*outputPath, svg, 0o644); err != nil {
		log.Fatal("Failed to write output file", zap.String("path", *outputPath), zap.Error(err))
	}

	log.Info("Atlas written",
		zap.String("path", *outputPath),
		zap.Int("segments", len(segments)),
		zap.Int("bytes", len(svg)))
}

func buildUseCase(log *zap.Logger, offline bool) *usecase.AtlasUseCase {
	defaults := domain.AtlasOptions{}.WithDefaults()
	defaults.Limit = domain.DefaultLimit

	if offline {
		return usecase.NewAtlasUseCase(nil, nil, nil, nil, log, defaults, config.CacheConfig{})
	}

	geocoderCfg := config.GeocoderConfig{
		BaseURL:        "https://nominatim.openstreetmap.org",
		UserAgent:      "trip-atlas/1.0",
		RequestTimeout: 10,
		Zoom:           10,
	}
	geocoder := nominatim.NewNominatimClient(&geocoderCfg, log)
	return usecase.NewAtlasUseCase(nil, nil, nil, geocoder, log, defaults, config.CacheConfig{})
}
