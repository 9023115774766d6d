package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/trip-atlas/internal/config"
	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/domain/repository"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	zoom       int
	logger     *zap.Logger
}

// reverseResponse - ответ Nominatim /reverse в формате jsonv2
type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// NewNominatimClient создает новый клиент для Nominatim API
func NewNominatimClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		zoom:      cfg.Zoom,
		logger:    logger,
	}
}

// ReverseGeocode возвращает название населенного пункта для точки.
// Если Nominatim не смог определить место, возвращает пустую строку без ошибки.
func (c *client) ReverseGeocode(ctx context.Context, p domain.Point) (string, error) {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", fmt.Sprintf("%f", p.Lat))
	query.Set("lon", fmt.Sprintf("%f", p.Lon))
	query.Set("zoom", fmt.Sprintf("%d", c.zoom))

	reqURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, query.Encode())

	c.logger.Debug("Calling Nominatim reverse API",
		zap.Float64("lat", p.Lat),
		zap.Float64("lon", p.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim требует идентифицирующий User-Agent
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Точка в океане или rate limit: место не определено, это не ошибка пайплайна
		c.logger.Warn("Nominatim returned non-OK status",
			zap.Int("status_code", resp.StatusCode))
		return "", nil
	}

	var reverseResp reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&reverseResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	label := pickLabel(&reverseResp)

	c.logger.Debug("Nominatim reverse API call successful",
		zap.String("label", label))

	return label, nil
}

// pickLabel выбирает наиболее подходящее короткое название места
func pickLabel(r *reverseResponse) string {
	addr := r.Address
	for _, candidate := range []string{addr.City, addr.Town, addr.Village, addr.County, addr.State, addr.Country} {
		if candidate != "" {
			return candidate
		}
	}
	return r.DisplayName
}
