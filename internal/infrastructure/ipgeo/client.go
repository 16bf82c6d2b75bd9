package ipgeo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/config"
	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/geo"
)

const responseFields = "status,message,lat,lon,proxy,hosting"

// lookupResponse - ответ ip-api.com/json/{ip}
type lookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Proxy   bool    `json:"proxy"`
	Hosting bool    `json:"hosting"`
}

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient - провайдер локации устройства по IP клиента
func NewClient(cfg *config.LocationConfig, logger *zap.Logger) repository.LocationProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.IPGeoBaseURL,
		logger:  logger,
	}
}

// Locate определяет координаты по IP. Пустой IP - адрес, с которого пришёл запрос к провайдеру.
// При HighAccuracy результаты для прокси и хостинга отклоняются: их координаты указывают
// на датацентр, а не на устройство.
func (c *client) Locate(ctx context.Context, opts repository.LocateOptions) (*domain.Point, error) {
	if opts.ClientIP != "" && net.ParseIP(opts.ClientIP) == nil {
		return nil, fmt.Errorf("invalid client ip %q", opts.ClientIP)
	}

	endpoint := fmt.Sprintf("%s/json/%s?fields=%s", c.baseURL, url.PathEscape(opts.ClientIP), responseFields)

	c.logger.Debug("Calling IP geolocation API", zap.String("ip", opts.ClientIP))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("IP geolocation request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("IP geolocation API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("ip geolocation API error: status %d", resp.StatusCode)
	}

	var lookup lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if lookup.Status != "success" {
		return nil, fmt.Errorf("ip geolocation failed: %s", lookup.Message)
	}
	if opts.HighAccuracy && (lookup.Proxy || lookup.Hosting) {
		return nil, fmt.Errorf("ip geolocation too coarse: proxy=%t hosting=%t", lookup.Proxy, lookup.Hosting)
	}
	if !geo.ValidCoordinates(lookup.Lat, lookup.Lon) {
		return nil, fmt.Errorf("ip geolocation returned invalid coordinates %f,%f", lookup.Lat, lookup.Lon)
	}

	c.logger.Debug("IP geolocation resolved",
		zap.Float64("lat", lookup.Lat),
		zap.Float64("lon", lookup.Lon),
		zap.Duration("took", time.Since(started)))

	return &domain.Point{Lat: lookup.Lat, Lon: lookup.Lon}, nil
}
