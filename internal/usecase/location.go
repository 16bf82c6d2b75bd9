package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/geo"
	"github.com/place-discovery/internal/pkg/errors"
)

// LocationConfig - политика получения локации
type LocationConfig struct {
	Timeout      time.Duration
	HighAccuracy bool
	// MaxAge - сколько можно переиспользовать последнюю локацию, 0 - не переиспользовать
	MaxAge          time.Duration
	FallbackEnabled bool
	Fallback        domain.Point
}

// LocationRequest - что известно о клиенте на момент запроса
type LocationRequest struct {
	// Explicit - координаты, переданные клиентом явно
	Explicit *domain.Point
	ClientIP string
}

// LocationResolver получает локацию пользователя для одного цикла запросов
type LocationResolver struct {
	provider repository.LocationProvider
	cache    repository.CacheRepository
	cfg      LocationConfig
	logger   *zap.Logger
}

func NewLocationResolver(
	provider repository.LocationProvider,
	cache repository.CacheRepository,
	cfg LocationConfig,
	logger *zap.Logger,
) *LocationResolver {
	return &LocationResolver{
		provider: provider,
		cache:    cache,
		cfg:      cfg,
		logger:   logger,
	}
}

// Resolve: явные координаты -> кеш (если MaxAge > 0) -> провайдер с таймаутом -> запасная точка.
// Без запасной точки ошибка провайдера превращается в LOCATION_UNAVAILABLE.
func (r *LocationResolver) Resolve(ctx context.Context, req LocationRequest) (*domain.ResolvedLocation, error) {
	if req.Explicit != nil {
		if !geo.ValidCoordinates(req.Explicit.Lat, req.Explicit.Lon) {
			return nil, errors.ErrInvalidCoordinates
		}
		return &domain.ResolvedLocation{Point: *req.Explicit, Source: domain.LocationSourceClient}, nil
	}

	cacheKey := req.ClientIP
	if r.cfg.MaxAge > 0 && r.cache != nil && req.ClientIP != "" {
		cached, err := r.cache.GetLocation(ctx, cacheKey)
		if err != nil {
			r.logger.Warn("Location cache read failed", zap.Error(err))
		} else if cached != nil {
			return &domain.ResolvedLocation{Point: *cached, Source: domain.LocationSourceCache}, nil
		}
	}

	point, err := r.locate(ctx, req.ClientIP)
	if err == nil {
		if r.cfg.MaxAge > 0 && r.cache != nil && req.ClientIP != "" {
			if cerr := r.cache.SetLocation(ctx, cacheKey, *point, r.cfg.MaxAge); cerr != nil {
				r.logger.Warn("Location cache write failed", zap.Error(cerr))
			}
		}
		return &domain.ResolvedLocation{Point: *point, Source: domain.LocationSourceProvider}, nil
	}

	if r.cfg.FallbackEnabled {
		r.logger.Info("Using fallback location", zap.Error(err))
		return &domain.ResolvedLocation{Point: r.cfg.Fallback, Source: domain.LocationSourceFallback}, nil
	}

	r.logger.Warn("Location unavailable", zap.Error(err))
	return nil, errors.ErrLocationUnavailable.Wrap(err)
}

func (r *LocationResolver) locate(ctx context.Context, clientIP string) (*domain.Point, error) {
	if r.provider == nil {
		return nil, errors.ErrLocationUnavailable
	}

	locateCtx := ctx
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		locateCtx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	point, err := r.provider.Locate(locateCtx, repository.LocateOptions{
		ClientIP:     clientIP,
		HighAccuracy: r.cfg.HighAccuracy,
	})
	if err != nil {
		return nil, err
	}
	if point == nil || !geo.ValidCoordinates(point.Lat, point.Lon) {
		return nil, errors.ErrLocationUnavailable
	}
	return point, nil
}
