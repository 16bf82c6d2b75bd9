package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/geo"
	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/usecase/dto"
)

type PlaceUseCase struct {
	placeRepo repository.PlaceRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func NewPlaceUseCase(
	placeRepo repository.PlaceRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *PlaceUseCase {
	return &PlaceUseCase{
		placeRepo: placeRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// GetPlace читает карточку через кеш place:{id}
func (uc *PlaceUseCase) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	if id == "" {
		return nil, errors.ErrInvalidRequest
	}

	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetPlace(ctx, id)
		if err != nil {
			uc.logger.Warn("Failed to read place from cache", zap.String("place_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	place, err := uc.placeRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get place", zap.String("place_id", id), zap.Error(err))
		return nil, errors.ErrQueryFailed.Wrap(err)
	}
	if place == nil {
		return nil, errors.ErrPlaceNotFound
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetPlace(ctx, place, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache place", zap.String("place_id", id), zap.Error(err))
		}
	}

	return place, nil
}

// GetDetail - полная карточка со статусом работы на текущий момент
func (uc *PlaceUseCase) GetDetail(ctx context.Context, id string, from *domain.Point, wishlisted bool) (*dto.PlaceDetailResponse, error) {
	place, err := uc.GetPlace(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	openTime, closeTime := domain.TodayTiming(place.OpeningHours, now)

	resp := &dto.PlaceDetailResponse{
		ID:         place.ID,
		Name:       place.Name,
		Category:   place.Category,
		Address:    place.Address,
		About:      place.About,
		Lat:        place.Lat,
		Lon:        place.Lon,
		Rating:     place.Rating,
		Images:     place.Images,
		Reviews:    place.Reviews,
		Website:    place.Website,
		Timings:    domain.FormatTimings(openTime, closeTime),
		OpenStatus: string(domain.OpenStatus(openTime, closeTime, now)),
		Wishlisted: wishlisted,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if resp.Reviews == nil {
		resp.Reviews = []domain.Review{}
	}

	if from != nil {
		d := geo.DistanceKm(from.Lat, from.Lon, place.Lat, place.Lon)
		resp.DistanceKm = &d
	}

	return resp, nil
}

// GetPlaces возвращает найденные заведения по списку id
func (uc *PlaceUseCase) GetPlaces(ctx context.Context, ids []string) ([]domain.Place, error) {
	if len(ids) == 0 {
		return []domain.Place{}, nil
	}
	places, err := uc.placeRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("Failed to get places by ids", zap.Int("count", len(ids)), zap.Error(err))
		return nil, errors.ErrQueryFailed.Wrap(err)
	}
	return places, nil
}

// Invalidate удаляет карточку из кеша
func (uc *PlaceUseCase) Invalidate(ctx context.Context, id string) error {
	if uc.cacheRepo == nil {
		return nil
	}
	if err := uc.cacheRepo.DeletePlace(ctx, id); err != nil {
		return errors.ErrCacheError.Wrap(err)
	}
	return nil
}
