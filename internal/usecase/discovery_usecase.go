package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/pkg/errors"
)

// DiscoveryUseCase выполняет одну страницу выдачи: план, параллельные запросы по боксам, слияние
type DiscoveryUseCase struct {
	planner   *QueryPlanner
	placeRepo repository.PlaceRepository
	logger    *zap.Logger
}

func NewDiscoveryUseCase(
	planner *QueryPlanner,
	placeRepo repository.PlaceRepository,
	logger *zap.Logger,
) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		planner:   planner,
		placeRepo: placeRepo,
		logger:    logger,
	}
}

// FetchPage реализует PageFetcher. Ошибка любого бокса проваливает всю страницу.
func (uc *DiscoveryUseCase) FetchPage(
	ctx context.Context,
	params domain.QueryParams,
	cursor *domain.Cursor,
) (*PageResult, error) {
	descriptors, err := uc.planner.Plan(PlanRequest{
		Filter:   params.Filter,
		SortBy:   params.SortBy,
		Location: params.Location,
		Cursor:   cursor,
	})
	if err != nil {
		return nil, err
	}

	if len(descriptors) == 0 {
		return &PageResult{Cursor: cursor.Advance(nil)}, nil
	}

	start := time.Now()
	batches := make([]domain.Batch, len(descriptors))

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range descriptors {
		i, d := i, d
		g.Go(func() error {
			places, err := uc.placeRepo.Query(gctx, d)
			if err != nil {
				return err
			}
			batches[i] = domain.Batch{Descriptor: d, Places: places}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.logger.Error("Box query failed",
			zap.Int("boxes", len(descriptors)),
			zap.Error(err),
		)
		if appErr, ok := errors.As(err); ok && appErr.Is(errors.ErrQueryFailed) {
			return nil, appErr
		}
		return nil, errors.ErrQueryFailed.Wrap(err)
	}

	merged := Merge(batches, MergeParams{
		Center:   *params.Location,
		RadiusKm: uc.planner.RadiusKm(),
		SortBy:   params.SortBy,
		Tags:     params.Filter.Tags(),
	})

	raw := DistinctCount(batches)
	uc.logger.Debug("Page fetched",
		zap.String("filter", string(params.Filter)),
		zap.String("sort_by", string(params.SortBy)),
		zap.Int("boxes", len(descriptors)),
		zap.Int("raw", raw),
		zap.Int("merged", len(merged)),
		zap.Duration("took", time.Since(start)),
	)

	return &PageResult{
		Places:   merged,
		Cursor:   cursor.Advance(batches),
		RawCount: raw,
	}, nil
}
