package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
)

// PageResult - результат одного цикла запросов
type PageResult struct {
	Places []domain.Place
	Cursor *domain.Cursor
	// RawCount - уникальные записи хранилища до фильтрации по радиусу
	RawCount int
}

// PageFetcher выполняет план запросов, fan-out и слияние для одной страницы
type PageFetcher interface {
	FetchPage(ctx context.Context, params domain.QueryParams, cursor *domain.Cursor) (*PageResult, error)
}

// PaginationController хранит накопленную выдачу сессии и управляет
// переходами idle / loading-initial / loading-more / error.
// Ответы устаревших поколений запросов отбрасываются.
type PaginationController struct {
	fetcher  PageFetcher
	pageSize int
	logger   *zap.Logger

	mu           sync.Mutex
	state        domain.LoadState
	params       domain.QueryParams
	places       []domain.Place
	cursor       *domain.Cursor
	hasMore      bool
	generation   uint64
	err          error
	failedOnMore bool
	// awaiting - поколение занято через Begin, параметры ещё не переданы в Fetch
	awaiting bool
}

func NewPaginationController(fetcher PageFetcher, pageSize int, logger *zap.Logger) *PaginationController {
	return &PaginationController{
		fetcher:  fetcher,
		pageSize: pageSize,
		logger:   logger,
		state:    domain.StateIdle,
	}
}

// Begin резервирует новое поколение и сбрасывает выдачу. Всё, что было начато
// раньше, становится устаревшим. Первую страницу затем загружает Fetch с этим поколением.
func (c *PaginationController) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.beginLocked()
	c.awaiting = true
	return gen
}

// Fetch загружает первую страницу для поколения gen. Если за это время был
// начат более новый запрос, хранилище не вызывается.
func (c *PaginationController) Fetch(ctx context.Context, gen uint64, params domain.QueryParams) (domain.PageSnapshot, error) {
	c.mu.Lock()
	if gen != c.generation {
		c.logger.Debug("Skipping superseded request", zap.Uint64("generation", gen), zap.Uint64("current", c.generation))
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	}
	c.params = params
	c.awaiting = false
	c.mu.Unlock()

	return c.fetchInitial(ctx, gen, params)
}

// Refetch сбрасывает выдачу и загружает первую страницу для params.
// Любой незавершённый запрос становится устаревшим.
func (c *PaginationController) Refetch(ctx context.Context, params domain.QueryParams) (domain.PageSnapshot, error) {
	return c.Fetch(ctx, c.Begin(), params)
}

// Refresh перезапрашивает выдачу с текущими параметрами. Если начат запрос,
// которому ещё не переданы параметры, ничего не делает: тот запрос и так загрузит свежие данные.
func (c *PaginationController) Refresh(ctx context.Context) (domain.PageSnapshot, error) {
	c.mu.Lock()
	if c.awaiting {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	}
	gen := c.beginLocked()
	params := c.params
	c.mu.Unlock()

	return c.fetchInitial(ctx, gen, params)
}

func (c *PaginationController) beginLocked() uint64 {
	c.generation++
	c.state = domain.StateLoadingInitial
	c.places = nil
	c.cursor = nil
	c.hasMore = false
	c.err = nil
	c.failedOnMore = false
	return c.generation
}

func (c *PaginationController) fetchInitial(ctx context.Context, gen uint64, params domain.QueryParams) (domain.PageSnapshot, error) {
	result, err := c.fetcher.FetchPage(ctx, params, nil)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("Dropping stale initial page", zap.Uint64("generation", gen), zap.Uint64("current", c.generation))
		return c.snapshotLocked(), nil
	}

	if err != nil {
		c.state = domain.StateError
		c.err = err
		c.logger.Warn("Initial page failed", zap.Error(err))
		return c.snapshotLocked(), err
	}

	c.places = append([]domain.Place(nil), result.Places...)
	c.cursor = result.Cursor
	c.hasMore = c.computeHasMore(result)
	c.state = domain.StateIdle

	return c.snapshotLocked(), nil
}

// Contains - есть ли заведение в накопленной выдаче
func (c *PaginationController) Contains(placeID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.places {
		if p.ID == placeID {
			return true
		}
	}
	return false
}

// LoadMore догружает следующую страницу. Вызов без эффекта, если загрузка
// уже идёт, данных больше нет или ошибка была на первой странице.
func (c *PaginationController) LoadMore(ctx context.Context) (domain.PageSnapshot, error) {
	c.mu.Lock()
	if !c.canLoadMoreLocked() {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	}

	c.state = domain.StateLoadingMore
	gen := c.generation
	params := c.params
	cursor := c.cursor
	c.mu.Unlock()

	result, err := c.fetcher.FetchPage(ctx, params, cursor)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("Dropping stale page", zap.Uint64("generation", gen), zap.Uint64("current", c.generation))
		return c.snapshotLocked(), nil
	}

	if err != nil {
		c.state = domain.StateError
		c.err = err
		c.failedOnMore = true
		c.logger.Warn("Load more failed", zap.Error(err))
		return c.snapshotLocked(), err
	}

	present := make(map[string]struct{}, len(c.places))
	for _, p := range c.places {
		present[p.ID] = struct{}{}
	}
	for _, p := range result.Places {
		if _, dup := present[p.ID]; dup {
			continue
		}
		present[p.ID] = struct{}{}
		c.places = append(c.places, p)
	}

	c.cursor = result.Cursor
	c.hasMore = c.computeHasMore(result)
	c.state = domain.StateIdle
	c.err = nil
	c.failedOnMore = false

	return c.snapshotLocked(), nil
}

// Snapshot - текущее состояние выдачи
func (c *PaginationController) Snapshot() domain.PageSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Params - параметры текущей выдачи
func (c *PaginationController) Params() domain.QueryParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

func (c *PaginationController) canLoadMoreLocked() bool {
	if !c.hasMore {
		return false
	}
	switch c.state {
	case domain.StateIdle:
		return true
	case domain.StateError:
		return c.failedOnMore
	default:
		return false
	}
}

func (c *PaginationController) computeHasMore(result *PageResult) bool {
	return result.RawCount >= c.pageSize && result.Cursor.Open()
}

func (c *PaginationController) snapshotLocked() domain.PageSnapshot {
	places := make([]domain.Place, len(c.places))
	copy(places, c.places)

	return domain.PageSnapshot{
		State:      c.state,
		Params:     c.params,
		Places:     places,
		HasMore:    c.hasMore,
		Generation: c.generation,
		Err:        c.err,
	}
}
