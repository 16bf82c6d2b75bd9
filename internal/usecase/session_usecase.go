package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/geo"
	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/usecase/dto"
)

// SessionConfig - параметры сессий выдачи
type SessionConfig struct {
	PageSize int
	RadiusKm float64
	Wishlist WishlistConfig
	// RefreshTimeout - лимит на перезапрос по событию изменения
	RefreshTimeout     time.Duration
	RefreshConcurrency int
}

// QueryInput - запрос новой выдачи от клиента
type QueryInput struct {
	Filter   string
	SortBy   string
	Explicit *domain.Point
	ClientIP string
}

// Session - контроллер выдачи и зеркало избранного одного пользователя
type Session struct {
	UserID     string
	controller *PaginationController
	wishlist   *WishlistState

	mu       sync.Mutex
	lastSeen time.Time
}

// Location - локация, по которой посчитана текущая выдача
func (s *Session) Location() *domain.ResolvedLocation {
	return s.controller.Params().Resolved()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionUseCase держит по одной сессии на пользователя
type SessionUseCase struct {
	fetcher      PageFetcher
	resolver     *LocationResolver
	places       *PlaceUseCase
	wishlistRepo repository.WishlistRepository
	cfg          SessionConfig
	logger       *zap.Logger
	now          func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionUseCase(
	fetcher PageFetcher,
	resolver *LocationResolver,
	places *PlaceUseCase,
	wishlistRepo repository.WishlistRepository,
	cfg SessionConfig,
	logger *zap.Logger,
) *SessionUseCase {
	if cfg.RefreshConcurrency <= 0 {
		cfg.RefreshConcurrency = 8
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 30 * time.Second
	}
	return &SessionUseCase{
		fetcher:      fetcher,
		resolver:     resolver,
		places:       places,
		wishlistRepo: wishlistRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
		sessions:     make(map[string]*Session),
	}
}

// Query получает локацию и перезапрашивает выдачу с новыми параметрами
func (uc *SessionUseCase) Query(ctx context.Context, userID string, in QueryInput) (*dto.FeedResponse, error) {
	filter := domain.Filter(in.Filter)
	if in.Filter == "" {
		filter = domain.FilterAll
	}
	if !filter.Valid() {
		return nil, errors.ErrInvalidFilter.WithDetails(map[string]interface{}{"filter": in.Filter})
	}

	sortBy := domain.SortKey(in.SortBy)
	if in.SortBy == "" {
		sortBy = domain.SortByDistance
	}
	if !sortBy.Valid() {
		return nil, errors.ErrInvalidSort.WithDetails(map[string]interface{}{"sort_by": in.SortBy})
	}

	if in.Explicit != nil && !geo.ValidCoordinates(in.Explicit.Lat, in.Explicit.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	s := uc.session(userID)
	// поколение занимается до получения локации: более поздний запрос всегда побеждает
	gen := s.controller.Begin()
	uc.loadWishlist(ctx, s)

	params := domain.QueryParams{Filter: filter, SortBy: sortBy}

	loc, err := uc.resolver.Resolve(ctx, LocationRequest{Explicit: in.Explicit, ClientIP: in.ClientIP})
	if err != nil {
		// без локации контроллер уходит в состояние ошибки, запросов к хранилищу нет
		uc.logger.Warn("Querying without location", zap.String("user_id", userID), zap.Error(err))
	} else {
		point := loc.Point
		params.Location = &point
		params.LocationSource = loc.Source
	}

	snap, err := s.controller.Fetch(ctx, gen, params)
	return dto.NewFeedResponse(snap, s.wishlist.IsWishlisted), err
}

// LoadMore догружает следующую страницу текущей выдачи
func (uc *SessionUseCase) LoadMore(ctx context.Context, userID string) (*dto.FeedResponse, error) {
	s, ok := uc.existing(userID)
	if !ok {
		return nil, errors.ErrSessionNotFound
	}

	snap, err := s.controller.LoadMore(ctx)
	return dto.NewFeedResponse(snap, s.wishlist.IsWishlisted), err
}

// Feed - текущий снимок выдачи без запросов
func (uc *SessionUseCase) Feed(userID string) (*dto.FeedResponse, error) {
	s, ok := uc.existing(userID)
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return dto.NewFeedResponse(s.controller.Snapshot(), s.wishlist.IsWishlisted), nil
}

// PlaceDetail - карточка с расстоянием от текущей локации сессии
func (uc *SessionUseCase) PlaceDetail(ctx context.Context, userID, placeID string) (*dto.PlaceDetailResponse, error) {
	s := uc.session(userID)
	uc.loadWishlist(ctx, s)

	var from *domain.Point
	if loc := s.Location(); loc != nil {
		from = &loc.Point
	}
	return uc.places.GetDetail(ctx, placeID, from, s.wishlist.IsWishlisted(placeID))
}

// Wishlist - избранное, отсортированное по расстоянию от текущей локации
func (uc *SessionUseCase) Wishlist(ctx context.Context, userID string) (*dto.WishlistResponse, error) {
	s := uc.session(userID)
	if err := s.wishlist.Load(ctx); err != nil {
		return nil, err
	}

	ids := s.wishlist.IDs()
	places, err := uc.places.GetPlaces(ctx, ids)
	if err != nil {
		return nil, err
	}

	if loc := s.Location(); loc != nil {
		for i := range places {
			places[i].Distance = geo.DistanceKm(loc.Point.Lat, loc.Point.Lon, places[i].Lat, places[i].Lon)
		}
		SortPlaces(places, domain.SortByDistance)
	} else {
		rank := make(map[string]int, len(ids))
		for i, id := range ids {
			rank[id] = i
		}
		sort.SliceStable(places, func(i, j int) bool {
			return rank[places[i].ID] < rank[places[j].ID]
		})
	}

	resp := &dto.WishlistResponse{Places: make([]dto.PlaceCard, 0, len(places))}
	for _, p := range places {
		resp.Places = append(resp.Places, dto.NewPlaceCard(p, true))
	}
	resp.Total = len(resp.Places)
	return resp, nil
}

// ToggleWishlist переключает членство заведения в избранном
func (uc *SessionUseCase) ToggleWishlist(ctx context.Context, userID, placeID string) (*dto.ToggleWishlistResponse, error) {
	s := uc.session(userID)

	wishlisted, err := s.wishlist.Toggle(ctx, placeID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleWishlistResponse{PlaceID: placeID, Wishlisted: wishlisted}, nil
}

// NotifyPlaceChanged инвалидирует кеш карточки и перезапрашивает выдачу сессий,
// в круг поиска которых попадает новая позиция заведения или в выдаче которых оно уже есть.
// Возвращает число затронутых сессий и объединённую ошибку инвалидации и перезапросов.
func (uc *SessionUseCase) NotifyPlaceChanged(ctx context.Context, event domain.PlaceChangedEvent) (int, error) {
	var errs []error
	if err := uc.places.Invalidate(ctx, event.PlaceID); err != nil {
		uc.logger.Warn("Failed to invalidate place cache", zap.String("place_id", event.PlaceID), zap.Error(err))
		errs = append(errs, err)
	}

	affected := make([]*Session, 0)
	uc.mu.RLock()
	for _, s := range uc.sessions {
		if uc.affectedBy(s, event) {
			affected = append(affected, s)
		}
	}
	uc.mu.RUnlock()

	var (
		g     errgroup.Group
		errMu sync.Mutex
	)
	g.SetLimit(uc.cfg.RefreshConcurrency)
	for _, s := range affected {
		s := s
		g.Go(func() error {
			rctx, cancel := context.WithTimeout(ctx, uc.cfg.RefreshTimeout)
			defer cancel()

			if _, err := s.controller.Refresh(rctx); err != nil {
				uc.logger.Warn("Push refetch failed",
					zap.String("user_id", s.UserID),
					zap.String("place_id", event.PlaceID),
					zap.Error(err),
				)
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(affected) > 0 {
		uc.logger.Info("Sessions refreshed after place change",
			zap.String("place_id", event.PlaceID),
			zap.String("op", string(event.Op)),
			zap.Int("sessions", len(affected)),
			zap.Int("failed", len(errs)),
		)
	}
	return len(affected), errors.Join(errs...)
}

// affectedBy - событие меняет выдачу сессии: заведение уже показано или
// его новая позиция внутри круга поиска
func (uc *SessionUseCase) affectedBy(s *Session, event domain.PlaceChangedEvent) bool {
	loc := s.Location()
	if loc == nil {
		return false
	}
	if s.controller.Contains(event.PlaceID) {
		return true
	}
	if event.Op == domain.PlaceDeleted {
		return false
	}
	return geo.DistanceKm(loc.Point.Lat, loc.Point.Lon, event.Lat, event.Lon) <= uc.cfg.RadiusKm
}

// EvictIdle удаляет сессии без активности дольше ttl
func (uc *SessionUseCase) EvictIdle(ttl time.Duration) int {
	deadline := uc.now().Add(-ttl)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	evicted := 0
	for id, s := range uc.sessions {
		if s.idleSince().Before(deadline) {
			delete(uc.sessions, id)
			evicted++
		}
	}
	return evicted
}

// SessionCount - число активных сессий
func (uc *SessionUseCase) SessionCount() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.sessions)
}

func (uc *SessionUseCase) session(userID string) *Session {
	now := uc.now()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[userID]
	if !ok {
		logger := uc.logger.With(zap.String("user_id", userID))
		s = &Session{
			UserID:     userID,
			controller: NewPaginationController(uc.fetcher, uc.cfg.PageSize, logger),
			wishlist:   NewWishlistState(userID, uc.wishlistRepo, uc.cfg.Wishlist, uc.logger),
		}
		uc.sessions[userID] = s
	}
	s.touch(now)
	return s
}

func (uc *SessionUseCase) existing(userID string) (*Session, bool) {
	uc.mu.RLock()
	s, ok := uc.sessions[userID]
	uc.mu.RUnlock()
	if ok {
		s.touch(uc.now())
	}
	return s, ok
}

func (uc *SessionUseCase) loadWishlist(ctx context.Context, s *Session) {
	if err := s.wishlist.Load(ctx); err != nil {
		uc.logger.Warn("Wishlist not loaded", zap.String("user_id", s.UserID), zap.Error(err))
	}
}
