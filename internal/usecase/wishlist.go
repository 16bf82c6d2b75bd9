package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/pkg/errors"
)

// WishlistConfig - политика записи избранного
type WishlistConfig struct {
	WriteRetries int
	RetryBackoff time.Duration
}

// WishlistState - локальное зеркало избранного пользователя.
// Зеркало меняется только после успешной записи в хранилище.
type WishlistState struct {
	userID string
	repo   repository.WishlistRepository
	cfg    WishlistConfig
	logger *zap.Logger
	now    func() time.Time

	mu     sync.RWMutex
	loaded bool
	items  map[string]time.Time

	locks *keyedMutex
}

func NewWishlistState(userID string, repo repository.WishlistRepository, cfg WishlistConfig, logger *zap.Logger) *WishlistState {
	if cfg.WriteRetries < 1 {
		cfg.WriteRetries = 1
	}
	return &WishlistState{
		userID: userID,
		repo:   repo,
		cfg:    cfg,
		logger: logger.With(zap.String("user_id", userID)),
		now:    time.Now,
		items:  make(map[string]time.Time),
		locks:  newKeyedMutex(),
	}
}

// Load читает избранное из хранилища один раз за сессию
func (w *WishlistState) Load(ctx context.Context) error {
	w.mu.RLock()
	loaded := w.loaded
	w.mu.RUnlock()
	if loaded {
		return nil
	}

	entries, err := w.repo.List(ctx, w.userID)
	if err != nil {
		w.logger.Error("Failed to load wishlist", zap.Error(err))
		return errors.ErrQueryFailed.Wrap(err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loaded {
		return nil
	}
	for _, e := range entries {
		w.items[e.PlaceID] = e.AddedAt
	}
	w.loaded = true

	w.logger.Debug("Wishlist loaded", zap.Int("count", len(entries)))
	return nil
}

// Toggle добавляет или удаляет заведение и возвращает новое состояние.
// Переключения одного заведения выполняются строго по очереди.
func (w *WishlistState) Toggle(ctx context.Context, placeID string) (bool, error) {
	if placeID == "" {
		return false, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"place_id": "required"})
	}
	if err := w.Load(ctx); err != nil {
		return false, err
	}

	unlock := w.locks.Lock(placeID)
	defer unlock()

	wishlisted := w.IsWishlisted(placeID)

	var (
		addedAt time.Time
		write   func(context.Context) error
	)
	if wishlisted {
		write = func(ctx context.Context) error {
			return w.repo.Remove(ctx, w.userID, placeID)
		}
	} else {
		addedAt = w.now().UTC()
		entry := domain.WishlistEntry{UserID: w.userID, PlaceID: placeID, AddedAt: addedAt}
		write = func(ctx context.Context) error {
			return w.repo.Add(ctx, entry)
		}
	}

	if err := w.writeWithRetry(ctx, write); err != nil {
		w.logger.Error("Wishlist write failed",
			zap.String("place_id", placeID),
			zap.Bool("remove", wishlisted),
			zap.Error(err),
		)
		return wishlisted, errors.ErrWriteFailed.Wrap(err)
	}

	w.mu.Lock()
	if wishlisted {
		delete(w.items, placeID)
	} else {
		w.items[placeID] = addedAt
	}
	w.mu.Unlock()

	return !wishlisted, nil
}

// IsWishlisted проверяет членство по зеркалу
func (w *WishlistState) IsWishlisted(placeID string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.items[placeID]
	return ok
}

// IDs возвращает id избранных заведений, новые сверху
func (w *WishlistState) IDs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ids := make([]string, 0, len(w.items))
	for id := range w.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := w.items[ids[i]], w.items[ids[j]]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (w *WishlistState) writeWithRetry(ctx context.Context, write func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= w.cfg.WriteRetries; attempt++ {
		if err = write(ctx); err == nil {
			return nil
		}
		if attempt == w.cfg.WriteRetries {
			break
		}

		w.logger.Warn("Retrying wishlist write", zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.cfg.RetryBackoff * time.Duration(attempt)):
		}
	}
	return err
}

// keyedMutex - мьютекс на ключ, записи удаляются когда никто не ждёт
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
