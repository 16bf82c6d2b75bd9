package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/geo"
	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/usecase"
)

type sessionFixture struct {
	uc       *usecase.SessionUseCase
	store    *memoryStore
	wishlist *MockWishlistRepository
	provider *MockLocationProvider
}

func newSessionFixture(t *testing.T, places ...domain.Place) *sessionFixture {
	t.Helper()

	store := &memoryStore{places: places}
	wishlist := &MockWishlistRepository{}
	wishlist.On("List", mock.Anything, mock.Anything).Return([]domain.WishlistEntry{}, nil)
	provider := &MockLocationProvider{}

	resolver := usecase.NewLocationResolver(provider, nil, usecase.LocationConfig{Timeout: time.Second}, zap.NewNop())
	placeUC := usecase.NewPlaceUseCase(store, nil, zap.NewNop(), time.Minute)

	uc := usecase.NewSessionUseCase(newDiscovery(store, 20), resolver, placeUC, wishlist, usecase.SessionConfig{
		PageSize: 20,
		RadiusKm: 10,
		Wishlist: fastRetry,
	}, zap.NewNop())

	return &sessionFixture{uc: uc, store: store, wishlist: wishlist, provider: provider}
}

func explicit(p domain.Point) usecase.QueryInput {
	return usecase.QueryInput{Filter: "All", SortBy: "distance", Explicit: &p}
}

func TestSessionUseCase_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit location", func(t *testing.T) {
		f := newSessionFixture(t, placeAt("near", "Cafe", 2), placeAt("far", "Cafe", 15))

		resp, err := f.uc.Query(ctx, "user-1", explicit(bangalore))
		require.NoError(t, err)

		assert.Equal(t, "idle", resp.State)
		assert.Equal(t, "client", resp.Location.Source)
		require.Len(t, resp.Places, 1)
		assert.Equal(t, "near", resp.Places[0].ID)
		assert.False(t, resp.HasMore)
		assert.Equal(t, 1, f.uc.SessionCount())
	})

	t.Run("defaults to all by distance", func(t *testing.T) {
		f := newSessionFixture(t)
		p := bangalore

		resp, err := f.uc.Query(ctx, "user-1", usecase.QueryInput{Explicit: &p})
		require.NoError(t, err)
		assert.Equal(t, "All", resp.Filter)
		assert.Equal(t, "distance", resp.SortBy)
		assert.True(t, resp.Empty)
	})

	t.Run("invalid explicit coordinates", func(t *testing.T) {
		f := newSessionFixture(t)
		p := domain.Point{Lat: 91, Lon: 0}

		_, err := f.uc.Query(ctx, "user-1", usecase.QueryInput{Explicit: &p})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
		assert.Zero(t, f.uc.SessionCount())
	})

	t.Run("unknown filter", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.uc.Query(ctx, "user-1", usecase.QueryInput{Filter: "Zoo"})
		assert.ErrorIs(t, err, errors.ErrInvalidFilter)
	})

	t.Run("location unavailable surfaces error state without queries", func(t *testing.T) {
		f := newSessionFixture(t, placeAt("near", "Cafe", 2))
		f.provider.On("Locate", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		resp, err := f.uc.Query(ctx, "user-1", usecase.QueryInput{ClientIP: "1.2.3.4"})
		assert.ErrorIs(t, err, errors.ErrLocationUnavailable)
		require.NotNil(t, resp)
		assert.Equal(t, "error", resp.State)
		assert.Equal(t, "LOCATION_UNAVAILABLE", resp.Error.Code)
		assert.False(t, resp.Empty)
		assert.Zero(t, f.store.queries)
	})
}

func TestSessionUseCase_FeedAndLoadMoreRequireSession(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.uc.Feed("nobody")
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)

	_, err = f.uc.LoadMore(context.Background(), "nobody")
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestSessionUseCase_NotifyPlaceChanged(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, placeAt("existing", "Cafe", 1))

	_, err := f.uc.Query(ctx, "near-user", explicit(bangalore))
	require.NoError(t, err)
	_, err = f.uc.Query(ctx, "far-user", explicit(domain.Point{Lat: 41.3851, Lon: 2.1734}))
	require.NoError(t, err)

	added := placeAt("added", "Cafe", 3)
	f.store.mu.Lock()
	f.store.places = append(f.store.places, added)
	f.store.mu.Unlock()

	refreshed, err := f.uc.NotifyPlaceChanged(ctx, domain.PlaceChangedEvent{
		PlaceID: added.ID,
		Lat:     added.Lat,
		Lon:     added.Lon,
		Op:      domain.PlaceUpserted,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed)

	feed, err := f.uc.Feed("near-user")
	require.NoError(t, err)
	assert.Len(t, feed.Places, 2)

	feed, err = f.uc.Feed("far-user")
	require.NoError(t, err)
	assert.True(t, feed.Empty)
}

// blockLocate заставляет провайдера ждать release; started получает сигнал о вызове
func blockLocate(provider *MockLocationProvider, at domain.Point) (started chan struct{}, release chan struct{}) {
	started = make(chan struct{}, 1)
	release = make(chan struct{})
	p := at
	provider.On("Locate", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			started <- struct{}{}
			<-release
		}).
		Return(&p, nil).Once()
	return started, release
}

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("signal not received")
	}
}

func TestSessionUseCase_LatestQueryWins(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, placeAt("cafe", "Cafe", 1), placeAt("gym", "Gym", 2))
	started, release := blockLocate(f.provider, bangalore)

	slow := make(chan error, 1)
	go func() {
		_, err := f.uc.Query(ctx, "user-1", usecase.QueryInput{Filter: "All", ClientIP: "1.2.3.4"})
		slow <- err
	}()
	waitSignal(t, started)

	p := bangalore
	resp, err := f.uc.Query(ctx, "user-1", usecase.QueryInput{Filter: "Gym", SortBy: "rating", Explicit: &p})
	require.NoError(t, err)
	assert.Equal(t, "Gym", resp.Filter)
	queried := f.store.queryCount()

	close(release)
	select {
	case err := <-slow:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("older query did not return")
	}

	feed, err := f.uc.Feed("user-1")
	require.NoError(t, err)
	assert.Equal(t, "idle", feed.State)
	assert.Equal(t, "Gym", feed.Filter)
	assert.Equal(t, "rating", feed.SortBy)
	require.Len(t, feed.Places, 1)
	assert.Equal(t, "gym", feed.Places[0].ID)
	require.NotNil(t, feed.Location)
	assert.Equal(t, "client", feed.Location.Source)
	assert.Equal(t, queried, f.store.queryCount(), "superseded query must not reach the store")
}

func TestSessionUseCase_RefreshDoesNotOverridePendingQuery(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, placeAt("cafe", "Cafe", 1), placeAt("gym", "Gym", 2))

	_, err := f.uc.Query(ctx, "user-1", explicit(bangalore))
	require.NoError(t, err)

	started, release := blockLocate(f.provider, bangalore)
	pending := make(chan error, 1)
	go func() {
		_, err := f.uc.Query(ctx, "user-1", usecase.QueryInput{Filter: "Gym", ClientIP: "1.2.3.4"})
		pending <- err
	}()
	waitSignal(t, started)

	changed := placeAt("gym", "Gym", 2)
	_, err = f.uc.NotifyPlaceChanged(ctx, domain.PlaceChangedEvent{
		PlaceID: changed.ID, Lat: changed.Lat, Lon: changed.Lon, Op: domain.PlaceUpserted,
	})
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-pending)

	feed, err := f.uc.Feed("user-1")
	require.NoError(t, err)
	assert.Equal(t, "Gym", feed.Filter)
	assert.Equal(t, "provider", feed.Location.Source)
	require.Len(t, feed.Places, 1)
	assert.Equal(t, "gym", feed.Places[0].ID)
}

func TestSessionUseCase_NotifyPlaceChangedShownPlace(t *testing.T) {
	ctx := context.Background()
	barcelona := domain.Point{Lat: 41.3851, Lon: 2.1734}

	t.Run("moved out of radius", func(t *testing.T) {
		f := newSessionFixture(t, placeAt("mover", "Cafe", 1))
		_, err := f.uc.Query(ctx, "user-1", explicit(bangalore))
		require.NoError(t, err)

		moved := domain.Place{
			ID: "mover", Name: "mover", Category: "Cafe",
			Lat: barcelona.Lat, Lon: barcelona.Lon, Geohash: geo.Encode(barcelona.Lat, barcelona.Lon),
		}
		f.store.set(nil, moved)

		refreshed, err := f.uc.NotifyPlaceChanged(ctx, domain.PlaceChangedEvent{
			PlaceID: "mover", Lat: barcelona.Lat, Lon: barcelona.Lon, Op: domain.PlaceUpserted,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, refreshed)

		feed, err := f.uc.Feed("user-1")
		require.NoError(t, err)
		assert.True(t, feed.Empty)
	})

	t.Run("deleted without coordinates", func(t *testing.T) {
		f := newSessionFixture(t, placeAt("gone", "Cafe", 1), placeAt("kept", "Cafe", 2))
		_, err := f.uc.Query(ctx, "user-1", explicit(bangalore))
		require.NoError(t, err)

		f.store.set(nil, placeAt("kept", "Cafe", 2))

		refreshed, err := f.uc.NotifyPlaceChanged(ctx, domain.PlaceChangedEvent{PlaceID: "gone", Op: domain.PlaceDeleted})
		require.NoError(t, err)
		assert.Equal(t, 1, refreshed)

		feed, err := f.uc.Feed("user-1")
		require.NoError(t, err)
		require.Len(t, feed.Places, 1)
		assert.Equal(t, "kept", feed.Places[0].ID)
	})

	t.Run("deleted place not shown", func(t *testing.T) {
		f := newSessionFixture(t, placeAt("kept", "Cafe", 2))
		_, err := f.uc.Query(ctx, "user-1", explicit(bangalore))
		require.NoError(t, err)

		refreshed, err := f.uc.NotifyPlaceChanged(ctx, domain.PlaceChangedEvent{PlaceID: "other", Op: domain.PlaceDeleted})
		require.NoError(t, err)
		assert.Zero(t, refreshed)
	})
}

func TestSessionUseCase_NotifyPlaceChangedReportsFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("refetch failure", func(t *testing.T) {
		f := newSessionFixture(t, placeAt("existing", "Cafe", 1))
		_, err := f.uc.Query(ctx, "user-1", explicit(bangalore))
		require.NoError(t, err)

		f.store.set(assert.AnError)
		event := domain.PlaceChangedEvent{PlaceID: "existing", Op: domain.PlaceUpserted}

		refreshed, err := f.uc.NotifyPlaceChanged(ctx, event)
		assert.Equal(t, 1, refreshed)
		assert.ErrorIs(t, err, errors.ErrQueryFailed)

		feed, err := f.uc.Feed("user-1")
		require.NoError(t, err)
		assert.Equal(t, "error", feed.State)

		// повтор после восстановления хранилища возвращает выдачу
		f.store.set(nil)
		_, err = f.uc.NotifyPlaceChanged(ctx, domain.PlaceChangedEvent{
			PlaceID: "existing", Lat: bangalore.Lat, Lon: bangalore.Lon, Op: domain.PlaceUpserted,
		})
		require.NoError(t, err)

		feed, err = f.uc.Feed("user-1")
		require.NoError(t, err)
		assert.Equal(t, "idle", feed.State)
		assert.Len(t, feed.Places, 1)
	})

	t.Run("cache invalidation failure", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("DeletePlace", mock.Anything, "p-1").Return(assert.AnError)

		store := &memoryStore{}
		resolver := usecase.NewLocationResolver(nil, nil, usecase.LocationConfig{}, zap.NewNop())
		placeUC := usecase.NewPlaceUseCase(store, cache, zap.NewNop(), time.Minute)
		uc := usecase.NewSessionUseCase(newDiscovery(store, 20), resolver, placeUC, &MockWishlistRepository{}, usecase.SessionConfig{
			PageSize: 20,
			RadiusKm: 10,
		}, zap.NewNop())

		refreshed, err := uc.NotifyPlaceChanged(ctx, domain.PlaceChangedEvent{PlaceID: "p-1", Op: domain.PlaceDeleted})
		assert.Zero(t, refreshed)
		assert.ErrorIs(t, err, errors.ErrCacheError)
		cache.AssertExpectations(t)
	})
}

func TestSessionUseCase_Wishlist(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, placeAt("two", "Cafe", 2), placeAt("one", "Bar", 1), placeAt("five", "Gym", 5))
	f.wishlist.On("Add", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Query(ctx, "user-1", explicit(bangalore))
	require.NoError(t, err)

	for _, id := range []string{"five", "two", "one", "missing"} {
		resp, err := f.uc.ToggleWishlist(ctx, "user-1", id)
		require.NoError(t, err)
		assert.True(t, resp.Wishlisted)
	}

	view, err := f.uc.Wishlist(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, "one", view.Places[0].ID)
	assert.Equal(t, "two", view.Places[1].ID)
	assert.Equal(t, "five", view.Places[2].ID)
	for _, p := range view.Places {
		assert.True(t, p.Wishlisted)
	}

	feed, err := f.uc.Feed("user-1")
	require.NoError(t, err)
	for _, p := range feed.Places {
		assert.True(t, p.Wishlisted, p.ID)
	}

	detail, err := f.uc.PlaceDetail(ctx, "user-1", "two")
	require.NoError(t, err)
	assert.True(t, detail.Wishlisted)
	require.NotNil(t, detail.DistanceKm)
	assert.InDelta(t, 2, *detail.DistanceKm, 0.01)
}

func TestSessionUseCase_EvictIdle(t *testing.T) {
	f := newSessionFixture(t)
	p := bangalore
	_, err := f.uc.Query(context.Background(), "user-1", usecase.QueryInput{Explicit: &p})
	require.NoError(t, err)

	assert.Zero(t, f.uc.EvictIdle(time.Hour))
	assert.Equal(t, 1, f.uc.SessionCount())

	assert.Equal(t, 1, f.uc.EvictIdle(-time.Hour))
	assert.Zero(t, f.uc.SessionCount())
}
