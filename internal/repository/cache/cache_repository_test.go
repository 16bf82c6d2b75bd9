package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/repository/cache"
)

func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client
}

func TestCacheRepository_PlaceRoundTrip(t *testing.T) {
	client := getTestRedisClient(t)
	repo := cache.NewCacheRepository(cache.NewRedisForTest(client, nil))
	ctx := context.Background()

	rating := 4.4
	place := &domain.Place{
		ID:       "test-place-1",
		Name:     "Third Wave",
		Category: domain.TagCafe,
		Rating:   &rating,
		Images:   []string{"a.jpg"},
		Distance: 3.2,
	}
	defer client.Del(ctx, "place:test-place-1")

	require.NoError(t, repo.SetPlace(ctx, place, time.Minute))

	got, err := repo.GetPlace(ctx, "test-place-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Third Wave", got.Name)
	assert.Equal(t, []string{"a.jpg"}, got.Images)
	assert.Zero(t, got.Distance)
	assert.Equal(t, 3.2, place.Distance, "caller's copy must stay untouched")

	ttl, err := client.TTL(ctx, "place:test-place-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.DeletePlace(ctx, "test-place-1"))
	got, err = repo.GetPlace(ctx, "test-place-1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepository_CorruptedPlaceIsMiss(t *testing.T) {
	client := getTestRedisClient(t)
	repo := cache.NewCacheRepository(cache.NewRedisForTest(client, nil))
	ctx := context.Background()

	defer client.Del(ctx, "place:broken")
	require.NoError(t, client.Set(ctx, "place:broken", "{not json", time.Minute).Err())

	got, err := repo.GetPlace(ctx, "broken")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRepository_Location(t *testing.T) {
	client := getTestRedisClient(t)
	repo := cache.NewCacheRepository(cache.NewRedisForTest(client, nil))
	ctx := context.Background()

	defer client.Del(ctx, "location:10.0.0.1")

	got, err := repo.GetLocation(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.SetLocation(ctx, "10.0.0.1", domain.Point{Lat: 12.97, Lon: 77.59}, time.Minute))

	got, err = repo.GetLocation(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.Point{Lat: 12.97, Lon: 77.59}, *got)

	exists, err := repo.Exists(ctx, "location:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, exists)
}
