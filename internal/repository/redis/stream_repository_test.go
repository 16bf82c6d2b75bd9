package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	redisRepo "github.com/place-discovery/internal/repository/redis"
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

// testStream - уникальное имя, чтобы параллельные прогоны не пересекались
func testStream(t *testing.T, client *redis.Client) string {
	name := "test:stream:places:" + uuid.NewString()
	t.Cleanup(func() { client.Del(context.Background(), name) })
	return name
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx := context.Background()
	stream := testStream(t, client)

	require.NoError(t, repo.CreateConsumerGroup(ctx, stream, "test-group"))

	groups, err := client.XInfoGroups(ctx, stream).Result()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "test-group", groups[0].Name)

	assert.NoError(t, repo.CreateConsumerGroup(ctx, stream, "test-group"))
}

func TestStreamRepository_PublishToStream(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx := context.Background()
	stream := testStream(t, client)

	event := domain.PlaceChangedEvent{
		PlaceID:   "p-1",
		Lat:       12.97,
		Lon:       77.59,
		Op:        domain.PlaceUpserted,
		ChangedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.PublishToStream(ctx, stream, event))

	messages, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{stream, "0"},
		Count:   1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Messages, 1)

	raw, ok := messages[0].Messages[0].Values["data"].(string)
	require.True(t, ok)

	var got domain.PlaceChangedEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, event.PlaceID, got.PlaceID)
	assert.Equal(t, domain.PlaceUpserted, got.Op)
	assert.True(t, event.ChangedAt.Equal(got.ChangedAt))
}

func TestStreamRepository_ConsumeAndAck(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stream := testStream(t, client)

	require.NoError(t, repo.CreateConsumerGroup(ctx, stream, "test-group"))
	require.NoError(t, repo.PublishToStream(ctx, stream, domain.PlaceChangedEvent{PlaceID: "p-2", Op: domain.PlaceDeleted}))

	msgs, err := repo.ConsumeStream(ctx, stream, "test-group", "consumer-1")
	require.NoError(t, err)

	var msg domain.StreamMessage
	select {
	case msg = <-msgs:
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for message")
	}

	var got domain.PlaceChangedEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Data), &got))
	assert.Equal(t, "p-2", got.PlaceID)
	assert.Equal(t, domain.PlaceDeleted, got.Op)

	pending, err := client.XPending(ctx, stream, "test-group").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Count)

	require.NoError(t, repo.AckMessage(ctx, stream, "test-group", msg.ID))

	pending, err = client.XPending(ctx, stream, "test-group").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)
}

func TestStreamRepository_MessageWithoutDataIsAcked(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stream := testStream(t, client)

	require.NoError(t, repo.CreateConsumerGroup(ctx, stream, "test-group"))
	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{Stream: stream, Values: map[string]interface{}{"other": "x"}}).Err())
	require.NoError(t, repo.PublishToStream(ctx, stream, domain.PlaceChangedEvent{PlaceID: "p-3"}))

	msgs, err := repo.ConsumeStream(ctx, stream, "test-group", "consumer-1")
	require.NoError(t, err)

	select {
	case msg := <-msgs:
		assert.Contains(t, msg.Data, "p-3")
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for message")
	}

	pending, err := client.XPending(ctx, stream, "test-group").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Count)
}

func TestStreamRepository_ConsumeStream_ContextCancellation(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stream := testStream(t, client)

	require.NoError(t, repo.CreateConsumerGroup(ctx, stream, "test-cancel-group"))

	msgs, err := repo.ConsumeStream(ctx, stream, "test-cancel-group", "consumer-1")
	require.NoError(t, err)

	time.AfterFunc(100*time.Millisecond, cancel)

	select {
	case _, ok := <-msgs:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for channel to close")
	}
}
