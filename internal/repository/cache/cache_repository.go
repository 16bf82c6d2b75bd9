package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
)

const (
	placeKeyPrefix    = "place:"
	locationKeyPrefix = "location:"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}
	return val > 0, nil
}

func (r *cacheRepository) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	var place domain.Place
	found, err := r.getJSON(ctx, placeKeyPrefix+id, &place)
	if err != nil || !found {
		return nil, err
	}
	return &place, nil
}

// SetPlace кладёт карточку без вычисленной дистанции: она зависит от пользователя
func (r *cacheRepository) SetPlace(ctx context.Context, place *domain.Place, ttl time.Duration) error {
	stored := *place
	stored.Distance = 0
	return r.setJSON(ctx, placeKeyPrefix+place.ID, stored, ttl)
}

func (r *cacheRepository) DeletePlace(ctx context.Context, id string) error {
	return r.Delete(ctx, placeKeyPrefix+id)
}

func (r *cacheRepository) GetLocation(ctx context.Context, key string) (*domain.Point, error) {
	var point domain.Point
	found, err := r.getJSON(ctx, locationKeyPrefix+key, &point)
	if err != nil || !found {
		return nil, err
	}
	return &point, nil
}

func (r *cacheRepository) SetLocation(ctx context.Context, key string, point domain.Point, ttl time.Duration) error {
	return r.setJSON(ctx, locationKeyPrefix+key, point, ttl)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		// битую запись считаем промахом, её перезапишет следующий Set
		r.logger.Warn("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return r.Set(ctx, key, data, ttl)
}
