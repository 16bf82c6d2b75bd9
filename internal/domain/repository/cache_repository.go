package repository

import (
	"context"
	"time"

	"github.com/place-discovery/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetPlace получает карточку заведения из кеша, (nil, nil) при промахе
	GetPlace(ctx context.Context, id string) (*domain.Place, error)

	// SetPlace сохраняет карточку заведения
	SetPlace(ctx context.Context, place *domain.Place, ttl time.Duration) error

	// DeletePlace инвалидирует карточку заведения
	DeletePlace(ctx context.Context, id string) error

	// GetLocation получает последнюю известную локацию по ключу клиента
	GetLocation(ctx context.Context, key string) (*domain.Point, error)

	// SetLocation сохраняет локацию с TTL (LOCATION_MAX_AGE)
	SetLocation(ctx context.Context, key string, point domain.Point, ttl time.Duration) error
}
