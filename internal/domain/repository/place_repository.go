package repository

import (
	"context"

	"github.com/place-discovery/internal/domain"
)

// PlaceRepository - хранилище документов с заведениями (только чтение)
type PlaceRepository interface {
	// Query выполняет один дескриптор: geohash-диапазон, фильтр по тегам,
	// серверный порядок, лимит и "start after"
	Query(ctx context.Context, q domain.QueryDescriptor) ([]domain.Place, error)

	// GetByID возвращает заведение по ID
	GetByID(ctx context.Context, id string) (*domain.Place, error)

	// GetByIDs возвращает найденные заведения, отсутствующие ID пропускаются
	GetByIDs(ctx context.Context, ids []string) ([]domain.Place, error)
}
